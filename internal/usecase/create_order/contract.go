package create_order

import (
	"context"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/internal/integrations/doctordirectory"
	"github.com/m04kA/SMC-CounselingService/internal/integrations/servicecatalog"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	CreateBatch(ctx context.Context, appointments []*domain.Appointment) ([]*domain.Appointment, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.AvailabilitySlot, error)
	MarkBooked(ctx context.Context, doctorID int64, ids []int64) error
}

// DoctorDirectoryClient интерфейс клиента DoctorDirectory
type DoctorDirectoryClient interface {
	GetActiveDoctor(ctx context.Context, doctorID int64) (*doctordirectory.Doctor, error)
}

// ServiceCatalogClient интерфейс клиента каталога услуг
type ServiceCatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*servicecatalog.CounselingService, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

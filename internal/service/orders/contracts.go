package orders

import (
	"context"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByClientID(ctx context.Context, clientID int64) ([]*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	GetByOrderID(ctx context.Context, orderID int64) ([]*domain.Appointment, error)
	GetSlotIDsByOrderID(ctx context.Context, orderID int64) ([]int64, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Release(ctx context.Context, ids []int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

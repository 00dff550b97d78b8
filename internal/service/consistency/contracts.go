package consistency

import (
	"context"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	UpdateCompletedSessions(ctx context.Context, id int64, count int) error
}

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	CountByOrderAndStatus(ctx context.Context, orderID int64, status domain.AppointmentStatus) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

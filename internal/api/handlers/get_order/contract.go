package get_order

import (
	"context"

	"github.com/m04kA/SMC-CounselingService/internal/service/orders/models"
)

type OrderService interface {
	GetByID(ctx context.Context, orderID, clientID int64) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

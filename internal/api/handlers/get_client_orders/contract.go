package get_client_orders

import (
	"context"

	"github.com/m04kA/SMC-CounselingService/internal/service/orders/models"
)

type OrderService interface {
	GetClientOrders(ctx context.Context, clientID int64) (*models.OrderListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

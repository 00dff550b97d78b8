package delete_order

import "context"

type OrderService interface {
	Delete(ctx context.Context, orderID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

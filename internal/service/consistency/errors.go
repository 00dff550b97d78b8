package consistency

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("order not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("consistency service: internal error")
)

package transition_order

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("transition_order: order not found")

	// ErrAccessDenied возвращается, когда заказ принадлежит другому клиенту
	ErrAccessDenied = errors.New("transition_order: access denied")

	// ErrInvalidStatus возвращается при неизвестном целевом статусе
	ErrInvalidStatus = errors.New("transition_order: invalid order status")

	// ErrInvalidTransition возвращается, когда переход между статусами
	// запрещен машиной состояний заказа
	ErrInvalidTransition = errors.New("transition_order: status transition is not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_order: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_order: internal error")
)

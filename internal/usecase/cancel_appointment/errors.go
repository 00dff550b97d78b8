package cancel_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда встреча не найдена
	ErrAppointmentNotFound = errors.New("cancel_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда заказ встречи принадлежит другому клиенту
	ErrAccessDenied = errors.New("cancel_appointment: access denied")

	// ErrAlreadyFinished возвращается при попытке отменить завершенную
	// или уже отмененную встречу
	ErrAlreadyFinished = errors.New("cancel_appointment: appointment is already completed or cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_appointment: internal error")
)

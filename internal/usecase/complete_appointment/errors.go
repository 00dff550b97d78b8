package complete_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда встреча не найдена
	ErrAppointmentNotFound = errors.New("complete_appointment: appointment not found")

	// ErrAlreadyFinished возвращается при попытке завершить встречу,
	// которая уже завершена или отменена
	ErrAlreadyFinished = errors.New("complete_appointment: appointment is already completed or cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_appointment: internal error")
)

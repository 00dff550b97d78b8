package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrDoctorNotFound возвращается, когда врач не найден или неактивен
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrDuplicateSlot возвращается при создании дубликата слота
	ErrDuplicateSlot = errors.New("duplicate slot for doctor, date and time")

	// ErrSlotBooked возвращается при попытке изменить или удалить забронированный слот
	ErrSlotBooked = errors.New("slot is booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots service: internal error")
)

package create_order

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден или неактивен
	ErrDoctorNotFound = errors.New("create_order: doctor not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_order: service not found")

	// ErrSessionLimitExceeded возвращается, когда количество сессий превышает
	// максимум, установленный для услуги
	ErrSessionLimitExceeded = errors.New("create_order: session count exceeds service maximum")

	// ErrSlotCountMismatch возвращается, когда количество выбранных слотов
	// не совпадает с количеством сессий
	ErrSlotCountMismatch = errors.New("create_order: slot count does not match session count")

	// ErrSlotNotFound возвращается, когда один из выбранных слотов не существует
	ErrSlotNotFound = errors.New("create_order: slot not found")

	// ErrSlotNotOwned возвращается, когда слот принадлежит другому врачу
	ErrSlotNotOwned = errors.New("create_order: slot does not belong to doctor")

	// ErrSlotNotAvailable возвращается, когда слот уже занят конкурентным
	// бронированием - вся операция создания заказа откатывается
	ErrSlotNotAvailable = errors.New("create_order: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_order: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_order: internal error")
)

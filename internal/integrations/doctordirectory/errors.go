package doctordirectory

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrDoctorInactive возвращается, когда врач найден, но не принимает клиентов
	ErrDoctorInactive = errors.New("doctor is inactive")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("doctordirectory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("doctordirectory client: invalid response")
)

package domain

import "time"

// AppointmentFilter фильтр для выборки встреч.
// DoctorID и ClientID применяются через join с таблицей заказов.
type AppointmentFilter struct {
	OrderID       *int64
	DoctorID      *int64
	ClientID      *int64
	ScheduledFrom *time.Time         // Начало периода по scheduled_at (опционально)
	ScheduledTo   *time.Time         // Конец периода по scheduled_at (опционально)
	Status        *AppointmentStatus // Фильтр по статусу (опционально)
	Page          *PageRequest       // Пагинация (опционально)
}

// PageRequest параметры пагинации
type PageRequest struct {
	Page  int // Номер страницы, начиная с 1
	Limit int // Размер страницы
}

// DefaultPageLimit размер страницы по умолчанию
const DefaultPageLimit = 20

// MaxPageLimit максимальный размер страницы
const MaxPageLimit = 100

// Normalize приводит параметры пагинации к допустимым значениям
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
}

// Offset возвращает смещение для SQL запроса
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

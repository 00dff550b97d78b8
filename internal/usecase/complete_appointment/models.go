package complete_appointment

import (
	"time"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
)

// Request модель запроса на завершение встречи
type Request struct {
	AppointmentID   int64   // ID встречи
	CompletionNotes *string // Заметки по итогам сессии (опционально)
}

// Response модель ответа с завершенной встречей
type Response struct {
	ID              int64
	OrderID         int64
	SlotID          *int64
	SessionNumber   int
	ScheduledAt     time.Time
	Status          string
	Notes           *string
	CompletionNotes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// newResponse собирает ответ из доменной модели
func newResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		OrderID:         a.OrderID,
		SlotID:          a.SlotID,
		SessionNumber:   a.SessionNumber,
		ScheduledAt:     a.ScheduledAt,
		Status:          string(a.Status),
		Notes:           a.Notes,
		CompletionNotes: a.CompletionNotes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

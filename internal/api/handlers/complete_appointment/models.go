package complete_appointment

import (
	"time"

	completeAppointment "github.com/m04kA/SMC-CounselingService/internal/usecase/complete_appointment"
)

// CompleteAppointmentRequest HTTP request model
type CompleteAppointmentRequest struct {
	CompletionNotes *string `json:"completionNotes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	OrderID         int64   `json:"orderId"`
	SlotID          *int64  `json:"slotId,omitempty"`
	SessionNumber   int     `json:"sessionNumber"`
	ScheduledAt     string  `json:"scheduledAt"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CompletionNotes *string `json:"completionNotes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CompleteAppointmentRequest) ToUseCaseRequest(appointmentID int64) *completeAppointment.Request {
	return &completeAppointment.Request{
		AppointmentID:   appointmentID,
		CompletionNotes: r.CompletionNotes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *completeAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		OrderID:         resp.OrderID,
		SlotID:          resp.SlotID,
		SessionNumber:   resp.SessionNumber,
		ScheduledAt:     resp.ScheduledAt.Format(time.RFC3339),
		Status:          resp.Status,
		Notes:           resp.Notes,
		CompletionNotes: resp.CompletionNotes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}

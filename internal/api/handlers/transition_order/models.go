package transition_order

import (
	"time"

	transitionOrder "github.com/m04kA/SMC-CounselingService/internal/usecase/transition_order"
)

// TransitionOrderRequest HTTP request model
type TransitionOrderRequest struct {
	Status string `json:"status"`
}

// AppointmentResponse вложенная встреча в ответе
type AppointmentResponse struct {
	ID            int64  `json:"id"`
	SlotID        *int64 `json:"slotId,omitempty"`
	SessionNumber int    `json:"sessionNumber"`
	ScheduledAt   string `json:"scheduledAt"`
	Status        string `json:"status"`
}

// OrderResponse HTTP response model
type OrderResponse struct {
	ID                int64   `json:"id"`
	ClientID          int64   `json:"clientId"`
	DoctorID          int64   `json:"doctorId"`
	ServiceID         int64   `json:"serviceId"`
	SessionCount      int     `json:"sessionCount"`
	Amount            float64 `json:"amount"`
	PaymentMethod     string  `json:"paymentMethod"`
	PaymentStatus     string  `json:"paymentStatus"`
	Status            string  `json:"status"`
	CompletedSessions int     `json:"completedSessions"`

	Appointments []AppointmentResponse `json:"appointments"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionOrderRequest) ToUseCaseRequest(orderID, clientID int64) *transitionOrder.Request {
	return &transitionOrder.Request{
		OrderID:  orderID,
		ClientID: clientID,
		Status:   r.Status,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionOrder.Response) *OrderResponse {
	out := &OrderResponse{
		ID:                resp.ID,
		ClientID:          resp.ClientID,
		DoctorID:          resp.DoctorID,
		ServiceID:         resp.ServiceID,
		SessionCount:      resp.SessionCount,
		Amount:            resp.Amount,
		PaymentMethod:     resp.PaymentMethod,
		PaymentStatus:     resp.PaymentStatus,
		Status:            resp.Status,
		CompletedSessions: resp.CompletedSessions,
		Appointments:      make([]AppointmentResponse, 0, len(resp.Appointments)),
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}

	for _, a := range resp.Appointments {
		out.Appointments = append(out.Appointments, AppointmentResponse{
			ID:            a.ID,
			SlotID:        a.SlotID,
			SessionNumber: a.SessionNumber,
			ScheduledAt:   a.ScheduledAt.Format(time.RFC3339),
			Status:        a.Status,
		})
	}

	return out
}

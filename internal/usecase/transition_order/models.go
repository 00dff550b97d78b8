package transition_order

import (
	"time"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
)

// Request модель запроса на смену статуса заказа
type Request struct {
	OrderID  int64  // ID заказа
	ClientID int64  // ID клиента (из auth контекста)
	Status   string // Целевой статус
}

// AppointmentResult встреча заказа в ответе
type AppointmentResult struct {
	ID            int64
	SlotID        *int64
	SessionNumber int
	ScheduledAt   time.Time
	Status        string
}

// Response модель ответа со свежим состоянием заказа
type Response struct {
	ID                int64
	ClientID          int64
	DoctorID          int64
	ServiceID         int64
	SessionCount      int
	Amount            float64
	PaymentMethod     string
	PaymentStatus     string
	Status            string
	CompletedSessions int

	Appointments []AppointmentResult

	CreatedAt time.Time
	UpdatedAt time.Time
}

// newResponse собирает ответ из доменных моделей
func newResponse(o *domain.Order, appointments []*domain.Appointment) *Response {
	resp := &Response{
		ID:                o.ID,
		ClientID:          o.ClientID,
		DoctorID:          o.DoctorID,
		ServiceID:         o.ServiceID,
		SessionCount:      o.SessionCount,
		Amount:            o.Amount,
		PaymentMethod:     o.PaymentMethod,
		PaymentStatus:     o.PaymentStatus,
		Status:            string(o.Status),
		CompletedSessions: o.CompletedSessions,
		Appointments:      make([]AppointmentResult, 0, len(appointments)),
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}

	for _, a := range appointments {
		resp.Appointments = append(resp.Appointments, AppointmentResult{
			ID:            a.ID,
			SlotID:        a.SlotID,
			SessionNumber: a.SessionNumber,
			ScheduledAt:   a.ScheduledAt,
			Status:        string(a.Status),
		})
	}

	return resp
}

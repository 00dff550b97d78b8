package create_order

import (
	"time"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
)

// Request модель запроса на создание заказа
type Request struct {
	ClientID      int64   // ID клиента (из auth контекста)
	DoctorID      int64   // ID врача
	ServiceID     int64   // ID услуги из каталога
	SessionCount  int     // Количество сессий
	Amount        float64 // Сумма заказа
	PaymentMethod string  // Способ оплаты (непрозрачная строка)
	PaymentStatus string  // Статус оплаты (непрозрачная строка)
	SlotIDs       []int64 // Выбранные слоты (опционально; длина = SessionCount)
}

// AppointmentResult созданная встреча в ответе
type AppointmentResult struct {
	ID            int64
	SlotID        *int64
	SessionNumber int
	ScheduledAt   time.Time
	Status        string
}

// Response модель ответа с созданным заказом
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

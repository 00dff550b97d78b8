package models

import (
	"time"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	appointmentModels "github.com/m04kA/SMC-CounselingService/internal/service/appointments/models"
)

// OrderResponse ответ с данными заказа
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

	Appointments []appointmentModels.AppointmentResponse `json:"appointments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderListResponse ответ со списком заказов (без встреч)
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// FromDomainOrder конвертирует domain модель в DTO
func FromDomainOrder(o *domain.Order, appointments []*domain.Appointment) *OrderResponse {
	if o == nil {
		return nil
	}

	resp := &OrderResponse{
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
		Appointments:      make([]appointmentModels.AppointmentResponse, 0, len(appointments)),
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}

	for _, a := range appointments {
		resp.Appointments = append(resp.Appointments, *appointmentModels.FromDomainAppointment(a))
	}

	return resp
}

// FromDomainOrderList конвертирует слайс заказов в DTO списка
func FromDomainOrderList(orders []*domain.Order) *OrderListResponse {
	resp := &OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
	}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, *FromDomainOrder(o, nil))
	}
	return resp
}

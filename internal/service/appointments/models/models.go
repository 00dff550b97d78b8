package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе встречи
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// GetWeekAppointmentsRequest запрос встреч за период (календарь недели)
type GetWeekAppointmentsRequest struct {
	Start time.Time
	End   time.Time
}

// GetDoctorAppointmentsRequest запрос встреч врача с пагинацией
type GetDoctorAppointmentsRequest struct {
	DoctorID int64
	Status   *string
	Page     int
	Limit    int
}

// GetClientAppointmentsRequest запрос встреч клиента
type GetClientAppointmentsRequest struct {
	ClientID int64
	Status   *string
}

// Response модели

// AppointmentResponse ответ с данными встречи
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	OrderID         int64   `json:"orderId"`
	SlotID          *int64  `json:"slotId,omitempty"`
	SessionNumber   int     `json:"sessionNumber"`
	ScheduledAt     string  `json:"scheduledAt"` // ISO 8601
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CompletionNotes *string `json:"completionNotes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком встреч
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// ToDomainAppointmentStatus конвертирует строку в статус встречи
func ToDomainAppointmentStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              a.ID,
		OrderID:         a.OrderID,
		SlotID:          a.SlotID,
		SessionNumber:   a.SessionNumber,
		ScheduledAt:     a.ScheduledAt.Format(time.RFC3339),
		Status:          string(a.Status),
		Notes:           a.Notes,
		CompletionNotes: a.CompletionNotes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует слайс domain моделей в DTO списка
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}
	for _, a := range appointments {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}
	return resp
}

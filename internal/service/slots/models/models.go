package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе слота
	ErrInvalidStatus = errors.New("invalid slot status")
)

// Request модели

// CreateSlotRequest запрос на создание слота расписания
type CreateSlotRequest struct {
	DoctorID  int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// UpdateSlotRequest запрос на изменение слота
type UpdateSlotRequest struct {
	Date      *time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Status    *string
	IsActive  *bool
}

// ListSlotsRequest запрос списка слотов врача
type ListSlotsRequest struct {
	DoctorID   int64
	StartDate  *time.Time
	EndDate    *time.Time
	Status     *string
	OnlyActive bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListSlotsRequest) ToDomainFilter() (domain.SlotFilter, error) {
	filter := domain.SlotFilter{
		DoctorID:   r.DoctorID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		OnlyActive: r.OnlyActive,
	}

	if r.Status != nil {
		status := domain.SlotStatus(*r.Status)
		if !status.IsValid() {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID        int64  `json:"id"`
	DoctorID  int64  `json:"doctorId"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
	Status    string `json:"status"`
	IsActive  bool   `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.AvailabilitySlot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:        s.ID,
		DoctorID:  s.DoctorID,
		Date:      s.SlotDate.Format(domain.DateFormat),
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		Status:    string(s.Status),
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует слайс domain моделей в DTO списка
func FromDomainSlotList(slots []*domain.AvailabilitySlot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, *FromDomainSlot(s))
	}
	return resp
}

package domain

import (
	"time"

	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

// SlotStatus represents the status of a doctor's availability slot
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
	SlotStatusBlocked   SlotStatus = "blocked"
)

// IsValid returns true if the status belongs to the enumerated set.
func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusAvailable, SlotStatusBooked, SlotStatusBlocked:
		return true
	}
	return false
}

// AvailabilitySlot represents a doctor-published bookable block of time.
// Инвариант: слот переходит available -> booked ровно один раз, в момент
// создания встречи; на слот ссылается не более одной встречи.
type AvailabilitySlot struct {
	ID        int64
	DoctorID  int64
	SlotDate  time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    SlotStatus
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true if the slot can still be reserved.
func (s *AvailabilitySlot) IsBookable() bool {
	return s.Status == SlotStatusAvailable && s.IsActive
}

// ScheduledAt combines the slot date with its start time.
func (s *AvailabilitySlot) ScheduledAt() (time.Time, error) {
	return s.StartTime.At(s.SlotDate)
}

// SlotFilter фильтр для выборки слотов врача
type SlotFilter struct {
	DoctorID   int64       // Обязательный параметр
	StartDate  *time.Time  // Начало периода (опционально)
	EndDate    *time.Time  // Конец периода (опционально)
	Status     *SlotStatus // Фильтр по статусу (опционально)
	OnlyActive bool        // Только активные слоты
}

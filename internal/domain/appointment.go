package domain

import "time"

// AppointmentStatus represents the status of a single counseling session
type AppointmentStatus string

const (
	AppointmentStatusPending     AppointmentStatus = "pending"
	AppointmentStatusConfirmed   AppointmentStatus = "confirmed"
	AppointmentStatusCompleted   AppointmentStatus = "completed"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
)

// appointmentTransitions единая таблица допустимых переходов статусов встречи.
// Из rescheduled нет возврата в pending/confirmed - только завершение или отмена.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:     {AppointmentStatusConfirmed, AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusRescheduled},
	AppointmentStatusConfirmed:   {AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusRescheduled},
	AppointmentStatusRescheduled: {AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusRescheduled},
	AppointmentStatusCompleted:   {},
	AppointmentStatusCancelled:   {},
}

// IsValid returns true if the status belongs to the enumerated set.
func (s AppointmentStatus) IsValid() bool {
	_, ok := appointmentTransitions[s]
	return ok
}

// IsTerminal returns true if no transition out of the status exists.
func (s AppointmentStatus) IsTerminal() bool {
	return len(appointmentTransitions[s]) == 0 && s.IsValid()
}

// CanTransitionTo returns true if the transition s -> target is allowed.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Appointment represents one scheduled session of an order,
// optionally bound to a doctor's availability slot
type Appointment struct {
	ID      int64
	OrderID int64

	// SlotID ссылка на слот расписания врача.
	// NULL для встреч, сгенерированных при подтверждении заказа без выбора слотов.
	SlotID *int64

	// SessionNumber порядковый номер сессии внутри заказа (1..N, уникален в заказе)
	SessionNumber int

	ScheduledAt time.Time
	Status      AppointmentStatus

	Notes           *string
	CompletionNotes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCompleted returns true if the session has been completed.
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// IsCancelled returns true if the session has been cancelled.
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// CanBeCancelled returns true if the session is not in a terminal status.
func (a *Appointment) CanBeCancelled() bool {
	return !a.Status.IsTerminal()
}

// CanBeCompleted returns true if the session is not in a terminal status.
func (a *Appointment) CanBeCompleted() bool {
	return !a.Status.IsTerminal()
}

// CanBeRescheduled returns true if the session is not in a terminal status.
func (a *Appointment) CanBeRescheduled() bool {
	return !a.Status.IsTerminal()
}

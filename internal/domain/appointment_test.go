package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"pending to confirmed", AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{"pending to completed", AppointmentStatusPending, AppointmentStatusCompleted, true},
		{"pending to cancelled", AppointmentStatusPending, AppointmentStatusCancelled, true},
		{"pending to rescheduled", AppointmentStatusPending, AppointmentStatusRescheduled, true},

		{"confirmed to completed", AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{"confirmed to cancelled", AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{"confirmed to rescheduled", AppointmentStatusConfirmed, AppointmentStatusRescheduled, true},
		{"confirmed to pending forbidden", AppointmentStatusConfirmed, AppointmentStatusPending, false},

		{"rescheduled to completed", AppointmentStatusRescheduled, AppointmentStatusCompleted, true},
		{"rescheduled to cancelled", AppointmentStatusRescheduled, AppointmentStatusCancelled, true},
		{"rescheduled again", AppointmentStatusRescheduled, AppointmentStatusRescheduled, true},
		{"rescheduled to confirmed forbidden", AppointmentStatusRescheduled, AppointmentStatusConfirmed, false},

		{"completed is terminal", AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{"cancelled is terminal", AppointmentStatusCancelled, AppointmentStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointment_TerminalGuards(t *testing.T) {
	active := []AppointmentStatus{
		AppointmentStatusPending,
		AppointmentStatusConfirmed,
		AppointmentStatusRescheduled,
	}
	for _, s := range active {
		a := &Appointment{Status: s}
		assert.True(t, a.CanBeCancelled(), "status %s must allow cancel", s)
		assert.True(t, a.CanBeCompleted(), "status %s must allow complete", s)
		assert.True(t, a.CanBeRescheduled(), "status %s must allow reschedule", s)
	}

	terminal := []AppointmentStatus{
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
	}
	for _, s := range terminal {
		a := &Appointment{Status: s}
		assert.False(t, a.CanBeCancelled(), "status %s must reject cancel", s)
		assert.False(t, a.CanBeCompleted(), "status %s must reject complete", s)
		assert.False(t, a.CanBeRescheduled(), "status %s must reject reschedule", s)
	}
}

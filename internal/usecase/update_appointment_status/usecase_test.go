package update_appointment_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/appointment"
)

// --- Фейки для контрактов use case ---

type fakeAppointmentRepo struct {
	appointment *domain.Appointment
	err         error

	updateStatusCalls int
	updatedStatus     domain.AppointmentStatus
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.appointment
	return &copied, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, _ int64, status domain.AppointmentStatus, _, _ *string) error {
	f.updateStatusCalls++
	f.updatedStatus = status
	return nil
}

type fakeConsistency struct {
	syncCalls int
	syncedID  int64
}

func (f *fakeConsistency) Sync(_ context.Context, orderID int64) error {
	f.syncCalls++
	f.syncedID = orderID
	return nil
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Вспомогательные конструкторы ---

func appointmentWithStatus(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:            301,
		OrderID:       10,
		SessionNumber: 1,
		ScheduledAt:   time.Date(2025, 10, 8, 10, 0, 0, 0, time.UTC),
		Status:        status,
	}
}

// --- Тесты ---

func TestExecute_ToCompleted_SyncsOrderAggregates(t *testing.T) {
	appointments := &fakeAppointmentRepo{appointment: appointmentWithStatus(domain.AppointmentStatusConfirmed)}
	consistency := &fakeConsistency{}

	uc := NewUseCase(appointments, consistency, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 301, Status: "completed"})
	require.NoError(t, err)

	assert.Equal(t, string(domain.AppointmentStatusCompleted), resp.Status)
	assert.Equal(t, 1, appointments.updateStatusCalls)
	assert.Equal(t, 1, consistency.syncCalls)
	assert.Equal(t, int64(10), consistency.syncedID)
}

func TestExecute_ToCancelled_SyncsOrderAggregates(t *testing.T) {
	appointments := &fakeAppointmentRepo{appointment: appointmentWithStatus(domain.AppointmentStatusPending)}
	consistency := &fakeConsistency{}

	uc := NewUseCase(appointments, consistency, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 301, Status: "cancelled"})
	require.NoError(t, err)

	assert.Equal(t, string(domain.AppointmentStatusCancelled), resp.Status)
	assert.Equal(t, 1, consistency.syncCalls)
}

func TestExecute_ToConfirmed_NoSync(t *testing.T) {
	appointments := &fakeAppointmentRepo{appointment: appointmentWithStatus(domain.AppointmentStatusPending)}
	consistency := &fakeConsistency{}

	uc := NewUseCase(appointments, consistency, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 301, Status: "confirmed"})
	require.NoError(t, err)

	// Переход между активными статусами не трогает агрегаты заказа
	assert.Equal(t, string(domain.AppointmentStatusConfirmed), resp.Status)
	assert.Equal(t, 0, consistency.syncCalls)
}

func TestExecute_OutOfTerminalStatus_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		from   domain.AppointmentStatus
		target string
	}{
		{"completed to pending", domain.AppointmentStatusCompleted, "pending"},
		{"completed to cancelled", domain.AppointmentStatusCompleted, "cancelled"},
		{"completed to rescheduled", domain.AppointmentStatusCompleted, "rescheduled"},
		{"cancelled to confirmed", domain.AppointmentStatusCancelled, "confirmed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appointments := &fakeAppointmentRepo{appointment: appointmentWithStatus(tt.from)}
			consistency := &fakeConsistency{}

			uc := NewUseCase(appointments, consistency, &fakeTxManager{}, nopLogger{})

			_, err := uc.Execute(context.Background(), &Request{AppointmentID: 301, Status: tt.target})
			require.ErrorIs(t, err, ErrInvalidTransition)

			// Терминальные встречи не трогаются и не ведут к пересчету
			assert.Equal(t, 0, appointments.updateStatusCalls)
			assert.Equal(t, 0, consistency.syncCalls)
		})
	}
}

func TestExecute_UnknownStatusRejected(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{appointment: appointmentWithStatus(domain.AppointmentStatusPending)}, &fakeConsistency{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 301, Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	appointments := &fakeAppointmentRepo{err: appointmentRepo.ErrAppointmentNotFound}

	uc := NewUseCase(appointments, &fakeConsistency{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 301, Status: "confirmed"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

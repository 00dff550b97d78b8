package cancel_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-CounselingService/pkg/ptr"
)

// --- Фейки для контрактов use case ---

type fakeAppointmentRepo struct {
	appointment *domain.Appointment
	err         error

	updateStatusCalls int
	updatedStatus     domain.AppointmentStatus
	updatedNotes      *string
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.appointment
	return &copied, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, _ int64, status domain.AppointmentStatus, notes, _ *string) error {
	f.updateStatusCalls++
	f.updatedStatus = status
	f.updatedNotes = notes
	return nil
}

type fakeOrderRepo struct {
	order *domain.Order
}

func (f *fakeOrderRepo) GetByID(_ context.Context, _ int64) (*domain.Order, error) {
	copied := *f.order
	return &copied, nil
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

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:            301,
		OrderID:       10,
		SessionNumber: 1,
		ScheduledAt:   time.Date(2025, 10, 8, 10, 0, 0, 0, time.UTC),
		Status:        domain.AppointmentStatusPending,
	}
}

func ownerOrder() *domain.Order {
	return &domain.Order{ID: 10, ClientID: 1, SessionCount: 3, Status: domain.OrderStatusConfirmed}
}

// --- Тесты ---

func TestExecute_Success_SyncsOrderAggregates(t *testing.T) {
	appointments := &fakeAppointmentRepo{appointment: pendingAppointment()}
	consistency := &fakeConsistency{}

	uc := NewUseCase(appointments, &fakeOrderRepo{order: ownerOrder()}, consistency, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 301,
		ClientID:      1,
		Notes:         ptr.Ptr("клиент заболел"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.AppointmentStatusCancelled), resp.Status)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "клиент заболел", *resp.Notes)

	assert.Equal(t, 1, appointments.updateStatusCalls)
	assert.Equal(t, domain.AppointmentStatusCancelled, appointments.updatedStatus)

	// Агрегаты заказа пересчитываются в той же транзакции
	assert.Equal(t, 1, consistency.syncCalls)
	assert.Equal(t, int64(10), consistency.syncedID)
}

func TestExecute_ForeignClient_AccessDenied(t *testing.T) {
	appointments := &fakeAppointmentRepo{appointment: pendingAppointment()}
	consistency := &fakeConsistency{}

	uc := NewUseCase(appointments, &fakeOrderRepo{order: ownerOrder()}, consistency, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 301, ClientID: 99})
	require.ErrorIs(t, err, ErrAccessDenied)

	assert.Equal(t, 0, appointments.updateStatusCalls)
	assert.Equal(t, 0, consistency.syncCalls)
}

func TestExecute_TerminalAppointment_AlreadyFinished(t *testing.T) {
	tests := []struct {
		name   string
		status domain.AppointmentStatus
	}{
		{"completed", domain.AppointmentStatusCompleted},
		{"cancelled", domain.AppointmentStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appointment := pendingAppointment()
			appointment.Status = tt.status
			appointments := &fakeAppointmentRepo{appointment: appointment}
			consistency := &fakeConsistency{}

			uc := NewUseCase(appointments, &fakeOrderRepo{order: ownerOrder()}, consistency, &fakeTxManager{}, nopLogger{})

			_, err := uc.Execute(context.Background(), &Request{AppointmentID: 301, ClientID: 1})
			require.ErrorIs(t, err, ErrAlreadyFinished)

			assert.Equal(t, 0, appointments.updateStatusCalls)
			assert.Equal(t, 0, consistency.syncCalls)
		})
	}
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	appointments := &fakeAppointmentRepo{err: appointmentRepo.ErrAppointmentNotFound}

	uc := NewUseCase(appointments, &fakeOrderRepo{order: ownerOrder()}, &fakeConsistency{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 301, ClientID: 1})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_NotesTooLong(t *testing.T) {
	long := make([]byte, domain.MaxNotesLength+1)
	for i := range long {
		long[i] = 'x'
	}
	notes := string(long)

	uc := NewUseCase(&fakeAppointmentRepo{appointment: pendingAppointment()}, &fakeOrderRepo{order: ownerOrder()}, &fakeConsistency{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 301, ClientID: 1, Notes: &notes})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

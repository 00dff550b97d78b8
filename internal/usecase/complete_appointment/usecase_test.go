package complete_appointment

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
	completionNotes   *string
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.appointment
	return &copied, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, _ int64, status domain.AppointmentStatus, _, completionNotes *string) error {
	f.updateStatusCalls++
	f.updatedStatus = status
	f.completionNotes = completionNotes
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

func confirmedAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:            301,
		OrderID:       10,
		SessionNumber: 2,
		ScheduledAt:   time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC),
		Status:        domain.AppointmentStatusConfirmed,
	}
}

// --- Тесты ---

func TestExecute_Success_SyncsOrderAggregates(t *testing.T) {
	appointments := &fakeAppointmentRepo{appointment: confirmedAppointment()}
	consistency := &fakeConsistency{}

	uc := NewUseCase(appointments, consistency, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID:   301,
		CompletionNotes: ptr.Ptr("сессия прошла по плану"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.AppointmentStatusCompleted), resp.Status)
	require.NotNil(t, resp.CompletionNotes)
	assert.Equal(t, "сессия прошла по плану", *resp.CompletionNotes)

	assert.Equal(t, 1, appointments.updateStatusCalls)
	assert.Equal(t, domain.AppointmentStatusCompleted, appointments.updatedStatus)

	// Счетчик завершенных сессий пересчитывается в той же транзакции
	assert.Equal(t, 1, consistency.syncCalls)
	assert.Equal(t, int64(10), consistency.syncedID)
}

func TestExecute_RepeatCompletion_Rejected(t *testing.T) {
	appointment := confirmedAppointment()
	appointment.Status = domain.AppointmentStatusCompleted
	appointments := &fakeAppointmentRepo{appointment: appointment}
	consistency := &fakeConsistency{}

	uc := NewUseCase(appointments, consistency, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 301})
	require.ErrorIs(t, err, ErrAlreadyFinished)

	// Повторное завершение не трогает ни статус, ни агрегаты заказа
	assert.Equal(t, 0, appointments.updateStatusCalls)
	assert.Equal(t, 0, consistency.syncCalls)
}

func TestExecute_CancelledAppointment_Rejected(t *testing.T) {
	appointment := confirmedAppointment()
	appointment.Status = domain.AppointmentStatusCancelled
	appointments := &fakeAppointmentRepo{appointment: appointment}

	uc := NewUseCase(appointments, &fakeConsistency{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 301})
	assert.ErrorIs(t, err, ErrAlreadyFinished)
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	appointments := &fakeAppointmentRepo{err: appointmentRepo.ErrAppointmentNotFound}

	uc := NewUseCase(appointments, &fakeConsistency{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 301})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_CompletionNotesTooLong(t *testing.T) {
	long := make([]byte, domain.MaxCompletionNotesLength+1)
	for i := range long {
		long[i] = 'x'
	}
	notes := string(long)

	uc := NewUseCase(&fakeAppointmentRepo{appointment: confirmedAppointment()}, &fakeConsistency{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 301, CompletionNotes: &notes})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

package transition_order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	orderRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/order"
)

// --- Фейки для контрактов use case ---

type fakeOrderRepo struct {
	order *domain.Order
	err   error

	updateStatusCalls int
	updatedStatus     domain.OrderStatus
}

func (f *fakeOrderRepo) GetByID(_ context.Context, _ int64) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.order
	return &copied, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, _ int64, status domain.OrderStatus) error {
	f.updateStatusCalls++
	f.updatedStatus = status
	return nil
}

type fakeAppointmentRepo struct {
	count    int
	existing []*domain.Appointment

	createBatchCalls int
	created          []*domain.Appointment
}

func (f *fakeAppointmentRepo) CountByOrderID(_ context.Context, _ int64) (int, error) {
	return f.count, nil
}

func (f *fakeAppointmentRepo) CreateBatch(_ context.Context, appointments []*domain.Appointment) ([]*domain.Appointment, error) {
	f.createBatchCalls++
	out := make([]*domain.Appointment, 0, len(appointments))
	for i, a := range appointments {
		created := *a
		created.ID = int64(300 + i)
		out = append(out, &created)
	}
	f.created = out
	return out, nil
}

func (f *fakeAppointmentRepo) GetByOrderID(_ context.Context, _ int64) ([]*domain.Appointment, error) {
	if f.createBatchCalls > 0 {
		return f.created, nil
	}
	return f.existing, nil
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeTimeProvider возвращает фиксированное время
type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Вспомогательные конструкторы ---

func pendingOrder() *domain.Order {
	return &domain.Order{
		ID:           10,
		ClientID:     1,
		DoctorID:     2,
		ServiceID:    7,
		SessionCount: 3,
		Status:       domain.OrderStatusPending,
	}
}

func newTestUseCase(orders *fakeOrderRepo, appointments *fakeAppointmentRepo, now time.Time) *UseCase {
	uc := NewUseCase(orders, appointments, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

// --- Тесты ---

func TestExecute_Confirm_SynthesizesWeeklySchedule(t *testing.T) {
	now := time.Date(2025, 10, 1, 15, 30, 0, 0, time.UTC)
	orders := &fakeOrderRepo{order: pendingOrder()}
	appointments := &fakeAppointmentRepo{count: 0}

	uc := newTestUseCase(orders, appointments, now)

	resp, err := uc.Execute(context.Background(), &Request{
		OrderID:  10,
		ClientID: 1,
		Status:   string(domain.OrderStatusConfirmed),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.OrderStatusConfirmed), resp.Status)
	assert.Equal(t, 1, orders.updateStatusCalls)
	require.Equal(t, 1, appointments.createBatchCalls)
	require.Len(t, resp.Appointments, 3)

	// Первая встреча через неделю, далее еженедельно, в стандартное время
	for i, a := range resp.Appointments {
		expected := time.Date(2025, 10, 8+7*i, 10, 0, 0, 0, time.UTC)
		assert.Equal(t, expected, a.ScheduledAt, "session %d", i+1)
		assert.Equal(t, i+1, a.SessionNumber)
		assert.Equal(t, string(domain.AppointmentStatusPending), a.Status)
		assert.Nil(t, a.SlotID)
	}
}

func TestExecute_Confirm_Idempotent_WhenAppointmentsExist(t *testing.T) {
	slotID := int64(11)
	orders := &fakeOrderRepo{order: pendingOrder()}
	appointments := &fakeAppointmentRepo{
		count: 3,
		existing: []*domain.Appointment{
			{ID: 301, OrderID: 10, SlotID: &slotID, SessionNumber: 1, Status: domain.AppointmentStatusPending},
		},
	}

	uc := newTestUseCase(orders, appointments, time.Now())

	resp, err := uc.Execute(context.Background(), &Request{
		OrderID:  10,
		ClientID: 1,
		Status:   string(domain.OrderStatusConfirmed),
	})
	require.NoError(t, err)

	// Встречи уже есть - повторная генерация не выполняется
	assert.Equal(t, 0, appointments.createBatchCalls)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(301), resp.Appointments[0].ID)
}

func TestExecute_ForbiddenTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   domain.OrderStatus
		target string
	}{
		{"pending to completed", domain.OrderStatusPending, "completed"},
		{"pending to in_progress", domain.OrderStatusPending, "in_progress"},
		{"completed to cancelled", domain.OrderStatusCompleted, "cancelled"},
		{"cancelled to confirmed", domain.OrderStatusCancelled, "confirmed"},
		{"in_progress to confirmed", domain.OrderStatusInProgress, "confirmed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := pendingOrder()
			order.Status = tt.from
			orders := &fakeOrderRepo{order: order}

			uc := newTestUseCase(orders, &fakeAppointmentRepo{}, time.Now())

			_, err := uc.Execute(context.Background(), &Request{OrderID: 10, ClientID: 1, Status: tt.target})
			require.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, 0, orders.updateStatusCalls)
		})
	}
}

func TestExecute_UnknownStatusRejected(t *testing.T) {
	orders := &fakeOrderRepo{order: pendingOrder()}
	uc := newTestUseCase(orders, &fakeAppointmentRepo{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{OrderID: 10, ClientID: 1, Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestExecute_ForeignOrder_AccessDenied(t *testing.T) {
	orders := &fakeOrderRepo{order: pendingOrder()}
	uc := newTestUseCase(orders, &fakeAppointmentRepo{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{OrderID: 10, ClientID: 99, Status: "confirmed"})
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 0, orders.updateStatusCalls)
}

func TestExecute_OrderNotFound(t *testing.T) {
	orders := &fakeOrderRepo{err: orderRepo.ErrOrderNotFound}
	uc := newTestUseCase(orders, &fakeAppointmentRepo{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{OrderID: 10, ClientID: 1, Status: "confirmed"})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestExecute_Cancel_DoesNotSynthesizeAppointments(t *testing.T) {
	orders := &fakeOrderRepo{order: pendingOrder()}
	appointments := &fakeAppointmentRepo{}

	uc := newTestUseCase(orders, appointments, time.Now())

	resp, err := uc.Execute(context.Background(), &Request{
		OrderID:  10,
		ClientID: 1,
		Status:   string(domain.OrderStatusCancelled),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.OrderStatusCancelled), resp.Status)
	assert.Equal(t, 0, appointments.createBatchCalls)
}

package consistency

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	orderRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/order"
)

// --- Фейки для контрактов сервиса ---

type fakeOrderRepo struct {
	order *domain.Order

	getErr error

	updateStatusCalls int
	updatedStatus     domain.OrderStatus

	updateCounterCalls int
	updatedCounter     int
	updateCounterErr   error
}

func (f *fakeOrderRepo) GetByID(_ context.Context, _ int64) (*domain.Order, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copied := *f.order
	return &copied, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, _ int64, status domain.OrderStatus) error {
	f.updateStatusCalls++
	f.updatedStatus = status
	return nil
}

func (f *fakeOrderRepo) UpdateCompletedSessions(_ context.Context, _ int64, count int) error {
	f.updateCounterCalls++
	f.updatedCounter = count
	return f.updateCounterErr
}

type fakeAppointmentRepo struct {
	completed int
	cancelled int
}

func (f *fakeAppointmentRepo) CountByOrderAndStatus(_ context.Context, _ int64, status domain.AppointmentStatus) (int, error) {
	switch status {
	case domain.AppointmentStatusCompleted:
		return f.completed, nil
	case domain.AppointmentStatusCancelled:
		return f.cancelled, nil
	}
	return 0, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Вспомогательные конструкторы ---

func inProgressOrder(sessionCount int) *domain.Order {
	return &domain.Order{
		ID:           10,
		ClientID:     1,
		SessionCount: sessionCount,
		Status:       domain.OrderStatusInProgress,
	}
}

// --- Тесты ---

func TestRecomputeCompletedSessions_WritesCounter(t *testing.T) {
	orders := &fakeOrderRepo{order: inProgressOrder(3)}
	appointments := &fakeAppointmentRepo{completed: 2}

	svc := NewService(orders, appointments, nopLogger{})

	count, err := svc.RecomputeCompletedSessions(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.Equal(t, 1, orders.updateCounterCalls)
	assert.Equal(t, 2, orders.updatedCounter)
}

func TestRecomputeCompletedSessions_OrderNotFound(t *testing.T) {
	orders := &fakeOrderRepo{order: inProgressOrder(3), updateCounterErr: orderRepo.ErrOrderNotFound}

	svc := NewService(orders, &fakeAppointmentRepo{}, nopLogger{})

	_, err := svc.RecomputeCompletedSessions(context.Background(), 10)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDeriveOrderStatus_AllCompleted(t *testing.T) {
	orders := &fakeOrderRepo{order: inProgressOrder(3)}
	appointments := &fakeAppointmentRepo{completed: 3}

	svc := NewService(orders, appointments, nopLogger{})

	status, err := svc.DeriveOrderStatus(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusCompleted, status)
	assert.Equal(t, 1, orders.updateStatusCalls)
	assert.Equal(t, domain.OrderStatusCompleted, orders.updatedStatus)
}

func TestDeriveOrderStatus_AllCancelled(t *testing.T) {
	orders := &fakeOrderRepo{order: inProgressOrder(3)}
	appointments := &fakeAppointmentRepo{cancelled: 3}

	svc := NewService(orders, appointments, nopLogger{})

	status, err := svc.DeriveOrderStatus(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusCancelled, status)
	assert.Equal(t, 1, orders.updateStatusCalls)
}

func TestDeriveOrderStatus_PartialProgress_Unchanged(t *testing.T) {
	orders := &fakeOrderRepo{order: inProgressOrder(3)}
	appointments := &fakeAppointmentRepo{completed: 1, cancelled: 1}

	svc := NewService(orders, appointments, nopLogger{})

	status, err := svc.DeriveOrderStatus(context.Background(), 10)
	require.NoError(t, err)

	// Часть сессий еще активна - статус заказа не трогаем
	assert.Equal(t, domain.OrderStatusInProgress, status)
	assert.Equal(t, 0, orders.updateStatusCalls)
}

func TestDeriveOrderStatus_TerminalOrder_ShortCircuit(t *testing.T) {
	order := inProgressOrder(3)
	order.Status = domain.OrderStatusCompleted
	orders := &fakeOrderRepo{order: order}
	appointments := &fakeAppointmentRepo{completed: 3}

	svc := NewService(orders, appointments, nopLogger{})

	status, err := svc.DeriveOrderStatus(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusCompleted, status)
	assert.Equal(t, 0, orders.updateStatusCalls)
}

func TestDeriveOrderStatus_ForbiddenTransition_LeftUnchanged(t *testing.T) {
	// Из pending машина состояний не пускает сразу в completed
	order := inProgressOrder(3)
	order.Status = domain.OrderStatusPending
	orders := &fakeOrderRepo{order: order}
	appointments := &fakeAppointmentRepo{completed: 3}

	svc := NewService(orders, appointments, nopLogger{})

	status, err := svc.DeriveOrderStatus(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, status)
	assert.Equal(t, 0, orders.updateStatusCalls)
}

func TestSync_RecomputesAndDerives(t *testing.T) {
	orders := &fakeOrderRepo{order: inProgressOrder(2)}
	appointments := &fakeAppointmentRepo{completed: 2}

	svc := NewService(orders, appointments, nopLogger{})

	err := svc.Sync(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 1, orders.updateCounterCalls)
	assert.Equal(t, 2, orders.updatedCounter)
	assert.Equal(t, 1, orders.updateStatusCalls)
	assert.Equal(t, domain.OrderStatusCompleted, orders.updatedStatus)
}

func TestSync_OrderNotFoundPropagated(t *testing.T) {
	orders := &fakeOrderRepo{order: inProgressOrder(2), getErr: orderRepo.ErrOrderNotFound}
	appointments := &fakeAppointmentRepo{}

	svc := NewService(orders, appointments, nopLogger{})

	err := svc.Sync(context.Background(), 10)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

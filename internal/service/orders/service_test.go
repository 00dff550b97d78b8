package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	orderRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/order"
	"github.com/m04kA/SMC-CounselingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-CounselingService/pkg/txmanager"
)

// Оба transaction manager'а должны удовлетворять контракту сервиса,
// иначе сборка cmd/main.go ломается на этапе wiring
var (
	_ TransactionManager = (*txmanager.TransactionManager)(nil)
	_ TransactionManager = (*simpletxmanager.TransactionManager)(nil)
)

// --- Фейки для контрактов сервиса ---

type fakeOrderRepo struct {
	order *domain.Order

	getErr    error
	deleteErr error

	deleteCalls int
}

func (f *fakeOrderRepo) GetByID(_ context.Context, _ int64) (*domain.Order, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copied := *f.order
	return &copied, nil
}

func (f *fakeOrderRepo) GetByClientID(_ context.Context, _ int64) ([]*domain.Order, error) {
	if f.order == nil {
		return nil, nil
	}
	copied := *f.order
	return []*domain.Order{&copied}, nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, _ int64) error {
	f.deleteCalls++
	return f.deleteErr
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	slotIDs      []int64
}

func (f *fakeAppointmentRepo) GetByOrderID(_ context.Context, _ int64) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeAppointmentRepo) GetSlotIDsByOrderID(_ context.Context, _ int64) ([]int64, error) {
	return f.slotIDs, nil
}

type fakeSlotRepo struct {
	releaseCalls int
	releasedIDs  []int64
}

func (f *fakeSlotRepo) Release(_ context.Context, ids []int64) error {
	f.releaseCalls++
	f.releasedIDs = ids
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

func confirmedOrder() *domain.Order {
	return &domain.Order{
		ID:           10,
		ClientID:     1,
		DoctorID:     2,
		ServiceID:    7,
		SessionCount: 3,
		Status:       domain.OrderStatusConfirmed,
	}
}

// --- Тесты ---

func TestGetByID_Success(t *testing.T) {
	slotID := int64(11)
	appointments := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ID: 301, OrderID: 10, SlotID: &slotID, SessionNumber: 1, Status: domain.AppointmentStatusPending},
	}}

	svc := NewService(&fakeOrderRepo{order: confirmedOrder()}, appointments, &fakeSlotRepo{}, &fakeTxManager{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 10, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.ID)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(301), resp.Appointments[0].ID)
}

func TestGetByID_ForeignClient_AccessDenied(t *testing.T) {
	svc := NewService(&fakeOrderRepo{order: confirmedOrder()}, &fakeAppointmentRepo{}, &fakeSlotRepo{}, &fakeTxManager{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 10, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeOrderRepo{getErr: orderRepo.ErrOrderNotFound}, &fakeAppointmentRepo{}, &fakeSlotRepo{}, &fakeTxManager{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 10, 1)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDelete_ReleasesBookedSlots(t *testing.T) {
	orders := &fakeOrderRepo{order: confirmedOrder()}
	appointments := &fakeAppointmentRepo{slotIDs: []int64{11, 12}}
	slots := &fakeSlotRepo{}

	svc := NewService(orders, appointments, slots, &fakeTxManager{}, nopLogger{})

	err := svc.Delete(context.Background(), 10)
	require.NoError(t, err)

	// Слоты заказа освобождаются до удаления, в той же транзакции
	assert.Equal(t, 1, slots.releaseCalls)
	assert.Equal(t, []int64{11, 12}, slots.releasedIDs)
	assert.Equal(t, 1, orders.deleteCalls)
}

func TestDelete_OrderNotFound(t *testing.T) {
	orders := &fakeOrderRepo{order: confirmedOrder(), deleteErr: orderRepo.ErrOrderNotFound}

	svc := NewService(orders, &fakeAppointmentRepo{}, &fakeSlotRepo{}, &fakeTxManager{}, nopLogger{})

	err := svc.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

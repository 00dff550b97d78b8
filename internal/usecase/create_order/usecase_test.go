package create_order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/slot"
	doctorClient "github.com/m04kA/SMC-CounselingService/internal/integrations/doctordirectory"
	catalogClient "github.com/m04kA/SMC-CounselingService/internal/integrations/servicecatalog"
	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

// --- Фейки для контрактов use case ---

type fakeOrderRepo struct {
	createCalls int
	createErr   error
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *order
	created.ID = 100
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	return &created, nil
}

type fakeAppointmentRepo struct {
	createBatchCalls int
	created          []*domain.Appointment
}

func (f *fakeAppointmentRepo) CreateBatch(_ context.Context, appointments []*domain.Appointment) ([]*domain.Appointment, error) {
	f.createBatchCalls++
	out := make([]*domain.Appointment, 0, len(appointments))
	for i, a := range appointments {
		created := *a
		created.ID = int64(200 + i)
		out = append(out, &created)
	}
	f.created = out
	return out, nil
}

type fakeSlotRepo struct {
	slots []*domain.AvailabilitySlot

	getByIDsCalls   int
	markBookedCalls int
	markBookedErr   error
}

func (f *fakeSlotRepo) GetByIDs(_ context.Context, _ []int64) ([]*domain.AvailabilitySlot, error) {
	f.getByIDsCalls++
	return f.slots, nil
}

func (f *fakeSlotRepo) MarkBooked(_ context.Context, _ int64, _ []int64) error {
	f.markBookedCalls++
	return f.markBookedErr
}

type fakeDoctorClient struct {
	err error
}

func (f *fakeDoctorClient) GetActiveDoctor(_ context.Context, doctorID int64) (*doctorClient.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &doctorClient.Doctor{ID: doctorID, IsActive: true}, nil
}

type fakeCatalogClient struct {
	service *catalogClient.CounselingService
	err     error
}

func (f *fakeCatalogClient) GetService(_ context.Context, _ int64) (*catalogClient.CounselingService, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Вспомогательные конструкторы ---

func testSlot(id int64, doctorID int64, date string, start string) *domain.AvailabilitySlot {
	slotDate, _ := time.Parse(domain.DateFormat, date)
	return &domain.AvailabilitySlot{
		ID:        id,
		DoctorID:  doctorID,
		SlotDate:  slotDate,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString("23:59"),
		Status:    domain.SlotStatusAvailable,
		IsActive:  true,
	}
}

func testService(maxSessions int) *catalogClient.CounselingService {
	return &catalogClient.CounselingService{
		ID:          7,
		Name:        "Индивидуальная консультация",
		MaxSessions: maxSessions,
		Price:       1500,
		IsActive:    true,
	}
}

func newTestUseCase(orders *fakeOrderRepo, appointments *fakeAppointmentRepo, slots *fakeSlotRepo, doctors *fakeDoctorClient, catalog *fakeCatalogClient) *UseCase {
	return NewUseCase(orders, appointments, slots, doctors, catalog, &fakeTxManager{}, nopLogger{})
}

func validRequest() *Request {
	return &Request{
		ClientID:      1,
		DoctorID:      2,
		ServiceID:     7,
		SessionCount:  3,
		Amount:        4500,
		PaymentMethod: "card",
		PaymentStatus: "paid",
		SlotIDs:       []int64{11, 12, 13},
	}
}

// --- Тесты ---

func TestExecute_Success_AppointmentsMatchSlots(t *testing.T) {
	orders := &fakeOrderRepo{}
	appointments := &fakeAppointmentRepo{}
	// Слоты отдаются из репозитория не в хронологическом порядке
	slots := &fakeSlotRepo{slots: []*domain.AvailabilitySlot{
		testSlot(12, 2, "2025-10-22", "10:00"),
		testSlot(11, 2, "2025-10-15", "10:00"),
		testSlot(13, 2, "2025-10-29", "10:00"),
	}}

	uc := newTestUseCase(orders, appointments, slots, &fakeDoctorClient{}, &fakeCatalogClient{service: testService(10)})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, string(domain.OrderStatusPending), resp.Status)
	require.Len(t, resp.Appointments, 3)

	// Номера сессий назначены в хронологическом порядке слотов
	assert.Equal(t, int64(11), *resp.Appointments[0].SlotID)
	assert.Equal(t, int64(12), *resp.Appointments[1].SlotID)
	assert.Equal(t, int64(13), *resp.Appointments[2].SlotID)
	for i, a := range resp.Appointments {
		assert.Equal(t, i+1, a.SessionNumber)
		assert.Equal(t, string(domain.AppointmentStatusPending), a.Status)
	}

	// Время встречи совпадает с датой и временем начала слота
	assert.Equal(t, time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC), resp.Appointments[0].ScheduledAt)
	assert.Equal(t, time.Date(2025, 10, 22, 10, 0, 0, 0, time.UTC), resp.Appointments[1].ScheduledAt)

	assert.Equal(t, 1, slots.markBookedCalls)
	assert.Equal(t, 1, orders.createCalls)
	assert.Equal(t, 1, appointments.createBatchCalls)
}

func TestExecute_SlotCountMismatch_RejectedBeforeReservation(t *testing.T) {
	orders := &fakeOrderRepo{}
	slots := &fakeSlotRepo{}

	uc := newTestUseCase(orders, &fakeAppointmentRepo{}, slots, &fakeDoctorClient{}, &fakeCatalogClient{service: testService(10)})

	req := validRequest()
	req.SlotIDs = []int64{11, 12} // 2 слота на 3 сессии

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotCountMismatch)

	// Ни одного обращения к слотам и ни одного созданного заказа
	assert.Equal(t, 0, slots.getByIDsCalls)
	assert.Equal(t, 0, slots.markBookedCalls)
	assert.Equal(t, 0, orders.createCalls)
}

func TestExecute_DuplicateSlotIDs_Rejected(t *testing.T) {
	uc := newTestUseCase(&fakeOrderRepo{}, &fakeAppointmentRepo{}, &fakeSlotRepo{}, &fakeDoctorClient{}, &fakeCatalogClient{service: testService(10)})

	req := validRequest()
	req.SlotIDs = []int64{11, 11, 12}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SessionLimitExceeded(t *testing.T) {
	orders := &fakeOrderRepo{}

	uc := newTestUseCase(orders, &fakeAppointmentRepo{}, &fakeSlotRepo{}, &fakeDoctorClient{}, &fakeCatalogClient{service: testService(2)})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSessionLimitExceeded)
	assert.Equal(t, 0, orders.createCalls)
}

func TestExecute_DoctorNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeOrderRepo{}, &fakeAppointmentRepo{}, &fakeSlotRepo{}, &fakeDoctorClient{err: doctorClient.ErrDoctorNotFound}, &fakeCatalogClient{service: testService(10)})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestExecute_InactiveDoctorRejected(t *testing.T) {
	uc := newTestUseCase(&fakeOrderRepo{}, &fakeAppointmentRepo{}, &fakeSlotRepo{}, &fakeDoctorClient{err: doctorClient.ErrDoctorInactive}, &fakeCatalogClient{service: testService(10)})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestExecute_SlotNotOwnedByDoctor(t *testing.T) {
	orders := &fakeOrderRepo{}
	slots := &fakeSlotRepo{slots: []*domain.AvailabilitySlot{
		testSlot(11, 2, "2025-10-15", "10:00"),
		testSlot(12, 99, "2025-10-22", "10:00"), // чужой слот
		testSlot(13, 2, "2025-10-29", "10:00"),
	}}

	uc := newTestUseCase(orders, &fakeAppointmentRepo{}, slots, &fakeDoctorClient{}, &fakeCatalogClient{service: testService(10)})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotOwned)
	assert.Equal(t, 0, slots.markBookedCalls)
	assert.Equal(t, 0, orders.createCalls)
}

func TestExecute_SlotMissing(t *testing.T) {
	// Репозиторий нашел только два слота из трех
	slots := &fakeSlotRepo{slots: []*domain.AvailabilitySlot{
		testSlot(11, 2, "2025-10-15", "10:00"),
		testSlot(12, 2, "2025-10-22", "10:00"),
	}}

	uc := newTestUseCase(&fakeOrderRepo{}, &fakeAppointmentRepo{}, slots, &fakeDoctorClient{}, &fakeCatalogClient{service: testService(10)})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_LostRace_NoOrderPersisted(t *testing.T) {
	orders := &fakeOrderRepo{}
	appointments := &fakeAppointmentRepo{}
	slots := &fakeSlotRepo{
		slots: []*domain.AvailabilitySlot{
			testSlot(11, 2, "2025-10-15", "10:00"),
			testSlot(12, 2, "2025-10-22", "10:00"),
			testSlot(13, 2, "2025-10-29", "10:00"),
		},
		// Конкурент успел забрать один из слотов
		markBookedErr: slotRepo.ErrSlotNotAvailable,
	}

	uc := newTestUseCase(orders, appointments, slots, &fakeDoctorClient{}, &fakeCatalogClient{service: testService(10)})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)

	// Заказ и встречи не создаются - транзакция откатывается целиком
	assert.Equal(t, 0, orders.createCalls)
	assert.Equal(t, 0, appointments.createBatchCalls)
}

func TestExecute_WithoutSlots_NoAppointmentsCreated(t *testing.T) {
	orders := &fakeOrderRepo{}
	appointments := &fakeAppointmentRepo{}
	slots := &fakeSlotRepo{}

	uc := newTestUseCase(orders, appointments, slots, &fakeDoctorClient{}, &fakeCatalogClient{service: testService(10)})

	req := validRequest()
	req.SlotIDs = nil

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, resp.Appointments)
	assert.Equal(t, 0, slots.getByIDsCalls)
	assert.Equal(t, 1, orders.createCalls)
	assert.Equal(t, 0, appointments.createBatchCalls)
}

func TestExecute_InternalErrorWrapped(t *testing.T) {
	orders := &fakeOrderRepo{createErr: errors.New("connection reset")}

	uc := newTestUseCase(orders, &fakeAppointmentRepo{}, &fakeSlotRepo{}, &fakeDoctorClient{}, &fakeCatalogClient{service: testService(10)})

	req := validRequest()
	req.SlotIDs = nil

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInternal)
}

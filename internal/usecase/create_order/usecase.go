package create_order

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/slot"
	doctorClient "github.com/m04kA/SMC-CounselingService/internal/integrations/doctordirectory"
	catalogClient "github.com/m04kA/SMC-CounselingService/internal/integrations/servicecatalog"
)

// UseCase use case для создания заказа
type UseCase struct {
	orderRepo       OrderRepository
	appointmentRepo AppointmentRepository
	slotRepo        SlotRepository
	doctorClient    DoctorDirectoryClient
	catalogClient   ServiceCatalogClient
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	appointmentRepo AppointmentRepository,
	slotRepo SlotRepository,
	doctorClient DoctorDirectoryClient,
	catalogClient ServiceCatalogClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:       orderRepo,
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		doctorClient:    doctorClient,
		catalogClient:   catalogClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case создания заказа.
// Резервирование слотов, создание заказа и встреч выполняются в одной
// сериализуемой транзакции: либо фиксируется всё, либо ничего.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateOrder: client=%d, doctor=%d, service=%d, sessions=%d, slots=%d",
		req.ClientID, req.DoctorID, req.ServiceID, req.SessionCount, len(req.SlotIDs))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateOrder: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что врач существует и активен
	if _, err := uc.doctorClient.GetActiveDoctor(ctx, req.DoctorID); err != nil {
		if errors.Is(err, doctorClient.ErrDoctorNotFound) || errors.Is(err, doctorClient.ErrDoctorInactive) {
			uc.logger.Warn("CreateOrder: doctor id=%d not found or inactive", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("CreateOrder: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	// 3. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateOrder: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateOrder: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверяем лимит сессий для услуги
	if service.MaxSessions > 0 && req.SessionCount > service.MaxSessions {
		uc.logger.Warn("CreateOrder: session count %d exceeds service maximum %d",
			req.SessionCount, service.MaxSessions)
		return nil, ErrSessionLimitExceeded
	}

	// Переменные для хранения результата транзакции
	var (
		createdOrder        *domain.Order
		createdAppointments []*domain.Appointment
	)

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var slots []*domain.AvailabilitySlot

		// 5.1. Если указаны слоты - читаем и резервируем их
		if len(req.SlotIDs) > 0 {
			var err error
			slots, err = uc.slotRepo.GetByIDs(txCtx, req.SlotIDs)
			if err != nil {
				uc.logger.Error("CreateOrder: failed to get slots: %v", err)
				return fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
			}

			if len(slots) != len(req.SlotIDs) {
				uc.logger.Warn("CreateOrder: requested %d slots, found %d", len(req.SlotIDs), len(slots))
				return ErrSlotNotFound
			}

			if err := validateSlotOwnership(slots, req.DoctorID); err != nil {
				uc.logger.Warn("CreateOrder: slot ownership check failed: %v", err)
				return err
			}

			// Условное обновление: переводит в booked только доступные слоты.
			// Если хотя бы один слот занят конкурентом, транзакция откатывается.
			if err := uc.slotRepo.MarkBooked(txCtx, req.DoctorID, req.SlotIDs); err != nil {
				if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
					uc.logger.Warn("CreateOrder: one of slots %v is not available", req.SlotIDs)
					return ErrSlotNotAvailable
				}
				uc.logger.Error("CreateOrder: failed to reserve slots: %v", err)
				return fmt.Errorf("%w: failed to reserve slots: %v", ErrInternal, err)
			}
		}

		// 5.2. Создаем заказ в статусе pending
		order := &domain.Order{
			ClientID:      req.ClientID,
			DoctorID:      req.DoctorID,
			ServiceID:     req.ServiceID,
			SessionCount:  req.SessionCount,
			Amount:        req.Amount,
			PaymentMethod: req.PaymentMethod,
			PaymentStatus: req.PaymentStatus,
			Status:        domain.OrderStatusPending,
		}

		created, err := uc.orderRepo.Create(txCtx, order)
		if err != nil {
			uc.logger.Error("CreateOrder: failed to create order: %v", err)
			return fmt.Errorf("%w: failed to create order: %v", ErrInternal, err)
		}
		createdOrder = created

		// 5.3. Разворачиваем заказ во встречи по слотам
		if len(slots) > 0 {
			appointments, err := buildAppointmentsFromSlots(created.ID, slots)
			if err != nil {
				uc.logger.Error("CreateOrder: failed to build appointments: %v", err)
				return fmt.Errorf("%w: failed to build appointments: %v", ErrInternal, err)
			}

			createdAppointments, err = uc.appointmentRepo.CreateBatch(txCtx, appointments)
			if err != nil {
				uc.logger.Error("CreateOrder: failed to create appointments: %v", err)
				return fmt.Errorf("%w: failed to create appointments: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateOrder: successfully created order id=%d with %d appointments",
		createdOrder.ID, len(createdAppointments))

	return newResponse(createdOrder, createdAppointments), nil
}

// buildAppointmentsFromSlots строит встречи по выбранным слотам.
// Номера сессий назначаются в хронологическом порядке слотов,
// время встречи берется из даты и времени начала слота.
func buildAppointmentsFromSlots(orderID int64, slots []*domain.AvailabilitySlot) ([]*domain.Appointment, error) {
	ordered := make([]*domain.AvailabilitySlot, len(slots))
	copy(ordered, slots)
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].SlotDate.Equal(ordered[j].SlotDate) {
			return ordered[i].SlotDate.Before(ordered[j].SlotDate)
		}
		return ordered[i].StartTime.IsBefore(ordered[j].StartTime)
	})

	appointments := make([]*domain.Appointment, 0, len(ordered))
	for i, slot := range ordered {
		scheduledAt, err := slot.ScheduledAt()
		if err != nil {
			return nil, err
		}

		slotID := slot.ID
		appointments = append(appointments, &domain.Appointment{
			OrderID:       orderID,
			SlotID:        &slotID,
			SessionNumber: i + 1,
			ScheduledAt:   scheduledAt,
			Status:        domain.AppointmentStatusPending,
		})
	}

	return appointments, nil
}

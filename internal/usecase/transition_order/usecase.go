package transition_order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	orderRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/order"
)

// UseCase use case для смены статуса заказа
type UseCase struct {
	orderRepo       OrderRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:       orderRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case смены статуса заказа.
// Подтверждение заказа без встреч дополнительно разворачивает его в
// еженедельное расписание - в той же транзакции, что и смена статуса.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionOrder: order=%d, client=%d, target=%s", req.OrderID, req.ClientID, req.Status)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionOrder: validation failed: %v", err)
		return nil, err
	}

	target := domain.OrderStatus(req.Status)

	// Переменные для хранения результата транзакции
	var (
		updatedOrder *domain.Order
		appointments []*domain.Appointment
	)

	// 2. Выполняем операции с БД в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем заказ с блокировкой (FOR UPDATE)
		order, err := uc.orderRepo.GetByID(txCtx, req.OrderID)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				uc.logger.Warn("TransitionOrder: order id=%d not found", req.OrderID)
				return ErrOrderNotFound
			}
			uc.logger.Error("TransitionOrder: failed to get order id=%d: %v", req.OrderID, err)
			return fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
		}

		// 2.2. Проверяем принадлежность заказа клиенту
		if order.ClientID != req.ClientID {
			uc.logger.Warn("TransitionOrder: order id=%d belongs to client=%d, requested by client=%d",
				req.OrderID, order.ClientID, req.ClientID)
			return ErrAccessDenied
		}

		// 2.3. Проверяем переход по машине состояний
		if !order.Status.CanTransitionTo(target) {
			uc.logger.Warn("TransitionOrder: transition %s -> %s is not allowed for order id=%d",
				order.Status, target, req.OrderID)
			return ErrInvalidTransition
		}

		// 2.4. Обновляем статус заказа
		if err := uc.orderRepo.UpdateStatus(txCtx, req.OrderID, target); err != nil {
			uc.logger.Error("TransitionOrder: failed to update order id=%d status: %v", req.OrderID, err)
			return fmt.Errorf("%w: failed to update order status: %v", ErrInternal, err)
		}
		order.Status = target
		updatedOrder = order

		// 2.5. При подтверждении разворачиваем заказ во встречи,
		// если они еще не были созданы (идемпотентность по количеству)
		if target == domain.OrderStatusConfirmed {
			count, err := uc.appointmentRepo.CountByOrderID(txCtx, req.OrderID)
			if err != nil {
				uc.logger.Error("TransitionOrder: failed to count appointments for order id=%d: %v", req.OrderID, err)
				return fmt.Errorf("%w: failed to count appointments: %v", ErrInternal, err)
			}

			if count == 0 {
				synthesized, err := buildWeeklyAppointments(order.ID, order.SessionCount, uc.timeProvider.Now())
				if err != nil {
					uc.logger.Error("TransitionOrder: failed to build appointments for order id=%d: %v", req.OrderID, err)
					return fmt.Errorf("%w: failed to build appointments: %v", ErrInternal, err)
				}

				if _, err := uc.appointmentRepo.CreateBatch(txCtx, synthesized); err != nil {
					uc.logger.Error("TransitionOrder: failed to create appointments for order id=%d: %v", req.OrderID, err)
					return fmt.Errorf("%w: failed to create appointments: %v", ErrInternal, err)
				}
				uc.logger.Info("TransitionOrder: synthesized %d weekly appointments for order id=%d",
					len(synthesized), order.ID)
			}
		}

		// 2.6. Читаем актуальный список встреч для ответа
		appointments, err = uc.appointmentRepo.GetByOrderID(txCtx, req.OrderID)
		if err != nil {
			uc.logger.Error("TransitionOrder: failed to get appointments for order id=%d: %v", req.OrderID, err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("TransitionOrder: order id=%d moved to status=%s", updatedOrder.ID, updatedOrder.Status)

	return newResponse(updatedOrder, appointments), nil
}

// buildWeeklyAppointments строит еженедельное расписание встреч.
// Первая встреча назначается через неделю после подтверждения,
// каждая - на стандартное время начала сессии.
func buildWeeklyAppointments(orderID int64, sessionCount int, now time.Time) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0, sessionCount)

	for i := 0; i < sessionCount; i++ {
		date := now.AddDate(0, 0, domain.SessionIntervalDays*(i+1))

		scheduledAt, err := domain.DefaultSessionStartTime.At(date)
		if err != nil {
			return nil, err
		}

		appointments = append(appointments, &domain.Appointment{
			OrderID:       orderID,
			SessionNumber: i + 1,
			ScheduledAt:   scheduledAt,
			Status:        domain.AppointmentStatusPending,
		})
	}

	return appointments, nil
}

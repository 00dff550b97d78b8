package consistency

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	orderRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/order"
)

// Service поддерживает консистентность производных данных заказа:
// материализованный счётчик completed_sessions и выводимый из встреч статус.
//
// Оба метода обязаны вызываться внутри транзакции, изменившей статус встречи:
// пересчёт и запись фиксируются вместе с изменением статуса либо не фиксируются вовсе.
type Service struct {
	orderRepo       OrderRepository
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр consistency-сервиса
func NewService(
	orderRepo OrderRepository,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *Service {
	return &Service{
		orderRepo:       orderRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// RecomputeCompletedSessions пересчитывает completed_sessions как количество
// завершённых встреч заказа и записывает результат в заказ.
// Возвращает новое значение счётчика.
func (s *Service) RecomputeCompletedSessions(ctx context.Context, orderID int64) (int, error) {
	count, err := s.appointmentRepo.CountByOrderAndStatus(ctx, orderID, domain.AppointmentStatusCompleted)
	if err != nil {
		s.logger.Error("RecomputeCompletedSessions: failed to count completed appointments for order=%d: %v", orderID, err)
		return 0, fmt.Errorf("%w: failed to count completed appointments: %v", ErrInternal, err)
	}

	if err := s.orderRepo.UpdateCompletedSessions(ctx, orderID, count); err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return 0, ErrOrderNotFound
		}
		s.logger.Error("RecomputeCompletedSessions: failed to update counter for order=%d: %v", orderID, err)
		return 0, fmt.Errorf("%w: failed to update counter: %v", ErrInternal, err)
	}

	s.logger.Info("RecomputeCompletedSessions: order=%d completed_sessions=%d", orderID, count)
	return count, nil
}

// DeriveOrderStatus выводит статус заказа из статусов его встреч:
// все сессии завершены -> completed, все сессии отменены -> cancelled,
// иначе статус не меняется. Недопустимые по таблице переходов изменения
// не применяются.
func (s *Service) DeriveOrderStatus(ctx context.Context, orderID int64) (domain.OrderStatus, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return "", ErrOrderNotFound
		}
		s.logger.Error("DeriveOrderStatus: failed to get order=%d: %v", orderID, err)
		return "", fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
	}

	if order.Status.IsTerminal() {
		return order.Status, nil
	}

	completed, err := s.appointmentRepo.CountByOrderAndStatus(ctx, orderID, domain.AppointmentStatusCompleted)
	if err != nil {
		s.logger.Error("DeriveOrderStatus: failed to count completed appointments for order=%d: %v", orderID, err)
		return "", fmt.Errorf("%w: failed to count completed appointments: %v", ErrInternal, err)
	}

	cancelled, err := s.appointmentRepo.CountByOrderAndStatus(ctx, orderID, domain.AppointmentStatusCancelled)
	if err != nil {
		s.logger.Error("DeriveOrderStatus: failed to count cancelled appointments for order=%d: %v", orderID, err)
		return "", fmt.Errorf("%w: failed to count cancelled appointments: %v", ErrInternal, err)
	}

	var target domain.OrderStatus
	switch {
	case completed == order.SessionCount:
		target = domain.OrderStatusCompleted
	case cancelled == order.SessionCount:
		target = domain.OrderStatusCancelled
	default:
		// Часть сессий ещё активна - статус заказа не меняется
		return order.Status, nil
	}

	if !order.Status.CanTransitionTo(target) {
		s.logger.Warn("DeriveOrderStatus: transition %s -> %s not allowed for order=%d, leaving status unchanged",
			order.Status, target, orderID)
		return order.Status, nil
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, target); err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return "", ErrOrderNotFound
		}
		s.logger.Error("DeriveOrderStatus: failed to update order=%d status to %s: %v", orderID, target, err)
		return "", fmt.Errorf("%w: failed to update order status: %v", ErrInternal, err)
	}

	s.logger.Info("DeriveOrderStatus: order=%d derived status=%s (completed=%d, cancelled=%d of %d)",
		orderID, target, completed, cancelled, order.SessionCount)
	return target, nil
}

// Sync выполняет пересчёт счётчика и вывод статуса заказа одной операцией.
// Вызывается каждым переходом статуса встречи, способным изменить её
// завершённость.
func (s *Service) Sync(ctx context.Context, orderID int64) error {
	if _, err := s.RecomputeCompletedSessions(ctx, orderID); err != nil {
		return err
	}
	if _, err := s.DeriveOrderStatus(ctx, orderID); err != nil {
		return err
	}
	return nil
}

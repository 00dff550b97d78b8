package cancel_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/appointment"
)

// UseCase use case для отмены встречи клиентом
type UseCase struct {
	appointmentRepo AppointmentRepository
	orderRepo       OrderRepository
	consistency     ConsistencyService
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	orderRepo OrderRepository,
	consistency ConsistencyService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		orderRepo:       orderRepo,
		consistency:     consistency,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case отмены встречи.
// Отмена доступна только владельцу заказа; завершенные и уже отмененные
// встречи не отменяются. Смена статуса и пересчет агрегатов заказа
// фиксируются одной транзакцией.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelAppointment: appointment=%d, client=%d", req.AppointmentID, req.ClientID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelAppointment: validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата транзакции
	var result *domain.Appointment

	// 2. Выполняем операции с БД в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем встречу с блокировкой (FOR UPDATE)
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CancelAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CancelAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Проверяем принадлежность заказа клиенту
		order, err := uc.orderRepo.GetByID(txCtx, appointment.OrderID)
		if err != nil {
			uc.logger.Error("CancelAppointment: failed to get order id=%d: %v", appointment.OrderID, err)
			return fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
		}

		if order.ClientID != req.ClientID {
			uc.logger.Warn("CancelAppointment: appointment id=%d belongs to client=%d, requested by client=%d",
				req.AppointmentID, order.ClientID, req.ClientID)
			return ErrAccessDenied
		}

		// 2.3. Завершенные и отмененные встречи не отменяются
		if !appointment.CanBeCancelled() {
			uc.logger.Warn("CancelAppointment: appointment id=%d is in terminal status=%s",
				req.AppointmentID, appointment.Status)
			return ErrAlreadyFinished
		}

		// 2.4. Обновляем статус встречи
		if err := uc.appointmentRepo.UpdateStatus(txCtx, req.AppointmentID, domain.AppointmentStatusCancelled, req.Notes, nil); err != nil {
			uc.logger.Error("CancelAppointment: failed to update appointment id=%d status: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update appointment status: %v", ErrInternal, err)
		}

		appointment.Status = domain.AppointmentStatusCancelled
		if req.Notes != nil {
			appointment.Notes = req.Notes
		}
		result = appointment

		// 2.5. Пересчитываем агрегаты заказа в той же транзакции
		if err := uc.consistency.Sync(txCtx, appointment.OrderID); err != nil {
			uc.logger.Error("CancelAppointment: failed to sync order id=%d aggregates: %v", appointment.OrderID, err)
			return fmt.Errorf("%w: failed to sync order aggregates: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelAppointment: appointment id=%d cancelled", result.ID)

	return newResponse(result), nil
}

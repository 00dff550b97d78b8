package complete_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/appointment"
)

// UseCase use case для завершения встречи
type UseCase struct {
	appointmentRepo AppointmentRepository
	consistency     ConsistencyService
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	consistency ConsistencyService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		consistency:     consistency,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case завершения встречи.
// Повторное завершение отклоняется без изменения счетчика сессий.
// Смена статуса и пересчет агрегатов заказа (счетчик завершенных сессий,
// производный статус) фиксируются одной транзакцией.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteAppointment: appointment=%d", req.AppointmentID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CompleteAppointment: validation failed: %v", err)
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
				uc.logger.Warn("CompleteAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CompleteAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Завершенные и отмененные встречи не завершаются повторно
		if !appointment.CanBeCompleted() {
			uc.logger.Warn("CompleteAppointment: appointment id=%d is in terminal status=%s",
				req.AppointmentID, appointment.Status)
			return ErrAlreadyFinished
		}

		// 2.3. Обновляем статус встречи и сохраняем заметки
		if err := uc.appointmentRepo.UpdateStatus(txCtx, req.AppointmentID, domain.AppointmentStatusCompleted, nil, req.CompletionNotes); err != nil {
			uc.logger.Error("CompleteAppointment: failed to update appointment id=%d status: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update appointment status: %v", ErrInternal, err)
		}

		appointment.Status = domain.AppointmentStatusCompleted
		if req.CompletionNotes != nil {
			appointment.CompletionNotes = req.CompletionNotes
		}
		result = appointment

		// 2.4. Пересчитываем агрегаты заказа в той же транзакции
		if err := uc.consistency.Sync(txCtx, appointment.OrderID); err != nil {
			uc.logger.Error("CompleteAppointment: failed to sync order id=%d aggregates: %v", appointment.OrderID, err)
			return fmt.Errorf("%w: failed to sync order aggregates: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CompleteAppointment: appointment id=%d completed, session %d of order id=%d",
		result.ID, result.SessionNumber, result.OrderID)

	return newResponse(result), nil
}

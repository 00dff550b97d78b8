package update_appointment_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/appointment"
)

// UseCase use case для административного обновления статуса встречи
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

// Execute выполняет use case административного обновления статуса.
// Если переход затрагивает статус completed, агрегаты заказа
// пересчитываются в той же транзакции, что и смена статуса.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointmentStatus: appointment=%d, target=%s", req.AppointmentID, req.Status)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointmentStatus: validation failed: %v", err)
		return nil, err
	}

	target := domain.AppointmentStatus(req.Status)

	// Переменная для хранения результата транзакции
	var result *domain.Appointment

	// 2. Выполняем операции с БД в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем встречу с блокировкой (FOR UPDATE)
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointmentStatus: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointmentStatus: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Проверяем переход по машине состояний встречи
		if !appointment.Status.CanTransitionTo(target) {
			uc.logger.Warn("UpdateAppointmentStatus: transition %s -> %s is not allowed for appointment id=%d",
				appointment.Status, target, req.AppointmentID)
			return ErrInvalidTransition
		}

		// 2.3. Обновляем статус и заметки
		if err := uc.appointmentRepo.UpdateStatus(txCtx, req.AppointmentID, target, req.Notes, req.CompletionNotes); err != nil {
			uc.logger.Error("UpdateAppointmentStatus: failed to update appointment id=%d status: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update appointment status: %v", ErrInternal, err)
		}

		appointment.Status = target
		if req.Notes != nil {
			appointment.Notes = req.Notes
		}
		if req.CompletionNotes != nil {
			appointment.CompletionNotes = req.CompletionNotes
		}
		result = appointment

		// 2.4. Переход в терминальный статус требует пересчета счетчика
		// завершенных сессий и производного статуса заказа
		if target == domain.AppointmentStatusCompleted || target == domain.AppointmentStatusCancelled {
			if err := uc.consistency.Sync(txCtx, appointment.OrderID); err != nil {
				uc.logger.Error("UpdateAppointmentStatus: failed to sync order id=%d aggregates: %v", appointment.OrderID, err)
				return fmt.Errorf("%w: failed to sync order aggregates: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointmentStatus: appointment id=%d moved to status=%s", result.ID, result.Status)

	return newResponse(result), nil
}

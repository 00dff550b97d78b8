package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-CounselingService/internal/integrations/doctordirectory"
	"github.com/m04kA/SMC-CounselingService/internal/service/slots/models"
	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

// Service сервис управления слотами расписания врачей
type Service struct {
	slotRepo     SlotRepository
	doctorClient DoctorDirectoryClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, doctorClient DoctorDirectoryClient, logger Logger) *Service {
	return &Service{
		slotRepo:     slotRepo,
		doctorClient: doctorClient,
		logger:       logger,
	}
}

// Create создает новый слот расписания со статусом available
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: creating slot for doctor=%d, date=%s, time=%s-%s",
		req.DoctorID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// Проверяем, что врач существует и принимает клиентов
	if _, err := s.doctorClient.GetActiveDoctor(ctx, req.DoctorID); err != nil {
		if errors.Is(err, doctordirectory.ErrDoctorNotFound) || errors.Is(err, doctordirectory.ErrDoctorInactive) {
			s.logger.Warn("Create: doctor id=%d not found or inactive", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("Create: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	slot := &domain.AvailabilitySlot{
		DoctorID:  req.DoctorID,
		SlotDate:  req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    domain.SlotStatusAvailable,
		IsActive:  true,
	}

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		if errors.Is(err, slotRepo.ErrDuplicateSlot) {
			s.logger.Warn("Create: duplicate slot for doctor=%d, date=%s, time=%s-%s",
				req.DoctorID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)
			return nil, ErrDuplicateSlot
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created slot id=%d", created.ID)
	return models.FromDomainSlot(created), nil
}

// List получает слоты врача с фильтрацией
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("List: fetching slots for doctor=%d", req.DoctorID)

	if req.DoctorID <= 0 {
		return nil, fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d slots for doctor=%d", len(slots), req.DoctorID)
	return models.FromDomainSlotList(slots), nil
}

// Update изменяет слот расписания.
// Забронированный слот изменять нельзя - на него уже ссылается встреча.
func (s *Service) Update(ctx context.Context, slotID int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Update: updating slot id=%d", slotID)

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("Update: slot id=%d not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("Update: repository error for slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if slot.Status == domain.SlotStatusBooked {
		s.logger.Warn("Update: slot id=%d is booked and cannot be updated", slotID)
		return nil, ErrSlotBooked
	}

	if req.Date != nil {
		slot.SlotDate = *req.Date
	}
	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}
	if req.Status != nil {
		status := domain.SlotStatus(*req.Status)
		if !status.IsValid() || status == domain.SlotStatusBooked {
			// Статус booked выставляется только бронированием
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		slot.Status = status
	}
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}

	if err := validateTimes(slot.StartTime, slot.EndTime); err != nil {
		s.logger.Warn("Update: validation failed for slot id=%d: %v", slotID, err)
		return nil, err
	}

	if err := s.slotRepo.Update(ctx, slot); err != nil {
		if errors.Is(err, slotRepo.ErrDuplicateSlot) {
			return nil, ErrDuplicateSlot
		}
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("Update: repository error for slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated slot id=%d", slotID)
	return models.FromDomainSlot(slot), nil
}

// Delete удаляет слот расписания.
// Забронированный слот удалять нельзя.
func (s *Service) Delete(ctx context.Context, slotID int64) error {
	s.logger.Info("Delete: deleting slot id=%d", slotID)

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("Delete: slot id=%d not found", slotID)
			return ErrSlotNotFound
		}
		s.logger.Error("Delete: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if slot.Status == domain.SlotStatusBooked {
		s.logger.Warn("Delete: slot id=%d is booked and cannot be deleted", slotID)
		return ErrSlotBooked
	}

	if err := s.slotRepo.Delete(ctx, slotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("Delete: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted slot id=%d", slotID)
	return nil
}

// validateCreateRequest валидирует запрос на создание слота
func validateCreateRequest(req *models.CreateSlotRequest) error {
	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return validateTimes(req.StartTime, req.EndTime)
}

// validateTimes проверяет пару времени начала/окончания
func validateTimes(start, end types.TimeString) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	return nil
}

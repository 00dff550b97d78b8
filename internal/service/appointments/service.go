package appointments

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/internal/service/appointments/models"
)

// Service read-side сервис расписания: выборки встреч для календарей
// и дашбордов. Инвариантов не содержит - только запросы.
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetWeek получает встречи за указанный период (календарь недели),
// отсортированные по времени
func (s *Service) GetWeek(ctx context.Context, req *models.GetWeekAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetWeek: fetching appointments from %s to %s",
		req.Start.Format(domain.DateFormat), req.End.Format(domain.DateFormat))

	if req.Start.IsZero() || req.End.IsZero() {
		return nil, fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if req.End.Before(req.Start) {
		return nil, ErrInvalidTimeRange
	}

	filter := domain.AppointmentFilter{
		ScheduledFrom: &req.Start,
		ScheduledTo:   &req.End,
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetWeek: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWeek: successfully fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// GetByDoctor получает встречи врача с пагинацией
func (s *Service) GetByDoctor(ctx context.Context, req *models.GetDoctorAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetByDoctor: fetching appointments for doctor=%d, page=%d, limit=%d",
		req.DoctorID, req.Page, req.Limit)

	if req.DoctorID <= 0 {
		return nil, fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	filter := domain.AppointmentFilter{
		DoctorID: &req.DoctorID,
		Page:     &domain.PageRequest{Page: req.Page, Limit: req.Limit},
	}

	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetByDoctor: invalid status=%s for doctor=%d", *req.Status, req.DoctorID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetByDoctor: repository error for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: GetByDoctor - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByDoctor: successfully fetched %d appointments for doctor=%d", len(appointments), req.DoctorID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetByClient получает встречи аутентифицированного клиента
func (s *Service) GetByClient(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetByClient: fetching appointments for client=%d", req.ClientID)

	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	filter := domain.AppointmentFilter{
		ClientID: &req.ClientID,
	}

	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetByClient: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetByClient: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetByClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByClient: successfully fetched %d appointments for client=%d", len(appointments), req.ClientID)
	return models.FromDomainAppointmentList(appointments), nil
}

package get_week_appointments

import (
	"context"

	"github.com/m04kA/SMC-CounselingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetWeek(ctx context.Context, req *models.GetWeekAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

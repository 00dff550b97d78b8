package get_week_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CounselingService/internal/api/handlers"
	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/internal/service/appointments"
	"github.com/m04kA/SMC-CounselingService/internal/service/appointments/models"
)

const (
	msgInvalidStart     = "некорректный параметр start, ожидается YYYY-MM-DD"
	msgInvalidEnd       = "некорректный параметр end, ожидается YYYY-MM-DD"
	msgInvalidTimeRange = "некорректный временной диапазон"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/week?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	start, err := time.Parse(domain.DateFormat, query.Get("start"))
	if err != nil {
		h.logger.Warn("GET /appointments/week - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	end, err := time.Parse(domain.DateFormat, query.Get("end"))
	if err != nil {
		h.logger.Warn("GET /appointments/week - Invalid end: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEnd)
		return
	}

	// Конец диапазона включительно: добавляем сутки к дате конца
	serviceReq := &models.GetWeekAppointmentsRequest{
		Start: start,
		End:   end.AddDate(0, 0, 1),
	}

	result, err := h.service.GetWeek(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidTimeRange):
			h.logger.Warn("GET /appointments/week - Invalid time range: start=%s, end=%s",
				query.Get("start"), query.Get("end"))
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		default:
			h.logger.Error("GET /appointments/week - Failed to get appointments: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

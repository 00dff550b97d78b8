package get_doctor_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CounselingService/internal/api/handlers"
	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/internal/service/slots"
	"github.com/m04kA/SMC-CounselingService/internal/service/slots/models"
)

const (
	msgInvalidDoctorID  = "некорректный ID врача"
	msgInvalidStartDate = "некорректный параметр startDate, ожидается YYYY-MM-DD"
	msgInvalidEndDate   = "некорректный параметр endDate, ожидается YYYY-MM-DD"
	msgInvalidInput     = "некорректные параметры фильтра"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/{doctorId}/slots?startDate=&endDate=&status=&onlyActive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := strconv.ParseInt(vars["doctorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/slots - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	query := r.URL.Query()

	var startDate *time.Time
	if raw := query.Get("startDate"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /doctors/{id}/slots - Invalid startDate: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidStartDate)
			return
		}
		startDate = &parsed
	}

	var endDate *time.Time
	if raw := query.Get("endDate"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /doctors/{id}/slots - Invalid endDate: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidEndDate)
			return
		}
		endDate = &parsed
	}

	var statusPtr *string
	if status := query.Get("status"); status != "" {
		statusPtr = &status
	}

	serviceReq := &models.ListSlotsRequest{
		DoctorID:   doctorID,
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     statusPtr,
		OnlyActive: query.Get("onlyActive") == "true",
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /doctors/{id}/slots - Invalid input: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /doctors/{id}/slots - Failed to list slots: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

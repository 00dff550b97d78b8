package create_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CounselingService/internal/api/handlers"
	"github.com/m04kA/SMC-CounselingService/internal/api/middleware"
	createOrder "github.com/m04kA/SMC-CounselingService/internal/usecase/create_order"
)

const (
	msgUnauthorized         = "пользователь не аутентифицирован"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "некорректные данные заказа"
	msgDoctorNotFound       = "врач не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgSessionLimitExceeded = "количество сессий превышает максимум для услуги"
	msgSlotCountMismatch    = "количество слотов не совпадает с количеством сессий"
	msgSlotNotFound         = "один из выбранных слотов не найден"
	msgSlotNotOwned         = "слот принадлежит другому врачу"
	msgSlotNotAvailable     = "один из выбранных слотов уже занят"
)

type Handler struct {
	useCase CreateOrderUseCase
	logger  Logger
}

func NewHandler(useCase CreateOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Идентификатор клиента из auth контекста
	clientID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Warn("POST /orders - Missing authenticated user")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(clientID))
	if err != nil {
		switch {
		case errors.Is(err, createOrder.ErrSlotCountMismatch):
			h.logger.Warn("POST /orders - Slot count mismatch: client_id=%d", clientID)
			handlers.RespondBadRequest(w, msgSlotCountMismatch)

		case errors.Is(err, createOrder.ErrInvalidInput):
			h.logger.Warn("POST /orders - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createOrder.ErrSessionLimitExceeded):
			h.logger.Warn("POST /orders - Session limit exceeded: client_id=%d, service_id=%d",
				clientID, req.ServiceID)
			handlers.RespondBadRequest(w, msgSessionLimitExceeded)

		case errors.Is(err, createOrder.ErrDoctorNotFound):
			h.logger.Warn("POST /orders - Doctor not found: doctor_id=%d", req.DoctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, createOrder.ErrServiceNotFound):
			h.logger.Warn("POST /orders - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createOrder.ErrSlotNotFound):
			h.logger.Warn("POST /orders - Slot not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createOrder.ErrSlotNotOwned):
			h.logger.Warn("POST /orders - Slot not owned by doctor: doctor_id=%d", req.DoctorID)
			handlers.RespondBadRequest(w, msgSlotNotOwned)

		case errors.Is(err, createOrder.ErrSlotNotAvailable):
			h.logger.Warn("POST /orders - Slot not available: client_id=%d, doctor_id=%d",
				clientID, req.DoctorID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /orders - Failed to create order: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders - Order created successfully: order_id=%d, client_id=%d, appointments=%d",
		result.ID, clientID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

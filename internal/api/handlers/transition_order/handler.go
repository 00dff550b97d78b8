package transition_order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CounselingService/internal/api/handlers"
	"github.com/m04kA/SMC-CounselingService/internal/api/middleware"
	transitionOrder "github.com/m04kA/SMC-CounselingService/internal/usecase/transition_order"
)

const (
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgInvalidOrderID     = "некорректный ID заказа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус заказа"
	msgNotFound           = "заказ не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidTransition  = "переход в указанный статус запрещен"
)

type Handler struct {
	useCase TransitionOrderUseCase
	logger  Logger
}

func NewHandler(useCase TransitionOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/orders/{orderId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /orders/{id}/status - Missing authenticated user")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	orderID, err := strconv.ParseInt(vars["orderId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /orders/{id}/status - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	var req TransitionOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /orders/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(orderID, clientID))
	if err != nil {
		switch {
		case errors.Is(err, transitionOrder.ErrInvalidStatus):
			h.logger.Warn("PATCH /orders/{id}/status - Invalid status: order_id=%d, status=%q", orderID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, transitionOrder.ErrInvalidInput):
			h.logger.Warn("PATCH /orders/{id}/status - Invalid input: order_id=%d, error=%v", orderID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, transitionOrder.ErrOrderNotFound):
			h.logger.Warn("PATCH /orders/{id}/status - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, transitionOrder.ErrAccessDenied):
			h.logger.Warn("PATCH /orders/{id}/status - Access denied: order_id=%d, client_id=%d", orderID, clientID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, transitionOrder.ErrInvalidTransition):
			h.logger.Warn("PATCH /orders/{id}/status - Invalid transition: order_id=%d, status=%q", orderID, req.Status)
			handlers.RespondUnprocessable(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /orders/{id}/status - Failed to transition order: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{id}/status - Order transitioned: order_id=%d, status=%s", result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

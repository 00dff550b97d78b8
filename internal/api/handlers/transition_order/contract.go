package transition_order

import (
	"context"

	transitionOrder "github.com/m04kA/SMC-CounselingService/internal/usecase/transition_order"
)

type TransitionOrderUseCase interface {
	Execute(ctx context.Context, req *transitionOrder.Request) (*transitionOrder.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

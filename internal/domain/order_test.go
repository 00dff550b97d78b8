package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsValid(t *testing.T) {
	valid := []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusInProgress,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "status %s must be valid", s)
	}

	assert.False(t, OrderStatus("unknown").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"pending to confirmed", OrderStatusPending, OrderStatusConfirmed, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"pending to completed forbidden", OrderStatusPending, OrderStatusCompleted, false},
		{"pending to in_progress forbidden", OrderStatusPending, OrderStatusInProgress, false},

		{"confirmed to in_progress", OrderStatusConfirmed, OrderStatusInProgress, true},
		{"confirmed to completed", OrderStatusConfirmed, OrderStatusCompleted, true},
		{"confirmed to cancelled", OrderStatusConfirmed, OrderStatusCancelled, true},
		{"confirmed to pending forbidden", OrderStatusConfirmed, OrderStatusPending, false},

		{"in_progress to completed", OrderStatusInProgress, OrderStatusCompleted, true},
		{"in_progress to cancelled", OrderStatusInProgress, OrderStatusCancelled, true},
		{"in_progress to confirmed forbidden", OrderStatusInProgress, OrderStatusConfirmed, false},

		{"completed is terminal", OrderStatusCompleted, OrderStatusCancelled, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusConfirmed.IsTerminal())
	assert.False(t, OrderStatusInProgress.IsTerminal())
}

func TestOrder_CanBeConfirmed(t *testing.T) {
	order := &Order{Status: OrderStatusPending}
	assert.True(t, order.CanBeConfirmed())

	order.Status = OrderStatusConfirmed
	assert.False(t, order.CanBeConfirmed())

	order.Status = OrderStatusCancelled
	assert.False(t, order.CanBeConfirmed())
}

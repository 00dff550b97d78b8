package domain

import "time"

// OrderStatus represents the status of a counseling service order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// orderTransitions единая таблица допустимых переходов статусов заказа.
// Все точки входа (usecase-ы, consistency service) обязаны сверяться с ней.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// IsValid returns true if the status belongs to the enumerated set.
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// IsTerminal returns true if no transition out of the status exists.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0 && s.IsValid()
}

// CanTransitionTo returns true if the transition s -> target is allowed.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Order represents a client's purchase of a multi-session counseling service
type Order struct {
	ID            int64
	ClientID      int64
	DoctorID      int64
	ServiceID     int64
	SessionCount  int
	Amount        float64
	PaymentMethod string
	PaymentStatus string
	Status        OrderStatus

	// Материализованный счётчик завершённых сессий.
	// Инвариант: равен count(appointments where order_id = ID and status = completed)
	// сразу после каждой транзакции, меняющей статус встречи.
	CompletedSessions int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the order has not reached a terminal status.
func (o *Order) IsActive() bool {
	return !o.Status.IsTerminal()
}

// CanBeConfirmed returns true if the order can move to confirmed.
func (o *Order) CanBeConfirmed() bool {
	return o.Status.CanTransitionTo(OrderStatusConfirmed)
}

// CanBeCancelled returns true if the order can move to cancelled.
func (o *Order) CanBeCancelled() bool {
	return o.Status.CanTransitionTo(OrderStatusCancelled)
}

package domain

import "time"

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status.changed"
)

type OrderCreatedEvent struct {
	OrderID   string    `json:"orderId"`
	OwnerID   string    `json:"ownerId"`
	Total     int64     `json:"total"`
	ItemCount int       `json:"itemCount"`
	CreatedAt time.Time `json:"createdAt"`
}

type OrderStatusChangedEvent struct {
	OrderID        string      `json:"orderId"`
	OwnerID        string      `json:"ownerId"`
	PreviousStatus OrderStatus `json:"previousStatus"`
	CurrentStatus  OrderStatus `json:"currentStatus"`
	ChangedAt      time.Time   `json:"changedAt"`
}

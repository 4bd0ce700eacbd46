package domain

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// statusTransitions is the whole state machine. Terminal states map to
// an empty slice so a lookup never confuses "terminal" with "unknown".
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusCompleted},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsValid reports whether s is a known order status.
func (s OrderStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsTerminal reports whether no transition leaves s.
func (s OrderStatus) IsTerminal() bool {
	return s.IsValid() && len(statusTransitions[s]) == 0
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range statusTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// OrderLine is one product/quantity pair within an order. Name and unit
// price are snapshots taken from the catalog when the order was created,
// not live references.
type OrderLine struct {
	ID          uint64 `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID     string `json:"-" gorm:"size:36;not null;index"`
	ProductID   string `json:"productId" gorm:"size:64;not null"`
	ProductName string `json:"productName" gorm:"size:255;not null"`
	Quantity    int    `json:"quantity" gorm:"not null"`
	UnitPrice   int64  `json:"unitPrice" gorm:"not null"`
	TotalPrice  int64  `json:"totalPrice" gorm:"not null"`
}

// Order is the aggregate root. Monetary amounts are integer cents.
// Items and total are immutable after creation; status moves only along
// statusTransitions.
type Order struct {
	ID                string      `json:"id" gorm:"primaryKey;size:36"`
	OwnerID           string      `json:"ownerId" gorm:"size:64;not null;index"`
	Items             []OrderLine `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Total             int64       `json:"total" gorm:"not null"`
	Status            OrderStatus `json:"status" gorm:"type:varchar(16);not null;index;default:'pending'"`
	DeliveryAddress   string      `json:"deliveryAddress" gorm:"size:512;not null"`
	ContactPhone      string      `json:"contactPhone" gorm:"size:32;not null"`
	DeliveryNotes     string      `json:"deliveryNotes,omitempty" gorm:"size:1024"`
	CreatedAt         time.Time   `json:"createdAt" gorm:"index"`
	UpdatedAt         time.Time   `json:"updatedAt"`
	EstimatedDelivery time.Time   `json:"estimatedDelivery"`
}

package repository

import (
	"context"
	"time"

	"github.com/At1ass/Bakery/internal/domain"
)

// ListFilter narrows an order listing. Zero values mean "no filter";
// an empty OwnerID lists orders across all owners.
type ListFilter struct {
	OwnerID  string
	Status   *domain.OrderStatus
	FromDate *time.Time
	ToDate   *time.Time
	MinTotal *int64
	MaxTotal *int64
	Skip     int
	Limit    int
}

// OrderPage is one page of a listing plus enough bookkeeping for the
// client to continue paging.
type OrderPage struct {
	Orders  []domain.Order
	Total   int64
	Skip    int
	Limit   int
	HasMore bool
}

// OrderStore is durable keyed storage for orders.
//
// Get returns domain.ErrOrderNotFound for an absent id. UpdateStatusIf
// applies the status change only when the stored status still equals
// expected, returning domain.ErrConflict when a concurrent update got
// there first.
type OrderStore interface {
	Insert(ctx context.Context, order *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter ListFilter) (*OrderPage, error)
	UpdateStatusIf(ctx context.Context, id string, expected, next domain.OrderStatus) (*domain.Order, error)
}

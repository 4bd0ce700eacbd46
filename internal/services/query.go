package services

import (
	"context"
	"time"

	"github.com/At1ass/Bakery/internal/domain"
	"github.com/At1ass/Bakery/internal/repository"
)

const defaultPageSize = 10

// ListOrdersInput carries listing filters and pagination. Nil pointers
// mean the filter is not applied.
type ListOrdersInput struct {
	Status   *domain.OrderStatus
	FromDate *time.Time
	ToDate   *time.Time
	MinTotal *int64
	MaxTotal *int64
	Skip     int
	Limit    int
}

// OrderQuery is the read-side facade over the order store. It enforces
// per-caller visibility: customers see their own orders, sellers and
// admins see everything.
type OrderQuery struct {
	store       repository.OrderStore
	maxPageSize int
}

func NewOrderQuery(store repository.OrderStore, maxPageSize int) *OrderQuery {
	if maxPageSize <= 0 {
		maxPageSize = 100
	}
	return &OrderQuery{store: store, maxPageSize: maxPageSize}
}

// ListOrders returns one page of orders visible to caller.
func (q *OrderQuery) ListOrders(ctx context.Context, caller domain.Identity, in ListOrdersInput) (*repository.OrderPage, error) {
	if in.Status != nil && !in.Status.IsValid() {
		return nil, &domain.ValidationError{Field: "status", Message: "unknown status " + string(*in.Status)}
	}
	if in.FromDate != nil && in.ToDate != nil && in.FromDate.After(*in.ToDate) {
		return nil, &domain.ValidationError{Field: "fromDate", Message: "fromDate cannot be later than toDate"}
	}
	if in.MinTotal != nil && in.MaxTotal != nil && *in.MinTotal > *in.MaxTotal {
		return nil, &domain.ValidationError{Field: "minTotal", Message: "minTotal cannot be greater than maxTotal"}
	}

	filter := repository.ListFilter{
		Status:   in.Status,
		FromDate: in.FromDate,
		ToDate:   in.ToDate,
		MinTotal: in.MinTotal,
		MaxTotal: in.MaxTotal,
		Skip:     in.Skip,
		Limit:    in.Limit,
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > q.maxPageSize {
		filter.Limit = q.maxPageSize
	}
	if !caller.Elevated() {
		filter.OwnerID = caller.ID
	}

	return q.store.List(ctx, filter)
}

// GetOrder returns the order when it exists and is visible to caller.
// An order belonging to someone else reads exactly like a missing one,
// so callers cannot probe for other users' order ids.
func (q *OrderQuery) GetOrder(ctx context.Context, caller domain.Identity, orderID string) (*domain.Order, error) {
	order, err := q.store.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.OwnerID != caller.ID && !caller.Elevated() {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

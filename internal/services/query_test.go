package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/At1ass/Bakery/internal/domain"
	"github.com/At1ass/Bakery/internal/mocks"
	"github.com/At1ass/Bakery/internal/repository"
)

func TestOrderQuery_GetOrder(t *testing.T) {
	customer := *testIdentity(domain.RoleCustomer)
	admin := domain.Identity{ID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin}
	stranger := domain.Identity{ID: "other-user", Email: "other@example.com", Role: domain.RoleCustomer}

	tests := []struct {
		name       string
		caller     domain.Identity
		setupMocks func(*mocks.MockOrderStore)
		check      func(*testing.T, *domain.Order, error)
	}{
		{
			name:   "owner sees own order",
			caller: customer,
			setupMocks: func(store *mocks.MockOrderStore) {
				store.On("Get", mock.Anything, testOrderID).Return(testOrder(testOrderID, testOwnerID, domain.StatusPending), nil)
			},
			check: func(t *testing.T, order *domain.Order, err error) {
				assert.NoError(t, err)
				assert.Equal(t, testOrderID, order.ID)
			},
		},
		{
			name:   "admin sees any order",
			caller: admin,
			setupMocks: func(store *mocks.MockOrderStore) {
				store.On("Get", mock.Anything, testOrderID).Return(testOrder(testOrderID, testOwnerID, domain.StatusPending), nil)
			},
			check: func(t *testing.T, order *domain.Order, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:   "someone else's order reads as not found",
			caller: stranger,
			setupMocks: func(store *mocks.MockOrderStore) {
				store.On("Get", mock.Anything, testOrderID).Return(testOrder(testOrderID, testOwnerID, domain.StatusPending), nil)
			},
			check: func(t *testing.T, order *domain.Order, err error) {
				assert.Nil(t, order)
				assert.ErrorIs(t, err, domain.ErrOrderNotFound)
			},
		},
		{
			name:   "truly missing order",
			caller: customer,
			setupMocks: func(store *mocks.MockOrderStore) {
				store.On("Get", mock.Anything, testOrderID).Return(nil, domain.ErrOrderNotFound)
			},
			check: func(t *testing.T, order *domain.Order, err error) {
				assert.ErrorIs(t, err, domain.ErrOrderNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.MockOrderStore)
			tt.setupMocks(store)

			q := NewOrderQuery(store, 100)
			order, err := q.GetOrder(context.Background(), tt.caller, testOrderID)

			tt.check(t, order, err)
			store.AssertExpectations(t)
		})
	}
}

func TestOrderQuery_ListOrders_Visibility(t *testing.T) {
	customer := *testIdentity(domain.RoleCustomer)
	seller := domain.Identity{ID: "seller-1", Email: "seller@example.com", Role: domain.RoleSeller}

	t.Run("customer listing is scoped to own orders", func(t *testing.T) {
		store := new(mocks.MockOrderStore)
		store.On("List", mock.Anything, mock.MatchedBy(func(f repository.ListFilter) bool {
			return f.OwnerID == customer.ID
		})).Return(&repository.OrderPage{}, nil)

		q := NewOrderQuery(store, 100)
		_, err := q.ListOrders(context.Background(), customer, ListOrdersInput{})

		assert.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("seller listing is unscoped", func(t *testing.T) {
		store := new(mocks.MockOrderStore)
		store.On("List", mock.Anything, mock.MatchedBy(func(f repository.ListFilter) bool {
			return f.OwnerID == ""
		})).Return(&repository.OrderPage{}, nil)

		q := NewOrderQuery(store, 100)
		_, err := q.ListOrders(context.Background(), seller, ListOrdersInput{})

		assert.NoError(t, err)
		store.AssertExpectations(t)
	})
}

func TestOrderQuery_ListOrders_Pagination(t *testing.T) {
	customer := *testIdentity(domain.RoleCustomer)

	tests := []struct {
		name      string
		input     ListOrdersInput
		wantSkip  int
		wantLimit int
	}{
		{name: "defaults", input: ListOrdersInput{}, wantSkip: 0, wantLimit: 10},
		{name: "explicit page", input: ListOrdersInput{Skip: 30, Limit: 25}, wantSkip: 30, wantLimit: 25},
		{name: "limit clamped to max", input: ListOrdersInput{Limit: 5000}, wantSkip: 0, wantLimit: 100},
		{name: "negative skip reset", input: ListOrdersInput{Skip: -5}, wantSkip: 0, wantLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.MockOrderStore)
			store.On("List", mock.Anything, mock.MatchedBy(func(f repository.ListFilter) bool {
				return f.Skip == tt.wantSkip && f.Limit == tt.wantLimit
			})).Return(&repository.OrderPage{}, nil)

			q := NewOrderQuery(store, 100)
			_, err := q.ListOrders(context.Background(), customer, tt.input)

			assert.NoError(t, err)
			store.AssertExpectations(t)
		})
	}
}

func TestOrderQuery_ListOrders_FilterValidation(t *testing.T) {
	customer := *testIdentity(domain.RoleCustomer)
	later := time.Now()
	earlier := later.Add(-time.Hour)
	badStatus := domain.OrderStatus("shipped")
	min := int64(5000)
	max := int64(100)

	tests := []struct {
		name  string
		input ListOrdersInput
	}{
		{name: "unknown status", input: ListOrdersInput{Status: &badStatus}},
		{name: "inverted date range", input: ListOrdersInput{FromDate: &later, ToDate: &earlier}},
		{name: "inverted total range", input: ListOrdersInput{MinTotal: &min, MaxTotal: &max}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.MockOrderStore)
			q := NewOrderQuery(store, 100)

			_, err := q.ListOrders(context.Background(), customer, tt.input)

			assert.ErrorIs(t, err, domain.ErrValidation)
			store.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderQuery_ListOrders_PassesFiltersThrough(t *testing.T) {
	customer := *testIdentity(domain.RoleCustomer)
	status := domain.StatusPreparing
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	store := new(mocks.MockOrderStore)
	store.On("List", mock.Anything, mock.MatchedBy(func(f repository.ListFilter) bool {
		return f.Status != nil && *f.Status == status &&
			f.FromDate != nil && f.FromDate.Equal(from) &&
			f.ToDate != nil && f.ToDate.Equal(to)
	})).Return(&repository.OrderPage{
		Orders:  []domain.Order{*testOrder(testOrderID, customer.ID, status)},
		Total:   1,
		Limit:   10,
		HasMore: false,
	}, nil)

	q := NewOrderQuery(store, 100)
	page, err := q.ListOrders(context.Background(), customer, ListOrdersInput{
		Status:   &status,
		FromDate: &from,
		ToDate:   &to,
	})

	assert.NoError(t, err)
	assert.Len(t, page.Orders, 1)
	assert.Equal(t, int64(1), page.Total)
	store.AssertExpectations(t)
}

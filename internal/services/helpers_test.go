package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/At1ass/Bakery/internal/domain"
	"github.com/At1ass/Bakery/internal/infra"
	"github.com/At1ass/Bakery/internal/metrics"
	"github.com/At1ass/Bakery/internal/mocks"
)

const (
	testOwnerID  = "user-1"
	testOrderID  = "6a9f3c52-0c1d-4a7e-9b2f-16f0a1f4d8aa"
	testCakeID   = "cake-1"
	testCakeName = "Chocolate Cake"
)

func newTestMetrics() *metrics.OrderMetrics {
	return metrics.New(prometheus.NewRegistry())
}

func newTestAssembler(store *mocks.MockOrderStore, identity *mocks.MockIdentityVerifier, catalog *mocks.MockCatalogResolver, pub *mocks.MockPublisher) *OrderAssembler {
	return NewOrderAssembler(store, identity, catalog, pub, newTestMetrics(), zap.NewNop())
}

func newTestLifecycle(store *mocks.MockOrderStore, pub *mocks.MockPublisher) *OrderLifecycle {
	return NewOrderLifecycle(store, pub, newTestMetrics(), zap.NewNop())
}

func testIdentity(role domain.Role) *domain.Identity {
	return &domain.Identity{ID: testOwnerID, Email: "user@example.com", Role: role}
}

func testProduct(id, name string, price int64, available bool) infra.ProductInfo {
	return infra.ProductInfo{ID: id, Name: name, Price: price, Available: available}
}

func testOrder(id, ownerID string, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:      id,
		OwnerID: ownerID,
		Status:  status,
		Items: []domain.OrderLine{
			{ProductID: testCakeID, ProductName: testCakeName, Quantity: 2, UnitPrice: 1250, TotalPrice: 2500},
		},
		Total:           2500,
		DeliveryAddress: "12 Rosemary Lane, Springfield",
		ContactPhone:    "+48123456789",
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}
}

func validInput() CreateOrderInput {
	return CreateOrderInput{
		Items:           []OrderItemInput{{ProductID: testCakeID, Quantity: 2}},
		DeliveryAddress: "12 Rosemary Lane, Springfield",
		ContactPhone:    "+48123456789",
	}
}

package services

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/At1ass/Bakery/internal/domain"
	"github.com/At1ass/Bakery/internal/infra"
	"github.com/At1ass/Bakery/internal/infra/rabbitmq"
	"github.com/At1ass/Bakery/internal/metrics"
	"github.com/At1ass/Bakery/internal/repository"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{9,15}$`)

const minAddressLength = 10

// OrderItemInput is one requested product/quantity pair. Prices are
// never accepted from the client.
type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// CreateOrderInput is the raw order request after transport decoding.
type CreateOrderInput struct {
	Items           []OrderItemInput
	DeliveryAddress string
	ContactPhone    string
	DeliveryNotes   string
}

// Validate checks the structural constraints that must hold before any
// remote call is made.
func (in CreateOrderInput) Validate() error {
	if len(in.Items) == 0 {
		return &domain.ValidationError{Field: "items", Message: "order must contain at least one item"}
	}
	seen := make(map[string]bool, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" {
			return &domain.ValidationError{Field: "items", Message: "productId must not be empty"}
		}
		if item.Quantity < 1 {
			return &domain.ValidationError{Field: "items", Message: "quantity must be a positive integer"}
		}
		if seen[item.ProductID] {
			return &domain.ValidationError{Field: "items", Message: "duplicate productId " + item.ProductID}
		}
		seen[item.ProductID] = true
	}
	if len(strings.TrimSpace(in.DeliveryAddress)) < minAddressLength {
		return &domain.ValidationError{Field: "deliveryAddress", Message: "address must be at least 10 characters"}
	}
	if !phonePattern.MatchString(in.ContactPhone) {
		return &domain.ValidationError{Field: "contactPhone", Message: "phone must be 9-15 digits with an optional leading +"}
	}
	return nil
}

// OrderAssembler turns a raw order request into a priced, validated,
// persisted order. It is the only writer of new orders.
type OrderAssembler struct {
	store     repository.OrderStore
	identity  infra.IdentityVerifier
	catalog   infra.CatalogResolver
	publisher rabbitmq.PublisherInterface
	metrics   *metrics.OrderMetrics
	logger    *zap.Logger
}

func NewOrderAssembler(
	store repository.OrderStore,
	identity infra.IdentityVerifier,
	catalog infra.CatalogResolver,
	publisher rabbitmq.PublisherInterface,
	m *metrics.OrderMetrics,
	logger *zap.Logger,
) *OrderAssembler {
	return &OrderAssembler{
		store:     store,
		identity:  identity,
		catalog:   catalog,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// CreateOrder validates the request, resolves the caller and the
// catalog snapshot concurrently, computes the authoritative total and
// persists the order. Persistence is the final step: any earlier
// failure leaves nothing behind, so the caller may safely resubmit the
// identical request.
func (a *OrderAssembler) CreateOrder(ctx context.Context, credential string, in CreateOrderInput) (*domain.Order, error) {
	start := time.Now()

	if err := in.Validate(); err != nil {
		return nil, err
	}

	productIDs := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	// Neither resolve depends on the other; run both and let the first
	// failure cancel the sibling.
	var (
		caller   *domain.Identity
		products map[string]infra.ProductInfo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resolved, err := a.identity.Resolve(gctx, credential)
		if err != nil {
			a.observeDependency("identity", err)
			return err
		}
		a.observeDependency("identity", nil)
		caller = resolved
		return nil
	})
	g.Go(func() error {
		resolved, err := a.catalog.ResolveBatch(gctx, productIDs)
		if err != nil {
			a.observeDependency("catalog", err)
			return err
		}
		a.observeDependency("catalog", nil)
		products = resolved
		return nil
	})
	if err := g.Wait(); err != nil {
		a.metrics.ObserveCreate(start, false)
		return nil, err
	}

	var unavailable []string
	for _, id := range productIDs {
		p, ok := products[id]
		if !ok || !p.Available {
			unavailable = append(unavailable, id)
		}
	}
	if len(unavailable) > 0 {
		sort.Strings(unavailable)
		a.metrics.ObserveCreate(start, false)
		return nil, &domain.UnavailableItemsError{ProductIDs: unavailable}
	}

	lines := make([]domain.OrderLine, 0, len(in.Items))
	var total int64
	for _, item := range in.Items {
		p := products[item.ProductID]
		lineTotal := p.Price * int64(item.Quantity)
		total += lineTotal
		lines = append(lines, domain.OrderLine{
			ProductID:   item.ProductID,
			ProductName: p.Name,
			Quantity:    item.Quantity,
			UnitPrice:   p.Price,
			TotalPrice:  lineTotal,
		})
	}

	order := &domain.Order{
		OwnerID:         caller.ID,
		Items:           lines,
		Total:           total,
		Status:          domain.StatusPending,
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
		ContactPhone:    in.ContactPhone,
		DeliveryNotes:   strings.TrimSpace(in.DeliveryNotes),
	}

	if err := a.store.Insert(ctx, order); err != nil {
		a.logger.Error("order insert failed", zap.String("ownerId", caller.ID), zap.Error(err))
		a.metrics.ObserveCreate(start, false)
		return nil, err
	}

	a.logger.Info("order created",
		zap.String("orderId", order.ID),
		zap.String("ownerId", order.OwnerID),
		zap.Int64("total", order.Total),
		zap.Int("items", len(order.Items)))
	a.metrics.ObserveCreate(start, true)

	go a.publishCreated(order)

	return order, nil
}

// publishCreated emits order.created best-effort; a broker outage never
// fails an already persisted order.
func (a *OrderAssembler) publishCreated(order *domain.Order) {
	evt := domain.OrderCreatedEvent{
		OrderID:   order.ID,
		OwnerID:   order.OwnerID,
		Total:     order.Total,
		ItemCount: len(order.Items),
		CreatedAt: order.CreatedAt,
	}
	if err := a.publisher.Publish(context.Background(), domain.EventOrderCreated, evt); err != nil {
		a.logger.Warn("failed to publish order.created", zap.String("orderId", order.ID), zap.Error(err))
	}
}

func (a *OrderAssembler) observeDependency(dependency string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	a.metrics.DependencyRequests.WithLabelValues(dependency, outcome).Inc()
}

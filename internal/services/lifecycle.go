package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/At1ass/Bakery/internal/domain"
	"github.com/At1ass/Bakery/internal/infra/rabbitmq"
	"github.com/At1ass/Bakery/internal/metrics"
	"github.com/At1ass/Bakery/internal/repository"
)

// OrderLifecycle owns the status state machine. All status mutations go
// through ApplyTransition.
type OrderLifecycle struct {
	store     repository.OrderStore
	publisher rabbitmq.PublisherInterface
	metrics   *metrics.OrderMetrics
	logger    *zap.Logger
}

func NewOrderLifecycle(
	store repository.OrderStore,
	publisher rabbitmq.PublisherInterface,
	m *metrics.OrderMetrics,
	logger *zap.Logger,
) *OrderLifecycle {
	return &OrderLifecycle{
		store:     store,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// ApplyTransition moves the order to target if the state machine allows
// it from the currently observed status. The write is conditional on
// that observed status, so of two racing transitions exactly one
// commits; the loser gets domain.ErrConflict and must re-read.
func (l *OrderLifecycle) ApplyTransition(ctx context.Context, caller domain.Identity, orderID string, target domain.OrderStatus) (*domain.Order, error) {
	if !target.IsValid() {
		return nil, &domain.ValidationError{Field: "status", Message: "unknown status " + string(target)}
	}

	order, err := l.store.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.OwnerID != caller.ID && !caller.Elevated() {
		return nil, domain.ErrForbidden
	}

	if !order.Status.CanTransitionTo(target) {
		return nil, &domain.InvalidTransitionError{From: order.Status, To: target}
	}

	updated, err := l.store.UpdateStatusIf(ctx, orderID, order.Status, target)
	if err != nil {
		return nil, err
	}

	l.logger.Info("order status changed",
		zap.String("orderId", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(target)),
		zap.String("actorId", caller.ID))
	l.metrics.StatusTransitions.WithLabelValues(string(order.Status), string(target)).Inc()

	go l.publishStatusChanged(order.Status, updated)

	return updated, nil
}

// Cancel aborts the order. Cancellation is an ordinary transition, so
// it is rejected from ready and from terminal states.
func (l *OrderLifecycle) Cancel(ctx context.Context, caller domain.Identity, orderID string) (*domain.Order, error) {
	return l.ApplyTransition(ctx, caller, orderID, domain.StatusCancelled)
}

func (l *OrderLifecycle) publishStatusChanged(previous domain.OrderStatus, order *domain.Order) {
	evt := domain.OrderStatusChangedEvent{
		OrderID:        order.ID,
		OwnerID:        order.OwnerID,
		PreviousStatus: previous,
		CurrentStatus:  order.Status,
		ChangedAt:      order.UpdatedAt,
	}
	if err := l.publisher.Publish(context.Background(), domain.EventOrderStatusChanged, evt); err != nil {
		l.logger.Warn("failed to publish order.status.changed", zap.String("orderId", order.ID), zap.Error(err))
	}
}

package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/At1ass/Bakery/internal/domain"
	"github.com/At1ass/Bakery/internal/repository"
)

// estimatedDeliveryLead is how far past creation the kitchen promises
// the order.
const estimatedDeliveryLead = 2 * time.Hour

type orderStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewOrderStore(db *gorm.DB) repository.OrderStore {
	return &orderStore{db: db, now: time.Now}
}

// Insert persists the order and its lines in one transaction. The store
// assigns id and timestamps; a failed insert leaves no rows behind.
func (r *orderStore) Insert(ctx context.Context, order *domain.Order) error {
	now := r.now().UTC()
	order.ID = uuid.NewString()
	order.CreatedAt = now
	order.UpdatedAt = now
	order.EstimatedDelivery = now.Add(estimatedDeliveryLead)
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *orderStore) Get(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderStore) List(ctx context.Context, filter repository.ListFilter) (*repository.OrderPage, error) {
	q := r.db.WithContext(ctx).Model(&domain.Order{})

	if filter.OwnerID != "" {
		q = q.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		q = q.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		q = q.Where("created_at <= ?", *filter.ToDate)
	}
	if filter.MinTotal != nil {
		q = q.Where("total >= ?", *filter.MinTotal)
	}
	if filter.MaxTotal != nil {
		q = q.Where("total <= ?", *filter.MaxTotal)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var orders []domain.Order
	err := q.Preload("Items").
		Order("created_at DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return &repository.OrderPage{
		Orders:  orders,
		Total:   total,
		Skip:    filter.Skip,
		Limit:   filter.Limit,
		HasMore: int64(filter.Skip+len(orders)) < total,
	}, nil
}

// UpdateStatusIf performs the optimistic conditional update: the status
// changes only when the row still holds expected. Zero rows affected is
// disambiguated into not-found versus lost-race by re-reading.
func (r *orderStore) UpdateStatusIf(ctx context.Context, id string, expected, next domain.OrderStatus) (*domain.Order, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(map[string]any{
			"status":     next,
			"updated_at": r.now().UTC(),
		})
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrConflict
	}

	return r.Get(ctx, id)
}

package http

import (
	"github.com/At1ass/Bakery/internal/domain"
	"github.com/At1ass/Bakery/internal/services"
)

type OrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress string             `json:"deliveryAddress" binding:"required"`
	ContactPhone    string             `json:"contactPhone" binding:"required"`
	DeliveryNotes   string             `json:"deliveryNotes"`
}

func (r CreateOrderRequest) toInput() services.CreateOrderInput {
	items := make([]services.OrderItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, services.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return services.CreateOrderInput{
		Items:           items,
		DeliveryAddress: r.DeliveryAddress,
		ContactPhone:    r.ContactPhone,
		DeliveryNotes:   r.DeliveryNotes,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderListResponse struct {
	Orders  []domain.Order `json:"orders"`
	Total   int64          `json:"total"`
	Skip    int            `json:"skip"`
	Limit   int            `json:"limit"`
	HasMore bool           `json:"hasMore"`
}

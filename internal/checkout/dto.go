package checkout

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/brunomacedo/vitrinezap-backend/pkg/db/models"
	"github.com/brunomacedo/vitrinezap-backend/pkg/enums"
)

// OrderDTO is the checkout response payload.
type OrderDTO struct {
	ID            string              `json:"id"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	TotalItems    int                 `json:"total_items"`
	DispatchRef   *string             `json:"dispatch_ref,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	ItemCount     int                 `json:"item_count"`
}

func orderDTO(order *models.Order) *OrderDTO {
	return &OrderDTO{
		ID:            order.ID.String(),
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		TotalAmount:   order.TotalAmount,
		TotalItems:    order.TotalItems,
		DispatchRef:   order.DispatchRef,
		CreatedAt:     order.CreatedAt,
		ItemCount:     len(order.Items),
	}
}

package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/namas-shop/namas-backend/pkg/db/models"
	"github.com/namas-shop/namas-backend/pkg/enums"
	"github.com/namas-shop/namas-backend/pkg/types"
)

// OrderDTO is the client-facing order shape.
type OrderDTO struct {
	OrderID         string               `json:"order_id"`
	User            string               `json:"user"`
	Amount          decimal.Decimal      `json:"amount"`
	ShippingAddress *string              `json:"shipping_address"`
	Status          enums.OrderStatus    `json:"status"`
	CreatedAt       time.Time            `json:"created_at"`
	Items           types.OrderLineItems `json:"items"`
}

// ToDTO converts a persisted order to its response shape.
func ToDTO(order *models.Order) OrderDTO {
	items := order.Items
	if items == nil {
		items = types.OrderLineItems{}
	}
	return OrderDTO{
		OrderID:         order.ID.String(),
		User:            order.UserID.String(),
		Amount:          order.Amount,
		ShippingAddress: order.ShippingAddress,
		Status:          order.Status,
		CreatedAt:       order.CreatedAt,
		Items:           items,
	}
}

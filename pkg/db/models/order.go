package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/namas-shop/namas-backend/pkg/enums"
	"github.com/namas-shop/namas-backend/pkg/types"
)

// Order is the immutable checkout snapshot. Only Status changes after
// creation, via fulfillment tooling outside this API.
type Order struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	UserID          uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	Amount          decimal.Decimal      `gorm:"column:amount;type:numeric(10,2);not null"`
	ShippingAddress *string              `gorm:"column:shipping_address"`
	Status          enums.OrderStatus    `gorm:"column:status;not null;default:'pending'"`
	Items           types.OrderLineItems `gorm:"column:items;serializer:json"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

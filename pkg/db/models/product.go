package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/namas-shop/namas-backend/pkg/enums"
	"github.com/namas-shop/namas-backend/pkg/types"
)

// Product represents a catalog listing, including bead components and the
// customized bracelets synthesized by the cart reconciler.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Name        string                `gorm:"column:name;not null"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null"`
	Category    enums.ProductCategory `gorm:"column:category;not null"`
	Description *string               `gorm:"column:description"`
	Inventory   int                   `gorm:"column:inventory;not null"`
	SalesCount  int                   `gorm:"column:sales_count;not null;default:0"`
	Rating      *decimal.Decimal      `gorm:"column:rating;type:numeric(3,2)"`
	Beads       types.BeadRefs        `gorm:"column:beads;serializer:json"`
	Images      []ProductImage        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

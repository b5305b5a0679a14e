package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/namas-shop/namas-backend/pkg/enums"
	"github.com/namas-shop/namas-backend/pkg/types"
)

// ProductDTO is the client-facing product shape, image keys already resolved
// to URLs.
type ProductDTO struct {
	ProductID   string                `json:"product_id"`
	Name        string                `json:"name"`
	Images      []string              `json:"images"`
	Price       decimal.Decimal       `json:"price"`
	Category    enums.ProductCategory `json:"category"`
	Description *string               `json:"description"`
	Inventory   int                   `json:"inventory"`
	Rating      *decimal.Decimal      `json:"rating"`
	Beads       types.BeadRefs        `json:"beads"`
}

// ListQuery carries the browse filters. Category nil means "storefront
// default": hidden categories excluded.
type ListQuery struct {
	Category *enums.ProductCategory
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
	SortBy   string
	Order    string
	Page     int
}

// Paginated reports whether the query is subject to page windowing. Bead
// listings are always returned whole so the bracelet builder can show every
// component.
func (q ListQuery) Paginated() bool {
	return q.Category == nil || *q.Category != enums.CategoryBead
}

// CreateProductInput captures everything needed to persist a new product.
type CreateProductInput struct {
	Name        string
	Price       decimal.Decimal
	Category    enums.ProductCategory
	Description *string
	Inventory   int
	Beads       types.BeadRefs
	ImageKeys   []string
}

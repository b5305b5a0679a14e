package cart

import (
	"github.com/shopspring/decimal"

	"github.com/namas-shop/namas-backend/pkg/enums"
	"github.com/namas-shop/namas-backend/pkg/types"
)

// ItemDTO is the client-facing cart line, product attributes flattened in.
type ItemDTO struct {
	ProductID string                `json:"product_id"`
	Name      string                `json:"name"`
	Price     decimal.Decimal       `json:"price"`
	Category  enums.ProductCategory `json:"category"`
	Quantity  int                   `json:"quantity"`
	Inventory int                   `json:"inventory"`
	Images    []string              `json:"images"`
	Beads     types.BeadRefs        `json:"beads"`
}

// CartDTO wraps the reconciled line set for the write response.
type CartDTO struct {
	CartItems []ItemDTO `json:"cart_items"`
}

// SubmittedItem is one entry of a full-replace cart submission. ProductID is
// empty when the client wants a customized bracelet synthesized server-side.
type SubmittedItem struct {
	ProductID string                `json:"product_id"`
	Category  enums.ProductCategory `json:"category"`
	Quantity  int                   `json:"quantity"`
	Beads     types.BeadRefs        `json:"beads"`
}

// ReconcileResult carries the reconciled cart and the ordered advisory
// messages produced while applying stock rules.
type ReconcileResult struct {
	Cart     CartDTO
	Messages []string
}

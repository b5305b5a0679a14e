package types

// OrderLineItem is the immutable per-product snapshot embedded in an order.
// Price is captured as its decimal string form at checkout time; later
// catalog edits never change historical orders.
type OrderLineItem struct {
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	Price     string   `json:"price"`
	Quantity  int      `json:"quantity"`
	Image     *string  `json:"image"`
	Beads     BeadRefs `json:"beads"`
}

// OrderLineItems is persisted as a JSON column via GORM's json serializer.
type OrderLineItems []OrderLineItem

package enums

// ProductCategory enumerates the catalog product kinds.
type ProductCategory string

const (
	CategoryBracelet           ProductCategory = "bracelet"
	CategoryNecklace           ProductCategory = "necklace"
	CategoryRing               ProductCategory = "ring"
	CategoryCustomizedBracelet ProductCategory = "customized_bracelet"
	CategoryBead               ProductCategory = "bead"
)

func (c ProductCategory) IsValid() bool {
	switch c {
	case CategoryBracelet, CategoryNecklace, CategoryRing, CategoryCustomizedBracelet, CategoryBead:
		return true
	default:
		return false
	}
}

// HiddenCategories are never returned by the browse endpoints unless
// explicitly requested: beads are bracelet components and customized
// bracelets belong to a single cart.
var HiddenCategories = []ProductCategory{CategoryCustomizedBracelet, CategoryBead}

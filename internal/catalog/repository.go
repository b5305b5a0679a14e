package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/namas-shop/namas-backend/pkg/db/models"
	"github.com/namas-shop/namas-backend/pkg/enums"
	"github.com/namas-shop/namas-backend/pkg/pagination"
)

// sortColumns whitelists the order-by targets the browse endpoint accepts.
var sortColumns = map[string]string{
	"price":       "price",
	"rating":      "rating",
	"sales_count": "sales_count",
	"created_at":  "created_at",
}

const defaultSortColumn = "sales_count"

// Repository provides product persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to a transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create persists the product and any image rows attached to it.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID loads a product with its images.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, uploaded_at ASC") }).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBead resolves an ID to an existing product of category bead.
func (r *Repository) FindBead(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND category = ?", id, enums.CategoryBead).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List applies the browse filters, sorting and page windowing.
func (r *Repository) List(ctx context.Context, q ListQuery) ([]models.Product, error) {
	query := r.filtered(ctx, q)

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = defaultSortColumn
	}
	direction := "DESC"
	if q.Order == "asc" {
		direction = "ASC"
	}
	query = query.Order(column + " " + direction)

	if q.Paginated() {
		query = query.Offset(pagination.Offset(q.Page)).Limit(pagination.PageSize)
	}

	var products []models.Product
	if err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, uploaded_at ASC") }).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Count returns how many products match the browse filters.
func (r *Repository) Count(ctx context.Context, q ListQuery) (int64, error) {
	var total int64
	if err := r.filtered(ctx, q).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *Repository) filtered(ctx context.Context, q ListQuery) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if q.Category != nil {
		query = query.Where("category = ?", *q.Category)
	} else {
		query = query.Where("category NOT IN ?", enums.HiddenCategories)
	}
	if q.PriceMin != nil {
		query = query.Where("price >= ?", *q.PriceMin)
	}
	if q.PriceMax != nil {
		query = query.Where("price <= ?", *q.PriceMax)
	}

	// Sold-out products are never browsable.
	return query.Where("inventory > 0")
}

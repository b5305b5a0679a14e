package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/namas-shop/namas-backend/pkg/db"
	"github.com/namas-shop/namas-backend/pkg/db/models"
	"github.com/namas-shop/namas-backend/pkg/enums"
	pkgerrors "github.com/namas-shop/namas-backend/pkg/errors"
	"github.com/namas-shop/namas-backend/pkg/media"
	"github.com/namas-shop/namas-backend/pkg/pagination"
	"github.com/namas-shop/namas-backend/pkg/types"
)

// Service exposes catalog browsing and product creation.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Get(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	List(ctx context.Context, q ListQuery) ([]ProductDTO, error)
	PageCount(ctx context.Context, q ListQuery) (int, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	resolver *media.Resolver
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client, resolver *media.Resolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("media resolver required")
	}
	return &service{repo: repo, dbClient: dbClient, resolver: resolver}, nil
}

// Validate enforces the model invariants before any write. Bead lookups run
// against the same handle as the pending insert so the check holds inside a
// transaction.
func Validate(ctx context.Context, repo *Repository, product *models.Product) error {
	if product.Category == enums.CategoryCustomizedBracelet {
		if len(product.Beads) != types.RequiredBeadCount {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid bead composition").
				WithDetails(map[string][]string{
					"beads": {"Customized bracelets must have exactly 12 beads."},
				})
		}
		for _, ref := range product.Beads {
			if _, err := repo.FindBead(ctx, ref.BeadID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeValidation, "unknown bead reference").
						WithDetails(map[string][]string{
							"beads": {fmt.Sprintf("Bead with ID %s does not exist or is not a valid bead.", ref.BeadID)},
						})
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load bead")
			}
		}
	}

	if product.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "negative price").
			WithDetails(map[string][]string{
				"price": {"Price must be a positive number."},
			})
	}
	return nil
}

// Create validates and persists a new product. Customized bracelets created
// without an explicit image get the stock default.
func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").
			WithDetails(map[string][]string{
				"category": {fmt.Sprintf("%q is not a valid choice.", input.Category)},
			})
	}

	product := &models.Product{
		Name:        input.Name,
		Price:       input.Price,
		Category:    input.Category,
		Description: input.Description,
		Inventory:   input.Inventory,
		Beads:       input.Beads,
	}

	imageKeys := input.ImageKeys
	if input.Category == enums.CategoryCustomizedBracelet && len(imageKeys) == 0 {
		imageKeys = []string{media.DefaultCustomBraceletKey}
	}
	for i, key := range imageKeys {
		product.Images = append(product.Images, models.ProductImage{Key: key, Position: i})
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := Validate(ctx, txRepo, product); err != nil {
			return err
		}
		if err := txRepo.Create(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	dto := s.toDTO(product)
	return &dto, nil
}

// Get loads a single product by ID.
func (s *service) Get(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	dto := s.toDTO(product)
	return &dto, nil
}

// List returns the browse window for the supplied filters.
func (s *service) List(ctx context.Context, q ListQuery) ([]ProductDTO, error) {
	products, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, s.toDTO(&products[i]))
	}
	return dtos, nil
}

// PageCount computes how many browse pages the filters produce.
func (s *service) PageCount(ctx context.Context, q ListQuery) (int, error) {
	total, err := s.repo.Count(ctx, q)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count products")
	}
	return pagination.PageCount(total), nil
}

func (s *service) toDTO(product *models.Product) ProductDTO {
	beads := product.Beads
	if beads == nil {
		beads = types.BeadRefs{}
	}
	return ProductDTO{
		ProductID:   product.ID.String(),
		Name:        product.Name,
		Images:      s.resolver.ProductURLs(product.Images),
		Price:       product.Price,
		Category:    product.Category,
		Description: product.Description,
		Inventory:   product.Inventory,
		Rating:      product.Rating,
		Beads:       beads,
	}
}

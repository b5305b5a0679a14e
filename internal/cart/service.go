package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/namas-shop/namas-backend/internal/catalog"
	"github.com/namas-shop/namas-backend/pkg/db"
	"github.com/namas-shop/namas-backend/pkg/db/models"
	"github.com/namas-shop/namas-backend/pkg/enums"
	pkgerrors "github.com/namas-shop/namas-backend/pkg/errors"
	"github.com/namas-shop/namas-backend/pkg/media"
	"github.com/namas-shop/namas-backend/pkg/types"
)

// CustomBraceletName is the catalog name given to bracelets synthesized
// during cart reconciliation.
const CustomBraceletName = "Custom Bracelet"

// Service exposes the per-user cart operations.
type Service interface {
	Items(ctx context.Context, userID uuid.UUID) ([]ItemDTO, error)
	Reconcile(ctx context.Context, userID uuid.UUID, submitted []SubmittedItem) (*ReconcileResult, error)
}

type service struct {
	repo          *Repository
	catalogRepo   *catalog.Repository
	dbClient      *db.Client
	resolver      *media.Resolver
	beadUnitPrice decimal.Decimal
}

// NewService constructs a cart service instance.
func NewService(repo *Repository, catalogRepo *catalog.Repository, dbClient *db.Client, resolver *media.Resolver, beadUnitPrice decimal.Decimal) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("media resolver required")
	}
	return &service{
		repo:          repo,
		catalogRepo:   catalogRepo,
		dbClient:      dbClient,
		resolver:      resolver,
		beadUnitPrice: beadUnitPrice,
	}, nil
}

// Items returns the user's current cart lines. A user who has never written
// a cart gets an empty list, not an error.
func (s *service) Items(ctx context.Context, userID uuid.UUID) ([]ItemDTO, error) {
	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []ItemDTO{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart")
	}

	items, err := s.repo.ItemsWithProducts(ctx, cart.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart items")
	}
	return s.toItemDTOs(items), nil
}

// Reconcile replaces the cart's contents with the submitted lines, applying
// stock rules per line. Policy, all observable to clients:
//   - the existing lines are dropped unconditionally before applying the
//     submission (full replace, not a merge);
//   - a product_id that resolves to nothing is skipped without error;
//   - a sold-out product is dropped with an advisory message;
//   - a quantity above stock is clamped with an advisory message.
//
// The whole replacement runs in one transaction.
func (s *service) Reconcile(ctx context.Context, userID uuid.UUID, submitted []SubmittedItem) (*ReconcileResult, error) {
	var (
		messages = []string{}
		items    []models.CartItem
	)

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		catalogRepo := s.catalogRepo.WithTx(tx)

		cart, err := repo.GetOrCreate(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: get or create cart")
		}

		if err := repo.DeleteItems(ctx, cart.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear cart")
		}

		for _, line := range submitted {
			productID, ok, err := s.resolveProductID(ctx, catalogRepo, line)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}

			product, err := catalogRepo.FindByID(ctx, productID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
			}

			if product.Inventory == 0 {
				if err := repo.DeleteItem(ctx, cart.ID, product.ID); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: drop cart item")
				}
				messages = append(messages, fmt.Sprintf("Product %s is out of stock and removed from the cart.", product.Name))
				continue
			}

			quantity := line.Quantity
			if quantity > product.Inventory {
				quantity = product.Inventory
				messages = append(messages, fmt.Sprintf("Product %s quantity adjusted to available stock: %d.", product.Name, quantity))
			}

			item := &models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: quantity}
			if err := repo.UpsertItem(ctx, item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: upsert cart item")
			}
		}

		items, err = repo.ItemsWithProducts(ctx, cart.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart items")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ReconcileResult{
		Cart:     CartDTO{CartItems: s.toItemDTOs(items)},
		Messages: messages,
	}, nil
}

// resolveProductID maps a submitted line onto a product ID, synthesizing a
// customized bracelet when the client sent none. The ok result is false when
// the line should be skipped.
func (s *service) resolveProductID(ctx context.Context, catalogRepo *catalog.Repository, line SubmittedItem) (uuid.UUID, bool, error) {
	if line.ProductID == "" && line.Category == enums.CategoryCustomizedBracelet {
		product := &models.Product{
			Name:      CustomBraceletName,
			Price:     s.beadUnitPrice.Mul(decimal.NewFromInt(types.RequiredBeadCount)),
			Category:  enums.CategoryCustomizedBracelet,
			Inventory: line.Quantity,
			Beads:     line.Beads,
			Images:    []models.ProductImage{{Key: media.DefaultCustomBraceletKey}},
		}
		if err := catalog.Validate(ctx, catalogRepo, product); err != nil {
			return uuid.Nil, false, err
		}
		if err := catalogRepo.Create(ctx, product); err != nil {
			return uuid.Nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create custom bracelet")
		}
		return product.ID, true, nil
	}

	productID, err := uuid.Parse(line.ProductID)
	if err != nil {
		return uuid.Nil, false, nil
	}
	return productID, true, nil
}

func (s *service) toItemDTOs(items []models.CartItem) []ItemDTO {
	dtos := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		beads := item.Product.Beads
		if beads == nil {
			beads = types.BeadRefs{}
		}
		dtos = append(dtos, ItemDTO{
			ProductID: item.ProductID.String(),
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			Category:  item.Product.Category,
			Quantity:  item.Quantity,
			Inventory: item.Product.Inventory,
			Images:    s.resolver.ProductURLs(item.Product.Images),
			Beads:     beads,
		})
	}
	return dtos
}

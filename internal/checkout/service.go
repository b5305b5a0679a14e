package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/namas-shop/namas-backend/internal/cart"
	"github.com/namas-shop/namas-backend/internal/orders"
	"github.com/namas-shop/namas-backend/pkg/db"
	"github.com/namas-shop/namas-backend/pkg/db/models"
	"github.com/namas-shop/namas-backend/pkg/enums"
	pkgerrors "github.com/namas-shop/namas-backend/pkg/errors"
	"github.com/namas-shop/namas-backend/pkg/media"
	"github.com/namas-shop/namas-backend/pkg/types"
)

// Service turns a cart into an immutable order.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, shippingAddress *string) (*orders.OrderDTO, error)
}

type service struct {
	cartRepo  *cart.Repository
	orderRepo *orders.Repository
	dbClient  *db.Client
	resolver  *media.Resolver
}

// NewService constructs a checkout service instance.
func NewService(cartRepo *cart.Repository, orderRepo *orders.Repository, dbClient *db.Client, resolver *media.Resolver) (Service, error) {
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("media resolver required")
	}
	return &service{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		dbClient:  dbClient,
		resolver:  resolver,
	}, nil
}

// Checkout snapshots the cart's current lines into an order and empties the
// cart. Snapshot, order insert, and cart clear run in one transaction so a
// failure leaves both sides untouched.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, shippingAddress *string) (*orders.OrderDTO, error) {
	var order *models.Order

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		userCart, err := cartRepo.FindByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Cart not found.")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart")
		}

		items, err := cartRepo.ItemsWithProducts(ctx, userCart.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart items")
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCart, "Cart is empty.")
		}

		total := decimal.Zero
		lineItems := make(types.OrderLineItems, 0, len(items))
		for _, item := range items {
			if item.Product == nil {
				continue
			}
			total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))

			beads := item.Product.Beads
			if beads == nil {
				beads = types.BeadRefs{}
			}
			lineItems = append(lineItems, types.OrderLineItem{
				ProductID: item.ProductID.String(),
				Name:      item.Product.Name,
				Price:     item.Product.Price.String(),
				Quantity:  item.Quantity,
				Image:     s.resolver.FirstProductURL(item.Product.Images),
				Beads:     beads,
			})
		}

		order = &models.Order{
			UserID:          userID,
			Amount:          total,
			ShippingAddress: shippingAddress,
			Status:          enums.OrderStatusPending,
			Items:           lineItems,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}

		if err := cartRepo.DeleteItems(ctx, userCart.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := orders.ToDTO(order)
	return &dto, nil
}

package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namas-shop/namas-backend/internal/catalog"
	"github.com/namas-shop/namas-backend/pkg/config"
	"github.com/namas-shop/namas-backend/pkg/db"
	"github.com/namas-shop/namas-backend/pkg/db/models"
	"github.com/namas-shop/namas-backend/pkg/enums"
	"github.com/namas-shop/namas-backend/pkg/media"
	"github.com/namas-shop/namas-backend/pkg/types"
)

type cartFixture struct {
	svc         Service
	catalogRepo *catalog.Repository
	client      *db.Client
	userID      uuid.UUID
}

func newFixture(t *testing.T, name string) *cartFixture {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.DB().AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductImage{},
		&models.Cart{},
		&models.CartItem{},
	))

	user := &models.User{Email: name + "@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, client.DB().Create(user).Error)

	catalogRepo := catalog.NewRepository(client.DB())
	resolver := media.NewResolver(config.MediaConfig{BaseURL: "/media/"})
	svc, err := NewService(NewRepository(client.DB()), catalogRepo, client, resolver, decimal.RequireFromString("10.00"))
	require.NoError(t, err)

	return &cartFixture{svc: svc, catalogRepo: catalogRepo, client: client, userID: user.ID}
}

func (f *cartFixture) seedProduct(t *testing.T, name string, inventory int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:      name,
		Price:     decimal.RequireFromString("25.00"),
		Category:  enums.CategoryNecklace,
		Inventory: inventory,
	}
	require.NoError(t, f.catalogRepo.Create(context.Background(), product))
	return product
}

func (f *cartFixture) seedBeads(t *testing.T, n int) types.BeadRefs {
	t.Helper()

	refs := make(types.BeadRefs, 0, n)
	for i := 0; i < n; i++ {
		bead := &models.Product{
			Name:      fmt.Sprintf("Bead %d", i),
			Price:     decimal.RequireFromString("10.00"),
			Category:  enums.CategoryBead,
			Inventory: 100,
		}
		require.NoError(t, f.catalogRepo.Create(context.Background(), bead))
		refs = append(refs, types.BeadRef{BeadID: bead.ID, Position: i})
	}
	return refs
}

func TestItemsWithoutCart(t *testing.T) {
	f := newFixture(t, "cart_no_cart")

	items, err := f.svc.Items(context.Background(), f.userID)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestReconcileStoresSubmittedLines(t *testing.T) {
	f := newFixture(t, "cart_store")
	product := f.seedProduct(t, "Gold Necklace", 10)

	result, err := f.svc.Reconcile(context.Background(), f.userID, []SubmittedItem{
		{ProductID: product.ID.String(), Quantity: 2},
	})
	require.NoError(t, err)

	assert.Empty(t, result.Messages)
	require.Len(t, result.Cart.CartItems, 1)
	assert.Equal(t, product.ID.String(), result.Cart.CartItems[0].ProductID)
	assert.Equal(t, 2, result.Cart.CartItems[0].Quantity)

	items, err := f.svc.Items(context.Background(), f.userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Gold Necklace", items[0].Name)
}

func TestReconcileReplacesExistingLines(t *testing.T) {
	f := newFixture(t, "cart_replace")
	first := f.seedProduct(t, "First Necklace", 10)
	second := f.seedProduct(t, "Second Necklace", 10)

	_, err := f.svc.Reconcile(context.Background(), f.userID, []SubmittedItem{
		{ProductID: first.ID.String(), Quantity: 1},
	})
	require.NoError(t, err)

	result, err := f.svc.Reconcile(context.Background(), f.userID, []SubmittedItem{
		{ProductID: second.ID.String(), Quantity: 3},
	})
	require.NoError(t, err)

	// Full replace: the first product is gone, not merged.
	require.Len(t, result.Cart.CartItems, 1)
	assert.Equal(t, second.ID.String(), result.Cart.CartItems[0].ProductID)
}

func TestReconcileClampsToInventory(t *testing.T) {
	f := newFixture(t, "cart_clamp")
	product := f.seedProduct(t, "Scarce Ring", 3)

	result, err := f.svc.Reconcile(context.Background(), f.userID, []SubmittedItem{
		{ProductID: product.ID.String(), Quantity: 5},
	})
	require.NoError(t, err)

	require.Len(t, result.Cart.CartItems, 1)
	assert.Equal(t, 3, result.Cart.CartItems[0].Quantity)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "Product Scarce Ring quantity adjusted to available stock: 3.", result.Messages[0])
}

func TestReconcileDropsSoldOut(t *testing.T) {
	f := newFixture(t, "cart_sold_out")
	product := f.seedProduct(t, "Sold Out Ring", 0)

	result, err := f.svc.Reconcile(context.Background(), f.userID, []SubmittedItem{
		{ProductID: product.ID.String(), Quantity: 1},
	})
	require.NoError(t, err)

	assert.Empty(t, result.Cart.CartItems)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "Product Sold Out Ring is out of stock and removed from the cart.", result.Messages[0])
}

func TestReconcileSkipsUnknownProducts(t *testing.T) {
	f := newFixture(t, "cart_unknown")
	product := f.seedProduct(t, "Real Necklace", 5)

	result, err := f.svc.Reconcile(context.Background(), f.userID, []SubmittedItem{
		{ProductID: uuid.NewString(), Quantity: 1},
		{ProductID: "not-a-uuid", Quantity: 1},
		{ProductID: product.ID.String(), Quantity: 1},
	})
	require.NoError(t, err)

	// Unknown and malformed IDs vanish silently.
	assert.Empty(t, result.Messages)
	require.Len(t, result.Cart.CartItems, 1)
	assert.Equal(t, product.ID.String(), result.Cart.CartItems[0].ProductID)
}

func TestReconcileSynthesizesCustomBracelet(t *testing.T) {
	f := newFixture(t, "cart_bracelet")
	beads := f.seedBeads(t, 12)

	result, err := f.svc.Reconcile(context.Background(), f.userID, []SubmittedItem{
		{Category: enums.CategoryCustomizedBracelet, Quantity: 2, Beads: beads},
	})
	require.NoError(t, err)

	require.Len(t, result.Cart.CartItems, 1)
	item := result.Cart.CartItems[0]
	assert.Equal(t, CustomBraceletName, item.Name)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("120.00")), "price %s", item.Price)
	assert.Equal(t, enums.CategoryCustomizedBracelet, item.Category)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 2, item.Inventory)
	require.Len(t, item.Images, 1)
	assert.Equal(t, "/media/"+media.DefaultCustomBraceletKey, item.Images[0])
	assert.Len(t, item.Beads, 12)
}

func TestReconcileRejectsShortBracelet(t *testing.T) {
	f := newFixture(t, "cart_short_bracelet")
	beads := f.seedBeads(t, 5)

	_, err := f.svc.Reconcile(context.Background(), f.userID, []SubmittedItem{
		{Category: enums.CategoryCustomizedBracelet, Quantity: 1, Beads: beads},
	})
	require.Error(t, err)
}

func TestReconcileIdempotent(t *testing.T) {
	f := newFixture(t, "cart_idempotent")
	first := f.seedProduct(t, "Gold Necklace", 10)
	second := f.seedProduct(t, "Silver Ring", 10)

	submission := []SubmittedItem{
		{ProductID: first.ID.String(), Quantity: 2},
		{ProductID: second.ID.String(), Quantity: 1},
	}

	one, err := f.svc.Reconcile(context.Background(), f.userID, submission)
	require.NoError(t, err)
	two, err := f.svc.Reconcile(context.Background(), f.userID, submission)
	require.NoError(t, err)

	assert.Equal(t, one.Cart.CartItems, two.Cart.CartItems)
	assert.Equal(t, one.Messages, two.Messages)
}

func TestReconcileEmptySubmissionClearsCart(t *testing.T) {
	f := newFixture(t, "cart_clear")
	product := f.seedProduct(t, "Keepsake Ring", 5)

	_, err := f.svc.Reconcile(context.Background(), f.userID, []SubmittedItem{
		{ProductID: product.ID.String(), Quantity: 1},
	})
	require.NoError(t, err)

	result, err := f.svc.Reconcile(context.Background(), f.userID, []SubmittedItem{})
	require.NoError(t, err)
	assert.Empty(t, result.Cart.CartItems)
	assert.NotNil(t, result.Messages)
}

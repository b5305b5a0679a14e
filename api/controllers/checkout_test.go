package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	orderssvc "github.com/namas-shop/namas-backend/internal/orders"
	"github.com/namas-shop/namas-backend/internal/payments"
	"github.com/namas-shop/namas-backend/pkg/enums"
	pkgerrors "github.com/namas-shop/namas-backend/pkg/errors"
)

type stubCheckoutService struct {
	checkout func(ctx context.Context, userID uuid.UUID, shippingAddress *string) (*orderssvc.OrderDTO, error)
}

func (s *stubCheckoutService) Checkout(ctx context.Context, userID uuid.UUID, shippingAddress *string) (*orderssvc.OrderDTO, error) {
	return s.checkout(ctx, userID, shippingAddress)
}

type stubPaymentsService struct {
	createIntent func(ctx context.Context, items []payments.IntentItem) (string, error)
}

func (s *stubPaymentsService) CreateIntent(ctx context.Context, items []payments.IntentItem) (string, error) {
	return s.createIntent(ctx, items)
}

func TestCheckout(t *testing.T) {
	userID := uuid.New()
	svc := &stubCheckoutService{
		checkout: func(_ context.Context, id uuid.UUID, shippingAddress *string) (*orderssvc.OrderDTO, error) {
			if id != userID {
				t.Fatalf("id = %s, want %s", id, userID)
			}
			if shippingAddress == nil || *shippingAddress != "1 Main St" {
				t.Fatalf("shipping_address = %v", shippingAddress)
			}
			return &orderssvc.OrderDTO{
				OrderID: uuid.NewString(),
				User:    id.String(),
				Amount:  decimal.RequireFromString("79.98"),
				Status:  enums.OrderStatusPending,
			}, nil
		},
	}

	req := authedRequest(http.MethodPost, "/checkout", `{"shipping_address":"1 Main St"}`, userID.String())
	rec := httptest.NewRecorder()
	Checkout(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	order, ok := body["order"].(map[string]any)
	if !ok || order["status"] != "pending" {
		t.Fatalf("order = %v", body["order"])
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := &stubCheckoutService{
		checkout: func(context.Context, uuid.UUID, *string) (*orderssvc.OrderDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "Cart is empty.")
		},
	}

	req := authedRequest(http.MethodPost, "/checkout", `{}`, uuid.NewString())
	rec := httptest.NewRecorder()
	Checkout(svc, testLogger())(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Cart is empty." {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestCheckoutCartNotFound(t *testing.T) {
	svc := &stubCheckoutService{
		checkout: func(context.Context, uuid.UUID, *string) (*orderssvc.OrderDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Cart not found.")
		},
	}

	req := authedRequest(http.MethodPost, "/checkout", `{}`, uuid.NewString())
	rec := httptest.NewRecorder()
	Checkout(svc, testLogger())(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Cart not found." {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	svc := &stubPaymentsService{
		createIntent: func(_ context.Context, items []payments.IntentItem) (string, error) {
			if len(items) != 1 || items[0].Quantity != 2 {
				t.Fatalf("items = %+v", items)
			}
			return "pi_123_secret_456", nil
		},
	}

	body := `{"items":[{"price":"19.99","quantity":2}]}`
	req := authedRequest(http.MethodPost, "/checkout/create-payment", body, "")
	rec := httptest.NewRecorder()
	CreatePaymentIntent(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	if resp["clientSecret"] != "pi_123_secret_456" {
		t.Fatalf("clientSecret = %v", resp["clientSecret"])
	}
	// The payment endpoint returns a bare secret object, no envelope.
	if _, ok := resp["success"]; ok {
		t.Fatal("payment response should not carry a success field")
	}
}

func TestCreatePaymentIntentProcessorDown(t *testing.T) {
	req := authedRequest(http.MethodPost, "/checkout/create-payment", `{"items":[]}`, "")
	rec := httptest.NewRecorder()
	CreatePaymentIntent(nil, testLogger())(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "PaymentIntent creation failed" {
		t.Fatalf("message = %v", resp["message"])
	}
}

func TestOrders(t *testing.T) {
	userID := uuid.New()
	svc := &stubOrdersService{
		listByUser: func(_ context.Context, id uuid.UUID) ([]orderssvc.OrderDTO, error) {
			if id != userID {
				t.Fatalf("id = %s, want %s", id, userID)
			}
			return []orderssvc.OrderDTO{{OrderID: uuid.NewString(), User: id.String()}}, nil
		},
	}

	req := authedRequest(http.MethodGet, "/orders", "", userID.String())
	rec := httptest.NewRecorder()
	Orders(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	orders, ok := body["orders"].([]any)
	if !ok || len(orders) != 1 {
		t.Fatalf("orders = %v", body["orders"])
	}
}

type stubOrdersService struct {
	listByUser func(ctx context.Context, userID uuid.UUID) ([]orderssvc.OrderDTO, error)
}

func (s *stubOrdersService) ListByUser(ctx context.Context, userID uuid.UUID) ([]orderssvc.OrderDTO, error) {
	return s.listByUser(ctx, userID)
}

package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogsvc "github.com/namas-shop/namas-backend/internal/catalog"
	"github.com/namas-shop/namas-backend/pkg/enums"
	pkgerrors "github.com/namas-shop/namas-backend/pkg/errors"
)

type stubCatalogService struct {
	get       func(ctx context.Context, productID uuid.UUID) (*catalogsvc.ProductDTO, error)
	list      func(ctx context.Context, q catalogsvc.ListQuery) ([]catalogsvc.ProductDTO, error)
	pageCount func(ctx context.Context, q catalogsvc.ListQuery) (int, error)
}

func (s *stubCatalogService) Create(context.Context, catalogsvc.CreateProductInput) (*catalogsvc.ProductDTO, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) Get(ctx context.Context, productID uuid.UUID) (*catalogsvc.ProductDTO, error) {
	return s.get(ctx, productID)
}

func (s *stubCatalogService) List(ctx context.Context, q catalogsvc.ListQuery) ([]catalogsvc.ProductDTO, error) {
	return s.list(ctx, q)
}

func (s *stubCatalogService) PageCount(ctx context.Context, q catalogsvc.ListQuery) (int, error) {
	return s.pageCount(ctx, q)
}

func TestProductsList(t *testing.T) {
	svc := &stubCatalogService{
		list: func(_ context.Context, q catalogsvc.ListQuery) ([]catalogsvc.ProductDTO, error) {
			if q.SortBy != "sales_count" || q.Order != "desc" || q.Page != 1 {
				t.Fatalf("unexpected defaults: %+v", q)
			}
			return []catalogsvc.ProductDTO{{
				ProductID: uuid.NewString(),
				Name:      "Gold Necklace",
				Price:     decimal.RequireFromString("89.00"),
				Category:  enums.CategoryNecklace,
				Images:    []string{},
			}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	Products(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("success = %v, want true", body["success"])
	}
	products, ok := body["products"].([]any)
	if !ok || len(products) != 1 {
		t.Fatalf("products = %v", body["products"])
	}
}

func TestProductsListPassesFilters(t *testing.T) {
	var got catalogsvc.ListQuery
	svc := &stubCatalogService{
		list: func(_ context.Context, q catalogsvc.ListQuery) ([]catalogsvc.ProductDTO, error) {
			got = q
			return []catalogsvc.ProductDTO{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/products?type=ring&price_min=10.50&price_max=99&sort_by=price&order=asc&page=3", nil)
	rec := httptest.NewRecorder()
	Products(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got.Category == nil || *got.Category != enums.CategoryRing {
		t.Fatalf("category = %v", got.Category)
	}
	if got.PriceMin == nil || !got.PriceMin.Equal(decimal.RequireFromString("10.50")) {
		t.Fatalf("price_min = %v", got.PriceMin)
	}
	if got.SortBy != "price" || got.Order != "asc" || got.Page != 3 {
		t.Fatalf("query = %+v", got)
	}
}

func TestProductsListRejectsBadPrice(t *testing.T) {
	svc := &stubCatalogService{
		list: func(context.Context, catalogsvc.ListQuery) ([]catalogsvc.ProductDTO, error) {
			t.Fatal("list should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/products?price_min=cheap", nil)
	rec := httptest.NewRecorder()
	Products(svc, testLogger())(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestProductsDetail(t *testing.T) {
	productID := uuid.New()
	svc := &stubCatalogService{
		get: func(_ context.Context, id uuid.UUID) (*catalogsvc.ProductDTO, error) {
			if id != productID {
				t.Fatalf("id = %s, want %s", id, productID)
			}
			return &catalogsvc.ProductDTO{ProductID: id.String(), Name: "Pendant"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/products?product_id="+productID.String(), nil)
	rec := httptest.NewRecorder()
	Products(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	product, ok := body["product"].(map[string]any)
	if !ok || product["name"] != "Pendant" {
		t.Fatalf("product = %v", body["product"])
	}
}

func TestProductsDetailMalformedID(t *testing.T) {
	svc := &stubCatalogService{}

	req := httptest.NewRequest(http.MethodGet, "/products?product_id=not-a-uuid", nil)
	rec := httptest.NewRecorder()
	Products(svc, testLogger())(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Product not found." {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestProductsDetailNotFound(t *testing.T) {
	svc := &stubCatalogService{
		get: func(context.Context, uuid.UUID) (*catalogsvc.ProductDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found.")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/products?product_id="+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	Products(svc, testLogger())(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestProductPageCount(t *testing.T) {
	svc := &stubCatalogService{
		pageCount: func(context.Context, catalogsvc.ListQuery) (int, error) {
			return 7, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/products/page-count", nil)
	rec := httptest.NewRecorder()
	ProductPageCount(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["pages"] != float64(7) {
		t.Fatalf("pages = %v, want 7", body["pages"])
	}
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/namas-shop/namas-backend/api/responses"
	"github.com/namas-shop/namas-backend/api/validators"
	catalogsvc "github.com/namas-shop/namas-backend/internal/catalog"
	"github.com/namas-shop/namas-backend/pkg/enums"
	pkgerrors "github.com/namas-shop/namas-backend/pkg/errors"
	"github.com/namas-shop/namas-backend/pkg/logger"
	"github.com/namas-shop/namas-backend/pkg/types"
)

type productListResponse struct {
	types.Envelope
	Products []catalogsvc.ProductDTO `json:"products"`
}

type productDetailResponse struct {
	types.Envelope
	Product catalogsvc.ProductDTO `json:"product"`
}

type pageCountResponse struct {
	types.Envelope
	Pages int `json:"pages"`
}

// Products serves the storefront browse endpoint. When a product_id query
// parameter is present it returns that single product instead of a listing.
func Products(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("product_id")); raw != "" {
			productID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found."))
				return
			}

			product, err := svc.Get(r.Context(), productID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			responses.WriteSuccess(w, productDetailResponse{
				Envelope: types.OK(""),
				Product:  *product,
			})
			return
		}

		query, err := parseListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.List(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, productListResponse{
			Envelope: types.OK(""),
			Products: products,
		})
	}
}

// ProductPageCount reports how many browse pages the filters produce.
func ProductPageCount(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query, err := parseListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pages, err := svc.PageCount(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, pageCountResponse{
			Envelope: types.OK(""),
			Pages:    pages,
		})
	}
}

func parseListQuery(r *http.Request) (catalogsvc.ListQuery, error) {
	query := catalogsvc.ListQuery{
		SortBy: strings.TrimSpace(r.URL.Query().Get("sort_by")),
		Order:  strings.TrimSpace(r.URL.Query().Get("order")),
	}
	if query.SortBy == "" {
		query.SortBy = "sales_count"
	}
	if query.Order == "" {
		query.Order = "desc"
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
		category := enums.ProductCategory(raw)
		query.Category = &category
	}

	priceMin, err := validators.ParseQueryDecimal(r, "price_min")
	if err != nil {
		return catalogsvc.ListQuery{}, err
	}
	query.PriceMin = priceMin

	priceMax, err := validators.ParseQueryDecimal(r, "price_max")
	if err != nil {
		return catalogsvc.ListQuery{}, err
	}
	query.PriceMax = priceMax

	page, err := validators.ParseQueryInt(r, "page", 1)
	if err != nil {
		return catalogsvc.ListQuery{}, err
	}
	query.Page = page

	return query, nil
}

package controllers

import (
	"net/http"

	"github.com/namas-shop/namas-backend/api/responses"
	"github.com/namas-shop/namas-backend/api/validators"
	cartsvc "github.com/namas-shop/namas-backend/internal/cart"
	pkgerrors "github.com/namas-shop/namas-backend/pkg/errors"
	"github.com/namas-shop/namas-backend/pkg/logger"
	"github.com/namas-shop/namas-backend/pkg/types"
)

type cartGetResponse struct {
	types.Envelope
	CartItems []cartsvc.ItemDTO `json:"cart_items"`
}

type cartSubmitRequest struct {
	CartItems []cartsvc.SubmittedItem `json:"cart_items"`
}

type cartSubmitResponse struct {
	types.Envelope
	Cart     cartsvc.CartDTO `json:"cart"`
	Messages []string        `json:"messages"`
}

// CartGet returns the caller's current cart lines.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.Items(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartGetResponse{
			Envelope:  types.OK(""),
			CartItems: items,
		})
	}
}

// CartSubmit replaces the caller's cart with the submitted lines and returns
// the reconciled result plus stock advisories.
func CartSubmit(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cartSubmitRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Reconcile(r.Context(), userID, body.CartItems)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartSubmitResponse{
			Envelope: types.OK(""),
			Cart:     result.Cart,
			Messages: result.Messages,
		})
	}
}

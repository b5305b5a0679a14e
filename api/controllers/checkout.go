package controllers

import (
	"net/http"

	"github.com/namas-shop/namas-backend/api/responses"
	"github.com/namas-shop/namas-backend/api/validators"
	checkoutsvc "github.com/namas-shop/namas-backend/internal/checkout"
	"github.com/namas-shop/namas-backend/internal/orders"
	"github.com/namas-shop/namas-backend/internal/payments"
	pkgerrors "github.com/namas-shop/namas-backend/pkg/errors"
	"github.com/namas-shop/namas-backend/pkg/logger"
	"github.com/namas-shop/namas-backend/pkg/types"
)

type checkoutRequest struct {
	ShippingAddress *string `json:"shipping_address"`
}

type checkoutResponse struct {
	types.Envelope
	Order orders.OrderDTO `json:"order"`
}

type paymentIntentRequest struct {
	Items []payments.IntentItem `json:"items"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// Checkout converts the caller's cart into an order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Checkout(r.Context(), userID, body.ShippingAddress)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, checkoutResponse{
			Envelope: types.OK(""),
			Order:    *order,
		})
	}
}

// CreatePaymentIntent asks the payment processor for an intent covering the
// submitted lines and returns its client secret.
func CreatePaymentIntent(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodePaymentIntent, "payment processor unavailable"))
			return
		}

		var body paymentIntentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		clientSecret, err := svc.CreateIntent(r.Context(), body.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, paymentIntentResponse{ClientSecret: clientSecret})
	}
}

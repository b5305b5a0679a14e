package controllers

import (
	"net/http"

	"github.com/namas-shop/namas-backend/api/responses"
	orderssvc "github.com/namas-shop/namas-backend/internal/orders"
	pkgerrors "github.com/namas-shop/namas-backend/pkg/errors"
	"github.com/namas-shop/namas-backend/pkg/logger"
	"github.com/namas-shop/namas-backend/pkg/types"
)

type orderListResponse struct {
	types.Envelope
	Orders []orderssvc.OrderDTO `json:"orders"`
}

// Orders returns the caller's order history, newest first.
func Orders(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orderListResponse{
			Envelope: types.OK(""),
			Orders:   list,
		})
	}
}

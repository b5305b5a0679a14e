package controllers

import (
	"context"
	"net/http"

	"github.com/namas-shop/namas-backend/api/responses"
	pkgerrors "github.com/namas-shop/namas-backend/pkg/errors"
	"github.com/namas-shop/namas-backend/pkg/logger"
	"github.com/namas-shop/namas-backend/pkg/types"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	types.Envelope
	Status string `json:"status"`
}

func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, healthResponse{Envelope: types.OK(""), Status: "live"})
	}
}

// HealthReady checks the database and session store before reporting ready.
func HealthReady(dbPing, redisPing pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dbPing != nil {
			if err := dbPing.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db unavailable"))
				return
			}
		}
		if redisPing != nil {
			if err := redisPing.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, healthResponse{Envelope: types.OK(""), Status: "ready"})
	}
}

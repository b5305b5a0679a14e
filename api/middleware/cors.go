package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/namas-shop/namas-backend/pkg/config"
)

// CORS applies the storefront origin policy. Credentials stay enabled
// because the session travels in a cookie.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}

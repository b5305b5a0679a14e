package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/namas-shop/namas-backend/api/controllers"
	"github.com/namas-shop/namas-backend/api/middleware"
	"github.com/namas-shop/namas-backend/api/responses"
	accountsvc "github.com/namas-shop/namas-backend/internal/account"
	cartsvc "github.com/namas-shop/namas-backend/internal/cart"
	catalogsvc "github.com/namas-shop/namas-backend/internal/catalog"
	checkoutsvc "github.com/namas-shop/namas-backend/internal/checkout"
	orderssvc "github.com/namas-shop/namas-backend/internal/orders"
	"github.com/namas-shop/namas-backend/internal/payments"
	"github.com/namas-shop/namas-backend/pkg/auth/session"
	"github.com/namas-shop/namas-backend/pkg/config"
	"github.com/namas-shop/namas-backend/pkg/db"
	pkgerrors "github.com/namas-shop/namas-backend/pkg/errors"
	"github.com/namas-shop/namas-backend/pkg/logger"
	"github.com/namas-shop/namas-backend/pkg/redis"
)

// NewRouter wires every endpoint with the shared middleware stack.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.Checker,
	accountService accountsvc.Service,
	catalogService catalogsvc.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	ordersService orderssvc.Service,
	paymentsService payments.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	// A wrong verb on a known path is a fixed 405 body, not chi's default
	// plain-text response.
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeMethodNotAllowed, "Invalid request method."))
	})
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Resource not found."))
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(dbP, redisClient, logg))
	})

	r.Post("/account/login", controllers.Login(accountService, cfg.JWT, logg))
	r.Post("/account/register", controllers.Register(accountService, cfg.JWT, logg))

	r.Get("/products", controllers.Products(catalogService, logg))
	r.Get("/products/page-count", controllers.ProductPageCount(catalogService, logg))

	r.Post("/checkout/create-payment", controllers.CreatePaymentIntent(paymentsService, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Post("/account/logout", controllers.Logout(accountService, cfg.JWT, logg))
		r.Get("/account/user", controllers.CurrentUser(accountService, logg))

		r.Get("/cart", controllers.CartGet(cartService, logg))
		r.Post("/cart", controllers.CartSubmit(cartService, logg))

		r.Post("/checkout", controllers.Checkout(checkoutService, logg))
		r.Get("/orders", controllers.Orders(ordersService, logg))
	})

	return r
}

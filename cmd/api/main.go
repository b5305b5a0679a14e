package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/namas-shop/namas-backend/api/routes"
	"github.com/namas-shop/namas-backend/internal/account"
	"github.com/namas-shop/namas-backend/internal/cart"
	"github.com/namas-shop/namas-backend/internal/catalog"
	"github.com/namas-shop/namas-backend/internal/checkout"
	"github.com/namas-shop/namas-backend/internal/orders"
	"github.com/namas-shop/namas-backend/internal/payments"
	"github.com/namas-shop/namas-backend/internal/users"
	"github.com/namas-shop/namas-backend/pkg/auth/session"
	"github.com/namas-shop/namas-backend/pkg/config"
	"github.com/namas-shop/namas-backend/pkg/db"
	"github.com/namas-shop/namas-backend/pkg/logger"
	"github.com/namas-shop/namas-backend/pkg/media"
	"github.com/namas-shop/namas-backend/pkg/migrate"
	"github.com/namas-shop/namas-backend/pkg/redis"
	"github.com/namas-shop/namas-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	beadUnitPrice, err := decimal.NewFromString(cfg.Catalog.BeadUnitPrice)
	if err != nil {
		logg.Error(context.Background(), "invalid bead unit price", err)
		os.Exit(1)
	}

	resolver := media.NewResolver(cfg.Media)
	usersRepo := users.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())

	accountService, err := account.NewService(usersRepo, dbClient, sessionManager, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create account service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo, dbClient, resolver)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartRepo, catalogRepo, dbClient, resolver, beadUnitPrice)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(cartRepo, ordersRepo, dbClient, resolver)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(ordersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	// The payment processor is optional in local development. Without a key
	// the create-payment endpoint reports the processor unavailable.
	var paymentsService payments.Service
	if cfg.Stripe.APIKey != "" {
		stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create stripe client", err)
			os.Exit(1)
		}
		paymentsService, err = payments.NewService(stripeClient, cfg.Stripe.Currency, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create payments service", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "stripe secret key not set, payment intents disabled")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			accountService,
			catalogService,
			cartService,
			checkoutService,
			ordersService,
			paymentsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

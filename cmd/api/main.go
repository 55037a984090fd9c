package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/caribvital/seamoss-backend/api/routes"
	"github.com/caribvital/seamoss-backend/internal/cart"
	"github.com/caribvital/seamoss-backend/internal/catalog"
	"github.com/caribvital/seamoss-backend/internal/checkout"
	"github.com/caribvital/seamoss-backend/internal/customers"
	"github.com/caribvital/seamoss-backend/internal/inventory"
	"github.com/caribvital/seamoss-backend/internal/orders"
	"github.com/caribvital/seamoss-backend/pkg/config"
	"github.com/caribvital/seamoss-backend/pkg/db"
	"github.com/caribvital/seamoss-backend/pkg/logger"
	"github.com/caribvital/seamoss-backend/pkg/metrics"
	"github.com/caribvital/seamoss-backend/pkg/migrate"
	"github.com/caribvital/seamoss-backend/pkg/redis"
	"github.com/caribvital/seamoss-backend/pkg/stripe"
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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

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
		closeErr := multierr.Combine(dbClient.Close(), redisClient.Close())
		if closeErr != nil {
			logg.Error(context.Background(), "error closing clients", closeErr)
		}
	}()

	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	deps, err := buildServices(cfg, logg, dbClient, redisClient, stripeClient)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
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
		Addr:         addr,
		Handler:      routes.NewRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func buildServices(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	stripeClient *stripe.Client,
) (routes.Deps, error) {
	catalogProvider, err := catalog.NewProvider()
	if err != nil {
		return routes.Deps{}, err
	}

	snapshots, err := cart.NewSnapshotStore(redisClient, cfg.Cart.SnapshotTTL)
	if err != nil {
		return routes.Deps{}, err
	}
	cartService, err := cart.NewService(snapshots, catalogProvider, logg)
	if err != nil {
		return routes.Deps{}, err
	}

	customerRepo, err := customers.NewRepo(dbClient)
	if err != nil {
		return routes.Deps{}, err
	}
	customerService, err := customers.NewService(customerRepo, customers.NewStripeClient(stripeClient), logg)
	if err != nil {
		return routes.Deps{}, err
	}

	checkoutService, err := checkout.NewService(
		checkout.NewStripeClient(stripeClient),
		redisClient,
		cfg.Checkout.IntentCacheTTL,
		logg,
	)
	if err != nil {
		return routes.Deps{}, err
	}

	orderRepo, err := orders.NewRepo(dbClient)
	if err != nil {
		return routes.Deps{}, err
	}
	ordersStripe := orders.NewStripeClient(stripeClient)
	reconciler, err := orders.NewReconciler(orderRepo, ordersStripe, cartService, logg)
	if err != nil {
		return routes.Deps{}, err
	}
	lookupService, err := orders.NewLookupService(ordersStripe)
	if err != nil {
		return routes.Deps{}, err
	}
	orderService, err := orders.NewService(dbClient, orderRepo, logg)
	if err != nil {
		return routes.Deps{}, err
	}

	inventoryRepo, err := inventory.NewRepo(dbClient)
	if err != nil {
		return routes.Deps{}, err
	}
	inventoryService, err := inventory.NewService(dbClient, inventoryRepo, logg)
	if err != nil {
		return routes.Deps{}, err
	}

	return routes.Deps{
		Config:           cfg,
		Logger:           logg,
		Metrics:          metrics.NewHTTPMetrics(prometheus.DefaultRegisterer),
		DBPinger:         dbClient,
		RedisPinger:      redisClient,
		Catalog:          catalogProvider,
		CartService:      cartService,
		CustomerService:  customerService,
		CheckoutService:  checkoutService,
		Reconciler:       reconciler,
		LookupService:    lookupService,
		OrderService:     orderService,
		InventoryService: inventoryService,
	}, nil
}

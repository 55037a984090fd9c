package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/caribvital/seamoss-backend/api/controllers"
	"github.com/caribvital/seamoss-backend/api/middleware"
	"github.com/caribvital/seamoss-backend/internal/cart"
	"github.com/caribvital/seamoss-backend/internal/catalog"
	"github.com/caribvital/seamoss-backend/internal/checkout"
	"github.com/caribvital/seamoss-backend/internal/customers"
	"github.com/caribvital/seamoss-backend/internal/inventory"
	"github.com/caribvital/seamoss-backend/internal/orders"
	"github.com/caribvital/seamoss-backend/pkg/config"
	"github.com/caribvital/seamoss-backend/pkg/logger"
	"github.com/caribvital/seamoss-backend/pkg/metrics"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.HTTPMetrics

	DBPinger    controllers.Pinger
	RedisPinger controllers.Pinger

	Catalog          *catalog.Provider
	CartService      *cart.Service
	CustomerService  *customers.Service
	CheckoutService  *checkout.Service
	Reconciler       *orders.Reconciler
	LookupService    *orders.LookupService
	OrderService     *orders.Service
	InventoryService *inventory.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DBPinger, d.RedisPinger))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog/products", controllers.CatalogList(d.Catalog, logg))

		// public intent-backed order view
		r.Get("/orders/lookup", controllers.OrderLookup(d.LookupService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartSession(logg))
			r.Get("/", controllers.CartFetch(d.CartService, logg))
			r.Delete("/", controllers.CartClear(d.CartService, logg))
			r.Post("/items", controllers.CartAddItem(d.CartService, logg))
			r.Patch("/items/{productID}", controllers.CartUpdateQuantity(d.CartService, logg))
			r.Delete("/items/{productID}", controllers.CartRemoveItem(d.CartService, logg))
			r.Post("/restore", controllers.CartRestore(d.CartService, logg))
			r.Post("/toggle", controllers.CartToggle(d.CartService, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Get("/customer", controllers.CustomerFetch(d.CustomerService, logg))
			r.Post("/customer", controllers.CustomerSubmit(d.CustomerService, logg))
			r.With(middleware.CartSession(logg)).
				Post("/payment-intent", controllers.CheckoutPaymentIntent(d.CheckoutService, logg))
			r.With(middleware.CartSession(logg)).
				Post("/confirm", controllers.CheckoutConfirm(d.Reconciler, logg))
		})

		r.With(middleware.Auth(cfg.JWT, logg)).
			Get("/orders", controllers.OrderHistory(d.OrderService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg), middleware.RequireAdmin(logg))

		r.Get("/orders", controllers.AdminOrderList(d.OrderService, logg))
		r.Post("/orders/{orderID}/fulfillment", controllers.AdminToggleFulfillment(d.OrderService, logg))

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.AdminInventoryLevels(d.InventoryService, logg))
			r.Get("/{productID}/history", controllers.AdminInventoryHistory(d.InventoryService, logg))
			r.Put("/{productID}", controllers.AdminInventoryUpdate(d.InventoryService, logg))
		})
	})

	return r
}

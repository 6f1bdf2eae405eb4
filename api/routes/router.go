package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brunomacedo/vitrinezap-backend/api/controllers"
	cartcontrollers "github.com/brunomacedo/vitrinezap-backend/api/controllers/cart"
	"github.com/brunomacedo/vitrinezap-backend/api/middleware"
	cartsvc "github.com/brunomacedo/vitrinezap-backend/internal/cart"
	checkoutsvc "github.com/brunomacedo/vitrinezap-backend/internal/checkout"
	"github.com/brunomacedo/vitrinezap-backend/internal/products"
	"github.com/brunomacedo/vitrinezap-backend/pkg/config"
	"github.com/brunomacedo/vitrinezap-backend/pkg/db"
	"github.com/brunomacedo/vitrinezap-backend/pkg/logger"
	"github.com/brunomacedo/vitrinezap-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	cartManager *cartsvc.Manager,
	lineService products.Service,
	checkoutService checkoutsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CartSession(cfg.Session, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(cartManager, logg))
			r.Delete("/", cartcontrollers.CartClear(cartManager, logg))
			r.Post("/items", cartcontrollers.CartAddItem(cartManager, lineService, logg))
			r.Patch("/items/{itemID}", cartcontrollers.CartUpdateItem(cartManager, logg))
			r.Delete("/items/{itemID}", cartcontrollers.CartRemoveItem(cartManager, logg))
		})

		r.Post("/checkout", controllers.Checkout(cartManager, checkoutService, logg))
	})

	return r
}

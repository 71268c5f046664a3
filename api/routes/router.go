package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmoralesb/mesafina-backend/api/controllers"
	"github.com/dmoralesb/mesafina-backend/api/middleware"
	"github.com/dmoralesb/mesafina-backend/internal/inventory"
	"github.com/dmoralesb/mesafina-backend/internal/menu"
	"github.com/dmoralesb/mesafina-backend/pkg/config"
	"github.com/dmoralesb/mesafina-backend/pkg/db"
	"github.com/dmoralesb/mesafina-backend/pkg/logger"
	"github.com/dmoralesb/mesafina-backend/pkg/metrics"
	"github.com/dmoralesb/mesafina-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	inventoryService inventory.Service,
	menuService menu.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/inventory", func(r chi.Router) {
			r.Post("/daily-reset", controllers.DailyStockReset(inventoryService, logg))
			r.Get("/low-stock", controllers.GetLowStockItems(inventoryService, logg))
			r.Get("/out-of-stock", controllers.GetOutOfStockItems(inventoryService, logg))
			r.Route("/items/{itemId}", func(r chi.Router) {
				r.Post("/add", controllers.AddStock(inventoryService, logg))
				r.Post("/remove", controllers.RemoveStock(inventoryService, logg))
				r.Get("/history", controllers.GetStockHistory(inventoryService, logg))
				r.Patch("/type", controllers.UpdateInventoryType(inventoryService, logg))
			})
		})

		r.Route("/menu", func(r chi.Router) {
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.ListMenuCategories(menuService, logg))
				r.Post("/", controllers.CreateMenuCategory(menuService, logg))
			})
			r.Route("/items", func(r chi.Router) {
				r.Get("/", controllers.ListMenuItems(menuService, logg))
				r.Post("/", controllers.CreateMenuItem(menuService, logg))
			})
		})
	})

	return r
}

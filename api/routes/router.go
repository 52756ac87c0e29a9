package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oyehq/oye-backend/api/controllers"
	"github.com/oyehq/oye-backend/api/middleware"
	"github.com/oyehq/oye-backend/internal/analytics"
	"github.com/oyehq/oye-backend/internal/auth"
	"github.com/oyehq/oye-backend/internal/chat"
	"github.com/oyehq/oye-backend/internal/inventory"
	"github.com/oyehq/oye-backend/internal/shops"
	"github.com/oyehq/oye-backend/pkg/auth/session"
	"github.com/oyehq/oye-backend/pkg/config"
	"github.com/oyehq/oye-backend/pkg/db"
	"github.com/oyehq/oye-backend/pkg/logger"
	"github.com/oyehq/oye-backend/pkg/metrics"
	"github.com/oyehq/oye-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Sessions    session.AccessSessionChecker
	HTTPMetrics *metrics.HTTPMetrics

	AuthService      auth.Service
	RegisterService  auth.RegisterService
	ShopService      shops.Service
	InventoryService inventory.Service
	AnalyticsService analytics.Service
	ChatService      chat.Service
}

// NewRouter assembles the chi route tree.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	if p.HTTPMetrics != nil {
		r.Method(http.MethodGet, "/metrics", p.HTTPMetrics.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).
			Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(
			middleware.AuthRateLimit(registerPolicy, p.Redis, logg),
			middleware.Idempotency(p.Redis, logg),
		).Post("/register", controllers.AuthRegister(p.RegisterService, logg))
		r.Post("/logout", controllers.AuthLogout(p.AuthService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))
	})

	r.Route("/api/v1/shops", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))
		r.Use(middleware.Idempotency(p.Redis, logg))

		r.Post("/", controllers.ShopCreate(p.ShopService, logg))
		r.Get("/", controllers.ShopList(p.ShopService, logg))

		r.Route("/{shopId}", func(r chi.Router) {
			r.Get("/", controllers.ShopDetail(p.ShopService, logg))
			r.Put("/", controllers.ShopUpdate(p.ShopService, logg))
			r.Delete("/", controllers.ShopDelete(p.ShopService, logg))

			r.Route("/items", func(r chi.Router) {
				r.Post("/", controllers.ItemCreate(p.InventoryService, logg))
				r.Get("/", controllers.ItemList(p.InventoryService, logg))
				r.Route("/{itemId}", func(r chi.Router) {
					r.Get("/", controllers.ItemDetail(p.InventoryService, logg))
					r.Put("/", controllers.ItemUpdate(p.InventoryService, logg))
					r.Delete("/", controllers.ItemDelete(p.InventoryService, logg))
					r.Get("/sales", controllers.ItemSaleList(p.InventoryService, logg))
					r.Post("/chat", controllers.ItemChat(p.ChatService, logg))
				})
			})

			r.Post("/restocks", controllers.RestockCreate(p.InventoryService, logg))
			r.Get("/restocks", controllers.RestockList(p.InventoryService, logg))
			r.Post("/sales", controllers.SaleCreate(p.InventoryService, logg))
			r.Get("/sales", controllers.SaleList(p.InventoryService, logg))

			r.Get("/analysis", controllers.InventoryAnalysis(p.AnalyticsService, logg))
			r.Get("/sales-summary", controllers.SalesSummary(p.AnalyticsService, logg))
			r.Get("/items-by-category", controllers.ItemsByCategory(p.AnalyticsService, logg))

			r.Post("/chat", controllers.ShopChat(p.ChatService, logg))
		})
	})

	return r
}

package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/oyehq/oye-backend/api/routes"
	"github.com/oyehq/oye-backend/internal/analytics"
	"github.com/oyehq/oye-backend/internal/auth"
	"github.com/oyehq/oye-backend/internal/chat"
	"github.com/oyehq/oye-backend/internal/inventory"
	"github.com/oyehq/oye-backend/internal/shops"
	"github.com/oyehq/oye-backend/internal/users"
	"github.com/oyehq/oye-backend/pkg/auth/session"
	"github.com/oyehq/oye-backend/pkg/config"
	"github.com/oyehq/oye-backend/pkg/db"
	"github.com/oyehq/oye-backend/pkg/logger"
	"github.com/oyehq/oye-backend/pkg/metrics"
	"github.com/oyehq/oye-backend/pkg/migrate"
	"github.com/oyehq/oye-backend/pkg/redis"
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

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		ShopRepo:       shops.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	shopService, err := shops.NewService(shops.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create shop service", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(inventory.ServiceParams{DB: dbClient})
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	analyticsService, err := analytics.NewService(analytics.ServiceParams{
		DB:                dbClient,
		LowStockThreshold: cfg.Inventory.LowStockThreshold,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}

	chatService, err := chat.NewService(chat.ServiceParams{Inventory: inventoryService})
	if err != nil {
		logg.Error(context.Background(), "failed to create chat service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:           cfg,
			Logger:           logg,
			DB:               dbClient,
			Redis:            redisClient,
			Sessions:         sessionManager,
			HTTPMetrics:      metrics.NewHTTPMetrics(),
			AuthService:      authService,
			RegisterService:  registerService,
			ShopService:      shopService,
			InventoryService: inventoryService,
			AnalyticsService: analyticsService,
			ChatService:      chatService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/minhvuongle/yenvang-backend/api/controllers"
	"github.com/minhvuongle/yenvang-backend/api/routes"
	cartpkg "github.com/minhvuongle/yenvang-backend/internal/cart"
	"github.com/minhvuongle/yenvang-backend/internal/catalog"
	"github.com/minhvuongle/yenvang-backend/internal/notify"
	"github.com/minhvuongle/yenvang-backend/internal/orders"
	"github.com/minhvuongle/yenvang-backend/internal/pricing"
	sessionstore "github.com/minhvuongle/yenvang-backend/internal/session"
	"github.com/minhvuongle/yenvang-backend/pkg/config"
	"github.com/minhvuongle/yenvang-backend/pkg/db"
	"github.com/minhvuongle/yenvang-backend/pkg/logger"
	"github.com/minhvuongle/yenvang-backend/pkg/metrics"
	"github.com/minhvuongle/yenvang-backend/pkg/migrate"
	"github.com/minhvuongle/yenvang-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	resolver := pricing.NewResolver()

	cartStore := sessionstore.NewStore[[]cartpkg.LineItem](redisClient, cfg.Session.CartTTL, logg)
	cartManager, err := cartpkg.NewManager(cartStore, redisClient.CartKey, cfg.Session.CartTTL, logg, storefrontMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart manager", err)
		os.Exit(1)
	}
	defer cartManager.Flush()

	telegram := notify.NewTelegramClient(cfg.Telegram, logg, storefrontMetrics)

	orderService, err := orders.NewService(
		orders.NewRepository(dbClient.DB()),
		telegram,
		cfg.Orders.SubmitTimeout,
		logg,
		storefrontMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}
	defer orderService.FlushNotifications()

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
		Handler: routes.NewRouter(routes.Deps{
			Config:  cfg,
			Logger:  logg,
			Pingers: map[string]controllers.Pinger{"database": dbClient, "redis": redisClient},

			CatalogService: catalogService,
			Resolver:       resolver,
			CartManager:    cartManager,
			OrderService:   orderService,
			Submitters:     orders.NewSubmitterPool(),
			Telegram:       telegram,
			Metrics:        registry,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Richyi/promosophia/api/routes"
	"github.com/Richyi/promosophia/internal/analytics"
	"github.com/Richyi/promosophia/internal/auth"
	"github.com/Richyi/promosophia/internal/deductions"
	"github.com/Richyi/promosophia/internal/goals"
	"github.com/Richyi/promosophia/internal/insights"
	"github.com/Richyi/promosophia/internal/optimizer"
	"github.com/Richyi/promosophia/internal/pos"
	"github.com/Richyi/promosophia/internal/products"
	"github.com/Richyi/promosophia/internal/promotions"
	"github.com/Richyi/promosophia/internal/retailers"
	"github.com/Richyi/promosophia/internal/tenants"
	"github.com/Richyi/promosophia/internal/users"
	"github.com/Richyi/promosophia/pkg/auth/session"
	"github.com/Richyi/promosophia/pkg/config"
	"github.com/Richyi/promosophia/pkg/db"
	"github.com/Richyi/promosophia/pkg/logger"
	"github.com/Richyi/promosophia/pkg/metrics"
	"github.com/Richyi/promosophia/pkg/migrate"
	"github.com/Richyi/promosophia/pkg/redis"
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

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	optimizerMetrics := metrics.NewOptimizerMetrics(registry)

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	tenantRepo := tenants.NewRepository(gormDB)
	productRepo := products.NewRepository(gormDB)
	retailerRepo := retailers.NewRepository(gormDB)
	promotionRepo := promotions.NewRepository(gormDB)
	deductionRepo := deductions.NewRepository(gormDB)
	goalRepo := goals.NewRepository(gormDB)
	posRepo := pos.NewRepository(gormDB)
	scenarioRepo := optimizer.NewRepository(gormDB)

	authService, err := auth.NewService(userRepo, tenantRepo, sessionManager, cfg.JWT, logg)
	requireService(logg, "auth", err)

	tenantService, err := tenants.NewService(tenantRepo)
	requireService(logg, "tenants", err)

	userService, err := users.NewService(userRepo)
	requireService(logg, "users", err)

	productService, err := products.NewService(productRepo)
	requireService(logg, "products", err)

	retailerService, err := retailers.NewService(retailerRepo)
	requireService(logg, "retailers", err)

	promotionService, err := promotions.NewService(promotionRepo, retailerRepo, logg)
	requireService(logg, "promotions", err)

	deductionService, err := deductions.NewService(deductionRepo)
	requireService(logg, "deductions", err)

	goalService, err := goals.NewService(goalRepo)
	requireService(logg, "goals", err)

	posService, err := pos.NewService(posRepo)
	requireService(logg, "pos", err)

	analyticsService, err := analytics.NewService(promotionRepo, deductionRepo, goalRepo, posRepo)
	requireService(logg, "analytics", err)

	optimizerService, err := optimizer.NewService(
		scenarioRepo,
		optimizer.NewSimulator(cfg.Optimizer.MaxAllocations),
		retailerRepo,
		productRepo,
		cfg.Optimizer,
		optimizerMetrics,
		logg,
	)
	requireService(logg, "optimizer", err)

	insightService, err := insights.NewService(promotionRepo, deductionRepo, goalRepo)
	requireService(logg, "insights", err)

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
		Handler: routes.NewRouter(cfg, logg, gormDB, redisClient, sessionManager, registry, httpMetrics, routes.Services{
			Auth:       authService,
			Tenants:    tenantService,
			Users:      userService,
			Products:   productService,
			Retailers:  retailerService,
			Promotions: promotionService,
			Deductions: deductionService,
			Goals:      goalService,
			POS:        posService,
			Analytics:  analyticsService,
			Optimizer:  optimizerService,
			Insights:   insightService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	ctx := logg.WithField(context.Background(), "service", name)
	logg.Error(ctx, "failed to create service", err)
	os.Exit(1)
}

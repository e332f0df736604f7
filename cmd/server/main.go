package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"vinyle_backend/internal/app/di"
	"vinyle_backend/internal/app/router"
	authhandler "vinyle_backend/internal/feature/auth/transport/handler"
	authusecase "vinyle_backend/internal/feature/auth/usecase"
	vinylehandler "vinyle_backend/internal/feature/vinyle/transport/handler"
	vinyleusecase "vinyle_backend/internal/feature/vinyle/usecase"
	"vinyle_backend/internal/platform/config"
	"vinyle_backend/internal/platform/db"
	platformhttp "vinyle_backend/internal/platform/http"
	platformhandler "vinyle_backend/internal/platform/http/handler"
	"vinyle_backend/internal/platform/http/middleware"
	jwtmw "vinyle_backend/internal/platform/jwt"
	"vinyle_backend/internal/platform/logger"
	"vinyle_backend/internal/platform/validation"
	"vinyle_backend/internal/shared/ratelimiter"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logger.New("vinyle-api", cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func run(ctx context.Context, cfg config.Config) error {
	// Record store
	stores, err := di.NewStores(ctx, cfg, db.LoadConfigFromEnv())
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(context.Background()); err != nil {
			slog.Error("failed to close record store", "error", err)
		}
	}()

	// Redis (optional)
	rdb := di.NewRedisClient(ctx, cfg)
	checks := map[string]platformhandler.Check{"store": stores.Ping}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
		checks["cache"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	// Usecase
	vinyleUC := vinyleusecase.NewVinyleUsecase(di.NewVinyleRepository(rdb, cfg, stores.Vinyles))
	jetonUC := authusecase.NewJetonUsecase(stores.Utilisateurs, jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTTTL))

	// Handler
	vinyleH := vinylehandler.NewVinyleHandler(vinyleUC, validation.New())
	jetonH := authhandler.NewJetonHandler(jetonUC)
	healthH := platformhandler.NewHealthHandler(checks)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := router.NewRouter(vinyleH, jetonH, healthH, router.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AuthRequired:   cfg.AuthRequired,
		JWTSecret:      cfg.JWTSecret,
		Metrics:        middleware.NewMetrics(reg),
		JetonLimiter:   ratelimiter.NewRateLimiter(cfg.JetonRateLimit, time.Minute),
	})

	slog.Info("starting vinyle API",
		"env", cfg.AppEnv,
		"store", cfg.StoreDriver,
		"cache", rdb != nil,
		"auth_required", cfg.AuthRequired,
	)
	return platformhttp.Run(ctx, platformhttp.NewServer(cfg.HTTPAddr, r), cfg.ShutdownTimeout)
}

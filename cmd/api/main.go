// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carterperez-dev/lifehacking-api/internal/admin"
	"github.com/carterperez-dev/lifehacking-api/internal/audit"
	"github.com/carterperez-dev/lifehacking-api/internal/auth"
	"github.com/carterperez-dev/lifehacking-api/internal/category"
	"github.com/carterperez-dev/lifehacking-api/internal/config"
	"github.com/carterperez-dev/lifehacking-api/internal/core"
	"github.com/carterperez-dev/lifehacking-api/internal/favorite"
	"github.com/carterperez-dev/lifehacking-api/internal/health"
	"github.com/carterperez-dev/lifehacking-api/internal/middleware"
	"github.com/carterperez-dev/lifehacking-api/internal/server"
	"github.com/carterperez-dev/lifehacking-api/internal/storage"
	"github.com/carterperez-dev/lifehacking-api/internal/tip"
	"github.com/carterperez-dev/lifehacking-api/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	auditor, auditCloser, err := audit.New(cfg.Audit.Enabled, cfg.Audit.Output)
	if err != nil {
		return err
	}

	verifier, err := auth.NewVerifier(ctx, cfg.Auth)
	if err != nil {
		return err
	}

	var issuer *auth.Issuer
	if cfg.Auth.PrivateKeyPath != "" {
		iss, issErr := auth.NewIssuer(cfg.Auth)
		if issErr != nil {
			logger.Warn("local token issuer disabled", "error", issErr)
		} else {
			issuer = iss
			logger.Info("local token issuer initialized",
				"algorithm", "ES256",
				"key_id", issuer.KeyID(),
			)
		}
	}

	healthDeps := []health.Dependency{
		{Name: "database", Checker: db},
		{Name: "redis", Checker: redis},
	}

	var objectStore storage.ObjectStore
	if cfg.Storage.Enabled {
		s3Store, s3Err := storage.NewS3Store(ctx, cfg.Storage)
		if s3Err != nil {
			return s3Err
		}
		objectStore = s3Store
		healthDeps = append(healthDeps, health.Dependency{
			Name:     "storage",
			Checker:  s3Store,
			Optional: true,
		})
		logger.Info("object storage configured", "bucket", cfg.Storage.Bucket)
	}

	imageSvc := storage.NewImageService(objectStore, cfg.Storage.MaxImageBytes)
	imageHandler := storage.NewHandler(imageSvc)

	categoryRepo := category.NewRepository(db.DB)
	categoryCache := category.NewRedisListCache(redis, cfg.Cache.CategoryTTL)
	categorySvc := category.NewService(categoryRepo, categoryCache)
	categoryHandler := category.NewHandler(categorySvc)

	tipRepo := tip.NewRepository(db.DB)
	tipSvc := tip.NewService(tipRepo, categorySvc)
	tipHandler := tip.NewHandler(tipSvc)

	favoriteRepo := favorite.NewRepository(db.DB)
	favoriteSvc := favorite.NewService(favoriteRepo, tipSvc, auditor)
	favoriteHandler := favorite.NewHandler(favoriteSvc)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, auditor)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(verifier, userSvc)
	authHandler := auth.NewHandler(issuer)

	healthHandler := health.NewHandler(healthDeps...)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Counters: admin.Counters{
			Users:      userSvc.Count,
			Categories: categorySvc.Count,
			Tips:       tipSvc.Count,
			Favorites:  favoriteSvc.Count,
		},
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.Recoverer)
	router.Use(middleware.CorrelationID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Policy: "global",
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
		}).Handler,
	)

	healthHandler.RegisterRoutes(router)
	authHandler.RegisterRoutes(router)

	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	authenticator := middleware.Authenticator(authSvc, auditor)
	uploadLimiter := middleware.UploadLimiter(
		cfg.RateLimit.UploadRequests,
		cfg.RateLimit.Window,
	)

	router.Route("/api", func(r chi.Router) {
		categoryHandler.RegisterRoutes(r, tipHandler.ListByCategory)
		tipHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			userHandler.RegisterRoutes(r)
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(authenticator)
			r.Use(middleware.RequireProfile)
			r.Use(middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
				Policy: "writes",
				Limit: middleware.PerMinute(
					cfg.RateLimit.WriteRequests,
					cfg.RateLimit.WriteBurst,
				),
				KeyFunc:    middleware.KeyByUser,
				FailOpen:   true,
				BypassFunc: middleware.WritesOnly,
			}).Handler)

			favoriteHandler.RegisterRoutes(r)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticator)
			r.Use(middleware.RequireAdmin(auditor))

			categoryHandler.RegisterAdminRoutes(r,
				uploadLimiter(imageHandler.Upload(storage.FolderCategories)).ServeHTTP)
			tipHandler.RegisterAdminRoutes(r,
				uploadLimiter(imageHandler.Upload(storage.FolderTips)).ServeHTTP)
			userHandler.RegisterAdminRoutes(r)
			adminHandler.RegisterRoutes(r)
		})
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := auditCloser.Close(); err != nil {
		logger.Error("audit log close error", "error", err)
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

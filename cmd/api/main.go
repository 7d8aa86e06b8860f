package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"phonebridge/internal/channel"
	apphttp "phonebridge/internal/http"
	"phonebridge/internal/http/router"
	"phonebridge/internal/numbers"
	"phonebridge/internal/regions"
	"phonebridge/internal/regions/repository"
	"phonebridge/internal/scheduler"
	"phonebridge/platform/cache"
	"phonebridge/platform/config"
	"phonebridge/platform/logger"
	"phonebridge/platform/validator"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var (
		catalogStore repository.Store
		health       apphttp.HealthChecker
	)
	if cfg.IsRedisEnabled() {
		var client *redis.Client
		if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
			c, err := cache.NewRedisClient(ctx, cfg)
			if err != nil {
				return err
			}
			client = c
			return nil
		}); err != nil {
			log.Error("failed to connect to redis", "error", err)
			panic("failed to connect to redis: " + err.Error())
		}
		defer func() { _ = client.Close() }()

		catalogStore = repository.NewRedisStore(client, "")
		health = cache.NewHealthAdapter(client)
		log.Info("redis connected; region catalog is shared")
	} else {
		log.Warn("REDIS_URL not configured; region catalog kept in memory and background warming disabled")
	}

	val := validator.New()

	// ========================================================================
	// Modules
	// ========================================================================

	regionsModule, err := regions.NewModule(cfg, catalogStore, log)
	if err != nil {
		log.Error("failed to initialize regions module", "error", err)
		panic("failed to initialize regions module: " + err.Error())
	}
	numbersModule := numbers.NewModule(cfg, val, log)
	channelModule := channel.NewModule(numbersModule.Service(), regionsModule.Service(), log)

	warmer, closeWarmer := initCatalogWarmer(cfg, log)
	if closeWarmer != nil {
		defer closeWarmer()
	}
	if warmer != nil {
		if err := warmer.EnqueueCatalogWarm(ctx, scheduler.WarmReasonStartup); err != nil {
			log.Warn("failed to enqueue catalog warm", "error", err)
		}
	}

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: health,
		Modules: []apphttp.Module{
			regionsModule,
			numbersModule,
			channelModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initCatalogWarmer(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.CatalogWarmer, func()) {
	if cfg.GetRedisURL() == "" {
		return nil, nil
	}

	warmClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize catalog warm client", "error", err)
		return nil, nil
	}

	return warmClient, func() {
		_ = warmClient.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}

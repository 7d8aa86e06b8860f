package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"phonebridge/internal/regions"
	"phonebridge/internal/regions/repository"
	"phonebridge/internal/scheduler"
	"phonebridge/platform/cache"
	"phonebridge/platform/config"
	"phonebridge/platform/logger"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env, "queue", cfg.AsynqQueueName)

	if !cfg.IsRedisEnabled() {
		panic("scheduler requires REDIS_URL")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	regionsModule, err := regions.NewModule(cfg, repository.NewRedisStore(client, ""), log)
	if err != nil {
		log.Error("failed to initialize regions module", "error", err)
		panic("failed to initialize regions module: " + err.Error())
	}

	warmClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize catalog warm client", "error", err)
		panic("failed to initialize catalog warm client: " + err.Error())
	}
	defer func() { _ = warmClient.Close() }()

	// Rebuild at half the TTL so the stored catalog never lapses.
	warmInterval := getDurationEnv("CATALOG_WARM_INTERVAL", cfg.GetRegionCatalogTTL()/2)
	go scheduler.NewCatalogWarmTicker(warmClient, log, warmInterval).Run(ctx)

	worker, err := scheduler.NewWorker(cfg, regionsModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
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

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}

	return parsed
}

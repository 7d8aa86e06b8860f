// Package cache provides Redis connection infrastructure.
// This is part of the platform layer and contains no business logic.
package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"phonebridge/platform/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the configured Redis URL and verifies it with a ping.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opt, err := ParseRedisURL(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// ParseRedisURL parses a redis:// or rediss:// URL, optionally skipping TLS verification.
func ParseRedisURL(redisURL string, tlsInsecure bool) (*redis.Options, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	if opt.TLSConfig != nil && tlsInsecure {
		clone := opt.TLSConfig.Clone()
		clone.InsecureSkipVerify = true
		opt.TLSConfig = clone
	} else if tlsInsecure {
		opt.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return opt, nil
}

// HealthAdapter exposes a Redis client as a readiness check.
type HealthAdapter struct {
	client redis.UniversalClient
}

// NewHealthAdapter wraps client for the HTTP readiness endpoint.
func NewHealthAdapter(client redis.UniversalClient) *HealthAdapter {
	return &HealthAdapter{client: client}
}

// Ping reports whether Redis answers.
func (h *HealthAdapter) Ping(ctx context.Context) error {
	if h == nil || h.client == nil {
		return nil
	}
	return h.client.Ping(ctx).Err()
}

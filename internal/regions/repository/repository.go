// Package repository persists the built region catalog.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"phonebridge/platform/phone"

	"github.com/redis/go-redis/v9"
)

// DefaultCatalogKey is the Redis key holding the serialized catalog.
const DefaultCatalogKey = "phonebridge:regions:catalog"

// Catalog maps an upper-case region code to its record.
type Catalog map[string]phone.RegionInfo

// Store loads and saves a whole catalog.
type Store interface {
	// Load returns the stored catalog. ok is false when nothing is stored.
	Load(ctx context.Context) (Catalog, bool, error)
	// Save replaces the stored catalog. A zero ttl keeps it until overwritten.
	Save(ctx context.Context, catalog Catalog, ttl time.Duration) error
}

// RedisStore keeps the catalog as one JSON document.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore creates a store on client. An empty key uses DefaultCatalogKey.
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = DefaultCatalogKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) (Catalog, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, false, err
	}
	if len(catalog) == 0 {
		return nil, false, nil
	}
	return catalog, true, nil
}

func (s *RedisStore) Save(ctx context.Context, catalog Catalog, ttl time.Duration) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, data, ttl).Err()
}

var _ Store = (*RedisStore)(nil)

package service

import (
	"context"
	"sync"
	"time"

	"phonebridge/internal/regions/repository"
	"phonebridge/platform/config"
	"phonebridge/platform/logger"
	"phonebridge/platform/phone"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const defaultBuildWorkers = 8

// Service builds and caches the supported region catalog.
// Returned catalogs are shared and must not be modified by callers.
type Service struct {
	store     repository.Store
	names     phone.CountryNamer
	overrides config.CatalogOverrides
	ttl       time.Duration
	workers   int
	log       *logger.Logger
	now       func() time.Time

	group  singleflight.Group
	mu     sync.RWMutex
	memo   repository.Catalog
	memoAt time.Time
}

// New creates a catalog service. store may be nil, in which case the catalog
// only lives in process memory.
func New(cfg config.CatalogConfig, overrides config.CatalogOverrides, store repository.Store, log *logger.Logger) *Service {
	workers := cfg.GetRegionCatalogWorkers()
	if workers < 1 {
		workers = defaultBuildWorkers
	}

	return &Service{
		store:     store,
		names:     phone.NewCountryNamer(cfg.GetCountryNameLanguage()),
		overrides: overrides,
		ttl:       cfg.GetRegionCatalogTTL(),
		workers:   workers,
		log:       log,
		now:       time.Now,
	}
}

// List returns the catalog from memory, then the store, building it when neither has one.
// Concurrent callers share a single load or build.
func (s *Service) List(ctx context.Context) (repository.Catalog, error) {
	if catalog, ok := s.cached(); ok {
		return catalog, nil
	}

	result, err, _ := s.group.Do("list", func() (interface{}, error) {
		if catalog, ok := s.cached(); ok {
			return catalog, nil
		}

		shared := context.WithoutCancel(ctx)
		if s.store != nil {
			catalog, ok, err := s.store.Load(shared)
			if err != nil {
				s.log.CacheError("load region catalog", err)
			} else if ok {
				s.remember(catalog)
				return catalog, nil
			}
		}
		return s.rebuild(shared)
	})
	if err != nil {
		return nil, err
	}
	return result.(repository.Catalog), nil
}

// Refresh rebuilds the catalog and replaces both the memo and the stored copy.
func (s *Service) Refresh(ctx context.Context) (repository.Catalog, error) {
	result, err, _ := s.group.Do("refresh", func() (interface{}, error) {
		return s.rebuild(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.(repository.Catalog), nil
}

// Build derives a fresh catalog from library metadata, applying the overrides.
func (s *Service) Build(ctx context.Context) (repository.Catalog, error) {
	regions := phone.SupportedRegions()
	catalog := make(repository.Catalog, len(regions))
	var catalogMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, region := range regions {
		if s.overrides.IsExcluded(region) {
			continue
		}
		region := region
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			info := phone.BuildRegionInfo(region, s.names)
			if name := s.overrides.CountryNames[region]; name != "" {
				info.CountryName = name
			}

			catalogMu.Lock()
			catalog[region] = info
			catalogMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (s *Service) rebuild(ctx context.Context) (repository.Catalog, error) {
	start := s.now()
	catalog, err := s.Build(ctx)
	if err != nil {
		return nil, err
	}
	s.remember(catalog)

	if s.store != nil {
		if err := s.store.Save(ctx, catalog, s.ttl); err != nil {
			s.log.CacheError("save region catalog", err)
		}
	}

	s.log.Info("region catalog built", "regions", len(catalog), "duration_ms", s.now().Sub(start).Milliseconds())
	return catalog, nil
}

func (s *Service) cached() (repository.Catalog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.memo == nil {
		return nil, false
	}
	if s.ttl > 0 && s.now().Sub(s.memoAt) >= s.ttl {
		return nil, false
	}
	return s.memo, true
}

func (s *Service) remember(catalog repository.Catalog) {
	s.mu.Lock()
	s.memo = catalog
	s.memoAt = s.now()
	s.mu.Unlock()
}

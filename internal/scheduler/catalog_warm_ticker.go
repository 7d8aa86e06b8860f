package scheduler

import (
	"context"
	"time"

	"phonebridge/platform/logger"
)

const defaultCatalogWarmInterval = 12 * time.Hour

// CatalogWarmTicker periodically enqueues catalog warm tasks so the stored
// catalog is rebuilt before it expires.
type CatalogWarmTicker struct {
	warmer   CatalogWarmer
	log      *logger.Logger
	interval time.Duration
}

// NewCatalogWarmTicker warms every interval. A non-positive interval uses a 12h default.
func NewCatalogWarmTicker(warmer CatalogWarmer, log *logger.Logger, interval time.Duration) *CatalogWarmTicker {
	if interval <= 0 {
		interval = defaultCatalogWarmInterval
	}

	return &CatalogWarmTicker{
		warmer:   warmer,
		log:      log,
		interval: interval,
	}
}

func (t *CatalogWarmTicker) Run(ctx context.Context) {
	if t == nil || t.warmer == nil {
		return
	}

	t.enqueue(ctx, WarmReasonStartup)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.enqueue(ctx, WarmReasonPeriodic)
		}
	}
}

func (t *CatalogWarmTicker) enqueue(ctx context.Context, reason string) {
	if err := t.warmer.EnqueueCatalogWarm(ctx, reason); err != nil {
		t.log.Warn("catalog warm enqueue failed", "reason", reason, "error", err)
	}
}

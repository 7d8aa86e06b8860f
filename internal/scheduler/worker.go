package scheduler

import (
	"context"
	"fmt"

	"phonebridge/internal/regions/repository"
	"phonebridge/platform/config"
	"phonebridge/platform/logger"

	"github.com/hibiken/asynq"
)

// CatalogRefresher rebuilds and persists the region catalog.
type CatalogRefresher interface {
	Refresh(ctx context.Context) (repository.Catalog, error)
}

type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	catalog CatalogRefresher
	log     *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, catalog CatalogRefresher, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 2
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:  server,
		mux:     mux,
		catalog: catalog,
		log:     log,
	}

	mux.HandleFunc(TaskRegionCatalogWarm, w.handleRegionCatalogWarm)

	return w, nil
}

func (w *Worker) handleRegionCatalogWarm(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseRegionCatalogWarmPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	catalog, err := w.catalog.Refresh(ctx)
	if err != nil {
		w.log.Warn("region catalog warm failed", "reason", payload.Reason, "error", err)
		return err
	}

	w.log.Info("region catalog warmed", "reason", payload.Reason, "regions", len(catalog))
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

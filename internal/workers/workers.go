package workers

import (
	"context"

	"github.com/MKhiriev/go-vinted/internal/config"
	"github.com/MKhiriev/go-vinted/internal/logger"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the configured background jobs. The database health
// probe is always scheduled; its results go to every reporter.
func NewWorkers(cfg config.Workers, db Pinger, logger *logger.Logger, reporters ...HealthReporter) *Workers {
	return &Workers{workers: []Worker{
		newHealthProbe(db, cfg.HealthCheckInterval, logger, reporters...),
	}}
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

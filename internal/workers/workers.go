package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-stock-keeper/internal/config"
	"github.com/MKhiriev/go-stock-keeper/internal/connectivity"
	"github.com/MKhiriev/go-stock-keeper/internal/service"
)

type entry struct {
	worker   Worker
	interval time.Duration
}

// Workers runs the engine's background workers as one unit.
type Workers struct {
	entries []entry
}

// NewWorkers wires the connectivity monitor and the sync job with their
// intervals. The monitor is listed first so the first probe can flip the
// engine online before the first sync tick.
func NewWorkers(cfg config.ClientWorkers, monitor *connectivity.Monitor, job service.SyncJob) *Workers {
	return &Workers{
		entries: []entry{
			{worker: monitor, interval: cfg.PingInterval},
			{worker: job, interval: cfg.SyncInterval},
		},
	}
}

// Start launches every worker in registration order.
func (w *Workers) Start(ctx context.Context) {
	for _, e := range w.entries {
		e.worker.Start(ctx, e.interval)
	}
}

// Stop stops the workers in reverse order, so the sync job is gone before
// the monitor that feeds it transitions.
func (w *Workers) Stop() {
	for i := len(w.entries) - 1; i >= 0; i-- {
		w.entries[i].worker.Stop()
	}
}

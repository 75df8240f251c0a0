package service

import (
	"context"
	"sync"
	"time"
)

type syncJob struct {
	coordinator SyncCoordinator
	transitions <-chan bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a syncJob that runs a sync cycle on a ticker and on
// every offline→online transition received from transitions (typically a
// connectivity.Monitor subscription). An offline transition aborts the
// running cycle instead. The job is idle until Start is called.
func NewSyncJob(coordinator SyncCoordinator, transitions <-chan bool) SyncJob {
	return &syncJob{coordinator: coordinator, transitions: transitions}
}

// Start implements [SyncJob]. It stops any previously running job, then
// launches a background goroutine driving the coordinator. If interval is
// zero or negative it defaults to 5 minutes. The goroutine exits when ctx is
// cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.launchCycle(jobCtx)
			case online, ok := <-j.transitions:
				if !ok {
					return
				}
				if online {
					j.launchCycle(jobCtx)
				} else {
					j.coordinator.Abort()
				}
			}
		}
	}()
}

// launchCycle runs a coordinator cycle on its own goroutine. The select loop
// stays responsive while the cycle is in flight, so an offline transition can
// abort it instead of queueing behind it. Concurrent cycles are safe: the
// coordinator coalesces them into a single rerun.
func (j *syncJob) launchCycle(ctx context.Context) {
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		_ = j.coordinator.RunCycle(ctx)
	}()
}

// Stop implements [SyncJob]. It cancels the background goroutine's context
// and blocks until the goroutine has fully exited. Safe to call when the job
// is not running (no-op in that case).
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

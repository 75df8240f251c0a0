// Package workers aggregates the engine's background processes, the
// connectivity monitor and the periodic sync job, behind one start/stop
// lifecycle.
package workers

import (
	"context"
	"time"
)

// Worker is the interface implemented by every background worker of the
// engine. Start launches the worker's goroutine with its probe or tick
// interval; Stop blocks until the goroutine has fully exited.
//
// Both [connectivity.Monitor] and the sync job satisfy it.
type Worker interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}

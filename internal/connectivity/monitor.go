// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package connectivity tracks backend reachability for the sync engine.
//
// The [Monitor] probes the backend on a ticker and fans out online/offline
// transitions to subscribers. A failed probe flips the engine offline
// immediately; the first successful probe after that flips it back online,
// which is what triggers the automatic drain of queued events.
package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-stock-keeper/internal/logger"
)

//go:generate mockgen -source=monitor.go -destination=../mock/pinger_mock.go -package=mock

// Pinger is the probe used to decide reachability. The HTTP backend adapter
// satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor periodically probes the backend and notifies subscribers when the
// online state changes. It is idle until Start is called.
type Monitor struct {
	pinger Pinger
	logger *logger.Logger

	mu          sync.Mutex
	online      bool
	subscribers []chan bool
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

func NewMonitor(pinger Pinger, logger *logger.Logger) *Monitor {
	return &Monitor{pinger: pinger, logger: logger}
}

// Online reports the last observed reachability state. The monitor starts
// offline until the first successful probe.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Subscribe returns a channel that receives the new online state on every
// transition. The channel is buffered; a subscriber that falls behind loses
// intermediate transitions, not the latest one.
func (m *Monitor) Subscribe() <-chan bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan bool, 1)
	m.subscribers = append(m.subscribers, ch)
	return ch
}

// SetOnline force-sets the reachability state, bypassing the probe. Used when
// another component observes hard evidence of connectivity (e.g. a transport
// error on a push) without waiting for the next probe tick.
func (m *Monitor) SetOnline(online bool) {
	m.setOnline(online)
}

// Start stops any previously running probe loop, performs one immediate
// probe, then launches a background goroutine probing every interval. If
// interval is zero or negative it defaults to 10 seconds. The goroutine
// exits when ctx is cancelled or Stop is called.
func (m *Monitor) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Second
	}

	m.Stop()

	m.mu.Lock()
	monitorCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	m.probe(monitorCtx)

	go func() {
		defer m.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-t.C:
				m.probe(monitorCtx)
			}
		}
	}()
}

// Stop cancels the probe goroutine's context and blocks until it has fully
// exited. Safe to call when the monitor is not running (no-op in that case).
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

func (m *Monitor) probe(ctx context.Context) {
	err := m.pinger.Ping(ctx)
	if ctx.Err() != nil {
		return
	}
	m.setOnline(err == nil)
}

func (m *Monitor) setOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	subscribers := make([]chan bool, len(m.subscribers))
	copy(subscribers, m.subscribers)
	m.mu.Unlock()

	m.logger.Info().
		Str("func", "Monitor.setOnline").
		Bool("online", online).
		Msg("connectivity state changed")

	for _, ch := range subscribers {
		select {
		case ch <- online:
		default:
			// drop the stale value so the latest state wins
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- online:
			default:
			}
		}
	}
}

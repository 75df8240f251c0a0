package connectivity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-stock-keeper/internal/logger"
)

// fakePinger returns the configured error sequence, repeating the last entry
// once the sequence is exhausted.
type fakePinger struct {
	mu    sync.Mutex
	errs  []error
	calls int
}

func (p *fakePinger) Ping(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.calls
	p.calls++
	if i >= len(p.errs) {
		i = len(p.errs) - 1
	}
	return p.errs[i]
}

func (p *fakePinger) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func waitForTransition(t *testing.T, ch <-chan bool) bool {
	t.Helper()
	select {
	case online := <-ch:
		return online
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for connectivity transition")
		return false
	}
}

func TestMonitor_StartsOffline(t *testing.T) {
	m := NewMonitor(&fakePinger{errs: []error{errors.New("unreachable")}}, logger.Nop())
	assert.False(t, m.Online())
}

func TestMonitor_ImmediateProbeOnStart(t *testing.T) {
	pinger := &fakePinger{errs: []error{nil}}
	m := NewMonitor(pinger, logger.Nop())

	ch := m.Subscribe()
	m.Start(context.Background(), time.Hour)
	defer m.Stop()

	assert.True(t, waitForTransition(t, ch))
	assert.True(t, m.Online())
	assert.Equal(t, 1, pinger.callCount(), "only the startup probe should have run")
}

func TestMonitor_OfflineTransitionOnFailedProbe(t *testing.T) {
	pinger := &fakePinger{errs: []error{nil, errors.New("unreachable")}}
	m := NewMonitor(pinger, logger.Nop())

	ch := m.Subscribe()
	m.Start(context.Background(), 10*time.Millisecond)
	defer m.Stop()

	assert.True(t, waitForTransition(t, ch), "startup probe succeeds")
	assert.False(t, waitForTransition(t, ch), "second probe fails")
	assert.False(t, m.Online())
}

func TestMonitor_NoNotificationWithoutTransition(t *testing.T) {
	pinger := &fakePinger{errs: []error{errors.New("unreachable")}}
	m := NewMonitor(pinger, logger.Nop())

	ch := m.Subscribe()
	m.Start(context.Background(), 5*time.Millisecond)
	defer m.Stop()

	// the monitor starts offline and every probe fails: no transition ever
	select {
	case online := <-ch:
		t.Fatalf("unexpected transition notification: %v", online)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMonitor_SetOnline(t *testing.T) {
	m := NewMonitor(&fakePinger{errs: []error{errors.New("unreachable")}}, logger.Nop())

	ch := m.Subscribe()
	m.SetOnline(true)

	assert.True(t, waitForTransition(t, ch))
	assert.True(t, m.Online())

	// no transition when the state does not change
	m.SetOnline(true)
	select {
	case <-ch:
		t.Fatal("unexpected notification for unchanged state")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestMonitor_SlowSubscriberKeepsLatestState(t *testing.T) {
	m := NewMonitor(&fakePinger{errs: []error{nil}}, logger.Nop())

	ch := m.Subscribe()
	m.SetOnline(true)
	m.SetOnline(false)
	m.SetOnline(true)

	// the buffered value must be the most recent transition
	assert.True(t, waitForTransition(t, ch))
}

func TestMonitor_Stop(t *testing.T) {
	pinger := &fakePinger{errs: []error{nil}}
	m := NewMonitor(pinger, logger.Nop())

	m.Start(context.Background(), 5*time.Millisecond)
	m.Stop()

	calls := pinger.callCount()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, pinger.callCount(), "no probes after Stop")

	// Stop is idempotent
	m.Stop()
}

func TestMonitor_RestartReplacesLoop(t *testing.T) {
	pinger := &fakePinger{errs: []error{nil}}
	m := NewMonitor(pinger, logger.Nop())

	m.Start(context.Background(), time.Hour)
	m.Start(context.Background(), time.Hour)
	defer m.Stop()

	require.True(t, m.Online())
	assert.Equal(t, 2, pinger.callCount(), "one startup probe per Start call")
}

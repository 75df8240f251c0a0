// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-stock-keeper/internal/config"
	"github.com/MKhiriev/go-stock-keeper/internal/logger"
	"github.com/MKhiriev/go-stock-keeper/internal/state"
	"github.com/MKhiriev/go-stock-keeper/internal/store"
)

func testContext() context.Context {
	return logger.Nop().WithContext(context.Background())
}

// fakeClock is a manually advanced Clock so retry schedules can be driven
// without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock { return &fakeClock{now: start} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// engineFixture wires the real mutation and conflict services on top of a
// private in-memory database, so service tests exercise the same SQL the
// client runs.
type engineFixture struct {
	queue       store.EventQueue
	conflictLog store.ConflictLog
	entities    *state.EntityStore
	status      *state.SyncStatus
	clock       *fakeClock
	mutator     Mutator
	conflicts   ConflictService
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	db, err := store.NewConnectSQLite(context.Background(), config.ClientDB{DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	// a second pool connection would see its own empty in-memory database
	db.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	queue := store.NewEventQueueRepository(db, logger.Nop())
	conflictLog := store.NewConflictLogRepository(db, logger.Nop())

	entities := state.NewEntityStore()
	status := state.NewSyncStatus()
	clock := newFakeClock(time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC))

	mutator := NewMutationService(queue, entities, status, logger.Nop(), clock)
	conflicts := NewConflictService(queue, conflictLog, entities, status, mutator, logger.Nop(), clock)

	return &engineFixture{
		queue:       queue,
		conflictLog: conflictLog,
		entities:    entities,
		status:      status,
		clock:       clock,
		mutator:     mutator,
		conflicts:   conflicts,
	}
}

func syncConfig() config.ClientSync {
	return config.ClientSync{
		Concurrency: 2,
		MaxAttempts: 5,
		BackoffBase: 2 * time.Second,
		BackoffCap:  60 * time.Second,
		PushTimeout: 5 * time.Second,
	}
}

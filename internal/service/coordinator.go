// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-stock-keeper/internal/adapter"
	"github.com/MKhiriev/go-stock-keeper/internal/config"
	"github.com/MKhiriev/go-stock-keeper/internal/logger"
	"github.com/MKhiriev/go-stock-keeper/internal/state"
	"github.com/MKhiriev/go-stock-keeper/internal/store"
	"github.com/MKhiriev/go-stock-keeper/models"
)

type syncCoordinator struct {
	queue     store.EventQueue
	conflicts ConflictService
	backend   adapter.Backend
	entities  *state.EntityStore
	status    *state.SyncStatus
	logger    *logger.Logger
	cfg       config.ClientSync
	clock     Clock
	backoff   Backoff

	mu          sync.Mutex
	running     bool
	rerun       bool
	cancelCycle context.CancelFunc

	lastSyncMu sync.Mutex
	lastSync   time.Time
}

// NewSyncCoordinator constructs the coordinator that owns the sync cycle.
// cfg supplies the drain concurrency, the per-push timeout and the retry
// policy; clock may be nil for wall-clock time.
func NewSyncCoordinator(queue store.EventQueue, conflicts ConflictService, backend adapter.Backend, entities *state.EntityStore, status *state.SyncStatus, cfg config.ClientSync, logger *logger.Logger, clock Clock) SyncCoordinator {
	if clock == nil {
		clock = SystemClock
	}
	return &syncCoordinator{
		queue:     queue,
		conflicts: conflicts,
		backend:   backend,
		entities:  entities,
		status:    status,
		logger:    logger,
		cfg:       cfg,
		clock:     clock,
		backoff:   Backoff{Base: cfg.BackoffBase, Cap: cfg.BackoffCap},
	}
}

// TriggerSync implements [SyncCoordinator]. The cycle runs in a background
// goroutine; failures are logged and recorded, never returned to the caller.
func (c *syncCoordinator) TriggerSync(ctx context.Context) {
	go func() {
		if err := c.RunCycle(ctx); err != nil {
			c.logger.Err(err).
				Str("func", "syncCoordinator.TriggerSync").
				Msg("sync cycle finished with error")
		}
	}()
}

// RunCycle implements [SyncCoordinator]. Re-entrant triggers coalesce: while
// a cycle runs, at most one rerun is remembered and executed after it ends.
func (c *syncCoordinator) RunCycle(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.rerun = true
		c.mu.Unlock()
		return nil
	}
	c.running = true
	c.mu.Unlock()

	for {
		err := c.runOnce(ctx)

		c.mu.Lock()
		if c.rerun && err == nil && ctx.Err() == nil {
			c.rerun = false
			c.mu.Unlock()
			continue
		}
		c.rerun = false
		c.running = false
		c.mu.Unlock()
		return err
	}
}

// Abort implements [SyncCoordinator].
func (c *syncCoordinator) Abort() {
	c.mu.Lock()
	cancel := c.cancelCycle
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (c *syncCoordinator) runOnce(ctx context.Context) error {
	if c.status.Offline() {
		c.logger.Debug().
			Str("func", "syncCoordinator.runOnce").
			Msg("skipping sync cycle: offline")
		return nil
	}

	cycleCtx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.cancelCycle = cancel
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.cancelCycle = nil
		c.mu.Unlock()
		cancel()
	}()

	c.status.SetSyncInProgress(true)
	defer c.status.SetSyncInProgress(false)

	cycleCtx = c.logger.WithContext(cycleCtx)
	startedAt := c.clock.Now()

	err := c.drain(cycleCtx)
	if err == nil {
		err = c.pull(cycleCtx, startedAt)
	}

	// whatever interrupted the cycle, nothing may stay stuck in syncing
	if reverted, revertErr := c.queue.RevertSyncing(context.WithoutCancel(ctx)); revertErr != nil {
		c.logger.Err(revertErr).
			Str("func", "syncCoordinator.runOnce").
			Msg("failed to revert in-flight events after cycle")
	} else if reverted > 0 {
		c.logger.Warn().
			Str("func", "syncCoordinator.runOnce").
			Int64("reverted", reverted).
			Msg("reverted in-flight events to pending")
	}

	if err != nil {
		c.logger.Err(err).
			Str("func", "syncCoordinator.runOnce").
			Msg("sync cycle aborted")
		// a deliberate abort is not a failure; everything else surfaces in
		// the error log even when the cycle ran in the background
		if !errors.Is(err, context.Canceled) {
			c.status.RecordError(models.SyncError{
				Message: err.Error(),
				At:      c.clock.Now(),
			})
		}
		return err
	}

	c.status.MarkSynced(c.clock.Now())
	c.reconcile(context.WithoutCancel(ctx))

	return nil
}

// drain pushes all due pending events, grouped per entity so each record's
// edits replay in FIFO order while distinct records sync concurrently.
func (c *syncCoordinator) drain(ctx context.Context) error {
	due, err := c.queue.Due(ctx, c.clock.Now())
	if err != nil {
		return fmt.Errorf("load due events: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	groups := groupByEntity(due)

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)

	for _, group := range groups {
		group := group
		g.Go(func() error {
			c.drainGroup(groupCtx, group)
			// per-event failures are handled in place; only context
			// cancellation aborts the whole drain
			return groupCtx.Err()
		})
	}

	return g.Wait()
}

// drainGroup replays one entity's events oldest first. Each confirmed push
// advances the base version of the events behind it, so successive edits of
// one record replay cleanly against the server's version check. The first
// event that does not confirm stops the group; everything behind it stays
// pending.
func (c *syncCoordinator) drainGroup(ctx context.Context, group []models.OfflineEvent) {
	var lastVersion int64

	for i, event := range group {
		if ctx.Err() != nil {
			return
		}

		if lastVersion > event.BaseVersion {
			event.BaseVersion = lastVersion
			if err := c.queue.Rebase(ctx, event.EventID, lastVersion); err != nil {
				return
			}
		}

		last := i == len(group)-1
		confirmed, ok := c.pushOne(ctx, event, last)
		if !ok {
			return
		}
		lastVersion = confirmed.Version
	}
}

// pushOne pushes a single event and settles its outcome. It returns the
// confirmed entity and whether the group may continue with the next event.
func (c *syncCoordinator) pushOne(ctx context.Context, event models.OfflineEvent, last bool) (models.Entity, bool) {
	log := logger.FromContext(ctx)

	if err := c.queue.MarkSyncing(ctx, event.EventID); err != nil {
		// a concurrent resolution already moved the event on
		if errors.Is(err, store.ErrEventNotPending) {
			return models.Entity{}, false
		}
		log.Err(err).
			Str("func", "syncCoordinator.pushOne").
			Str("event_id", event.EventID).
			Msg("failed to mark event as syncing")
		return models.Entity{}, false
	}

	pushCtx, cancel := context.WithTimeout(ctx, c.cfg.PushTimeout)
	confirmed, err := c.backend.PushEvent(pushCtx, event)
	cancel()

	switch {
	case err == nil:
		c.confirm(ctx, event, confirmed, last)
		return confirmed, true

	case errors.Is(err, adapter.ErrConflict):
		var conflictErr *adapter.ConflictError
		if !errors.As(err, &conflictErr) {
			conflictErr = &adapter.ConflictError{}
		}
		remote := conflictErr.Remote
		if remote.ID == 0 {
			// the 409 body carried no usable snapshot; fetch the current one
			if fetched, fetchErr := c.backend.FetchEntity(ctx, event.Key()); fetchErr == nil {
				remote = fetched
			}
		}
		if handleErr := c.conflicts.HandleRejectedPush(ctx, event, remote); handleErr != nil {
			log.Err(handleErr).
				Str("func", "syncCoordinator.pushOne").
				Str("event_id", event.EventID).
				Msg("failed to settle rejected push")
		}
		return models.Entity{}, false

	case errors.Is(err, adapter.ErrValidation):
		c.failEvent(ctx, event, err)
		return models.Entity{}, false

	case ctx.Err() != nil:
		// cycle aborted mid-push; RevertSyncing restores the event
		return models.Entity{}, false

	default:
		c.retryOrFail(ctx, event, err)
		return models.Entity{}, false
	}
}

// confirm settles a successful push: the event leaves the queue and the
// confirmed server entity replaces the optimistic value. A confirmation
// re-delivered for an already-completed event is a no-op.
func (c *syncCoordinator) confirm(ctx context.Context, event models.OfflineEvent, confirmed models.Entity, last bool) {
	log := logger.FromContext(ctx)

	removed, err := c.queue.Complete(ctx, event.EventID)
	if err != nil {
		log.Err(err).
			Str("func", "syncCoordinator.confirm").
			Str("event_id", event.EventID).
			Msg("failed to complete confirmed event")
		return
	}
	if !removed {
		return
	}

	c.status.DecPending(event.EntityType)

	switch {
	case event.Operation == models.OperationCreate:
		// collapse the temporary negative ID into the server-assigned one
		c.entities.Replace(event.Key(), confirmed)
	case last:
		c.entities.UpsertOne(confirmed)
	default:
		// a later queued edit of this entity owns the optimistic value
	}
}

func (c *syncCoordinator) retryOrFail(ctx context.Context, event models.OfflineEvent, pushErr error) {
	log := logger.FromContext(ctx)

	retryCount := event.RetryCount + 1
	if retryCount >= c.cfg.MaxAttempts {
		c.failEvent(ctx, event, fmt.Errorf("retries exhausted after %d attempts: %w", retryCount, pushErr))
		return
	}

	nextAttemptAt := c.clock.Now().Add(c.backoff.Delay(retryCount))
	if err := c.queue.Reschedule(ctx, event.EventID, retryCount, nextAttemptAt); err != nil {
		log.Err(err).
			Str("func", "syncCoordinator.retryOrFail").
			Str("event_id", event.EventID).
			Msg("failed to reschedule event")
		return
	}

	log.Warn().
		Str("func", "syncCoordinator.retryOrFail").
		Str("event_id", event.EventID).
		Int("retry_count", retryCount).
		Time("next_attempt_at", nextAttemptAt).
		Msg("transient push failure, event rescheduled")
}

// failEvent marks an event permanently failed and records exactly one sync
// error for it.
func (c *syncCoordinator) failEvent(ctx context.Context, event models.OfflineEvent, cause error) {
	log := logger.FromContext(ctx)

	if err := c.queue.Fail(ctx, event.EventID); err != nil {
		log.Err(err).
			Str("func", "syncCoordinator.failEvent").
			Str("event_id", event.EventID).
			Msg("failed to mark event as failed")
		return
	}

	c.status.RecordError(models.SyncError{
		EventID:    event.EventID,
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		Message:    cause.Error(),
		At:         c.clock.Now(),
	})

	log.Error().
		Str("func", "syncCoordinator.failEvent").
		Str("event_id", event.EventID).
		Str("entity_type", string(event.EntityType)).
		Int64("entity_id", event.EntityID).
		Msg(cause.Error())
}

// pull fetches remote deltas for every entity type and folds them into the
// Entity Store. Records with an in-flight local event are skipped; the
// pending push takes precedence and the next drain settles them.
func (c *syncCoordinator) pull(ctx context.Context, startedAt time.Time) error {
	active, err := c.queue.ActiveEntityKeys(ctx)
	if err != nil {
		return fmt.Errorf("load active entity keys: %w", err)
	}

	c.lastSyncMu.Lock()
	since := c.lastSync
	c.lastSyncMu.Unlock()

	for _, entityType := range models.EntityTypes {
		changed, fetchErr := c.backend.FetchChangedSince(ctx, entityType, since)
		if fetchErr != nil {
			return fmt.Errorf("fetch %s changes: %w", entityType, fetchErr)
		}

		applied := make([]models.Entity, 0, len(changed))
		for _, entity := range changed {
			if _, inFlight := active[entity.Key()]; inFlight {
				continue
			}
			applied = append(applied, entity)
		}
		c.entities.UpsertMany(applied)
	}

	c.lastSyncMu.Lock()
	c.lastSync = startedAt
	c.lastSyncMu.Unlock()

	return nil
}

// reconcile runs after a successful cycle: tombstones are purged once no
// queued event can still reference them.
func (c *syncCoordinator) reconcile(ctx context.Context) {
	active, err := c.queue.ActiveEntityKeys(ctx)
	if err != nil {
		c.logger.Err(err).
			Str("func", "syncCoordinator.reconcile").
			Msg("failed to load active entity keys")
		return
	}
	if len(active) == 0 {
		c.entities.PurgeDeleted()
	}
}

// groupByEntity splits due events into per-entity groups preserving the
// queue's Seq order within each group. Group order follows the oldest event
// of each group, so older entities drain first under limited concurrency.
func groupByEntity(due []models.OfflineEvent) [][]models.OfflineEvent {
	byKey := make(map[models.EntityKey][]models.OfflineEvent)
	for _, event := range due {
		key := event.Key()
		byKey[key] = append(byKey[key], event)
	}

	groups := make([][]models.OfflineEvent, 0, len(byKey))
	for _, group := range byKey {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i][0].Seq < groups[j][0].Seq })

	return groups
}

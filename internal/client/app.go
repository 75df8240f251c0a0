// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-stock-keeper/internal/adapter"
	"github.com/MKhiriev/go-stock-keeper/internal/config"
	"github.com/MKhiriev/go-stock-keeper/internal/connectivity"
	"github.com/MKhiriev/go-stock-keeper/internal/logger"
	"github.com/MKhiriev/go-stock-keeper/internal/service"
	"github.com/MKhiriev/go-stock-keeper/internal/state"
	"github.com/MKhiriev/go-stock-keeper/internal/store"
	"github.com/MKhiriev/go-stock-keeper/internal/workers"
	"github.com/MKhiriev/go-stock-keeper/models"
)

type engine struct {
	logger      *logger.Logger
	storages    *store.ClientStorages
	entities    *state.EntityStore
	status      *state.SyncStatus
	monitor     *connectivity.Monitor
	mutator     service.Mutator
	conflicts   service.ConflictService
	coordinator service.SyncCoordinator
	workers     *workers.Workers

	// transitions carries monitor transitions to the sync job after the
	// status flag has been updated, so a triggered cycle never sees a
	// stale offline flag
	transitions chan bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine assembles the whole engine from config. Nothing runs yet; call
// [Engine.Start] to recover the queue and launch the workers.
func NewEngine(cfg *config.ClientConfig, log *logger.Logger) (Engine, error) {
	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("init storages: %w", err)
	}

	backend, err := adapter.NewHTTPBackend(cfg.Adapter, cfg.App, log)
	if err != nil {
		return nil, fmt.Errorf("init backend adapter: %w", err)
	}

	entities := state.NewEntityStore()
	status := state.NewSyncStatus()
	monitor := connectivity.NewMonitor(backend, log)

	mutator := service.NewMutationService(storages.Events, entities, status, log, nil)
	conflicts := service.NewConflictService(storages.Events, storages.Conflicts, entities, status, mutator, log, nil)
	coordinator := service.NewSyncCoordinator(storages.Events, conflicts, backend, entities, status, cfg.Sync, log, nil)

	transitions := make(chan bool, 1)
	job := service.NewSyncJob(coordinator, transitions)

	return &engine{
		logger:      log,
		storages:    storages,
		entities:    entities,
		status:      status,
		monitor:     monitor,
		mutator:     mutator,
		conflicts:   conflicts,
		coordinator: coordinator,
		workers:     workers.NewWorkers(cfg.Workers, monitor, job),
		transitions: transitions,
	}, nil
}

// Start implements [Engine].
func (e *engine) Start(ctx context.Context) error {
	// a crash mid-cycle may have left events stuck in syncing
	reverted, err := e.storages.Events.RevertSyncing(ctx)
	if err != nil {
		return fmt.Errorf("revert in-flight events: %w", err)
	}
	if reverted > 0 {
		e.logger.Warn().
			Str("func", "engine.Start").
			Int64("reverted", reverted).
			Msg("recovered in-flight events from a previous run")
	}

	total, byType, err := e.storages.Events.Counts(ctx)
	if err != nil {
		return fmt.Errorf("seed pending counters: %w", err)
	}
	e.status.SeedCounts(total, byType)

	runCtx, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	e.cancel = cancel
	e.mu.Unlock()

	e.wg.Add(1)
	go e.forwardTransitions(runCtx, e.monitor.Subscribe())

	e.workers.Start(runCtx)

	e.logger.Info().
		Str("func", "engine.Start").
		Int("pending_events", total).
		Msg("sync engine started")

	return nil
}

// Stop implements [Engine].
func (e *engine) Stop() {
	e.mu.Lock()
	cancel := e.cancel
	e.cancel = nil
	e.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	e.workers.Stop()
	e.wg.Wait()
}

// forwardTransitions mirrors connectivity transitions into the status
// container before handing them to the sync job. Like the monitor's fanout,
// a stale undelivered transition is replaced by the latest one.
func (e *engine) forwardTransitions(ctx context.Context, sub <-chan bool) {
	defer e.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case online, ok := <-sub:
			if !ok {
				return
			}
			e.status.SetOffline(!online)

			select {
			case e.transitions <- online:
			default:
				select {
				case <-e.transitions:
				default:
				}
				select {
				case e.transitions <- online:
				default:
				}
			}
		}
	}
}

// Mutate implements [Engine].
func (e *engine) Mutate(ctx context.Context, mutation models.Mutation) (models.OfflineEvent, error) {
	event, err := e.mutator.Apply(ctx, mutation)
	if err != nil {
		return models.OfflineEvent{}, err
	}

	if event.EventID != "" && mutation.Mode != models.ModeForcedQueue && e.monitor.Online() {
		e.coordinator.TriggerSync(ctx)
	}

	return event, nil
}

// SyncState implements [Engine].
func (e *engine) SyncState() models.SyncState {
	return e.status.Snapshot()
}

// LocalChanges implements [Engine].
func (e *engine) LocalChanges() (int, map[models.EntityType]int) {
	return e.status.LocalChanges()
}

// ListUnresolvedConflicts implements [Engine].
func (e *engine) ListUnresolvedConflicts(ctx context.Context) ([]models.ConflictRecord, error) {
	return e.conflicts.ListUnresolved(ctx)
}

// ResolveConflict implements [Engine].
func (e *engine) ResolveConflict(ctx context.Context, id string, resolution models.Resolution, mergedPayload json.RawMessage) error {
	if err := e.conflicts.Resolve(ctx, id, resolution, mergedPayload); err != nil {
		return err
	}

	// keep-local and merged resolutions queue a fresh event; push it now
	// when the backend is reachable
	if e.monitor.Online() {
		e.coordinator.TriggerSync(ctx)
	}

	return nil
}

// TriggerSync implements [Engine].
func (e *engine) TriggerSync(ctx context.Context) {
	e.coordinator.TriggerSync(ctx)
}

// Entities implements [Engine].
func (e *engine) Entities(entityType models.EntityType) []models.Entity {
	return e.entities.List(entityType)
}

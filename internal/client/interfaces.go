// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-stock-keeper/models"
)

// Engine is the UI-facing API of the offline sync engine.
//
// All write paths go through Mutate; reads come from the in-memory state
// containers and never touch the network, so they stay cheap enough for
// render loops.
type Engine interface {
	// Start recovers the durable queue, seeds the pending counters and
	// launches the background workers. It returns once the engine is live.
	Start(ctx context.Context) error

	// Stop shuts the background workers down and blocks until they exit.
	Stop()

	// Mutate applies a mutation optimistically and queues it for sync.
	// When the engine is online the push is attempted right away.
	Mutate(ctx context.Context, mutation models.Mutation) (models.OfflineEvent, error)

	// SyncState returns a point-in-time snapshot of the sync status.
	SyncState() models.SyncState

	// LocalChanges returns the number of queued events and their per-type
	// breakdown.
	LocalChanges() (int, map[models.EntityType]int)

	// ListUnresolvedConflicts returns all pending conflict records, oldest
	// first.
	ListUnresolvedConflicts(ctx context.Context) ([]models.ConflictRecord, error)

	// ResolveConflict settles a conflict record with the user's choice.
	// mergedPayload is required for models.ResolutionMerged only.
	ResolveConflict(ctx context.Context, id string, resolution models.Resolution, mergedPayload json.RawMessage) error

	// TriggerSync requests a sync cycle. Non-blocking; triggers landing
	// while a cycle runs coalesce into one rerun.
	TriggerSync(ctx context.Context)

	// Entities returns the live (non-deleted) records of one type ordered
	// by ID.
	Entities(entityType models.EntityType) []models.Entity
}

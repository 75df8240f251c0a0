// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store provides the durable, SQLite-backed persistence layer of the
// sync engine: the offline-event queue and the conflict log.
//
// Both repositories operate on the client-local database opened by
// [NewConnectSQLite] and migrated by the embedded goose migrations. All
// writes are single statements, so the atomic-write guarantee of the
// underlying driver is sufficient; no explicit transactions are required.
package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-stock-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// EventQueue is the durable FIFO queue of offline events awaiting push to
// the backend. Seq, assigned at enqueue time, fixes creation order; all
// listing methods return events ordered by it.
type EventQueue interface {
	// Enqueue durably persists a new offline event and fills in its Seq.
	// The event must carry a unique EventID.
	Enqueue(ctx context.Context, event *models.OfflineEvent) error

	// Get returns the event identified by eventID.
	// Returns ErrEventNotFound if no such event exists.
	Get(ctx context.Context, eventID string) (models.OfflineEvent, error)

	// Due returns all pending events whose NextAttemptAt is not after now,
	// ordered by Seq ascending.
	Due(ctx context.Context, now time.Time) ([]models.OfflineEvent, error)

	// MarkSyncing transitions a pending event to syncing.
	MarkSyncing(ctx context.Context, eventID string) error

	// RevertSyncing returns every syncing event to pending. Called when a
	// cycle is aborted mid-flight and at startup, so no event is ever left
	// syncing indefinitely.
	RevertSyncing(ctx context.Context) (int64, error)

	// Complete removes a confirmed event from the queue. Returns true if
	// the event was present and removed, false if it had already been
	// completed, so re-delivered confirmations are idempotent.
	Complete(ctx context.Context, eventID string) (bool, error)

	// Reschedule returns a syncing event to pending with an updated retry
	// count and next attempt time.
	Reschedule(ctx context.Context, eventID string, retryCount int, nextAttemptAt time.Time) error

	// Rebase returns a syncing event to pending with a new base version,
	// leaving its retry count untouched. Used when a rejected push turns
	// out to be mergeable (disjoint field changes).
	Rebase(ctx context.Context, eventID string, baseVersion int64) error

	// Fail marks an event failed. Failed events stay in the queue until
	// explicitly removed (conflict resolution) so they remain inspectable.
	Fail(ctx context.Context, eventID string) error

	// Remove deletes an event regardless of status.
	Remove(ctx context.Context, eventID string) error

	// Counts returns the total number of queued events and a per-type
	// breakdown. Used to seed the in-memory counters at startup.
	Counts(ctx context.Context) (int, map[models.EntityType]int, error)

	// ActiveEntityKeys returns the set of entity keys that currently have a
	// pending or syncing event. Remote deltas for these entities are
	// skipped during a pull, because in-flight pushes take precedence.
	ActiveEntityKeys(ctx context.Context) (map[models.EntityKey]struct{}, error)
}

// ConflictLog is the durable log of conflict records.
type ConflictLog interface {
	// Save persists a newly detected conflict record.
	Save(ctx context.Context, record *models.ConflictRecord) error

	// Get returns the record identified by id.
	// Returns ErrConflictNotFound if no such record exists.
	Get(ctx context.Context, id string) (models.ConflictRecord, error)

	// Unresolved returns all records with pending resolution ordered by
	// DetectedAt ascending.
	Unresolved(ctx context.Context) ([]models.ConflictRecord, error)

	// Resolve archives a pending record with the given resolution.
	// Returns ErrConflictNotFound if the record does not exist or has
	// already been resolved.
	Resolve(ctx context.Context, id string, resolution models.Resolution, resolvedAt time.Time) error
}

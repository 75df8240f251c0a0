// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the behavior of the sync engine: the mutation
// service that applies optimistic writes and queues offline events, the sync
// coordinator that drains the queue and pulls remote deltas, the conflict
// service that detects and resolves version conflicts, and the background
// sync job.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/go-stock-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// Mutator accepts mutation intents from the UI layer. Every accepted
// non-immediate mutation is applied optimistically to the Entity Store and
// recorded as exactly one durable offline event.
type Mutator interface {
	// Apply validates and applies one mutation. It returns the queued
	// offline event, or a zero event for immediate-mode mutations.
	Apply(ctx context.Context, mutation models.Mutation) (models.OfflineEvent, error)
}

// ConflictService detects conflicts on rejected pushes and manages the
// conflict log.
type ConflictService interface {
	// HandleRejectedPush decides the fate of an event whose push the backend
	// rejected with a version conflict. A mergeable rejection (stale base or
	// disjoint field changes) rebases the event and folds the remote state
	// into the Entity Store; a genuine conflict fails the event and persists
	// a conflict record for the user to resolve.
	HandleRejectedPush(ctx context.Context, event models.OfflineEvent, remote models.Entity) error

	// ListUnresolved returns all pending conflict records, oldest first.
	ListUnresolved(ctx context.Context) ([]models.ConflictRecord, error)

	// Resolve applies the user's decision for one conflict record.
	// mergedPayload is required for models.ResolutionMerged and ignored
	// otherwise.
	Resolve(ctx context.Context, id string, resolution models.Resolution, mergedPayload json.RawMessage) error
}

// SyncCoordinator owns the sync cycle: drain the offline queue, pull remote
// deltas, reconcile. At most one cycle runs at a time.
type SyncCoordinator interface {
	// RunCycle runs one sync cycle, blocking until it completes. If a cycle
	// is already running it sets a rerun flag and returns immediately; the
	// running cycle re-executes once after finishing.
	RunCycle(ctx context.Context) error

	// TriggerSync requests a cycle without blocking the caller.
	TriggerSync(ctx context.Context)

	// Abort cancels the running cycle, if any. Events caught mid-push are
	// reverted to pending before the cycle exits.
	Abort()
}

// SyncJob is the background worker that runs sync cycles on a ticker and on
// offline→online transitions.
type SyncJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}

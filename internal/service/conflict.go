// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/MKhiriev/go-stock-keeper/internal/logger"
	"github.com/MKhiriev/go-stock-keeper/internal/state"
	"github.com/MKhiriev/go-stock-keeper/internal/store"
	"github.com/MKhiriev/go-stock-keeper/models"
)

type conflictService struct {
	queue     store.EventQueue
	conflicts store.ConflictLog
	entities  *state.EntityStore
	status    *state.SyncStatus
	mutator   Mutator
	logger    *logger.Logger
	clock     Clock
}

// NewConflictService wires the conflict detector to the durable conflict log
// and the queue. mutator is used by keep-local and merged resolutions to
// re-enqueue the surviving payload through the regular mutation path.
func NewConflictService(queue store.EventQueue, conflicts store.ConflictLog, entities *state.EntityStore, status *state.SyncStatus, mutator Mutator, logger *logger.Logger, clock Clock) ConflictService {
	if clock == nil {
		clock = SystemClock
	}
	return &conflictService{
		queue:     queue,
		conflicts: conflicts,
		entities:  entities,
		status:    status,
		mutator:   mutator,
		logger:    logger,
		clock:     clock,
	}
}

// DetectConflict is the pure decision function behind HandleRejectedPush.
//
// It returns nil when the rejection is mergeable: the remote version is not
// newer than the base the event was built from (stale rejection), or the
// fields that differ between the local and remote payloads are disjoint from
// the fields the event changed. Otherwise it returns a new conflict record
// with the overlapping field names.
//
// Detection never fails: a malformed remote payload, or a rejection carrying
// no remote snapshot at all, is always a conflict, with whatever the backend
// sent preserved verbatim in the record.
func DetectConflict(event models.OfflineEvent, local, remote models.Entity, now time.Time) *models.ConflictRecord {
	// without a usable remote snapshot nothing can be merged safely
	if remote.ID != 0 && remote.Version <= event.BaseVersion {
		return nil
	}

	record := &models.ConflictRecord{
		ID:            uuid.NewString(),
		EntityType:    event.EntityType,
		EntityID:      event.EntityID,
		EventID:       event.EventID,
		LocalVersion:  local,
		RemoteVersion: remote,
		DetectedAt:    now,
		Resolution:    models.ResolutionPending,
	}

	// only field-level update deltas can be merged; a delete or create
	// rejected with a newer remote version is always a conflict
	if event.Operation != models.OperationUpdate {
		return record
	}

	remotePayload := gjson.ParseBytes(remote.Payload)
	delta := gjson.ParseBytes(event.Payload)
	if !remotePayload.IsObject() || !delta.IsObject() {
		return record
	}

	localPayload := gjson.ParseBytes(local.Payload)

	var overlap []string
	delta.ForEach(func(key, _ gjson.Result) bool {
		localValue := localPayload.Get(key.String())
		remoteValue := remotePayload.Get(key.String())
		if localValue.Raw != remoteValue.Raw {
			overlap = append(overlap, key.String())
		}
		return true
	})

	if len(overlap) == 0 {
		return nil
	}

	sort.Strings(overlap)
	record.ChangedFields = overlap
	return record
}

func (s *conflictService) HandleRejectedPush(ctx context.Context, event models.OfflineEvent, remote models.Entity) error {
	log := logger.FromContext(ctx)

	local, ok := s.entities.Get(event.Key())
	if !ok {
		// fall back to the event's own view so the record still captures
		// what the user tried to write
		local = models.Entity{
			ID:      event.EntityID,
			Type:    event.EntityType,
			Version: event.BaseVersion,
			Payload: event.Payload,
		}
	}

	record := DetectConflict(event, local, remote, s.clock.Now())
	if record == nil {
		return s.rebase(ctx, event, remote)
	}

	if err := s.queue.Fail(ctx, event.EventID); err != nil && !errors.Is(err, store.ErrEventNotFound) {
		log.Err(err).
			Str("func", "conflictService.HandleRejectedPush").
			Str("event_id", event.EventID).
			Msg("failed to mark conflicted event as failed")
		return fmt.Errorf("fail conflicted event: %w", err)
	}

	if err := s.conflicts.Save(ctx, record); err != nil {
		log.Err(err).
			Str("func", "conflictService.HandleRejectedPush").
			Str("conflict_id", record.ID).
			Str("event_id", event.EventID).
			Msg("failed to persist conflict record")
		return fmt.Errorf("save conflict record: %w", err)
	}

	log.Info().
		Str("func", "conflictService.HandleRejectedPush").
		Str("conflict_id", record.ID).
		Str("entity_type", string(event.EntityType)).
		Int64("entity_id", event.EntityID).
		Strs("changed_fields", record.ChangedFields).
		Msg("version conflict recorded")

	return nil
}

// rebase folds a mergeable rejection into local state: the remote snapshot
// (with the event's delta re-applied on top) replaces the optimistic value,
// and the event returns to pending against the remote version.
func (s *conflictService) rebase(ctx context.Context, event models.OfflineEvent, remote models.Entity) error {
	log := logger.FromContext(ctx)

	merged := remote
	if event.Operation == models.OperationUpdate {
		payload, err := overlayPayload(remote.Payload, event.Payload)
		if err == nil {
			merged.Payload = payload
		}
	}
	if event.Operation == models.OperationDelete {
		merged.Deleted = true
	}
	s.entities.UpsertOne(merged)

	if err := s.queue.Rebase(ctx, event.EventID, remote.Version); err != nil {
		log.Err(err).
			Str("func", "conflictService.rebase").
			Str("event_id", event.EventID).
			Int64("base_version", remote.Version).
			Msg("failed to rebase event on remote version")
		return fmt.Errorf("rebase event: %w", err)
	}

	return nil
}

func (s *conflictService) ListUnresolved(ctx context.Context) ([]models.ConflictRecord, error) {
	return s.conflicts.Unresolved(ctx)
}

func (s *conflictService) Resolve(ctx context.Context, id string, resolution models.Resolution, mergedPayload json.RawMessage) error {
	log := logger.FromContext(ctx)

	if !resolution.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidResolution, resolution)
	}
	if resolution == models.ResolutionMerged && len(mergedPayload) == 0 {
		return ErrMergedPayloadRequired
	}

	record, err := s.conflicts.Get(ctx, id)
	if err != nil {
		return err
	}

	// claim the record first; the guarded update makes concurrent
	// resolutions of the same conflict race-safe
	if err = s.conflicts.Resolve(ctx, id, resolution, s.clock.Now()); err != nil {
		return err
	}

	// the failed event leaves the queue in every resolution
	if err = s.queue.Remove(ctx, record.EventID); err == nil {
		s.status.DecPending(record.EntityType)
	} else if !errors.Is(err, store.ErrEventNotFound) {
		log.Err(err).
			Str("func", "conflictService.Resolve").
			Str("conflict_id", id).
			Str("event_id", record.EventID).
			Msg("failed to remove conflicted event from the queue")
		return fmt.Errorf("remove conflicted event: %w", err)
	}

	switch resolution {
	case models.ResolutionKeepRemote:
		// a record saved without a usable remote snapshot has nothing to
		// apply; the next pull refreshes the entity now that its event is gone
		if record.RemoteVersion.ID != 0 {
			s.entities.UpsertOne(record.RemoteVersion)
		}
		return nil

	case models.ResolutionKeepLocal:
		operation := models.OperationUpdate
		payload := record.LocalVersion.Payload
		if record.LocalVersion.Deleted {
			operation = models.OperationDelete
			payload = nil
		}
		_, err = s.mutator.Apply(ctx, models.Mutation{
			Type:        record.EntityType,
			Operation:   operation,
			EntityID:    record.EntityID,
			Payload:     payload,
			BaseVersion: record.RemoteVersion.Version,
			Mode:        models.ModeForcedQueue,
		})
		return err

	case models.ResolutionMerged:
		_, err = s.mutator.Apply(ctx, models.Mutation{
			Type:        record.EntityType,
			Operation:   models.OperationUpdate,
			EntityID:    record.EntityID,
			Payload:     mergedPayload,
			BaseVersion: record.RemoteVersion.Version,
			Mode:        models.ModeForcedQueue,
		})
		return err
	}

	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-stock-keeper/internal/logger"
	"github.com/MKhiriev/go-stock-keeper/internal/state"
	"github.com/MKhiriev/go-stock-keeper/internal/store"
	"github.com/MKhiriev/go-stock-keeper/models"
)

type mutationService struct {
	queue    store.EventQueue
	entities *state.EntityStore
	status   *state.SyncStatus
	logger   *logger.Logger
	clock    Clock

	tempID atomic.Int64
}

// NewMutationService constructs the mutation middleware. All UI-originated
// writes pass through it: the Entity Store is updated optimistically first,
// then the mutation is recorded as one durable offline event. When the queue
// write fails the optimistic change is rolled back and [ErrPersistence] is
// returned.
func NewMutationService(queue store.EventQueue, entities *state.EntityStore, status *state.SyncStatus, logger *logger.Logger, clock Clock) Mutator {
	if clock == nil {
		clock = SystemClock
	}
	return &mutationService{
		queue:    queue,
		entities: entities,
		status:   status,
		logger:   logger,
		clock:    clock,
	}
}

func (m *mutationService) Apply(ctx context.Context, mutation models.Mutation) (models.OfflineEvent, error) {
	log := logger.FromContext(ctx)

	if !mutation.Type.Valid() {
		return models.OfflineEvent{}, fmt.Errorf("%w: %q", ErrUnknownEntityType, mutation.Type)
	}
	switch mutation.Operation {
	case models.OperationCreate, models.OperationUpdate, models.OperationDelete:
	default:
		return models.OfflineEvent{}, fmt.Errorf("%w: %q", ErrUnknownOperation, mutation.Operation)
	}

	if mutation.Mode == models.ModeImmediate {
		return models.OfflineEvent{}, m.applyImmediate(mutation)
	}

	now := m.clock.Now()
	key := models.EntityKey{Type: mutation.Type, ID: mutation.EntityID}

	var (
		prior    models.Entity
		hadPrior bool
	)

	switch mutation.Operation {
	case models.OperationCreate:
		if mutation.EntityID == 0 {
			// temporary negative ID until the server assigns the real one
			mutation.EntityID = -m.tempID.Add(1)
			key.ID = mutation.EntityID
		}
		m.entities.UpsertOne(models.Entity{
			ID:        key.ID,
			Type:      mutation.Type,
			UpdatedAt: now,
			Payload:   mutation.Payload,
		})

	case models.OperationUpdate:
		prior, hadPrior = m.entities.Get(key)
		if !hadPrior {
			return models.OfflineEvent{}, fmt.Errorf("%w: %s/%d", ErrEntityNotFound, key.Type, key.ID)
		}

		merged, err := overlayPayload(prior.Payload, mutation.Payload)
		if err != nil {
			return models.OfflineEvent{}, fmt.Errorf("apply update payload: %w", err)
		}

		next := prior
		next.Payload = merged
		next.UpdatedAt = now
		m.entities.UpsertOne(next)

		if mutation.BaseVersion == 0 {
			mutation.BaseVersion = prior.Version
		}

	case models.OperationDelete:
		prior, hadPrior = m.entities.Get(key)
		if !hadPrior {
			return models.OfflineEvent{}, fmt.Errorf("%w: %s/%d", ErrEntityNotFound, key.Type, key.ID)
		}

		next := prior
		next.Deleted = true
		next.UpdatedAt = now
		m.entities.UpsertOne(next)

		if mutation.BaseVersion == 0 {
			mutation.BaseVersion = prior.Version
		}
		// delete events carry no payload
		mutation.Payload = nil
	}

	event := models.OfflineEvent{
		EventID:       uuid.NewString(),
		EntityType:    mutation.Type,
		EntityID:      mutation.EntityID,
		Operation:     mutation.Operation,
		Payload:       mutation.Payload,
		BaseVersion:   mutation.BaseVersion,
		CreatedAt:     now,
		NextAttemptAt: now,
		Status:        models.EventPending,
	}

	if err := m.queue.Enqueue(ctx, &event); err != nil {
		m.rollback(mutation.Operation, key, prior, hadPrior)
		log.Err(err).
			Str("func", "mutationService.Apply").
			Str("entity_type", string(mutation.Type)).
			Int64("entity_id", mutation.EntityID).
			Msg("failed to enqueue offline event, optimistic change rolled back")
		return models.OfflineEvent{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	m.status.IncPending(mutation.Type)

	return event, nil
}

// applyImmediate writes server-confirmed data straight into the Entity Store
// without touching the queue or the counters.
func (m *mutationService) applyImmediate(mutation models.Mutation) error {
	key := models.EntityKey{Type: mutation.Type, ID: mutation.EntityID}

	if mutation.Operation == models.OperationDelete {
		m.entities.Remove(key)
		return nil
	}

	if mutation.EntityID == 0 {
		return fmt.Errorf("%w: immediate writes need a server-assigned id", ErrEntityNotFound)
	}

	m.entities.UpsertOne(models.Entity{
		ID:        mutation.EntityID,
		Type:      mutation.Type,
		Version:   mutation.BaseVersion,
		UpdatedAt: m.clock.Now(),
		Payload:   mutation.Payload,
	})
	return nil
}

func (m *mutationService) rollback(operation models.EventOperation, key models.EntityKey, prior models.Entity, hadPrior bool) {
	if operation == models.OperationCreate {
		m.entities.Remove(key)
		return
	}
	if hadPrior {
		m.entities.UpsertOne(prior)
	}
}

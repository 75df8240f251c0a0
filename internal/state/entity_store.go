// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package state holds the in-memory, observable state of the sync engine:
// the normalized entity store that UI layers read from and the sync status
// container that tracks queue depth, connectivity and recent errors.
//
// Both containers are safe for concurrent use. They are plain state holders;
// all decisions about what to write into them belong to the service layer.
package state

import (
	"sort"
	"sync"

	"github.com/MKhiriev/go-stock-keeper/models"
)

// EntityStore is the normalized in-memory map of inventory records, one
// bucket per entity type. It reflects optimistic local state: mutations are
// applied here immediately and reconciled later when the backend confirms or
// rejects them.
type EntityStore struct {
	mu       sync.RWMutex
	entities map[models.EntityType]map[int64]models.Entity
}

func NewEntityStore() *EntityStore {
	entities := make(map[models.EntityType]map[int64]models.Entity, len(models.EntityTypes))
	for _, t := range models.EntityTypes {
		entities[t] = make(map[int64]models.Entity)
	}
	return &EntityStore{entities: entities}
}

// SetAll replaces the whole bucket of one entity type. Used when a full
// refetch supersedes whatever was held locally.
func (s *EntityStore) SetAll(entityType models.EntityType, list []models.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := make(map[int64]models.Entity, len(list))
	for _, e := range list {
		bucket[e.ID] = e
	}
	s.entities[entityType] = bucket
}

// UpsertOne inserts or overwrites a single record. Tombstones (Deleted=true)
// are stored as-is; List filters them out.
func (s *EntityStore) UpsertOne(entity models.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(entity)
}

// UpsertMany inserts or overwrites a batch of records under one lock hold.
func (s *EntityStore) UpsertMany(list []models.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range list {
		s.upsertLocked(e)
	}
}

func (s *EntityStore) upsertLocked(entity models.Entity) {
	bucket, ok := s.entities[entity.Type]
	if !ok {
		bucket = make(map[int64]models.Entity)
		s.entities[entity.Type] = bucket
	}
	bucket[entity.ID] = entity
}

// Replace removes the record addressed by old and inserts confirmed in its
// place. Used to collapse an optimistic create (held under a temporary
// negative ID) into the confirmed record with its server-assigned ID.
func (s *EntityStore) Replace(old models.EntityKey, confirmed models.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bucket, ok := s.entities[old.Type]; ok {
		delete(bucket, old.ID)
	}
	s.upsertLocked(confirmed)
}

// Remove drops a record from the store entirely.
func (s *EntityStore) Remove(key models.EntityKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bucket, ok := s.entities[key.Type]; ok {
		delete(bucket, key.ID)
	}
}

// Get returns the stored record for key, tombstones included.
func (s *EntityStore) Get(key models.EntityKey) (models.Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket, ok := s.entities[key.Type]
	if !ok {
		return models.Entity{}, false
	}
	entity, ok := bucket[key.ID]
	return entity, ok
}

// List returns all live (non-deleted) records of one type ordered by ID.
func (s *EntityStore) List(entityType models.EntityType) []models.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := s.entities[entityType]
	list := make([]models.Entity, 0, len(bucket))
	for _, e := range bucket {
		if e.Deleted {
			continue
		}
		list = append(list, e)
	}

	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// PurgeDeleted drops every tombstone from the store. Called after a sync
// cycle once no queued event references the deleted records anymore.
func (s *EntityStore) PurgeDeleted() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, bucket := range s.entities {
		for id, e := range bucket {
			if e.Deleted {
				delete(bucket, id)
			}
		}
	}
}

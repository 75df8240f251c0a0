// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package state

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-stock-keeper/models"
)

// maxSyncErrors bounds the retained error log. Older entries are dropped
// first, so the snapshot always shows the most recent failures.
const maxSyncErrors = 32

// SyncStatus tracks the observable sync state: connectivity, queue depth
// per entity type, cycle progress and the recent error log.
type SyncStatus struct {
	mu             sync.RWMutex
	offline        bool
	syncInProgress bool
	lastSyncTime   time.Time
	pending        int
	perType        map[models.EntityType]int
	syncErrors     []models.SyncError
}

func NewSyncStatus() *SyncStatus {
	return &SyncStatus{
		// assume offline until the first successful probe says otherwise
		offline: true,
		perType: make(map[models.EntityType]int),
	}
}

// SetOffline records the connectivity flag and reports whether it changed.
func (s *SyncStatus) SetOffline(offline bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.offline != offline
	s.offline = offline
	return changed
}

// Offline reports the last known connectivity state.
func (s *SyncStatus) Offline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offline
}

// SetSyncInProgress records whether a sync cycle is currently running.
func (s *SyncStatus) SetSyncInProgress(inProgress bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncInProgress = inProgress
}

// MarkSynced records the completion time of a successful sync cycle.
func (s *SyncStatus) MarkSynced(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSyncTime = at
}

// SeedCounts initialises the pending counters from the durable queue,
// discarding whatever the in-memory counters held before.
func (s *SyncStatus) SeedCounts(total int, byType map[models.EntityType]int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = total
	s.perType = make(map[models.EntityType]int, len(byType))
	for t, n := range byType {
		s.perType[t] = n
	}
}

// IncPending counts a newly enqueued event.
func (s *SyncStatus) IncPending(entityType models.EntityType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending++
	s.perType[entityType]++
}

// DecPending counts an event leaving the queue (confirmed or removed during
// conflict resolution). The counters never go below zero.
func (s *SyncStatus) DecPending(entityType models.EntityType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// a decrement for a type with nothing pending must not touch the total,
	// or the counters drift apart
	if s.perType[entityType] > 0 {
		s.perType[entityType]--
		if s.pending > 0 {
			s.pending--
		}
	}
}

// RecordError appends a sync error to the bounded log.
func (s *SyncStatus) RecordError(syncErr models.SyncError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.syncErrors = append(s.syncErrors, syncErr)
	if len(s.syncErrors) > maxSyncErrors {
		s.syncErrors = s.syncErrors[len(s.syncErrors)-maxSyncErrors:]
	}
}

// ClearErrors empties the error log.
func (s *SyncStatus) ClearErrors() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncErrors = nil
}

// LocalChanges returns the total number of queued events and a copy of the
// per-type breakdown.
func (s *SyncStatus) LocalChanges() (int, map[models.EntityType]int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byType := make(map[models.EntityType]int, len(s.perType))
	for t, n := range s.perType {
		if n > 0 {
			byType[t] = n
		}
	}
	return s.pending, byType
}

// Snapshot returns a point-in-time copy of the observable sync state.
func (s *SyncStatus) Snapshot() models.SyncState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	errorsCopy := make([]models.SyncError, len(s.syncErrors))
	copy(errorsCopy, s.syncErrors)

	return models.SyncState{
		IsOffline:      s.offline,
		LastSyncTime:   s.lastSyncTime,
		PendingEvents:  s.pending,
		SyncInProgress: s.syncInProgress,
		SyncErrors:     errorsCopy,
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncError is one recorded synchronization failure: an event whose retries
// were exhausted or whose payload was rejected by the backend.
type SyncError struct {
	EventID    string     `json:"event_id"`
	EntityType EntityType `json:"entity_type"`
	EntityID   int64      `json:"entity_id"`
	Message    string     `json:"message"`
	At         time.Time  `json:"at"`
}

// SyncState is the read-only snapshot of the engine's synchronization
// status exposed to the UI layer. PendingEvents counts queued mutations not
// yet confirmed synced, including failed ones awaiting resolution.
type SyncState struct {
	IsOffline      bool        `json:"is_offline"`
	LastSyncTime   time.Time   `json:"last_sync_time"`
	PendingEvents  int         `json:"pending_events"`
	SyncInProgress bool        `json:"sync_in_progress"`
	SyncErrors     []SyncError `json:"sync_errors,omitempty"`
}

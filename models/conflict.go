// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Resolution is the outcome chosen for a conflict record.
type Resolution string

const (
	ResolutionPending    Resolution = "pending"
	ResolutionKeepLocal  Resolution = "keep_local"
	ResolutionKeepRemote Resolution = "keep_remote"
	ResolutionMerged     Resolution = "merged"
)

// Valid reports whether r is a resolution a caller may request.
// ResolutionPending is the initial state and cannot be requested.
func (r Resolution) Valid() bool {
	switch r {
	case ResolutionKeepLocal, ResolutionKeepRemote, ResolutionMerged:
		return true
	}
	return false
}

// ConflictRecord captures a divergence between the version a local edit was
// based on and the backend's current version of the same record.
//
// LocalVersion is the optimistic local snapshot at detection time and
// RemoteVersion the server snapshot carried by the rejected push response.
// The remote payload is preserved verbatim even when it cannot be parsed, so
// no server-side state is lost. EventID references the offline event whose
// push was rejected.
type ConflictRecord struct {
	ID            string     `json:"id"`
	EntityType    EntityType `json:"entity_type"`
	EntityID      int64      `json:"entity_id"`
	EventID       string     `json:"event_id"`
	LocalVersion  Entity     `json:"local_version"`
	RemoteVersion Entity     `json:"remote_version"`
	ChangedFields []string   `json:"changed_fields,omitempty"`
	DetectedAt    time.Time  `json:"detected_at"`
	Resolution    Resolution `json:"resolution"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// EntityType identifies one of the normalized inventory record kinds the
// engine synchronizes. The string values double as the path segments of the
// backend REST API.
type EntityType string

const (
	EntityItem      EntityType = "item"
	EntityContainer EntityType = "container"
	EntityCategory  EntityType = "category"
	EntityLocation  EntityType = "location"
	EntitySource    EntityType = "source"
)

// EntityTypes lists every known entity type in a stable order. Used by the
// coordinator when pulling remote deltas and by the state container when
// initializing per-type counters.
var EntityTypes = []EntityType{
	EntityItem,
	EntityContainer,
	EntityCategory,
	EntityLocation,
	EntitySource,
}

// Valid reports whether t is one of the known entity types.
func (t EntityType) Valid() bool {
	switch t {
	case EntityItem, EntityContainer, EntityCategory, EntityLocation, EntitySource:
		return true
	}
	return false
}

// Entity is one inventory record as held by the Entity Store and exchanged
// with the backend. Version is a server-issued monotonic revision counter;
// UpdatedAt is informational only and is never used for conflict decisions.
// Payload carries the domain fields as an opaque JSON object.
type Entity struct {
	ID        int64           `json:"id"`
	Type      EntityType      `json:"type"`
	UserID    int64           `json:"user_id,omitempty"`
	Version   int64           `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
	Deleted   bool            `json:"deleted"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// EntityKey uniquely addresses a record across all entity types.
type EntityKey struct {
	Type EntityType
	ID   int64
}

// Key returns the normalized-map key of the entity.
func (e Entity) Key() EntityKey {
	return EntityKey{Type: e.Type, ID: e.ID}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// QueueMode tells the mutation service how a mutation relates to the
// offline queue.
type QueueMode string

const (
	// ModeQueued is the default: apply optimistically and enqueue a durable
	// offline event for the next drain.
	ModeQueued QueueMode = "queued"

	// ModeImmediate applies the mutation to the Entity Store only, without
	// queuing. Used for writebacks already confirmed by the server, such as
	// entities received from a pull or a successful push.
	ModeImmediate QueueMode = "immediate"

	// ModeForcedQueue queues even when the client is known to be online.
	// Used to batch rapid successive edits into the next drain.
	ModeForcedQueue QueueMode = "forced_queue"
)

// Mutation is a single mutation intent handed to the mutation service by
// the UI layer.
//
// For update and delete operations BaseVersion must be the entity version
// the edit was built from. For create operations EntityID may be zero, in
// which case a client-temporary negative ID is assigned until the server
// confirms the record.
type Mutation struct {
	Type        EntityType      `json:"type"`
	Operation   EventOperation  `json:"operation"`
	EntityID    int64           `json:"entity_id"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	BaseVersion int64           `json:"base_version"`
	Mode        QueueMode       `json:"mode,omitempty"`
}

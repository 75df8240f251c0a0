// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// EventOperation is the mutation kind carried by an offline event.
type EventOperation string

const (
	OperationCreate EventOperation = "create"
	OperationUpdate EventOperation = "update"
	OperationDelete EventOperation = "delete"
)

// EventStatus is the lifecycle state of an offline event in the durable
// queue.
//
//	pending → syncing → synced (removed from the queue)
//	pending → syncing → pending (transient failure, rescheduled)
//	pending → syncing → failed  (retries exhausted, validation reject,
//	                             or version conflict)
type EventStatus string

const (
	EventPending EventStatus = "pending"
	EventSyncing EventStatus = "syncing"
	EventSynced  EventStatus = "synced"
	EventFailed  EventStatus = "failed"
)

// OfflineEvent is one durably queued mutation awaiting push to the backend.
//
// Seq is a local autoincrement assigned by the queue at enqueue time; it
// fixes FIFO order for events addressing the same entity. EventID is a
// client-generated UUID used as the server-side idempotency key, so a push
// retried after an aborted cycle is harmless.
//
// Payload is the full domain payload for create operations and a
// changed-fields-only JSON object for updates; delete events carry none.
type OfflineEvent struct {
	Seq           int64           `json:"seq"`
	EventID       string          `json:"event_id"`
	EntityType    EntityType      `json:"entity_type"`
	EntityID      int64           `json:"entity_id"`
	Operation     EventOperation  `json:"operation"`
	Payload       json.RawMessage `json:"payload,omitempty"`
	BaseVersion   int64           `json:"base_version"`
	CreatedAt     time.Time       `json:"created_at"`
	RetryCount    int             `json:"retry_count"`
	NextAttemptAt time.Time       `json:"next_attempt_at"`
	Status        EventStatus     `json:"status"`
}

// Key returns the entity key the event mutates.
func (e OfflineEvent) Key() EntityKey {
	return EntityKey{Type: e.EntityType, ID: e.EntityID}
}

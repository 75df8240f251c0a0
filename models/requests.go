// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// PushRequest is the body of a create/update/delete push to the backend.
// EventID is the idempotency key; the server must treat a replay of the
// same event as a no-op returning the original result.
type PushRequest struct {
	EventID     string          `json:"event_id"`
	BaseVersion int64           `json:"base_version"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

// PushResult is the success response of a push: the confirmed entity with
// its new server-issued version.
type PushResult struct {
	Entity Entity `json:"entity"`
}

// ConflictResponse is the body of an HTTP 409 push rejection. Remote is the
// backend's current snapshot of the contested record.
type ConflictResponse struct {
	Remote Entity `json:"remote"`
}

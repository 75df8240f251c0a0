// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the inventory backend.
//
// The primary abstraction is [Backend], which decouples the sync coordinator
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPBackend]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-stock-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/backend_mock.go -package=mock

// Backend defines transport-agnostic communication with the inventory backend.
// Implementations are responsible for serialisation, authentication header
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type Backend interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Ping probes backend reachability with a lightweight unauthenticated
	// request. A nil return means the backend answered.
	Ping(ctx context.Context) error

	// PushEvent sends one offline event to the backend and returns the
	// confirmed entity carrying its new server-issued version. The event's
	// EventID doubles as the server-side idempotency key.
	//
	// On a version conflict the returned error is a [*ConflictError] (which
	// unwraps to [ErrConflict]) carrying the backend's current snapshot of
	// the contested record.
	PushEvent(ctx context.Context, event models.OfflineEvent) (models.Entity, error)

	// FetchEntity returns the backend's current snapshot of a single record.
	FetchEntity(ctx context.Context, key models.EntityKey) (models.Entity, error)

	// FetchChangedSince returns every record of the given type changed on the
	// backend strictly after since, deleted tombstones included.
	FetchChangedSince(ctx context.Context, entityType models.EntityType, since time.Time) ([]models.Entity, error)
}

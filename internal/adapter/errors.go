package adapter

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-stock-keeper/models"
)

var (
	// ErrValidation marks a permanent rejection: the backend understood the
	// request and refused it (HTTP 400/422). Retrying the same event cannot
	// succeed.
	ErrValidation = errors.New("request rejected by backend validation")

	// ErrUnauthorized marks a rejected or expired bearer token (HTTP 401).
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrNotFound marks a request addressing a record the backend does not
	// know (HTTP 404).
	ErrNotFound = errors.New("record not found on backend")

	// ErrConflict marks a version conflict (HTTP 409). Pushes return it
	// wrapped in a [*ConflictError] carrying the remote snapshot.
	ErrConflict = errors.New("version conflict")

	// ErrTransient marks a failure worth retrying: a server-side error
	// (HTTP 5xx) or a network-level failure before any response arrived.
	ErrTransient = errors.New("transient backend failure")
)

// ConflictError is the error returned by a push the backend rejected with
// HTTP 409. Remote is the backend's current snapshot of the contested record,
// preserved verbatim even when the response body could not be fully parsed.
type ConflictError struct {
	Remote models.Entity
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("version conflict: remote version %d", e.Remote.Version)
}

// Unwrap lets errors.Is(err, ErrConflict) match a *ConflictError.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

package service

import "errors"

var (
	// ErrPersistence is returned when the durable queue rejects a write. The
	// optimistic in-memory change is rolled back before the error surfaces.
	ErrPersistence = errors.New("failed to persist offline event")

	// ErrUnknownEntityType is returned for a mutation naming an entity type
	// the engine does not synchronize.
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrUnknownOperation is returned for a mutation whose operation is not
	// create, update or delete.
	ErrUnknownOperation = errors.New("unknown mutation operation")

	// ErrEntityNotFound is returned when an update or delete addresses a
	// record the Entity Store does not hold.
	ErrEntityNotFound = errors.New("entity not found in local store")

	// ErrInvalidResolution is returned when a conflict resolution request
	// names a resolution the engine cannot apply.
	ErrInvalidResolution = errors.New("invalid conflict resolution")

	// ErrMergedPayloadRequired is returned when a merged resolution carries
	// no payload to write.
	ErrMergedPayloadRequired = errors.New("merged resolution requires a payload")
)

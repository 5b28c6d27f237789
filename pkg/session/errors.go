package session

import "errors"

var (
	// ErrNotFound indicates no session exists with the given id.
	ErrNotFound = errors.New("session.not_found")

	// ErrUnauthorized indicates the actor may not perform the operation:
	// a non-creator cancelling, or a creator joining their own session.
	ErrUnauthorized = errors.New("session.unauthorized")

	// ErrClosed indicates a join against a cancelled or already-past session.
	ErrClosed = errors.New("session.closed")

	// ErrSlotsFull indicates the session's capacity is exhausted.
	ErrSlotsFull = errors.New("session.slots_full")

	// ErrAlreadyJoined indicates the participant already holds a slot.
	ErrAlreadyJoined = errors.New("session.already_joined")

	// ErrAlreadyClosed indicates a cancel against an already-cancelled session.
	ErrAlreadyClosed = errors.New("session.already_closed")

	// ErrContention indicates the bounded optimistic-retry budget was
	// exhausted under concurrent writes to the same session.
	ErrContention = errors.New("session.contention")

	// ErrValidation indicates malformed or missing create parameters.
	ErrValidation = errors.New("session.validation")

	// ErrAlreadyExists indicates a store create with a duplicate session id.
	ErrAlreadyExists = errors.New("session.already_exists")

	// ErrRevisionMismatch indicates a store update lost the optimistic
	// concurrency race; the caller should re-read and retry.
	ErrRevisionMismatch = errors.New("session.revision_mismatch")

	// ErrInvalidSession indicates a nil session or empty id passed to a store.
	ErrInvalidSession = errors.New("session.invalid")
)

package session

import "context"

// Store defines the persistence contract for sessions. One record per
// session, keyed by id; participant membership is stored inline with the
// record so that a session snapshot is always internally consistent.
//
// Stores hold no business rules. All invariants are enforced by the Service
// before a write reaches the store; the store's only contribution to
// correctness is the revision compare-and-swap on Update.
type Store interface {
	// Create persists a new session. Returns ErrAlreadyExists when the id
	// is already taken.
	Create(ctx context.Context, sess *Session) error

	// Get returns a snapshot of the session or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Update replaces the stored record with a mutated snapshot whose
	// Revision must be exactly one greater than the stored revision.
	// Returns ErrRevisionMismatch when another writer got there first and
	// ErrNotFound when the session does not exist. The replacement is
	// atomic: readers never observe a partially-applied update.
	Update(ctx context.Context, sess *Session) error

	// All returns snapshots of every stored session, in no particular
	// order. Reads never block in-flight writes.
	All(ctx context.Context) ([]*Session, error)
}

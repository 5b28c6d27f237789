package session

import (
	"context"
	"sync"
)

// MemoryStore implements Store using in-memory storage. It is the default
// store for development and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

// Create stores a new session.
func (m *MemoryStore) Create(ctx context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[sess.ID]; exists {
		return ErrAlreadyExists
	}
	m.sessions[sess.ID] = sess.Clone()
	return nil
}

// Get retrieves a snapshot of a session by id.
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, exists := m.sessions[id]
	if !exists {
		return nil, ErrNotFound
	}
	return sess.Clone(), nil
}

// Update replaces the stored session if the revision chain is intact.
func (m *MemoryStore) Update(ctx context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored, exists := m.sessions[sess.ID]
	if !exists {
		return ErrNotFound
	}
	if stored.Revision != sess.Revision-1 {
		return ErrRevisionMismatch
	}
	m.sessions[sess.ID] = sess.Clone()
	return nil
}

// All returns snapshots of every stored session.
func (m *MemoryStore) All(ctx context.Context) ([]*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		out = append(out, sess.Clone())
	}
	return out, nil
}

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

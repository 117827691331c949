package session

import "sync"

// MemoryStore implements Store without durable backing. Sessions live only as
// long as the process; useful for tests and one-shot tooling.
type MemoryStore struct {
	mu      sync.RWMutex
	current Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the in-memory session; there is no durable copy to restore.
func (s *MemoryStore) Load() Session {
	return s.Current()
}

// Save replaces the session wholesale.
func (s *MemoryStore) Save(sess Session) error {
	if err := sess.complete(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = sess
	return nil
}

// Clear removes the session.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Session{}
	return nil
}

// Current returns the in-memory session.
func (s *MemoryStore) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// Verify interface compliance.
var _ Store = (*MemoryStore)(nil)

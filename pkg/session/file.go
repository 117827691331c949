package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileEntry is the durable shape: the "token" and "user" keys the console has
// always persisted, in a single document so both halves land in one write.
type fileEntry struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// FileStore implements Store with a JSON file as the durable backing. Writes
// go to a temp file in the same directory followed by a rename, so a crash
// mid-write leaves either the old session or the new one, never a torn pair.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	current Session
}

// NewFileStore creates a store backed by the file at path and restores any
// session persisted there. Restoration trusts the durable copy without a
// network round trip; a missing or unreadable file is an empty session.
func NewFileStore(path string) *FileStore {
	s := &FileStore{path: path}
	s.current = s.readFile()
	return s
}

// Load re-reads the durable file and replaces the in-memory copy.
func (s *FileStore) Load() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = s.readFile()
	return s.current
}

// Save writes token and user together to the file and to memory.
func (s *FileStore) Save(sess Session) error {
	if err := sess.complete(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeFile(sess); err != nil {
		return err
	}
	s.current = sess
	return nil
}

// Clear removes the file and the in-memory copy.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	s.current = Session{}
	return nil
}

// Current returns the in-memory session without touching the file.
func (s *FileStore) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// readFile parses the durable entry. Any failure means "no session".
func (s *FileStore) readFile() Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Session{}
	}

	sess := Session{Token: entry.Token, User: entry.User}
	if !sess.Authenticated() {
		// A corrupt or half-written entry never surfaces as a session.
		return Session{}
	}
	return sess
}

func (s *FileStore) writeFile(sess Session) error {
	data, err := json.MarshalIndent(fileEntry{Token: sess.Token, User: sess.User}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("creating temp session file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing session file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("securing session file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}

// Verify interface compliance.
var _ Store = (*FileStore)(nil)

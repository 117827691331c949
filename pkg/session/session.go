// Package session owns the client's authentication state: the paired
// (token, user) value and the Store interface for persisting it so a session
// survives a process restart. Stores keep an in-memory copy updated in the
// same step as the durable write, so readers never observe a half-set pair.
package session

import "errors"

// ErrIncompleteSession is returned by Save when exactly one of token and user
// is set. The pair is written and cleared together, never independently.
var ErrIncompleteSession = errors.New("session token and user must be set together")

// User is the authenticated user's profile as returned by the login endpoint.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	Attachment string `json:"attachment,omitempty"`
}

// Session is the client-wide authentication state. Token is present if and
// only if User is present.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Authenticated reports whether the session holds a credential.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Empty reports whether neither half of the pair is set.
func (s Session) Empty() bool {
	return s.Token == "" && s.User == nil
}

// complete rejects half-set pairs before any write.
func (s Session) complete() error {
	if s.Empty() || s.Authenticated() {
		return nil
	}
	return ErrIncompleteSession
}

// Store persists the session. Load restores from durable storage and never
// fails: a missing or corrupt durable entry is an empty session, not an
// error. The restored copy is trusted without re-validating the token against
// the server; a revoked token reports as authenticated until a request fails.
type Store interface {
	// Load re-reads durable storage and returns the restored session.
	Load() Session

	// Save writes token and user together, durably and in memory.
	Save(s Session) error

	// Clear removes both halves, durably and in memory.
	Clear() error

	// Current returns the in-memory session without touching storage.
	Current() Session
}

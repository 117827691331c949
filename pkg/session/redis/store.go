// Package redis provides a Redis-backed session store, for installs where the
// console session should be shared across terminals or hosts. The token and
// user keys are written in a single pipelined step so a reader on another
// connection never observes one half of the pair without the other.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/hldiojin/hmes-dashboard-sub001/pkg/session"
)

const (
	// DefaultKeyPrefix namespaces the session keys in a shared Redis.
	DefaultKeyPrefix = "hmes:session"

	opTimeout = 5 * time.Second
)

// Store implements session.Store on a Redis client. The in-memory copy is
// updated in the same step as the Redis write; Current never touches Redis.
type Store struct {
	mu      sync.RWMutex
	client  goredis.UniversalClient
	prefix  string
	current session.Session
}

// New creates a store on the given client and restores any persisted session.
// The caller owns the client's lifecycle.
func New(client goredis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	s := &Store{client: client, prefix: prefix}
	s.current = s.read()
	return s
}

func (s *Store) tokenKey() string { return s.prefix + ":token" }
func (s *Store) userKey() string  { return s.prefix + ":user" }

// Load re-reads Redis and replaces the in-memory copy.
func (s *Store) Load() session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = s.read()
	return s.current
}

// Save writes token and user together to Redis and to memory.
func (s *Store) Save(sess session.Session) error {
	if !sess.Empty() && !sess.Authenticated() {
		return session.ErrIncompleteSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encoding session user: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.tokenKey(), sess.Token, 0)
	pipe.Set(ctx, s.userKey(), user, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}

	s.current = sess
	return nil
}

// Clear removes both keys and the in-memory copy.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.tokenKey(), s.userKey()).Err(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	s.current = session.Session{}
	return nil
}

// Current returns the in-memory session without a Redis round trip.
func (s *Store) Current() session.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// read restores the pair from Redis. Any failure, including a half-present
// pair, means "no session".
func (s *Store) read() session.Session {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	vals, err := s.client.MGet(ctx, s.tokenKey(), s.userKey()).Result()
	if err != nil || len(vals) != 2 {
		return session.Session{}
	}

	token, ok := vals[0].(string)
	if !ok || token == "" {
		return session.Session{}
	}
	rawUser, ok := vals[1].(string)
	if !ok {
		return session.Session{}
	}

	var user *session.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil || user == nil {
		return session.Session{}
	}
	return session.Session{Token: token, User: user}
}

// Verify interface compliance.
var _ session.Store = (*Store)(nil)

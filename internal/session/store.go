// Package session holds the per-user in-flight request state across
// the multi-step exchange. The store is entirely in-process: empty at
// start, cleared entry-by-entry on consumption, wiped on restart.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/media-fetch-go/internal/domain"
)

// Store is a keyed session store with atomic per-key operations.
// A TTL of zero disables expiry.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*domain.Session
	ttl      time.Duration
}

// NewStore creates an empty store
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[int64]*domain.Session),
		ttl:      ttl,
	}
}

// Put stores the session for its user, unconditionally replacing any
// existing one
func (s *Store) Put(userID int64, sess *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sess
}

// Get returns the live session for a user. Expired sessions are
// dropped and reported as absent.
func (s *Store) Get(userID int64) (*domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return nil, false
	}
	if s.expired(sess) {
		delete(s.sessions, userID)
		return nil, false
	}
	return sess, true
}

// Take returns the live session for a user and removes it in the same
// critical section, so concurrent selections for one user honor at
// most one.
func (s *Store) Take(userID int64) (*domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return nil, false
	}
	delete(s.sessions, userID)
	if s.expired(sess) {
		return nil, false
	}
	return sess, true
}

// Remove deletes the session for a user; removing an absent session is
// a no-op
func (s *Store) Remove(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len returns the number of stored sessions, expired ones included
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops all expired sessions and returns how many were removed
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for userID, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, userID)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps expired sessions at the given interval until the
// context is done. No-op when expiry is disabled.
func (s *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (s *Store) expired(sess *domain.Session) bool {
	return s.ttl > 0 && sess.Age() > s.ttl
}

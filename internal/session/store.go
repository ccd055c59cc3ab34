// Package session owns ledgers between requests. Each browser session maps to
// one uuid-keyed entry holding the current ledger; regenerate and batch
// current updates commit by swapping a whole replacement ledger in, so readers
// never see a half-applied batch.
package session

import (
	"errors"
	"sync"
	"time"

	"cell-dashboard/internal/sim"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

type entry struct {
	ledger    *sim.Ledger
	expiresAt time.Time
}

// Store is an in-memory session store. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	store map[string]*entry
	ttl   time.Duration
	done  chan struct{}
}

// NewStore creates a store whose sessions expire ttl after their last write.
// ttl <= 0 disables expiry.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		store: make(map[string]*entry),
		ttl:   ttl,
		done:  make(chan struct{}),
	}
	if ttl > 0 {
		go s.cleanup()
	}
	return s
}

// Close stops the cleanup goroutine.
func (s *Store) Close() {
	close(s.done)
}

// Create stores a fresh ledger and returns its session id.
func (s *Store) Create(ledger *sim.Ledger) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store[id] = &entry{ledger: ledger, expiresAt: s.deadline()}
	return id
}

// Get returns a deep copy of the session's ledger, so callers can read and
// mutate freely without aliasing store state.
func (s *Store) Get(id string) (*sim.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.store[id]
	if !ok || s.expired(e) {
		return nil, ErrSessionNotFound
	}
	return e.ledger.Clone(), nil
}

// Replace swaps the session's ledger for a new one. This is the commit point:
// the old ledger stays visible until the swap, the new one is complete when it
// lands.
func (s *Store) Replace(id string, ledger *sim.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.store[id]
	if !ok || s.expired(e) {
		return ErrSessionNotFound
	}
	e.ledger = ledger
	e.expiresAt = s.deadline()
	return nil
}

// Delete discards a session. Deleting an unknown id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.store, id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.store {
		if !s.expired(e) {
			n++
		}
	}
	return n
}

func (s *Store) deadline() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(s.ttl)
}

func (s *Store) expired(e *entry) bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// cleanup periodically removes expired sessions.
func (s *Store) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			for id, e := range s.store {
				if s.expired(e) {
					delete(s.store, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

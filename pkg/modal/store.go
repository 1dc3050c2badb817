package modal

import (
	"context"
	"sync"
	"time"

	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

type entry struct {
	modal     *Modal
	expiresAt time.Time
}

// Store keeps one Modal per browser session. Sessions expire after ttl without
// activity; an expired session is treated as unknown.
type Store struct {
	deps        *Deps
	entries     map[string]*entry
	mu          sync.RWMutex
	ttl         time.Duration
	maxSessions int
	now         func() time.Time
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithMaxSessions caps how many sessions the store tracks at once. Zero or
// less means no cap.
func WithMaxSessions(n int) StoreOption {
	return func(s *Store) {
		s.maxSessions = n
	}
}

// NewStore creates a Store whose modals share deps.
func NewStore(deps Deps, ttl time.Duration, opts ...StoreOption) *Store {
	s := &Store{
		deps:    &deps,
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new session and returns its modal. When the store is full
// it drops expired sessions first and fails with ErrTooManySessions if none
// could be freed.
func (s *Store) Create() (*Modal, error) {
	id := uuid.NewString()
	m := newModal(id, s.deps)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.entries) >= s.maxSessions {
		s.sweepLocked(s.now())
		if len(s.entries) >= s.maxSessions {
			return nil, ErrTooManySessions
		}
	}
	s.entries[id] = &entry{modal: m, expiresAt: s.now().Add(s.ttl)}
	return m, nil
}

// Get returns the modal for id and extends its lifetime.
func (s *Store) Get(id string) (*Modal, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[id]
	if !exists {
		return nil, ErrNotFound
	}
	now := s.now()
	if now.After(e.expiresAt) && !e.modal.State().Loading {
		delete(s.entries, id)
		return nil, ErrNotFound
	}
	e.expiresAt = now.Add(s.ttl)
	return e.modal, nil
}

// GetOrCreate returns the modal for id, or a fresh session when id is unknown
// or expired.
func (s *Store) GetOrCreate(id string) (m *Modal, created bool, err error) {
	if m, err := s.Get(id); err == nil {
		return m, false, nil
	}
	m, err = s.Create()
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}

// Len returns the number of tracked sessions, expired ones included until the
// next sweep.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep drops expired sessions that have no send in flight and returns how
// many were removed.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sweepLocked(now)
}

func (s *Store) sweepLocked(now time.Time) int {
	removed := 0
	for id, e := range s.entries {
		if now.After(e.expiresAt) && !e.modal.State().Loading {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps every interval until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 && s.deps.Logger != nil {
				level.Debug(s.deps.Logger).Log("msg", "swept modal sessions", "removed", removed, "sessions", s.Len())
			}
		}
	}
}

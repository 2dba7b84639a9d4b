package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/vibe-weather/internal/domain/chat"
	"github.com/yanqian/vibe-weather/internal/domain/effects"
	"github.com/yanqian/vibe-weather/internal/domain/session"
)

type entry struct {
	state     session.State
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory for single-instance deployments and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get implements session.Store.
func (s *MemoryStore) Get(_ context.Context, id string) (session.State, bool, error) {
	if id == "" {
		return session.State{}, false, nil
	}
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return session.State{}, false, nil
	}
	if s.hasExpired(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return session.State{}, false, nil
	}
	return clone(e.state), true, nil
}

// Save stores state with an optional TTL.
func (s *MemoryStore) Save(_ context.Context, state session.State, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.entries[state.ID] = entry{state: clone(state), expiresAt: exp}
	return nil
}

// Delete drops a session; unknown ids are ignored.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Len counts stored sessions, expired ones included until they are read.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(s.now())
}

// clone detaches the slices so callers cannot write through to stored state.
// The forecast is shared; it is only ever replaced, never edited.
func clone(st session.State) session.State {
	st.Messages = append([]chat.Message(nil), st.Messages...)
	st.Particles = append([]effects.Particle(nil), st.Particles...)
	return st
}

var _ session.Store = (*MemoryStore)(nil)

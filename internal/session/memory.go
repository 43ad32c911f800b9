package session

import (
	"context"
	"sync"
	"time"

	"github.com/carebridge/medchat/internal/dialogue"
)

type memoryEntry struct {
	state     dialogue.State
	expiresAt time.Time
}

// MemoryStore is an in-process Store. Entries expire ttl after their last save.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time

	lastSweep time.Time
}

// NewMemoryStore creates a store; ttl <= 0 keeps entries until deleted.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (dialogue.State, error) {
	if sessionID == "" {
		return dialogue.State{}, ErrSessionIDRequired
	}
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok {
		return dialogue.State{}, nil
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		s.mu.Lock()
		if current, ok := s.entries[sessionID]; ok && current.expiresAt.Equal(entry.expiresAt) {
			delete(s.entries, sessionID)
		}
		s.mu.Unlock()
		return dialogue.State{}, nil
	}
	return entry.state, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, state dialogue.State) error {
	if sessionID == "" {
		return ErrSessionIDRequired
	}
	entry := memoryEntry{state: state}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.entries[sessionID] = entry
	s.sweepLocked()
	s.mu.Unlock()
	return nil
}

// sweepLocked drops expired entries, at most once per ttl. Sessions that are
// never loaded again would otherwise stay resident forever.
func (s *MemoryStore) sweepLocked() {
	if s.ttl <= 0 {
		return
	}
	now := s.now()
	if now.Sub(s.lastSweep) < s.ttl {
		return
	}
	s.lastSweep = now
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrSessionIDRequired
	}
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
	return nil
}

// Len reports how many sessions are held, including expired ones not yet swept.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

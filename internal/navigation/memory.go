package navigation

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore keeps entries in process memory. Suitable for a single replica.
type MemoryStore struct {
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	store map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:   ttl,
		now:   time.Now,
		store: make(map[string]memoryEntry),
	}
}

func entryKey(visitorID, key string) string {
	return visitorID + "\x00" + key
}

func (s *MemoryStore) Save(_ context.Context, visitorID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store[entryKey(visitorID, key)] = memoryEntry{
		value:     append([]byte(nil), value...),
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, visitorID, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.store[entryKey(visitorID, key)]
	s.mu.RUnlock()
	if !ok || !s.now().Before(e.expiresAt) {
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

func (s *MemoryStore) Discard(_ context.Context, visitorID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.store, entryKey(visitorID, k))
	}
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k, e := range s.store {
		if !now.Before(e.expiresAt) {
			delete(s.store, k)
			removed++
		}
	}
	return removed
}

// Run sweeps on every tick until ctx is done.
func (s *MemoryStore) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}

package idempotency

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a single-process fallback for local development.
type MemoryStore struct {
	mu   sync.Mutex
	keys map[string]time.Time
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if expiresAt, ok := s.keys[key]; ok && now.Before(expiresAt) {
		return false, nil
	}
	s.keys[key] = now.Add(ttl)
	return true, nil
}

func (s *MemoryStore) Release(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}

// Cleanup drops expired keys.
func (s *MemoryStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, expiresAt := range s.keys {
		if !now.Before(expiresAt) {
			delete(s.keys, key)
		}
	}
}

// StartCleanup runs Cleanup on interval until ctx is done.
func (s *MemoryStore) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Cleanup()
			}
		}
	}()
}

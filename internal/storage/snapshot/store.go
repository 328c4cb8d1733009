// Package snapshot
package snapshot

import (
	"sync"
	"time"
)

type Store[T any] struct {
	mu        sync.RWMutex
	data      T
	updatedAt time.Time
}

func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.data = v
	s.updatedAt = time.Now()
	s.mu.Unlock()
}

// Get returns the stored value and whether Set was ever called.
func (s *Store[T]) Get() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, !s.updatedAt.IsZero()
}

func (s *Store[T]) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

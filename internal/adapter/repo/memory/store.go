package memory

import (
	"context"
	"sync"

	"runeforge/internal/app/ports"
	"runeforge/internal/domain/event"
)

type Store struct {
	mu     sync.Mutex
	saves  map[string]ports.SaveRecord
	events map[string][]event.Event
}

func NewStore() *Store {
	return &Store{
		saves:  make(map[string]ports.SaveRecord),
		events: make(map[string][]event.Event),
	}
}

type txKey struct{}

// locked runs fn under the store mutex unless ctx already belongs to a
// transaction holding it.
func (s *Store) locked(ctx context.Context, fn func() error) error {
	if ctx.Value(txKey{}) == s {
		return fn()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

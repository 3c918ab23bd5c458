package memory

import (
	"context"

	"runeforge/internal/domain/event"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(ctx context.Context, playerID string, events []event.Event) error {
	return r.store.locked(ctx, func() error {
		r.store.events[playerID] = append(r.store.events[playerID], events...)
		return nil
	})
}

// ListByPlayerID returns up to limit events, newest first.
func (r EventRepo) ListByPlayerID(ctx context.Context, playerID string, limit int) ([]event.Event, error) {
	var out []event.Event
	err := r.store.locked(ctx, func() error {
		all := r.store.events[playerID]
		for i := len(all) - 1; i >= 0; i-- {
			if limit > 0 && len(out) == limit {
				break
			}
			out = append(out, all[i])
		}
		return nil
	})
	return out, err
}

package memory

import (
	"context"

	"runeforge/internal/app/ports"
)

type SaveRepo struct {
	store *Store
}

func NewSaveRepo(store *Store) SaveRepo {
	return SaveRepo{store: store}
}

func (r SaveRepo) Put(ctx context.Context, rec ports.SaveRecord) error {
	rec.Payload = append([]byte(nil), rec.Payload...)
	return r.store.locked(ctx, func() error {
		r.store.saves[rec.PlayerID] = rec
		return nil
	})
}

func (r SaveRepo) Get(ctx context.Context, playerID string) (ports.SaveRecord, error) {
	var rec ports.SaveRecord
	err := r.store.locked(ctx, func() error {
		stored, ok := r.store.saves[playerID]
		if !ok {
			return ports.ErrNotFound
		}
		rec = stored
		rec.Payload = append([]byte(nil), stored.Payload...)
		return nil
	})
	return rec, err
}

func (r SaveRepo) Delete(ctx context.Context, playerID string) error {
	return r.store.locked(ctx, func() error {
		if _, ok := r.store.saves[playerID]; !ok {
			return ports.ErrNotFound
		}
		delete(r.store.saves, playerID)
		return nil
	})
}

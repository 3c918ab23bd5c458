package savegame

import (
	"context"

	"runeforge/internal/app/ports"
	"runeforge/internal/domain/event"
)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubSaveRepo struct {
	byPlayer map[string]ports.SaveRecord
	putErr   error
}

func newStubSaveRepo() *stubSaveRepo {
	return &stubSaveRepo{byPlayer: map[string]ports.SaveRecord{}}
}

func (r *stubSaveRepo) Put(_ context.Context, rec ports.SaveRecord) error {
	if r.putErr != nil {
		return r.putErr
	}
	r.byPlayer[rec.PlayerID] = rec
	return nil
}

func (r *stubSaveRepo) Get(_ context.Context, playerID string) (ports.SaveRecord, error) {
	rec, ok := r.byPlayer[playerID]
	if !ok {
		return ports.SaveRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (r *stubSaveRepo) Delete(_ context.Context, playerID string) error {
	if _, ok := r.byPlayer[playerID]; !ok {
		return ports.ErrNotFound
	}
	delete(r.byPlayer, playerID)
	return nil
}

type stubEventRepo struct {
	events []event.Event
}

func (r *stubEventRepo) Append(_ context.Context, _ string, events []event.Event) error {
	r.events = append(r.events, events...)
	return nil
}

func (r *stubEventRepo) ListByPlayerID(_ context.Context, _ string, limit int) ([]event.Event, error) {
	if limit <= 0 || limit > len(r.events) {
		return r.events, nil
	}
	return r.events[len(r.events)-limit:], nil
}

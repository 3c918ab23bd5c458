package savegame

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"runeforge/internal/app/ports"
	"runeforge/internal/app/session"
	"runeforge/internal/domain/event"
	"runeforge/internal/domain/player"
)

type UseCase struct {
	TxManager ports.TxManager
	Saves     ports.SaveRepository
	Events    ports.EventRepository
	Now       func() time.Time
}

type LoadResult struct {
	Restored bool      `json:"restored"`
	SavedAt  time.Time `json:"saved_at,omitempty"`
	Reason   string    `json:"reason,omitempty"`
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

// Persist writes the snapshot and appends events in one transaction.
func (u UseCase) Persist(ctx context.Context, playerID string, snap player.Snapshot, events []event.Event) error {
	payload, err := player.Encode(snap)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	rec := ports.SaveRecord{
		PlayerID:      playerID,
		Payload:       payload,
		SchemaVersion: player.SchemaVersion,
		SavedAt:       u.now(),
	}
	return u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := u.Saves.Put(txCtx, rec); err != nil {
			return err
		}
		if len(events) == 0 || u.Events == nil {
			return nil
		}
		return u.Events.Append(txCtx, playerID, events)
	})
}

// Record appends events to the journal without touching the save.
func (u UseCase) Record(ctx context.Context, playerID string, events []event.Event) error {
	if u.Events == nil || len(events) == 0 {
		return nil
	}
	return u.Events.Append(ctx, playerID, events)
}

// Save persists the current player without any events.
func (u UseCase) Save(ctx context.Context, st *session.State) error {
	return u.Persist(ctx, st.PlayerID, st.Player.Snapshot(), nil)
}

// Load replaces the session player with the stored one. A missing or
// unreadable save leaves the current player untouched and is not an error.
func (u UseCase) Load(ctx context.Context, st *session.State) (LoadResult, error) {
	rec, err := u.Saves.Get(ctx, st.PlayerID)
	if errors.Is(err, ports.ErrNotFound) {
		return LoadResult{Reason: "no save"}, nil
	}
	if errors.Is(err, ports.ErrCorruptRecord) {
		log.Printf("savegame: player=%s %v, keeping current state", st.PlayerID, err)
		return LoadResult{Reason: "corrupt save"}, nil
	}
	if err != nil {
		return LoadResult{}, err
	}
	if rec.SchemaVersion != player.SchemaVersion {
		log.Printf("savegame: player=%s schema version %d not supported, keeping current state", st.PlayerID, rec.SchemaVersion)
		return LoadResult{Reason: "unsupported schema version"}, nil
	}
	snap, err := player.Decode(rec.Payload)
	if err != nil {
		log.Printf("savegame: player=%s %v, keeping current state", st.PlayerID, err)
		return LoadResult{Reason: "corrupt save"}, nil
	}
	p, err := player.Restore(st.Catalog, snap)
	if err != nil {
		log.Printf("savegame: player=%s %v, keeping current state", st.PlayerID, err)
		return LoadResult{Reason: "corrupt save"}, nil
	}
	st.Player = p
	return LoadResult{Restored: true, SavedAt: rec.SavedAt}, nil
}

// Reset deletes the save and starts a fresh character in a fresh world.
func (u UseCase) Reset(ctx context.Context, st *session.State) error {
	if err := u.Saves.Delete(ctx, st.PlayerID); err != nil && !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	p := player.New(st.Catalog)
	p.RespawnAtHub(st.World.Ground())
	p.Events()
	st.Player = p
	st.World.Reset()
	st.World.Events()
	return nil
}

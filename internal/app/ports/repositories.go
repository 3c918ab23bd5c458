package ports

import (
	"context"
	"time"

	"runeforge/internal/domain/event"
)

// SaveRecord is one player's opaque snapshot as stored by a backend.
type SaveRecord struct {
	PlayerID      string
	Payload       []byte
	SchemaVersion int
	SavedAt       time.Time
}

type SaveRepository interface {
	Put(ctx context.Context, rec SaveRecord) error
	// Get returns ErrNotFound when the player has never saved.
	Get(ctx context.Context, playerID string) (SaveRecord, error)
	Delete(ctx context.Context, playerID string) error
}

type EventRepository interface {
	Append(ctx context.Context, playerID string, events []event.Event) error
	ListByPlayerID(ctx context.Context, playerID string, limit int) ([]event.Event, error)
}

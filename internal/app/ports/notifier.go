package ports

import (
	"context"

	"runeforge/internal/domain/event"
)

// Notifier delivers events to UI observers. Implementations must not block
// the caller on slow consumers.
type Notifier interface {
	Notify(ctx context.Context, events []event.Event)
}

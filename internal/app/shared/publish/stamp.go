package publish

import (
	"time"

	"github.com/google/uuid"

	"runeforge/internal/domain/event"
)

// Stamp assigns ids and the occurrence time to events raised by one
// mutation. Events that already carry an id keep it.
func Stamp(events []event.Event, now time.Time) []event.Event {
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.OccurredAt.IsZero() {
			e.OccurredAt = now
		}
		out = append(out, e)
	}
	return out
}

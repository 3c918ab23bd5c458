// Package notify delivers game events to observers.
package notify

import (
	"context"
	"log"

	"runeforge/internal/app/ports"
	"runeforge/internal/domain/event"
)

// LogSink writes every event as one log line.
type LogSink struct {
	logger *log.Logger
}

func NewLogSink(logger *log.Logger) LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return LogSink{logger: logger}
}

func (s LogSink) Notify(_ context.Context, events []event.Event) {
	for _, e := range events {
		if e.Message == "" {
			s.logger.Printf("event %s %v", e.Kind, e.Payload)
			continue
		}
		s.logger.Printf("event %s %q", e.Kind, e.Message)
	}
}

// Fanout forwards each batch to every sink in order.
type Fanout []ports.Notifier

func (f Fanout) Notify(ctx context.Context, events []event.Event) {
	for _, n := range f {
		if n != nil {
			n.Notify(ctx, events)
		}
	}
}

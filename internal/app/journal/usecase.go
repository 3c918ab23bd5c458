package journal

import (
	"context"
	"errors"
	"strings"

	"runeforge/internal/app/ports"
	"runeforge/internal/domain/event"
)

var ErrInvalidRequest = errors.New("invalid journal request")

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type Request struct {
	PlayerID     string
	Limit        int
	Kinds        []event.Kind
	OccurredFrom int64
	OccurredTo   int64
}

type Response struct {
	Events []event.Event `json:"events"`
}

type UseCase struct {
	Events ports.EventRepository
}

// Execute returns the most recent notifications for a player, newest first.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.PlayerID) == "" {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	events, err := u.Events.ListByPlayerID(ctx, req.PlayerID, limit)
	if err != nil {
		return Response{}, err
	}
	events = filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)
	events = filterByKind(events, req.Kinds)
	if events == nil {
		events = []event.Event{}
	}
	return Response{Events: events}, nil
}

func filterByTimeWindow(events []event.Event, from, to int64) []event.Event {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]event.Event, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}

func filterByKind(events []event.Event, kinds []event.Kind) []event.Event {
	if len(kinds) == 0 {
		return events
	}
	want := make(map[event.Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	out := make([]event.Event, 0, len(events))
	for _, evt := range events {
		if want[evt.Kind] {
			out = append(out, evt)
		}
	}
	return out
}

// ParseKinds splits a comma separated kind filter, ignoring blanks.
func ParseKinds(raw string) []event.Kind {
	var out []event.Kind
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, event.Kind(part))
		}
	}
	return out
}

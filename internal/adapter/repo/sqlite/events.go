package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"runeforge/internal/domain/event"
)

func (s *Store) Append(ctx context.Context, playerID string, events []event.Event) error {
	if len(events) == 0 {
		return nil
	}
	return s.RunInTx(ctx, func(ctx context.Context) error {
		for _, e := range events {
			var payload sql.NullString
			if len(e.Payload) > 0 {
				b, err := json.Marshal(e.Payload)
				if err != nil {
					return err
				}
				payload = sql.NullString{String: string(b), Valid: true}
			}
			_, err := s.conn(ctx).ExecContext(ctx,
				`INSERT INTO player_events (event_id, player_id, kind, message, occurred_at, payload)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				e.ID, playerID, string(e.Kind), e.Message, toMillis(e.OccurredAt), payload,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByPlayerID returns up to limit events, newest first.
func (s *Store) ListByPlayerID(ctx context.Context, playerID string, limit int) ([]event.Event, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.conn(ctx).QueryContext(ctx,
		`SELECT event_id, kind, message, occurred_at, payload FROM player_events
		 WHERE player_id = ? ORDER BY occurred_at DESC, id DESC LIMIT ?`, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []event.Event
	for rows.Next() {
		var (
			e          event.Event
			kind       string
			occurredAt int64
			payload    sql.NullString
		)
		if err := rows.Scan(&e.ID, &kind, &e.Message, &occurredAt, &payload); err != nil {
			return nil, err
		}
		e.Kind = event.Kind(kind)
		e.OccurredAt = fromMillis(occurredAt)
		if payload.Valid {
			_ = json.Unmarshal([]byte(payload.String), &e.Payload)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

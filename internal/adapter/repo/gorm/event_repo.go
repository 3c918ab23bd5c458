package gormrepo

import (
	"context"
	"encoding/json"

	"runeforge/internal/adapter/repo/gorm/model"
	"runeforge/internal/domain/event"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, playerID string, events []event.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.PlayerEvent, 0, len(events))
	for _, e := range events {
		b, _ := json.Marshal(e.Payload)
		rows = append(rows, model.PlayerEvent{
			EventID:    e.ID,
			PlayerID:   playerID,
			Kind:       string(e.Kind),
			Message:    e.Message,
			OccurredAt: e.OccurredAt,
			Payload:    b,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

// ListByPlayerID returns up to limit events, newest first. Events stamped in
// the same instant keep their insertion order reversed.
func (r EventRepo) ListByPlayerID(ctx context.Context, playerID string, limit int) ([]event.Event, error) {
	rows := []model.PlayerEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.PlayerEvent{PlayerID: playerID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "occurred_at"}, Desc: true},
				{Column: clause.Column{Name: "id"}, Desc: true},
			},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			_ = json.Unmarshal(row.Payload, &payload)
		}
		out = append(out, event.Event{
			ID:         row.EventID,
			Kind:       event.Kind(row.Kind),
			Message:    row.Message,
			OccurredAt: row.OccurredAt,
			Payload:    payload,
		})
	}
	return out, nil
}

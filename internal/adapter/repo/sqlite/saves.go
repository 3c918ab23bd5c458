package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"

	"runeforge/internal/app/ports"
)

func (s *Store) Put(ctx context.Context, rec ports.SaveRecord) error {
	_, err := s.conn(ctx).ExecContext(ctx,
		`INSERT INTO player_saves (player_id, schema_version, payload, saved_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(player_id) DO UPDATE SET
		   schema_version = excluded.schema_version,
		   payload = excluded.payload,
		   saved_at = excluded.saved_at`,
		rec.PlayerID, rec.SchemaVersion, rec.Payload, toMillis(rec.SavedAt),
	)
	return err
}

// Get scans loosely typed columns so a row holding the wrong value types
// surfaces as ports.ErrCorruptRecord instead of a scan error.
func (s *Store) Get(ctx context.Context, playerID string) (ports.SaveRecord, error) {
	var version, payload, savedAt any
	err := s.conn(ctx).QueryRowContext(ctx,
		`SELECT schema_version, payload, saved_at FROM player_saves WHERE player_id = ?`, playerID,
	).Scan(&version, &payload, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.SaveRecord{}, ports.ErrNotFound
	}
	if err != nil {
		return ports.SaveRecord{}, err
	}

	v, ok := asInt64(version)
	if !ok {
		return ports.SaveRecord{}, fmt.Errorf("%w: save %s: schema_version %v", ports.ErrCorruptRecord, playerID, version)
	}
	at, ok := asInt64(savedAt)
	if !ok {
		return ports.SaveRecord{}, fmt.Errorf("%w: save %s: saved_at %v", ports.ErrCorruptRecord, playerID, savedAt)
	}
	rec := ports.SaveRecord{PlayerID: playerID, SchemaVersion: int(v), SavedAt: fromMillis(at)}
	switch p := payload.(type) {
	case []byte:
		rec.Payload = append([]byte(nil), p...)
	case string:
		rec.Payload = []byte(p)
	default:
		return ports.SaveRecord{}, fmt.Errorf("%w: save %s: payload of type %T", ports.ErrCorruptRecord, playerID, payload)
	}
	return rec, nil
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case string:
		out, err := strconv.ParseInt(n, 10, 64)
		return out, err == nil
	case []byte:
		out, err := strconv.ParseInt(string(n), 10, 64)
		return out, err == nil
	default:
		return 0, false
	}
}

func (s *Store) Delete(ctx context.Context, playerID string) error {
	res, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM player_saves WHERE player_id = ?`, playerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ports.ErrNotFound
	}
	return nil
}

package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"runeforge/internal/app/ports"
	"runeforge/internal/domain/event"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_SaveUpsertAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, "p1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	saved := time.UnixMilli(1_700_000_000_123).UTC()
	for _, payload := range []string{`{"v":1}`, `{"v":2}`} {
		if err := s.Put(ctx, ports.SaveRecord{PlayerID: "p1", Payload: []byte(payload), SchemaVersion: 1, SavedAt: saved}); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	got, err := s.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got.Payload) != `{"v":2}` || got.SchemaVersion != 1 || !got.SavedAt.Equal(saved) {
		t.Fatalf("unexpected record: %+v", got)
	}
	if err := s.Delete(ctx, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "p1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestStore_GetReportsMistypedColumnsAsCorrupt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rows := map[string][3]any{
		"bad-version": {"x", []byte(`{}`), int64(1)},
		"bad-time":    {int64(1), []byte(`{}`), "yesterday"},
		"bad-payload": {int64(1), int64(42), int64(1)},
	}
	for id, r := range rows {
		if _, err := s.sqlDB.ExecContext(ctx,
			`INSERT INTO player_saves (player_id, schema_version, payload, saved_at) VALUES (?, ?, ?, ?)`,
			id, r[0], r[1], r[2]); err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}
	for id := range rows {
		if _, err := s.Get(ctx, id); !errors.Is(err, ports.ErrCorruptRecord) {
			t.Fatalf("%s: expected ErrCorruptRecord, got %v", id, err)
		}
	}
}

func TestStore_RunInTxRollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.Put(ctx, ports.SaveRecord{PlayerID: "p1", Payload: []byte(`{}`), SchemaVersion: 1}); err != nil {
			return err
		}
		if err := s.Append(ctx, "p1", []event.Event{event.Toast("lost")}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := s.Get(ctx, "p1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("save survived rollback: %v", err)
	}
	events, err := s.ListByPlayerID(ctx, "p1", 10)
	if err != nil || len(events) != 0 {
		t.Fatalf("events survived rollback: %v %+v", err, events)
	}
}

func TestStore_ListNewestFirstWithPayload(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Unix(1000, 0)
	err := s.Append(ctx, "p1", []event.Event{
		{ID: "a", Kind: event.KindLevelUp, Message: "Level up!", OccurredAt: base, Payload: map[string]any{"level": 2}},
		{ID: "b", Kind: event.KindToast, Message: "hi", OccurredAt: base.Add(time.Second)},
		{ID: "c", Kind: event.KindToast, Message: "later", OccurredAt: base.Add(2 * time.Second)},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := s.ListByPlayerID(ctx, "p1", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "b" {
		t.Fatalf("unexpected order: %+v", got)
	}
	all, _ := s.ListByPlayerID(ctx, "p1", 0)
	if len(all) != 3 || all[2].Payload["level"] != float64(2) || all[2].Kind != event.KindLevelUp {
		t.Fatalf("payload not restored: %+v", all)
	}
}

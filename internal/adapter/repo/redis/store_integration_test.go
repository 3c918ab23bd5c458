package redisrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"

	"runeforge/internal/app/ports"
	"runeforge/internal/domain/event"
)

func requireRedis(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("RUNEFORGE_REDIS_ADDR")
	if addr == "" {
		t.Skip("RUNEFORGE_REDIS_ADDR is required for integration test")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("ping redis: %v", err)
	}
	s := New(client, "runeforge-it-"+t.Name())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_SaveRoundTrip(t *testing.T) {
	s := requireRedis(t)
	ctx := context.Background()
	_ = s.Delete(ctx, "p1")

	if _, err := s.Get(ctx, "p1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	saved := time.UnixMilli(1_700_000_000_500).UTC()
	if err := s.Put(ctx, ports.SaveRecord{PlayerID: "p1", Payload: []byte(`{"v":1}`), SchemaVersion: 1, SavedAt: saved}); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got.Payload) != `{"v":1}` || got.SchemaVersion != 1 || !got.SavedAt.Equal(saved) {
		t.Fatalf("unexpected record: %+v", got)
	}
	if err := s.Delete(ctx, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestStore_GetReportsMistypedFieldsAsCorrupt(t *testing.T) {
	s := requireRedis(t)
	ctx := context.Background()
	t.Cleanup(func() { _ = s.Delete(ctx, "p1") })

	if err := s.client.HSet(ctx, s.saveKey("p1"), "payload", "{}", "schema_version", "x", "saved_at", "1").Err(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := s.Get(ctx, "p1"); !errors.Is(err, ports.ErrCorruptRecord) {
		t.Fatalf("expected ErrCorruptRecord, got %v", err)
	}
}

func TestStore_TxQueuesSaveAndEvents(t *testing.T) {
	s := requireRedis(t)
	ctx := context.Background()
	_ = s.Delete(ctx, "p2")
	_ = s.client.Del(ctx, s.eventsKey("p2")).Err()
	s.eventCap = 2

	err := s.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.Put(ctx, ports.SaveRecord{PlayerID: "p2", Payload: []byte(`{}`), SchemaVersion: 1}); err != nil {
			return err
		}
		return s.Append(ctx, "p2", []event.Event{event.Toast("a"), event.Toast("b"), event.Toast("c")})
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	got, err := s.ListByPlayerID(ctx, "p2", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Message != "c" || got[1].Message != "b" {
		t.Fatalf("expected newest two events, got %+v", got)
	}
	if _, err := s.Get(ctx, "p2"); err != nil {
		t.Fatalf("save not committed: %v", err)
	}
}

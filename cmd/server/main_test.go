package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"runeforge/internal/app/ports"
	"runeforge/internal/config"
)

func TestLoadCatalog_DefaultsWhenPathEmpty(t *testing.T) {
	cat, err := loadCatalog("")
	if err != nil {
		t.Fatalf("loadCatalog: %v", err)
	}
	if _, err := cat.Recipe("split-log"); err != nil {
		t.Fatalf("default catalog missing split-log: %v", err)
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	if _, err := loadCatalog(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing catalog file")
	}
}

func TestOpenBackend_LocalStores(t *testing.T) {
	for _, name := range []string{config.BackendMemory, config.BackendSQLite} {
		t.Run(name, func(t *testing.T) {
			cfg := config.Config{SaveBackend: name, SQLitePath: filepath.Join(t.TempDir(), "saves.db")}
			b, err := openBackend(context.Background(), cfg)
			if err != nil {
				t.Fatalf("openBackend: %v", err)
			}
			defer b.close()

			ctx := context.Background()
			rec := ports.SaveRecord{PlayerID: "p1", Payload: []byte(`{}`), SchemaVersion: 1, SavedAt: time.Now()}
			err = b.tx.RunInTx(ctx, func(txCtx context.Context) error {
				return b.saves.Put(txCtx, rec)
			})
			if err != nil {
				t.Fatalf("put: %v", err)
			}
			got, err := b.saves.Get(ctx, "p1")
			if err != nil || string(got.Payload) != `{}` {
				t.Fatalf("get mismatch: rec=%+v err=%v", got, err)
			}
		})
	}
}

func TestOpenBackend_Unknown(t *testing.T) {
	if _, err := openBackend(context.Background(), config.Config{SaveBackend: "tape"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

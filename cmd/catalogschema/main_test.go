package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteSchema_DescribesCatalogFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schema", "catalog.schema.json")
	if err := writeSchema(out, buildSchema()); err != nil {
		t.Fatalf("writeSchema: %v", err)
	}
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("schema is not json: %v", err)
	}
	if doc["title"] != "Runeforge Catalog" {
		t.Fatalf("title mismatch: got=%v", doc["title"])
	}
	for _, field := range []string{`"recipes"`, `"creatures"`, `"npcs"`} {
		if !strings.Contains(string(raw), field) {
			t.Fatalf("schema missing %s", field)
		}
	}
	if _, err := os.Stat(out + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

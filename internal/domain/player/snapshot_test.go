package player

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"runeforge/internal/domain/catalog"
	"runeforge/internal/domain/progression"
)

func TestSnapshot_RestoreReproducesState(t *testing.T) {
	p := newTestPlayer(t)
	cat := p.Catalog()
	_ = p.AddItem("log", 4)
	_ = p.Equip(2)
	_ = p.AwardXP("mining", 120)
	p.OfferQuest(mustQuest(t, cat, "first-steps"))
	p.ReportProgress(catalog.GoalGather, "log", 2)

	raw, err := Encode(p.Snapshot())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	snap, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	restored, err := Restore(cat, snap)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if diff := cmp.Diff(p.Snapshot(), restored.Snapshot()); diff != "" {
		t.Fatalf("restored state mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_GarbageIsCorrupt(t *testing.T) {
	if _, err := Decode([]byte("{not json")); !errors.Is(err, ErrCorruptSave) {
		t.Fatalf("expected ErrCorruptSave, got %v", err)
	}
}

func TestRestore_RejectsForeignSchemaAndBadShape(t *testing.T) {
	cat := catalog.Default()
	good := New(cat).Snapshot()

	wrongVersion := good
	wrongVersion.SchemaVersion = 7
	if _, err := Restore(cat, wrongVersion); !errors.Is(err, ErrCorruptSave) {
		t.Fatalf("expected ErrCorruptSave for schema mismatch, got %v", err)
	}

	zeroQty := good
	zeroQty.Inventory = []Entry{{Item: "log", Qty: 0}}
	if _, err := Restore(cat, zeroQty); !errors.Is(err, ErrCorruptSave) {
		t.Fatalf("expected ErrCorruptSave for empty stack, got %v", err)
	}

	quest := newQuest(mustQuest(t, cat, "first-steps"))
	noGoals := quest
	noGoals.Goals = nil
	zeroGoal := newQuest(mustQuest(t, cat, "first-steps"))
	zeroGoal.Goals[0].Qty = 0

	cases := []struct {
		name      string
		active    []Quest
		completed []Quest
	}{
		{"active quest without goals", []Quest{noGoals}, nil},
		{"goal with zero quantity", []Quest{zeroGoal}, nil},
		{"active twice", []Quest{quest, quest}, nil},
		{"active and completed", []Quest{quest}, []Quest{quest}},
		{"completed twice", nil, []Quest{quest, quest}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := good
			snap.ActiveQuests = tc.active
			snap.CompletedQuests = tc.completed
			if _, err := Restore(cat, snap); !errors.Is(err, ErrCorruptSave) {
				t.Fatalf("expected ErrCorruptSave, got %v", err)
			}
		})
	}
}

func TestRestore_DropsForeignSkills(t *testing.T) {
	cat := catalog.Default()
	snap := New(cat).Snapshot()
	snap.Skills["cooking"] = progression.SkillState{Level: 3}

	p, err := Restore(cat, snap)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if p.Skills().Has("cooking") {
		t.Fatalf("foreign skill survived restore")
	}
	if err := p.AwardXP("cooking", 5); !errors.Is(err, progression.ErrUnknownSkill) {
		t.Fatalf("expected ErrUnknownSkill, got %v", err)
	}
}

func TestRestore_ReappliesStackingRule(t *testing.T) {
	cat := catalog.Default()
	snap := New(cat).Snapshot()
	snap.Inventory = []Entry{
		{Item: "log", Qty: 2},
		{Item: "bronze-sword", Qty: 3},
		{Item: "log", Qty: 1},
	}

	p, err := Restore(cat, snap)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	want := []Entry{
		{Item: "log", Qty: 3},
		{Item: "bronze-sword", Qty: 1},
		{Item: "bronze-sword", Qty: 1},
		{Item: "bronze-sword", Qty: 1},
	}
	if diff := cmp.Diff(want, p.Inventory()); diff != "" {
		t.Fatalf("inventory mismatch (-want +got):\n%s", diff)
	}

	_ = p.AddItem("log", 1)
	logs := 0
	for _, e := range p.Inventory() {
		if e.Item == "log" {
			logs++
		}
	}
	if logs != 1 {
		t.Fatalf("log entries mismatch: got=%d want=1", logs)
	}
}

func TestRestore_NormalizesSkillOverflow(t *testing.T) {
	cat := catalog.Default()
	snap := New(cat).Snapshot()
	snap.Skills = progression.Skills{"combat": {Level: 1, XP: 500}}

	p, err := Restore(cat, snap)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	st := p.Skills()["combat"]
	if st.XP >= progression.XPToNext(st.Level) {
		t.Fatalf("overflow survived restore: %+v", st)
	}
	if !p.Skills().Has("woodcutting") {
		t.Fatalf("missing skills should be seeded from the catalog")
	}
}

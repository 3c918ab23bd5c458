package player

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"runeforge/internal/domain/catalog"
	"runeforge/internal/domain/event"
	"runeforge/internal/domain/geo"
)

func newTestPlayer(t *testing.T) *Player {
	t.Helper()
	return New(catalog.Default())
}

func TestNew_StarterKit(t *testing.T) {
	p := newTestPlayer(t)
	want := []Entry{
		{Item: "bronze-axe", Qty: 1},
		{Item: "bronze-pick", Qty: 1},
		{Item: "bronze-sword", Qty: 1},
		{Item: "bread", Qty: 1},
	}
	if diff := cmp.Diff(want, p.Inventory()); diff != "" {
		t.Fatalf("starter inventory mismatch (-want +got):\n%s", diff)
	}
	if v := p.Vitals(); v.HP != 30 || v.MaxHP != 30 || v.Stamina != 100 {
		t.Fatalf("unexpected starter vitals: %+v", v)
	}
	if len(p.Events()) != 0 {
		t.Fatalf("starter kit must not leak notifications")
	}
}

func TestAddItem_StackableCollapsesIntoOneStack(t *testing.T) {
	p := newTestPlayer(t)
	if err := p.AddItem("log", 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := p.AddItem("log", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	stacks := 0
	for _, e := range p.Inventory() {
		if e.Item == "log" {
			stacks++
			if e.Qty != 5 {
				t.Fatalf("log qty mismatch: got=%d want=5", e.Qty)
			}
		}
	}
	if stacks != 1 {
		t.Fatalf("expected exactly one log stack, got %d", stacks)
	}
}

func TestAddItem_NonStackableIsOneEntryPerUnit(t *testing.T) {
	p := newTestPlayer(t)
	if err := p.AddItem("bread", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	breads := 0
	for _, e := range p.Inventory() {
		if e.Item == "bread" {
			breads++
			if e.Qty != 1 {
				t.Fatalf("non-stackable entry with qty %d", e.Qty)
			}
		}
	}
	if breads != 3 {
		t.Fatalf("bread entries mismatch: got=%d want=3", breads)
	}
}

func TestAddItem_UnknownItemIsDegraded(t *testing.T) {
	p := newTestPlayer(t)
	err := p.AddItem("mystery-gem", 2)
	if !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
	if got := p.Count("mystery-gem"); got != 2 {
		t.Fatalf("unknown item should still be added: got=%d want=2", got)
	}
	_ = p.AddItem("mystery-gem", 1)
	if got := p.Count("mystery-gem"); got != 3 || len(p.Inventory()) != 5 {
		t.Fatalf("unknown item should stack: count=%d entries=%d", got, len(p.Inventory()))
	}
}

func TestRemoveItem_InsufficientLeavesInventoryUnchanged(t *testing.T) {
	p := newTestPlayer(t)
	_ = p.AddItem("log", 3)
	before := p.Inventory()

	err := p.RemoveItem("log", 5)
	if !errors.Is(err, ErrInsufficientQuantity) {
		t.Fatalf("expected ErrInsufficientQuantity, got %v", err)
	}
	var qe *QuantityError
	if !errors.As(err, &qe) || qe.Have != 3 || qe.Want != 5 {
		t.Fatalf("unexpected quantity error: %+v", qe)
	}
	if diff := cmp.Diff(before, p.Inventory()); diff != "" {
		t.Fatalf("inventory changed on failed remove (-before +after):\n%s", diff)
	}
}

func TestRemoveItem_ConsumesNewestFirst(t *testing.T) {
	p := newTestPlayer(t)
	_ = p.AddItem("bread", 1)
	_ = p.AddItem("log", 1)
	// inventory: axe, pick, sword, bread, bread, log
	if err := p.RemoveItem("bread", 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	want := []Entry{
		{Item: "bronze-axe", Qty: 1},
		{Item: "bronze-pick", Qty: 1},
		{Item: "bronze-sword", Qty: 1},
		{Item: "bread", Qty: 1},
		{Item: "log", Qty: 1},
	}
	if diff := cmp.Diff(want, p.Inventory()); diff != "" {
		t.Fatalf("inventory mismatch (-want +got):\n%s", diff)
	}
}

func TestDropItem_AllAndPartial(t *testing.T) {
	p := newTestPlayer(t)
	_ = p.AddItem("ore", 4)
	n, err := p.DropItem("ore", 1)
	if err != nil || n != 1 || p.Count("ore") != 3 {
		t.Fatalf("drop one: n=%d err=%v left=%d", n, err, p.Count("ore"))
	}
	n, err = p.DropItem("ore", 0)
	if err != nil || n != 3 || p.Count("ore") != 0 {
		t.Fatalf("drop all: n=%d err=%v left=%d", n, err, p.Count("ore"))
	}
	if _, err := p.DropItem("ore", 1); !errors.Is(err, ErrInsufficientQuantity) {
		t.Fatalf("expected ErrInsufficientQuantity, got %v", err)
	}
}

func TestEquip_WeaponConsumesUnitAndSetsPower(t *testing.T) {
	p := newTestPlayer(t)
	if err := p.Equip(2); err != nil {
		t.Fatalf("equip sword: %v", err)
	}
	if p.Count("bronze-sword") != 0 {
		t.Fatalf("equipping must consume the inventory unit")
	}
	eq := p.Equipment()
	if eq.Weapon == nil || eq.Weapon.Item != "bronze-sword" || eq.Weapon.Power != 2 {
		t.Fatalf("unexpected weapon slot: %+v", eq.Weapon)
	}
	if got := p.WeaponPower(); got != 2 {
		t.Fatalf("weapon power mismatch: got=%d want=2", got)
	}
}

// Replacing an equipped weapon discards the previous one instead of
// returning it to the inventory.
func TestEquip_ReplacingWeaponDiscardsPrevious(t *testing.T) {
	p := newTestPlayer(t)
	if err := p.AwardXP("combat", 10_000); err != nil {
		t.Fatalf("award: %v", err)
	}
	if err := p.Equip(2); err != nil {
		t.Fatalf("equip bronze: %v", err)
	}
	_ = p.AddItem("iron-sword", 1)
	idx := len(p.Inventory()) - 1
	if err := p.Equip(idx); err != nil {
		t.Fatalf("equip iron: %v", err)
	}
	if got := p.Equipment().Weapon.Item; got != "iron-sword" {
		t.Fatalf("weapon mismatch: got=%s want=iron-sword", got)
	}
	if got := p.Count("bronze-sword"); got != 0 {
		t.Fatalf("previous weapon came back to inventory: count=%d", got)
	}
}

func TestEquip_RequirementNotMet(t *testing.T) {
	p := newTestPlayer(t)
	_ = p.AddItem("iron-helm", 1)
	idx := len(p.Inventory()) - 1
	before := p.Inventory()

	err := p.Equip(idx)
	var re *RequirementError
	if !errors.As(err, &re) || !errors.Is(err, ErrRequirementNotMet) {
		t.Fatalf("expected RequirementError, got %v", err)
	}
	if re.Skill != "combat" || re.Required != 8 || re.Current != 1 {
		t.Fatalf("unexpected requirement error: %+v", re)
	}
	if diff := cmp.Diff(before, p.Inventory()); diff != "" {
		t.Fatalf("inventory changed on rejected equip:\n%s", diff)
	}
	if p.Equipment().Head != nil {
		t.Fatalf("head slot must stay empty")
	}
}

func TestEquip_ArmorFillsHeadSlot(t *testing.T) {
	p := newTestPlayer(t)
	_ = p.AwardXP("combat", 200)
	_ = p.AddItem("leather-cap", 1)
	if err := p.Equip(len(p.Inventory()) - 1); err != nil {
		t.Fatalf("equip cap: %v", err)
	}
	if got := p.HeadArmor(); got != 1 {
		t.Fatalf("head armor mismatch: got=%d want=1", got)
	}
}

func TestEquip_ToolMovesToHotbarFront(t *testing.T) {
	p := newTestPlayer(t)
	_ = p.SelectHotbar(3)
	if err := p.Equip(1); err != nil {
		t.Fatalf("equip pick: %v", err)
	}
	inv := p.Inventory()
	if inv[0].Item != "bronze-pick" || inv[1].Item != "bronze-axe" {
		t.Fatalf("tool not moved to front: %+v", inv)
	}
	if p.Hotbar() != 0 {
		t.Fatalf("hotbar index not reset: got=%d", p.Hotbar())
	}
	kind, power, ok := p.HarvestTool()
	if !ok || kind != catalog.ToolPickaxe || power != 1 {
		t.Fatalf("harvest tool mismatch: kind=%s power=%d ok=%v", kind, power, ok)
	}
}

func TestEquip_MaterialAndBadIndex(t *testing.T) {
	p := newTestPlayer(t)
	_ = p.AddItem("log", 1)
	if err := p.Equip(len(p.Inventory()) - 1); !errors.Is(err, ErrNotEquippable) {
		t.Fatalf("expected ErrNotEquippable, got %v", err)
	}
	if err := p.Equip(42); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
}

func TestConsumeFood_HealsCappedAndConsumesOne(t *testing.T) {
	p := newTestPlayer(t)
	_ = p.AddItem("bread", 1)
	p.TakeDamage(5, "Slime")

	healed, err := p.ConsumeFood(3)
	if err != nil {
		t.Fatalf("eat: %v", err)
	}
	if healed != 5 || p.Vitals().HP != 30 {
		t.Fatalf("heal not capped: healed=%d hp=%d", healed, p.Vitals().HP)
	}
	if got := p.Count("bread"); got != 1 {
		t.Fatalf("bread count mismatch: got=%d want=1", got)
	}
	if _, err := p.ConsumeFood(0); !errors.Is(err, ErrNotFood) {
		t.Fatalf("expected ErrNotFood for a hatchet, got %v", err)
	}
}

func TestWeaponPower_FallsBackToHotbarThenFists(t *testing.T) {
	p := newTestPlayer(t)
	_ = p.SelectHotbar(2)
	if got := p.WeaponPower(); got != 2 {
		t.Fatalf("hotbar sword power mismatch: got=%d want=2", got)
	}
	_ = p.SelectHotbar(3)
	if got := p.WeaponPower(); got != 1 {
		t.Fatalf("bread should hit like fists: got=%d want=1", got)
	}
	_ = p.SelectHotbar(4)
	if got := p.WeaponPower(); got != 1 {
		t.Fatalf("empty slot should hit like fists: got=%d want=1", got)
	}
	if err := p.SelectHotbar(5); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
}

func TestAwardXP_EmitsLevelUpPerLevel(t *testing.T) {
	p := newTestPlayer(t)
	if err := p.AwardXP("combat", 999); err != nil {
		t.Fatalf("award: %v", err)
	}
	ups := 0
	for _, e := range p.Events() {
		if e.Kind == event.KindLevelUp {
			ups++
		}
	}
	if want := p.SkillLevel("combat") - 1; ups != want {
		t.Fatalf("level_up events mismatch: got=%d want=%d", ups, want)
	}
}

func TestRespawnAtHub(t *testing.T) {
	p := newTestPlayer(t)
	p.MoveTo(geo.Vec3{X: 50, Z: -20})
	if down := p.TakeDamage(40, "Slime"); !down {
		t.Fatalf("expected player to be down")
	}
	p.RespawnAtHub(func(x, z float64) float64 { return 3 })
	if v := p.Vitals(); v.HP != v.MaxHP {
		t.Fatalf("hp not restored: %+v", v)
	}
	if got, want := p.Position(), (geo.Vec3{Y: 5}); got != want {
		t.Fatalf("position mismatch: got=%+v want=%+v", got, want)
	}
}

func TestRegenStamina_SlowerWhenMoving(t *testing.T) {
	pl := newTestPlayer(t)
	pl.vitals.Stamina = 50
	pl.RegenStamina(0.5)
	if got := pl.Vitals().Stamina; got != 54 {
		t.Fatalf("idle regen mismatch: got=%v want=54", got)
	}
	pl.MoveTo(geo.Vec3{X: 1})
	pl.RegenStamina(0.5)
	if got := pl.Vitals().Stamina; got != 56 {
		t.Fatalf("moving regen mismatch: got=%v want=56", got)
	}
	pl.RegenStamina(100)
	if got := pl.Vitals().Stamina; got != 100 {
		t.Fatalf("stamina not capped: got=%v", got)
	}
}

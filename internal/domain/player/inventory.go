package player

import (
	"fmt"
	"sort"

	"runeforge/internal/domain/catalog"
	"runeforge/internal/domain/event"
)

// Entry is one inventory slot. Stackable items occupy at most one entry per
// id; everything else is one entry per unit.
type Entry struct {
	Item string `json:"item"`
	Qty  int    `json:"qty"`
}

type EquippedItem struct {
	Item  string `json:"item"`
	Power int    `json:"power,omitempty"`
	Armor int    `json:"armor,omitempty"`
}

type Equipment struct {
	Weapon *EquippedItem `json:"weapon,omitempty"`
	Head   *EquippedItem `json:"head,omitempty"`
	Body   *EquippedItem `json:"body,omitempty"`
}

func (e Equipment) clone() Equipment {
	cp := func(it *EquippedItem) *EquippedItem {
		if it == nil {
			return nil
		}
		v := *it
		return &v
	}
	return Equipment{Weapon: cp(e.Weapon), Head: cp(e.Head), Body: cp(e.Body)}
}

// Stack is the display grouping of all entries sharing an item id.
type Stack struct {
	Item     string           `json:"item"`
	Name     string           `json:"name"`
	Category catalog.Category `json:"category,omitempty"`
	Qty      int              `json:"qty"`
}

func (p *Player) definition(id string) (catalog.ItemDefinition, bool) {
	def, ok := p.cat.Item(id)
	if !ok {
		return catalog.ItemDefinition{ID: id, Stackable: true}, false
	}
	return def, true
}

func (p *Player) Inventory() []Entry {
	return append([]Entry(nil), p.inventory...)
}

func (p *Player) Equipment() Equipment {
	return p.equipment.clone()
}

func (p *Player) Count(id string) int {
	n := 0
	for _, e := range p.inventory {
		if e.Item == id {
			n += e.Qty
		}
	}
	return n
}

// AddItem grants qty units of id. An id missing from the catalog is still
// added as a bare stackable entry and reported with *UnknownItemError.
func (p *Player) AddItem(id string, qty int) error {
	if qty <= 0 {
		return nil
	}
	def, known := p.definition(id)
	if def.Stackable {
		merged := false
		for i := range p.inventory {
			if p.inventory[i].Item == id {
				p.inventory[i].Qty += qty
				merged = true
				break
			}
		}
		if !merged {
			p.inventory = append(p.inventory, Entry{Item: id, Qty: qty})
		}
	} else {
		for i := 0; i < qty; i++ {
			p.inventory = append(p.inventory, Entry{Item: id, Qty: 1})
		}
	}
	p.events.Emit(event.New(event.KindItemCollected,
		fmt.Sprintf("+%d %s", qty, def.DisplayName()),
		map[string]any{"item": id, "qty": qty}))
	if !known {
		return &UnknownItemError{Item: id}
	}
	return nil
}

// RemoveItem takes qty units of id, newest entries first. It fails without
// touching the inventory when fewer than qty are owned.
func (p *Player) RemoveItem(id string, qty int) error {
	if qty <= 0 {
		return nil
	}
	if have := p.Count(id); have < qty {
		return &QuantityError{Item: id, Want: qty, Have: have}
	}
	p.take(id, qty)
	return nil
}

func (p *Player) take(id string, qty int) int {
	need := qty
	for i := len(p.inventory) - 1; i >= 0 && need > 0; i-- {
		if p.inventory[i].Item != id {
			continue
		}
		n := min(need, p.inventory[i].Qty)
		p.inventory[i].Qty -= n
		need -= n
		if p.inventory[i].Qty == 0 {
			p.inventory = append(p.inventory[:i], p.inventory[i+1:]...)
		}
	}
	return qty - need
}

// DropItem discards up to qty units of id; qty <= 0 drops them all.
func (p *Player) DropItem(id string, qty int) (int, error) {
	have := p.Count(id)
	if have == 0 {
		return 0, &QuantityError{Item: id, Want: max(qty, 1), Have: 0}
	}
	if qty <= 0 || qty > have {
		qty = have
	}
	return p.take(id, qty), nil
}

func (p *Player) removeAt(index int) {
	if p.inventory[index].Qty > 1 {
		p.inventory[index].Qty--
		return
	}
	p.inventory = append(p.inventory[:index], p.inventory[index+1:]...)
}

func (p *Player) entryAt(index int) (Entry, error) {
	if index < 0 || index >= len(p.inventory) {
		return Entry{}, invalidIndex(index)
	}
	return p.inventory[index], nil
}

// Equip moves the entry at index into its slot. Weapons and armor replace the
// current occupant, which is discarded. Tools move to the front of the hotbar.
func (p *Player) Equip(index int) error {
	entry, err := p.entryAt(index)
	if err != nil {
		return err
	}
	def, known := p.definition(entry.Item)
	if !known {
		return fmt.Errorf("%w: %s", ErrNotEquippable, entry.Item)
	}
	skills := make([]string, 0, len(def.Requires))
	for skill := range def.Requires {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	for _, skill := range skills {
		if cur := p.skills.Level(skill); cur < def.Requires[skill] {
			return &RequirementError{Item: def.ID, Skill: skill, Required: def.Requires[skill], Current: cur}
		}
	}

	switch def.Category {
	case catalog.CategoryWeapon:
		p.removeAt(index)
		p.equipment.Weapon = &EquippedItem{Item: def.ID, Power: def.Power}
	case catalog.CategoryArmor:
		p.removeAt(index)
		item := &EquippedItem{Item: def.ID, Armor: def.Armor}
		if def.Slot == catalog.SlotBody {
			p.equipment.Body = item
		} else {
			p.equipment.Head = item
		}
	case catalog.CategoryTool:
		p.removeAt(index)
		p.inventory = append([]Entry{{Item: def.ID, Qty: 1}}, p.inventory...)
		p.hotbar = 0
		p.events.Emit(event.Toast(fmt.Sprintf("Equipped %s to hotbar", def.DisplayName())))
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrNotEquippable, def.ID)
	}
	p.events.Emit(event.Toast(fmt.Sprintf("Equipped %s", def.DisplayName())))
	return nil
}

// ConsumeFood eats one unit of the entry at index and returns the hp restored.
func (p *Player) ConsumeFood(index int) (int, error) {
	entry, err := p.entryAt(index)
	if err != nil {
		return 0, err
	}
	def, _ := p.definition(entry.Item)
	if def.Category != catalog.CategoryFood || def.Heal <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrNotFood, entry.Item)
	}
	healed := p.Heal(def.Heal)
	p.removeAt(index)
	p.events.Emit(event.Toast("Nom nom. Restored some HP."))
	return healed, nil
}

func (p *Player) Hotbar() int {
	return p.hotbar
}

func (p *Player) SelectHotbar(index int) error {
	if index < 0 || index >= HotbarSize {
		return invalidIndex(index)
	}
	p.hotbar = index
	return nil
}

// ActiveItem is the item under the selected hotbar slot, if any.
func (p *Player) ActiveItem() (catalog.ItemDefinition, bool) {
	if p.hotbar >= len(p.inventory) {
		return catalog.ItemDefinition{}, false
	}
	def, _ := p.definition(p.inventory[p.hotbar].Item)
	return def, true
}

// WeaponPower is the damage of one attack: the equipped weapon, else the
// active hotbar item, else bare hands.
func (p *Player) WeaponPower() int {
	if w := p.equipment.Weapon; w != nil && w.Power > 0 {
		return w.Power
	}
	if def, ok := p.ActiveItem(); ok && def.Power > 0 {
		return def.Power
	}
	return 1
}

// HarvestTool reports the active hotbar tool; ok is false when none is held.
func (p *Player) HarvestTool() (kind catalog.ToolKind, power int, ok bool) {
	def, held := p.ActiveItem()
	if !held || def.Category != catalog.CategoryTool {
		return "", 0, false
	}
	return def.Tool, def.Power, true
}

func (p *Player) HeadArmor() int {
	if p.equipment.Head == nil {
		return 0
	}
	return p.equipment.Head.Armor
}

// DisplayStacks groups entries by id in first-seen order.
func (p *Player) DisplayStacks() []Stack {
	var out []Stack
	pos := map[string]int{}
	for _, e := range p.inventory {
		if i, ok := pos[e.Item]; ok {
			out[i].Qty += e.Qty
			continue
		}
		def, _ := p.definition(e.Item)
		pos[e.Item] = len(out)
		out = append(out, Stack{Item: e.Item, Name: def.DisplayName(), Category: def.Category, Qty: e.Qty})
	}
	return out
}

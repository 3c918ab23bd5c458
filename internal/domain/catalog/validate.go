package catalog

import (
	"errors"
	"fmt"
)

func (c *Catalog) validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidCatalog}, args...)...))
	}

	if len(c.skills) != len(c.file.Skills) {
		fail("duplicate skill ids")
	}
	if len(c.items) != len(c.file.Items) {
		fail("duplicate item ids")
	}
	if len(c.recipes) != len(c.file.Recipes) {
		fail("duplicate recipe ids")
	}
	if len(c.quests) != len(c.file.Quests) {
		fail("duplicate quest ids")
	}

	for _, it := range c.file.Items {
		if err := c.validateItem(it); err != nil {
			errs = append(errs, err)
		}
	}

	for _, r := range c.file.Recipes {
		if r.ID == "" {
			fail("recipe without id")
		}
		if !c.HasSkill(r.Skill) {
			fail("recipe %q: unknown skill %q", r.ID, r.Skill)
		}
		if len(r.Inputs) == 0 {
			fail("recipe %q: no inputs", r.ID)
		}
		for _, in := range append([]ItemQty{r.Output}, r.Inputs...) {
			if _, ok := c.items[in.Item]; !ok {
				fail("recipe %q: unknown item %q", r.ID, in.Item)
			}
			if in.Qty <= 0 {
				fail("recipe %q: non-positive qty for %q", r.ID, in.Item)
			}
		}
	}

	for _, q := range c.file.Quests {
		if len(q.Goals) == 0 {
			fail("quest %q: no goals", q.ID)
		}
		for _, g := range q.Goals {
			switch g.Kind {
			case GoalGather, GoalCraft, GoalSlay:
			default:
				fail("quest %q: unknown goal kind %q", q.ID, g.Kind)
			}
			if g.Item == "" || g.Qty <= 0 {
				fail("quest %q: goal needs an item and a positive qty", q.ID)
			}
		}
		for _, rw := range q.Rewards {
			if _, ok := c.items[rw.Item]; !ok {
				fail("quest %q: unknown reward item %q", q.ID, rw.Item)
			}
		}
		for skill := range q.XP {
			if !c.HasSkill(skill) {
				fail("quest %q: unknown reward skill %q", q.ID, skill)
			}
		}
	}

	for _, n := range c.file.Nodes {
		if n.HP <= 0 || n.RespawnSeconds <= 0 {
			fail("node %q: hp and respawn must be positive", n.Kind)
		}
		if !c.HasSkill(n.Skill) {
			fail("node %q: unknown skill %q", n.Kind, n.Skill)
		}
		if n.Tool != ToolHatchet && n.Tool != ToolPickaxe {
			fail("node %q: unknown tool kind %q", n.Kind, n.Tool)
		}
		yields := []string{n.Yield}
		for _, y := range n.BiomeYield {
			yields = append(yields, y)
		}
		for _, y := range yields {
			if _, ok := c.items[y]; !ok {
				fail("node %q: unknown yield %q", n.Kind, y)
			}
		}
	}

	for _, cr := range c.file.Creatures {
		if cr.MinLevel < 1 || cr.MaxLevel < cr.MinLevel {
			fail("creature %q: bad level range %d..%d", cr.Kind, cr.MinLevel, cr.MaxLevel)
		}
		if cr.BaseHP+cr.HPPerLevel*cr.MinLevel <= 0 || cr.RespawnSeconds <= 0 {
			fail("creature %q: hp and respawn must be positive", cr.Kind)
		}
		for _, l := range cr.Loot {
			if _, ok := c.items[l.Item]; !ok {
				fail("creature %q: unknown loot %q", cr.Kind, l.Item)
			}
		}
	}

	for _, npc := range c.file.NPCs {
		for _, o := range npc.Offers {
			if _, ok := c.quests[o.Quest]; !ok {
				fail("npc %q: unknown quest %q", npc.ID, o.Quest)
			}
			if o.After != "" {
				if _, ok := c.quests[o.After]; !ok {
					fail("npc %q: unknown prerequisite %q", npc.ID, o.After)
				}
			}
		}
	}

	if c.file.Player.MaxHP <= 0 {
		fail("player max hp must be positive")
	}
	for _, it := range c.file.Player.Inventory {
		if _, ok := c.items[it.Item]; !ok {
			fail("player: unknown starter item %q", it.Item)
		}
	}

	return errors.Join(errs...)
}

// validateItem enforces the per-category shape of an item definition.
func (c *Catalog) validateItem(it ItemDefinition) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: item %q: "+format, append([]any{ErrInvalidCatalog, it.ID}, args...)...))
	}
	if it.ID == "" {
		fail("missing id")
	}
	for skill, lvl := range it.Requires {
		if !c.HasSkill(skill) {
			fail("requires unknown skill %q", skill)
		}
		if lvl < 1 {
			fail("requirement %q below 1", skill)
		}
	}

	switch it.Category {
	case CategoryTool:
		if it.Tool != ToolHatchet && it.Tool != ToolPickaxe {
			fail("tool needs a tool kind")
		}
		if it.Power <= 0 {
			fail("tool needs power")
		}
		if it.Armor != 0 || it.Slot != "" || it.Heal != 0 || it.Stackable {
			fail("tool carries foreign fields")
		}
	case CategoryWeapon:
		if it.Power <= 0 {
			fail("weapon needs power")
		}
		if it.Tool != "" || it.Armor != 0 || it.Slot != "" || it.Heal != 0 || it.Stackable {
			fail("weapon carries foreign fields")
		}
	case CategoryArmor:
		if it.Slot != SlotHead && it.Slot != SlotBody {
			fail("armor needs slot head or body")
		}
		if it.Armor <= 0 {
			fail("armor needs armor value")
		}
		if it.Tool != "" || it.Power != 0 || it.Heal != 0 || it.Stackable {
			fail("armor carries foreign fields")
		}
	case CategoryFood:
		if it.Heal <= 0 {
			fail("food needs heal")
		}
		if it.Tool != "" || it.Power != 0 || it.Armor != 0 || it.Slot != "" {
			fail("food carries foreign fields")
		}
	case CategoryMaterial:
		if it.Tool != "" || it.Power != 0 || it.Armor != 0 || it.Slot != "" || it.Heal != 0 {
			fail("material carries foreign fields")
		}
	default:
		fail("unknown category %q", it.Category)
	}
	return errors.Join(errs...)
}

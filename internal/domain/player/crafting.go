package player

import (
	"fmt"

	"runeforge/internal/domain/catalog"
	"runeforge/internal/domain/event"
	"runeforge/internal/domain/progression"
)

// shortfall lists what is missing for r, with duplicate ingredient ids summed.
func (p *Player) shortfall(r catalog.Recipe) []catalog.ItemQty {
	need := map[string]int{}
	var order []string
	for _, in := range r.Inputs {
		if _, seen := need[in.Item]; !seen {
			order = append(order, in.Item)
		}
		need[in.Item] += in.Qty
	}
	var missing []catalog.ItemQty
	for _, id := range order {
		if have := p.Count(id); have < need[id] {
			missing = append(missing, catalog.ItemQty{Item: id, Qty: need[id] - have})
		}
	}
	return missing
}

func (p *Player) CanCraft(r catalog.Recipe) bool {
	return p.skills.Has(r.Skill) && len(p.shortfall(r)) == 0
}

// Craft checks every ingredient before consuming any, so once consumption
// starts nothing else can fail.
func (p *Player) Craft(r catalog.Recipe) error {
	if missing := p.shortfall(r); len(missing) > 0 {
		return &IngredientsError{Recipe: r.ID, Missing: missing}
	}
	if !p.skills.Has(r.Skill) {
		return &progression.UnknownSkillError{Skill: r.Skill}
	}
	for _, in := range r.Inputs {
		p.take(in.Item, in.Qty)
	}
	_ = p.AddItem(r.Output.Item, r.Output.Qty)
	_ = p.AwardXP(r.Skill, r.XP)
	p.ReportProgress(catalog.GoalCraft, r.Output.Item, r.Output.Qty)
	name := r.Name
	if name == "" {
		name = r.ID
	}
	p.events.Emit(event.Toast(fmt.Sprintf("Crafted: %s", name)))
	return nil
}

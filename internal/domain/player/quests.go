package player

import (
	"fmt"
	"sort"

	"runeforge/internal/domain/catalog"
	"runeforge/internal/domain/event"
)

type QuestStatus string

const (
	QuestAvailable QuestStatus = "available"
	QuestActive    QuestStatus = "active"
	QuestCompleted QuestStatus = "completed"
)

type Goal struct {
	Kind     catalog.GoalKind `json:"kind"`
	Item     string           `json:"item"`
	Or       string           `json:"or,omitempty"`
	Qty      int              `json:"qty"`
	Progress int              `json:"progress"`
}

func (g Goal) matches(kind catalog.GoalKind, item string) bool {
	return g.Kind == kind && (g.Item == item || (g.Or != "" && g.Or == item))
}

type Quest struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Goals       []Goal            `json:"goals"`
	Rewards     []catalog.ItemQty `json:"rewards,omitempty"`
	XP          map[string]int    `json:"xp,omitempty"`
}

// newQuest copies every mutable part of the template so catalog data is
// never shared with a live quest.
func newQuest(t catalog.QuestTemplate) Quest {
	q := Quest{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Goals:       make([]Goal, len(t.Goals)),
		Rewards:     append([]catalog.ItemQty(nil), t.Rewards...),
		XP:          make(map[string]int, len(t.XP)),
	}
	for i, g := range t.Goals {
		q.Goals[i] = Goal{Kind: g.Kind, Item: g.Item, Or: g.Or, Qty: g.Qty}
	}
	for k, v := range t.XP {
		q.XP[k] = v
	}
	return q
}

func (q Quest) clone() Quest {
	cp := q
	cp.Goals = append([]Goal(nil), q.Goals...)
	cp.Rewards = append([]catalog.ItemQty(nil), q.Rewards...)
	cp.XP = make(map[string]int, len(q.XP))
	for k, v := range q.XP {
		cp.XP[k] = v
	}
	return cp
}

func (q Quest) Done() bool {
	for _, g := range q.Goals {
		if g.Progress < g.Qty {
			return false
		}
	}
	return true
}

func (p *Player) ActiveQuests() []Quest {
	return cloneQuests(p.active)
}

func (p *Player) CompletedQuests() []Quest {
	return cloneQuests(p.completed)
}

func cloneQuests(qs []Quest) []Quest {
	out := make([]Quest, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.clone())
	}
	return out
}

func (p *Player) QuestStatus(id string) QuestStatus {
	for _, q := range p.completed {
		if q.ID == id {
			return QuestCompleted
		}
	}
	for _, q := range p.active {
		if q.ID == id {
			return QuestActive
		}
	}
	return QuestAvailable
}

// OfferQuest activates t unless it is already active or completed.
func (p *Player) OfferQuest(t catalog.QuestTemplate) bool {
	if p.QuestStatus(t.ID) != QuestAvailable {
		return false
	}
	p.active = append(p.active, newQuest(t))
	p.events.Emit(event.New(event.KindQuestOffered,
		fmt.Sprintf("New Quest: %s", t.Name),
		map[string]any{"quest": t.ID}))
	return true
}

// ReportProgress credits every matching goal of every active quest, then
// completes any quest whose goals are all met before returning.
func (p *Player) ReportProgress(kind catalog.GoalKind, item string, amount int) {
	if amount <= 0 {
		return
	}
	for i := range p.active {
		for j := range p.active[i].Goals {
			if p.active[i].Goals[j].matches(kind, item) {
				p.active[i].Goals[j].Progress += amount
			}
		}
	}

	var done []Quest
	remaining := p.active[:0]
	for _, q := range p.active {
		if q.Done() {
			done = append(done, q)
			continue
		}
		remaining = append(remaining, q)
	}
	p.active = remaining
	for _, q := range done {
		p.complete(q)
	}
}

func (p *Player) complete(q Quest) {
	p.completed = append(p.completed, q)
	for _, r := range q.Rewards {
		_ = p.AddItem(r.Item, r.Qty)
	}
	skills := make([]string, 0, len(q.XP))
	for skill := range q.XP {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	for _, skill := range skills {
		_ = p.AwardXP(skill, q.XP[skill])
	}
	p.events.Emit(event.New(event.KindQuestCompleted,
		fmt.Sprintf("Quest complete: %s!", q.Name),
		map[string]any{"quest": q.ID}))
}

// Talk runs an NPC's quest chain: the first offer whose quest is still
// available and whose prerequisite is completed gets activated. It returns
// the activated quest id (empty when none) and the line the NPC says.
func (p *Player) Talk(npc catalog.NPCTemplate) (string, string) {
	for _, o := range npc.Offers {
		if p.QuestStatus(o.Quest) != QuestAvailable {
			continue
		}
		if o.After != "" && p.QuestStatus(o.After) != QuestCompleted {
			continue
		}
		t, ok := p.cat.Quest(o.Quest)
		if !ok {
			continue
		}
		p.OfferQuest(t)
		return t.ID, fmt.Sprintf("New Quest: %s", t.Name)
	}
	line := npc.Farewell
	if line == "" {
		line = "..."
	}
	p.events.Emit(event.Toast(line))
	return "", line
}

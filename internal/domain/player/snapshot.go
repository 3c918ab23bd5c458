package player

import (
	"encoding/json"
	"fmt"

	"runeforge/internal/domain/catalog"
	"runeforge/internal/domain/geo"
	"runeforge/internal/domain/progression"
)

const SchemaVersion = 1

// Snapshot is the persisted form of a Player.
type Snapshot struct {
	SchemaVersion   int                `json:"schema_version"`
	Skills          progression.Skills `json:"skills"`
	Inventory       []Entry            `json:"inventory"`
	Equipment       Equipment          `json:"equipment"`
	Hotbar          int                `json:"hotbar"`
	Vitals          Vitals             `json:"vitals"`
	Position        geo.Vec3           `json:"position"`
	ActiveQuests    []Quest            `json:"active_quests"`
	CompletedQuests []Quest            `json:"completed_quests"`
}

func (p *Player) Snapshot() Snapshot {
	return Snapshot{
		SchemaVersion:   SchemaVersion,
		Skills:          p.skills.Clone(),
		Inventory:       p.Inventory(),
		Equipment:       p.equipment.clone(),
		Hotbar:          p.hotbar,
		Vitals:          p.vitals,
		Position:        p.pos,
		ActiveQuests:    cloneQuests(p.active),
		CompletedQuests: cloneQuests(p.completed),
	}
}

// Restore rebuilds a Player from s. Shape violations that cannot be repaired
// yield ErrCorruptSave. Skill overflow, foreign skills, vitals out of range
// and split or merged stacks are repaired.
func Restore(cat *catalog.Catalog, s Snapshot) (*Player, error) {
	if s.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("%w: schema version %d, want %d", ErrCorruptSave, s.SchemaVersion, SchemaVersion)
	}
	if s.Vitals.MaxHP <= 0 {
		return nil, fmt.Errorf("%w: max hp %d", ErrCorruptSave, s.Vitals.MaxHP)
	}
	if s.Hotbar < 0 || s.Hotbar >= HotbarSize {
		return nil, fmt.Errorf("%w: hotbar %d", ErrCorruptSave, s.Hotbar)
	}
	for _, e := range s.Inventory {
		if e.Item == "" || e.Qty < 1 {
			return nil, fmt.Errorf("%w: inventory entry %+v", ErrCorruptSave, e)
		}
	}

	if err := checkQuests(s.ActiveQuests, s.CompletedQuests); err != nil {
		return nil, err
	}

	// Only catalog skills exist; anything else in the save is dropped.
	skills := progression.NewSkills(cat.Skills()...)
	for name := range skills {
		if st, ok := s.Skills[name]; ok {
			skills[name] = st
		}
	}
	skills.Normalize()

	vitals := s.Vitals
	if vitals.HP <= 0 || vitals.HP > vitals.MaxHP {
		vitals.HP = vitals.MaxHP
	}
	if vitals.Stamina < 0 || vitals.Stamina > vitals.MaxStamina {
		vitals.Stamina = vitals.MaxStamina
	}

	return &Player{
		cat:       cat,
		skills:    skills,
		inventory: normalizeInventory(cat, s.Inventory),
		equipment: s.Equipment.clone(),
		hotbar:    s.Hotbar,
		vitals:    vitals,
		pos:       s.Position,
		active:    cloneQuests(s.ActiveQuests),
		completed: cloneQuests(s.CompletedQuests),
	}, nil
}

// normalizeInventory re-applies the stacking rule: one merged entry per
// stackable id at its first position, one entry per unit otherwise.
func normalizeInventory(cat *catalog.Catalog, entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	pos := map[string]int{}
	for _, e := range entries {
		def, known := cat.Item(e.Item)
		if !known || def.Stackable {
			if i, ok := pos[e.Item]; ok {
				out[i].Qty += e.Qty
				continue
			}
			pos[e.Item] = len(out)
			out = append(out, e)
			continue
		}
		for i := 0; i < e.Qty; i++ {
			out = append(out, Entry{Item: e.Item, Qty: 1})
		}
	}
	return out
}

// checkQuests rejects quest lists that would complete for free or pay twice.
func checkQuests(active, completed []Quest) error {
	seen := map[string]bool{}
	for _, q := range completed {
		if q.ID == "" || seen[q.ID] {
			return fmt.Errorf("%w: completed quest %q listed twice", ErrCorruptSave, q.ID)
		}
		seen[q.ID] = true
	}
	for _, q := range active {
		if q.ID == "" || seen[q.ID] {
			return fmt.Errorf("%w: quest %q active twice or already completed", ErrCorruptSave, q.ID)
		}
		seen[q.ID] = true
		if len(q.Goals) == 0 {
			return fmt.Errorf("%w: active quest %q has no goals", ErrCorruptSave, q.ID)
		}
		for _, g := range q.Goals {
			if g.Qty < 1 || g.Progress < 0 {
				return fmt.Errorf("%w: active quest %q goal %+v", ErrCorruptSave, q.ID, g)
			}
		}
	}
	return nil
}

func Encode(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

func Decode(raw []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	return s, nil
}

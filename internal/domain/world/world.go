package world

import (
	"fmt"
	"sort"
	"time"

	"runeforge/internal/domain/catalog"
	"runeforge/internal/domain/event"
	"runeforge/internal/domain/geo"
)

// World owns every entity for the session. Entities are spawned once and
// only ever toggled between active and inactive. Not safe for concurrent use.
type World struct {
	ground    geo.GroundFunc
	nodes     map[string]*ResourceNode
	creatures map[string]*Creature
	npcs      map[string]*NPC
	initNodes map[string]ResourceNode
	initCrits map[string]Creature
	sched     *Scheduler
	events    event.Buffer
}

func New(ground geo.GroundFunc) *World {
	if ground == nil {
		ground = geo.FlatGround
	}
	return &World{
		ground:    ground,
		nodes:     map[string]*ResourceNode{},
		creatures: map[string]*Creature{},
		npcs:      map[string]*NPC{},
		initNodes: map[string]ResourceNode{},
		initCrits: map[string]Creature{},
		sched:     NewScheduler(),
	}
}

func (w *World) Ground() geo.GroundFunc {
	return w.ground
}

func (w *World) AddNode(n ResourceNode) {
	w.initNodes[n.ID] = n
	cp := n
	w.nodes[n.ID] = &cp
}

func (w *World) AddCreature(c Creature) {
	c.Loot = append([]catalog.ItemQty(nil), c.Loot...)
	w.initCrits[c.ID] = c
	cp := c
	cp.Loot = append([]catalog.ItemQty(nil), c.Loot...)
	w.creatures[c.ID] = &cp
}

func (w *World) AddNPC(n NPC) {
	cp := n
	w.npcs[n.ID] = &cp
}

func (w *World) Kind(id string) (EntityKind, bool) {
	if _, ok := w.nodes[id]; ok {
		return EntityNode, true
	}
	if _, ok := w.creatures[id]; ok {
		return EntityCreature, true
	}
	if _, ok := w.npcs[id]; ok {
		return EntityNPC, true
	}
	return "", false
}

func (w *World) Node(id string) (ResourceNode, bool) {
	n, ok := w.nodes[id]
	if !ok {
		return ResourceNode{}, false
	}
	return *n, true
}

func (w *World) Creature(id string) (Creature, bool) {
	c, ok := w.creatures[id]
	if !ok {
		return Creature{}, false
	}
	cp := *c
	cp.Loot = append([]catalog.ItemQty(nil), c.Loot...)
	return cp, true
}

func (w *World) NPC(id string) (NPC, bool) {
	n, ok := w.npcs[id]
	if !ok {
		return NPC{}, false
	}
	return *n, true
}

func (w *World) Nodes() []ResourceNode {
	out := make([]ResourceNode, 0, len(w.nodes))
	for _, id := range sortedKeys(w.nodes) {
		out = append(out, *w.nodes[id])
	}
	return out
}

func (w *World) Creatures() []Creature {
	out := make([]Creature, 0, len(w.creatures))
	for _, id := range sortedKeys(w.creatures) {
		c, _ := w.Creature(id)
		out = append(out, c)
	}
	return out
}

func (w *World) NPCs() []NPC {
	out := make([]NPC, 0, len(w.npcs))
	for _, id := range sortedKeys(w.npcs) {
		out = append(out, *w.npcs[id])
	}
	return out
}

type Counts struct {
	NodesActive    int `json:"nodes_active"`
	NodesDepleted  int `json:"nodes_depleted"`
	CreaturesAlive int `json:"creatures_alive"`
	CreaturesDead  int `json:"creatures_dead"`
	NPCs           int `json:"npcs"`
	PendingRespawn int `json:"pending_respawn"`
}

func (w *World) Counts() Counts {
	var c Counts
	for _, n := range w.nodes {
		if n.Depleted {
			c.NodesDepleted++
		} else {
			c.NodesActive++
		}
	}
	for _, cr := range w.creatures {
		if cr.Alive {
			c.CreaturesAlive++
		} else {
			c.CreaturesDead++
		}
	}
	c.NPCs = len(w.npcs)
	c.PendingRespawn = w.sched.Len()
	return c
}

func (w *World) Scheduler() *Scheduler {
	return w.sched
}

// Events drains notifications raised by world transitions.
func (w *World) Events() []event.Event {
	return w.events.Drain()
}

// Advance revives every entity whose respawn is due. The inactive flag is
// checked again before reviving.
func (w *World) Advance(now time.Time) []string {
	var revived []string
	for _, r := range w.sched.Due(now) {
		if n, ok := w.nodes[r.EntityID]; ok && n.Depleted {
			n.HP = n.MaxHP
			n.Depleted = false
			n.LastHarvest = time.Time{}
			revived = append(revived, n.ID)
			w.events.Emit(event.New(event.KindEntityRespawned, "",
				map[string]any{"entity": n.ID, "kind": string(EntityNode)}))
			continue
		}
		if c, ok := w.creatures[r.EntityID]; ok && !c.Alive {
			c.HP = c.MaxHP
			c.Alive = true
			c.LastStruck = time.Time{}
			c.LastHit = time.Time{}
			c.Position.Y = w.ground(c.Position.X, c.Position.Z) + c.Radius
			revived = append(revived, c.ID)
			w.events.Emit(event.New(event.KindEntityRespawned, "",
				map[string]any{"entity": c.ID, "kind": string(EntityCreature)}))
		}
	}
	return revived
}

// Reset restores every entity to its spawn state and drops pending respawns.
func (w *World) Reset() {
	w.sched.Reset()
	for id, n := range w.initNodes {
		cp := n
		w.nodes[id] = &cp
	}
	for id, c := range w.initCrits {
		cp := c
		cp.Loot = append([]catalog.ItemQty(nil), c.Loot...)
		w.creatures[id] = &cp
	}
}

// Cancel drops the pending respawn for id, leaving the entity inactive.
func (w *World) Cancel(id string) bool {
	return w.sched.Cancel(id)
}

type HarvestOutcome struct {
	NodeID   string `json:"node_id"`
	HP       int    `json:"hp"`
	MaxHP    int    `json:"max_hp"`
	Depleted bool   `json:"depleted"`
	Yield    string `json:"yield,omitempty"`
	Skill    string `json:"skill,omitempty"`
	XP       int    `json:"xp,omitempty"`
}

// Harvest applies one swing. tool is empty when the player holds no tool.
// A rejected swing never changes hp or the cooldown stamp.
func (w *World) Harvest(id string, tool catalog.ToolKind, power int, now time.Time) (HarvestOutcome, error) {
	n, ok := w.nodes[id]
	if !ok {
		return HarvestOutcome{}, unknownEntity(id)
	}
	if n.Depleted {
		return HarvestOutcome{}, inactive(id)
	}
	if left, cooling := remaining(n.LastHarvest, HarvestCooldown, now); cooling {
		return HarvestOutcome{}, &CooldownError{EntityID: id, Remaining: left}
	}
	if tool == "" || tool != n.Tool {
		return HarvestOutcome{}, &WrongToolError{EntityID: id, Required: n.Tool}
	}
	if power <= 0 {
		power = 1
	}
	n.LastHarvest = now
	n.HP -= power
	out := HarvestOutcome{NodeID: id, HP: max(0, n.HP), MaxHP: n.MaxHP}
	if n.HP > 0 {
		return out, nil
	}
	n.Depleted = true
	w.sched.Schedule(id, now.Add(n.Respawn))
	out.Depleted = true
	out.Yield = n.Yield
	out.Skill = n.Skill
	out.XP = n.XP
	w.events.Emit(event.New(event.KindNodeDepleted, "",
		map[string]any{"entity": id, "yield": n.Yield}))
	return out, nil
}

type AttackOutcome struct {
	CreatureID string            `json:"creature_id"`
	Kind       string            `json:"kind"`
	Damage     int               `json:"damage"`
	HP         int               `json:"hp"`
	MaxHP      int               `json:"max_hp"`
	Slain      bool              `json:"slain"`
	XP         int               `json:"xp,omitempty"`
	Loot       []catalog.ItemQty `json:"loot,omitempty"`
}

// Attack strikes a creature. The cooldown is per target.
func (w *World) Attack(id string, power int, now time.Time) (AttackOutcome, error) {
	c, ok := w.creatures[id]
	if !ok {
		return AttackOutcome{}, unknownEntity(id)
	}
	if !c.Alive {
		return AttackOutcome{}, inactive(id)
	}
	if left, cooling := remaining(c.LastStruck, AttackCooldown, now); cooling {
		return AttackOutcome{}, &CooldownError{EntityID: id, Remaining: left}
	}
	if power <= 0 {
		power = 1
	}
	c.LastStruck = now
	c.HP -= power
	out := AttackOutcome{CreatureID: id, Kind: c.Kind, Damage: power, HP: max(0, c.HP), MaxHP: c.MaxHP}
	w.events.Emit(event.New(event.KindDamageDealt,
		fmt.Sprintf("Hit for %d! (%d/%d)", power, out.HP, c.MaxHP),
		map[string]any{"entity": id, "amount": power}))
	if c.HP > 0 {
		return out, nil
	}
	c.Alive = false
	w.sched.Schedule(id, now.Add(c.Respawn))
	out.Slain = true
	out.XP = c.XP
	out.Loot = append([]catalog.ItemQty(nil), c.Loot...)
	w.events.Emit(event.New(event.KindCreatureSlain,
		fmt.Sprintf("Defeated %s!", c.Kind),
		map[string]any{"entity": id, "kind": c.Kind}))
	return out, nil
}

type Hit struct {
	CreatureID string
	Kind       string
	Damage     int
}

// Aggress moves every alive creature within aggro range toward target and
// returns the hits landed this tick. Range is judged before the step.
func (w *World) Aggress(dt float64, now time.Time, target geo.Vec3, armor int) []Hit {
	var hits []Hit
	for _, id := range sortedKeys(w.creatures) {
		c := w.creatures[id]
		if !c.Alive {
			continue
		}
		d := geo.PlanarDistance(c.Position, target)
		if d >= c.Aggro {
			continue
		}
		c.Position = geo.StepToward(c.Position, target, c.Speed*dt)
		c.Position.Y = w.ground(c.Position.X, c.Position.Z) + c.Radius
		if d >= MeleeRange {
			continue
		}
		if !c.LastHit.IsZero() && now.Sub(c.LastHit) <= CreatureHitCooldown {
			continue
		}
		c.LastHit = now
		hits = append(hits, Hit{CreatureID: id, Kind: c.Kind, Damage: max(1, c.Damage-armor)})
	}
	return hits
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

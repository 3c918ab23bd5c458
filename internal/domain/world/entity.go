package world

import (
	"time"

	"runeforge/internal/domain/catalog"
	"runeforge/internal/domain/geo"
)

type EntityKind string

const (
	EntityNode     EntityKind = "node"
	EntityCreature EntityKind = "creature"
	EntityNPC      EntityKind = "npc"
)

type ResourceNode struct {
	ID          string           `json:"id"`
	Type        string           `json:"type"`
	Yield       string           `json:"yield"`
	Tool        catalog.ToolKind `json:"tool"`
	Skill       string           `json:"skill"`
	XP          int              `json:"xp"`
	HP          int              `json:"hp"`
	MaxHP       int              `json:"max_hp"`
	Respawn     time.Duration    `json:"respawn"`
	LastHarvest time.Time        `json:"last_harvest"`
	Depleted    bool             `json:"depleted"`
	Position    geo.Vec3         `json:"position"`
}

func NewNode(id string, tpl catalog.NodeTemplate, biome string, pos geo.Vec3) ResourceNode {
	return ResourceNode{
		ID:       id,
		Type:     tpl.Kind,
		Yield:    tpl.YieldFor(biome),
		Tool:     tpl.Tool,
		Skill:    tpl.Skill,
		XP:       tpl.XP,
		HP:       tpl.HP,
		MaxHP:    tpl.HP,
		Respawn:  seconds(tpl.RespawnSeconds),
		Position: pos,
	}
}

type Creature struct {
	ID         string            `json:"id"`
	Kind       string            `json:"kind"`
	Level      int               `json:"level"`
	HP         int               `json:"hp"`
	MaxHP      int               `json:"max_hp"`
	Damage     int               `json:"damage"`
	Aggro      float64           `json:"aggro"`
	Speed      float64           `json:"speed"`
	Radius     float64           `json:"radius"`
	Alive      bool              `json:"alive"`
	LastStruck time.Time         `json:"last_struck"`
	LastHit    time.Time         `json:"last_hit"`
	Loot       []catalog.ItemQty `json:"loot,omitempty"`
	Respawn    time.Duration     `json:"respawn"`
	XP         int               `json:"xp"`
	Position   geo.Vec3          `json:"position"`
}

// NewCreature scales tpl to level. Position.Y is taken as given.
func NewCreature(id string, tpl catalog.CreatureTemplate, level int, pos geo.Vec3) Creature {
	hp := tpl.BaseHP + tpl.HPPerLevel*level
	return Creature{
		ID:       id,
		Kind:     tpl.Kind,
		Level:    level,
		HP:       hp,
		MaxHP:    hp,
		Damage:   tpl.BaseDamage + tpl.DamagePerLevel*level,
		Aggro:    tpl.BaseAggro + tpl.AggroPerLevel*float64(level),
		Speed:    tpl.Speed,
		Radius:   tpl.BaseRadius + tpl.RadiusPerLevel*float64(level),
		Alive:    true,
		Loot:     append([]catalog.ItemQty(nil), tpl.Loot...),
		Respawn:  seconds(tpl.RespawnSeconds),
		XP:       tpl.XP,
		Position: pos,
	}
}

type NPC struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Template catalog.NPCTemplate `json:"-"`
	Position geo.Vec3            `json:"position"`
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

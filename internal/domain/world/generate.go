package world

import (
	"fmt"
	"math/rand/v2"

	"runeforge/internal/domain/catalog"
	"runeforge/internal/domain/geo"
)

type GenConfig struct {
	Seed      uint64
	Nodes     int
	Creatures int
}

func DefaultGenConfig() GenConfig {
	return GenConfig{Seed: 1, Nodes: DefaultNodeCount, Creatures: DefaultCreatureCount}
}

// Generate populates a world deterministically from cfg.Seed: resource
// nodes scattered over the full map, creatures near the hub and every NPC at
// its catalog position.
func Generate(cat *catalog.Catalog, cfg GenConfig, ground geo.GroundFunc) *World {
	w := New(ground)
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	nodeTpls := cat.Nodes()
	totalWeight := 0.0
	for _, t := range nodeTpls {
		totalWeight += t.Weight
	}
	if len(nodeTpls) > 0 {
		for i := 0; i < cfg.Nodes; i++ {
			x := -NodeRange + rng.Float64()*2*NodeRange
			z := -NodeRange + rng.Float64()*2*NodeRange
			tpl := pickNode(nodeTpls, totalWeight, rng.Float64())
			pos := geo.Vec3{X: x, Y: w.ground(x, z), Z: z}
			w.AddNode(NewNode(fmt.Sprintf("%s-%d", tpl.Kind, i), tpl, BiomeAt(x, z), pos))
		}
	}

	crTpls := cat.Creatures()
	if len(crTpls) > 0 {
		for i := 0; i < cfg.Creatures; i++ {
			tpl := crTpls[i%len(crTpls)]
			x := -CreatureRange + rng.Float64()*2*CreatureRange
			z := -CreatureRange + rng.Float64()*2*CreatureRange
			level := tpl.MinLevel + rng.IntN(tpl.MaxLevel-tpl.MinLevel+1)
			c := NewCreature(fmt.Sprintf("%s-%d", tpl.Kind, i), tpl, level, geo.Vec3{X: x, Z: z})
			c.Position.Y = w.ground(x, z) + c.Radius
			w.AddCreature(c)
		}
	}

	for _, t := range cat.NPCs() {
		w.AddNPC(NPC{
			ID:       t.ID,
			Name:     t.Name,
			Template: t,
			Position: geo.Vec3{X: t.X, Y: w.ground(t.X, t.Z) + NPCLift, Z: t.Z},
		})
	}
	return w
}

func pickNode(tpls []catalog.NodeTemplate, total, roll float64) catalog.NodeTemplate {
	if total <= 0 {
		return tpls[0]
	}
	acc := 0.0
	for _, t := range tpls {
		acc += t.Weight / total
		if roll < acc {
			return t
		}
	}
	return tpls[len(tpls)-1]
}

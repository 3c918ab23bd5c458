package world

import "time"

const (
	HarvestCooldown     = 1000 * time.Millisecond
	AttackCooldown      = 500 * time.Millisecond
	CreatureHitCooldown = 1000 * time.Millisecond

	MeleeRange = 1.6

	NodeRange     = 280.0
	CreatureRange = 120.0

	DefaultNodeCount     = 200
	DefaultCreatureCount = 12

	// NPCLift is the height of an NPC's center above the ground.
	NPCLift = 1.2
)

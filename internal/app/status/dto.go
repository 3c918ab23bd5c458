package status

import (
	"runeforge/internal/domain/geo"
	"runeforge/internal/domain/player"
	"runeforge/internal/domain/world"
)

type Skill struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
	XPToNext int    `json:"xp_to_next"`
}

type Response struct {
	PlayerID        string           `json:"player_id"`
	Vitals          player.Vitals    `json:"vitals"`
	Position        geo.Vec3         `json:"position"`
	Hotbar          int              `json:"hotbar"`
	ActiveItem      string           `json:"active_item,omitempty"`
	Stacks          []player.Stack   `json:"stacks"`
	Equipment       player.Equipment `json:"equipment"`
	Skills          []Skill          `json:"skills"`
	ActiveQuests    []player.Quest   `json:"active_quests"`
	CompletedQuests []string         `json:"completed_quests"`
	Craftable       []string         `json:"craftable"`
	World           world.Counts     `json:"world"`
}

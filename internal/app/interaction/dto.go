package interaction

import (
	"runeforge/internal/domain/event"
	"runeforge/internal/domain/world"
)

const (
	ActionInteract = "interact"
	ActionAttack   = "attack"
	ActionHarvest  = "harvest"
	ActionTalk     = "talk"
	ActionCraft    = "craft"
	ActionEquip    = "equip"
	ActionEat      = "eat"
	ActionDrop     = "drop"
	ActionHotbar   = "hotbar"
	ActionMove     = "move"
)

type Result struct {
	Action       string                `json:"action"`
	TargetID     string                `json:"target_id,omitempty"`
	Resolved     string                `json:"resolved,omitempty"`
	Message      string                `json:"message,omitempty"`
	QuestOffered string                `json:"quest_offered,omitempty"`
	Harvest      *world.HarvestOutcome `json:"harvest,omitempty"`
	Attack       *world.AttackOutcome  `json:"attack,omitempty"`
	Healed       int                   `json:"healed,omitempty"`
	Dropped      int                   `json:"dropped,omitempty"`
	Unsaved      bool                  `json:"unsaved,omitempty"`
	Events       []event.Event         `json:"events"`
}

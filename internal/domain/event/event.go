package event

import "time"

type Kind string

const (
	KindLevelUp         Kind = "level_up"
	KindQuestOffered    Kind = "quest_offered"
	KindQuestCompleted  Kind = "quest_completed"
	KindItemCollected   Kind = "item_collected"
	KindDamageTaken     Kind = "damage_taken"
	KindDamageDealt     Kind = "damage_dealt"
	KindCreatureSlain   Kind = "creature_slain"
	KindNodeDepleted    Kind = "node_depleted"
	KindEntityRespawned Kind = "entity_respawned"
	KindPlayerDied      Kind = "player_died"
	KindToast           Kind = "toast"
)

// Event is a fire-and-forget notification for UI observers. Domain code
// leaves ID and OccurredAt empty; the app layer stamps them before publishing.
type Event struct {
	ID         string         `json:"id,omitempty"`
	Kind       Kind           `json:"kind"`
	Message    string         `json:"message"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

func New(kind Kind, message string, payload map[string]any) Event {
	return Event{Kind: kind, Message: message, Payload: payload}
}

func Toast(message string) Event {
	return Event{Kind: KindToast, Message: message}
}

// Buffer collects events raised during one mutation.
type Buffer struct {
	pending []Event
}

func (b *Buffer) Emit(e Event) {
	b.pending = append(b.pending, e)
}

func (b *Buffer) Drain() []Event {
	out := b.pending
	b.pending = nil
	return out
}

func (b *Buffer) Len() int {
	return len(b.pending)
}

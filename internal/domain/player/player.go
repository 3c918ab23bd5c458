package player

import (
	"fmt"

	"runeforge/internal/domain/catalog"
	"runeforge/internal/domain/event"
	"runeforge/internal/domain/geo"
	"runeforge/internal/domain/progression"
)

const (
	HotbarSize = 5

	StaminaRegenIdle   = 8.0
	StaminaRegenMoving = 4.0

	// HubLift is how far above the ground a player reappears at the hub.
	HubLift = 2.0
)

type Vitals struct {
	HP         int     `json:"hp"`
	MaxHP      int     `json:"max_hp"`
	Stamina    float64 `json:"stamina"`
	MaxStamina float64 `json:"max_stamina"`
}

// Player is the single aggregate owning progression, inventory, equipment,
// vitals and quests. It is not safe for concurrent use; callers serialise
// access (see session.Session).
type Player struct {
	cat       *catalog.Catalog
	skills    progression.Skills
	inventory []Entry
	equipment Equipment
	hotbar    int
	vitals    Vitals
	pos       geo.Vec3
	moved     bool
	active    []Quest
	completed []Quest
	events    event.Buffer
}

// New returns a fresh character built from the catalog's player template.
func New(cat *catalog.Catalog) *Player {
	tpl := cat.Player()
	p := &Player{
		cat:    cat,
		skills: progression.NewSkills(cat.Skills()...),
		vitals: Vitals{
			HP:         tpl.MaxHP,
			MaxHP:      tpl.MaxHP,
			Stamina:    tpl.MaxStamina,
			MaxStamina: tpl.MaxStamina,
		},
		pos: geo.Vec3{Y: HubLift},
	}
	for _, it := range tpl.Inventory {
		_ = p.AddItem(it.Item, it.Qty)
	}
	p.events.Drain()
	return p
}

func (p *Player) Catalog() *catalog.Catalog {
	return p.cat
}

// Events drains the notifications raised since the previous call.
func (p *Player) Events() []event.Event {
	return p.events.Drain()
}

func (p *Player) Vitals() Vitals {
	return p.vitals
}

func (p *Player) Position() geo.Vec3 {
	return p.pos
}

func (p *Player) SkillLevel(skill string) int {
	return p.skills.Level(skill)
}

func (p *Player) Skills() progression.Skills {
	return p.skills.Clone()
}

// AwardXP credits a skill and announces every level gained.
func (p *Player) AwardXP(skill string, amount int) error {
	ups, err := p.skills.Award(skill, amount)
	if err != nil {
		return err
	}
	for _, up := range ups {
		p.events.Emit(event.New(event.KindLevelUp,
			fmt.Sprintf("Level up! %s is now %d.", up.Skill, up.Level),
			map[string]any{"skill": up.Skill, "level": up.Level}))
	}
	return nil
}

func (p *Player) MoveTo(pos geo.Vec3) {
	if pos.X != p.pos.X || pos.Z != p.pos.Z {
		p.moved = true
	}
	p.pos = pos
}

// RegenStamina refills stamina for one tick. Regeneration is slower on ticks
// where the player moved.
func (p *Player) RegenStamina(dtSeconds float64) {
	rate := StaminaRegenIdle
	if p.moved {
		rate = StaminaRegenMoving
	}
	p.moved = false
	p.vitals.Stamina += rate * dtSeconds
	if p.vitals.Stamina > p.vitals.MaxStamina {
		p.vitals.Stamina = p.vitals.MaxStamina
	}
}

// TakeDamage applies a hit and reports whether the player is down.
func (p *Player) TakeDamage(amount int, source string) bool {
	p.vitals.HP -= amount
	p.events.Emit(event.New(event.KindDamageTaken,
		fmt.Sprintf("%s hit you for %d! (%d/%d)", source, amount, p.vitals.HP, p.vitals.MaxHP),
		map[string]any{"source": source, "amount": amount, "hp": p.vitals.HP}))
	return p.vitals.HP <= 0
}

// RespawnAtHub restores hp and moves the player back to the hub.
func (p *Player) RespawnAtHub(ground geo.GroundFunc) {
	p.vitals.HP = p.vitals.MaxHP
	p.pos = geo.Vec3{X: 0, Y: ground(0, 0) + HubLift, Z: 0}
	p.events.Emit(event.New(event.KindPlayerDied, "You died. Respawning at hub.", nil))
}

func (p *Player) Heal(amount int) int {
	before := p.vitals.HP
	p.vitals.HP += amount
	if p.vitals.HP > p.vitals.MaxHP {
		p.vitals.HP = p.vitals.MaxHP
	}
	return p.vitals.HP - before
}

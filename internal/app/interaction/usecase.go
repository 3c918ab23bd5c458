package interaction

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"runeforge/internal/app/ports"
	"runeforge/internal/app/savegame"
	"runeforge/internal/app/session"
	"runeforge/internal/app/shared/publish"
	"runeforge/internal/domain/catalog"
	"runeforge/internal/domain/event"
	"runeforge/internal/domain/geo"
	"runeforge/internal/domain/world"
)

const combatSkill = "combat"

type UseCase struct {
	Session  *session.Session
	SaveGame savegame.UseCase
	Notifier ports.Notifier
	Metrics  ports.InteractionMetrics
	Now      func() time.Time
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

type step func(st *session.State, now time.Time) (Result, error)

// run executes one player action under the session lock. Accepted actions
// are persisted together with their events; rejections only notify.
// Persistence failures are logged and counted but never undo or fail the
// action.
func (u UseCase) run(ctx context.Context, action string, persist bool, fn step) (Result, error) {
	var res Result
	err := u.Session.Run(ctx, func(st *session.State) error {
		now := u.now()
		out, err := fn(st, now)

		raised := append(st.World.Events(), st.Player.Events()...)
		if err != nil && IsRejection(err) {
			raised = append(raised, event.Toast(toastFor(err)))
		}
		out.Action = action
		out.Events = publish.Stamp(raised, now)
		res = out
		metric := metricName(action, out.Resolved)

		if err != nil {
			if IsRejection(err) {
				u.recordRejected(metric, RejectionCode(err))
				u.notify(ctx, out.Events)
			} else {
				u.recordFailure(metric)
			}
			return err
		}
		// The action has already happened; a failed save only marks the
		// result as unsaved.
		if persist {
			if err := u.SaveGame.Persist(ctx, st.PlayerID, st.Player.Snapshot(), out.Events); err != nil {
				log.Printf("interaction: persist %s for player=%s: %v", action, st.PlayerID, err)
				res.Unsaved = true
				u.recordFailure(metric)
				u.notify(ctx, out.Events)
				return nil
			}
		}
		u.recordAccepted(metric)
		u.notify(ctx, out.Events)
		return nil
	})
	return res, err
}

// metricName keys interact and attack metrics by what the target resolved
// to, e.g. "interact:harvest".
func metricName(action, resolved string) string {
	if resolved == "" || resolved == action {
		return action
	}
	return action + ":" + resolved
}

func (u UseCase) notify(ctx context.Context, events []event.Event) {
	if u.Notifier == nil || len(events) == 0 {
		return
	}
	u.Notifier.Notify(ctx, events)
}

func (u UseCase) recordAccepted(action string) {
	if u.Metrics != nil {
		u.Metrics.RecordAccepted(action)
	}
}

func (u UseCase) recordRejected(action, code string) {
	if u.Metrics != nil {
		u.Metrics.RecordRejected(action, code)
	}
}

func (u UseCase) recordFailure(action string) {
	if u.Metrics != nil {
		u.Metrics.RecordFailure(action)
	}
}

func requireID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: target id is required", ErrInvalidRequest)
	}
	return id, nil
}

// Interact dispatches on what the target is: NPCs talk, creatures are
// attacked and resource nodes harvested.
func (u UseCase) Interact(ctx context.Context, targetID string) (Result, error) {
	id, err := requireID(targetID)
	if err != nil {
		return Result{}, err
	}
	return u.run(ctx, ActionInteract, true, dispatch(id))
}

// Attack is the click path. It resolves exactly like Interact but is
// counted under its own action.
func (u UseCase) Attack(ctx context.Context, targetID string) (Result, error) {
	id, err := requireID(targetID)
	if err != nil {
		return Result{}, err
	}
	return u.run(ctx, ActionAttack, true, dispatch(id))
}

func dispatch(id string) step {
	return func(st *session.State, now time.Time) (Result, error) {
		kind, ok := st.World.Kind(id)
		if !ok {
			return Result{TargetID: id}, fmt.Errorf("%w: %s", world.ErrUnknownEntity, id)
		}
		var (
			res Result
			err error
		)
		switch kind {
		case world.EntityNPC:
			res, err = talk(st, id)
			res.Resolved = ActionTalk
		case world.EntityCreature:
			res, err = attack(st, id, now)
			res.Resolved = ActionAttack
		default:
			res, err = harvest(st, id, now)
			res.Resolved = ActionHarvest
		}
		return res, err
	}
}

func talk(st *session.State, id string) (Result, error) {
	npc, _ := st.World.NPC(id)
	offered, line := st.Player.Talk(npc.Template)
	return Result{TargetID: id, Message: line, QuestOffered: offered}, nil
}

func attack(st *session.State, id string, now time.Time) (Result, error) {
	out, err := st.World.Attack(id, st.Player.WeaponPower(), now)
	if err != nil {
		return Result{TargetID: id}, err
	}
	res := Result{TargetID: id, Attack: &out, Message: fmt.Sprintf("Hit for %d! (%d/%d)", out.Damage, out.HP, out.MaxHP)}
	if !out.Slain {
		return res, nil
	}
	if err := st.Player.AwardXP(combatSkill, out.XP); err != nil {
		log.Printf("interaction: award combat xp: %v", err)
	}
	st.Player.ReportProgress(catalog.GoalSlay, out.Kind, 1)
	for _, l := range out.Loot {
		if err := st.Player.AddItem(l.Item, l.Qty); err != nil {
			log.Printf("interaction: loot %s from %s: %v", l.Item, id, err)
		}
	}
	return res, nil
}

func harvest(st *session.State, id string, now time.Time) (Result, error) {
	tool, power, _ := st.Player.HarvestTool()
	out, err := st.World.Harvest(id, tool, power, now)
	if err != nil {
		return Result{TargetID: id}, err
	}
	res := Result{TargetID: id, Harvest: &out}
	if !out.Depleted {
		if tool == catalog.ToolPickaxe {
			res.Message = "Mine..."
		} else {
			res.Message = "Chop..."
		}
		return res, nil
	}
	if err := st.Player.AddItem(out.Yield, 1); err != nil {
		log.Printf("interaction: yield %s from %s: %v", out.Yield, id, err)
	}
	st.Player.ReportProgress(catalog.GoalGather, out.Yield, 1)
	if err := st.Player.AwardXP(out.Skill, out.XP); err != nil {
		log.Printf("interaction: award %s xp: %v", out.Skill, err)
	}
	res.Message = fmt.Sprintf("+1 %s", out.Yield)
	return res, nil
}

func (u UseCase) Craft(ctx context.Context, recipeID string) (Result, error) {
	id, err := requireID(recipeID)
	if err != nil {
		return Result{}, err
	}
	return u.run(ctx, ActionCraft, true, func(st *session.State, _ time.Time) (Result, error) {
		r, err := st.Catalog.Recipe(id)
		if err != nil {
			return Result{TargetID: id}, err
		}
		if err := st.Player.Craft(r); err != nil {
			return Result{TargetID: id}, err
		}
		return Result{TargetID: id, Message: fmt.Sprintf("Crafted %dx %s", r.Output.Qty, r.Output.Item)}, nil
	})
}

func (u UseCase) Equip(ctx context.Context, index int) (Result, error) {
	return u.run(ctx, ActionEquip, true, func(st *session.State, _ time.Time) (Result, error) {
		return Result{}, st.Player.Equip(index)
	})
}

func (u UseCase) Eat(ctx context.Context, index int) (Result, error) {
	return u.run(ctx, ActionEat, true, func(st *session.State, _ time.Time) (Result, error) {
		healed, err := st.Player.ConsumeFood(index)
		return Result{Healed: healed}, err
	})
}

// Drop discards up to qty of itemID; qty <= 0 drops every unit.
func (u UseCase) Drop(ctx context.Context, itemID string, qty int) (Result, error) {
	id, err := requireID(itemID)
	if err != nil {
		return Result{}, err
	}
	return u.run(ctx, ActionDrop, true, func(st *session.State, _ time.Time) (Result, error) {
		n, err := st.Player.DropItem(id, qty)
		return Result{TargetID: id, Dropped: n}, err
	})
}

func (u UseCase) SelectHotbar(ctx context.Context, index int) (Result, error) {
	return u.run(ctx, ActionHotbar, true, func(st *session.State, _ time.Time) (Result, error) {
		return Result{}, st.Player.SelectHotbar(index)
	})
}

// Move places the player on the ground at (x, z). Position is saved with the
// next persisted action rather than on every step.
func (u UseCase) Move(ctx context.Context, x, z float64) (Result, error) {
	return u.run(ctx, ActionMove, false, func(st *session.State, _ time.Time) (Result, error) {
		ground := st.World.Ground()
		st.Player.MoveTo(geo.Vec3{X: x, Y: ground(x, z), Z: z})
		return Result{}, nil
	})
}

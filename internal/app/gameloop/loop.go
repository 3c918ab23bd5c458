package gameloop

import (
	"context"
	"fmt"
	"log"
	"time"

	"runeforge/internal/app/ports"
	"runeforge/internal/app/savegame"
	"runeforge/internal/app/session"
	"runeforge/internal/app/shared/publish"
	"runeforge/internal/domain/event"
)

const (
	DefaultTickRate = 60
	// MaxStep bounds dt so a stalled process does not teleport creatures.
	MaxStep = 50 * time.Millisecond
)

type TickResult struct {
	Revived []string
	Hits    int
	Died    bool
	Events  []event.Event
}

// Loop advances timers, creature aggression and stamina at a fixed rate.
// It mutates state only through the session, like request handlers do.
type Loop struct {
	Session  *session.Session
	SaveGame savegame.UseCase
	Notifier ports.Notifier
	TickRate int
	Now      func() time.Time

	last time.Time
}

func (l *Loop) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

// Run ticks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	rate := l.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := l.Tick(ctx, l.now()); err != nil && ctx.Err() == nil {
				log.Printf("gameloop: tick: %v", err)
			}
		}
	}
}

// Tick runs one simulation step at now. The first tick only anchors the
// clock.
func (l *Loop) Tick(ctx context.Context, now time.Time) (TickResult, error) {
	dt := time.Duration(0)
	if !l.last.IsZero() {
		dt = min(max(now.Sub(l.last), 0), MaxStep)
	}
	l.last = now

	var (
		res     TickResult
		saveErr error
	)
	err := l.Session.Run(ctx, func(st *session.State) error {
		res.Revived = st.World.Advance(now)

		p := st.Player
		hits := st.World.Aggress(dt.Seconds(), now, p.Position(), p.HeadArmor())
		res.Hits = len(hits)
		for _, h := range hits {
			if p.TakeDamage(h.Damage, h.Kind) {
				p.RespawnAtHub(st.World.Ground())
				res.Died = true
				break
			}
		}
		p.RegenStamina(dt.Seconds())

		res.Events = publish.Stamp(append(st.World.Events(), p.Events()...), now)
		if res.Died {
			saveErr = l.SaveGame.Persist(ctx, st.PlayerID, p.Snapshot(), res.Events)
		} else {
			saveErr = l.SaveGame.Record(ctx, st.PlayerID, res.Events)
		}
		return nil
	})
	if err != nil {
		return res, err
	}
	// The tick has already been applied, so its events go out even when
	// storing them failed.
	if l.Notifier != nil && len(res.Events) > 0 {
		l.Notifier.Notify(ctx, res.Events)
	}
	if saveErr != nil {
		return res, fmt.Errorf("store tick events: %w", saveErr)
	}
	return res, nil
}

package gameloop

import (
	"context"
	"testing"
	"time"

	"runeforge/internal/app/ports"
	"runeforge/internal/app/savegame"
	"runeforge/internal/app/session"
	"runeforge/internal/domain/catalog"
	"runeforge/internal/domain/event"
	"runeforge/internal/domain/geo"
	"runeforge/internal/domain/player"
	"runeforge/internal/domain/world"
)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubSaveRepo struct {
	puts   int
	last   ports.SaveRecord
	putErr error
}

func (r *stubSaveRepo) Put(_ context.Context, rec ports.SaveRecord) error {
	if r.putErr != nil {
		return r.putErr
	}
	r.puts++
	r.last = rec
	return nil
}

func (r *stubSaveRepo) Get(context.Context, string) (ports.SaveRecord, error) {
	return ports.SaveRecord{}, ports.ErrNotFound
}

func (r *stubSaveRepo) Delete(context.Context, string) error { return nil }

type stubEventRepo struct {
	events []event.Event
}

func (r *stubEventRepo) Append(_ context.Context, _ string, events []event.Event) error {
	r.events = append(r.events, events...)
	return nil
}

func (r *stubEventRepo) ListByPlayerID(context.Context, string, int) ([]event.Event, error) {
	return r.events, nil
}

type stubNotifier struct {
	batches int
	events  []event.Event
}

func (n *stubNotifier) Notify(_ context.Context, events []event.Event) {
	n.batches++
	n.events = append(n.events, events...)
}

func hasKind(events []event.Event, kind event.Kind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

var t0 = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	loop     *Loop
	session  *session.Session
	saves    *stubSaveRepo
	events   *stubEventRepo
	notifier *stubNotifier
}

// newFixture places one level-0 slime at slimeX next to a player standing at
// the hub.
func newFixture(t *testing.T, slimeX float64) *fixture {
	t.Helper()
	cat := catalog.Default()
	w := world.New(geo.FlatGround)
	slime, ok := cat.Creature("slime")
	if !ok {
		t.Fatalf("slime template missing")
	}
	w.AddCreature(world.NewCreature("slime-1", slime, 0, geo.Vec3{X: slimeX}))

	f := &fixture{
		session:  session.New("p1", cat, player.New(cat), w),
		saves:    &stubSaveRepo{},
		events:   &stubEventRepo{},
		notifier: &stubNotifier{},
	}
	f.loop = &Loop{
		Session: f.session,
		SaveGame: savegame.UseCase{
			TxManager: stubTxManager{},
			Saves:     f.saves,
			Events:    f.events,
			Now:       func() time.Time { return t0 },
		},
		Notifier: f.notifier,
	}
	return f
}

func (f *fixture) state(t *testing.T) *session.State {
	t.Helper()
	var out *session.State
	_ = f.session.Run(context.Background(), func(st *session.State) error {
		out = st
		return nil
	})
	return out
}

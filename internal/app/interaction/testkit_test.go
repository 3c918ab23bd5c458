package interaction

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
	if r.puts == 0 {
		return ports.SaveRecord{}, ports.ErrNotFound
	}
	return r.last, nil
}

func (r *stubSaveRepo) Delete(context.Context, string) error {
	r.puts = 0
	return nil
}

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
	events []event.Event
}

func (n *stubNotifier) Notify(_ context.Context, events []event.Event) {
	n.events = append(n.events, events...)
}

func (n *stubNotifier) kinds() map[event.Kind]int {
	out := map[event.Kind]int{}
	for _, e := range n.events {
		out[e.Kind]++
	}
	return out
}

type stubMetrics struct {
	accepted map[string]int
	rejected map[string]int
	failures map[string]int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{accepted: map[string]int{}, rejected: map[string]int{}, failures: map[string]int{}}
}

func (m *stubMetrics) RecordAccepted(action string) { m.accepted[action]++ }
func (m *stubMetrics) RecordRejected(_, reason string) { m.rejected[reason]++ }
func (m *stubMetrics) RecordFailure(action string) { m.failures[action]++ }

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	uc       UseCase
	session  *session.Session
	saves    *stubSaveRepo
	events   *stubEventRepo
	notifier *stubNotifier
	metrics  *stubMetrics
	clock    *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat := catalog.Default()
	w := world.New(geo.FlatGround)
	tree, _ := cat.Node("tree")
	rock, _ := cat.Node("rock")
	slime, _ := cat.Creature("slime")
	w.AddNode(world.NewNode("tree-1", tree, world.BiomeGrass, geo.Vec3{X: 3}))
	w.AddNode(world.NewNode("rock-1", rock, world.BiomeGrass, geo.Vec3{X: -3}))
	w.AddCreature(world.NewCreature("slime-1", slime, 0, geo.Vec3{X: 40}))
	for _, npc := range cat.NPCs() {
		w.AddNPC(world.NPC{ID: npc.ID, Name: npc.Name, Template: npc})
	}

	f := &fixture{
		session:  session.New("p1", cat, player.New(cat), w),
		saves:    &stubSaveRepo{},
		events:   &stubEventRepo{},
		notifier: &stubNotifier{},
		metrics:  newStubMetrics(),
		clock:    &fakeClock{now: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)},
	}
	f.uc = UseCase{
		Session: f.session,
		SaveGame: savegame.UseCase{
			TxManager: stubTxManager{},
			Saves:     f.saves,
			Events:    f.events,
			Now:       f.clock.Now,
		},
		Notifier: f.notifier,
		Metrics:  f.metrics,
		Now:      f.clock.Now,
	}
	return f
}

func (f *fixture) player(t *testing.T) *player.Player {
	t.Helper()
	var p *player.Player
	_ = f.session.Run(context.Background(), func(st *session.State) error {
		p = st.Player
		return nil
	})
	return p
}

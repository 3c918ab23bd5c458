package httpadapter

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	metricsinmem "runeforge/internal/adapter/metrics/inmemory"
	"runeforge/internal/adapter/repo/memory"
	"runeforge/internal/app/interaction"
	"runeforge/internal/app/journal"
	"runeforge/internal/app/savegame"
	"runeforge/internal/app/session"
	"runeforge/internal/app/status"
	"runeforge/internal/domain/catalog"
	"runeforge/internal/domain/geo"
	"runeforge/internal/domain/player"
	"runeforge/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
)

func newTestHandler(t *testing.T) Handler {
	t.Helper()
	cat := catalog.Default()
	w := world.New(geo.FlatGround)
	tree, _ := cat.Node("tree")
	rock, _ := cat.Node("rock")
	w.AddNode(world.NewNode("tree-1", tree, world.BiomeGrass, geo.Vec3{X: 3}))
	w.AddNode(world.NewNode("rock-1", rock, world.BiomeGrass, geo.Vec3{X: -3}))
	for _, npc := range cat.NPCs() {
		w.AddNPC(world.NPC{ID: npc.ID, Name: npc.Name, Template: npc})
	}
	sess := session.New("p1", cat, player.New(cat), w)

	store := memory.NewStore()
	now := func() time.Time { return time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC) }
	saves := savegame.UseCase{
		TxManager: memory.NewTxManager(store),
		Saves:     memory.NewSaveRepo(store),
		Events:    memory.NewEventRepo(store),
		Now:       now,
	}
	kpi := metricsinmem.NewRecorder()
	return Handler{
		Session: sess,
		InteractionUC: interaction.UseCase{
			Session:  sess,
			SaveGame: saves,
			Metrics:  kpi,
			Now:      now,
		},
		StatusUC:   status.UseCase{Session: sess},
		JournalUC:  journal.UseCase{Events: memory.NewEventRepo(store)},
		SaveGameUC: saves,
		Catalog:    cat,
		KPI:        kpi,
	}
}

type handlerFunc func(context.Context, *app.RequestContext)

func call(t *testing.T, fn handlerFunc, body string) (int, map[string]any) {
	t.Helper()
	ctx := &app.RequestContext{}
	if body != "" {
		ctx.Request.SetBody([]byte(body))
	}
	fn(context.Background(), ctx)
	var out map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &out); err != nil {
		t.Fatalf("unmarshal response %q: %v", ctx.Response.Body(), err)
	}
	return ctx.Response.StatusCode(), out
}

func errorField(t *testing.T, body map[string]any, key string) any {
	t.Helper()
	e, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("response has no error object: %v", body)
	}
	return e[key]
}

package session

import (
	"context"
	"sync"

	"runeforge/internal/domain/catalog"
	"runeforge/internal/domain/player"
	"runeforge/internal/domain/world"
)

// State is everything one play session mutates. It is only reachable
// through Session.Run.
type State struct {
	PlayerID string
	Catalog  *catalog.Catalog
	Player   *player.Player
	World    *world.World
}

// Session serialises every mutation of one player's game. Request handlers
// and the game loop share it, so no two callers ever touch State at once.
type Session struct {
	mu    sync.Mutex
	state State
}

func New(playerID string, cat *catalog.Catalog, p *player.Player, w *world.World) *Session {
	return &Session{state: State{PlayerID: playerID, Catalog: cat, Player: p, World: w}}
}

func (s *Session) PlayerID() string {
	return s.state.PlayerID
}

// Run calls fn with exclusive access to the state. fn may replace
// State.Player (load, reset) but must not keep the pointer after returning.
func (s *Session) Run(ctx context.Context, fn func(st *State) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.state)
}

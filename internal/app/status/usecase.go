package status

import (
	"context"

	"runeforge/internal/app/session"
	"runeforge/internal/domain/player"
	"runeforge/internal/domain/progression"
)

type UseCase struct {
	Session *session.Session
}

// Execute builds a read-only view of the session. Slices are never nil so
// clients always see arrays.
func (u UseCase) Execute(ctx context.Context) (Response, error) {
	var resp Response
	err := u.Session.Run(ctx, func(st *session.State) error {
		p := st.Player
		resp = Response{
			PlayerID:        st.PlayerID,
			Vitals:          p.Vitals(),
			Position:        p.Position(),
			Hotbar:          p.Hotbar(),
			Stacks:          p.DisplayStacks(),
			Equipment:       p.Equipment(),
			Skills:          []Skill{},
			ActiveQuests:    p.ActiveQuests(),
			CompletedQuests: []string{},
			Craftable:       []string{},
			World:           st.World.Counts(),
		}
		if def, ok := p.ActiveItem(); ok {
			resp.ActiveItem = def.ID
		}
		skills := p.Skills()
		for _, name := range skills.Names() {
			s := skills[name]
			resp.Skills = append(resp.Skills, Skill{
				Name:     name,
				Level:    s.Level,
				XP:       s.XP,
				XPToNext: progression.XPToNext(s.Level),
			})
		}
		for _, q := range p.CompletedQuests() {
			resp.CompletedQuests = append(resp.CompletedQuests, q.ID)
		}
		for _, r := range st.Catalog.Recipes() {
			if p.CanCraft(r) {
				resp.Craftable = append(resp.Craftable, r.ID)
			}
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	if resp.Stacks == nil {
		resp.Stacks = []player.Stack{}
	}
	if resp.ActiveQuests == nil {
		resp.ActiveQuests = []player.Quest{}
	}
	return resp, nil
}

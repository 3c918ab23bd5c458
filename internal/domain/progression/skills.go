package progression

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownSkill = errors.New("unknown skill")

type UnknownSkillError struct {
	Skill string
}

func (e *UnknownSkillError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownSkill.Error(), e.Skill)
}

func (e *UnknownSkillError) Unwrap() error {
	return ErrUnknownSkill
}

type SkillState struct {
	Level int `json:"level"`
	XP    int `json:"xp"`
}

type LevelUp struct {
	Skill string
	Level int
}

// Skills is the progression ledger keyed by skill id. Skills are only ever
// created by NewSkills; Award never adds a key.
type Skills map[string]SkillState

func NewSkills(names ...string) Skills {
	s := make(Skills, len(names))
	for _, name := range names {
		s[name] = SkillState{Level: 1}
	}
	return s
}

func (s Skills) Has(skill string) bool {
	_, ok := s[skill]
	return ok
}

func (s Skills) Level(skill string) int {
	st, ok := s[skill]
	if !ok {
		return 0
	}
	return st.Level
}

// Award adds xp and levels up as many times as the total allows.
func (s Skills) Award(skill string, amount int) ([]LevelUp, error) {
	st, ok := s[skill]
	if !ok {
		return nil, &UnknownSkillError{Skill: skill}
	}
	if amount <= 0 {
		return nil, nil
	}
	st.XP += amount
	var ups []LevelUp
	for st.XP >= XPToNext(st.Level) {
		st.XP -= XPToNext(st.Level)
		st.Level++
		ups = append(ups, LevelUp{Skill: skill, Level: st.Level})
	}
	s[skill] = st
	return ups, nil
}

// Normalize repairs states read from untrusted saves.
func (s Skills) Normalize() {
	for name, st := range s {
		if st.Level < 1 {
			st.Level = 1
		}
		if st.XP < 0 {
			st.XP = 0
		}
		for st.XP >= XPToNext(st.Level) {
			st.XP -= XPToNext(st.Level)
			st.Level++
		}
		s[name] = st
	}
}

func (s Skills) Names() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (s Skills) Clone() Skills {
	out := make(Skills, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

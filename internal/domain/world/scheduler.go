package world

import (
	"sort"
	"time"
)

// Respawn is a pending revival. Epoch ties it to the scheduler generation
// it was created in; Reset starts a new generation.
type Respawn struct {
	EntityID string
	Due      time.Time
	Epoch    uint64
}

// Scheduler holds at most one pending respawn per entity and is polled by
// World.Advance rather than firing on its own.
type Scheduler struct {
	epoch   uint64
	pending map[string]Respawn
}

func NewScheduler() *Scheduler {
	return &Scheduler{pending: map[string]Respawn{}}
}

// Schedule registers a respawn unless one is already pending for id.
func (s *Scheduler) Schedule(id string, due time.Time) bool {
	if _, ok := s.pending[id]; ok {
		return false
	}
	s.pending[id] = Respawn{EntityID: id, Due: due, Epoch: s.epoch}
	return true
}

// Due removes and returns every current-generation entry due at or before
// now, ordered by due time then id.
func (s *Scheduler) Due(now time.Time) []Respawn {
	var out []Respawn
	for id, r := range s.pending {
		if r.Epoch != s.epoch {
			delete(s.pending, id)
			continue
		}
		if r.Due.After(now) {
			continue
		}
		out = append(out, r)
		delete(s.pending, id)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Due.Equal(out[j].Due) {
			return out[i].EntityID < out[j].EntityID
		}
		return out[i].Due.Before(out[j].Due)
	})
	return out
}

func (s *Scheduler) Cancel(id string) bool {
	_, ok := s.pending[id]
	delete(s.pending, id)
	return ok
}

// Reset invalidates every pending entry.
func (s *Scheduler) Reset() {
	s.epoch++
	s.pending = map[string]Respawn{}
}

func (s *Scheduler) Epoch() uint64 {
	return s.epoch
}

func (s *Scheduler) Pending(id string) (Respawn, bool) {
	r, ok := s.pending[id]
	return r, ok
}

func (s *Scheduler) Len() int {
	return len(s.pending)
}

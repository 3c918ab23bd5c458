package world

import (
	"errors"
	"fmt"
	"time"

	"runeforge/internal/domain/catalog"
)

var (
	ErrOnCooldown     = errors.New("target on cooldown")
	ErrWrongTool      = errors.New("wrong tool")
	ErrTargetInactive = errors.New("target inactive")
	ErrUnknownEntity  = errors.New("unknown entity")
)

type CooldownError struct {
	EntityID  string
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s: %s ready in %s", ErrOnCooldown.Error(), e.EntityID, e.Remaining)
}

func (e *CooldownError) Unwrap() error {
	return ErrOnCooldown
}

// RemainingMillis rounds up to whole milliseconds, never below 1.
func (e *CooldownError) RemainingMillis() int64 {
	ms := int64((e.Remaining + time.Millisecond - 1) / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	return ms
}

type WrongToolError struct {
	EntityID string
	Required catalog.ToolKind
}

func (e *WrongToolError) Error() string {
	return fmt.Sprintf("%s: you need a %s equipped", ErrWrongTool.Error(), e.Required)
}

func (e *WrongToolError) Unwrap() error {
	return ErrWrongTool
}

func unknownEntity(id string) error {
	return fmt.Errorf("%w: %s", ErrUnknownEntity, id)
}

func inactive(id string) error {
	return fmt.Errorf("%w: %s", ErrTargetInactive, id)
}

// remaining reports how much of window is left since last. A zero last
// means the window never started.
func remaining(last time.Time, window time.Duration, now time.Time) (time.Duration, bool) {
	if last.IsZero() {
		return 0, false
	}
	left := window - now.Sub(last)
	if left <= 0 {
		return 0, false
	}
	return left, true
}

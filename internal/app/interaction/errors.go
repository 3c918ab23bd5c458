package interaction

import (
	"errors"
	"fmt"

	"runeforge/internal/domain/player"
	"runeforge/internal/domain/progression"
	"runeforge/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid interaction request")

type rejection struct {
	err  error
	code string
}

// Order matters only for errors wrapping more than one sentinel.
var rejections = []rejection{
	{world.ErrOnCooldown, "ON_COOLDOWN"},
	{world.ErrWrongTool, "WRONG_TOOL"},
	{world.ErrTargetInactive, "TARGET_INACTIVE"},
	{player.ErrInsufficientQuantity, "INSUFFICIENT_QUANTITY"},
	{player.ErrInsufficientIngredients, "INSUFFICIENT_INGREDIENTS"},
	{player.ErrRequirementNotMet, "REQUIREMENT_NOT_MET"},
	{player.ErrNotEquippable, "NOT_EQUIPPABLE"},
	{player.ErrNotFood, "NOT_FOOD"},
	{player.ErrInvalidIndex, "INVALID_INDEX"},
	{progression.ErrUnknownSkill, "UNKNOWN_SKILL"},
}

// IsRejection reports whether err is a recoverable, user-visible refusal
// rather than a failure of the system.
func IsRejection(err error) bool {
	return RejectionCode(err) != ""
}

// RejectionCode is the stable code for a rejection, or "" when err is not one.
func RejectionCode(err error) string {
	if err == nil {
		return ""
	}
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			return r.code
		}
	}
	return ""
}

// toastFor turns a rejection into the short message shown to the player.
func toastFor(err error) string {
	var (
		cooldown    *world.CooldownError
		wrongTool   *world.WrongToolError
		requirement *player.RequirementError
		ingredients *player.IngredientsError
	)
	switch {
	case errors.As(err, &wrongTool):
		return fmt.Sprintf("You need a %s equipped.", wrongTool.Required)
	case errors.As(err, &cooldown):
		return "Not ready yet."
	case errors.As(err, &requirement):
		return fmt.Sprintf("Requires %s %d", requirement.Skill, requirement.Required)
	case errors.As(err, &ingredients):
		return "Missing ingredients."
	case errors.Is(err, world.ErrTargetInactive):
		return "Nothing to do here right now."
	case errors.Is(err, player.ErrNotFood):
		return "You can't eat that."
	case errors.Is(err, player.ErrNotEquippable):
		return "You can't equip that."
	case errors.Is(err, player.ErrInsufficientQuantity):
		return "You don't have enough."
	default:
		return err.Error()
	}
}

package player

import (
	"errors"
	"fmt"
	"strings"

	"runeforge/internal/domain/catalog"
)

var (
	ErrUnknownItem             = errors.New("unknown item")
	ErrInsufficientQuantity    = errors.New("insufficient quantity")
	ErrInsufficientIngredients = errors.New("insufficient ingredients")
	ErrRequirementNotMet       = errors.New("requirement not met")
	ErrNotEquippable           = errors.New("item cannot be equipped")
	ErrNotFood                 = errors.New("item is not food")
	ErrInvalidIndex            = errors.New("invalid inventory index")
	ErrCorruptSave             = errors.New("corrupt save")
)

// UnknownItemError marks the degraded path of AddItem: the item was still
// added, with id-only metadata.
type UnknownItemError struct {
	Item string
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownItem.Error(), e.Item)
}

func (e *UnknownItemError) Unwrap() error {
	return ErrUnknownItem
}

type QuantityError struct {
	Item string
	Want int
	Have int
}

func (e *QuantityError) Error() string {
	return fmt.Sprintf("%s: %s want=%d have=%d", ErrInsufficientQuantity.Error(), e.Item, e.Want, e.Have)
}

func (e *QuantityError) Unwrap() error {
	return ErrInsufficientQuantity
}

type IngredientsError struct {
	Recipe  string
	Missing []catalog.ItemQty
}

func (e *IngredientsError) Error() string {
	parts := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		parts = append(parts, fmt.Sprintf("%dx %s", m.Qty, m.Item))
	}
	return fmt.Sprintf("%s for %s: missing %s", ErrInsufficientIngredients.Error(), e.Recipe, strings.Join(parts, ", "))
}

func (e *IngredientsError) Unwrap() error {
	return ErrInsufficientIngredients
}

type RequirementError struct {
	Item     string
	Skill    string
	Required int
	Current  int
}

func (e *RequirementError) Error() string {
	return fmt.Sprintf("%s: %s requires %s %d (have %d)", ErrRequirementNotMet.Error(), e.Item, e.Skill, e.Required, e.Current)
}

func (e *RequirementError) Unwrap() error {
	return ErrRequirementNotMet
}

func invalidIndex(index int) error {
	return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
}

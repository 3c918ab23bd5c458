package catalog

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrUnknownRecipe  = errors.New("unknown recipe")
)

type UnknownRecipeError struct {
	RecipeID   string
	Suggestion string
}

func (e *UnknownRecipeError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %q (did you mean %q?)", ErrUnknownRecipe.Error(), e.RecipeID, e.Suggestion)
	}
	return fmt.Sprintf("%s: %q", ErrUnknownRecipe.Error(), e.RecipeID)
}

func (e *UnknownRecipeError) Unwrap() error {
	return ErrUnknownRecipe
}

// Catalog is read-only after New returns and safe to share between sessions.
type Catalog struct {
	file      File
	skills    map[string]struct{}
	items     map[string]ItemDefinition
	recipes   map[string]Recipe
	quests    map[string]QuestTemplate
	nodes     map[string]NodeTemplate
	creatures map[string]CreatureTemplate
}

// New validates f and indexes it. Every violation is reported, joined.
func New(f File) (*Catalog, error) {
	c := &Catalog{
		file:      f,
		skills:    make(map[string]struct{}, len(f.Skills)),
		items:     make(map[string]ItemDefinition, len(f.Items)),
		recipes:   make(map[string]Recipe, len(f.Recipes)),
		quests:    make(map[string]QuestTemplate, len(f.Quests)),
		nodes:     make(map[string]NodeTemplate, len(f.Nodes)),
		creatures: make(map[string]CreatureTemplate, len(f.Creatures)),
	}
	for _, s := range f.Skills {
		c.skills[s] = struct{}{}
	}
	for _, it := range f.Items {
		c.items[it.ID] = it
	}
	for _, r := range f.Recipes {
		c.recipes[r.ID] = r
	}
	for _, q := range f.Quests {
		c.quests[q.ID] = q
	}
	for _, n := range f.Nodes {
		c.nodes[n.Kind] = n
	}
	for _, cr := range f.Creatures {
		c.creatures[cr.Kind] = cr
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) File() File {
	return c.file
}

func (c *Catalog) Skills() []string {
	return append([]string(nil), c.file.Skills...)
}

func (c *Catalog) HasSkill(skill string) bool {
	_, ok := c.skills[skill]
	return ok
}

func (c *Catalog) Item(id string) (ItemDefinition, bool) {
	it, ok := c.items[id]
	return it, ok
}

func (c *Catalog) Recipe(id string) (Recipe, error) {
	r, ok := c.recipes[id]
	if !ok {
		return Recipe{}, &UnknownRecipeError{RecipeID: id, Suggestion: c.SuggestRecipe(id)}
	}
	return r, nil
}

// Recipes lists recipes in catalog order.
func (c *Catalog) Recipes() []Recipe {
	return append([]Recipe(nil), c.file.Recipes...)
}

func (c *Catalog) Quest(id string) (QuestTemplate, bool) {
	q, ok := c.quests[id]
	return q, ok
}

func (c *Catalog) Nodes() []NodeTemplate {
	return append([]NodeTemplate(nil), c.file.Nodes...)
}

func (c *Catalog) Node(kind string) (NodeTemplate, bool) {
	n, ok := c.nodes[kind]
	return n, ok
}

func (c *Catalog) Creatures() []CreatureTemplate {
	return append([]CreatureTemplate(nil), c.file.Creatures...)
}

func (c *Catalog) Creature(kind string) (CreatureTemplate, bool) {
	cr, ok := c.creatures[kind]
	return cr, ok
}

func (c *Catalog) NPCs() []NPCTemplate {
	return append([]NPCTemplate(nil), c.file.NPCs...)
}

func (c *Catalog) Player() PlayerTemplate {
	return c.file.Player
}

func (c *Catalog) ItemIDs() []string {
	out := make([]string, 0, len(c.items))
	for id := range c.items {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) RecipeIDs() []string {
	out := make([]string, 0, len(c.recipes))
	for id := range c.recipes {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far a typo may drift before we stop guessing.
const maxSuggestDistance = 3

func closest(input string, candidates []string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, cand := range candidates {
		d := levenshtein.ComputeDistance(input, cand)
		if d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}

func (c *Catalog) SuggestRecipe(id string) string {
	return closest(id, c.RecipeIDs())
}

func (c *Catalog) SuggestItem(id string) string {
	return closest(id, c.ItemIDs())
}

package llm

import (
	"strings"

	"github.com/rogeonee/recipes/internal/recipe"
)

// mergeEnrichment builds a new Recipe from base plus the enrichment
// payload. A present field is never overwritten by a proposal; only nulls
// and empties fill in. Tags are the exception: proposed tags, cuisines, and
// methods union into the existing set regardless. Total time recomputes via
// the prep+cook fallback when still absent.
func mergeEnrichment(base *recipe.Recipe, p *enrichment) (*recipe.Recipe, error) {
	merged := *base
	merged.Ingredients = append([]recipe.Ingredient(nil), base.Ingredients...)
	merged.Steps = append([]recipe.Step(nil), base.Steps...)

	if merged.Title == "" {
		merged.Title = strings.TrimSpace(p.Title)
	}
	if merged.Description == "" {
		merged.Description = strings.TrimSpace(p.Description)
	}
	if merged.Yield.Servings == nil {
		merged.Yield.Servings = p.Servings
	}
	if merged.Yield.Original == "" {
		merged.Yield.Original = strings.TrimSpace(p.ServingsText)
	}
	if merged.Time.Prep == nil {
		merged.Time.Prep = p.PrepMinutes
	}
	if merged.Time.Cook == nil {
		merged.Time.Cook = p.CookMinutes
	}
	if merged.Time.Total == nil {
		merged.Time.Total = p.TotalMinutes
	}
	if merged.Time.Total == nil && merged.Time.Prep != nil && merged.Time.Cook != nil {
		if sum := *merged.Time.Prep + *merged.Time.Cook; sum > 0 {
			merged.Time.Total = &sum
		}
	}

	var proposed []string
	proposed = append(proposed, p.Tags...)
	proposed = append(proposed, p.Cuisines...)
	proposed = append(proposed, p.Methods...)
	merged.Tags = recipe.AddTags(base.Tags, proposed...)

	if err := recipe.Validate(&merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

package recipe

import (
	"net/url"
	"strings"
	"time"
)

// UnitSystem classifies the measurement system a recipe's ingredient list
// leans on. Mixed or unit-free lists default to Metric.
type UnitSystem string

const (
	Metric UnitSystem = "metric"
	US     UnitSystem = "us"
)

// Ingredient is one parsed ingredient line. Original always holds the
// verbatim decoded line; the remaining fields are best-effort parses.
type Ingredient struct {
	Original string   `json:"original"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Item     string   `json:"item,omitempty"`
	Note     string   `json:"note,omitempty"`
}

// Step is one cooking instruction. N is the 1-based position in the
// normalized sequence, contiguous regardless of gaps in the source.
type Step struct {
	N    int    `json:"n"`
	Text string `json:"text"`
}

// Yield carries the verbatim yield text plus a best-effort servings count.
type Yield struct {
	Servings *int   `json:"servings,omitempty"`
	Original string `json:"original,omitempty"`
}

// Times holds durations in whole minutes.
type Times struct {
	Prep  *int `json:"prep,omitempty"`
	Cook  *int `json:"cook,omitempty"`
	Total *int `json:"total,omitempty"`
}

// DietFlags is reserved in the output schema. Nothing in this pipeline
// populates it.
type DietFlags struct {
	Vegan      *bool `json:"vegan,omitempty"`
	Vegetarian *bool `json:"vegetarian,omitempty"`
	GlutenFree *bool `json:"glutenFree,omitempty"`
	DairyFree  *bool `json:"dairyFree,omitempty"`
}

// Source records where and when the recipe was extracted.
type Source struct {
	URL       string    `json:"url"`
	Domain    string    `json:"domain,omitempty"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Recipe is the canonical output record. Normalizers construct it once and
// never mutate it afterwards; enrichment builds a new Recipe via merge.
type Recipe struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Image       string       `json:"image,omitempty"`
	Author      string       `json:"author,omitempty"`
	Yield       Yield        `json:"yield"`
	Time        Times        `json:"time"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
	Tags        []string     `json:"tags,omitempty"`
	DietFlags   DietFlags    `json:"dietFlags"`
	Units       UnitSystem   `json:"units"`
	Source      Source       `json:"source"`
	LLMNotes    string       `json:"llmNotes,omitempty"`
}

// StructurallyComplete reports whether the recipe has at least one
// ingredient and one step. The cascade short-circuits on this predicate.
func (r *Recipe) StructurallyComplete() bool {
	return r != nil && len(r.Ingredients) > 0 && len(r.Steps) > 0
}

// NewSource builds a Source for the given URL, stamping the current time.
// Domain is left empty when the URL does not parse.
func NewSource(rawURL string, now time.Time) Source {
	s := Source{URL: rawURL, FetchedAt: now}
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		s.Domain = u.Hostname()
	}
	return s
}

// AddTags appends tags to the recipe's tag list, lowercasing each and
// dropping case-insensitive duplicates while preserving insertion order.
func AddTags(existing []string, more ...string) []string {
	seen := make(map[string]struct{}, len(existing)+len(more))
	out := make([]string, 0, len(existing)+len(more))
	for _, t := range existing {
		k := strings.ToLower(strings.TrimSpace(t))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	for _, t := range more {
		k := strings.ToLower(strings.TrimSpace(t))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

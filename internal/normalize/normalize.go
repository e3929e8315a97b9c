// Package normalize maps raw extraction candidates, either schema.org-ish
// objects from JSON-LD/microdata or selector scrapes, into the canonical
// Recipe record.
package normalize

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/rogeonee/recipes/internal/extract"
	"github.com/rogeonee/recipes/internal/norm"
	"github.com/rogeonee/recipes/internal/recipe"
)

// FromStructured builds a Recipe from a JSON-LD or microdata object. A
// validation failure is recoverable; callers fall through to the next
// strategy.
func FromStructured(obj map[string]any, src recipe.Source) (*recipe.Recipe, error) {
	r := &recipe.Recipe{
		Title:       decoded(norm.ToText(obj["name"])),
		Description: decoded(norm.ToText(obj["description"])),
		Image:       firstURL(obj["image"]),
		Author:      firstName(obj["author"]),
		Yield:       parseYield(obj["recipeYield"]),
		Source:      src,
	}

	r.Time.Prep = norm.MinutesFromISODuration(obj["prepTime"])
	r.Time.Cook = norm.MinutesFromISODuration(obj["cookTime"])
	r.Time.Total = norm.MinutesFromISODuration(obj["totalTime"])

	lines := obj["recipeIngredient"]
	if lines == nil {
		lines = obj["ingredients"]
	}
	for _, line := range norm.ToTextSlice(lines) {
		if ing := norm.ParseIngredientLine(line); ing != nil {
			r.Ingredients = append(r.Ingredients, *ing)
		}
	}

	r.Steps = norm.NormalizeSteps(flattenInstructions(obj["recipeInstructions"]))

	var tags []string
	for _, key := range []string{"keywords", "recipeCategory", "recipeCuisine"} {
		tags = append(tags, norm.ToTextSlice(obj[key])...)
	}
	r.Tags = recipe.AddTags(nil, tags...)

	finishTimes(r)
	r.Units = norm.InferUnitSystem(r.Ingredients)

	if err := recipe.Validate(r); err != nil {
		return nil, err
	}
	return r, nil
}

// FromScrape builds a Recipe from a selector scrape. Only title, image,
// ingredients, and steps can come from heuristics; the rest stays empty.
func FromScrape(sc *extract.Scrape, src recipe.Source, notes string) (*recipe.Recipe, error) {
	r := &recipe.Recipe{
		Title:    decoded(sc.Title),
		Image:    sc.Image,
		Source:   src,
		LLMNotes: notes,
	}
	for _, line := range sc.Ingredients {
		if ing := norm.ParseIngredientLine(line); ing != nil {
			r.Ingredients = append(r.Ingredients, *ing)
		}
	}
	r.Steps = norm.NormalizeSteps(sc.Steps)
	finishTimes(r)
	r.Units = norm.InferUnitSystem(r.Ingredients)
	if err := recipe.Validate(r); err != nil {
		return nil, err
	}
	return r, nil
}

// finishTimes scans instruction text for a cook-time signal when structured
// timing is absent, then applies the prep+cook fallback for total.
func finishTimes(r *recipe.Recipe) {
	if r.Time.Prep == nil && r.Time.Cook == nil && r.Time.Total == nil {
		texts := make([]string, len(r.Steps))
		for i, s := range r.Steps {
			texts[i] = s.Text
		}
		r.Time.Cook = norm.ScanTextMinutes(texts)
	}
	if r.Time.Total == nil && r.Time.Prep != nil && r.Time.Cook != nil {
		if sum := *r.Time.Prep + *r.Time.Cook; sum > 0 {
			r.Time.Total = &sum
		}
	}
}

func decoded(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}

// firstURL resolves string | {url} | array-of-either to the first URL.
func firstURL(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		return strings.TrimSpace(norm.ToText(t["url"]))
	case []any:
		for _, e := range t {
			if u := firstURL(e); u != "" {
				return u
			}
		}
	}
	return ""
}

// firstName resolves string | {name} | array-of-either to the first name.
func firstName(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		return strings.TrimSpace(norm.ToText(t["name"]))
	case []any:
		for _, e := range t {
			if n := firstName(e); n != "" {
				return n
			}
		}
	}
	return ""
}

var (
	repeatedNumberRe = regexp.MustCompile(`^(\d+)\s+(\d+)\b`)
	servingsRe       = regexp.MustCompile(`(\d+)\s*(?:servings?|serves?|people|portions?)?`)
)

// parseYield reads recipeYield: a bare number maps straight to servings,
// anything else is coerced to text, de-duplicated when the number repeats
// ("4 4 people"), and scanned for a servings count.
func parseYield(v any) recipe.Yield {
	if f, ok := v.(float64); ok && f >= 0 {
		n := int(f)
		return recipe.Yield{Servings: &n, Original: strconv.Itoa(n)}
	}
	text := decoded(norm.ToText(v))
	if text == "" {
		return recipe.Yield{}
	}
	if m := repeatedNumberRe.FindStringSubmatch(text); m != nil && m[1] == m[2] {
		text = strings.TrimSpace(text[len(m[1]):])
	}
	y := recipe.Yield{Original: text}
	if m := servingsRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 0 {
			y.Servings = &n
		}
	}
	return y
}

// flattenInstructions reduces recipeInstructions to an ordered string list:
// a plain string splits on newlines, arrays flatten recursively through
// HowToSection-style itemListElement nesting, and step objects contribute
// their text or name.
func flattenInstructions(v any) []string {
	var out []string
	switch t := v.(type) {
	case string:
		for _, line := range strings.Split(t, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
	case []any:
		for _, e := range t {
			out = append(out, flattenInstructions(e)...)
		}
	case map[string]any:
		if nested, ok := t["itemListElement"]; ok {
			out = append(out, flattenInstructions(nested)...)
			break
		}
		text := norm.ToText(t["text"])
		if text == "" {
			text = norm.ToText(t["name"])
		}
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}

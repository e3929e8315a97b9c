package norm

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/rogeonee/recipes/internal/recipe"
)

var servesRe = regexp.MustCompile(`(?i)^(serves?|servings?)\b`)

// IsSectionHeading reports whether a line is a section marker rather than a
// cooking action: a short all-caps line like "FOR THE GLAZE", anything
// starting with "for the", or a serves/servings note.
func IsSectionHeading(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	lower := strings.ToLower(line)
	if strings.HasPrefix(lower, "for the") {
		return true
	}
	if servesRe.MatchString(line) {
		return true
	}
	words := strings.Fields(line)
	if len(words) > 4 {
		return false
	}
	sawLetter := false
	for _, r := range line {
		if !unicode.IsLetter(r) {
			continue
		}
		sawLetter = true
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return sawLetter
}

// NormalizeSteps turns a list of strings or {text}-shaped objects into the
// canonical step sequence: entity-decoded, trimmed, empties and section
// headings dropped, numbered contiguously from 1.
func NormalizeSteps(v any) []recipe.Step {
	var lines []string
	switch t := v.(type) {
	case []string:
		lines = t
	case []any:
		for _, e := range t {
			switch el := e.(type) {
			case string:
				lines = append(lines, el)
			case map[string]any:
				text := ToText(el["text"])
				if text == "" {
					text = ToText(el["name"])
				}
				lines = append(lines, text)
			}
		}
	case string:
		lines = strings.Split(t, "\n")
	}

	var steps []recipe.Step
	for _, line := range lines {
		text := strings.TrimSpace(html.UnescapeString(line))
		if text == "" || IsSectionHeading(text) {
			continue
		}
		steps = append(steps, recipe.Step{N: len(steps) + 1, Text: text})
	}
	return steps
}

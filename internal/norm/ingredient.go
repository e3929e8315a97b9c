package norm

import (
	"html"
	"regexp"
	"strings"

	"github.com/rogeonee/recipes/internal/recipe"
)

var (
	rangeRe  = regexp.MustCompile(`^(` + numberPattern + `)\s*(?:-|to)\s*(` + numberPattern + `)`)
	singleRe = regexp.MustCompile(`^(` + numberPattern + `)`)
	unitRe   = regexp.MustCompile(`^([A-Za-z.]+)\b`)
)

// ParseIngredientLine parses one raw ingredient line into quantity, unit,
// item, and note. The returned Original is the decoded, whitespace-collapsed
// line before fraction substitution. Returns nil for lines that are empty
// after cleanup.
//
// Quantity handles integers, decimals, fractions, and mixed numbers, plus
// leading ranges ("3-4", "2 to 3") which take the lower bound and record the
// range in the note. A token is consumed as a unit only when it is in the
// known-unit set, so adjectives like "large" never become units. Parenthesized
// remarks and text after the first top-level comma collect into the note.
func ParseIngredientLine(line string) *recipe.Ingredient {
	original := strings.Join(strings.Fields(html.UnescapeString(line)), " ")
	if original == "" {
		return nil
	}
	s := normalizeDashes(ExpandFractions(original))

	ing := &recipe.Ingredient{Original: original}
	var notes []string

	if m := rangeRe.FindStringSubmatch(s); m != nil {
		lo, okLo := parseNumber(m[1])
		hi, okHi := parseNumber(m[2])
		if okLo && okHi {
			q := lo
			if hi < q {
				q = hi
			}
			ing.Quantity = &q
			if lo != hi {
				notes = append(notes, "range "+m[1]+" - "+m[2])
			}
			s = strings.TrimSpace(s[len(m[0]):])
		}
	} else if m := singleRe.FindStringSubmatch(s); m != nil {
		if q, ok := parseNumber(m[1]); ok {
			ing.Quantity = &q
			s = strings.TrimSpace(s[len(m[0]):])
		}
	}

	// Parenthesized prefix remarks, e.g. "(about 2 lbs) chicken".
	for strings.HasPrefix(s, "(") {
		inner, rest, ok := splitParen(s)
		if !ok {
			break
		}
		notes = append(notes, inner)
		s = strings.TrimSpace(rest)
	}

	if m := unitRe.FindStringSubmatch(s); m != nil {
		if unit, ok := CanonicalUnit(m[1]); ok {
			ing.Unit = unit
			s = strings.TrimSpace(s[len(m[0]):])
		}
	}

	// Trailing parenthesized remarks, innermost-last.
	for strings.HasSuffix(s, ")") {
		body, inner, ok := splitTrailingParen(s)
		if !ok {
			break
		}
		notes = append(notes, inner)
		s = strings.TrimSpace(body)
	}

	item := s
	if i := topLevelComma(s); i >= 0 {
		item = strings.TrimSpace(s[:i])
		if after := strings.TrimSpace(s[i+1:]); after != "" {
			notes = append(notes, after)
		}
	}

	if len(item) >= 3 && strings.EqualFold(item[:3], "of ") {
		item = strings.TrimSpace(item[3:])
	}
	item = strings.TrimRight(item, "* ")
	item = strings.TrimLeft(item, "-.,; ")
	if item != "" {
		ing.Item = item
	}

	cleaned := make([]string, 0, len(notes))
	for _, n := range notes {
		n = strings.TrimLeft(n, ",;. ")
		n = strings.TrimRight(n, "* ")
		if n != "" {
			cleaned = append(cleaned, n)
		}
	}
	if len(cleaned) > 0 {
		ing.Note = strings.Join(cleaned, "; ")
	}
	return ing
}

// splitParen splits "(inner) rest" into inner and rest, balancing nesting.
func splitParen(s string) (inner, rest string, ok bool) {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[1:i]), s[i+1:], true
			}
		}
	}
	return "", "", false
}

// splitTrailingParen splits "body (inner)" into body and inner.
func splitTrailingParen(s string) (body, inner string, ok bool) {
	depth := 0
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return s[:i], strings.TrimSpace(s[i+1 : len(s)-1]), true
			}
		}
	}
	return "", "", false
}

// topLevelComma returns the index of the first comma outside parentheses,
// or -1.
func topLevelComma(s string) int {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

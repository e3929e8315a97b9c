package norm

import (
	"fmt"
	"strconv"
	"strings"
)

// ToText coerces a JSON-LD-ish value that may be a string, number, an object
// with name/text, or an array of any of these into a single string. Array
// parts join with spaces, empties dropped. Returns "" when nothing yields
// content.
func ToText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return fmt.Sprintf("%d", t)
	case bool:
		return ""
	case map[string]any:
		if s := ToText(t["name"]); s != "" {
			return s
		}
		return ToText(t["text"])
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s := ToText(e); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}

// ToTextSlice coerces a polymorphic value into a list of strings. Arrays map
// each element through ToText; a plain string splits on commas or newlines.
// Entries are trimmed and empties dropped.
func ToTextSlice(v any) []string {
	var raw []string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		raw = strings.FieldsFunc(t, func(r rune) bool { return r == ',' || r == '\n' })
	case []any:
		for _, e := range t {
			raw = append(raw, ToText(e))
		}
	case []string:
		raw = t
	default:
		raw = []string{ToText(v)}
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

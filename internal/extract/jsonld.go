package extract

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// JSONLDRecipe collects every application/ld+json script block in the
// document and returns the first node whose @type mentions "recipe",
// searching each parsed block depth-first in document order. Malformed
// blocks are skipped; they are unusable sources, not errors. Returns nil
// when no recipe node exists.
func JSONLDRecipe(doc *goquery.Document) map[string]any {
	var found map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var parsed any
		if err := json.Unmarshal([]byte(s.Text()), &parsed); err != nil {
			log.Debug().Err(err).Msg("skipping malformed JSON-LD block")
			return true
		}
		if node := findRecipeNode(parsed); node != nil {
			found = node
			return false
		}
		return true
	})
	return found
}

// findRecipeNode walks a parsed JSON-LD forest, descending into arrays,
// @graph containers, and nested object values.
func findRecipeNode(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		if typeMentionsRecipe(t["@type"]) {
			return t
		}
		if node := findRecipeNode(t["@graph"]); node != nil {
			return node
		}
		// Sorted keys keep the walk deterministic across runs.
		keys := make([]string, 0, len(t))
		for k := range t {
			if k != "@graph" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			switch t[k].(type) {
			case map[string]any, []any:
				if node := findRecipeNode(t[k]); node != nil {
					return node
				}
			}
		}
	case []any:
		for _, e := range t {
			if node := findRecipeNode(e); node != nil {
				return node
			}
		}
	}
	return nil
}

func typeMentionsRecipe(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.Contains(strings.ToLower(t), "recipe")
	case []any:
		for _, e := range t {
			if s, ok := e.(string); ok && strings.Contains(strings.ToLower(s), "recipe") {
				return true
			}
		}
	}
	return false
}

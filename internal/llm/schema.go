package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// extraction is the response contract for full page extraction. The model
// must return exactly this shape as strict JSON.
type extraction struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Servings     *int     `json:"servings"`
	ServingsText string   `json:"servingsText"`
	PrepMinutes  *int     `json:"prepMinutes"`
	CookMinutes  *int     `json:"cookMinutes"`
	TotalMinutes *int     `json:"totalMinutes"`
	Ingredients  []string `json:"ingredients"`
	Steps        []string `json:"steps"`
	Notes        string   `json:"notes"`
	Tags         []string `json:"tags"`
	Cuisines     []string `json:"cuisines"`
	Methods      []string `json:"methods"`
}

// enrichment is the response contract for gap filling: the extraction shape
// minus ingredients, steps, and notes, all fields optional.
type enrichment struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Servings     *int     `json:"servings"`
	ServingsText string   `json:"servingsText"`
	PrepMinutes  *int     `json:"prepMinutes"`
	CookMinutes  *int     `json:"cookMinutes"`
	TotalMinutes *int     `json:"totalMinutes"`
	Tags         []string `json:"tags"`
	Cuisines     []string `json:"cuisines"`
	Methods      []string `json:"methods"`
}

func parseExtraction(raw []byte) (*extraction, error) {
	var out extraction
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", errNotJSON, err)
	}
	if err := checkExtraction(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func parseEnrichment(raw []byte) (*enrichment, error) {
	var out enrichment
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", errNotJSON, err)
	}
	if err := checkMinutes(out.PrepMinutes, out.CookMinutes, out.TotalMinutes, out.Servings); err != nil {
		return nil, fmt.Errorf("%w: %v", errSchema, err)
	}
	return &out, nil
}

// checkExtraction validates the model's extraction payload. Its error text
// feeds back to the model as a repair hint.
func checkExtraction(e *extraction) error {
	if len(trimAll(e.Ingredients)) == 0 {
		return fmt.Errorf("%w: ingredients must be a non-empty array of strings", errSchema)
	}
	if len(trimAll(e.Steps)) == 0 {
		return fmt.Errorf("%w: steps must be a non-empty array of strings", errSchema)
	}
	if err := checkMinutes(e.PrepMinutes, e.CookMinutes, e.TotalMinutes, e.Servings); err != nil {
		return fmt.Errorf("%w: %v", errSchema, err)
	}
	return nil
}

func checkMinutes(values ...*int) error {
	names := []string{"prepMinutes", "cookMinutes", "totalMinutes", "servings"}
	for i, v := range values {
		if v != nil && *v < 0 {
			return errors.New(names[i] + " must not be negative")
		}
	}
	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

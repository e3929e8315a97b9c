package recipe

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid wraps all schema validation failures so callers can treat them
// as a recoverable source-data error and fall through to the next strategy.
var ErrInvalid = errors.New("invalid recipe")

// Validate checks the structural invariants of the canonical record: every
// ingredient keeps a non-empty original line, steps are numbered 1..n
// contiguously, and numeric fields are non-negative. It does not require
// structural completeness; that is a separate cascade predicate.
func Validate(r *Recipe) error {
	if r == nil {
		return fmt.Errorf("%w: nil record", ErrInvalid)
	}
	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Original) == "" {
			return fmt.Errorf("%w: ingredient %d has empty original", ErrInvalid, i)
		}
		if ing.Quantity != nil && *ing.Quantity < 0 {
			return fmt.Errorf("%w: ingredient %d has negative quantity", ErrInvalid, i)
		}
	}
	for i, st := range r.Steps {
		if st.N != i+1 {
			return fmt.Errorf("%w: step %d numbered %d", ErrInvalid, i, st.N)
		}
		if strings.TrimSpace(st.Text) == "" {
			return fmt.Errorf("%w: step %d has empty text", ErrInvalid, st.N)
		}
	}
	for name, v := range map[string]*int{"prep": r.Time.Prep, "cook": r.Time.Cook, "total": r.Time.Total} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: negative %s time", ErrInvalid, name)
		}
	}
	if r.Yield.Servings != nil && *r.Yield.Servings < 0 {
		return fmt.Errorf("%w: negative servings", ErrInvalid)
	}
	switch r.Units {
	case Metric, US:
	default:
		return fmt.Errorf("%w: unknown unit system %q", ErrInvalid, r.Units)
	}
	return nil
}

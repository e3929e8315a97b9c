package norm

import (
	"testing"

	"github.com/rogeonee/recipes/internal/recipe"
)

func TestCanonicalUnit(t *testing.T) {
	cases := []struct {
		token string
		want  string
		known bool
	}{
		{"tbsp", "tbsp", true},
		{"Tbsp.", "tbsp", true},
		{"tablespoons", "tbsp", true},
		{"tbs", "tbsp", true},
		{"teaspoon", "tsp", true},
		{"grams", "g", true},
		{"Cups", "cup", true},
		{"lbs", "lb", true},
		{"sprigs", "sprig", true},
		{"stalk", "stalk", true},
		{"large", "", false},
		{"handful", "", false},
	}
	for _, c := range cases {
		got, known := CanonicalUnit(c.token)
		if known != c.known {
			t.Fatalf("CanonicalUnit(%q): known=%v, want %v", c.token, known, c.known)
		}
		if known && got != c.want {
			t.Fatalf("CanonicalUnit(%q): got %q, want %q", c.token, got, c.want)
		}
	}
}

func TestInferUnitSystem(t *testing.T) {
	mk := func(units ...string) []recipe.Ingredient {
		out := make([]recipe.Ingredient, len(units))
		for i, u := range units {
			out[i] = recipe.Ingredient{Original: "x", Unit: u}
		}
		return out
	}
	cases := []struct {
		name  string
		units []string
		want  recipe.UnitSystem
	}{
		{"metric with neutral", []string{"g", "tbsp"}, recipe.Metric},
		{"us only", []string{"cup", "oz"}, recipe.US},
		{"mixed defaults metric", []string{"cup", "g"}, recipe.Metric},
		{"no units", nil, recipe.Metric},
		{"neutral only", []string{"tsp", "pinch"}, recipe.Metric},
		{"us with neutral", []string{"cup", "tbsp", "clove"}, recipe.US},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := InferUnitSystem(mk(c.units...)); got != c.want {
				t.Fatalf("got %q, want %q", got, c.want)
			}
		})
	}
}

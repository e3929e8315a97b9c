package norm

import (
	"strings"

	"github.com/rogeonee/recipes/internal/recipe"
)

// unitAliases maps lowercase, period-stripped spellings to one canonical
// symbol per unit.
var unitAliases = map[string]string{
	"tsp": "tsp", "teaspoon": "tsp", "teaspoons": "tsp",
	"tbsp": "tbsp", "tbs": "tbsp", "tbl": "tbsp", "tablespoon": "tbsp", "tablespoons": "tbsp",
	"g": "g", "gr": "g", "gram": "g", "grams": "g",
	"kg": "kg", "kilogram": "kg", "kilograms": "kg",
	"ml": "ml", "milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml",
	"l": "l", "liter": "l", "liters": "l", "litre": "l", "litres": "l",
	"cup": "cup", "cups": "cup",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
	"clove": "clove", "cloves": "clove",
	"can": "can", "cans": "can",
	"pinch": "pinch", "pinches": "pinch",
	"bunch": "bunch", "bunches": "bunch",
	"slice": "slice", "slices": "slice",
	"sprig": "sprig", "sprigs": "sprig",
	"strip": "strip", "strips": "strip",
	"stalk": "stalk", "stalks": "stalk",
	"sheet": "sheet", "sheets": "sheet",
}

// CanonicalUnit normalizes a unit token against the alias table. The token
// is lowercased and has periods stripped before lookup. ok is false for
// tokens outside the known-unit set; such tokens stay part of the item text.
func CanonicalUnit(token string) (unit string, ok bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(token)), ".", "")
	unit, ok = unitAliases[key]
	return unit, ok
}

var metricUnits = map[string]bool{"g": true, "kg": true, "ml": true, "l": true}
var usUnits = map[string]bool{"cup": true, "oz": true, "lb": true}

// InferUnitSystem classifies a recipe's measurement system from its
// ingredient units. US wins only when US-specific units appear without any
// metric-specific ones; everything else, including no unit evidence at all,
// defaults to metric.
func InferUnitSystem(ings []recipe.Ingredient) recipe.UnitSystem {
	hasMetric, hasUS := false, false
	for _, ing := range ings {
		u := strings.ToLower(ing.Unit)
		if u == "" {
			continue
		}
		if metricUnits[u] {
			hasMetric = true
		}
		if usUnits[u] {
			hasUS = true
		}
	}
	if hasUS && !hasMetric {
		return recipe.US
	}
	return recipe.Metric
}

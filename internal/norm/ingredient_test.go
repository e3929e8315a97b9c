package norm

import "testing"

func TestParseIngredientLine_Table(t *testing.T) {
	cases := []struct {
		line     string
		quantity float64
		hasQty   bool
		unit     string
		item     string
		note     string
	}{
		{line: "1 1/2 cups flour", quantity: 1.5, hasQty: true, unit: "cup", item: "flour"},
		{line: "2 tbsp olive oil, divided", quantity: 2, hasQty: true, unit: "tbsp", item: "olive oil", note: "divided"},
		{line: "3-4 cloves garlic, minced", quantity: 3, hasQty: true, unit: "clove", item: "garlic", note: "range 3 - 4; minced"},
		{line: "Salt to taste", item: "Salt to taste"},
		{line: "½ cup sugar", quantity: 0.5, hasQty: true, unit: "cup", item: "sugar"},
		{line: "2 cups of flour", quantity: 2, hasQty: true, unit: "cup", item: "flour"},
		{line: "1 (14 oz) can coconut milk", quantity: 1, hasQty: true, unit: "can", item: "coconut milk", note: "14 oz"},
		{line: "2 large eggs", quantity: 2, hasQty: true, item: "large eggs"},
		{line: "250g butter, softened (room temperature)", quantity: 250, hasQty: true, unit: "g", item: "butter", note: "room temperature; softened"},
		{line: "1 lb. chicken thighs*", quantity: 1, hasQty: true, unit: "lb", item: "chicken thighs"},
		{line: "0.75 l vegetable stock", quantity: 0.75, hasQty: true, unit: "l", item: "vegetable stock"},
	}
	for _, c := range cases {
		t.Run(c.line, func(t *testing.T) {
			ing := ParseIngredientLine(c.line)
			if ing == nil {
				t.Fatalf("got nil")
			}
			if c.hasQty {
				if ing.Quantity == nil {
					t.Fatalf("quantity: got nil, want %v", c.quantity)
				}
				if *ing.Quantity != c.quantity {
					t.Fatalf("quantity: got %v, want %v", *ing.Quantity, c.quantity)
				}
			} else if ing.Quantity != nil {
				t.Fatalf("quantity: got %v, want nil", *ing.Quantity)
			}
			if ing.Unit != c.unit {
				t.Fatalf("unit: got %q, want %q", ing.Unit, c.unit)
			}
			if ing.Item != c.item {
				t.Fatalf("item: got %q, want %q", ing.Item, c.item)
			}
			if ing.Note != c.note {
				t.Fatalf("note: got %q, want %q", ing.Note, c.note)
			}
		})
	}
}

func TestParseIngredientLine_EmptyAndJunk(t *testing.T) {
	for _, line := range []string{"", "   ", "\t\n"} {
		if ing := ParseIngredientLine(line); ing != nil {
			t.Fatalf("ParseIngredientLine(%q): got %+v, want nil", line, ing)
		}
	}
}

func TestParseIngredientLine_DecodesEntities(t *testing.T) {
	ing := ParseIngredientLine("2 cups flour &amp; cornstarch")
	if ing == nil {
		t.Fatalf("got nil")
	}
	if ing.Original != "2 cups flour & cornstarch" {
		t.Fatalf("original: got %q", ing.Original)
	}
	if ing.Item != "flour & cornstarch" {
		t.Fatalf("item: got %q", ing.Item)
	}
}

// Re-parsing a line's own Original must reproduce the same parse.
func TestParseIngredientLine_Idempotent(t *testing.T) {
	lines := []string{
		"1 1/2 cups flour",
		"3-4 cloves garlic, minced",
		"½ cup sugar",
		"Salt to taste",
		"1 (14 oz) can coconut milk",
		"2 – 3 tbsp soy sauce",
	}
	for _, line := range lines {
		first := ParseIngredientLine(line)
		if first == nil {
			t.Fatalf("ParseIngredientLine(%q): got nil", line)
		}
		second := ParseIngredientLine(first.Original)
		if second == nil {
			t.Fatalf("re-parse of %q: got nil", first.Original)
		}
		if (first.Quantity == nil) != (second.Quantity == nil) {
			t.Fatalf("%q: quantity presence changed on re-parse", line)
		}
		if first.Quantity != nil && *first.Quantity != *second.Quantity {
			t.Fatalf("%q: quantity %v != %v", line, *first.Quantity, *second.Quantity)
		}
		if first.Unit != second.Unit || first.Item != second.Item || first.Note != second.Note {
			t.Fatalf("%q: parse changed on re-parse: %+v vs %+v", line, first, second)
		}
	}
}

package norm

import "testing"

func TestNormalizeSteps_HeadingExclusionAndNumbering(t *testing.T) {
	steps := NormalizeSteps([]string{
		"FOR THE SAUCE",
		"Whisk the soy sauce and honey together.",
		"Pour over the chicken and bake for 20 minutes.",
	})
	if len(steps) != 2 {
		t.Fatalf("len: got %d, want 2", len(steps))
	}
	for i, s := range steps {
		if s.N != i+1 {
			t.Fatalf("step %d numbered %d", i, s.N)
		}
		if IsSectionHeading(s.Text) {
			t.Fatalf("step %d kept heading %q", s.N, s.Text)
		}
	}
}

func TestNormalizeSteps_ShapesAndGaps(t *testing.T) {
	steps := NormalizeSteps([]any{
		"  Preheat the oven to 200C. ",
		"",
		map[string]any{"text": "Toss the vegetables with oil."},
		map[string]any{"name": "Roast until tender."},
		"   ",
	})
	if len(steps) != 3 {
		t.Fatalf("len: got %d, want 3", len(steps))
	}
	want := []string{
		"Preheat the oven to 200C.",
		"Toss the vegetables with oil.",
		"Roast until tender.",
	}
	for i, s := range steps {
		if s.N != i+1 {
			t.Fatalf("step %d numbered %d", i, s.N)
		}
		if s.Text != want[i] {
			t.Fatalf("step %d text: got %q, want %q", s.N, s.Text, want[i])
		}
	}
}

func TestNormalizeSteps_DecodesEntities(t *testing.T) {
	steps := NormalizeSteps([]string{"Stir &amp; simmer."})
	if len(steps) != 1 || steps[0].Text != "Stir & simmer." {
		t.Fatalf("got %+v", steps)
	}
}

func TestIsSectionHeading(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"FOR THE GLAZE", true},
		{"For the marinade", true},
		{"SAUCE", true},
		{"Serves 4", true},
		{"Serving suggestion: rice", true},
		{"Preheat the oven to 180C.", false},
		{"MIX ALL DRY INGREDIENTS THEN FOLD IN THE EGGS", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsSectionHeading(c.line); got != c.want {
			t.Fatalf("IsSectionHeading(%q): got %v, want %v", c.line, got, c.want)
		}
	}
}

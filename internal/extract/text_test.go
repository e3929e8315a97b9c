package extract

import (
	"strings"
	"testing"
)

func TestPageText_StripsChromeAndCollapses(t *testing.T) {
	page := `<html><head><style>body{color:red}</style><script>var x=1;</script></head>
	<body><nav>menu</nav>
	<h1>Braised   Leeks</h1>

	<p>Trim the leeks.</p>
	<footer>copyright</footer></body></html>`
	text := PageText(page, 0)
	if strings.Contains(text, "var x") || strings.Contains(text, "menu") || strings.Contains(text, "copyright") {
		t.Fatalf("boilerplate leaked: %q", text)
	}
	if !strings.Contains(text, "Braised Leeks") {
		t.Fatalf("heading lost: %q", text)
	}
	if !strings.Contains(text, "Trim the leeks.") {
		t.Fatalf("paragraph lost: %q", text)
	}
	if strings.Contains(text, "\n\n") {
		t.Fatalf("blank lines kept: %q", text)
	}
}

func TestPageText_TruncatesToBudget(t *testing.T) {
	page := "<html><body><p>" + strings.Repeat("word ", 1000) + "</p></body></html>"
	text := PageText(page, 100)
	if len(text) > 100 {
		t.Fatalf("len: got %d, want <= 100", len(text))
	}
}

func TestReadable_BadInputIsSoft(t *testing.T) {
	if out := Readable("", "::not a url::"); out != "" {
		t.Fatalf("got %q, want empty", out)
	}
}

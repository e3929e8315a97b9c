package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// PageText renders HTML as plain text for model consumption: scripts,
// styles, and obvious chrome are dropped, block elements become line
// breaks, and blank-line runs collapse. The result is truncated to at most
// maxChars characters (0 disables the cap).
func PageText(input string, maxChars int) string {
	node, err := html.Parse(strings.NewReader(input))
	if err != nil || node == nil {
		return ""
	}
	var b strings.Builder
	collectText(&b, node)
	text := collapseBlankLines(b.String())
	if maxChars > 0 && len(text) > maxChars {
		text = text[:maxChars]
	}
	return text
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript", "nav", "footer", "aside", "iframe", "svg", "form":
			return
		case "br", "hr", "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol", "div", "tr":
			b.WriteString("\n")
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li":
			b.WriteString("\n")
		}
	}
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.Join(strings.Fields(line), " ")
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}

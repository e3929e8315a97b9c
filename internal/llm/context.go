package llm

import (
	"fmt"
	"strings"

	"github.com/rogeonee/recipes/internal/extract"
)

// Input is everything the model context is built from: the page, an
// optional readability rendering, and whatever the heuristics pass found.
type Input struct {
	URL            string
	HTML           string
	SimplifiedHTML string
	Hint           *extract.Scrape
}

const (
	// hintLineCap bounds each heuristic list fed to the model.
	hintLineCap = 40
	// minContextChars is the hard floor context shrinking stops at.
	minContextChars = 2000
)

// buildUserMessage assembles the bounded text block the model works from:
// source URL, heuristic title/ingredients/steps if any, and a
// boilerplate-stripped rendering of the page capped at budget characters.
func buildUserMessage(in Input, budget int, hint string) string {
	var sb strings.Builder
	sb.WriteString("Source URL: ")
	sb.WriteString(in.URL)
	sb.WriteString("\n")
	if h := in.Hint; h != nil {
		if h.Title != "" {
			sb.WriteString("Probable title: ")
			sb.WriteString(h.Title)
			sb.WriteString("\n")
		}
		if len(h.Ingredients) > 0 {
			sb.WriteString("\nIngredient lines found on the page:\n")
			for _, line := range cap40(h.Ingredients) {
				sb.WriteString("- ")
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
		if len(h.Steps) > 0 {
			sb.WriteString("\nInstruction lines found on the page:\n")
			for i, line := range cap40(h.Steps) {
				fmt.Fprintf(&sb, "%d. %s\n", i+1, line)
			}
		}
	}
	source := in.SimplifiedHTML
	if source == "" {
		source = in.HTML
	}
	sb.WriteString("\nPage text:\n")
	sb.WriteString(extract.PageText(source, budget))
	if hint != "" {
		sb.WriteString("\n\n")
		sb.WriteString(hint)
	}
	return sb.String()
}

func cap40(lines []string) []string {
	if len(lines) > hintLineCap {
		return lines[:hintLineCap]
	}
	return lines
}

// shrink halves the context budget, never going below the hard floor.
func shrink(budget int) int {
	budget /= 2
	if budget < minContextChars {
		return minContextChars
	}
	return budget
}

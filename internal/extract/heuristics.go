package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Scrape holds the output of selector-based scraping: trimmed text lines
// with no semantic parsing applied.
type Scrape struct {
	Title       string
	Image       string
	Ingredients []string
	Steps       []string
}

// Selector groups tried in priority order. The first group yielding enough
// non-empty matches wins.
var ingredientSelectors = []string{
	"[itemprop='recipeIngredient']",
	"[itemprop='ingredients']",
	".recipe-ingredients li",
	".recipe-ingredient",
	".ingredients li",
	".ingredient-list li",
	"ul[class*='ingredient'] li",
	"li[class*='ingredient']",
}

var stepSelectors = []string{
	"[itemprop='recipeInstructions'] li",
	"[itemprop='recipeInstructions'] p",
	"[itemprop='recipeInstructions']",
	".recipe-instructions li",
	".recipe-directions li",
	".instructions li",
	".directions li",
	"ol[class*='instruction'] li",
	"ol[class*='direction'] li",
	"ol[class*='step'] li",
	"div[class*='instruction'] p",
}

// Heuristics scrapes common recipe-site markup conventions from the
// document. Ingredients need at least two matched lines for a selector
// group to count; steps need one. Always returns a Scrape; empty fields
// mean the convention was not found.
func Heuristics(doc *goquery.Document) *Scrape {
	sc := &Scrape{}

	for _, sel := range []string{"h1[itemprop='name']", "h1", "title"} {
		if t := strings.TrimSpace(doc.Find(sel).First().Text()); t != "" {
			sc.Title = t
			break
		}
	}

	for _, sel := range ingredientSelectors {
		if lines := textLines(doc, sel); len(lines) >= 2 {
			sc.Ingredients = lines
			break
		}
	}
	for _, sel := range stepSelectors {
		if lines := textLines(doc, sel); len(lines) >= 1 {
			sc.Steps = lines
			break
		}
	}

	if img, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok && strings.TrimSpace(img) != "" {
		sc.Image = strings.TrimSpace(img)
	} else if src, ok := doc.Find("img[src]").Attr("src"); ok {
		sc.Image = strings.TrimSpace(src)
	}
	return sc
}

func textLines(doc *goquery.Document, selector string) []string {
	var lines []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			lines = append(lines, t)
		}
	})
	return lines
}

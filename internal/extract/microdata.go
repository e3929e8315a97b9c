package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// MicrodataRecipe finds the first itemscope whose itemtype is a
// schema.org/Recipe (case-insensitive, protocol ignored) and builds a
// JSON-LD-shaped object from its itemprop descendants. Nested itemscopes
// become nested objects and are treated as opaque units: the walk does not
// descend below them. Repeated properties accumulate into arrays. Returns
// nil when the page carries no recipe microdata.
func MicrodataRecipe(doc *goquery.Document) map[string]any {
	var obj map[string]any
	doc.Find("[itemscope][itemtype]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		itemtype, _ := s.Attr("itemtype")
		if !isRecipeItemtype(itemtype) {
			return true
		}
		node := s.Get(0)
		obj = buildScope(node)
		obj["@type"] = preferredType(itemtype)
		return false
	})
	return obj
}

func isRecipeItemtype(itemtype string) bool {
	for _, t := range strings.Fields(itemtype) {
		t = stripProtocol(strings.ToLower(t))
		if strings.HasSuffix(t, "schema.org/recipe") {
			return true
		}
	}
	return false
}

func stripProtocol(u string) string {
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	return u
}

// preferredType picks the type literally containing "recipe" from a
// multi-valued itemtype, falling back to the trailing path segment of the
// first value.
func preferredType(itemtype string) string {
	fields := strings.Fields(itemtype)
	for _, t := range fields {
		name := lastSegment(t)
		if strings.Contains(strings.ToLower(name), "recipe") {
			return name
		}
	}
	if len(fields) > 0 {
		return lastSegment(fields[0])
	}
	return ""
}

func lastSegment(u string) string {
	u = strings.TrimSuffix(stripProtocol(u), "/")
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}

// buildScope collects itemprop values from the descendants of an itemscope
// element.
func buildScope(scope *html.Node) map[string]any {
	props := map[string]any{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				walk(c)
				continue
			}
			name := attrValue(c, "itemprop")
			if name == "" {
				walk(c)
				continue
			}
			var value any
			if hasAttr(c, "itemscope") {
				// Opaque nested scope; do not descend further.
				value = buildScope(c)
			} else {
				value = propValue(c)
				walk(c)
			}
			addProp(props, name, value)
		}
	}
	walk(scope)
	return props
}

// propValue reads an element's microdata value: the content attribute when
// present, else a tag-specific attribute, else trimmed text.
func propValue(n *html.Node) string {
	if v := attrValue(n, "content"); v != "" {
		return v
	}
	switch strings.ToLower(n.Data) {
	case "meta":
		return attrValue(n, "content")
	case "time":
		if v := attrValue(n, "datetime"); v != "" {
			return v
		}
	case "link", "a", "area":
		return attrValue(n, "href")
	case "img", "source":
		return attrValue(n, "src")
	}
	return strings.TrimSpace(textContent(n))
}

func addProp(props map[string]any, name string, value any) {
	for _, key := range strings.Fields(name) {
		existing, ok := props[key]
		if !ok {
			props[key] = value
			continue
		}
		if arr, isArr := existing.([]any); isArr {
			props[key] = append(arr, value)
		} else {
			props[key] = []any{existing, value}
		}
	}
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return d
}

func TestJSONLDRecipe_TopLevel(t *testing.T) {
	page := `<html><head><script type="application/ld+json">
	{"@type":"Recipe","name":"Lemon Cake","recipeIngredient":["1 lemon"]}
	</script></head><body></body></html>`
	obj := JSONLDRecipe(doc(t, page))
	if obj == nil {
		t.Fatalf("got nil")
	}
	if obj["name"] != "Lemon Cake" {
		t.Fatalf("name: got %v", obj["name"])
	}
}

func TestJSONLDRecipe_GraphAndArrayType(t *testing.T) {
	page := `<html><head><script type="application/ld+json">
	{"@graph":[{"@type":"WebSite","name":"site"},{"@type":["Thing","Recipe"],"name":"Stew"}]}
	</script></head><body></body></html>`
	obj := JSONLDRecipe(doc(t, page))
	if obj == nil {
		t.Fatalf("got nil")
	}
	if obj["name"] != "Stew" {
		t.Fatalf("name: got %v", obj["name"])
	}
}

func TestJSONLDRecipe_SkipsMalformedBlocks(t *testing.T) {
	page := `<html><head>
	<script type="application/ld+json">{not json at all</script>
	<script type="application/ld+json">{"@type":"recipe","name":"Second Block"}</script>
	</head><body></body></html>`
	obj := JSONLDRecipe(doc(t, page))
	if obj == nil {
		t.Fatalf("got nil")
	}
	if obj["name"] != "Second Block" {
		t.Fatalf("name: got %v", obj["name"])
	}
}

func TestJSONLDRecipe_NoneFound(t *testing.T) {
	page := `<html><head><script type="application/ld+json">{"@type":"Article","name":"News"}</script></head></html>`
	if obj := JSONLDRecipe(doc(t, page)); obj != nil {
		t.Fatalf("got %v, want nil", obj)
	}
}

func TestJSONLDRecipe_FirstInDocumentOrder(t *testing.T) {
	page := `<html><head>
	<script type="application/ld+json">[{"@type":"Recipe","name":"First"},{"@type":"Recipe","name":"Second"}]</script>
	</head></html>`
	obj := JSONLDRecipe(doc(t, page))
	if obj == nil || obj["name"] != "First" {
		t.Fatalf("got %v, want First", obj)
	}
}

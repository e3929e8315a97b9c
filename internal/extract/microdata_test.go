package extract

import "testing"

const microdataPage = `<html><body>
<div itemscope itemtype="https://schema.org/Recipe">
  <h1 itemprop="name">Garlic Butter Shrimp</h1>
  <meta itemprop="description" content="Fast weeknight shrimp.">
  <img itemprop="image" src="/shrimp.jpg">
  <time itemprop="cookTime" datetime="PT15M">15 minutes</time>
  <span itemprop="recipeIngredient">1 lb shrimp</span>
  <span itemprop="recipeIngredient">2 tbsp butter</span>
  <div itemprop="author" itemscope itemtype="https://schema.org/Person">
    <span itemprop="name">Chef Rosa</span>
  </div>
  <ol>
    <li itemprop="recipeInstructions">Melt the butter.</li>
    <li itemprop="recipeInstructions">Cook the shrimp until pink.</li>
  </ol>
</div>
</body></html>`

func TestMicrodataRecipe(t *testing.T) {
	obj := MicrodataRecipe(doc(t, microdataPage))
	if obj == nil {
		t.Fatalf("got nil")
	}
	if obj["@type"] != "Recipe" {
		t.Fatalf("@type: got %v", obj["@type"])
	}
	if obj["name"] != "Garlic Butter Shrimp" {
		t.Fatalf("name: got %v", obj["name"])
	}
	if obj["description"] != "Fast weeknight shrimp." {
		t.Fatalf("description: got %v", obj["description"])
	}
	if obj["image"] != "/shrimp.jpg" {
		t.Fatalf("image: got %v", obj["image"])
	}
	if obj["cookTime"] != "PT15M" {
		t.Fatalf("cookTime: got %v", obj["cookTime"])
	}

	ings, ok := obj["recipeIngredient"].([]any)
	if !ok || len(ings) != 2 {
		t.Fatalf("recipeIngredient: got %v", obj["recipeIngredient"])
	}
	if ings[0] != "1 lb shrimp" || ings[1] != "2 tbsp butter" {
		t.Fatalf("recipeIngredient values: got %v", ings)
	}

	author, ok := obj["author"].(map[string]any)
	if !ok {
		t.Fatalf("author: got %T", obj["author"])
	}
	if author["name"] != "Chef Rosa" {
		t.Fatalf("author name: got %v", author["name"])
	}

	steps, ok := obj["recipeInstructions"].([]any)
	if !ok || len(steps) != 2 {
		t.Fatalf("recipeInstructions: got %v", obj["recipeInstructions"])
	}
}

func TestMicrodataRecipe_NoRecipeScope(t *testing.T) {
	page := `<html><body><div itemscope itemtype="https://schema.org/Article"><span itemprop="name">News</span></div></body></html>`
	if obj := MicrodataRecipe(doc(t, page)); obj != nil {
		t.Fatalf("got %v, want nil", obj)
	}
}

func TestMicrodataRecipe_CaseAndProtocolInsensitive(t *testing.T) {
	page := `<html><body><div itemscope itemtype="HTTP://SCHEMA.ORG/RECIPE"><span itemprop="name">Toast</span></div></body></html>`
	obj := MicrodataRecipe(doc(t, page))
	if obj == nil || obj["name"] != "Toast" {
		t.Fatalf("got %v", obj)
	}
}

// Package pipeline runs the extraction cascade: structured data first,
// DOM heuristics next, readability-assisted heuristics after that, and the
// model as last resort. Strategies share one signature so reordering or
// adding one is a one-line change.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/rogeonee/recipes/internal/extract"
	"github.com/rogeonee/recipes/internal/llm"
	"github.com/rogeonee/recipes/internal/normalize"
	"github.com/rogeonee/recipes/internal/recipe"
)

// ErrNoRecipe is the cascade-exhausted outcome: every strategy failed to
// produce a structurally complete recipe.
var ErrNoRecipe = errors.New("no recipe extractable")

// Strategy labels reported in Result.
const (
	StrategyJSONLD      = "json-ld"
	StrategyMicrodata   = "microdata"
	StrategyHeuristics  = "heuristics"
	StrategyReadability = "readability-heuristics"
	StrategyLLM         = "llm-fallback"
)

// State carries one request's working data through the cascade. Later
// strategies reuse what earlier ones computed; no strategy mutates another's
// output.
type State struct {
	URL       string
	HTML      string
	Doc       *goquery.Document
	FetchedAt time.Time

	// Simplified is the readability rendering, filled when that strategy runs.
	Simplified string
	// Scrape is the heuristic extraction, kept as a hint for the model.
	Scrape *extract.Scrape
}

func (st *State) source() recipe.Source {
	return recipe.NewSource(st.URL, st.FetchedAt)
}

// Strategy is one extraction-and-normalization path. A nil recipe with a
// nil error means the strategy found nothing usable.
type Strategy struct {
	Name string
	Run  func(ctx context.Context, st *State) (*recipe.Recipe, error)
}

// Result is the pipeline's externally visible outcome.
type Result struct {
	Recipe   *recipe.Recipe
	Strategy string
	Enriched bool
}

// Pipeline folds over its strategies in priority order, short-circuiting on
// the first structurally complete, schema-valid recipe.
type Pipeline struct {
	Strategies []Strategy
	// Enricher, when set, runs the gap-filling pass on complete recipes.
	Enricher *llm.Extractor
	Now      func() time.Time
}

// New assembles the default cascade. The model strategy is appended only
// when an extractor is configured; enrichment uses the same extractor.
func New(ex *llm.Extractor) *Pipeline {
	p := &Pipeline{Enricher: ex, Now: time.Now}
	p.Strategies = []Strategy{
		{Name: StrategyJSONLD, Run: runJSONLD},
		{Name: StrategyMicrodata, Run: runMicrodata},
		{Name: StrategyHeuristics, Run: runHeuristics},
		{Name: StrategyReadability, Run: runReadability},
	}
	if ex != nil {
		p.Strategies = append(p.Strategies, Strategy{Name: StrategyLLM, Run: runLLM(ex)})
	}
	return p
}

// Extract runs the cascade over fetched page HTML. Strategy failures are
// recoverable and logged; only exhaustion of every strategy returns
// ErrNoRecipe.
func (p *Pipeline) Extract(ctx context.Context, pageURL, pageHTML string) (*Result, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	st := &State{URL: pageURL, HTML: pageHTML, FetchedAt: now().UTC()}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML)); err == nil {
		st.Doc = doc
	} else {
		log.Warn().Err(err).Str("url", pageURL).Msg("page did not parse; structured strategies skipped")
	}

	for _, s := range p.Strategies {
		r, err := s.Run(ctx, st)
		if err != nil {
			log.Debug().Err(err).Str("strategy", s.Name).Msg("strategy failed, falling through")
			continue
		}
		if !r.StructurallyComplete() {
			continue
		}
		res := &Result{Recipe: r, Strategy: s.Name}
		p.maybeEnrich(ctx, st, res)
		return res, nil
	}
	return nil, ErrNoRecipe
}

// maybeEnrich runs the gap-filling pass when the recipe left obvious holes.
// Enrichment failures are soft: the unenriched recipe stands.
func (p *Pipeline) maybeEnrich(ctx context.Context, st *State, res *Result) {
	if p.Enricher == nil || res.Strategy == StrategyLLM || !hasGaps(res.Recipe) {
		return
	}
	merged, err := p.Enricher.Enrich(ctx, res.Recipe, llm.Input{
		URL:            st.URL,
		HTML:           st.HTML,
		SimplifiedHTML: st.Simplified,
		Hint:           st.Scrape,
	})
	if err != nil {
		log.Debug().Err(err).Msg("enrichment failed; keeping unenriched recipe")
		return
	}
	res.Recipe = merged
	res.Enriched = true
}

func hasGaps(r *recipe.Recipe) bool {
	return r.Title == "" || r.Description == "" || r.Time.Total == nil ||
		(r.Yield.Servings == nil && r.Yield.Original == "") || len(r.Tags) == 0
}

func runJSONLD(_ context.Context, st *State) (*recipe.Recipe, error) {
	if st.Doc == nil {
		return nil, nil
	}
	obj := extract.JSONLDRecipe(st.Doc)
	if obj == nil {
		return nil, nil
	}
	return normalize.FromStructured(obj, st.source())
}

func runMicrodata(_ context.Context, st *State) (*recipe.Recipe, error) {
	if st.Doc == nil {
		return nil, nil
	}
	obj := extract.MicrodataRecipe(st.Doc)
	if obj == nil {
		return nil, nil
	}
	return normalize.FromStructured(obj, st.source())
}

func runHeuristics(_ context.Context, st *State) (*recipe.Recipe, error) {
	if st.Doc == nil {
		return nil, nil
	}
	st.Scrape = extract.Heuristics(st.Doc)
	return normalize.FromScrape(st.Scrape, st.source(), "extracted by DOM heuristics")
}

func runReadability(_ context.Context, st *State) (*recipe.Recipe, error) {
	simplified := extract.Readable(st.HTML, st.URL)
	if simplified == "" {
		return nil, nil
	}
	st.Simplified = simplified
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(simplified))
	if err != nil {
		return nil, err
	}
	sc := extract.Heuristics(doc)
	if st.Scrape == nil || len(sc.Ingredients) > 0 {
		st.Scrape = sc
	}
	return normalize.FromScrape(sc, st.source(), "extracted by heuristics over readability output")
}

func runLLM(ex *llm.Extractor) func(ctx context.Context, st *State) (*recipe.Recipe, error) {
	return func(ctx context.Context, st *State) (*recipe.Recipe, error) {
		return ex.Extract(ctx, llm.Input{
			URL:            st.URL,
			HTML:           st.HTML,
			SimplifiedHTML: st.Simplified,
			Hint:           st.Scrape,
		}, st.source())
	}
}

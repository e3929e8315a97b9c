package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/rogeonee/recipes/internal/cache"
	"github.com/rogeonee/recipes/internal/fetch"
	"github.com/rogeonee/recipes/internal/llm"
	"github.com/rogeonee/recipes/internal/pipeline"
)

// App wires the fetch client, the LLM extractor, and the strategy cascade
// for one process.
type App struct {
	cfg      Config
	fetcher  *fetch.Client
	pipeline *pipeline.Pipeline
	llm      *llm.Extractor
}

// New builds the application from config. The LLM extractor is optional:
// without a model configured the cascade simply ends at the readability
// strategy.
func New(cfg Config) (*App, error) {
	a := &App{cfg: cfg}

	ua := cfg.UserAgent
	if ua == "" {
		ua = "recipes/1.0 (+https://github.com/rogeonee/recipes)"
	}
	timeout := cfg.FetchTimeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	a.fetcher = &fetch.Client{
		UserAgent:         ua,
		Timeout:           timeout,
		RedirectMaxHops:   cfg.RedirectMaxHops,
		RetryServerErrors: true,
	}

	if !cfg.LLMDisabled && cfg.LLMModel != "" {
		transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
		if cfg.LLMBaseURL != "" {
			transportCfg.BaseURL = cfg.LLMBaseURL
		}
		a.llm = &llm.Extractor{
			Client:  &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(transportCfg)},
			Model:   cfg.LLMModel,
			Cache:   cache.NewTTL(cfg.CacheTTL),
			Timeout: cfg.LLMTimeout,
		}
	} else {
		log.Debug().Msg("no LLM configured; fallback and enrichment disabled")
	}

	a.pipeline = pipeline.New(a.llm)
	return a, nil
}

// Ingest fetches one URL and runs the extraction cascade over it. Fetch
// errors surface to the caller; extraction exhaustion surfaces as
// pipeline.ErrNoRecipe.
func (a *App) Ingest(ctx context.Context, pageURL string) (*pipeline.Result, error) {
	body, err := a.fetcher.Page(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	res, err := a.pipeline.Extract(ctx, pageURL, body)
	if err != nil {
		return nil, err
	}
	log.Info().Str("url", pageURL).Str("strategy", res.Strategy).Bool("enriched", res.Enriched).
		Int("ingredients", len(res.Recipe.Ingredients)).Int("steps", len(res.Recipe.Steps)).
		Msg("recipe extracted")
	if a.llm != nil {
		u := a.llm.Usage()
		if u.Calls > 0 {
			log.Debug().Int("calls", u.Calls).Int("prompt_tokens", u.PromptTokens).
				Int("completion_tokens", u.CompletionTokens).Msg("llm usage")
		}
	}
	return res, nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rogeonee/recipes/internal/app"
	"github.com/rogeonee/recipes/internal/pipeline"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath   string
		userAgent    string
		fetchTimeout time.Duration
		llmBaseURL   string
		llmModel     string
		llmKey       string
		llmTimeout   time.Duration
		llmOff       bool
		cacheTTL     time.Duration
		verbose      bool
	)

	flag.StringVar(&configPath, "config", "", "Path to optional YAML config file")
	flag.StringVar(&userAgent, "fetch.ua", "", "Custom User-Agent for page fetches")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", 0, "Per-request fetch timeout (e.g. 20s)")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for OpenAI-compatible server")
	flag.DurationVar(&llmTimeout, "llm.timeout", 0, "Timeout per model call (e.g. 60s)")
	flag.BoolVar(&llmOff, "llm.off", false, "Disable the LLM fallback and enrichment")
	flag.DurationVar(&cacheTTL, "cache.ttl", 0, "TTL for the in-memory LLM response cache (e.g. 24h)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: recipes [flags] <url>")
		os.Exit(64)
	}
	pageURL := flag.Arg(0)

	cfg := app.Config{
		UserAgent:    userAgent,
		FetchTimeout: fetchTimeout,
		LLMBaseURL:   llmBaseURL,
		LLMModel:     llmModel,
		LLMAPIKey:    llmKey,
		LLMTimeout:   llmTimeout,
		LLMDisabled:  llmOff,
		CacheTTL:     cacheTTL,
		Verbose:      verbose,
	}
	app.ApplyEnvToConfig(&cfg)
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file unreadable")
			os.Exit(1)
		}
		app.MergeFileConfig(&cfg, fc)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(cfg, pageURL); err != nil {
		log.Error().Err(err).Msg("extraction failed")
		if errors.Is(err, pipeline.ErrNoRecipe) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfg app.Config, pageURL string) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	res, err := a.Ingest(context.Background(), pageURL)
	if err != nil {
		return err
	}

	out := struct {
		Strategy string `json:"strategy"`
		Enriched bool   `json:"enriched"`
		Recipe   any    `json:"recipe"`
	}{Strategy: res.Strategy, Enriched: res.Enriched, Recipe: res.Recipe}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

package app

import "time"

// Config holds runtime configuration for the extraction service.
type Config struct {
	// Fetch
	UserAgent       string
	FetchTimeout    time.Duration
	RedirectMaxHops int

	// LLM
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string
	LLMTimeout time.Duration
	// LLMDisabled turns off both the fallback strategy and enrichment.
	LLMDisabled bool

	// CacheTTL bounds the in-memory model response cache. Zero means 24h.
	CacheTTL time.Duration

	Verbose bool
}

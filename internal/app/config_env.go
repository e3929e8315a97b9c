package app

import (
	"os"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = os.Getenv("LLM_MODEL")
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("FETCH_USER_AGENT")
	}
	if cfg.FetchTimeout == 0 {
		if d, err := time.ParseDuration(os.Getenv("FETCH_TIMEOUT")); err == nil && d > 0 {
			cfg.FetchTimeout = d
		}
	}
	if cfg.CacheTTL == 0 {
		if d, err := time.ParseDuration(os.Getenv("LLM_CACHE_TTL")); err == nil && d > 0 {
			cfg.CacheTTL = d
		}
	}
}

package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the optional single-file configuration schema. Nested
// sections map naturally to flags and env. Durations are Go duration
// strings such as "20s" or "24h".
type FileConfig struct {
	Fetch struct {
		UserAgent string `yaml:"userAgent"`
		Timeout   string `yaml:"timeout"`
		Redirects int    `yaml:"redirects"`
	} `yaml:"fetch"`

	LLM struct {
		BaseURL  string `yaml:"base"`
		Model    string `yaml:"model"`
		APIKey   string `yaml:"key"`
		Timeout  string `yaml:"timeout"`
		Disabled bool   `yaml:"disabled"`
	} `yaml:"llm"`

	Cache struct {
		TTL string `yaml:"ttl"`
	} `yaml:"cache"`

	Verbose bool `yaml:"verbose"`
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse config: %w", err)
	}
	return fc, nil
}

// MergeFileConfig fills unset cfg fields from the file. Flags and env,
// applied by the caller beforehand, win over the file.
func MergeFileConfig(cfg *Config, fc FileConfig) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = parsedDuration(fc.Fetch.Timeout)
	}
	if cfg.RedirectMaxHops == 0 {
		cfg.RedirectMaxHops = fc.Fetch.Redirects
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.LLMTimeout == 0 {
		cfg.LLMTimeout = parsedDuration(fc.LLM.Timeout)
	}
	if fc.LLM.Disabled {
		cfg.LLMDisabled = true
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = parsedDuration(fc.Cache.TTL)
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
}

func parsedDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

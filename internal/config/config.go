// Package config provides configuration loading and validation for the news pipeline.
// Credentials and defaults come from the environment; a JSON file may override the
// non-secret settings, and CLI flags override both.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	env "github.com/netflix/go-env"
	"gopkg.in/yaml.v3"
)

// Environment variable names that carry provider credentials.
const (
	EnvSerpAPIKey = "SERPAPI_KEY"
	EnvSerperKey  = "SERPER_API_KEY"
	EnvOpenAIKey  = "OPENAI_API_KEY"
	EnvGeminiKey  = "GEMINI_API_KEY"
)

// Search providers
const (
	SearchSerpAPI = "serpapi"
	SearchSerper  = "serper"
)

// LLM providers
const (
	LLMOpenAI = "openai"
	LLMGemini = "gemini"
)

// Defaults
const (
	DefaultCount        = 5
	DefaultMaxTexts     = 5
	DefaultCrawlTimeout = 10 * time.Second
)

// Config holds everything a pipeline run needs from the outside world.
type Config struct {
	// Credentials are only read from the environment.
	SerpAPIKey   string `json:"-" yaml:"-" env:"SERPAPI_KEY"`
	SerperAPIKey string `json:"-" yaml:"-" env:"SERPER_API_KEY"`
	OpenAIAPIKey string `json:"-" yaml:"-" env:"OPENAI_API_KEY"`
	GeminiAPIKey string `json:"-" yaml:"-" env:"GEMINI_API_KEY"`

	OpenAIBaseURL  string `json:"openai_base_url,omitempty" yaml:"openai_base_url,omitempty" env:"OPENAI_BASE_URL"`
	SearchProvider string `json:"search_provider,omitempty" yaml:"search_provider,omitempty" env:"CELEBNEWS_SEARCH_PROVIDER,default=serpapi"`
	LLMProvider    string `json:"llm_provider,omitempty" yaml:"llm_provider,omitempty" env:"CELEBNEWS_LLM_PROVIDER,default=openai"`
	Model          string `json:"model,omitempty" yaml:"model,omitempty" env:"CELEBNEWS_MODEL"` // overrides the provider's summarization model

	Count        int           `json:"count,omitempty" yaml:"count,omitempty" env:"CELEBNEWS_COUNT,default=5"`             // articles requested and shown in the fallback digest
	MaxTexts     int           `json:"max_texts,omitempty" yaml:"max_texts,omitempty" env:"CELEBNEWS_MAX_TEXTS,default=5"` // crawled bodies included in the context
	CrawlTimeout time.Duration `json:"-" yaml:"-" env:"CELEBNEWS_CRAWL_TIMEOUT,default=10s"`

	UseBrowser bool `json:"use_browser,omitempty" yaml:"use_browser,omitempty" env:"CELEBNEWS_USE_BROWSER,default=false"`
	Verbose    bool `json:"verbose,omitempty" yaml:"verbose,omitempty" env:"CELEBNEWS_VERBOSE,default=false"`
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config

	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer a config file over the environment.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// Credentials never come from a file
	result.SerpAPIKey = defaults.SerpAPIKey
	result.SerperAPIKey = defaults.SerperAPIKey
	result.OpenAIAPIKey = defaults.OpenAIAPIKey
	result.GeminiAPIKey = defaults.GeminiAPIKey

	if result.OpenAIBaseURL == "" {
		result.OpenAIBaseURL = defaults.OpenAIBaseURL
	}
	if result.SearchProvider == "" {
		result.SearchProvider = defaults.SearchProvider
	}
	if result.LLMProvider == "" {
		result.LLMProvider = defaults.LLMProvider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Count == 0 {
		result.Count = defaults.Count
	}
	if result.MaxTexts == 0 {
		result.MaxTexts = defaults.MaxTexts
	}
	if result.CrawlTimeout == 0 {
		result.CrawlTimeout = defaults.CrawlTimeout
	}

	// Bool fields: a file can only switch them on
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	result.normalize()
	return result
}

// Validate checks that the configuration has valid values.
// Missing credentials are not checked here; the provider constructors report them.
func (c *Config) Validate() error {
	switch c.SearchProvider {
	case SearchSerpAPI, SearchSerper:
	default:
		return fmt.Errorf("config error: unknown search provider %q (want %s or %s)", c.SearchProvider, SearchSerpAPI, SearchSerper)
	}

	switch c.LLMProvider {
	case LLMOpenAI, LLMGemini:
	default:
		return fmt.Errorf("config error: unknown llm provider %q (want %s or %s)", c.LLMProvider, LLMOpenAI, LLMGemini)
	}

	if c.Count < 1 {
		return fmt.Errorf("config error: 'count' must be at least 1")
	}
	if c.MaxTexts < 1 {
		return fmt.Errorf("config error: 'max_texts' must be at least 1")
	}
	if c.CrawlTimeout <= 0 {
		return fmt.Errorf("config error: crawl timeout must be positive")
	}

	return nil
}

// SearchAPIKey returns the credential and its variable name for the configured search provider.
func (c *Config) SearchAPIKey() (key string, envName string) {
	if c.SearchProvider == SearchSerper {
		return c.SerperAPIKey, EnvSerperKey
	}
	return c.SerpAPIKey, EnvSerpAPIKey
}

// LLMAPIKey returns the credential and its variable name for the configured LLM provider.
func (c *Config) LLMAPIKey() (key string, envName string) {
	if c.LLMProvider == LLMGemini {
		return c.GeminiAPIKey, EnvGeminiKey
	}
	return c.OpenAIAPIKey, EnvOpenAIKey
}

func (c *Config) normalize() {
	c.SearchProvider = strings.ToLower(strings.TrimSpace(c.SearchProvider))
	c.LLMProvider = strings.ToLower(strings.TrimSpace(c.LLMProvider))
	if c.SearchProvider == "" {
		c.SearchProvider = SearchSerpAPI
	}
	if c.LLMProvider == "" {
		c.LLMProvider = LLMOpenAI
	}
	if c.Count == 0 {
		c.Count = DefaultCount
	}
	if c.MaxTexts == 0 {
		c.MaxTexts = DefaultMaxTexts
	}
	if c.CrawlTimeout == 0 {
		c.CrawlTimeout = DefaultCrawlTimeout
	}
}

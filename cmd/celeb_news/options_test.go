package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/celeb-news/internal/config"
	"github.com/jonathan/celeb-news/internal/search"
	"github.com/jonathan/celeb-news/internal/types"
)

var envVars = []string{
	"CELEBNEWS_SEARCH_PROVIDER",
	"CELEBNEWS_LLM_PROVIDER",
	"CELEBNEWS_MODEL",
	"CELEBNEWS_COUNT",
	"CELEBNEWS_MAX_TEXTS",
	"CELEBNEWS_CRAWL_TIMEOUT",
	"CELEBNEWS_USE_BROWSER",
	"CELEBNEWS_VERBOSE",
	config.EnvSerpAPIKey,
	config.EnvSerperKey,
	config.EnvOpenAIKey,
	config.EnvGeminiKey,
}

// cleanEnv clears every variable the config reads.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// parseGlobal resets the shared flag values and parses args into a fresh flag set.
func parseGlobal(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	saved := global
	t.Cleanup(func() { global = saved })
	global = globalFlags{}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerGlobalFlags(fs, &global)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadConfig_EnvOnly(t *testing.T) {
	cleanEnv(t)
	t.Setenv(config.EnvSerpAPIKey, "serp")
	fs := parseGlobal(t)

	cfg, err := loadConfig(fs)
	require.NoError(t, err)

	assert.Equal(t, config.SearchSerpAPI, cfg.SearchProvider)
	assert.Equal(t, config.LLMOpenAI, cfg.LLMProvider)
	assert.Equal(t, config.DefaultCount, cfg.Count)
	assert.Equal(t, "serp", cfg.SerpAPIKey)
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	cleanEnv(t)
	t.Setenv("CELEBNEWS_COUNT", "8")
	fs := parseGlobal(t, "--provider", "Gemini", "--search-provider", "serper", "--model", "gemini-2.5-pro", "--count", "3", "-v")

	cfg, err := loadConfig(fs)
	require.NoError(t, err)

	assert.Equal(t, config.LLMGemini, cfg.LLMProvider)
	assert.Equal(t, config.SearchSerper, cfg.SearchProvider)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.Equal(t, 3, cfg.Count)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_FileBetweenEnvAndFlags(t *testing.T) {
	cleanEnv(t)
	t.Setenv("CELEBNEWS_COUNT", "8")
	t.Setenv(config.EnvOpenAIKey, "from-env")

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"count": 2, "model": "gpt-4o", "max_texts": 3}`), 0644))

	fs := parseGlobal(t, "--config", path, "--model", "gpt-4.1")

	cfg, err := loadConfig(fs)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Count)
	assert.Equal(t, 3, cfg.MaxTexts)
	assert.Equal(t, "gpt-4.1", cfg.Model)
	assert.Equal(t, "from-env", cfg.OpenAIAPIKey)
}

func TestLoadConfig_InvalidProvider(t *testing.T) {
	cleanEnv(t)
	fs := parseGlobal(t, "--provider", "claude")

	_, err := loadConfig(fs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown llm provider")
}

func parseQuery(t *testing.T, args ...string) (*pflag.FlagSet, queryFlags) {
	t.Helper()
	var q queryFlags
	fs := pflag.NewFlagSet("query", pflag.ContinueOnError)
	addQueryFlags(fs, &q)
	require.NoError(t, fs.Parse(args))
	return fs, q
}

func TestBuildRequest(t *testing.T) {
	cfg := &config.Config{Count: 4}

	t.Run("name flag and filter", func(t *testing.T) {
		fs, q := parseQuery(t, "--name", "Ada Lovelace", "--date-value", "2", "--date-unit", "Week")

		req, err := buildRequest(fs, q, nil, cfg)
		require.NoError(t, err)

		assert.Equal(t, "Ada Lovelace", req.Name)
		assert.Equal(t, 4, req.Count)
		require.NotNil(t, req.Filter)
		assert.Equal(t, types.RecencyFilter{Amount: 2, Unit: types.UnitWeek}, *req.Filter)
	})

	t.Run("positional name", func(t *testing.T) {
		fs, q := parseQuery(t)

		req, err := buildRequest(fs, q, []string{"Ada", "Lovelace"}, cfg)
		require.NoError(t, err)

		assert.Equal(t, "Ada Lovelace", req.Name)
		assert.Nil(t, req.Filter)
	})

	t.Run("partial filter", func(t *testing.T) {
		fs, q := parseQuery(t, "--name", "Ada", "--date-value", "2")

		_, err := buildRequest(fs, q, nil, cfg)
		require.Error(t, err)
		assert.Equal(t, "To filter by date, provide both date_value and date_unit.", err.Error())
	})

	t.Run("unsupported unit", func(t *testing.T) {
		fs, q := parseQuery(t, "--name", "Ada", "--date-value", "2", "--date-unit", "year")

		_, err := buildRequest(fs, q, nil, cfg)
		require.Error(t, err)
		assert.Equal(t, "Unsupported date_unit 'year'. Choose day, week, or month.", err.Error())
	})
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "Please provide a subject name to search for.",
		formatError(&search.InputError{Field: "name", Message: "Please provide a subject name to search for."}))
	assert.Equal(t, "Missing SERPAPI_KEY environment variable.",
		formatError(&search.ProviderError{Provider: "serpapi", Message: "Missing SERPAPI_KEY environment variable."}))
	assert.Equal(t, "Error: boom", formatError(errors.New("boom")))
}

func TestNewComponents_MissingSearchKey(t *testing.T) {
	cleanEnv(t)
	cfg := &config.Config{SearchProvider: config.SearchSerpAPI, LLMProvider: config.LLMOpenAI, Count: 5, MaxTexts: 5, CrawlTimeout: config.DefaultCrawlTimeout}

	_, err := newComponents(t.Context(), cfg, true)
	require.Error(t, err)
	assert.Equal(t, "Missing SERPAPI_KEY environment variable.", formatError(err))
}

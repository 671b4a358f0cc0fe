package search

import (
	"testing"

	"github.com/jonathan/celeb-news/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_SelectsProvider(t *testing.T) {
	cfg := &config.Config{SearchProvider: config.SearchSerper, SerperAPIKey: "k"}
	client, err := NewClient(cfg, nil, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, config.SearchSerper, client.Name())

	cfg = &config.Config{SearchProvider: config.SearchSerpAPI, SerpAPIKey: "k"}
	client, err = NewClient(cfg, nil, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, config.SearchSerpAPI, client.Name())
}

func TestNewClient_MissingKey(t *testing.T) {
	_, err := NewClient(&config.Config{SearchProvider: config.SearchSerpAPI}, nil, zerolog.Nop())
	require.Error(t, err)
	assert.True(t, IsProviderError(err))
	assert.Equal(t, "Missing SERPAPI_KEY environment variable.", err.Error())

	_, err = NewClient(&config.Config{SearchProvider: config.SearchSerper}, nil, zerolog.Nop())
	require.Error(t, err)
	assert.Equal(t, "Missing SERPER_API_KEY environment variable.", err.Error())
}

func TestNewClient_UnknownProvider(t *testing.T) {
	_, err := NewClient(&config.Config{SearchProvider: "bing", SerpAPIKey: "k"}, nil, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown search provider")
}

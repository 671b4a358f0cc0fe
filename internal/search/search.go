package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jonathan/celeb-news/internal/config"
	"github.com/jonathan/celeb-news/internal/schemas"
	"github.com/jonathan/celeb-news/internal/types"
	"github.com/rs/zerolog"
)

// maxPayloadBytes caps how much of a provider response is read.
const maxPayloadBytes = 4 << 20

// Client searches a news provider.
// An empty, nil-error result means the provider found nothing.
type Client interface {
	Search(ctx context.Context, q Query) ([]types.SearchResult, error)
	// Name returns the provider name used in logs and errors
	Name() string
}

// Options tunes a provider client. Zero values use the provider defaults.
type Options struct {
	Endpoint   string
	HTTPClient *http.Client
}

func (o *Options) endpoint(def string) string {
	if o == nil || o.Endpoint == "" {
		return def
	}
	return o.Endpoint
}

func (o *Options) httpClient() *http.Client {
	if o == nil || o.HTTPClient == nil {
		return http.DefaultClient
	}
	return o.HTTPClient
}

// NewClient creates the search client selected by cfg.
// A missing credential is reported as a ProviderError before any request is made.
func NewClient(cfg *config.Config, opts *Options, log zerolog.Logger) (Client, error) {
	key, envName := cfg.SearchAPIKey()

	switch cfg.SearchProvider {
	case config.SearchSerper:
		if key == "" {
			return nil, missingKeyError(config.SearchSerper, envName)
		}
		return NewSerperClient(key, opts, log), nil
	case config.SearchSerpAPI, "":
		if key == "" {
			return nil, missingKeyError(config.SearchSerpAPI, envName)
		}
		return NewSerpAPIClient(key, opts, log), nil
	default:
		return nil, fmt.Errorf("unknown search provider %q", cfg.SearchProvider)
	}
}

// doRequest executes req and returns the (size-capped) body and status code.
func doRequest(client *http.Client, req *http.Request, provider string) ([]byte, int, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, &ProviderError{
			Provider: provider,
			Message:  fmt.Sprintf("%s request failed", provider),
			Cause:    err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, resp.StatusCode, &ProviderError{
			Provider: provider,
			Message:  fmt.Sprintf("failed to read %s response", provider),
			Cause:    err,
		}
	}
	return body, resp.StatusCode, nil
}

// decodePayload validates body against the named schema and unmarshals it into v.
func decodePayload(schemaName string, body []byte, v any) error {
	if err := schemas.ValidatePayload(schemaName, body); err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}

// newsItem is the article shape shared by both providers.
type newsItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Date    string `json:"date"`
	Link    string `json:"link"`
}

func toResults(items []newsItem) []types.SearchResult {
	results := make([]types.SearchResult, 0, len(items))
	for _, item := range items {
		results = append(results, types.NewSearchResult(item.Title, item.Snippet, item.Date, item.Link))
	}
	return results
}

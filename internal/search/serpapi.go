package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jonathan/celeb-news/internal/config"
	"github.com/jonathan/celeb-news/internal/schemas"
	"github.com/jonathan/celeb-news/internal/types"
	"github.com/rs/zerolog"
)

// SerpAPIEndpoint is the SerpAPI search endpoint.
const SerpAPIEndpoint = "https://serpapi.com/search.json"

// SerpAPIClient searches Google News through SerpAPI.
type SerpAPIClient struct {
	apiKey   string
	endpoint string
	http     *http.Client
	log      zerolog.Logger
}

type serpAPIResponse struct {
	Error        string     `json:"error"`
	ErrorDetails string     `json:"error_details"`
	NewsResults  []newsItem `json:"news_results"`
}

// NewSerpAPIClient creates a SerpAPI client.
func NewSerpAPIClient(apiKey string, opts *Options, log zerolog.Logger) *SerpAPIClient {
	return &SerpAPIClient{
		apiKey:   apiKey,
		endpoint: opts.endpoint(SerpAPIEndpoint),
		http:     opts.httpClient(),
		log:      log.With().Str("component", "search").Str("provider", config.SearchSerpAPI).Logger(),
	}
}

// Name implements Client.
func (c *SerpAPIClient) Name() string {
	return config.SearchSerpAPI
}

// Search implements Client.
func (c *SerpAPIClient) Search(ctx context.Context, q Query) ([]types.SearchResult, error) {
	if err := ValidateQuery(q); err != nil {
		return nil, err
	}

	reqURL, err := c.buildURL(q)
	if err != nil {
		return nil, &ProviderError{Provider: c.Name(), Message: "invalid SerpAPI endpoint", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &ProviderError{Provider: c.Name(), Message: "failed to create SerpAPI request", Cause: err}
	}

	c.log.Debug().Str("q", q.Name).Interface("filter", q.Filter).Msg("Searching news")

	body, status, err := doRequest(c.http, req, c.Name())
	if err != nil {
		return nil, err
	}

	var payload serpAPIResponse
	decodeErr := decodePayload(schemas.SerpAPINews, body, &payload)

	if decodeErr == nil && payload.Error != "" {
		return nil, &ProviderError{
			Provider: c.Name(),
			Message:  strings.TrimSpace(fmt.Sprintf("SerpAPI returned an error: %s. %s", payload.Error, payload.ErrorDetails)),
		}
	}
	if !isSuccess(status) {
		return nil, &ProviderError{
			Provider: c.Name(),
			Message:  fmt.Sprintf("SerpAPI request failed with HTTP status %d", status),
		}
	}
	if decodeErr != nil {
		return nil, &ProviderError{Provider: c.Name(), Message: "SerpAPI returned an unreadable response", Cause: decodeErr}
	}

	results := toResults(payload.NewsResults)
	c.log.Debug().Int("results", len(results)).Msg("Search complete")
	return results, nil
}

// buildURL assembles the Google News query: engine=google with tbm=nws, plus as_qdr for recency.
func (c *SerpAPIClient) buildURL(q Query) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", strings.TrimSpace(q.Name))
	params.Set("tbm", "nws")
	params.Set("api_key", c.apiKey)
	if q.Count > 0 {
		params.Set("num", strconv.Itoa(q.Count))
	}
	if q.Filter != nil {
		params.Set("as_qdr", q.Filter.Code())
	}

	u.RawQuery = params.Encode()
	return u.String(), nil
}

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/celeb-news/internal/config"
	"github.com/jonathan/celeb-news/internal/schemas"
	"github.com/jonathan/celeb-news/internal/types"
	"github.com/rs/zerolog"
)

// SerperEndpoint is the Serper.dev news endpoint.
const SerperEndpoint = "https://google.serper.dev/news"

// SerperClient searches Google News through Serper.dev.
type SerperClient struct {
	apiKey   string
	endpoint string
	http     *http.Client
	log      zerolog.Logger
}

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num,omitempty"`
	TBS string `json:"tbs,omitempty"`
}

type serperResponse struct {
	Message string     `json:"message"`
	Error   string     `json:"error"`
	News    []newsItem `json:"news"`
}

// NewSerperClient creates a Serper client.
func NewSerperClient(apiKey string, opts *Options, log zerolog.Logger) *SerperClient {
	return &SerperClient{
		apiKey:   apiKey,
		endpoint: opts.endpoint(SerperEndpoint),
		http:     opts.httpClient(),
		log:      log.With().Str("component", "search").Str("provider", config.SearchSerper).Logger(),
	}
}

// Name implements Client.
func (c *SerperClient) Name() string {
	return config.SearchSerper
}

// Search implements Client.
func (c *SerperClient) Search(ctx context.Context, q Query) ([]types.SearchResult, error) {
	if err := ValidateQuery(q); err != nil {
		return nil, err
	}

	payload := serperRequest{Q: strings.TrimSpace(q.Name), Num: q.Count}
	if q.Filter != nil {
		payload.TBS = "qdr:" + q.Filter.Code()
	}
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, &ProviderError{Provider: c.Name(), Message: "failed to encode Serper request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, &ProviderError{Provider: c.Name(), Message: "failed to create Serper request", Cause: err}
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().Str("q", payload.Q).Str("tbs", payload.TBS).Msg("Searching news")

	body, status, err := doRequest(c.http, req, c.Name())
	if err != nil {
		return nil, err
	}

	var resp serperResponse
	decodeErr := decodePayload(schemas.SerperNews, body, &resp)

	if decodeErr == nil && (resp.Message != "" || resp.Error != "") && len(resp.News) == 0 {
		msg := resp.Error
		if msg == "" {
			msg = resp.Message
		}
		return nil, &ProviderError{
			Provider: c.Name(),
			Message:  fmt.Sprintf("Serper returned an error: %s", msg),
		}
	}
	if !isSuccess(status) {
		return nil, &ProviderError{
			Provider: c.Name(),
			Message:  fmt.Sprintf("Serper request failed with HTTP status %d", status),
		}
	}
	if decodeErr != nil {
		return nil, &ProviderError{Provider: c.Name(), Message: "Serper returned an unreadable response", Cause: decodeErr}
	}

	results := toResults(resp.News)
	c.log.Debug().Int("results", len(results)).Msg("Search complete")
	return results, nil
}

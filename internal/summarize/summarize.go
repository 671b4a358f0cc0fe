// Package summarize turns aggregated article text into a short narrative, falling back
// to a deterministic digest of the search results when the language model fails.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/celeb-news/internal/config"
	"github.com/jonathan/celeb-news/internal/llm"
	"github.com/jonathan/celeb-news/internal/prompts"
	"github.com/jonathan/celeb-news/internal/types"
	"github.com/rs/zerolog"
)

// DefaultCount is how many search results the fallback digest lists.
const DefaultCount = 5

// ErrNoClient is the fallback cause when no model client could be built.
var ErrNoClient = errors.New("no language model client configured")

// Summarizer produces a Summary for one subject.
type Summarizer struct {
	client   llm.Client
	setupErr error
	tier     llm.ModelTier
	count    int
	log      zerolog.Logger
}

// New creates a Summarizer. A nil client always yields the fallback digest.
func New(client llm.Client, count int, log zerolog.Logger) *Summarizer {
	if count <= 0 {
		count = DefaultCount
	}
	return &Summarizer{
		client: client,
		tier:   llm.TierLite,
		count:  count,
		log:    log.With().Str("component", "summarizer").Logger(),
	}
}

// NewFromConfig builds the model client described by cfg. A missing credential or a
// client construction failure is not fatal: it is kept and reported through the
// fallback digest, since a degraded summary beats none.
func NewFromConfig(ctx context.Context, cfg *config.Config, log zerolog.Logger) *Summarizer {
	llmCfg := llm.ConfigFor(cfg.LLMProvider)
	if cfg.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierLite, cfg.Model)
	}
	if cfg.LLMProvider == config.LLMOpenAI {
		llmCfg.BaseURL = cfg.OpenAIBaseURL
	}

	s := New(nil, cfg.Count, log)

	key, envName := cfg.LLMAPIKey()
	if key == "" {
		s.setupErr = fmt.Errorf("%w: %s is not set", ErrNoClient, envName)
		s.log.Warn().Str("env", envName).Msg("No LLM credential; summaries will use the fallback digest")
		return s
	}

	client, err := llm.NewClient(ctx, llmCfg, key)
	if err != nil {
		s.setupErr = fmt.Errorf("%w: %v", ErrNoClient, err)
		s.log.Warn().Err(err).Msg("LLM client unavailable; summaries will use the fallback digest")
		return s
	}
	s.client = client
	return s
}

// Close releases the model client.
func (s *Summarizer) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Summarize asks the model for a narrative built from agg. An empty context is still sent.
// Any fault from the model call yields the fallback digest over the first N results.
func (s *Summarizer) Summarize(ctx context.Context, name string, agg types.AggregatedContext, results []types.SearchResult) types.Summary {
	reply, err := s.generate(ctx, name, agg.Text)
	if err != nil {
		s.log.Warn().Err(err).Str("name", name).Msg("Summary generation failed, using fallback digest")
		return types.Summary{
			Text:   FallbackDigest(err, results, s.count),
			Branch: types.BranchFallback,
			Err:    err,
		}
	}

	s.log.Debug().Str("model", s.client.GetModel(s.tier)).Int("chars", len(reply)).Msg("Summary generated")
	return types.Summary{Text: reply, Branch: types.BranchPrimary}
}

func (s *Summarizer) generate(ctx context.Context, name, contextText string) (string, error) {
	if s.client == nil {
		if s.setupErr != nil {
			return "", s.setupErr
		}
		return "", ErrNoClient
	}
	return s.client.Chat(ctx, BuildMessages(name, contextText), s.tier)
}

// BuildMessages renders the system and user messages for a subject and its context.
func BuildMessages(name, contextText string) llm.Messages {
	return llm.Messages{
		System: prompts.MustGet(prompts.SummarizeFile, "system"),
		User: prompts.Format(prompts.MustGet(prompts.SummarizeFile, "user"), map[string]string{
			"Context": contextText,
			"Name":    name,
		}),
	}
}

// FallbackDigest explains the failure and lists the first n results as bullets.
func FallbackDigest(cause error, results []types.SearchResult, n int) string {
	top := firstN(results, n)
	return fmt.Sprintf("Summary generation failed: %v\n\nHere are the raw top %d items:\n\n%s",
		cause, len(top), Bullets(top))
}

// Bullets renders results as "{i}. {title} ({date})\n   {snippet}" lines.
func Bullets(results []types.SearchResult) string {
	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = fmt.Sprintf("%d. %s (%s)\n   %s", i+1, r.Title, r.Date, r.Snippet)
	}
	return strings.Join(lines, "\n")
}

// Digest renders a headline list without crawling or a model call.
func Digest(name string, results []types.SearchResult, n int) string {
	top := firstN(results, n)

	lines := make([]string, 0, len(top)+1)
	lines = append(lines, fmt.Sprintf("Top %d items on %s:\n", len(top), name))
	for i, r := range top {
		lines = append(lines, fmt.Sprintf("%d. “%s” (%s)\n   %s\n", i+1, r.Title, r.Date, r.Snippet))
	}
	return strings.Join(lines, "\n")
}

func firstN(results []types.SearchResult, n int) []types.SearchResult {
	if n <= 0 {
		n = DefaultCount
	}
	if len(results) > n {
		return results[:n]
	}
	return results
}

// Package pipeline provides the high-level orchestration for news summarization:
// search, then aggregate crawled article text, then summarize.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/celeb-news/internal/search"
	"github.com/jonathan/celeb-news/internal/summarize"
	"github.com/jonathan/celeb-news/internal/types"
)

// Pipeline steps reported through ProgressEvent.
const (
	StepSearch    = "search"
	StepAggregate = "aggregate"
	StepSummarize = "summarize"
	StepDigest    = "digest"
)

const noNewsFmt = "No recent news found for '%s'."

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Aggregator builds the labeled context from search results.
type Aggregator interface {
	Aggregate(ctx context.Context, results []types.SearchResult) types.AggregatedContext
}

// Summarizer turns an aggregated context into final text.
type Summarizer interface {
	Summarize(ctx context.Context, name string, agg types.AggregatedContext, results []types.SearchResult) types.Summary
}

// Request is one pipeline invocation.
type Request struct {
	Name       string
	Filter     *types.RecencyFilter
	Count      int // items listed by a digest; 0 uses the runner's default
	OnProgress ProgressCallback
}

// Result carries the intermediate values of a run alongside the final text.
type Result struct {
	RunID   uuid.UUID
	Results []types.SearchResult
	Context types.AggregatedContext
	Summary types.Summary
	Text    string
}

// Runner wires the stages together. It holds no per-run state and is safe for concurrent runs
// as long as its stages are.
type Runner struct {
	searcher   search.Client
	aggregator Aggregator
	summarizer Summarizer
	count      int
	log        zerolog.Logger
}

// NewRunner creates a Runner. count is the default number of results requested per run.
func NewRunner(searcher search.Client, aggregator Aggregator, summarizer Summarizer, count int, log zerolog.Logger) *Runner {
	if count <= 0 {
		count = summarize.DefaultCount
	}
	return &Runner{
		searcher:   searcher,
		aggregator: aggregator,
		summarizer: summarizer,
		count:      count,
		log:        log.With().Str("component", "pipeline").Logger(),
	}
}

// Run executes search, aggregation and summarization and returns the text to show.
func (r *Runner) Run(ctx context.Context, req Request) (string, error) {
	res, err := r.Execute(ctx, req)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Execute is Run with the intermediate values exposed.
// Input and provider errors are returned unchanged so callers can print them as-is.
func (r *Runner) Execute(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.New()
	log := r.log.With().Str("run_id", runID.String()).Str("name", req.Name).Logger()

	results, err := r.search(ctx, runID, req, 0)
	if err != nil {
		log.Debug().Err(err).Msg("Search failed")
		return nil, err
	}

	res := &Result{RunID: runID, Results: results}
	if len(results) == 0 {
		res.Text = NoNewsMessage(req.Name)
		log.Info().Msg("No results")
		return res, nil
	}

	res.Context = r.aggregator.Aggregate(ctx, results)
	log.Info().Int("included", res.Context.Included).Int("candidates", len(results)).Msg("Context aggregated")
	emit(req, runID, StepAggregate, fmt.Sprintf("Aggregated %d of %d articles", res.Context.Included, len(results)), res.Context)

	// The fallback digest lists at most the requested count.
	top := results
	if n := r.countFor(req); len(top) > n {
		top = top[:n]
	}
	res.Summary = r.summarizer.Summarize(ctx, strings.TrimSpace(req.Name), res.Context, top)
	res.Text = res.Summary.Text
	log.Info().Str("branch", string(res.Summary.Branch)).Msg("Summary ready")
	emit(req, runID, StepSummarize, fmt.Sprintf("Summary produced by %s branch", res.Summary.Branch), res.Summary)

	return res, nil
}

// Digest searches and renders a headline list. Nothing is crawled and no model is called.
func (r *Runner) Digest(ctx context.Context, req Request) (string, error) {
	runID := uuid.New()

	results, err := r.search(ctx, runID, req, r.countFor(req))
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return NoNewsMessage(req.Name), nil
	}

	text := summarize.Digest(strings.TrimSpace(req.Name), results, r.countFor(req))
	emit(req, runID, StepDigest, "Rendered digest", text)
	return text, nil
}

// search queries the provider. A zero limit leaves the result count to the provider,
// so the summarize path gets its full default list to crawl through.
func (r *Runner) search(ctx context.Context, runID uuid.UUID, req Request, limit int) ([]types.SearchResult, error) {
	q := search.Query{Name: strings.TrimSpace(req.Name), Filter: req.Filter, Count: limit}
	if err := search.ValidateQuery(q); err != nil {
		return nil, err
	}

	results, err := r.searcher.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	emit(req, runID, StepSearch, fmt.Sprintf("%s returned %d results", r.searcher.Name(), len(results)), results)
	return results, nil
}

func (r *Runner) countFor(req Request) int {
	if req.Count > 0 {
		return req.Count
	}
	return r.count
}

// emit calls the progress callback if configured
func emit(req Request, runID uuid.UUID, step, message string, content any) {
	if req.OnProgress != nil {
		req.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			RunID:   runID.String(),
			Content: content,
		})
	}
}

// NoNewsMessage is the text returned when a search finds nothing.
func NoNewsMessage(name string) string {
	return fmt.Sprintf(noNewsFmt, strings.TrimSpace(name))
}

// Package aggregate gathers crawled article bodies into a single labeled context.
package aggregate

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/celeb-news/internal/types"
	"github.com/rs/zerolog"
)

// DefaultCap is the maximum number of crawled bodies included in a context.
const DefaultCap = 5

// Extractor crawls a single link.
type Extractor interface {
	Extract(ctx context.Context, urlStr string) types.CrawlOutcome
}

// Observer is notified of every crawled candidate, in walk order.
type Observer func(index int, result types.SearchResult, outcome types.CrawlOutcome)

// Aggregator walks search results in order and collects successful crawls.
type Aggregator struct {
	extractor Extractor
	cap       int
	observer  Observer
	log       zerolog.Logger
}

// New creates an Aggregator. A non-positive maxTexts uses DefaultCap.
func New(extractor Extractor, maxTexts int, log zerolog.Logger) *Aggregator {
	if maxTexts <= 0 {
		maxTexts = DefaultCap
	}
	return &Aggregator{
		extractor: extractor,
		cap:       maxTexts,
		log:       log.With().Str("component", "aggregator").Logger(),
	}
}

// WithObserver sets a callback that sees each crawl outcome.
func (a *Aggregator) WithObserver(observer Observer) *Aggregator {
	a.observer = observer
	return a
}

// Cap returns the maximum number of included bodies.
func (a *Aggregator) Cap() int {
	return a.cap
}

// Aggregate crawls result links one at a time and concatenates usable bodies as
// "Text N" blocks. Failed or empty crawls are skipped without counting. The walk
// stops once the cap is reached or ctx is done.
func (a *Aggregator) Aggregate(ctx context.Context, results []types.SearchResult) types.AggregatedContext {
	var sb strings.Builder
	agg := types.AggregatedContext{Sources: make([]string, 0, a.cap)}

	for i, result := range results {
		if agg.Included >= a.cap {
			break
		}
		if err := ctx.Err(); err != nil {
			a.log.Warn().Err(err).Int("included", agg.Included).Msg("Aggregation interrupted")
			break
		}

		outcome := a.extractor.Extract(ctx, result.Link)
		if a.observer != nil {
			a.observer(i, result, outcome)
		}

		if !outcome.Usable() {
			a.log.Debug().
				Str("url", result.Link).
				Str("reason", string(outcome.Reason)).
				Bool("empty", outcome.OK).
				Msg("Skipping link")
			continue
		}

		agg.Included++
		sb.WriteString(FormatBlock(agg.Included, outcome.Text))
		agg.Sources = append(agg.Sources, result.Link)
	}

	agg.Text = sb.String()
	a.log.Debug().Int("included", agg.Included).Int("candidates", len(results)).Msg("Aggregation complete")
	return agg
}

// FormatBlock renders one labeled body.
func FormatBlock(n int, text string) string {
	return fmt.Sprintf("Text %d\n%s\n", n, text)
}

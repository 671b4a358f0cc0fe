package aggregate

import (
	"context"
	"fmt"
	"testing"

	"github.com/jonathan/celeb-news/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor returns canned outcomes by link and records the visit order.
type fakeExtractor struct {
	outcomes map[string]types.CrawlOutcome
	visited  []string
}

func (f *fakeExtractor) Extract(_ context.Context, urlStr string) types.CrawlOutcome {
	f.visited = append(f.visited, urlStr)
	if outcome, ok := f.outcomes[urlStr]; ok {
		return outcome
	}
	return types.CrawlFailure(types.ReasonConnectionError, "unknown host")
}

func resultsFor(links ...string) []types.SearchResult {
	results := make([]types.SearchResult, len(links))
	for i, link := range links {
		results[i] = types.NewSearchResult("title "+link, "snippet", "today", link)
	}
	return results
}

func TestAggregate_TwoSuccesses(t *testing.T) {
	ext := &fakeExtractor{outcomes: map[string]types.CrawlOutcome{
		"a": types.CrawlSuccess("alpha body"),
		"b": types.CrawlSuccess("beta body"),
	}}

	agg := New(ext, 5, zerolog.Nop()).Aggregate(context.Background(), resultsFor("a", "b"))

	assert.Equal(t, 2, agg.Included)
	assert.Equal(t, "Text 1\nalpha body\nText 2\nbeta body\n", agg.Text)
	assert.Equal(t, []string{"a", "b"}, agg.Sources)
}

func TestAggregate_SkipsFailuresWithoutGaps(t *testing.T) {
	ext := &fakeExtractor{outcomes: map[string]types.CrawlOutcome{
		"a": types.CrawlFailure(types.ReasonHTTPError, "404"),
		"b": types.CrawlSuccess("beta"),
		"c": types.CrawlSuccess(""),
		"d": types.CrawlFailure(types.ReasonTimeout, "slow"),
		"e": types.CrawlSuccess("echo"),
	}}

	agg := New(ext, 5, zerolog.Nop()).Aggregate(context.Background(), resultsFor("a", "b", "c", "d", "e"))

	assert.Equal(t, 2, agg.Included)
	assert.Equal(t, "Text 1\nbeta\nText 2\necho\n", agg.Text)
	assert.Equal(t, []string{"b", "e"}, agg.Sources)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ext.visited)
}

func TestAggregate_StopsAtCap(t *testing.T) {
	outcomes := map[string]types.CrawlOutcome{}
	links := make([]string, 0, 8)
	for i := 1; i <= 8; i++ {
		link := fmt.Sprintf("link-%d", i)
		links = append(links, link)
		outcomes[link] = types.CrawlSuccess(fmt.Sprintf("body %d", i))
	}
	ext := &fakeExtractor{outcomes: outcomes}

	agg := New(ext, 0, zerolog.Nop()).Aggregate(context.Background(), resultsFor(links...))

	assert.Equal(t, DefaultCap, agg.Included)
	assert.Len(t, ext.visited, DefaultCap, "no candidate is crawled once the cap is reached")
	for i := 1; i <= DefaultCap; i++ {
		assert.Contains(t, agg.Text, fmt.Sprintf("Text %d\nbody %d\n", i, i))
	}
	assert.NotContains(t, agg.Text, "Text 6")
}

func TestAggregate_IncludedIsMinOfCapAndSuccesses(t *testing.T) {
	tests := []struct {
		name      string
		cap       int
		successes int
		failures  int
		want      int
	}{
		{"fewer successes than cap", 5, 3, 4, 3},
		{"more successes than cap", 2, 6, 1, 2},
		{"all failures", 5, 0, 6, 0},
		{"no candidates", 5, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcomes := map[string]types.CrawlOutcome{}
			var links []string
			for i := 0; i < tt.failures; i++ {
				link := fmt.Sprintf("fail-%d", i)
				links = append(links, link)
				outcomes[link] = types.CrawlFailure(types.ReasonParseError, "bad")
			}
			for i := 0; i < tt.successes; i++ {
				link := fmt.Sprintf("ok-%d", i)
				links = append(links, link)
				outcomes[link] = types.CrawlSuccess("text")
			}

			agg := New(&fakeExtractor{outcomes: outcomes}, tt.cap, zerolog.Nop()).
				Aggregate(context.Background(), resultsFor(links...))
			assert.Equal(t, tt.want, agg.Included)
			assert.Len(t, agg.Sources, tt.want)
		})
	}
}

func TestAggregate_EmptyContext(t *testing.T) {
	agg := New(&fakeExtractor{}, 5, zerolog.Nop()).Aggregate(context.Background(), resultsFor("x", "y"))

	assert.Equal(t, 0, agg.Included)
	assert.Empty(t, agg.Text)
}

func TestAggregate_Observer(t *testing.T) {
	ext := &fakeExtractor{outcomes: map[string]types.CrawlOutcome{
		"a": types.CrawlSuccess("alpha"),
	}}

	var seen []int
	var reasons []types.FailureReason
	New(ext, 5, zerolog.Nop()).
		WithObserver(func(index int, _ types.SearchResult, outcome types.CrawlOutcome) {
			seen = append(seen, index)
			reasons = append(reasons, outcome.Reason)
		}).
		Aggregate(context.Background(), resultsFor("a", "b"))

	assert.Equal(t, []int{0, 1}, seen)
	assert.Equal(t, []types.FailureReason{"", types.ReasonConnectionError}, reasons)
}

func TestAggregate_CancelledContext(t *testing.T) {
	ext := &fakeExtractor{outcomes: map[string]types.CrawlOutcome{"a": types.CrawlSuccess("alpha")}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agg := New(ext, 5, zerolog.Nop()).Aggregate(ctx, resultsFor("a"))

	assert.Equal(t, 0, agg.Included)
	assert.Empty(t, ext.visited)
}

func TestFormatBlock(t *testing.T) {
	require.Equal(t, "Text 3\nbody\n", FormatBlock(3, "body"))
}

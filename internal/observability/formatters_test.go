package observability

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/celeb-news/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintSearchResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSearchResults("Ada Lovelace", []types.SearchResult{
		types.NewSearchResult("Ada honored", "", "2 days ago", "https://news.example/ada"),
	})
	output := buf.String()

	assert.Contains(t, output, "SEARCH RESULTS: ADA LOVELACE (1)")
	assert.Contains(t, output, "1. Ada honored")
	assert.Contains(t, output, "2 days ago")
	assert.Contains(t, output, "https://news.example/ada")
}

func TestPrintSearchResults_Many(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	results := make([]types.SearchResult, maxItemsToShow+2)
	for i := range results {
		results[i] = types.NewSearchResult(fmt.Sprintf("T%d", i), "", "", "")
	}
	p.PrintSearchResults("x", results)

	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintSearchResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSearchResults("x", nil)

	assert.Contains(t, buf.String(), "No results.")
}

func TestPrintCrawlOutcome(t *testing.T) {
	result := types.NewSearchResult("Headline", "", "", "https://news.example/1")

	tests := []struct {
		name    string
		outcome types.CrawlOutcome
		want    []string
	}{
		{
			name:    "success",
			outcome: types.CrawlSuccess("line one\nline two\nline three\nline four"),
			want:    []string{"✓ 4 lines", "line one", "line three"},
		},
		{
			name:    "failure",
			outcome: types.CrawlFailure(types.ReasonHTTPError, "HTTP 404"),
			want:    []string{"✗ http_error", "HTTP 404"},
		},
		{
			name:    "empty",
			outcome: types.CrawlSuccess(""),
			want:    []string{"no readable text"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf).PrintCrawlOutcome(0, result, tt.outcome)

			output := buf.String()
			assert.Contains(t, output, "CRAWL 1: Headline")
			for _, w := range tt.want {
				assert.Contains(t, output, w)
			}
			assert.NotContains(t, output, "line four")
		})
	}
}

func TestPrintAggregatedContext(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAggregatedContext(types.AggregatedContext{
		Text:     "Text 1\nbody\n",
		Included: 1,
		Sources:  []string{"https://a.example"},
	})
	output := buf.String()

	assert.Contains(t, output, "AGGREGATED CONTEXT")
	assert.Contains(t, output, "Included: 1")
	assert.Contains(t, output, "Text 1 ← https://a.example")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummary(types.Summary{Text: "ok", Branch: types.BranchPrimary})
	assert.Contains(t, buf.String(), "SUMMARY GENERATED")

	buf.Reset()
	p.PrintSummary(types.Summary{Branch: types.BranchFallback, Err: errors.New("quota exceeded")})
	assert.Contains(t, buf.String(), "SUMMARY FALLBACK")
	assert.Contains(t, buf.String(), "quota exceeded")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSearchResults("x", []types.SearchResult{
		types.NewSearchResult(strings.Repeat("very long headline ", 10), "", "", ""),
	})
	output := buf.String()

	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.Contains(t, output, "...")
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
}

// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/celeb-news/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
	// maxPreviewLines bounds how much crawled text a box shows
	maxPreviewLines = 3
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// PrintSearchResults outputs the candidate articles returned by the search provider.
func (p *Printer) PrintSearchResults(name string, results []types.SearchResult) {
	var sb strings.Builder

	if len(results) == 0 {
		sb.WriteString("No results.\n")
	}

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := results[i]
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, r.Title))
		sb.WriteString(fmt.Sprintf("   %s\n", r.Date))
		sb.WriteString(fmt.Sprintf("   %s\n", r.Link))
	}
	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(results)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("SEARCH RESULTS: %s (%d)", strings.ToUpper(name), len(results)), sb.String())
}

// PrintCrawlOutcome outputs one crawl attempt with a short preview of its text.
func (p *Printer) PrintCrawlOutcome(index int, result types.SearchResult, outcome types.CrawlOutcome) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("URL:    %s\n", result.Link))
	switch {
	case !outcome.OK:
		sb.WriteString(fmt.Sprintf("Status: ✗ %s\n", outcome.Reason))
		if outcome.Detail != "" {
			sb.WriteString(fmt.Sprintf("Detail: %s\n", outcome.Detail))
		}
	case outcome.Text == "":
		sb.WriteString("Status: ⚠ no readable text\n")
	default:
		lines := strings.Split(outcome.Text, "\n")
		sb.WriteString(fmt.Sprintf("Status: ✓ %d lines\n", len(lines)))
		for _, line := range lines[:min(len(lines), maxPreviewLines)] {
			sb.WriteString(fmt.Sprintf("  %s\n", line))
		}
	}

	p.printBox(fmt.Sprintf("CRAWL %d: %s", index+1, result.Title), sb.String())
}

// PrintAggregatedContext outputs which sources made it into the context.
func (p *Printer) PrintAggregatedContext(agg types.AggregatedContext) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Included: %d\n", agg.Included))
	sb.WriteString(fmt.Sprintf("Chars:    %d\n", len(agg.Text)))
	for i, src := range agg.Sources {
		sb.WriteString(fmt.Sprintf("  Text %d ← %s\n", i+1, src))
	}

	p.printBox("AGGREGATED CONTEXT", sb.String())
}

// PrintSummary reports which branch produced the final text.
func (p *Printer) PrintSummary(summary types.Summary) {
	if summary.IsFallback() {
		content := "Branch: fallback digest\n"
		if summary.Err != nil {
			content += fmt.Sprintf("Cause:  %v\n", summary.Err)
		}
		p.printBox("⚠️ SUMMARY FALLBACK", content)
		return
	}
	p.printBox("✅ SUMMARY GENERATED", fmt.Sprintf("Branch: primary\nChars:  %d\n", len(summary.Text)))
}

// Package types provides type definitions for structured data passed between the news pipeline stages.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Default values applied when a provider omits a field.
const (
	DefaultTitle   = "No title"
	DefaultSnippet = "No snippet available."
	DefaultDate    = "Unknown date"
)

// SearchResult is a single news article candidate returned by a search provider.
// Date is provider-formatted and treated as opaque text.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Date    string `json:"date"`
	Link    string `json:"link"`
}

// NewSearchResult builds a SearchResult, filling empty fields with display defaults.
func NewSearchResult(title, snippet, date, link string) SearchResult {
	if title == "" {
		title = DefaultTitle
	}
	if snippet == "" {
		snippet = DefaultSnippet
	}
	if date == "" {
		date = DefaultDate
	}
	return SearchResult{
		Title:   title,
		Snippet: snippet,
		Date:    date,
		Link:    link,
	}
}

// Links returns the article links in result order.
func Links(results []SearchResult) []string {
	links := make([]string, len(results))
	for i, r := range results {
		links[i] = r.Link
	}
	return links
}

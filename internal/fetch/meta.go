package fetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
)

// PageMeta is the headline information a page advertises about itself.
type PageMeta struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	SiteName    string `json:"site_name,omitempty"`
	URL         string `json:"url,omitempty"`
}

// ExtractPageMeta reads OpenGraph tags, falling back to <title> and the
// description meta tag when they are missing.
func ExtractPageMeta(html string) (PageMeta, error) {
	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(strings.NewReader(html)); err != nil {
		return PageMeta{}, err
	}

	meta := PageMeta{
		Title:       strings.TrimSpace(og.Title),
		Description: strings.TrimSpace(og.Description),
		SiteName:    strings.TrimSpace(og.SiteName),
		URL:         og.URL,
	}
	if meta.Title != "" && meta.Description != "" {
		return meta, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return meta, nil
	}
	if meta.Title == "" {
		meta.Title = cleanLine(doc.Find("title").First().Text())
	}
	if meta.Description == "" {
		if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
			meta.Description = cleanLine(desc)
		}
	}
	return meta, nil
}

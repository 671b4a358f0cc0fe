package fetch

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelector matches nodes that never carry article content.
const noiseSelector = "script, style, meta, noscript, template, [hidden], [aria-hidden='true']"

// contentSelector matches the block-level nodes whose text makes up an article body.
const contentSelector = "p, h1, h2, h3, h4, h5, h6"

// ExtractArticleText parses HTML and returns the text of every paragraph and heading,
// one per line, in document order. Nodes with no text are skipped; repeated lines are kept.
func ExtractArticleText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()
	doc.Find("[style]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		style, _ := s.Attr("style")
		return isHiddenStyle(style)
	}).Remove()

	lines := make([]string, 0)
	doc.Find(contentSelector).Each(func(_ int, s *goquery.Selection) {
		if text := cleanLine(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})

	return strings.Join(lines, "\n"), nil
}

// isHiddenStyle reports whether an inline style hides its element.
func isHiddenStyle(style string) bool {
	compact := strings.ToLower(strings.Join(strings.Fields(style), ""))
	return strings.Contains(compact, "display:none") || strings.Contains(compact, "visibility:hidden")
}

// cleanLine trims a node's text and collapses inner whitespace so each node stays on one line.
func cleanLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

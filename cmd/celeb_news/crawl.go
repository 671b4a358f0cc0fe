package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/celeb-news/internal/crawling"
	"github.com/jonathan/celeb-news/internal/fetch"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl <url>",
	Short: "Extract the readable text of a single article",
	Long:  "Fetches one page with the same timeout and extraction rules the summarize command uses and prints the paragraphs and headings it finds.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCrawl,
}

var crawlShowMeta bool

func init() {
	crawlCmd.Flags().BoolVar(&crawlShowMeta, "meta", false, "Print the page's OpenGraph title, site and description before the text")
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	extractor := crawling.NewExtractor(newFetcher(cfg), newLogger(cfg))
	outcome, meta := extractor.Inspect(cmd.Context(), args[0])
	if !outcome.OK {
		return fmt.Errorf("crawl failed (%s): %s", outcome.Reason, outcome.Detail)
	}

	if crawlShowMeta {
		_, _ = fmt.Fprint(os.Stdout, formatMeta(meta))
	}
	if outcome.Text == "" {
		_, _ = fmt.Fprintln(os.Stderr, "No readable text found.")
		return nil
	}

	_, _ = fmt.Fprintln(os.Stdout, outcome.Text)
	return nil
}

// formatMeta renders the non-empty metadata fields followed by a blank line.
func formatMeta(meta fetch.PageMeta) string {
	var out string
	for _, field := range []struct{ label, value string }{
		{"Title", meta.Title},
		{"Site", meta.SiteName},
		{"Description", meta.Description},
		{"URL", meta.URL},
	} {
		if field.value != "" {
			out += fmt.Sprintf("%s: %s\n", field.label, field.value)
		}
	}
	if out == "" {
		return ""
	}
	return out + "\n"
}

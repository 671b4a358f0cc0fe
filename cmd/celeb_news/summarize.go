package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/celeb-news/internal/pipeline"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [name]",
	Short: "Search, crawl and summarize the latest news about a subject",
	Long: `Searches the configured news provider, extracts the text of up to five articles and asks the language model for a three-paragraph summary.
If the model call fails, a numbered digest of the search results is printed instead.

Use -i to be prompted for the subject, article count and recency filter.`,
	RunE: runSummarize,
}

var (
	summarizeQuery       queryFlags
	summarizeInteractive bool
)

func init() {
	addQueryFlags(summarizeCmd.Flags(), &summarizeQuery)
	summarizeCmd.Flags().BoolVarP(&summarizeInteractive, "interactive", "i", false, "Prompt for the subject and filter")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	var req pipeline.Request
	if summarizeInteractive {
		answers, err := promptRequest(os.Stdin, os.Stdout, cfg.Count)
		if err != nil {
			return err
		}
		req, err = answers.request()
		if err != nil {
			return err
		}
	} else {
		req, err = buildRequest(cmd.Flags(), summarizeQuery, args, cfg)
		if err != nil {
			return err
		}
	}

	c, err := newComponents(cmd.Context(), cfg, true)
	if err != nil {
		return err
	}
	defer c.Close()
	req.OnProgress = c.progressPrinter(req.Name)

	text, err := c.runner.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	if summarizeInteractive {
		_, _ = fmt.Fprintln(os.Stdout)
	}
	_, _ = fmt.Fprintln(os.Stdout, text)
	return nil
}

// Package main provides the celeb_news CLI: search recent news about a person, crawl the
// articles and print a short summary.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "celeb_news",
	Short:         "Summarize the latest news about a public figure",
	Long:          "celeb_news searches a news provider for recent articles about a subject, extracts the article text and asks a language model for a short summary. When the model is unavailable it prints a digest of the headlines instead.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, formatError(err))
		stop()
		os.Exit(1)
	}
}

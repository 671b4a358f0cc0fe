package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/celeb-news/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [name]",
	Short: "Query the news provider and print the raw results as JSON",
	RunE:  runSearch,
}

var searchQuery queryFlags

func init() {
	addQueryFlags(searchCmd.Flags(), &searchQuery)

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	req, err := buildRequest(cmd.Flags(), searchQuery, args, cfg)
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	client, err := search.NewClient(cfg, nil, log)
	if err != nil {
		return err
	}

	results, err := client.Search(cmd.Context(), search.Query{Name: req.Name, Filter: req.Filter, Count: req.Count})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(out))
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var digestCmd = &cobra.Command{
	Use:   "digest [name]",
	Short: "Print a numbered list of recent headlines without crawling or summarizing",
	RunE:  runDigest,
}

var digestQuery queryFlags

func init() {
	addQueryFlags(digestCmd.Flags(), &digestQuery)

	rootCmd.AddCommand(digestCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	req, err := buildRequest(cmd.Flags(), digestQuery, args, cfg)
	if err != nil {
		return err
	}

	c, err := newComponents(cmd.Context(), cfg, false)
	if err != nil {
		return err
	}
	defer c.Close()
	req.OnProgress = c.progressPrinter(req.Name)

	text, err := c.runner.Digest(cmd.Context(), req)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(os.Stdout, text)
	return nil
}

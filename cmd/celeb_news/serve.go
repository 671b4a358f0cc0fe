package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/celeb-news/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP front-end",
	Long:  `Start an HTTP server with POST /summarize, POST /summarize/stream (Server-Sent Events), POST /digest and GET /health.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", server.DefaultPort, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	// Boxes and debug output would interleave across concurrent requests.
	cfg.Verbose = false

	c, err := newComponents(cmd.Context(), cfg, true)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := server.New(server.Config{Port: servePort, Count: cfg.Count}, c.runner, c.log)
	return srv.Start(cmd.Context())
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/jonathan/celeb-news/internal/aggregate"
	"github.com/jonathan/celeb-news/internal/config"
	"github.com/jonathan/celeb-news/internal/crawling"
	"github.com/jonathan/celeb-news/internal/fetch"
	"github.com/jonathan/celeb-news/internal/observability"
	"github.com/jonathan/celeb-news/internal/pipeline"
	"github.com/jonathan/celeb-news/internal/search"
	"github.com/jonathan/celeb-news/internal/summarize"
	"github.com/jonathan/celeb-news/internal/types"
)

// globalFlags are shared by every command. Flags win over the config file, which wins over the environment.
type globalFlags struct {
	configPath     string
	llmProvider    string
	searchProvider string
	model          string
	count          int
	useBrowser     bool
	verbose        bool
}

// queryFlags describe the subject and the optional recency filter.
type queryFlags struct {
	name      string
	dateValue int
	dateUnit  string
}

var global globalFlags

func init() {
	registerGlobalFlags(rootCmd.PersistentFlags(), &global)
}

func registerGlobalFlags(pf *pflag.FlagSet, g *globalFlags) {
	pf.StringVar(&g.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	pf.StringVar(&g.llmProvider, "provider", "", "LLM provider: openai or gemini (defaults to CELEBNEWS_LLM_PROVIDER or openai)")
	pf.StringVar(&g.searchProvider, "search-provider", "", "News search provider: serpapi or serper (defaults to CELEBNEWS_SEARCH_PROVIDER or serpapi)")
	pf.StringVar(&g.model, "model", "", "Override the summarization model")
	pf.IntVar(&g.count, "count", config.DefaultCount, "Items listed in a digest or fallback summary")
	pf.BoolVar(&g.useBrowser, "use-browser", false, "Render article pages in headless Chrome instead of plain HTTP")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Print detailed progress to stderr")
}

// addQueryFlags registers the subject and recency flags.
func addQueryFlags(fs *pflag.FlagSet, q *queryFlags) {
	fs.StringVarP(&q.name, "name", "n", "", "Subject to search for (may also be given as arguments)")
	fs.IntVar(&q.dateValue, "date-value", 0, "Recency amount, e.g. 7 (requires --date-unit)")
	fs.StringVar(&q.dateUnit, "date-unit", "", "Recency unit: day, week or month (requires --date-value)")
}

// loadConfig layers environment, optional config file and explicitly set flags.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	envCfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg := *envCfg

	if global.configPath != "" {
		fileCfg, err := config.LoadConfig(global.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg.MergeWithDefaults(*envCfg)
	}

	if flags.Changed("provider") {
		cfg.LLMProvider = strings.ToLower(strings.TrimSpace(global.llmProvider))
	}
	if flags.Changed("search-provider") {
		cfg.SearchProvider = strings.ToLower(strings.TrimSpace(global.searchProvider))
	}
	if flags.Changed("model") {
		cfg.Model = global.model
	}
	if flags.Changed("count") {
		cfg.Count = global.count
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser = global.useBrowser
	}
	if flags.Changed("verbose") {
		cfg.Verbose = global.verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// buildRequest resolves the subject from --name or positional args and the recency filter.
func buildRequest(flags *pflag.FlagSet, q queryFlags, args []string, cfg *config.Config) (pipeline.Request, error) {
	name := q.name
	if name == "" {
		name = strings.Join(args, " ")
	}

	var amount *int
	var unit *string
	if flags.Changed("date-value") {
		amount = &q.dateValue
	}
	if flags.Changed("date-unit") {
		unit = &q.dateUnit
	}

	filter, err := search.NewRecencyFilter(amount, unit)
	if err != nil {
		return pipeline.Request{}, err
	}

	return pipeline.Request{Name: strings.TrimSpace(name), Filter: filter, Count: cfg.Count}, nil
}

// components holds what a command needs for one invocation.
type components struct {
	cfg        *config.Config
	log        zerolog.Logger
	printer    *observability.Printer
	runner     *pipeline.Runner
	summarizer *summarize.Summarizer
}

func (c *components) Close() {
	if c.summarizer != nil {
		_ = c.summarizer.Close()
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return observability.NewLogger(os.Stderr, cfg.Verbose)
}

// newFetcher picks the browser renderer or plain HTTP for article pages.
func newFetcher(cfg *config.Config) fetch.Fetcher {
	if cfg.UseBrowser {
		return fetch.NewBrowserFetcher(cfg.CrawlTimeout)
	}
	return fetch.NewHTTPFetcher(&fetch.Options{Timeout: cfg.CrawlTimeout})
}

// newComponents wires search, crawl, aggregation and (optionally) the summarizer.
// A missing search credential fails here, before anything is crawled.
func newComponents(ctx context.Context, cfg *config.Config, withSummarizer bool) (*components, error) {
	log := newLogger(cfg)
	printer := observability.NewPrinter(os.Stderr)

	searcher, err := search.NewClient(cfg, nil, log)
	if err != nil {
		return nil, err
	}

	agg := aggregate.New(crawling.NewExtractor(newFetcher(cfg), log), cfg.MaxTexts, log)
	if cfg.Verbose {
		agg.WithObserver(printer.PrintCrawlOutcome)
	}

	c := &components{cfg: cfg, log: log, printer: printer}
	var sum pipeline.Summarizer
	if withSummarizer {
		c.summarizer = summarize.NewFromConfig(ctx, cfg, log)
		sum = c.summarizer
	}

	c.runner = pipeline.NewRunner(searcher, agg, sum, cfg.Count, log)
	return c, nil
}

// progressPrinter returns the verbose box printer for pipeline steps, or nil when quiet.
func (c *components) progressPrinter(name string) pipeline.ProgressCallback {
	if !c.cfg.Verbose {
		return nil
	}
	return func(e pipeline.ProgressEvent) {
		switch content := e.Content.(type) {
		case []types.SearchResult:
			c.printer.PrintSearchResults(name, content)
		case types.AggregatedContext:
			c.printer.PrintAggregatedContext(content)
		case types.Summary:
			c.printer.PrintSummary(content)
		}
	}
}

// formatError renders user-facing errors verbatim and everything else with a prefix.
func formatError(err error) string {
	var inputErr *search.InputError
	if errors.As(err, &inputErr) {
		return inputErr.Message
	}
	var providerErr *search.ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Error()
	}
	return fmt.Sprintf("Error: %v", err)
}

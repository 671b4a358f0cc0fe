// Package crawling turns news article links into readable body text.
package crawling

import (
	"context"
	"fmt"

	"github.com/jonathan/celeb-news/internal/fetch"
	"github.com/jonathan/celeb-news/internal/types"
	"github.com/rs/zerolog"
)

// TextFunc converts fetched HTML into article text.
type TextFunc func(html string) (string, error)

// Extractor fetches a link once and extracts its paragraphs and headings.
// Failures are returned as CrawlOutcome values, never as errors.
type Extractor struct {
	fetcher fetch.Fetcher
	extract TextFunc
	log     zerolog.Logger
}

// NewExtractor creates an Extractor. A nil fetcher uses a plain HTTP fetcher with default options.
func NewExtractor(fetcher fetch.Fetcher, log zerolog.Logger) *Extractor {
	if fetcher == nil {
		fetcher = fetch.NewHTTPFetcher(nil)
	}
	return &Extractor{
		fetcher: fetcher,
		extract: fetch.ExtractArticleText,
		log:     log.With().Str("component", "crawler").Logger(),
	}
}

// Extract crawls urlStr. There are no retries; a failed attempt is final.
func (e *Extractor) Extract(ctx context.Context, urlStr string) types.CrawlOutcome {
	outcome, _ := e.crawl(ctx, urlStr)
	return outcome
}

// Inspect crawls urlStr like Extract and also reports the page's advertised metadata.
// The metadata is empty when the fetch failed.
func (e *Extractor) Inspect(ctx context.Context, urlStr string) (types.CrawlOutcome, fetch.PageMeta) {
	outcome, html := e.crawl(ctx, urlStr)
	if html == "" {
		return outcome, fetch.PageMeta{}
	}

	meta, err := fetch.ExtractPageMeta(html)
	if err != nil {
		e.log.Debug().Str("url", urlStr).Err(err).Msg("No page metadata")
	}
	return outcome, meta
}

func (e *Extractor) crawl(ctx context.Context, urlStr string) (types.CrawlOutcome, string) {
	result, err := e.fetcher.Fetch(ctx, urlStr)
	if err != nil {
		outcome := types.CrawlFailure(reasonFor(fetch.KindOf(err)), err.Error())
		e.log.Debug().Str("url", urlStr).Str("reason", string(outcome.Reason)).Err(err).Msg("Crawl failed")
		return outcome, ""
	}

	text, err := e.parse(result.HTML)
	if err != nil {
		e.log.Debug().Str("url", urlStr).Err(err).Msg("Parse failed")
		return types.CrawlFailure(types.ReasonParseError, err.Error()), result.HTML
	}

	e.log.Debug().Str("url", urlStr).Int("chars", len(text)).Msg("Crawled page")
	return types.CrawlSuccess(text), result.HTML
}

// parse runs the text walk, turning a panic inside the HTML walk into a parse error.
func (e *Extractor) parse(html string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while walking document: %v", r)
		}
	}()
	return e.extract(html)
}

// reasonFor maps a fetch error kind to a crawl failure reason.
func reasonFor(kind fetch.ErrorKind) types.FailureReason {
	switch kind {
	case fetch.KindHTTP:
		return types.ReasonHTTPError
	case fetch.KindConnection:
		return types.ReasonConnectionError
	case fetch.KindTimeout:
		return types.ReasonTimeout
	default:
		return types.ReasonOtherRequestError
	}
}

// Package fetch - browser.go renders pages in a headless browser for script-heavy news sites.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultRenderDelay is how long the browser waits after load for scripts to fill the page.
const DefaultRenderDelay = 2 * time.Second

// BrowserFetcher renders pages in headless Chrome and returns the resulting HTML.
// Requires Chrome/Chromium to be installed on the system.
type BrowserFetcher struct {
	timeout     time.Duration
	renderDelay time.Duration
}

// NewBrowserFetcher creates a BrowserFetcher. A non-positive timeout uses DefaultTimeout.
func NewBrowserFetcher(timeout time.Duration) *BrowserFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &BrowserFetcher{
		timeout:     timeout,
		renderDelay: DefaultRenderDelay,
	}
}

// Fetch implements Fetcher. The whole render, including the settle delay, is bounded by the timeout.
func (f *BrowserFetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, f.timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		chromedp.Sleep(f.renderDelay),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		kind := KindRequest
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(browserCtx.Err(), context.DeadlineExceeded) {
			kind = KindTimeout
		}
		return nil, &Error{
			URL:     urlStr,
			Kind:    kind,
			Message: "browser rendering failed",
			Cause:   fmt.Errorf("chromedp: %w", err),
		}
	}

	return &Result{
		URL:        urlStr,
		HTML:       html,
		StatusCode: 200,
	}, nil
}

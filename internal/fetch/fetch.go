// Package fetch provides bounded-timeout page fetching and HTML-to-text processing
// for news article links.
package fetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"
)

// DefaultTimeout is the per-page request timeout.
const DefaultTimeout = 10 * time.Second

// MaxBodyBytes caps how much of a response body is read.
const MaxBodyBytes = 8 << 20

// ErrorKind classifies a fetch failure.
type ErrorKind string

// Fetch failure kinds
const (
	KindHTTP       ErrorKind = "http"       // non-2xx response
	KindConnection ErrorKind = "connection" // dial, DNS or reset failures
	KindTimeout    ErrorKind = "timeout"    // deadline or client timeout
	KindRequest    ErrorKind = "request"    // any other transport fault
)

// Result holds the raw content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind of a fetch error, or KindRequest for foreign errors.
func KindOf(err error) ErrorKind {
	var fetchErr *Error
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind
	}
	return KindRequest
}

// Options configures the fetch behavior.
// An empty UserAgent leaves the Go client's default in place.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns the defaults used for article fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout: DefaultTimeout,
	}
}

// Fetcher retrieves the HTML of a single page.
type Fetcher interface {
	Fetch(ctx context.Context, urlStr string) (*Result, error)
}

// HTTPFetcher fetches pages with a plain HTTP GET.
type HTTPFetcher struct {
	client *http.Client
	opts   *Options
}

// NewHTTPFetcher creates an HTTPFetcher. A nil opts uses DefaultOptions.
func NewHTTPFetcher(opts *Options) *HTTPFetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: opts.Timeout},
		opts:   opts,
	}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	return get(ctx, f.client, urlStr, f.opts)
}

// URL retrieves HTML content from a URL with a one-off client.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	return NewHTTPFetcher(opts).Fetch(ctx, urlStr)
}

func get(ctx context.Context, client *http.Client, urlStr string, opts *Options) (*Result, error) {
	// Validate URL
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Kind:    KindRequest,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Kind:    KindRequest,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Kind:    classifyTransport(err),
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		kind := classifyTransport(err)
		if kind == KindConnection {
			kind = KindRequest
		}
		return nil, &Error{
			URL:     urlStr,
			Kind:    kind,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, &Error{
			URL:     urlStr,
			Kind:    KindHTTP,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	return result, nil
}

// classifyTransport maps a client.Do error onto an ErrorKind.
func classifyTransport(err error) ErrorKind {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return KindTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindConnection
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return KindConnection
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return KindConnection
	}

	if isTLSFailure(err) {
		return KindConnection
	}

	return KindRequest
}

// isTLSFailure reports whether err came from the TLS handshake or certificate checks.
func isTLSFailure(err error) bool {
	var (
		verifyErr    *tls.CertificateVerificationError
		recordErr    tls.RecordHeaderError
		alertErr     tls.AlertError
		authorityErr x509.UnknownAuthorityError
		hostErr      x509.HostnameError
		invalidErr   x509.CertificateInvalidError
	)
	return errors.As(err, &verifyErr) ||
		errors.As(err, &recordErr) ||
		errors.As(err, &alertErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &hostErr) ||
		errors.As(err, &invalidErr)
}

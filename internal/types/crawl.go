package types

// FailureReason classifies why a single link could not be crawled.
type FailureReason string

// Crawl failure reasons
const (
	ReasonHTTPError         FailureReason = "http_error"
	ReasonConnectionError   FailureReason = "connection_error"
	ReasonTimeout           FailureReason = "timeout"
	ReasonOtherRequestError FailureReason = "other_request_error"
	ReasonParseError        FailureReason = "parse_error"
)

// CrawlOutcome is the result of crawling one link: either OK with Text,
// or a failure with a Reason. Detail carries the human-readable cause of a failure.
type CrawlOutcome struct {
	OK     bool          `json:"ok"`
	Text   string        `json:"text,omitempty"`
	Reason FailureReason `json:"reason,omitempty"`
	Detail string        `json:"detail,omitempty"`
}

// CrawlSuccess returns a successful outcome.
func CrawlSuccess(text string) CrawlOutcome {
	return CrawlOutcome{OK: true, Text: text}
}

// CrawlFailure returns a failed outcome.
func CrawlFailure(reason FailureReason, detail string) CrawlOutcome {
	return CrawlOutcome{Reason: reason, Detail: detail}
}

// Usable reports whether the outcome should be counted toward the aggregated context.
func (o CrawlOutcome) Usable() bool {
	return o.OK && o.Text != ""
}

// AggregatedContext is the labeled concatenation of crawled article bodies.
type AggregatedContext struct {
	Text     string   `json:"text"`
	Included int      `json:"included"`
	Sources  []string `json:"sources"` // links of the included bodies, in order
}

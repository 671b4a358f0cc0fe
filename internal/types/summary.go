package types

// SummaryBranch records which path produced a Summary.
type SummaryBranch string

// Summary branches
const (
	BranchPrimary  SummaryBranch = "primary"
	BranchFallback SummaryBranch = "fallback"
)

// Summary is the final text of a pipeline run.
// Err is set only on the fallback branch and holds the model failure.
type Summary struct {
	Text   string        `json:"text"`
	Branch SummaryBranch `json:"branch"`
	Err    error         `json:"-"`
}

// IsFallback reports whether the summary is the deterministic digest.
func (s Summary) IsFallback() bool {
	return s.Branch == BranchFallback
}

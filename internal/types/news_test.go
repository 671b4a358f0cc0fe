package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchResult_Defaults(t *testing.T) {
	r := NewSearchResult("", "", "", "https://example.com/a")

	assert.Equal(t, DefaultTitle, r.Title)
	assert.Equal(t, DefaultSnippet, r.Snippet)
	assert.Equal(t, DefaultDate, r.Date)
	assert.Equal(t, "https://example.com/a", r.Link)
}

func TestNewSearchResult_KeepsValues(t *testing.T) {
	r := NewSearchResult("Title", "Snippet", "2 hours ago", "https://example.com/b")

	assert.Equal(t, "Title", r.Title)
	assert.Equal(t, "Snippet", r.Snippet)
	assert.Equal(t, "2 hours ago", r.Date)
}

func TestLinks_PreservesOrder(t *testing.T) {
	results := []SearchResult{
		{Link: "https://a.example"},
		{Link: "https://b.example"},
		{Link: "https://c.example"},
	}

	assert.Equal(t, []string{"https://a.example", "https://b.example", "https://c.example"}, Links(results))
	assert.Empty(t, Links(nil))
}

func TestRecencyFilter_Code(t *testing.T) {
	tests := []struct {
		filter RecencyFilter
		want   string
	}{
		{RecencyFilter{Amount: 1, Unit: UnitDay}, "d1"},
		{RecencyFilter{Amount: 2, Unit: UnitWeek}, "w2"},
		{RecencyFilter{Amount: 6, Unit: UnitMonth}, "m6"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Code())
		})
	}
}

func TestRecencyFilter_Validate(t *testing.T) {
	valid := &RecencyFilter{Amount: 7, Unit: UnitDay}
	require.NoError(t, valid.Validate())

	zero := &RecencyFilter{Amount: 0, Unit: UnitDay}
	assert.Error(t, zero.Validate())

	badUnit := &RecencyFilter{Amount: 3, Unit: "year"}
	assert.Error(t, badUnit.Validate())
}

func TestIsSupportedUnit(t *testing.T) {
	assert.True(t, IsSupportedUnit(UnitDay))
	assert.True(t, IsSupportedUnit(UnitWeek))
	assert.True(t, IsSupportedUnit(UnitMonth))
	assert.False(t, IsSupportedUnit("hour"))
}

func TestCrawlOutcome_Usable(t *testing.T) {
	assert.True(t, CrawlSuccess("body").Usable())
	assert.False(t, CrawlSuccess("").Usable())
	assert.False(t, CrawlFailure(ReasonTimeout, "deadline").Usable())
}

func TestSummary_IsFallback(t *testing.T) {
	assert.False(t, Summary{Branch: BranchPrimary}.IsFallback())
	assert.True(t, Summary{Branch: BranchFallback}.IsFallback())
}

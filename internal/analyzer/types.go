package analyzer

import (
	"github.com/shopspring/decimal"

	"github.com/ppiankov/budget/internal/budget"
)

// TagIndex maps a tag to the records carrying it, in discovery order.
type TagIndex map[string][]budget.Record

// TagTotal is the aggregate for one tag bucket.
type TagTotal struct {
	Tag     string          `json:"tag"`
	Total   decimal.Decimal `json:"total"`
	Records []budget.Record `json:"records"`
}

// AnalysisResult holds the records that passed the filter and everything
// computed from them.
type AnalysisResult struct {
	Matching  []budget.Record `json:"matching"`
	Total     decimal.Decimal `json:"total"`
	Breakdown []TagTotal      `json:"breakdown"`
	Related   []string        `json:"related"`
}

// AnalyzerConfig controls analysis behavior.
type AnalyzerConfig struct {
	// Requested are the literal filter tokens from the user.
	Requested []string
	// Criteria is what the matcher evaluates, usually Requested plus the
	// implicit archive exclusion.
	Criteria []string
	Matcher  budget.TagMatcher
	// Normalize maps a filter token to plain tag text before related tags
	// are computed. Nil leaves tokens untouched.
	Normalize func(string) string
}

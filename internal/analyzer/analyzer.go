package analyzer

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/budget/internal/budget"
)

// CostTolerance is the difference below which two costs are ordered as equal.
var CostTolerance = decimal.New(1, -4)

// Analyze filters records by the configured criteria and computes totals,
// the per-tag breakdown and related tags.
func Analyze(records []budget.Record, cfg AnalyzerConfig) *AnalysisResult {
	var matching []budget.Record
	for _, r := range records {
		if cfg.Matcher == nil || cfg.Matcher.Matches(r.Tags, cfg.Criteria) {
			matching = append(matching, r)
		}
	}

	index := BuildIndex(matching)
	totals := PerTagTotals(index)

	breakdown := make([]TagTotal, 0, len(index))
	for _, tag := range index.Tags() {
		breakdown = append(breakdown, TagTotal{
			Tag:     tag,
			Total:   totals[tag],
			Records: index[tag],
		})
	}

	requested := make([]string, 0, len(cfg.Requested))
	for _, tok := range cfg.Requested {
		if cfg.Normalize != nil {
			tok = cfg.Normalize(tok)
		}
		requested = append(requested, tok)
	}

	return &AnalysisResult{
		Matching:  matching,
		Total:     Total(matching),
		Breakdown: breakdown,
		Related:   Related(AllTags(matching), requested),
	}
}

// BuildIndex groups records by tag. A record lands once in the bucket of
// every tag it carries; records without tags land nowhere.
func BuildIndex(records []budget.Record) TagIndex {
	index := make(TagIndex)
	for _, r := range records {
		for _, tag := range budget.NewTags(r.Tags...) {
			index[tag] = append(index[tag], r)
		}
	}
	return index
}

// Tags returns the index keys in sorted order.
func (ix TagIndex) Tags() []string {
	tags := make([]string, 0, len(ix))
	for tag := range ix {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Total sums the cost of records. An empty collection totals zero.
func Total(records []budget.Record) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		sum = sum.Add(r.Cost)
	}
	return sum
}

// PerTagTotals applies Total to each bucket of the index.
func PerTagTotals(index TagIndex) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal, len(index))
	for tag, records := range index {
		totals[tag] = Total(records)
	}
	return totals
}

// AllTags is the union of tags over records.
func AllTags(records []budget.Record) []string {
	var all []string
	for _, r := range records {
		all = append(all, r.Tags...)
	}
	return budget.NewTags(all...)
}

// Related returns the tags in seen that were not requested, sorted. With
// nothing requested every seen tag is related.
func Related(seen, requested []string) []string {
	related := make([]string, 0, len(seen))
	for _, tag := range budget.NewTags(seen...) {
		if !slices.Contains(requested, tag) {
			related = append(related, tag)
		}
	}
	return related
}

// SortByCost returns a copy of records ordered largest cost first. Costs
// closer than CostTolerance compare equal and keep reverse input order.
func SortByCost(records []budget.Record) []budget.Record {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b budget.Record) int {
		if a.Cost.Sub(b.Cost).Abs().LessThan(CostTolerance) {
			return 0
		}
		return a.Cost.Cmp(b.Cost)
	})
	slices.Reverse(sorted)
	return sorted
}

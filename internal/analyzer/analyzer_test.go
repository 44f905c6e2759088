package analyzer

import (
	"slices"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/budget/internal/budget"
)

func rec(path, cost string, tags ...string) budget.Record {
	return budget.Record{
		Path: path,
		Name: path,
		Cost: decimal.RequireFromString(cost),
		Tags: budget.NewTags(tags...),
	}
}

func paths(records []budget.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Path)
	}
	return out
}

// requireAll matches when every bare token is present and every !token absent.
type requireAll struct{}

func (requireAll) Matches(tags budget.Tags, criteria []string) bool {
	for _, c := range criteria {
		if name, neg := strings.CutPrefix(c, "!"); neg {
			if tags.Has(name) {
				return false
			}
		} else if !tags.Has(c) {
			return false
		}
	}
	return true
}

func TestBuildIndexBuckets(t *testing.T) {
	records := []budget.Record{
		rec("a", "1", "food", "travel"),
		rec("b", "2", "food"),
		rec("c", "3"),
		rec("d", "4", "travel"),
	}

	index := BuildIndex(records)

	if len(index) != 2 {
		t.Fatalf("index has %d tags, want 2", len(index))
	}
	if got := paths(index["food"]); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("food bucket = %v, want [a b]", got)
	}
	if got := paths(index["travel"]); !slices.Equal(got, []string{"a", "d"}) {
		t.Errorf("travel bucket = %v, want [a d]", got)
	}
	for tag, bucket := range index {
		for _, r := range bucket {
			if r.Path == "c" {
				t.Errorf("untagged record found in bucket %q", tag)
			}
		}
	}
}

func TestBuildIndexNoDuplicatesWithinBucket(t *testing.T) {
	r := budget.Record{Path: "a", Cost: decimal.NewFromInt(1), Tags: budget.Tags{"food", "food"}}

	index := BuildIndex([]budget.Record{r})

	if len(index["food"]) != 1 {
		t.Errorf("food bucket len = %d, want 1", len(index["food"]))
	}
}

func TestTagIndexTagsSorted(t *testing.T) {
	index := BuildIndex([]budget.Record{rec("a", "1", "zoo", "bills", "food")})
	want := []string{"bills", "food", "zoo"}
	if got := index.Tags(); !slices.Equal(got, want) {
		t.Errorf("Tags() = %v, want %v", got, want)
	}
}

func TestTotal(t *testing.T) {
	if !Total(nil).IsZero() {
		t.Errorf("Total(nil) = %s, want 0", Total(nil))
	}

	records := []budget.Record{rec("a", "0.1"), rec("b", "0.2"), rec("c", "-0.05")}
	want := decimal.RequireFromString("0.25")
	if got := Total(records); !got.Equal(want) {
		t.Errorf("Total() = %s, want %s", got, want)
	}

	slices.Reverse(records)
	if got := Total(records); !got.Equal(want) {
		t.Errorf("Total() reversed = %s, want %s", got, want)
	}
}

func TestPerTagTotals(t *testing.T) {
	index := BuildIndex([]budget.Record{
		rec("a", "10", "food"),
		rec("b", "2.5", "food", "coffee"),
	})

	totals := PerTagTotals(index)

	if len(totals) != 2 {
		t.Fatalf("totals has %d tags, want 2", len(totals))
	}
	if !totals["food"].Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("food total = %s, want 12.5", totals["food"])
	}
	if !totals["coffee"].Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("coffee total = %s, want 2.5", totals["coffee"])
	}
}

func TestRelated(t *testing.T) {
	tests := []struct {
		seen      []string
		requested []string
		want      []string
	}{
		{[]string{"food", "coffee"}, []string{"food"}, []string{"coffee"}},
		{[]string{"food"}, nil, []string{"food"}},
		{nil, []string{"food"}, []string{}},
		{[]string{"Food"}, []string{"food"}, []string{"Food"}},
	}
	for _, tt := range tests {
		got := Related(tt.seen, tt.requested)
		if !slices.Equal(got, tt.want) {
			t.Errorf("Related(%v, %v) = %v, want %v", tt.seen, tt.requested, got, tt.want)
		}
	}
}

func TestRelatedIdempotentUnderReunion(t *testing.T) {
	seen := []string{"food", "coffee", "travel"}
	requested := []string{"food", "rent"}

	base := Related(seen, requested)
	reunion := Related(append(slices.Clone(seen), requested...), requested)

	if !slices.Equal(base, reunion) {
		t.Errorf("Related after re-union = %v, want %v", reunion, base)
	}
}

func TestAnalyzeArchiveExcluded(t *testing.T) {
	records := []budget.Record{
		rec("old", "50", "archive"),
		rec("milk", "3", "groceries"),
	}

	result := Analyze(records, AnalyzerConfig{
		Criteria: []string{"!archive"},
		Matcher:  requireAll{},
	})

	if got := paths(result.Matching); !slices.Equal(got, []string{"milk"}) {
		t.Errorf("Matching = %v, want [milk]", got)
	}
	if !result.Total.Equal(decimal.NewFromInt(3)) {
		t.Errorf("Total = %s, want 3", result.Total)
	}
	if !slices.Equal(result.Related, []string{"groceries"}) {
		t.Errorf("Related = %v, want [groceries]", result.Related)
	}
}

func TestAnalyzeBreakdown(t *testing.T) {
	records := []budget.Record{
		rec("a", "1200"),
		rec("b", "4.50", "food", "coffee"),
		rec("c", "10", "food"),
	}

	result := Analyze(records, AnalyzerConfig{
		Requested: []string{"food"},
		Criteria:  []string{"food"},
		Matcher:   requireAll{},
	})

	if !result.Total.Equal(decimal.RequireFromString("14.5")) {
		t.Errorf("Total = %s, want 14.5", result.Total)
	}
	if len(result.Breakdown) != 2 {
		t.Fatalf("Breakdown len = %d, want 2", len(result.Breakdown))
	}
	if result.Breakdown[0].Tag != "coffee" || result.Breakdown[1].Tag != "food" {
		t.Errorf("Breakdown tags = %s, %s; want coffee, food", result.Breakdown[0].Tag, result.Breakdown[1].Tag)
	}
	if !result.Breakdown[1].Total.Equal(decimal.RequireFromString("14.5")) {
		t.Errorf("food total = %s, want 14.5", result.Breakdown[1].Total)
	}
	if !slices.Equal(result.Related, []string{"coffee"}) {
		t.Errorf("Related = %v, want [coffee]", result.Related)
	}
}

func TestAnalyzeNormalizesRequested(t *testing.T) {
	records := []budget.Record{rec("a", "1", "food")}

	result := Analyze(records, AnalyzerConfig{
		Requested: []string{"!travel", "food"},
		Criteria:  []string{"!travel", "food"},
		Matcher:   requireAll{},
		Normalize: func(s string) string { return strings.TrimLeft(s, "!") },
	})

	if len(result.Related) != 0 {
		t.Errorf("Related = %v, want empty", result.Related)
	}
}

func TestAnalyzeNoRecords(t *testing.T) {
	result := Analyze(nil, AnalyzerConfig{Matcher: requireAll{}})

	if !result.Total.IsZero() {
		t.Errorf("Total = %s, want 0", result.Total)
	}
	if len(result.Breakdown) != 0 || len(result.Related) != 0 {
		t.Errorf("expected empty breakdown and related, got %v / %v", result.Breakdown, result.Related)
	}
}

func TestSortByCost(t *testing.T) {
	records := []budget.Record{
		rec("small", "1"),
		rec("big", "100"),
		rec("mid", "10"),
	}

	sorted := SortByCost(records)

	if got := paths(sorted); !slices.Equal(got, []string{"big", "mid", "small"}) {
		t.Errorf("SortByCost() = %v, want [big mid small]", got)
	}
	if records[0].Path != "small" {
		t.Error("SortByCost should not reorder its input")
	}
}

func TestSortByCostTolerance(t *testing.T) {
	records := []budget.Record{
		rec("first", "5.00001"),
		rec("second", "5"),
		rec("big", "7"),
	}

	sorted := SortByCost(records)

	if got := paths(sorted); !slices.Equal(got, []string{"big", "second", "first"}) {
		t.Errorf("SortByCost() = %v, want [big second first]", got)
	}
}

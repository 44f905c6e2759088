package budget

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Record is one parsed budget item file.
type Record struct {
	Path string          `json:"path"`
	Name string          `json:"name"`
	Cost decimal.Decimal `json:"cost"`
	Date *string         `json:"date,omitempty"`
	Tags Tags            `json:"tags"`
}

// String renders the record the way it appears in per-record listings.
func (r Record) String() string {
	date := ""
	if r.Date != nil {
		date = fmt.Sprintf(" (%s)", *r.Date)
	}
	return fmt.Sprintf("%8s -- %s%s", r.Cost.StringFixed(2), r.Name, date)
}

// Tags is a sorted set of tag labels without duplicates.
type Tags []string

// NewTags builds a Tags set from labels in any order, dropping empty and
// repeated labels.
func NewTags(labels ...string) Tags {
	set := make(Tags, 0, len(labels))
	for _, l := range labels {
		if l != "" {
			set = append(set, l)
		}
	}
	slices.Sort(set)
	return slices.Compact(set)
}

// Has reports whether the set contains tag.
func (t Tags) Has(tag string) bool {
	_, found := slices.BinarySearch(t, tag)
	return found
}

// TagSource derives the tags of a record file from its identity.
type TagSource interface {
	TagsFor(path string) (Tags, error)
}

// TagMatcher decides whether a tag set satisfies the filter criteria.
type TagMatcher interface {
	Matches(tags Tags, criteria []string) bool
}

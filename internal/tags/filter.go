package tags

import (
	"fmt"
	"strings"

	"github.com/ppiankov/budget/internal/budget"
)

// NegationMarker prefixes a filter token that requires a tag to be absent.
const NegationMarker = "!"

// Mode selects how positive tokens combine.
type Mode string

const (
	// ModeAll requires every positive token.
	ModeAll Mode = "all"
	// ModeAny requires at least one positive token.
	ModeAny Mode = "any"
)

// ParseMode validates a mode name. An empty name selects ModeAll.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAll:
		return ModeAll, nil
	case ModeAny:
		return ModeAny, nil
	default:
		return "", fmt.Errorf("unsupported match mode: %s (use all or any)", s)
	}
}

// Filter evaluates filter tokens against a record's tags. Negated tokens
// always exclude, regardless of mode.
type Filter struct {
	Mode Mode
}

var _ budget.TagMatcher = Filter{}

// Matches implements budget.TagMatcher. An empty criteria list matches
// everything.
func (f Filter) Matches(tags budget.Tags, criteria []string) bool {
	positives := 0
	anyHit := false
	for _, token := range criteria {
		name, negated := Split(token)
		if name == "" {
			continue
		}
		if negated {
			if tags.Has(name) {
				return false
			}
			continue
		}
		positives++
		has := tags.Has(name)
		if f.Mode == ModeAny {
			anyHit = anyHit || has
		} else if !has {
			return false
		}
	}
	if f.Mode == ModeAny && positives > 0 {
		return anyHit
	}
	return true
}

// Split strips any leading negation markers from token and reports whether
// the token was negated.
func Split(token string) (name string, negated bool) {
	name = strings.TrimLeft(token, NegationMarker)
	return name, len(name) != len(token)
}

// Normalize returns token as plain tag text, without negation markers.
func Normalize(token string) string {
	name, _ := Split(token)
	return name
}

// Negate returns the token that excludes tag.
func Negate(tag string) string {
	return NegationMarker + tag
}

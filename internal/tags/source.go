package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ppiankov/budget/internal/budget"
)

// PathSource tags a record with the directory names between Root and the
// file, so root/food/coffee/cup.txt carries {coffee, food}.
type PathSource struct {
	Root string
}

// TagsFor implements budget.TagSource.
func (s PathSource) TagsFor(path string) (budget.Tags, error) {
	rel, err := filepath.Rel(s.Root, path)
	if err != nil {
		return nil, fmt.Errorf("relative path of %s: %w", path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("%s is outside %s", path, s.Root)
	}

	dir := filepath.Dir(rel)
	if dir == "." {
		return budget.NewTags(), nil
	}
	return budget.NewTags(strings.Split(dir, string(filepath.Separator))...), nil
}

var inlineTag = regexp.MustCompile(`(?:^|\s)@([\w-]+)`)

// InlineSource tags a record with the @word markers written in its file,
// usually on lines of their own.
type InlineSource struct{}

// TagsFor implements budget.TagSource.
func (InlineSource) TagsFor(path string) (budget.Tags, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var found []string
	for _, m := range inlineTag.FindAllStringSubmatch(string(data), -1) {
		found = append(found, m[1])
	}
	return budget.NewTags(found...), nil
}

// MultiSource unions the tags of several sources.
type MultiSource []budget.TagSource

// TagsFor implements budget.TagSource.
func (m MultiSource) TagsFor(path string) (budget.Tags, error) {
	var all []string
	for _, src := range m {
		t, err := src.TagsFor(path)
		if err != nil {
			return nil, err
		}
		all = append(all, t...)
	}
	return budget.NewTags(all...), nil
}

// NewSource returns the tag source called name for records under root:
// "path" (the default), "inline", or "both".
func NewSource(name, root string) (budget.TagSource, error) {
	switch name {
	case "", "path":
		return PathSource{Root: root}, nil
	case "inline":
		return InlineSource{}, nil
	case "both":
		return MultiSource{PathSource{Root: root}, InlineSource{}}, nil
	default:
		return nil, fmt.Errorf("unsupported tag source: %s (use path, inline, or both)", name)
	}
}

package budget

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	fieldDelimiter = ": "
	tagMarker      = "@"

	// maxLineSize bounds a single record line.
	maxLineSize = 1 << 20
)

// ParseFile reads the record file at path and attaches the tags reported by
// source. The file is only read, never written.
func ParseFile(path string, source TagSource) (Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, &ParseError{Path: path, Err: fmt.Errorf("%w: %w", ErrNotAFile, err)}
		}
		return Record{}, &ParseError{Path: path, Err: fmt.Errorf("%w: %w", ErrIO, err)}
	}
	if !info.Mode().IsRegular() {
		return Record{}, &ParseError{Path: path, Err: ErrNotAFile}
	}

	f, err := os.Open(path)
	if err != nil {
		return Record{}, &ParseError{Path: path, Err: fmt.Errorf("%w: %w", ErrIO, err)}
	}
	defer f.Close()

	rec, err := Parse(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return Record{}, pe
		}
		return Record{}, &ParseError{Path: path, Err: err}
	}
	rec.Path = path

	if source != nil {
		tags, err := source.TagsFor(path)
		if err != nil {
			return Record{}, &ParseError{Path: path, Err: fmt.Errorf("%w: tags: %w", ErrIO, err)}
		}
		rec.Tags = tags
	}
	return rec, nil
}

// Parse reads "key: value" lines from r. Later lines overwrite earlier
// values of the same key and unknown keys are skipped. Lines made only of
// @tag markers are skipped too; tag sources read them. The returned record
// has no path and no tags.
func Parse(r io.Reader) (Record, error) {
	rec := Record{Cost: decimal.Zero}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || isTagLine(line) {
			continue
		}

		key, value, ok := strings.Cut(line, fieldDelimiter)
		if !ok {
			return Record{}, &ParseError{Line: lineNo, Err: fmt.Errorf("%w: missing %q in %q", ErrMalformedLine, fieldDelimiter, line)}
		}

		switch key {
		case "name":
			rec.Name = value
		case "cost":
			cost, err := decimal.NewFromString(strings.TrimSpace(value))
			if err != nil {
				return Record{}, &ParseError{Line: lineNo, Err: fmt.Errorf("%w %q: %w", ErrMalformedCost, value, err)}
			}
			rec.Cost = cost
		case "date":
			d := value
			rec.Date = &d
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return Record{}, &ParseError{Line: lineNo + 1, Err: fmt.Errorf("%w: line longer than %d bytes", ErrMalformedLine, maxLineSize)}
		}
		return Record{}, &ParseError{Line: lineNo, Err: fmt.Errorf("%w: %w", ErrIO, err)}
	}
	return rec, nil
}

func isTagLine(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if !strings.HasPrefix(f, tagMarker) || len(f) == len(tagMarker) {
			return false
		}
	}
	return true
}

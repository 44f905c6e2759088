package budget

import (
	"errors"
	"fmt"
)

var (
	ErrNotAFile             = errors.New("not a file")
	ErrNotADirectory        = errors.New("not a directory")
	ErrMalformedCost        = errors.New("malformed cost")
	ErrMalformedLine        = errors.New("malformed line")
	ErrIO                   = errors.New("i/o failure")
	ErrConfigurationMissing = errors.New("finances directory not configured")
)

// ParseError describes why a single record file could not be parsed.
// Line is 1-based and zero when the failure is not tied to a line.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

package report

import (
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/budget/internal/analyzer"
	"github.com/ppiankov/budget/internal/budget"
)

// Reporter is the interface for output formatters.
type Reporter interface {
	Generate(data Data) error
}

// Data holds all information needed to generate a report.
type Data struct {
	Tool         string              `json:"tool"`
	Version      string              `json:"version"`
	Timestamp    time.Time           `json:"timestamp"`
	Config       ReportConfig        `json:"config"`
	Total        decimal.Decimal     `json:"total"`
	Matching     []budget.Record     `json:"matching"`
	Breakdown    []analyzer.TagTotal `json:"breakdown"`
	Related      []string            `json:"related"`
	FilesScanned int                 `json:"files_scanned"`
	Errors       []string            `json:"errors,omitempty"`
}

// ReportConfig captures the run configuration used.
type ReportConfig struct {
	Root           string   `json:"root"`
	Tags           []string `json:"tags"`
	IncludeArchive bool     `json:"include_archive"`
	Match          string   `json:"match"`
}

// TextReporter generates human-readable terminal output. Verbose lists the
// individual records; Breakdown prints per-tag totals instead of the
// related-tag summary.
type TextReporter struct {
	Writer    io.Writer
	Verbose   bool
	Breakdown bool
}

// JSONReporter generates budget/v1 envelope JSON output.
type JSONReporter struct {
	Writer io.Writer
}

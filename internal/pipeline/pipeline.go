// Package pipeline runs a budget summary end to end: scan the finances root,
// drop archived records unless asked not to, filter by tag and aggregate.
package pipeline

import (
	"context"
	"log/slog"
	"slices"

	"github.com/ppiankov/budget/internal/analyzer"
	"github.com/ppiankov/budget/internal/budget"
	"github.com/ppiankov/budget/internal/scanner"
	"github.com/ppiankov/budget/internal/tags"
)

// DefaultArchiveTag marks records hidden from default reports.
const DefaultArchiveTag = "archive"

// Config is everything a run needs to know. Root is resolved by the caller;
// the pipeline never reads the environment.
type Config struct {
	Root           string
	Tokens         []string
	IncludeArchive bool
	ArchiveTag     string
	Patterns       []string
	Exclude        []string
	Workers        int
	KeepGoing      bool
}

// Deps are the collaborators injected into a run.
type Deps struct {
	Matcher  budget.TagMatcher
	Source   budget.TagSource
	Logger   *slog.Logger
	Progress func(scanner.ScanProgress)
}

// Result is the outcome of a run.
type Result struct {
	*analyzer.AnalysisResult
	Criteria     []string `json:"criteria"`
	FilesScanned int      `json:"files_scanned"`
	Errors       []string `json:"errors,omitempty"`
}

// Criteria returns the tokens the matcher evaluates: the requested tokens
// plus the archive exclusion unless archived records are included.
func (c Config) Criteria() []string {
	criteria := slices.Clone(c.Tokens)
	if !c.IncludeArchive {
		tag := c.ArchiveTag
		if tag == "" {
			tag = DefaultArchiveTag
		}
		criteria = append(criteria, tags.Negate(tag))
	}
	return criteria
}

// Run executes the pipeline.
func Run(ctx context.Context, cfg Config, deps Deps) (*Result, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	matcher := deps.Matcher
	if matcher == nil {
		matcher = tags.Filter{Mode: tags.ModeAll}
	}

	scan, err := scanner.New(deps.Source, logger).Scan(ctx, scanner.ScanConfig{
		Root:      cfg.Root,
		Patterns:  cfg.Patterns,
		Exclude:   cfg.Exclude,
		Workers:   cfg.Workers,
		KeepGoing: cfg.KeepGoing,
	}, deps.Progress)
	if err != nil {
		return nil, err
	}

	criteria := cfg.Criteria()
	analysis := analyzer.Analyze(scan.Records, analyzer.AnalyzerConfig{
		Requested: cfg.Tokens,
		Criteria:  criteria,
		Matcher:   matcher,
		Normalize: tags.Normalize,
	})
	logger.Debug("Analysis complete",
		"root", cfg.Root,
		"files", scan.FilesScanned,
		"matching", len(analysis.Matching),
		"total", analysis.Total.String(),
		"errors", len(scan.Errors))

	return &Result{
		AnalysisResult: analysis,
		Criteria:       criteria,
		FilesScanned:   scan.FilesScanned,
		Errors:         scan.Errors,
	}, nil
}

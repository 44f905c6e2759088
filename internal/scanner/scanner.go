package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/budget/internal/budget"
)

// DefaultPatterns are the file name globs treated as record files.
var DefaultPatterns = []string{"*.txt", "*.md"}

// ScanConfig holds parameters that control scanning behavior.
type ScanConfig struct {
	Root     string
	Patterns []string
	// Exclude lists paths relative to Root that are skipped, directories
	// included.
	Exclude []string
	Workers int
	// KeepGoing collects per-file errors instead of aborting on the first.
	KeepGoing bool
}

// ScanResult holds every record parsed under the root, in enumeration order.
type ScanResult struct {
	Records      []budget.Record `json:"records"`
	Errors       []string        `json:"errors,omitempty"`
	FilesScanned int             `json:"files_scanned"`
}

// ScanProgress reports scanning progress to callers.
type ScanProgress struct {
	Path      string
	Message   string
	Timestamp time.Time
}

// Scanner enumerates and parses record files.
type Scanner struct {
	source budget.TagSource
	logger *slog.Logger
}

// New creates a scanner that tags records with source.
func New(source budget.TagSource, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{source: source, logger: logger}
}

// Scan parses all record files under cfg.Root. Without KeepGoing the first
// failure aborts the scan and no result is returned.
func (s *Scanner) Scan(ctx context.Context, cfg ScanConfig, progress func(ScanProgress)) (*ScanResult, error) {
	files, err := Enumerate(cfg.Root, cfg.Patterns, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	s.reportProgress(progress, cfg.Root, fmt.Sprintf("Found %d record files", len(files)))

	records := make([]budget.Record, len(files))
	errs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := budget.ParseFile(path, s.source)
			if err != nil {
				s.logger.Debug("Parse failed", "path", path, "error", err)
				if cfg.KeepGoing {
					errs[i] = err
					return nil
				}
				return err
			}
			s.logger.Debug("Parsed record", "path", path, "cost", rec.Cost.String(), "tags", rec.Tags)
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &ScanResult{FilesScanned: len(files)}
	for i := range files {
		if errs[i] != nil {
			result.Errors = append(result.Errors, errs[i].Error())
			continue
		}
		result.Records = append(result.Records, records[i])
	}
	s.reportProgress(progress, cfg.Root, fmt.Sprintf("Parsed %d records", len(result.Records)))
	return result, nil
}

func (s *Scanner) reportProgress(fn func(ScanProgress), path, msg string) {
	if fn != nil {
		fn(ScanProgress{
			Path:      path,
			Message:   msg,
			Timestamp: time.Now(),
		})
	}
}

// Enumerate lists record files under root in lexical order. Hidden files
// and directories are skipped, as are paths listed in exclude. Nil patterns
// select DefaultPatterns.
func Enumerate(root string, patterns, exclude []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", root, budget.ErrNotADirectory)
		}
		return nil, fmt.Errorf("%s: %w: %w", root, budget.ErrIO, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, budget.ErrNotADirectory)
	}
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
	}

	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[filepath.Clean(e)] = true
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("%w: %w", budget.ErrIO, walkErr)
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") || skip[rel] {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !matchesAny(patterns, d.Name()) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func matchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

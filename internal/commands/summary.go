package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ppiankov/budget/internal/budget"
	"github.com/ppiankov/budget/internal/config"
	"github.com/ppiankov/budget/internal/pipeline"
	"github.com/ppiankov/budget/internal/report"
	"github.com/ppiankov/budget/internal/scanner"
	"github.com/ppiankov/budget/internal/tags"
)

// financesEnv names the finances root when --dir is not given.
const financesEnv = "FINANCES"

var summaryFlags struct {
	dir        string
	archive    bool
	verbose    bool
	all        bool
	any        bool
	format     string
	outputFile string
	tagSource  string
	workers    int
	keepGoing  bool
}

func registerSummaryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&summaryFlags.dir, "dir", "d", "", "Finances directory (default: $"+financesEnv+")")
	cmd.Flags().BoolVarP(&summaryFlags.archive, "archive", "a", false, "Include archived records")
	cmd.Flags().BoolVarP(&summaryFlags.verbose, "verbose", "v", false, "List the records behind each total")
	cmd.Flags().BoolVar(&summaryFlags.all, "all", false, "Show a breakdown for every tag of the matching records")
	cmd.Flags().BoolVar(&summaryFlags.any, "any", false, "Match records carrying any of the tags instead of all")
	cmd.Flags().StringVar(&summaryFlags.format, "format", "text", "Output format: text, json")
	cmd.Flags().StringVarP(&summaryFlags.outputFile, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&summaryFlags.tagSource, "tag-source", "path", "Where tags come from: path, inline, both")
	cmd.Flags().IntVar(&summaryFlags.workers, "workers", 1, "Number of files parsed in parallel")
	cmd.Flags().BoolVar(&summaryFlags.keepGoing, "keep-going", false, "Report unparsable files as warnings instead of failing")
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		slog.Warn("Failed to load config file", "error", err)
	}
	applyConfigDefaults(cmd.Flags(), cfg)

	root, err := resolveRoot(cmd, cfg)
	if err != nil {
		return enhanceError("resolve finances directory", err)
	}

	matchName := cfg.Match
	if summaryFlags.any {
		matchName = string(tags.ModeAny)
	}
	mode, err := tags.ParseMode(matchName)
	if err != nil {
		return err
	}
	source, err := tags.NewSource(summaryFlags.tagSource, root)
	if err != nil {
		return err
	}

	slog.Debug("Summarising", "root", root, "tags", args, "archive", summaryFlags.archive)

	result, err := pipeline.Run(cmd.Context(), pipeline.Config{
		Root:           root,
		Tokens:         args,
		IncludeArchive: summaryFlags.archive,
		ArchiveTag:     cfg.ArchiveTag,
		Patterns:       cfg.Patterns,
		Exclude:        cfg.Exclude.Paths,
		Workers:        summaryFlags.workers,
		KeepGoing:      summaryFlags.keepGoing,
	}, pipeline.Deps{
		Matcher: tags.Filter{Mode: mode},
		Source:  source,
		Logger:  slog.Default(),
		Progress: func(p scanner.ScanProgress) {
			slog.Debug(p.Message, "path", p.Path)
		},
	})
	if err != nil {
		return enhanceError("summarise "+root, err)
	}

	data := report.Data{
		Tool:      "budget",
		Version:   version,
		Timestamp: time.Now().UTC(),
		Config: report.ReportConfig{
			Root:           root,
			Tags:           args,
			IncludeArchive: summaryFlags.archive,
			Match:          string(mode),
		},
		Total:        result.Total,
		Matching:     result.Matching,
		Breakdown:    result.Breakdown,
		Related:      result.Related,
		FilesScanned: result.FilesScanned,
		Errors:       result.Errors,
	}

	w, closeOutput, err := openOutput(cmd.OutOrStdout(), summaryFlags.outputFile)
	if err != nil {
		return err
	}
	reporter, err := selectReporter(summaryFlags.format, w)
	if err != nil {
		_ = closeOutput()
		return err
	}
	if err := reporter.Generate(data); err != nil {
		_ = closeOutput()
		return err
	}
	return closeOutput()
}

// resolveRoot picks the finances directory: --dir, then $FINANCES, then the
// config file.
func resolveRoot(cmd *cobra.Command, cfg config.Config) (string, error) {
	v := viper.New()
	if err := v.BindPFlag("dir", cmd.Flags().Lookup("dir")); err != nil {
		return "", err
	}
	if err := v.BindEnv("dir", financesEnv); err != nil {
		return "", err
	}
	v.SetDefault("dir", cfg.RootDir())

	dir := v.GetString("dir")
	if dir == "" {
		return "", budget.ErrConfigurationMissing
	}
	return dir, nil
}

// applyConfigDefaults fills flags the user did not set from the config file.
func applyConfigDefaults(flags *pflag.FlagSet, cfg config.Config) {
	if !flags.Changed("format") && cfg.Format != "" {
		summaryFlags.format = cfg.Format
	}
	if !flags.Changed("tag-source") && cfg.TagSource != "" {
		summaryFlags.tagSource = cfg.TagSource
	}
	if !flags.Changed("workers") && cfg.Workers > 0 {
		summaryFlags.workers = cfg.Workers
	}
	if !flags.Changed("keep-going") && cfg.KeepGoing {
		summaryFlags.keepGoing = true
	}
}

func openOutput(stdout io.Writer, outputFile string) (io.Writer, func() error, error) {
	if outputFile == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, f.Close, nil
}

func selectReporter(format string, w io.Writer) (report.Reporter, error) {
	switch format {
	case "json":
		return &report.JSONReporter{Writer: w}, nil
	case "text":
		return &report.TextReporter{
			Writer:    w,
			Verbose:   summaryFlags.verbose,
			Breakdown: summaryFlags.all,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use text or json)", format)
	}
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/budget/internal/analyzer"
	"github.com/ppiankov/budget/internal/budget"
)

// Generate writes human-readable terminal output.
func (r *TextReporter) Generate(data Data) error {
	w := &errWriter{w: r.Writer}

	if len(data.Config.Tags) == 0 {
		w.printf("Total: %s\n", data.Total.StringFixed(2))
	} else {
		w.printf("Total for `%s`: %s\n", strings.Join(data.Config.Tags, "+"), data.Total.StringFixed(2))
	}

	if !r.Breakdown {
		if r.Verbose {
			writeRecords(w, data.Matching)
			w.println("")
		}
		w.printf("Related: %s\n", strings.Join(data.Related, " "))
	} else {
		w.println("")
		w.println("Breakdown for matching tags")
		for _, tt := range data.Breakdown {
			w.printf("%s - %s\n", tt.Tag, tt.Total.StringFixed(2))
			if r.Verbose {
				writeRecords(w, tt.Records)
			}
		}
	}

	if len(data.Errors) > 0 {
		w.printf("\nWarnings (%d):\n", len(data.Errors))
		for _, e := range data.Errors {
			w.printf("  - %s\n", e)
		}
	}
	return w.err
}

func writeRecords(w *errWriter, records []budget.Record) {
	for _, rec := range analyzer.SortByCost(records) {
		w.printf("\t%s\n", rec)
	}
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

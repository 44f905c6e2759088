package report

import (
	"encoding/json"
	"fmt"

	"github.com/ppiankov/budget/internal/analyzer"
	"github.com/ppiankov/budget/internal/budget"
)

type jsonEnvelope struct {
	Schema string `json:"$schema"`
	Data
}

// Generate writes the report as indented JSON.
func (r *JSONReporter) Generate(data Data) error {
	if data.Matching == nil {
		data.Matching = []budget.Record{}
	}
	if data.Breakdown == nil {
		data.Breakdown = []analyzer.TagTotal{}
	}
	if data.Related == nil {
		data.Related = []string{}
	}
	if data.Config.Tags == nil {
		data.Config.Tags = []string{}
	}
	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonEnvelope{Schema: "budget/v1", Data: data}); err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}
	return nil
}

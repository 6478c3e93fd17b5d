// Package report persists run results as nested JSON or flat CSV rows.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/ltrinh/afmorph/internal/model"
)

// document is the JSON file layout: records regrouped by class, size and
// check for human inspection.
type document struct {
	Model       string                                     `json:"model"`
	GeneratedAt time.Time                                  `json:"generated_at"`
	Failures    int                                        `json:"failures"`
	Results     map[string]map[int]map[string]model.Record `json:"results"`
}

// WriteJSON writes the nested results document to path.
func WriteJSON(path string, results *model.Results) error {
	doc := document{
		Model:       results.Model,
		GeneratedAt: time.Now().UTC(),
		Failures:    results.Failures(),
		Results:     results.Nested(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// WriteCSV writes one flat row per record to path, in run order.
func WriteCSV(path string, results *model.Results) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"model", "class", "size", "check", "status", "violations", "info"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range results.Records {
		row := []string{
			results.Model,
			rec.Class,
			strconv.Itoa(rec.Size),
			rec.Check,
			string(rec.Status),
			renderViolations(rec.Violations),
			rec.Info,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// renderViolations flattens a violation map into "KEY: msg; KEY: msg" with
// keys sorted, so rows stay diffable across runs.
func renderViolations(violations map[string][]string) string {
	if len(violations) == 0 {
		return ""
	}

	keys := make([]string, 0, len(violations))
	for k := range violations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := ""
	for _, k := range keys {
		for _, msg := range violations[k] {
			if out != "" {
				out += "; "
			}
			out += k + ": " + msg
		}
	}
	return out
}

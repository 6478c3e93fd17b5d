package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ltrinh/afmorph/internal/model"
)

func sampleResults() *model.Results {
	results := &model.Results{Model: "test-model"}
	results.Add(model.Record{
		Class: "cycle", Size: 4, Check: model.CheckBase, Status: model.StatusPass,
	})
	results.Add(model.Record{
		Class: "cycle", Size: 4, Check: model.CheckValidity, Status: model.StatusFail,
		Violations: map[string][]string{
			"Invalid SE": {"Expected [] but got [[A1]]"},
		},
	})
	results.Add(model.Record{
		Class: "no_conflict", Size: 4, Check: model.CheckDefenseDynamics,
		Status: model.StatusNotApplicable, Info: "framework has no attacks",
	})
	return results
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")

	if err := WriteJSON(path, sampleResults()); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	var doc struct {
		Model    string                                     `json:"model"`
		Failures int                                        `json:"failures"`
		Results  map[string]map[string]map[string]model.Record `json:"results"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if doc.Model != "test-model" {
		t.Errorf("Expected model test-model, got %s", doc.Model)
	}
	if doc.Failures != 1 {
		t.Errorf("Expected 1 failure, got %d", doc.Failures)
	}

	rec, ok := doc.Results["cycle"]["4"][model.CheckValidity]
	if !ok {
		t.Fatal("Missing cycle/4/validity record")
	}
	if rec.Status != model.StatusFail {
		t.Errorf("Expected FAIL, got %s", rec.Status)
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	if err := WriteCSV(path, sampleResults()); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "model" || rows[0][3] != "check" {
		t.Errorf("Unexpected header: %v", rows[0])
	}

	// Records keep their run order in the flat file.
	if rows[1][3] != model.CheckBase || rows[2][3] != model.CheckValidity {
		t.Errorf("Rows out of run order: %v / %v", rows[1], rows[2])
	}
	if !strings.Contains(rows[2][5], "Invalid SE") {
		t.Errorf("Expected violation text in row, got %q", rows[2][5])
	}
	if rows[3][4] != string(model.StatusNotApplicable) {
		t.Errorf("Expected Not Applicable status, got %q", rows[3][4])
	}
}

func TestRenderViolations_Deterministic(t *testing.T) {
	violations := map[string][]string{
		"MR-FC": {"second"},
		"FP-1":  {"first"},
	}
	got := renderViolations(violations)
	if got != "FP-1: first; MR-FC: second" {
		t.Errorf("Unexpected rendering: %q", got)
	}
}

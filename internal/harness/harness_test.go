package harness

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ltrinh/afmorph/internal/af"
	"github.com/ltrinh/afmorph/internal/model"
	"github.com/ltrinh/afmorph/internal/oracle"
	"github.com/ltrinh/afmorph/internal/semantics"
	"github.com/ltrinh/afmorph/internal/verify"
)

// funcOracle dispatches every query to a test-supplied function.
type funcOracle struct {
	fn    func(fw *af.Framework) (af.ExtensionFamily, error)
	calls int
}

func (o *funcOracle) Model() string { return "func" }

func (o *funcOracle) Extensions(ctx context.Context, fw *af.Framework) (af.ExtensionFamily, error) {
	o.calls++
	return o.fn(fw)
}

func checksOf(t *testing.T, results *model.Results, class string, size int) map[string]model.Record {
	t.Helper()
	nested := results.Nested()
	byCheck, ok := nested[class][size]
	if !ok {
		t.Fatalf("No records for %s n=%d", class, size)
	}
	return byCheck
}

func TestRun_ExactOracleAllPass(t *testing.T) {
	h := New(NewExactOracle(), Options{
		Classes: []string{"no_conflict", "cycle"},
		Sizes:   []int{4},
		Seed:    1,
	})

	results, err := h.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if results.Model != "exact" {
		t.Errorf("Expected model exact, got %s", results.Model)
	}
	if len(results.Records) != 12 {
		t.Fatalf("Expected 12 records (2 classes x 6 checks), got %d", len(results.Records))
	}

	for _, rec := range results.Records {
		want := model.StatusPass
		if rec.Class == "no_conflict" && rec.Check == model.CheckDefenseDynamics {
			want = model.StatusNotApplicable
		}
		if rec.Status != want {
			t.Errorf("%s n=%d %s: expected %s, got %s (violations: %v)",
				rec.Class, rec.Size, rec.Check, want, rec.Status, rec.Violations)
		}
	}
}

func TestRun_RecordsFollowCheckOrder(t *testing.T) {
	h := New(NewExactOracle(), Options{Classes: []string{"cycle"}, Sizes: []int{4}, Seed: 1})

	results, err := h.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results.Records) != len(model.AllChecks) {
		t.Fatalf("Expected %d records, got %d", len(model.AllChecks), len(results.Records))
	}
	for i, rec := range results.Records {
		if rec.Check != model.AllChecks[i] {
			t.Errorf("Record %d: expected check %s, got %s", i, model.AllChecks[i], rec.Check)
		}
	}
}

func TestRun_BaseTimeoutAbortsPair(t *testing.T) {
	o := &funcOracle{fn: func(fw *af.Framework) (af.ExtensionFamily, error) {
		return nil, &oracle.TimeoutError{Attempts: 3, Last: context.DeadlineExceeded}
	}}
	h := New(o, Options{Classes: []string{"cycle"}, Sizes: []int{4}, Seed: 1})

	results, err := h.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	checks := checksOf(t, results, "cycle", 4)
	if checks[model.CheckBase].Status != model.StatusTimeout {
		t.Errorf("Expected base Request Timeout, got %s", checks[model.CheckBase].Status)
	}
	for _, check := range model.AllChecks[1:] {
		if checks[check].Status != model.StatusAborted {
			t.Errorf("Expected %s Aborted, got %s", check, checks[check].Status)
		}
	}

	// One query for the base framework, none for the transformed ones.
	if o.calls != 1 {
		t.Errorf("Expected 1 oracle call, got %d", o.calls)
	}
}

func TestRun_BaseErrorAbortsPair(t *testing.T) {
	o := &funcOracle{fn: func(fw *af.Framework) (af.ExtensionFamily, error) {
		return nil, errors.New("connection refused")
	}}
	h := New(o, Options{Classes: []string{"cycle"}, Sizes: []int{4}, Seed: 1})

	results, err := h.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	checks := checksOf(t, results, "cycle", 4)
	base := checks[model.CheckBase]
	if base.Status != model.StatusError {
		t.Errorf("Expected base Error, got %s", base.Status)
	}
	if !strings.Contains(base.Info, "connection refused") {
		t.Errorf("Expected cause in info, got %q", base.Info)
	}
	if checks[model.CheckValidity].Status != model.StatusAborted {
		t.Errorf("Expected validity Aborted, got %s", checks[model.CheckValidity].Status)
	}
}

func TestRun_TransformedFailureIsIsolated(t *testing.T) {
	solver := semantics.NewSolver()
	o := &funcOracle{fn: func(fw *af.Framework) (af.ExtensionFamily, error) {
		// Answer the base framework correctly, fail every transformed one.
		if strings.HasPrefix(fw.Name(), "Cycle") {
			return solver.Family(fw)
		}
		return nil, errors.New("boom")
	}}
	h := New(o, Options{Classes: []string{"cycle"}, Sizes: []int{4}, Seed: 1})

	results, err := h.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	checks := checksOf(t, results, "cycle", 4)
	if checks[model.CheckBase].Status != model.StatusPass {
		t.Errorf("Expected base PASS, got %s", checks[model.CheckBase].Status)
	}
	if checks[model.CheckValidity].Status != model.StatusPass {
		t.Errorf("Expected validity PASS, got %s", checks[model.CheckValidity].Status)
	}
	for _, check := range model.AllChecks[2:] {
		if checks[check].Status != model.StatusError {
			t.Errorf("Expected %s Error, got %s", check, checks[check].Status)
		}
	}
}

func TestRun_BaseSchemaFailureContinues(t *testing.T) {
	o := &funcOracle{fn: func(fw *af.Framework) (af.ExtensionFamily, error) {
		return nil, &oracle.SchemaError{Reason: "no JSON object found in the response"}
	}}
	h := New(o, Options{Classes: []string{"cycle"}, Sizes: []int{4}, Seed: 1})

	results, err := h.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	checks := checksOf(t, results, "cycle", 4)
	base := checks[model.CheckBase]
	if base.Status != model.StatusFail {
		t.Errorf("Expected base FAIL, got %s", base.Status)
	}
	if _, ok := base.Violations[verify.KeySchemaError]; !ok {
		t.Errorf("Expected SCHEMA-ERROR violation, got %v", base.Violations)
	}

	// The later states still run, each failing its own schema check against
	// the empty family.
	for _, check := range model.AllChecks[1:] {
		rec := checks[check]
		if rec.Status != model.StatusFail {
			t.Errorf("Expected %s FAIL, got %s", check, rec.Status)
		}
		if _, ok := rec.Violations[verify.KeySchemaVerificationFail]; !ok {
			t.Errorf("Expected %s to report a schema verification failure, got %v", check, rec.Violations)
		}
	}

	// Base plus four transformed queries; no query is skipped.
	if o.calls != 5 {
		t.Errorf("Expected 5 oracle calls, got %d", o.calls)
	}
}

func TestRun_UnknownClassProducesNothing(t *testing.T) {
	h := New(NewExactOracle(), Options{Classes: []string{"nonexistent"}, Sizes: []int{4}})

	results, err := h.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results.Records) != 0 {
		t.Errorf("Expected no records, got %d", len(results.Records))
	}
}

func TestRun_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := New(NewExactOracle(), Options{Classes: []string{"cycle"}, Sizes: []int{4}})
	_, err := h.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

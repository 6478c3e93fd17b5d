// Package harness orchestrates one evaluation run: generate frameworks,
// query the oracle, and drive the check states in order for every
// (class, size) pair.
package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/ltrinh/afmorph/internal/af"
	"github.com/ltrinh/afmorph/internal/gen"
	"github.com/ltrinh/afmorph/internal/model"
	"github.com/ltrinh/afmorph/internal/oracle"
	"github.com/ltrinh/afmorph/internal/transform"
	"github.com/ltrinh/afmorph/internal/verify"
)

// Oracle is the extension computer under test.
type Oracle interface {
	// Model returns the identifier reported in results
	Model() string

	// Extensions returns the oracle's claimed extension family for fw
	Extensions(ctx context.Context, fw *af.Framework) (af.ExtensionFamily, error)
}

// Options configures a run.
type Options struct {
	Classes []string  // Empty means every catalog class
	Sizes   []int     // Empty means the default sizes
	Seed    int64     // 0 means time-seeded
	Verbose bool      //
	Log     io.Writer // Defaults to os.Stderr
}

// Harness runs the check states over generated frameworks.
type Harness struct {
	oracle  Oracle
	suite   *verify.Suite
	rng     *rand.Rand
	classes map[string]bool
	sizes   []int
	verbose bool
	log     io.Writer
}

// New creates a harness for the given oracle.
func New(o Oracle, opts Options) *Harness {
	sizes := opts.Sizes
	if len(sizes) == 0 {
		sizes = []int{4, 8, 16, 20}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var classes map[string]bool
	if len(opts.Classes) > 0 {
		classes = make(map[string]bool, len(opts.Classes))
		for _, c := range opts.Classes {
			classes[c] = true
		}
	}

	logOut := opts.Log
	if logOut == nil {
		logOut = os.Stderr
	}

	return &Harness{
		oracle:  o,
		suite:   verify.NewSuite(),
		rng:     rand.New(rand.NewSource(seed)),
		classes: classes,
		sizes:   sizes,
		verbose: opts.Verbose,
		log:     logOut,
	}
}

// Run executes every selected (class, size) pair and returns the collected
// records. The context aborts the run between oracle queries.
func (h *Harness) Run(ctx context.Context) (*model.Results, error) {
	results := &model.Results{Model: h.oracle.Model()}

	for _, entry := range gen.Catalog() {
		if h.classes != nil && !h.classes[entry.Name] {
			continue
		}
		for _, size := range h.sizes {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			if err := h.runPair(ctx, results, entry, size); err != nil {
				return results, err
			}
		}
	}

	return results, nil
}

// runPair drives the state sequence for one generated framework. Only a
// generator error aborts the run; oracle trouble is recorded per check.
func (h *Harness) runPair(ctx context.Context, results *model.Results, entry gen.Entry, size int) error {
	fw, err := entry.Build(size)
	if err != nil {
		return fmt.Errorf("generate %s (n=%d): %w", entry.Name, size, err)
	}

	h.logf("Testing %s...\n", fw.Name())

	record := func(rec model.Record) {
		rec.Class = entry.Name
		rec.Size = size
		results.Add(rec)
		h.logf("  %s: %s\n", rec.Check, rec.Status)
		if h.verbose && len(rec.Violations) > 0 {
			h.logf("%s", indent(verify.Violations(rec.Violations).String()))
		}
	}

	// Base state. A timeout or transport failure here leaves nothing for the
	// later states to compare against, so they are all aborted.
	baseFamily, err := h.oracle.Extensions(ctx, fw)
	switch status, violations, info := classify(err); status {
	case model.StatusPass:
		v := h.suite.FundamentalProperties(fw, baseFamily)
		record(model.Record{
			Check:      model.CheckBase,
			Status:     statusOf(v),
			Computed:   baseFamily.Render(),
			Violations: violationsOrNil(v),
		})
	case model.StatusFail:
		// Unparseable response: the base check fails and the remaining
		// states run against an empty family, each reporting its own
		// schema finding.
		baseFamily = af.ExtensionFamily{}
		record(model.Record{
			Check:      model.CheckBase,
			Status:     model.StatusFail,
			Violations: violationsOrNil(violations),
		})
	default:
		record(model.Record{Check: model.CheckBase, Status: status, Info: info})
		for _, check := range model.AllChecks[1:] {
			record(model.Record{
				Check:  check,
				Status: model.StatusAborted,
				Info:   "base oracle query did not produce extensions",
			})
		}
		return nil
	}

	// Validity against the exact comparator.
	if v, expected, err := h.suite.Validity(fw, baseFamily); err != nil {
		record(model.Record{Check: model.CheckValidity, Status: model.StatusError, Info: err.Error()})
	} else {
		rec := model.Record{
			Check:      model.CheckValidity,
			Status:     statusOf(v),
			Computed:   baseFamily.Render(),
			Violations: violationsOrNil(v),
		}
		if expected != nil {
			rec.Expected = expected.Render()
		}
		record(rec)
	}

	// Isomorphism.
	h.runMetamorphic(ctx, record, model.CheckIsomorphism,
		func() (*af.Framework, func(af.ExtensionFamily) verify.Violations, string, error) {
			tfw, rename, err := transform.Isomorphism(fw, nil)
			if err != nil {
				return nil, nil, "", err
			}
			return tfw, func(tf af.ExtensionFamily) verify.Violations {
				return h.suite.Isomorphism(baseFamily, tf, rename)
			}, "", nil
		})

	// Fundamental consistency.
	h.runMetamorphic(ctx, record, model.CheckFundamentalConsistency,
		func() (*af.Framework, func(af.ExtensionFamily) verify.Violations, string, error) {
			tfw, saName, err := transform.FundamentalConsistency(fw)
			if err != nil {
				return nil, nil, "", err
			}
			return tfw, func(tf af.ExtensionFamily) verify.Violations {
				return h.suite.FundamentalConsistency(baseFamily, tf, saName)
			}, "", nil
		})

	// Modularity.
	h.runMetamorphic(ctx, record, model.CheckModularity,
		func() (*af.Framework, func(af.ExtensionFamily) verify.Violations, string, error) {
			tfw, uName, err := transform.Modularity(fw)
			if err != nil {
				return nil, nil, "", err
			}
			return tfw, func(tf af.ExtensionFamily) verify.Violations {
				return h.suite.Modularity(baseFamily, tf, uName)
			}, "", nil
		})

	// Defense dynamics needs an attack edge to defend against.
	if len(fw.Attacks()) == 0 {
		record(model.Record{
			Check:  model.CheckDefenseDynamics,
			Status: model.StatusNotApplicable,
			Info:   "framework has no attacks",
		})
		return nil
	}
	h.runMetamorphic(ctx, record, model.CheckDefenseDynamics,
		func() (*af.Framework, func(af.ExtensionFamily) verify.Violations, string, error) {
			tfw, triple, err := transform.DefenseDynamics(fw, h.rng)
			if err != nil {
				return nil, nil, "", err
			}
			info := fmt.Sprintf("%s --- %s --- %s", triple.Defender, triple.Attacker, triple.Target)
			return tfw, func(tf af.ExtensionFamily) verify.Violations {
				return h.suite.DefenseDynamics(tfw, baseFamily, tf, triple)
			}, info, nil
		})

	return nil
}

// runMetamorphic executes one transformed state: build the transformed
// framework, query the oracle for it, check the fundamental properties of
// the answer, and overlay the relation's findings. Oracle failures here
// stay local to the check.
func (h *Harness) runMetamorphic(
	ctx context.Context,
	record func(model.Record),
	check string,
	build func() (*af.Framework, func(af.ExtensionFamily) verify.Violations, string, error),
) {
	tfw, verifyFn, checkInfo, err := build()
	if err != nil {
		record(model.Record{Check: check, Status: model.StatusError, Info: err.Error()})
		return
	}

	family, err := h.oracle.Extensions(ctx, tfw)
	status, violations, info := classify(err)
	computed := ""
	switch status {
	case model.StatusPass:
		computed = family.Render()
	case model.StatusFail:
		// Unparseable transformed response: run the checks against an
		// empty family so the schema finding carries the check's key.
		family = af.ExtensionFamily{}
	default:
		record(model.Record{Check: check, Status: status, Violations: violationsOrNil(violations), Info: info})
		return
	}

	// The transformed answer must hold up on its own before the relation to
	// the base answer is judged. Relation findings replace property findings
	// that share a key.
	v := h.suite.FundamentalProperties(tfw, family)
	for key, msgs := range verifyFn(family) {
		v[key] = msgs
	}
	record(model.Record{
		Check:      check,
		Status:     statusOf(v),
		Computed:   computed,
		Violations: violationsOrNil(v),
		Info:       checkInfo,
	})
}

// classify maps an oracle query error to a record status. A nil error is
// StatusPass; a schema error is StatusFail with the finding attached.
func classify(err error) (model.Status, verify.Violations, string) {
	if err == nil {
		return model.StatusPass, nil, ""
	}

	var timeoutErr *oracle.TimeoutError
	if errors.As(err, &timeoutErr) {
		return model.StatusTimeout, nil, timeoutErr.Error()
	}

	var schemaErr *oracle.SchemaError
	if errors.As(err, &schemaErr) {
		v := verify.Violations{}
		v.Add(verify.KeySchemaError, schemaErr.Reason)
		return model.StatusFail, v, ""
	}

	return model.StatusError, nil, err.Error()
}

func statusOf(v verify.Violations) model.Status {
	if v.OK() {
		return model.StatusPass
	}
	return model.StatusFail
}

// violationsOrNil keeps empty maps out of the serialized records.
func violationsOrNil(v verify.Violations) map[string][]string {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (h *Harness) logf(format string, args ...interface{}) {
	if h.verbose {
		fmt.Fprintf(h.log, format, args...)
	}
}

func indent(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		b.WriteString("    ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

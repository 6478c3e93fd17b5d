package verify

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ltrinh/afmorph/internal/af"
	"github.com/ltrinh/afmorph/internal/semantics"
)

// Suite holds the verification checks. It is stateless apart from the
// conflict-freeness predicate it borrows from the comparator.
type Suite struct {
	solver *semantics.Solver
}

// NewSuite creates a verification suite.
func NewSuite() *Suite {
	return &Suite{solver: semantics.NewSolver()}
}

// CheckSchema validates the shape of one extension family: all four
// semantics present, every member a bare argument name with no embedded
// whitespace. Prose or mathematical notation masquerading as names fails
// here. Any finding short-circuits downstream checks.
//
// Element typing (string vs anything else) is enforced earlier, when the raw
// oracle output is decoded; by the time a family exists in Go it can only
// hold strings.
func (s *Suite) CheckSchema(family af.ExtensionFamily) Violations {
	violations := Violations{}
	for _, tag := range af.AllSemantics {
		exts, ok := family[tag]
		if !ok {
			violations.Add(KeySchemaVerificationFail,
				fmt.Sprintf("Cannot verify the schema for the computed extensions: %s family is missing", tag))
			return violations
		}
		for _, ext := range exts {
			for _, member := range ext {
				if hasWhitespace(member) {
					violations.Add(KeySchemaError,
						fmt.Sprintf("Error parsing oracle extensions %s (%s): %q is not a bare argument name; "+
							"mathematical notation or text descriptions are not acceptable",
							af.RenderSets(exts), tag, member))
					return violations
				}
			}
		}
	}
	return violations
}

// checkSchemaPair validates both families of a metamorphic comparison.
func (s *Suite) checkSchemaPair(original, transformed af.ExtensionFamily) Violations {
	if v := s.CheckSchema(original); !v.OK() {
		return v
	}
	return s.CheckSchema(transformed)
}

// FundamentalProperties evaluates FP-1 through FP-6 on one framework and its
// claimed extension family. Schema failures short-circuit; everything else
// accumulates into a single report.
func (s *Suite) FundamentalProperties(fw *af.Framework, family af.ExtensionFamily) Violations {
	if v := s.CheckSchema(family); !v.OK() {
		return v
	}

	violations := Violations{}

	ge := af.SetOf(family[af.Grounded])
	ce := af.SetOf(family[af.Complete])
	pe := af.SetOf(family[af.Preferred])
	se := af.SetOf(family[af.Stable])

	// FP-1: every grounded extension is a complete extension.
	if !subset(ge, ce) {
		violations.Add(KeyFP1, fmt.Sprintf(
			"Grounded extensions %s are not a subset of Complete extensions %s",
			renderSet(ge), renderSet(ce)))
	}

	// FP-2: every preferred extension is a complete extension.
	if !subset(pe, ce) {
		violations.Add(KeyFP2, fmt.Sprintf(
			"Preferred extensions %s are not a subset of Complete extensions %s",
			renderSet(pe), renderSet(ce)))
	}

	// FP-3: every stable extension is a preferred extension.
	if !subset(se, pe) {
		violations.Add(KeyFP3, fmt.Sprintf(
			"Stable extensions %s are not a subset of Preferred extensions %s",
			renderSet(se), renderSet(pe)))
	}

	// FP-4: the grounded extension is unique.
	if len(ge) > 1 {
		violations.Add(KeyFP4, fmt.Sprintf(
			"Expected 1 Grounded extension, but found %d: %s", len(ge), renderSet(ge)))
	}

	// FP-5: at least one preferred extension exists.
	if len(pe) == 0 {
		violations.Add(KeyFP5, "Expected at least 1 Preferred extension, but found none")
	}

	// FP-6: every reported extension is conflict-free in fw.
	for _, tag := range af.AllSemantics {
		for _, ext := range family[tag] {
			ok, err := s.solver.IsConflictFree(fw, ext)
			if err != nil {
				violations.Add(KeyFP6, fmt.Sprintf(
					"Could not verify conflict-freeness for %s (%s): %v",
					af.RenderSets([]af.Extension{ext}), tag, err))
				continue
			}
			if !ok {
				violations.Add(KeyFP6, fmt.Sprintf(
					"Extension %s (%s) is not conflict-free",
					af.RenderSets([]af.Extension{ext}), tag))
			}
		}
	}

	return violations
}

func hasWhitespace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

// subset reports whether every key of a is a key of b.
func subset(a, b map[string]af.Extension) bool {
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func renderSet(set map[string]af.Extension) string {
	exts := make([]af.Extension, 0, len(set))
	for _, e := range set {
		exts = append(exts, e)
	}
	return af.RenderSets(exts)
}

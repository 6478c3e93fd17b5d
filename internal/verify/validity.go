package verify

import (
	"fmt"

	"github.com/ltrinh/afmorph/internal/af"
)

// Validity compares a claimed extension family against the exact comparator
// for the same framework, tag by tag. Mismatches are reported as
// "Invalid <TAG>" with both sides rendered sorted. The computed ground-truth
// family is returned so callers can reuse it without recomputation.
func (s *Suite) Validity(fw *af.Framework, family af.ExtensionFamily) (Violations, af.ExtensionFamily, error) {
	if v := s.CheckSchema(family); !v.OK() {
		return v, nil, nil
	}

	expected, err := s.solver.Family(fw)
	if err != nil {
		return nil, nil, fmt.Errorf("compute expected extensions: %w", err)
	}

	violations := Violations{}
	for _, tag := range af.AllSemantics {
		expectedSet := af.SetOf(expected[tag])
		claimedSet := af.SetOf(family[tag])

		if !sameSet(expectedSet, claimedSet) {
			violations.Add(fmt.Sprintf("Invalid %s", tag), fmt.Sprintf(
				"Expected %s but got %s", renderSet(expectedSet), renderSet(claimedSet)))
		}
	}

	return violations, expected, nil
}

func sameSet(a, b map[string]af.Extension) bool {
	return len(a) == len(b) && subset(a, b)
}

package verify

import (
	"fmt"
	"sort"

	"github.com/ltrinh/afmorph/internal/af"
	"github.com/ltrinh/afmorph/internal/transform"
)

// Isomorphism checks MR-ISO: for each semantics, the image of the original
// family under the renaming must equal the transformed family exactly.
func (s *Suite) Isomorphism(original, transformed af.ExtensionFamily, rename transform.Renaming) Violations {
	if v := s.checkSchemaPair(original, transformed); !v.OK() {
		return v
	}

	violations := Violations{}
	for _, tag := range af.AllSemantics {
		expected := make([]af.Extension, 0, len(original[tag]))
		for _, ext := range original[tag] {
			renamed := make(af.Extension, len(ext))
			for i, name := range ext {
				renamed[i] = rename(name)
			}
			expected = append(expected, renamed)
		}

		expectedSet := af.SetOf(expected)
		gotSet := af.SetOf(transformed[tag])
		if !sameSet(expectedSet, gotSet) {
			violations.Add(KeyMRIso, fmt.Sprintf(
				"(%s): Expected %s but got %s", tag, renderSet(expectedSet), renderSet(gotSet)))
		}
	}
	return violations
}

// FundamentalConsistency checks MR-FC after a fresh self-attacker saName was
// added: (1) saName appears in no extension of any semantics; (2) the
// grounded extension is unchanged.
func (s *Suite) FundamentalConsistency(original, transformed af.ExtensionFamily, saName string) Violations {
	if v := s.checkSchemaPair(original, transformed); !v.OK() {
		return v
	}

	violations := Violations{}

	for _, tag := range af.AllSemantics {
		for _, ext := range transformed[tag] {
			if ext.Contains(saName) {
				violations.Add(KeyMRFC, fmt.Sprintf(
					"MR-FC.1 (%s): self-attacking argument %q appeared in extension %s",
					tag, saName, af.RenderSets([]af.Extension{ext})))
			}
		}
	}

	originalGE := af.SetOf(original[af.Grounded])
	transformedGE := af.SetOf(transformed[af.Grounded])
	if !sameSet(originalGE, transformedGE) {
		violations.Add(KeyMRFC, fmt.Sprintf(
			"MR-FC.2 (GE): original grounded extension %s is not equal to transformed %s",
			renderSet(originalGE), renderSet(transformedGE)))
	}

	return violations
}

// Modularity checks MR-MOD after a fresh isolated argument uName was added:
// the grounded extension gains exactly uName, and for CE/PE/SE the
// transformed family is the bijective image of the original with uName
// unioned into every extension.
func (s *Suite) Modularity(original, transformed af.ExtensionFamily, uName string) Violations {
	if v := s.checkSchemaPair(original, transformed); !v.OK() {
		return v
	}

	violations := Violations{}

	// GE: the unique grounded extension, union {uName}. An absent grounded
	// family and an explicit empty-set extension are treated alike.
	expectedGE := append(firstExtension(original[af.Grounded]), uName)
	gotGE := firstExtension(transformed[af.Grounded])
	if gotGE.Key() != expectedGE.Key() {
		violations.Add(KeyMRMod, fmt.Sprintf(
			"(GE): Expected %s but got %s",
			af.RenderSets([]af.Extension{expectedGE}), af.RenderSets([]af.Extension{gotGE})))
	}

	for _, tag := range []af.Semantics{af.Complete, af.Preferred, af.Stable} {
		expected := make([]af.Extension, 0, len(original[tag]))
		for _, ext := range original[tag] {
			expected = append(expected, append(ext.Sorted(), uName))
		}

		expectedSet := af.SetOf(expected)
		gotSet := af.SetOf(transformed[tag])
		if !sameSet(expectedSet, gotSet) {
			violations.Add(KeyMRMod, fmt.Sprintf(
				"(%s): Expected %s but got %s", tag, renderSet(expectedSet), renderSet(gotSet)))
		}
	}

	return violations
}

// DefenseDynamics checks MR-DD after a defender was added against one chosen
// attack edge. fw is the transformed framework, whose structure supplies the
// target's direct attackers for the reinstatement law.
//
// MR-DD.3 consults only direct attackers' membership in the transformed
// grounded extension. An attacker that is excluded transitively rather than
// directly defeated can therefore trip the law even for a correct oracle;
// the relation is kept as defined rather than patched, and such findings
// warrant manual review.
func (s *Suite) DefenseDynamics(fw *af.Framework, original, transformed af.ExtensionFamily, triple transform.DefenseTriple) Violations {
	if v := s.checkSchemaPair(original, transformed); !v.OK() {
		return v
	}

	violations := Violations{}

	originalGE := firstExtension(original[af.Grounded])
	transformedGE := firstExtension(transformed[af.Grounded])

	// MR-DD.1: the defender must be in the new grounded extension.
	if !transformedGE.Contains(triple.Defender) {
		violations.Add(KeyMRDD1, fmt.Sprintf(
			"Defender %q not in new grounded extension", triple.Defender))
	}

	// MR-DD.2: the attacker must not be in the new grounded extension.
	if transformedGE.Contains(triple.Attacker) {
		violations.Add(KeyMRDD2, fmt.Sprintf(
			"Attacker %q still in new grounded extension", triple.Attacker))
	}

	// MR-DD.3: reinstatement, evaluated only when the target was out before.
	if !originalGE.Contains(triple.Target) {
		attackers := fw.AttackersOf(triple.Target)

		shouldBeReinstated := true
		var stillIn []string
		for _, attacker := range attackers {
			if transformedGE.Contains(attacker) {
				shouldBeReinstated = false
				stillIn = append(stillIn, attacker)
			}
		}

		isReinstated := transformedGE.Contains(triple.Target)

		if shouldBeReinstated && !isReinstated {
			violations.Add(KeyMRDD3, fmt.Sprintf(
				"Target %q was not reinstated into the new grounded extension although all its attackers are defeated",
				triple.Target))
		}
		if !shouldBeReinstated && isReinstated {
			sort.Strings(stillIn)
			violations.Add(KeyMRDD3, fmt.Sprintf(
				"Target %q was reinstated but should not have been (still attacked by %v)",
				triple.Target, stillIn))
		}
	}

	return violations
}

// firstExtension returns the first extension of a family slice, treating a
// missing or empty slice as the empty extension. The grounded family is
// unique, so "first" is the grounded extension itself.
func firstExtension(exts []af.Extension) af.Extension {
	if len(exts) == 0 {
		return af.Extension{}
	}
	return exts[0].Sorted()
}

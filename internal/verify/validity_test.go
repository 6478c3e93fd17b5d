package verify

import (
	"strings"
	"testing"

	"github.com/ltrinh/afmorph/internal/af"
	"github.com/ltrinh/afmorph/internal/gen"
)

func TestValidity_CorrectNoConflictFamily(t *testing.T) {
	fw, _ := gen.NoConflict(3)
	suite := NewSuite()

	all := af.Extension{"A1", "A2", "A3"}
	fam := family(
		[]af.Extension{all},
		[]af.Extension{all},
		[]af.Extension{all},
		[]af.Extension{all},
	)

	v, expected, err := suite.Validity(fw, fam)
	if err != nil {
		t.Fatalf("Validity failed: %v", err)
	}
	if !v.OK() {
		t.Errorf("Expected zero validity violations, got %v", v)
	}
	if expected == nil {
		t.Fatal("Expected the computed ground-truth family to be returned")
	}
	if len(expected[af.Grounded]) != 1 || expected[af.Grounded][0].Key() != all.Key() {
		t.Errorf("Unexpected ground truth GE: %v", expected[af.Grounded])
	}
}

func TestValidity_OddCycleBogusStable(t *testing.T) {
	// Cycle(3) has no stable extension; claiming SE=[[A1]] must fire.
	fw, _ := gen.Cycle(3)
	suite := NewSuite()

	fam := family(
		[]af.Extension{{}},
		[]af.Extension{{}},
		[]af.Extension{{}},
		[]af.Extension{{"A1"}},
	)

	v, _, err := suite.Validity(fw, fam)
	if err != nil {
		t.Fatalf("Validity failed: %v", err)
	}
	if len(v["Invalid SE"]) == 0 {
		t.Fatalf("Expected Invalid SE violation, got %v", v)
	}
	if !strings.Contains(v["Invalid SE"][0], "Expected") {
		t.Errorf("Violation should render expected and actual sets: %v", v["Invalid SE"])
	}
	// GE/CE/PE were correct for the odd cycle.
	for _, key := range []string{"Invalid GE", "Invalid CE", "Invalid PE"} {
		if len(v[key]) != 0 {
			t.Errorf("Did not expect %s, got %v", key, v[key])
		}
	}
}

func TestValidity_SchemaShortCircuits(t *testing.T) {
	fw, _ := gen.NoConflict(2)
	suite := NewSuite()

	fam := af.ExtensionFamily{af.Grounded: {{}}} // three tags missing

	v, expected, err := suite.Validity(fw, fam)
	if err != nil {
		t.Fatalf("Validity failed: %v", err)
	}
	if len(v[KeySchemaVerificationFail]) == 0 {
		t.Fatalf("Expected schema failure, got %v", v)
	}
	if expected != nil {
		t.Error("Ground truth must not be computed after a schema failure")
	}
}

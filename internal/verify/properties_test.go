package verify

import (
	"strings"
	"testing"

	"github.com/ltrinh/afmorph/internal/af"
	"github.com/ltrinh/afmorph/internal/gen"
)

// family builds a complete four-tag family; tests override tags as needed.
func family(ge, ce, pe, se []af.Extension) af.ExtensionFamily {
	return af.ExtensionFamily{
		af.Grounded:  ge,
		af.Complete:  ce,
		af.Preferred: pe,
		af.Stable:    se,
	}
}

func TestCheckSchema_Valid(t *testing.T) {
	suite := NewSuite()
	fam := family(
		[]af.Extension{{"A1"}},
		[]af.Extension{{"A1"}},
		[]af.Extension{{"A1"}},
		[]af.Extension{},
	)
	if v := suite.CheckSchema(fam); !v.OK() {
		t.Errorf("Expected clean schema, got %v", v)
	}
}

func TestCheckSchema_WhitespaceName(t *testing.T) {
	suite := NewSuite()
	fam := family(
		[]af.Extension{{"the set of all arguments"}},
		[]af.Extension{},
		[]af.Extension{},
		[]af.Extension{},
	)
	v := suite.CheckSchema(fam)
	if len(v[KeySchemaError]) == 0 {
		t.Fatalf("Expected SCHEMA-ERROR for prose member, got %v", v)
	}
}

func TestCheckSchema_MissingTag(t *testing.T) {
	suite := NewSuite()
	fam := af.ExtensionFamily{
		af.Grounded: {{}},
		af.Complete: {{}},
		// PE and SE absent
	}
	v := suite.CheckSchema(fam)
	if len(v[KeySchemaVerificationFail]) == 0 {
		t.Fatalf("Expected SCHEMA-VERIFICATION-FAILED for missing tag, got %v", v)
	}
}

func TestFundamentalProperties_CorrectFamilyPasses(t *testing.T) {
	// generate_no_conflict(3): all four families are {A1,A2,A3}.
	fw, _ := gen.NoConflict(3)
	suite := NewSuite()

	all := af.Extension{"A1", "A2", "A3"}
	fam := family(
		[]af.Extension{all},
		[]af.Extension{all},
		[]af.Extension{all},
		[]af.Extension{all},
	)

	if v := suite.FundamentalProperties(fw, fam); !v.OK() {
		t.Errorf("Expected zero FP violations, got %v", v)
	}
}

func TestFundamentalProperties_SchemaShortCircuits(t *testing.T) {
	fw, _ := gen.NoConflict(2)
	suite := NewSuite()

	fam := family(
		[]af.Extension{{"A1 and A2"}}, // prose; also not conflict-free-checkable
		[]af.Extension{},              // would trip FP-1 and FP-5
		[]af.Extension{},
		[]af.Extension{},
	)

	v := suite.FundamentalProperties(fw, fam)
	if len(v[KeySchemaError]) == 0 {
		t.Fatal("Expected schema error")
	}
	if len(v) != 1 {
		t.Errorf("Schema failure must short-circuit all FP checks, got %v", v)
	}
}

func TestFundamentalProperties_SubsetViolations(t *testing.T) {
	fw, _ := gen.Cycle(2)
	suite := NewSuite()

	fam := family(
		[]af.Extension{{"A1"}}, // not among CE -> FP-1
		[]af.Extension{{}},
		[]af.Extension{{"A2"}}, // not among CE -> FP-2
		[]af.Extension{{"A1"}}, // not among PE -> FP-3
	)

	v := suite.FundamentalProperties(fw, fam)
	for _, key := range []string{KeyFP1, KeyFP2, KeyFP3} {
		if len(v[key]) == 0 {
			t.Errorf("Expected %s violation, got %v", key, v)
		}
	}
}

func TestFundamentalProperties_UniquenessAndExistence(t *testing.T) {
	fw, _ := gen.NoConflict(2)
	suite := NewSuite()

	fam := family(
		[]af.Extension{{"A1"}, {"A2"}}, // two grounded -> FP-4
		[]af.Extension{{"A1"}, {"A2"}},
		[]af.Extension{}, // no preferred -> FP-5
		[]af.Extension{},
	)

	v := suite.FundamentalProperties(fw, fam)
	if len(v[KeyFP4]) == 0 {
		t.Errorf("Expected FP-4 violation, got %v", v)
	}
	if len(v[KeyFP5]) == 0 {
		t.Errorf("Expected FP-5 violation, got %v", v)
	}
}

func TestFundamentalProperties_ConflictFreeness(t *testing.T) {
	fw, _ := gen.LinearAttackChain(2)
	suite := NewSuite()

	fam := family(
		[]af.Extension{{"A1"}},
		[]af.Extension{{"A1", "A2"}}, // A1 attacks A2 -> FP-6
		[]af.Extension{{"A1"}},
		[]af.Extension{{"A1"}},
	)

	v := suite.FundamentalProperties(fw, fam)
	if len(v[KeyFP6]) == 0 {
		t.Fatalf("Expected FP-6 violation, got %v", v)
	}
	// FP-2 also fires: {A1} not among CE. Accumulation, not short-circuit.
	if len(v[KeyFP2]) == 0 {
		t.Errorf("Expected FP violations to accumulate, got %v", v)
	}
}

func TestFundamentalProperties_UnknownMemberName(t *testing.T) {
	fw, _ := gen.NoConflict(2)
	suite := NewSuite()

	fam := family(
		[]af.Extension{{"A1", "A2"}},
		[]af.Extension{{"A1", "A2"}},
		[]af.Extension{{"A7"}}, // not a member of the framework
		[]af.Extension{{"A1", "A2"}},
	)

	v := suite.FundamentalProperties(fw, fam)
	found := false
	for _, msg := range v[KeyFP6] {
		if strings.Contains(msg, "A7") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected FP-6 violation naming the unknown argument, got %v", v)
	}
}

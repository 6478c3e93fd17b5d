package model

import "testing"

func TestResults_Nested(t *testing.T) {
	results := &Results{Model: "m"}
	results.Add(Record{Class: "cycle", Size: 4, Check: CheckBase, Status: StatusPass})
	results.Add(Record{Class: "cycle", Size: 4, Check: CheckValidity, Status: StatusFail})
	results.Add(Record{Class: "cycle", Size: 8, Check: CheckBase, Status: StatusPass})
	results.Add(Record{Class: "no_conflict", Size: 4, Check: CheckBase, Status: StatusPass})

	nested := results.Nested()
	if len(nested) != 2 {
		t.Fatalf("Expected 2 classes, got %d", len(nested))
	}
	if len(nested["cycle"]) != 2 {
		t.Errorf("Expected 2 sizes for cycle, got %d", len(nested["cycle"]))
	}
	if nested["cycle"][4][CheckValidity].Status != StatusFail {
		t.Errorf("Unexpected record: %+v", nested["cycle"][4][CheckValidity])
	}
}

func TestResults_Failures(t *testing.T) {
	results := &Results{}
	results.Add(Record{Status: StatusPass})
	results.Add(Record{Status: StatusFail})
	results.Add(Record{Status: StatusAborted})
	results.Add(Record{Status: StatusFail})

	if got := results.Failures(); got != 2 {
		t.Errorf("Failures = %d, want 2", got)
	}
}

func TestAllChecks_Order(t *testing.T) {
	want := []string{
		CheckBase, CheckValidity, CheckIsomorphism,
		CheckFundamentalConsistency, CheckModularity, CheckDefenseDynamics,
	}
	if len(AllChecks) != len(want) {
		t.Fatalf("Expected %d checks, got %d", len(want), len(AllChecks))
	}
	for i, c := range want {
		if AllChecks[i] != c {
			t.Errorf("AllChecks[%d] = %s, want %s", i, AllChecks[i], c)
		}
	}
}

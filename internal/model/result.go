package model

// Status is the outcome of one check on one (class, size) pair.
type Status string

const (
	StatusPass          Status = "PASS"
	StatusFail          Status = "FAIL"
	StatusTimeout       Status = "Request Timeout"
	StatusError         Status = "Error"
	StatusAborted       Status = "Aborted"
	StatusNotApplicable Status = "Not Applicable"
)

// Check names the harness states in execution order.
const (
	CheckBase                   = "base"
	CheckValidity               = "validity"
	CheckIsomorphism            = "isomorphism"
	CheckFundamentalConsistency = "fundamental_consistency"
	CheckModularity             = "modularity"
	CheckDefenseDynamics        = "defense_dynamics"
)

// AllChecks lists the checks in the order the harness runs them.
var AllChecks = []string{
	CheckBase,
	CheckValidity,
	CheckIsomorphism,
	CheckFundamentalConsistency,
	CheckModularity,
	CheckDefenseDynamics,
}

// Record is one check outcome for one generated framework.
type Record struct {
	Class      string              `json:"class"`                // Framework class key (e.g., "cycle")
	Size       int                 `json:"size"`                 // Argument count
	Check      string              `json:"check"`                // One of AllChecks
	Status     Status              `json:"status"`               //
	Computed   string              `json:"computed,omitempty"`   // Oracle's extension family, rendered
	Expected   string              `json:"expected,omitempty"`   // Comparator's family (validity only)
	Violations map[string][]string `json:"violations,omitempty"` // Violation key to messages
	Info       string              `json:"info,omitempty"`       // Defense triple, error detail, or abort reason
}

// Results accumulates records across a whole run, preserving order.
type Results struct {
	Model   string   `json:"model"`
	Records []Record `json:"records"`
}

// Add appends a record.
func (r *Results) Add(rec Record) {
	r.Records = append(r.Records, rec)
}

// Nested regroups records as class -> size -> check for reporting.
func (r *Results) Nested() map[string]map[int]map[string]Record {
	out := make(map[string]map[int]map[string]Record)
	for _, rec := range r.Records {
		byClass, ok := out[rec.Class]
		if !ok {
			byClass = make(map[int]map[string]Record)
			out[rec.Class] = byClass
		}
		bySize, ok := byClass[rec.Size]
		if !ok {
			bySize = make(map[string]Record)
			byClass[rec.Size] = bySize
		}
		bySize[rec.Check] = rec
	}
	return out
}

// Failures counts records whose status is FAIL.
func (r *Results) Failures() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Status == StatusFail {
			n++
		}
	}
	return n
}

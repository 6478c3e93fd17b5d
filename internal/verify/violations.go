// Package verify decides pass/fail for claimed extension families: schema
// validity, the six fundamental properties, exact-equality validity against
// the ground-truth comparator, and the four metamorphic relations.
package verify

import (
	"sort"
	"strings"
)

// Check identifiers used as violation keys.
const (
	KeySchemaError            = "SCHEMA-ERROR"
	KeySchemaVerificationFail = "SCHEMA-VERIFICATION-FAILED"
	KeyFP1                    = "FP-1"
	KeyFP2                    = "FP-2"
	KeyFP3                    = "FP-3"
	KeyFP4                    = "FP-4"
	KeyFP5                    = "FP-5"
	KeyFP6                    = "FP-6"
	KeyMRIso                  = "MR-ISO"
	KeyMRFC                   = "MR-FC"
	KeyMRMod                  = "MR-MOD"
	KeyMRDD1                  = "MR-DD.1"
	KeyMRDD2                  = "MR-DD.2"
	KeyMRDD3                  = "MR-DD.3"
)

// Violations maps a check identifier to the ordered diagnostic messages it
// produced. An empty map means the check passed.
type Violations map[string][]string

// Add appends a diagnostic message under the given check identifier.
func (v Violations) Add(key, msg string) {
	v[key] = append(v[key], msg)
}

// OK reports whether no violations were recorded.
func (v Violations) OK() bool {
	return len(v) == 0
}

// Merge folds other's messages into v, preserving per-key message order.
func (v Violations) Merge(other Violations) {
	for key, msgs := range other {
		v[key] = append(v[key], msgs...)
	}
}

// String renders the violations deterministically, keys sorted.
func (v Violations) String() string {
	if len(v) == 0 {
		return ""
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		for _, msg := range v[k] {
			parts = append(parts, "["+k+"] "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

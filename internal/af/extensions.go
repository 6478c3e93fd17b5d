package af

import (
	"fmt"
	"sort"
	"strings"
)

// Semantics identifies one of the four extension semantics the harness
// evaluates.
type Semantics string

const (
	Grounded  Semantics = "GE"
	Complete  Semantics = "CE"
	Preferred Semantics = "PE"
	Stable    Semantics = "SE"
)

// AllSemantics lists the four semantics in their canonical order.
var AllSemantics = []Semantics{Grounded, Complete, Preferred, Stable}

// Extension is one candidate jointly-acceptable position: a set of argument
// names. Order and duplicates carry no meaning; comparisons go through Key.
type Extension []string

// Key returns a canonical representation of the extension as a set, used for
// equality and deduplication.
func (e Extension) Key() string {
	sorted := e.Sorted()
	return strings.Join(sorted, "\x1f")
}

// Sorted returns a sorted, deduplicated copy of the extension's members.
func (e Extension) Sorted() Extension {
	seen := make(map[string]bool, len(e))
	out := make(Extension, 0, len(e))
	for _, name := range e {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Contains reports whether the extension includes the named argument.
func (e Extension) Contains(name string) bool {
	for _, member := range e {
		if member == name {
			return true
		}
	}
	return false
}

// ExtensionFamily maps each semantics to the extensions claimed for it. This
// is the unit exchanged between the oracle, the comparator, and the
// verification engine.
type ExtensionFamily map[Semantics][]Extension

// Render formats the whole family for records and diagnostics, tags in
// canonical order, extensions sorted.
func (f ExtensionFamily) Render() string {
	parts := make([]string, 0, len(AllSemantics))
	for _, tag := range AllSemantics {
		parts = append(parts, fmt.Sprintf("%s: %s", tag, RenderSets(f[tag])))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// SetOf collapses a list of extensions into a set keyed by canonical form.
func SetOf(exts []Extension) map[string]Extension {
	set := make(map[string]Extension, len(exts))
	for _, e := range exts {
		set[e.Key()] = e.Sorted()
	}
	return set
}

// RenderSets formats a family of extension sets for diagnostics, sorting
// members within each set and the sets themselves for determinism.
func RenderSets(exts []Extension) string {
	set := SetOf(exts)
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("[%s]", strings.Join(set[k], ", ")))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

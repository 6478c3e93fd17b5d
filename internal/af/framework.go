package af

import (
	"fmt"
	"strings"
)

// Attack is a directed defeat from one argument to another. Both endpoints
// are argument names belonging to the same framework.
type Attack struct {
	Attacker string `json:"attacker"`
	Target   string `json:"target"`
}

// Framework is an abstract argumentation framework: a named set of arguments
// and the attacks between them. Frameworks are built once and never mutated;
// transformations construct fresh frameworks instead.
type Framework struct {
	name      string
	arguments []string
	attacks   []Attack

	index       map[string]int
	attackersOf map[string][]string
	targetsOf   map[string][]string
}

// New constructs a framework and validates its structural invariants:
// argument names are unique and every attack endpoint is a member.
func New(name string, arguments []string, attacks []Attack) (*Framework, error) {
	fw := &Framework{
		name:        name,
		arguments:   append([]string(nil), arguments...),
		attacks:     append([]Attack(nil), attacks...),
		index:       make(map[string]int, len(arguments)),
		attackersOf: make(map[string][]string),
		targetsOf:   make(map[string][]string),
	}

	for i, arg := range fw.arguments {
		if arg == "" {
			return nil, fmt.Errorf("framework %q: empty argument name at position %d", name, i)
		}
		if _, dup := fw.index[arg]; dup {
			return nil, fmt.Errorf("framework %q: duplicate argument name %q", name, arg)
		}
		fw.index[arg] = i
	}

	for _, atk := range fw.attacks {
		if _, ok := fw.index[atk.Attacker]; !ok {
			return nil, fmt.Errorf("framework %q: attack references unknown attacker %q", name, atk.Attacker)
		}
		if _, ok := fw.index[atk.Target]; !ok {
			return nil, fmt.Errorf("framework %q: attack references unknown target %q", name, atk.Target)
		}
		fw.attackersOf[atk.Target] = append(fw.attackersOf[atk.Target], atk.Attacker)
		fw.targetsOf[atk.Attacker] = append(fw.targetsOf[atk.Attacker], atk.Target)
	}

	return fw, nil
}

// Name returns the framework's display name.
func (fw *Framework) Name() string {
	return fw.name
}

// Arguments returns the argument names in construction order.
func (fw *Framework) Arguments() []string {
	return append([]string(nil), fw.arguments...)
}

// Attacks returns the attack relation in construction order.
func (fw *Framework) Attacks() []Attack {
	return append([]Attack(nil), fw.attacks...)
}

// Len returns the number of arguments.
func (fw *Framework) Len() int {
	return len(fw.arguments)
}

// Contains reports whether the named argument is a member.
func (fw *Framework) Contains(name string) bool {
	_, ok := fw.index[name]
	return ok
}

// AttackersOf returns the names of arguments that attack the given argument.
func (fw *Framework) AttackersOf(name string) []string {
	return append([]string(nil), fw.attackersOf[name]...)
}

// TargetsOf returns the names of arguments attacked by the given argument.
func (fw *Framework) TargetsOf(name string) []string {
	return append([]string(nil), fw.targetsOf[name]...)
}

// Describe renders the framework as the tuple form sent to the oracle:
// ([A1, A2, A3], [(A1, A2), (A2, A3)]). The rendering is deterministic,
// following construction order.
func (fw *Framework) Describe() string {
	var b strings.Builder
	b.WriteString("([")
	for i, arg := range fw.arguments {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg)
	}
	b.WriteString("], [")
	for i, atk := range fw.attacks {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "(%s, %s)", atk.Attacker, atk.Target)
	}
	b.WriteString("])")
	return b.String()
}

// Package semantics computes exact grounded, complete, preferred, and stable
// extensions for small argumentation frameworks. It serves as the
// gold-standard comparator for the validity check: pure, deterministic, and
// bounded to frameworks small enough for subset enumeration.
package semantics

import (
	"fmt"
	"math/bits"

	"github.com/ltrinh/afmorph/internal/af"
)

// maxArguments bounds subset enumeration; the harness's generated frameworks
// stay far below this.
const maxArguments = 24

// Solver computes extensions over a bitmask encoding of a framework.
type Solver struct{}

// NewSolver creates a new solver.
func NewSolver() *Solver {
	return &Solver{}
}

// encoded is a framework lowered to bitmasks: bit i stands for argument i in
// construction order.
type encoded struct {
	names       []string
	attackersOf []uint64 // attackersOf[i]: arguments attacking i
	targetsOf   []uint64 // targetsOf[i]: arguments attacked by i
}

func encode(fw *af.Framework) (*encoded, error) {
	names := fw.Arguments()
	if len(names) > maxArguments {
		return nil, fmt.Errorf("framework %q has %d arguments, exceeding the exact-enumeration limit of %d",
			fw.Name(), len(names), maxArguments)
	}

	idx := make(map[string]int, len(names))
	for i, name := range names {
		idx[name] = i
	}

	enc := &encoded{
		names:       names,
		attackersOf: make([]uint64, len(names)),
		targetsOf:   make([]uint64, len(names)),
	}
	for _, atk := range fw.Attacks() {
		a, t := idx[atk.Attacker], idx[atk.Target]
		enc.attackersOf[t] |= 1 << uint(a)
		enc.targetsOf[a] |= 1 << uint(t)
	}
	return enc, nil
}

// attacked returns the set of arguments attacked by any member of s.
func (e *encoded) attacked(s uint64) uint64 {
	var out uint64
	for rest := s; rest != 0; {
		i := bits.TrailingZeros64(rest)
		rest &= rest - 1
		out |= e.targetsOf[i]
	}
	return out
}

// conflictFree reports whether no member of s attacks another member.
func (e *encoded) conflictFree(s uint64) bool {
	return e.attacked(s)&s == 0
}

// defended returns the characteristic function F(s): every argument whose
// attackers are all counter-attacked by s.
func (e *encoded) defended(s uint64) uint64 {
	counter := e.attacked(s)
	var out uint64
	for i := range e.names {
		if e.attackersOf[i]&^counter == 0 {
			out |= 1 << uint(i)
		}
	}
	return out
}

func (e *encoded) toExtension(s uint64) af.Extension {
	out := make(af.Extension, 0, bits.OnesCount64(s))
	for i, name := range e.names {
		if s&(1<<uint(i)) != 0 {
			out = append(out, name)
		}
	}
	return out
}

// IsConflictFree reports whether the named members form a conflict-free set
// in fw. An unresolvable member name is an error.
func (s *Solver) IsConflictFree(fw *af.Framework, members []string) (bool, error) {
	for _, name := range members {
		if !fw.Contains(name) {
			return false, fmt.Errorf("argument %q not found in framework %q", name, fw.Name())
		}
	}
	for _, name := range members {
		for _, target := range fw.TargetsOf(name) {
			for _, other := range members {
				if other == target {
					return false, nil
				}
			}
		}
	}
	return true, nil
}

// Grounded returns the unique grounded extension: the least fixed point of
// the characteristic function starting from the empty set.
func (s *Solver) Grounded(fw *af.Framework) (af.Extension, error) {
	enc, err := encode(fw)
	if err != nil {
		return nil, err
	}
	var cur uint64
	for {
		next := enc.defended(cur)
		if next == cur {
			return enc.toExtension(cur), nil
		}
		cur = next
	}
}

// Complete returns all complete extensions: conflict-free fixed points of the
// characteristic function.
func (s *Solver) Complete(fw *af.Framework) ([]af.Extension, error) {
	enc, err := encode(fw)
	if err != nil {
		return nil, err
	}
	masks := completeMasks(enc)
	out := make([]af.Extension, 0, len(masks))
	for _, m := range masks {
		out = append(out, enc.toExtension(m))
	}
	return out, nil
}

// Preferred returns the subset-maximal complete extensions.
func (s *Solver) Preferred(fw *af.Framework) ([]af.Extension, error) {
	enc, err := encode(fw)
	if err != nil {
		return nil, err
	}
	complete := completeMasks(enc)
	var out []af.Extension
	for _, m := range complete {
		maximal := true
		for _, other := range complete {
			if other != m && m&other == m {
				maximal = false
				break
			}
		}
		if maximal {
			out = append(out, enc.toExtension(m))
		}
	}
	return out, nil
}

// Stable returns all stable extensions: conflict-free sets attacking every
// argument outside themselves. There may be none.
func (s *Solver) Stable(fw *af.Framework) ([]af.Extension, error) {
	enc, err := encode(fw)
	if err != nil {
		return nil, err
	}
	all := uint64(1)<<uint(len(enc.names)) - 1
	var out []af.Extension
	for m := uint64(0); ; m++ {
		if enc.conflictFree(m) && enc.attacked(m) == all&^m {
			out = append(out, enc.toExtension(m))
		}
		if m == all {
			break
		}
	}
	return out, nil
}

// Family computes all four extension families for fw.
func (s *Solver) Family(fw *af.Framework) (af.ExtensionFamily, error) {
	ge, err := s.Grounded(fw)
	if err != nil {
		return nil, err
	}
	ce, err := s.Complete(fw)
	if err != nil {
		return nil, err
	}
	pe, err := s.Preferred(fw)
	if err != nil {
		return nil, err
	}
	se, err := s.Stable(fw)
	if err != nil {
		return nil, err
	}
	return af.ExtensionFamily{
		af.Grounded:  {ge},
		af.Complete:  ce,
		af.Preferred: pe,
		af.Stable:    se,
	}, nil
}

func completeMasks(enc *encoded) []uint64 {
	all := uint64(1)<<uint(len(enc.names)) - 1
	var out []uint64
	for m := uint64(0); ; m++ {
		if enc.conflictFree(m) && enc.defended(m) == m {
			out = append(out, m)
		}
		if m == all {
			break
		}
	}
	return out
}

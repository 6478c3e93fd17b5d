// Package gen builds the canonical base-case argumentation frameworks the
// harness feeds to the oracle. Each class exercises a distinct semantic
// behavior: conflict-freeness, attack-chain parity, odd vs even cycles,
// fan-in, fan-out, and independent components.
package gen

import (
	"fmt"

	"github.com/ltrinh/afmorph/internal/af"
)

// NoConflict returns n arguments with no attacks.
func NoConflict(n int) (*af.Framework, error) {
	if n <= 0 {
		return nil, fmt.Errorf("no-conflict: number of arguments must be positive, got %d", n)
	}
	return af.New(fmt.Sprintf("No-Conflict (n=%d)", n), numbered("A", n), nil)
}

// LinearAttackChain returns A1..An where each Ai attacks A(i+1).
func LinearAttackChain(n int) (*af.Framework, error) {
	if n < 2 {
		return nil, fmt.Errorf("linear attack chain requires at least 2 arguments, got %d", n)
	}
	args := numbered("A", n)
	attacks := make([]af.Attack, 0, n-1)
	for i := 0; i < n-1; i++ {
		attacks = append(attacks, af.Attack{Attacker: args[i], Target: args[i+1]})
	}
	return af.New(fmt.Sprintf("Linear-Attack-Chain (n=%d)", n), args, attacks)
}

// Cycle returns A1..An where each Ai attacks its successor, wrapping around.
func Cycle(n int) (*af.Framework, error) {
	if n < 2 {
		return nil, fmt.Errorf("cycle requires at least 2 arguments, got %d", n)
	}
	args := numbered("A", n)
	attacks := make([]af.Attack, 0, n)
	for i := 0; i < n; i++ {
		attacks = append(attacks, af.Attack{Attacker: args[i], Target: args[(i+1)%n]})
	}
	return af.New(fmt.Sprintf("Cycle (n=%d)", n), args, attacks)
}

// SingleTargetMultipleAttackers returns one target T attacked directly by
// n-1 attackers A1..A(n-1), with no other edges.
func SingleTargetMultipleAttackers(n int) (*af.Framework, error) {
	if n < 2 {
		return nil, fmt.Errorf("single-target-multiple-attackers requires at least 1 attacker (n>=2), got %d", n)
	}
	attackers := numbered("A", n-1)
	args := append([]string{"T"}, attackers...)
	attacks := make([]af.Attack, 0, n-1)
	for _, a := range attackers {
		attacks = append(attacks, af.Attack{Attacker: a, Target: "T"})
	}
	return af.New(fmt.Sprintf("Single-Target-Multiple-Attackers (n=%d)", n), args, attacks)
}

// SingleAttackMultipleDefenders returns target T attacked by Att, with n-2
// defenders D1..D(n-2) each attacking Att.
func SingleAttackMultipleDefenders(n int) (*af.Framework, error) {
	if n < 3 {
		return nil, fmt.Errorf("single-attack-multiple-defenders requires at least 1 defender (n>=3), got %d", n)
	}
	defenders := numbered("D", n-2)
	args := append([]string{"T", "Att"}, defenders...)
	attacks := []af.Attack{{Attacker: "Att", Target: "T"}}
	for _, d := range defenders {
		attacks = append(attacks, af.Attack{Attacker: d, Target: "Att"})
	}
	return af.New(fmt.Sprintf("Single-Attack-Multiple-Defenders (n=%d)", n), args, attacks)
}

// DisconnectedSymmetricPairs returns n/2 disjoint pairs (Ai, Bi) with mutual
// attacks inside each pair and no cross-pair edges. n must be even.
func DisconnectedSymmetricPairs(n int) (*af.Framework, error) {
	if n < 2 || n%2 != 0 {
		return nil, fmt.Errorf("disconnected-symmetric-pairs requires an even number of arguments >= 2, got %d", n)
	}
	args := make([]string, 0, n)
	attacks := make([]af.Attack, 0, n)
	for i := 1; i <= n/2; i++ {
		a := fmt.Sprintf("A%d", i)
		b := fmt.Sprintf("B%d", i)
		args = append(args, a, b)
		attacks = append(attacks,
			af.Attack{Attacker: a, Target: b},
			af.Attack{Attacker: b, Target: a},
		)
	}
	return af.New(fmt.Sprintf("Disconnected-Symmetric-Pairs (n=%d)", n), args, attacks)
}

// Entry pairs a class name with its generator for orchestrated runs.
type Entry struct {
	Name  string
	Build func(n int) (*af.Framework, error)
}

// Catalog returns the generator classes in their canonical run order, keyed
// by the class names used in result records.
func Catalog() []Entry {
	return []Entry{
		{Name: "no_conflict", Build: NoConflict},
		{Name: "linear_attack_chain", Build: LinearAttackChain},
		{Name: "cycle", Build: Cycle},
		{Name: "single_target_multiple_attackers", Build: SingleTargetMultipleAttackers},
		{Name: "single_attack_multiple_defenders", Build: SingleAttackMultipleDefenders},
		{Name: "symmetric_disconnected", Build: DisconnectedSymmetricPairs},
	}
}

func numbered(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return names
}

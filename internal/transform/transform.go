// Package transform applies the structure-preserving and structure-extending
// edits whose effects on extension families are checked by the metamorphic
// relations. Every transformation returns a fresh framework together with the
// metadata the matching relation needs at verification time.
package transform

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ltrinh/afmorph/internal/af"
)

// Renaming maps an original argument name to its transformed counterpart.
type Renaming func(string) string

// DefaultRenaming prefixes each name, which is injective for any input set.
func DefaultRenaming(name string) string {
	return "X_" + name
}

// Isomorphism bijectively renames every argument, preserving the attack
// structure exactly. A nil rename uses DefaultRenaming. The renaming function
// is returned so the verifier can map original extensions forward.
func Isomorphism(fw *af.Framework, rename Renaming) (*af.Framework, Renaming, error) {
	if rename == nil {
		rename = DefaultRenaming
	}

	args := fw.Arguments()
	renamed := make([]string, len(args))
	for i, arg := range args {
		renamed[i] = rename(arg)
	}

	attacks := fw.Attacks()
	renamedAttacks := make([]af.Attack, len(attacks))
	for i, atk := range attacks {
		renamedAttacks[i] = af.Attack{Attacker: rename(atk.Attacker), Target: rename(atk.Target)}
	}

	// af.New rejects duplicate names, which catches non-injective renamings.
	out, err := af.New("isomorphic_"+fw.Name(), renamed, renamedAttacks)
	if err != nil {
		return nil, nil, fmt.Errorf("isomorphism: %w", err)
	}
	return out, rename, nil
}

// FundamentalConsistency adds one fresh argument that attacks only itself and
// is otherwise isolated. Returns the new framework and the added name.
func FundamentalConsistency(fw *af.Framework) (*af.Framework, string, error) {
	sa := freshName(fw, "SA")
	args := append(fw.Arguments(), sa)
	attacks := append(fw.Attacks(), af.Attack{Attacker: sa, Target: sa})

	out, err := af.New("fundamental_consistency_"+fw.Name(), args, attacks)
	if err != nil {
		return nil, "", fmt.Errorf("fundamental consistency: %w", err)
	}
	return out, sa, nil
}

// Modularity adds one fresh, fully isolated argument with no attack edges.
// Returns the new framework and the added name.
func Modularity(fw *af.Framework) (*af.Framework, string, error) {
	u := freshName(fw, "U")
	args := append(fw.Arguments(), u)

	out, err := af.New("modularity_"+fw.Name(), args, fw.Attacks())
	if err != nil {
		return nil, "", fmt.Errorf("modularity: %w", err)
	}
	return out, u, nil
}

// DefenseTriple records the edge selected by DefenseDynamics and the defender
// added for it.
type DefenseTriple struct {
	Defender string
	Attacker string
	Target   string
}

// DefenseDynamics picks one existing attack edge uniformly at random and adds
// a fresh defender that attacks the chosen attacker only. A nil rng falls
// back to a time-seeded source; tests inject a seeded one to fix the edge.
func DefenseDynamics(fw *af.Framework, rng *rand.Rand) (*af.Framework, DefenseTriple, error) {
	attacks := fw.Attacks()
	if len(attacks) == 0 {
		return nil, DefenseTriple{}, fmt.Errorf("defense dynamics: framework %q has no attacks", fw.Name())
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	chosen := attacks[rng.Intn(len(attacks))]

	defender := freshName(fw, "M_Defender")
	args := append(fw.Arguments(), defender)
	newAttacks := append(attacks, af.Attack{Attacker: defender, Target: chosen.Attacker})

	out, err := af.New("defense_dynamics_"+fw.Name(), args, newAttacks)
	if err != nil {
		return nil, DefenseTriple{}, fmt.Errorf("defense dynamics: %w", err)
	}
	return out, DefenseTriple{Defender: defender, Attacker: chosen.Attacker, Target: chosen.Target}, nil
}

// freshName returns base if unused, otherwise base_1, base_2, ... until no
// collision remains.
func freshName(fw *af.Framework, base string) string {
	name := base
	for counter := 1; fw.Contains(name); counter++ {
		name = fmt.Sprintf("%s_%d", base, counter)
	}
	return name
}

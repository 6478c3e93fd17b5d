package harness

import (
	"context"

	"github.com/ltrinh/afmorph/internal/af"
	"github.com/ltrinh/afmorph/internal/semantics"
)

// ExactOracle answers with the comparator's own extension families. Running
// the harness against it must produce an all-PASS report; anything else
// points at a defect in the harness rather than the oracle.
type ExactOracle struct {
	solver *semantics.Solver
}

// NewExactOracle creates the self-check oracle.
func NewExactOracle() *ExactOracle {
	return &ExactOracle{solver: semantics.NewSolver()}
}

// Model returns the identifier reported in results.
func (o *ExactOracle) Model() string {
	return "exact"
}

// Extensions computes the ground-truth extension family for fw.
func (o *ExactOracle) Extensions(ctx context.Context, fw *af.Framework) (af.ExtensionFamily, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return o.solver.Family(fw)
}

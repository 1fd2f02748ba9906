//go:build lpsolve

package solve

import (
	"fmt"
	"math"

	"github.com/draffensperger/golp"

	"permutation_lp/src/lp"
)

// lpsolveInf is the magnitude lp_solve treats as infinite.
const lpsolveInf = 1e30

func init() {
	Register("lpsolve", func() Backend { return new(LPSolve) })
}

// LPSolve solves descriptions with lp_solve 5.5. Building it requires the lpsolve
// build tag and liblpsolve55.
type LPSolve struct{}

func (*LPSolve) Name() string {
	return "lpsolve"
}

func clampInf(v float64) float64 {
	return math.Max(-lpsolveInf, math.Min(lpsolveInf, v))
}

func (*LPSolve) Minimize(desc *lp.Description) (*lp.Solution, error) {
	n := desc.NumVariables()
	model := golp.NewLP(0, n)
	model.SetVerboseLevel(golp.NEUTRAL)
	model.SetObjFn(desc.Costs)

	for j, b := range desc.Bounds {
		model.SetBounds(j, clampInf(b.Low), clampInf(b.High))
	}
	for i, row := range desc.IneqMatrix {
		if err := model.AddConstraint(row, golp.LE, desc.IneqRHS[i]); err != nil {
			return nil, err
		}
	}
	for i, row := range desc.EqMatrix {
		if err := model.AddConstraint(row, golp.EQ, desc.EqRHS[i]); err != nil {
			return nil, err
		}
	}

	switch status := model.Solve(); status {
	case golp.OPTIMAL:
		return lp.NewOptimal(model.Objective(), model.Variables(), "optimal solution found"), nil
	case golp.INFEASIBLE:
		return lp.NewFailed(lp.Infeasible, "problem is infeasible"), nil
	case golp.UNBOUNDED:
		return lp.NewFailed(lp.Unbounded, "problem is unbounded"), nil
	default:
		return nil, fmt.Errorf("status: %v", status)
	}
}

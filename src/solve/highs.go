//go:build highs

package solve

import (
	"fmt"
	"math"
	"slices"

	"github.com/lanl/highs"

	"permutation_lp/src/lp"
)

func init() {
	Register("highs", func() Backend { return new(HiGHS) })
}

// HiGHS solves descriptions with the HiGHS library. Building it requires the
// highs build tag and libhighs.
type HiGHS struct{}

func (*HiGHS) Name() string {
	return "highs"
}

func defModel(desc *lp.Description) *highs.Model {
	n := desc.NumVariables()
	model := new(highs.Model)

	model.ColCosts = slices.Clone(desc.Costs)
	model.ColLower = make([]float64, n)
	model.ColUpper = make([]float64, n)
	for j, b := range desc.Bounds {
		model.ColLower[j] = b.Low
		model.ColUpper[j] = b.High
	}

	for i, row := range desc.IneqMatrix {
		model.AddDenseRow(math.Inf(-1), row, desc.IneqRHS[i])
	}
	for i, row := range desc.EqMatrix {
		model.AddDenseRow(desc.EqRHS[i], row, desc.EqRHS[i])
	}
	return model
}

// isFeasible re-solves the model with a zero objective, which separates the
// infeasible case from the unbounded one.
func isFeasible(model *highs.Model) (bool, error) {
	probe := *model
	probe.ColCosts = make([]float64, len(model.ColCosts))
	solution, err := probe.Solve()
	if err != nil {
		return false, err
	}
	return solution.Status == highs.Optimal, nil
}

func (*HiGHS) Minimize(desc *lp.Description) (*lp.Solution, error) {
	model := defModel(desc)
	solution, err := model.Solve()
	if err != nil {
		return nil, err
	}

	switch solution.Status {
	case highs.Optimal:
		x := slices.Clone(solution.ColumnPrimal[:desc.NumVariables()])
		return lp.NewOptimal(solution.Objective, x, solution.Status.String()), nil
	case highs.Infeasible:
		return lp.NewFailed(lp.Infeasible, solution.Status.String()), nil
	case highs.Unbounded:
		return lp.NewFailed(lp.Unbounded, solution.Status.String()), nil
	case highs.UnboundedOrInfeasible:
		feasible, err := isFeasible(model)
		if err != nil {
			return nil, err
		}
		if feasible {
			return lp.NewFailed(lp.Unbounded, solution.Status.String()), nil
		}
		return lp.NewFailed(lp.Infeasible, solution.Status.String()), nil
	}
	return nil, fmt.Errorf("status: %v", solution.Status.String())
}

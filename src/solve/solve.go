package solve

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"

	"permutation_lp/src/lp"
)

// Backend minimizes Costs·x subject to the constraints and bounds of a description.
// Minimize returns a solution for every terminal state it can classify and an error
// only for numerical failures.
type Backend interface {
	Name() string
	Minimize(desc *lp.Description) (*lp.Solution, error)
}

var backends = map[string]func() Backend{}

func Register(name string, factory func() Backend) {
	backends[name] = factory
}

func New(name string) (Backend, error) {
	factory, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (available: %v)", name, Names())
	}
	return factory(), nil
}

func Names() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DefaultName prefers HiGHS when it is compiled in.
func DefaultName() string {
	if _, ok := backends["highs"]; ok {
		return "highs"
	}
	return "simplex"
}

func inconsistentBound(desc *lp.Description) (int, bool) {
	for j, b := range desc.Bounds {
		if b.Low > b.High {
			return j, true
		}
	}
	return 0, false
}

// Solve validates desc and runs the backend on it. Numerical failures of the backend,
// including panics, are reported as a solution with status error.
func Solve(desc *lp.Description, backend Backend) (sol *lp.Solution, err error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if j, ok := inconsistentBound(desc); ok {
		return lp.NewFailed(lp.Infeasible, fmt.Sprintf("lower bound of %s exceeds its upper bound", desc.VariableName(j))), nil
	}

	defer func() {
		if r := recover(); r != nil {
			sol, err = lp.NewFailed(lp.Error, fmt.Sprintf("%s: %v", backend.Name(), r)), nil
		}
	}()

	sol, err = backend.Minimize(desc)
	if err != nil {
		return lp.NewFailed(lp.Error, fmt.Sprintf("%s: %v", backend.Name(), err)), nil
	}
	if sol.Status != lp.Optimal {
		sol.ObjectiveValue, sol.VariableValues = nil, nil
		return sol, nil
	}
	if len(sol.VariableValues) != desc.NumVariables() {
		return lp.NewFailed(lp.Error, fmt.Sprintf("%s returned %d values for %d variables",
			backend.Name(), len(sol.VariableValues), desc.NumVariables())), nil
	}
	obj := floats.Dot(desc.Costs, sol.VariableValues)
	sol.ObjectiveValue = &obj
	return sol, nil
}

package lp

import (
	"math"
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateRows(name string, rows [][]float64, rhs []float64, numVars int) error {
	if len(rows) != len(rhs) {
		return Malformedf("%s has %d rows but its right-hand side has %d entries", name, len(rows), len(rhs))
	}
	for i, row := range rows {
		if len(row) != numVars {
			return Malformedf("%s row %d has %d entries, expected %d", name, i, len(row), numVars)
		}
		for j, a := range row {
			if !finite(a) {
				return Malformedf("%s[%d][%d] is not finite", name, i, j)
			}
		}
		if !finite(rhs[i]) {
			return Malformedf("right-hand side %d of %s is not finite", i, name)
		}
	}
	return nil
}

// Validate checks the structural invariants of the description: matrix widths and
// vector lengths agree with the number of variables.
func (d *Description) Validate() error {
	n := d.NumVariables()
	if n == 0 {
		return Malformedf("LP description declares no variables")
	}
	for j, c := range d.Costs {
		if !finite(c) {
			return Malformedf("objective coefficient %d is not finite", j)
		}
	}
	if err := validateRows("A_ub", d.IneqMatrix, d.IneqRHS, n); err != nil {
		return err
	}
	if err := validateRows("A_eq", d.EqMatrix, d.EqRHS, n); err != nil {
		return err
	}
	if len(d.Bounds) != n {
		return Malformedf("LP description has %d bounds for %d variables", len(d.Bounds), n)
	}
	for j, b := range d.Bounds {
		if math.IsNaN(b.Low) || math.IsNaN(b.High) || math.IsInf(b.Low, 1) || math.IsInf(b.High, -1) {
			return Malformedf("bound %d is not a valid range", j)
		}
	}
	if d.VariableNames != nil && len(d.VariableNames) != n {
		return Malformedf("LP description has %d variable names for %d variables", len(d.VariableNames), n)
	}
	return nil
}

func (sol *Solution) Validate() error {
	if !sol.Status.Valid() {
		return Malformedf("unknown solution status %q", sol.Status)
	}
	if sol.Status == Optimal {
		if sol.ObjectiveValue == nil || sol.VariableValues == nil {
			return Malformedf("optimal solution must carry objective_value and variable_values")
		}
		return nil
	}
	if sol.ObjectiveValue != nil || sol.VariableValues != nil {
		return Malformedf("%s solution must not carry objective_value or variable_values", sol.Status)
	}
	return nil
}

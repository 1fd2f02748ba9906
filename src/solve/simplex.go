package solve

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	convexlp "gonum.org/v1/gonum/optimize/convex/lp"

	"permutation_lp/src/lp"
)

const eps = 1e-9

func init() {
	Register("simplex", func() Backend { return new(Simplex) })
}

// Simplex solves descriptions with gonum's dense simplex implementation after
// rewriting them in standard form: minimize c·z subject to A·z = b, z >= 0.
type Simplex struct {
	// Tol is passed to lp.Simplex; zero selects gonum's default.
	Tol float64
}

func (*Simplex) Name() string {
	return "simplex"
}

// stdColumn is a non-negative standard-form column. Structural columns contribute
// sign·z to variable orig; slack columns have orig == -1.
type stdColumn struct {
	orig int
	sign float64
}

type standardForm struct {
	cols     []stdColumn
	offset   []float64
	costs    []float64
	rows     [][]float64
	rhs      []float64
	equality []bool
	constant float64
}

func (sf *standardForm) addColumn(orig int, sign, cost float64) int {
	sf.cols = append(sf.cols, stdColumn{orig: orig, sign: sign})
	sf.costs = append(sf.costs, cost)
	for i := range sf.rows {
		sf.rows[i] = append(sf.rows[i], 0)
	}
	return len(sf.cols) - 1
}

func (sf *standardForm) addRow(rhs float64, equality bool) int {
	sf.rows = append(sf.rows, make([]float64, len(sf.cols)))
	sf.rhs = append(sf.rhs, rhs)
	sf.equality = append(sf.equality, equality)
	return len(sf.rows) - 1
}

// addLinearRow appends a·x (+ slack when withSlack) = rhs expressed over the columns.
func (sf *standardForm) addLinearRow(a []float64, rhs float64, withSlack bool) {
	for j, v := range a {
		rhs -= v * sf.offset[j]
	}
	i := sf.addRow(rhs, !withSlack)
	for k, col := range sf.cols {
		if col.orig >= 0 {
			sf.rows[i][k] = a[col.orig] * col.sign
		}
	}
	if withSlack {
		k := sf.addColumn(-1, 0, 0)
		sf.rows[i][k] = 1
	}
}

func toStandardForm(desc *lp.Description) *standardForm {
	n := desc.NumVariables()
	sf := &standardForm{offset: make([]float64, n)}

	type upper struct {
		col   int
		limit float64
	}
	uppers := make([]upper, 0)

	for j, b := range desc.Bounds {
		lowFinite, highFinite := !math.IsInf(b.Low, -1), !math.IsInf(b.High, 1)
		switch {
		case lowFinite:
			sf.offset[j] = b.Low
			k := sf.addColumn(j, 1, desc.Costs[j])
			if highFinite {
				uppers = append(uppers, upper{col: k, limit: b.High - b.Low})
			}
		case highFinite:
			sf.offset[j] = b.High
			sf.addColumn(j, -1, -desc.Costs[j])
		default:
			sf.addColumn(j, 1, desc.Costs[j])
			sf.addColumn(j, -1, -desc.Costs[j])
		}
		sf.constant += desc.Costs[j] * sf.offset[j]
	}

	for i, row := range desc.IneqMatrix {
		sf.addLinearRow(row, desc.IneqRHS[i], true)
	}
	for i, row := range desc.EqMatrix {
		sf.addLinearRow(row, desc.EqRHS[i], false)
	}
	for _, u := range uppers {
		i := sf.addRow(u.limit, false)
		sf.rows[i][u.col] = 1
		k := sf.addColumn(-1, 0, 0)
		sf.rows[i][k] = 1
	}
	return sf
}

var errStdInfeasible = errors.New("equality constraints are inconsistent")

// dropDependentRows removes equality rows that are linear combinations of the
// equality rows kept before them, so that A has full row rank. A dependent row
// whose right-hand side disagrees makes the problem infeasible. Rows with a slack
// column are independent of everything else and are always kept.
func (sf *standardForm) dropDependentRows() error {
	type pivotRow struct {
		coef []float64
		col  int
	}
	var basis []pivotRow

	rows, rhs, equality := sf.rows[:0:0], sf.rhs[:0:0], sf.equality[:0:0]
	for i, row := range sf.rows {
		if sf.equality[i] {
			// v holds the row followed by its right-hand side.
			v := append(append(make([]float64, 0, len(row)+1), row...), sf.rhs[i])
			tol := eps * math.Max(1, floats.Norm(v, math.Inf(1)))
			for _, p := range basis {
				if f := v[p.col]; f != 0 {
					floats.AddScaled(v, -f/p.coef[p.col], p.coef)
				}
			}

			col, largest := -1, tol
			for k, a := range v[:len(row)] {
				if math.Abs(a) > largest {
					col, largest = k, math.Abs(a)
				}
			}
			if col < 0 {
				if math.Abs(v[len(row)]) > tol {
					return errStdInfeasible
				}
				continue
			}
			basis = append(basis, pivotRow{coef: v, col: col})
		}
		rows = append(rows, row)
		rhs = append(rhs, sf.rhs[i])
		equality = append(equality, sf.equality[i])
	}
	sf.rows, sf.rhs, sf.equality = rows, rhs, equality
	return nil
}

// reduce drops the columns that appear in no row, which lp.Simplex rejects, and
// returns the indices of the kept columns. A dropped column with a negative cost
// makes the problem unbounded as soon as the kept rows are feasible.
func (sf *standardForm) reduce() (kept []int, unbounded bool) {
	kept = make([]int, 0, len(sf.cols))
	for k := range sf.cols {
		zero := true
		for _, row := range sf.rows {
			if row[k] != 0 {
				zero = false
				break
			}
		}
		switch {
		case !zero:
			kept = append(kept, k)
		case sf.costs[k] < 0:
			unbounded = true
		}
	}
	return kept, unbounded
}

func (sf *standardForm) restore(n int, kept []int, z []float64) []float64 {
	x := make([]float64, n)
	copy(x, sf.offset)
	for i, k := range kept {
		if col := sf.cols[k]; col.orig >= 0 {
			x[col.orig] += col.sign * z[i]
		}
	}
	return x
}

func (s *Simplex) Minimize(desc *lp.Description) (*lp.Solution, error) {
	n := desc.NumVariables()
	sf := toStandardForm(desc)

	if err := sf.dropDependentRows(); err != nil {
		return lp.NewFailed(lp.Infeasible, err.Error()), nil
	}
	kept, unbounded := sf.reduce()

	// Every remaining row has a non-zero entry, so without columns there are no rows.
	if len(kept) == 0 {
		if unbounded {
			return lp.NewFailed(lp.Unbounded, "an unconstrained variable decreases the objective"), nil
		}
		return lp.NewOptimal(sf.constant, sf.restore(n, nil, nil), "all variables at their bounds"), nil
	}

	m := len(sf.rows)
	if m > len(kept) {
		return nil, fmt.Errorf("%d constraint rows exceed %d columns", m, len(kept))
	}

	// With an unbounded direction left only feasibility matters, so the costs stay zero.
	c := make([]float64, len(kept))
	A := mat.NewDense(m, len(kept), nil)
	for col, k := range kept {
		if !unbounded {
			c[col] = sf.costs[k]
		}
		for i, row := range sf.rows {
			A.Set(i, col, row[k])
		}
	}

	opt, z, err := convexlp.Simplex(c, A, sf.rhs, s.Tol, nil)
	switch {
	case errors.Is(err, convexlp.ErrInfeasible):
		return lp.NewFailed(lp.Infeasible, "problem is infeasible"), nil
	case errors.Is(err, convexlp.ErrUnbounded):
		return lp.NewFailed(lp.Unbounded, "problem is unbounded"), nil
	case err != nil:
		return nil, err
	case unbounded:
		return lp.NewFailed(lp.Unbounded, "an unconstrained variable decreases the objective"), nil
	}

	return lp.NewOptimal(opt+sf.constant, sf.restore(n, kept, z), "optimal solution found"), nil
}

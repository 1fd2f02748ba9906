package perm

import (
	"slices"

	"permutation_lp/src/lp"
)

// constraints accumulates the rows of A_ub·z <= b_ub over z = (x_1..x_n, y_1..y_n).
type constraints struct {
	n   int
	A   [][]float64
	rhs []float64
}

func (c *constraints) x(v int) int { return v }

func (c *constraints) y(v int) int { return c.n + v }

func (c *constraints) add(rhs float64, terms map[int]float64) {
	row := make([]float64, 2*c.n)
	for j, a := range terms {
		row[j] += a
	}
	c.A = append(c.A, row)
	c.rhs = append(c.rhs, rhs)
}

// defMonotonicity pins the first element of each order at coordinate >= 1 and keeps
// coordinates non-decreasing along P1 (for x) and P2 (for y).
func (c *constraints) defMonotonicity(p1, p2 Permutation) {
	c.add(-1, map[int]float64{c.x(p1[0]): -1})
	c.add(-1, map[int]float64{c.y(p2[0]): -1})
	for i := 0; i < c.n-1; i++ {
		c.add(0, map[int]float64{c.x(p1[i]): 1, c.x(p1[i+1]): -1})
	}
	for i := 0; i < c.n-1; i++ {
		c.add(0, map[int]float64{c.y(p2[i]): 1, c.y(p2[i+1]): -1})
	}
}

func isLocalExtremum(a, b, c int) bool {
	return (a-b)*(c-b) > 0
}

// defSpacing separates the neighbours of an element of P1 by at least 1 on the x axis
// whenever that element is a local extremum of the P2 order, and symmetrically for y.
func (c *constraints) defSpacing(p1, p2 Permutation, q1, q2 []int) {
	for i := 1; i < c.n-1; i++ {
		if isLocalExtremum(q2[p1[i-1]], q2[p1[i]], q2[p1[i+1]]) {
			c.add(-1, map[int]float64{c.x(p1[i-1]): 1, c.x(p1[i+1]): -1})
		}
	}
	for i := 1; i < c.n-1; i++ {
		if isLocalExtremum(q1[p2[i-1]], q1[p2[i]], q1[p2[i+1]]) {
			c.add(-1, map[int]float64{c.y(p2[i-1]): 1, c.y(p2[i+1]): -1})
		}
	}
}

// defCombined requires consecutive elements of either order to be at L1 distance
// at least 1, with the sign of the cross term taken from the other order.
func (c *constraints) defCombined(p1, p2 Permutation, q1, q2 []int) {
	for i := 0; i < c.n-1; i++ {
		v, u := p1[i], p1[i+1]
		sign := -1.0
		if q2[v] < q2[u] {
			sign = 1
		}
		c.add(-1, map[int]float64{
			c.x(v): 1, c.x(u): -1,
			c.y(v): sign, c.y(u): -sign,
		})
	}
	for i := 0; i < c.n-1; i++ {
		v, u := p2[i], p2[i+1]
		sign := -1.0
		if q1[v] < q1[u] {
			sign = 1
		}
		c.add(-1, map[int]float64{
			c.y(v): 1, c.y(u): -1,
			c.x(v): sign, c.x(u): -sign,
		})
	}
}

// Encode builds the LP whose feasible points place element k at (x_k, y_k) so that
// sorting by x gives the first permutation and sorting by y gives the second.
func Encode(inst *Instance) (*lp.Description, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}

	n := inst.Len()
	p1, p2 := inst.First, inst.Second
	q1, q2 := p1.Inverse(), p2.Inverse()

	rows := &constraints{n: n}
	rows.defMonotonicity(p1, p2)
	rows.defSpacing(p1, p2, q1, q2)
	rows.defCombined(p1, p2, q1, q2)

	bounds := make([]lp.Bound, 2*n)
	for j := range bounds {
		bounds[j] = lp.NonNegative()
	}

	return &lp.Description{
		Costs:         slices.Clone(inst.Costs),
		IneqMatrix:    rows.A,
		IneqRHS:       rows.rhs,
		EqMatrix:      [][]float64{},
		EqRHS:         []float64{},
		Bounds:        bounds,
		VariableNames: VariableNames(n),
	}, nil
}

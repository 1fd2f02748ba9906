package perm

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"permutation_lp/src/lp"
)

// Permutation is a bijection on {0, ..., n-1} stored as the sequence of its values.
type Permutation []int

// Instance is a pair of permutations of the same length together with the objective
// coefficients of the 2n encoding variables: x_1..x_n followed by y_1..y_n.
type Instance struct {
	First  Permutation
	Second Permutation
	Costs  []float64
}

// FromOneBased builds a permutation from values in 1..n.
func FromOneBased(values []int) (Permutation, error) {
	n := len(values)
	if n == 0 {
		return nil, lp.Malformedf("empty permutation")
	}
	seen := mapset.NewThreadUnsafeSet[int]()
	p := make(Permutation, n)
	for i, v := range values {
		if v < 1 || v > n {
			return nil, lp.Malformedf("value %d at position %d is outside 1..%d", v, i+1, n)
		}
		if seen.Contains(v) {
			return nil, lp.Malformedf("duplicate value %d at position %d", v, i+1)
		}
		seen.Add(v)
		p[i] = v - 1
	}
	return p, nil
}

func (p Permutation) Len() int {
	return len(p)
}

// Inverse returns the position of every value: p[p.Inverse()[v]] == v.
func (p Permutation) Inverse() []int {
	q := make([]int, len(p))
	for i, v := range p {
		q[v] = i
	}
	return q
}

func (p Permutation) OneBased() []int {
	values := make([]int, len(p))
	for i, v := range p {
		values[i] = v + 1
	}
	return values
}

func (p Permutation) String() string {
	return strings.Trim(fmt.Sprint(p.OneBased()), "[]")
}

func (inst *Instance) Len() int {
	return inst.First.Len()
}

func (inst *Instance) Validate() error {
	n := inst.First.Len()
	if n == 0 {
		return lp.Malformedf("empty permutation")
	}
	if inst.Second.Len() != n {
		return lp.Malformedf("permutation lengths differ: %d and %d", n, inst.Second.Len())
	}
	for _, p := range []Permutation{inst.First, inst.Second} {
		if _, err := FromOneBased(p.OneBased()); err != nil {
			return err
		}
	}
	if len(inst.Costs) != 2*n {
		return lp.Malformedf("objective has %d coefficients for %d variables", len(inst.Costs), 2*n)
	}
	return nil
}

// VariableNames returns x1..xn followed by y1..yn.
func VariableNames(n int) []string {
	names := make([]string, 0, 2*n)
	for _, prefix := range []string{"x", "y"} {
		for i := 0; i < n; i++ {
			names = append(names, fmt.Sprintf("%s%d", prefix, i+1))
		}
	}
	return names
}

func (inst *Instance) String() string {
	s := new(strings.Builder)
	s.WriteString(fmt.Sprintf("N. elements: %d\n", inst.Len()))
	s.WriteString(fmt.Sprintf("P1: %v\n", inst.First))
	s.WriteString(fmt.Sprintf("P2: %v\n", inst.Second))
	names := VariableNames(inst.Len())
	s.WriteString("Objective: ")
	s.WriteString(lp.FormatLinear(inst.Costs, func(j int) string { return names[j] }))
	return s.String()
}

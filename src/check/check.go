package check

import (
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/dnaeon/go-priorityqueue.v1"

	"permutation_lp/src/lp"
)

const DefaultTolerance = 1e-8

type Kind string

const (
	Inequality Kind = "inequality"
	Equality   Kind = "equality"
	Bound      Kind = "bound"
)

// Violation describes one unsatisfied constraint. Residual is signed: lhs - rhs for
// rows, value - bound for bounds.
type Violation struct {
	Type        Kind    `json:"type"`
	Index       int     `json:"index"`
	Variable    string  `json:"variable,omitempty"`
	Expression  string  `json:"expression,omitempty"`
	Description string  `json:"description"`
	LHS         float64 `json:"lhs"`
	RHS         float64 `json:"rhs"`
	Residual    float64 `json:"residual"`
}

type Report struct {
	Satisfied  bool        `json:"all_constraints_satisfied"`
	Violations []Violation `json:"violations"`
}

func (r *Report) add(v Violation) {
	r.Satisfied = false
	r.Violations = append(r.Violations, v)
}

func rowsProduct(rows [][]float64, x *mat.VecDense) *mat.VecDense {
	if len(rows) == 0 {
		return nil
	}
	A := mat.NewDense(len(rows), x.Len(), nil)
	for i, row := range rows {
		A.SetRow(i, row)
	}
	Ax := mat.NewVecDense(len(rows), nil)
	Ax.MulVec(A, x)
	return Ax
}

func (r *Report) checkRows(desc *lp.Description, kind Kind, x *mat.VecDense, tol float64) {
	rows, rhs, relation := desc.IneqMatrix, desc.IneqRHS, "<="
	if kind == Equality {
		rows, rhs, relation = desc.EqMatrix, desc.EqRHS, "="
	}

	Ax := rowsProduct(rows, x)
	for i := range rows {
		lhs := Ax.AtVec(i)
		residual := lhs - rhs[i]
		violated := residual > tol
		if kind == Equality {
			violated = math.Abs(residual) > tol
		}
		if !violated {
			continue
		}
		r.add(Violation{
			Type:        kind,
			Index:       i,
			Expression:  fmt.Sprintf("%s %s %g", lp.FormatLinear(rows[i], desc.VariableName), relation, rhs[i]),
			Description: fmt.Sprintf("%.6g %s %.6g is false", lhs, relation, rhs[i]),
			LHS:         lhs,
			RHS:         rhs[i],
			Residual:    residual,
		})
	}
}

func (r *Report) checkBounds(desc *lp.Description, x *mat.VecDense, tol float64) {
	for j, b := range desc.Bounds {
		name := desc.VariableName(j)
		val := x.AtVec(j)
		if val < b.Low-tol {
			r.add(Violation{
				Type:        Bound,
				Index:       j,
				Variable:    name,
				Description: fmt.Sprintf("%s = %.6g is below lower bound %.6g", name, val, b.Low),
				LHS:         val,
				RHS:         b.Low,
				Residual:    val - b.Low,
			})
		}
		if val > b.High+tol {
			r.add(Violation{
				Type:        Bound,
				Index:       j,
				Variable:    name,
				Description: fmt.Sprintf("%s = %.6g is above upper bound %.6g", name, val, b.High),
				LHS:         val,
				RHS:         b.High,
				Residual:    val - b.High,
			})
		}
	}
}

// Check evaluates every inequality row, equality row and bound of desc at x and
// reports all of those violated by more than tol.
func Check(desc *lp.Description, x []float64, tol float64) (*Report, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if len(x) != desc.NumVariables() {
		return nil, lp.Malformedf("assignment has %d values for %d variables", len(x), desc.NumVariables())
	}
	for j, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, lp.Malformedf("value of %s is not finite", desc.VariableName(j))
		}
	}

	vec := mat.NewVecDense(len(x), append([]float64(nil), x...))
	report := &Report{Satisfied: true, Violations: []Violation{}}
	report.checkRows(desc, Inequality, vec, tol)
	report.checkRows(desc, Equality, vec, tol)
	report.checkBounds(desc, vec, tol)
	return report, nil
}

// Worst returns at most k violations ordered by decreasing absolute residual.
func (r *Report) Worst(k int) []Violation {
	pq := priorityqueue.New[int, float64](priorityqueue.MinHeap)
	for i, v := range r.Violations {
		pq.Put(i, -math.Abs(v.Residual))
	}
	worst := make([]Violation, 0, min(k, len(r.Violations)))
	for pq.Len() > 0 && len(worst) < k {
		worst = append(worst, r.Violations[pq.Get().Value])
	}
	return worst
}

// ParseInput decodes the checker input: a JSON array holding an LP description and
// a solution whose variable_values is the candidate assignment.
func ParseInput(data []byte) (*lp.Description, []float64, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil, nil, lp.Malformedf("error while parsing checker input: %v", err)
	}
	if len(parts) != 2 {
		return nil, nil, lp.Malformedf("checker input must be an array of 2 objects, got %d", len(parts))
	}
	desc, err := lp.ParseDescription(parts[0])
	if err != nil {
		return nil, nil, err
	}
	x, err := lp.ParseCandidate(parts[1])
	if err != nil {
		return nil, nil, err
	}
	return desc, x, nil
}

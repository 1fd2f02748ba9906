package lp

import (
	"fmt"
	"math"
	"strings"
)

// Description is a linear program in the form
//
//	minimize    Costs·x
//	subject to  IneqMatrix·x <= IneqRHS
//	            EqMatrix·x    = EqRHS
//	            Bounds[j].Low <= x[j] <= Bounds[j].High
type Description struct {
	Costs         []float64   `json:"c"`
	IneqMatrix    [][]float64 `json:"A_ub"`
	IneqRHS       []float64   `json:"b_ub"`
	EqMatrix      [][]float64 `json:"A_eq"`
	EqRHS         []float64   `json:"b_eq"`
	Bounds        []Bound     `json:"bounds"`
	VariableNames []string    `json:"variable_names,omitempty"`
}

// Bound is an inclusive variable range. Infinite ends are encoded as JSON null.
type Bound struct {
	Low  float64
	High float64
}

func NonNegative() Bound {
	return Bound{Low: 0, High: math.Inf(1)}
}

func Free() Bound {
	return Bound{Low: math.Inf(-1), High: math.Inf(1)}
}

type Status string

const (
	Optimal    Status = "optimal"
	Infeasible Status = "infeasible"
	Unbounded  Status = "unbounded"
	Error      Status = "error"
)

func (s Status) Valid() bool {
	switch s {
	case Optimal, Infeasible, Unbounded, Error:
		return true
	}
	return false
}

type Solution struct {
	Status         Status    `json:"status"`
	Message        string    `json:"message,omitempty"`
	ObjectiveValue *float64  `json:"objective_value"`
	VariableValues []float64 `json:"variable_values"`
}

func NewOptimal(objective float64, x []float64, message string) *Solution {
	return &Solution{
		Status:         Optimal,
		Message:        message,
		ObjectiveValue: &objective,
		VariableValues: x,
	}
}

// NewFailed returns a solution carrying only a terminal status.
func NewFailed(status Status, message string) *Solution {
	return &Solution{Status: status, Message: message}
}

func (d *Description) NumVariables() int {
	return len(d.Costs)
}

// VariableName returns the declared name of variable j, or x<j+1> when none is declared.
func (d *Description) VariableName(j int) string {
	if j < len(d.VariableNames) {
		return d.VariableNames[j]
	}
	return fmt.Sprintf("x%d", j+1)
}

func (d *Description) String() string {
	s := new(strings.Builder)
	s.WriteString(fmt.Sprintf("N. variables: %d\n", d.NumVariables()))
	s.WriteString(fmt.Sprintf("N. inequality rows: %d\n", len(d.IneqMatrix)))
	s.WriteString(fmt.Sprintf("N. equality rows: %d\n", len(d.EqMatrix)))
	s.WriteString("Objective: ")
	s.WriteString(FormatLinear(d.Costs, d.VariableName))
	return s.String()
}

func (sol *Solution) String() string {
	s := new(strings.Builder)
	s.WriteString(fmt.Sprintf("Status: %s", sol.Status))
	if sol.Message != "" {
		s.WriteString(fmt.Sprintf(" (%s)", sol.Message))
	}
	if sol.ObjectiveValue != nil {
		s.WriteString(fmt.Sprintf("\nObjective value: %f", *sol.ObjectiveValue))
	}
	if sol.VariableValues != nil {
		s.WriteString(fmt.Sprintf("\nVariables: %v", sol.VariableValues))
	}
	return s.String()
}

// FormatLinear renders a linear form such as "x1 - 2 x2 + 0.5 y1", skipping zero
// coefficients. An all-zero form renders as "0".
func FormatLinear(coeffs []float64, name func(int) string) string {
	s := new(strings.Builder)
	for j, a := range coeffs {
		if math.Abs(a) < 1e-12 {
			continue
		}
		switch {
		case s.Len() == 0 && a < 0:
			s.WriteString("-")
		case s.Len() > 0 && a < 0:
			s.WriteString(" - ")
		case s.Len() > 0:
			s.WriteString(" + ")
		}
		if mag := math.Abs(a); mag != 1 {
			s.WriteString(fmt.Sprintf("%g ", mag))
		}
		s.WriteString(name(j))
	}
	if s.Len() == 0 {
		return "0"
	}
	return s.String()
}

package lp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"
)

func (b Bound) MarshalJSON() ([]byte, error) {
	pair := [2]*float64{}
	if !math.IsInf(b.Low, -1) {
		pair[0] = &b.Low
	}
	if !math.IsInf(b.High, 1) {
		pair[1] = &b.High
	}
	return json.Marshal(pair)
}

func (b *Bound) UnmarshalJSON(data []byte) error {
	var pair []*float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("bound must have exactly 2 entries, got %d", len(pair))
	}
	*b = Free()
	if pair[0] != nil {
		b.Low = *pair[0]
	}
	if pair[1] != nil {
		b.High = *pair[1]
	}
	return nil
}

func (s *Status) UnmarshalText(text []byte) error {
	v := Status(text)
	if !v.Valid() {
		return fmt.Errorf("unknown status %q", text)
	}
	*s = v
	return nil
}

func (d Description) MarshalJSON() ([]byte, error) {
	type plain Description
	p := plain(d)
	if p.Costs == nil {
		p.Costs = []float64{}
	}
	if p.IneqMatrix == nil {
		p.IneqMatrix = [][]float64{}
	}
	if p.IneqRHS == nil {
		p.IneqRHS = []float64{}
	}
	if p.EqMatrix == nil {
		p.EqMatrix = [][]float64{}
	}
	if p.EqRHS == nil {
		p.EqRHS = []float64{}
	}
	if p.Bounds == nil {
		p.Bounds = []Bound{}
	}
	return json.Marshal(p)
}

type rawDescription struct {
	Costs         *[]float64   `json:"c"`
	IneqMatrix    *[][]float64 `json:"A_ub"`
	IneqRHS       *[]float64   `json:"b_ub"`
	EqMatrix      *[][]float64 `json:"A_eq"`
	EqRHS         *[]float64   `json:"b_eq"`
	Bounds        *[]Bound     `json:"bounds"`
	VariableNames []string     `json:"variable_names"`
}

type rawSolution struct {
	Status         *Status   `json:"status"`
	Message        string    `json:"message"`
	ObjectiveValue *float64  `json:"objective_value"`
	VariableValues []float64 `json:"variable_values"`
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, IOf(err, "error while reading input")
	}
	return data, nil
}

func ReadDescription(r io.Reader) (*Description, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return ParseDescription(data)
}

// ParseDescription decodes and validates an LP description. Every field except
// variable_names is required and unknown fields are rejected.
func ParseDescription(data []byte) (*Description, error) {
	raw := new(rawDescription)
	if err := decodeStrict(data, raw); err != nil {
		return nil, Malformedf("error while parsing LP description: %v", err)
	}

	missing := func(name string) error {
		return Malformedf("LP description is missing field %q", name)
	}
	switch {
	case raw.Costs == nil:
		return nil, missing("c")
	case raw.IneqMatrix == nil:
		return nil, missing("A_ub")
	case raw.IneqRHS == nil:
		return nil, missing("b_ub")
	case raw.EqMatrix == nil:
		return nil, missing("A_eq")
	case raw.EqRHS == nil:
		return nil, missing("b_eq")
	case raw.Bounds == nil:
		return nil, missing("bounds")
	}

	desc := &Description{
		Costs:         *raw.Costs,
		IneqMatrix:    *raw.IneqMatrix,
		IneqRHS:       *raw.IneqRHS,
		EqMatrix:      *raw.EqMatrix,
		EqRHS:         *raw.EqRHS,
		Bounds:        *raw.Bounds,
		VariableNames: raw.VariableNames,
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return desc, nil
}

// ParseSolution decodes a solver result and enforces that the objective value
// and the assignment are present exactly when the status is optimal.
func ParseSolution(data []byte) (*Solution, error) {
	sol, err := parseSolution(data)
	if err != nil {
		return nil, err
	}
	if err := sol.Validate(); err != nil {
		return nil, err
	}
	return sol, nil
}

// ParseCandidate decodes a solution record used only as a candidate assignment.
// The status/value pairing is not enforced, but variable_values must be present.
func ParseCandidate(data []byte) ([]float64, error) {
	sol, err := parseSolution(data)
	if err != nil {
		return nil, err
	}
	if sol.VariableValues == nil {
		return nil, Malformedf("candidate solution has no variable_values")
	}
	return sol.VariableValues, nil
}

func parseSolution(data []byte) (*Solution, error) {
	raw := new(rawSolution)
	if err := decodeStrict(data, raw); err != nil {
		return nil, Malformedf("error while parsing solution: %v", err)
	}
	if raw.Status == nil {
		return nil, Malformedf("solution is missing field %q", "status")
	}
	return &Solution{
		Status:         *raw.Status,
		Message:        raw.Message,
		ObjectiveValue: raw.ObjectiveValue,
		VariableValues: raw.VariableValues,
	}, nil
}

// MarshalJSON encodes v indented by two spaces and followed by a newline.
func MarshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "error while encoding output")
	}
	return append(data, '\n'), nil
}

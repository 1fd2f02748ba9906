package lp_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"permutation_lp/src/lp"

	"github.com/stretchr/testify/require"
)

const smallLP = `{
  "c": [1, -2],
  "A_ub": [[1, 1]],
  "b_ub": [4],
  "A_eq": [],
  "b_eq": [],
  "bounds": [[0, null], [null, 3]],
  "variable_names": ["a", "b"]
}`

func TestParseDescription(t *testing.T) {
	desc, err := lp.ParseDescription([]byte(smallLP))
	require.NoError(t, err)
	require.Equal(t, []float64{1, -2}, desc.Costs)
	require.Equal(t, [][]float64{{1, 1}}, desc.IneqMatrix)
	require.Empty(t, desc.EqMatrix)
	require.Equal(t, 0.0, desc.Bounds[0].Low)
	require.True(t, math.IsInf(desc.Bounds[0].High, 1))
	require.True(t, math.IsInf(desc.Bounds[1].Low, -1))
	require.Equal(t, 3.0, desc.Bounds[1].High)
	require.Equal(t, "b", desc.VariableName(1))
}

func TestDescriptionWriteRead(t *testing.T) {
	desc := &lp.Description{
		Costs:      []float64{1, 0, 2},
		IneqMatrix: [][]float64{{1, -1, 0}},
		IneqRHS:    []float64{0},
		Bounds:     []lp.Bound{lp.NonNegative(), lp.Free(), {Low: -1, High: 1}},
	}
	data, err := lp.MarshalJSON(desc)
	require.NoError(t, err)
	require.Contains(t, string(data), `"A_eq": []`)
	require.Contains(t, string(data), "null")
	require.True(t, strings.HasSuffix(string(data), "}\n"))

	back, err := lp.ReadDescription(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, desc.Costs, back.Costs)
	require.Equal(t, desc.IneqMatrix, back.IneqMatrix)
	require.Equal(t, desc.Bounds, back.Bounds)
	require.Empty(t, back.EqRHS)
}

func TestParseDescriptionMalformed(t *testing.T) {
	cases := map[string]string{
		"missing field": `{"c":[1],"A_ub":[],"b_ub":[],"A_eq":[],"b_eq":[]}`,
		"unknown field": `{"c":[1],"A_ub":[],"b_ub":[],"A_eq":[],"b_eq":[],"bounds":[[0,null]],"extra":1}`,
		"wrong type":    `{"c":"one","A_ub":[],"b_ub":[],"A_eq":[],"b_eq":[],"bounds":[[0,null]]}`,
		"row width":     `{"c":[1,2],"A_ub":[[1]],"b_ub":[1],"A_eq":[],"b_eq":[],"bounds":[[0,null],[0,null]]}`,
		"rhs length":    `{"c":[1],"A_ub":[[1]],"b_ub":[],"A_eq":[],"b_eq":[],"bounds":[[0,null]]}`,
		"bound count":   `{"c":[1,2],"A_ub":[],"b_ub":[],"A_eq":[],"b_eq":[],"bounds":[[0,null]]}`,
		"bound shape":   `{"c":[1],"A_ub":[],"b_ub":[],"A_eq":[],"b_eq":[],"bounds":[[0]]}`,
		"no variables":  `{"c":[],"A_ub":[],"b_ub":[],"A_eq":[],"b_eq":[],"bounds":[]}`,
		"names":         `{"c":[1],"A_ub":[],"b_ub":[],"A_eq":[],"b_eq":[],"bounds":[[0,null]],"variable_names":["a","b"]}`,
		"trailing data": `{"c":[1],"A_ub":[],"b_ub":[],"A_eq":[],"b_eq":[],"bounds":[[0,null]]} {}`,
		"not json":      `c = [1]`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := lp.ParseDescription([]byte(input))
			require.ErrorIs(t, err, lp.ErrMalformedInput)
			require.Equal(t, lp.ExitMalformed, lp.ExitCode(err))
		})
	}
}

func TestParseSolution(t *testing.T) {
	sol, err := lp.ParseSolution([]byte(`{"status":"optimal","objective_value":2.5,"variable_values":[1,2]}`))
	require.NoError(t, err)
	require.Equal(t, lp.Optimal, sol.Status)
	require.Equal(t, 2.5, *sol.ObjectiveValue)

	sol, err = lp.ParseSolution([]byte(`{"status":"infeasible","message":"no point","objective_value":null,"variable_values":null}`))
	require.NoError(t, err)
	require.Equal(t, lp.Infeasible, sol.Status)
	require.Nil(t, sol.VariableValues)

	_, err = lp.ParseSolution([]byte(`{"status":"optimal","variable_values":[1]}`))
	require.ErrorIs(t, err, lp.ErrMalformedInput)

	_, err = lp.ParseSolution([]byte(`{"status":"unbounded","objective_value":1}`))
	require.ErrorIs(t, err, lp.ErrMalformedInput)

	_, err = lp.ParseSolution([]byte(`{"status":"done"}`))
	require.ErrorIs(t, err, lp.ErrMalformedInput)

	_, err = lp.ParseSolution([]byte(`{"variable_values":[1]}`))
	require.ErrorIs(t, err, lp.ErrMalformedInput)
}

func TestParseCandidate(t *testing.T) {
	x, err := lp.ParseCandidate([]byte(`{"status":"error","variable_values":[7]}`))
	require.NoError(t, err)
	require.Equal(t, []float64{7}, x)

	_, err = lp.ParseCandidate([]byte(`{"status":"infeasible"}`))
	require.ErrorIs(t, err, lp.ErrMalformedInput)
}

func TestSolutionJSONNulls(t *testing.T) {
	data, err := lp.MarshalJSON(lp.NewFailed(lp.Unbounded, "objective is unbounded"))
	require.NoError(t, err)
	require.Contains(t, string(data), `"objective_value": null`)
	require.Contains(t, string(data), `"variable_values": null`)
}

func TestFormatLinear(t *testing.T) {
	names := func(j int) string { return []string{"x1", "x2", "y1"}[j] }
	require.Equal(t, "x1 - x2", lp.FormatLinear([]float64{1, -1, 0}, names))
	require.Equal(t, "-2 x1 + 0.5 y1", lp.FormatLinear([]float64{-2, 0, 0.5}, names))
	require.Equal(t, "0", lp.FormatLinear([]float64{0, 0, 0}, names))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errBoom }

var errBoom = bytes.ErrTooLarge

func TestReadDescriptionIOFailure(t *testing.T) {
	_, err := lp.ReadDescription(failingReader{})
	require.ErrorIs(t, err, lp.ErrIO)
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, lp.ExitIO, lp.ExitCode(err))
}

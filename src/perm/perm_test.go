package perm_test

import (
	"math"
	"testing"

	"permutation_lp/src/lp"
	"permutation_lp/src/perm"

	"github.com/stretchr/testify/require"
)

func TestParseInstance(t *testing.T) {
	inst, err := perm.ParseInstance("2 1 3\n3 1 2\n3 x_1 - x_2 + y_3\n")
	require.NoError(t, err)
	require.Equal(t, perm.Permutation{1, 0, 2}, inst.First)
	require.Equal(t, perm.Permutation{2, 0, 1}, inst.Second)
	require.Equal(t, []float64{3, -1, 0, 0, 0, 1}, inst.Costs)
}

func TestParseInstanceWithoutObjective(t *testing.T) {
	inst, err := perm.ParseInstance("\n1 2\n\n2 1\n")
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0, 0}, inst.Costs)
}

func TestParseInstanceMalformed(t *testing.T) {
	cases := map[string]string{
		"duplicate value":    "1 1 3\n1 2 3\nx_1\n",
		"out of range":       "1 2 4\n1 2 3\nx_1\n",
		"length mismatch":    "1 2 3\n1 2\nx_1\n",
		"not an integer":     "1 two 3\n1 2 3\n",
		"single line":        "1 2 3\n",
		"too many lines":     "1 2\n2 1\nx_1\nx_2\n",
		"undefined variable": "1 2\n2 1\nx_3\n",
		"zero index":         "1 2\n2 1\ny_0\n",
		"garbage objective":  "1 2\n2 1\nx_1 + z_2\n",
		"missing operator":   "1 2\n2 1\nx_1 y_2\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := perm.ParseInstance(input)
			require.ErrorIs(t, err, lp.ErrMalformedInput)
		})
	}
}

func TestParseInstanceNamesPermutation(t *testing.T) {
	_, err := perm.ParseInstance("1 2 3\n3 3 1\n")
	require.ErrorIs(t, err, lp.ErrMalformedInput)
	require.Contains(t, err.Error(), "permutation 2: duplicate value 3 at position 2")
}

func TestParseObjective(t *testing.T) {
	costs, err := perm.ParseObjective("-x_1 + 2.5*y_2 - 0.5 y_2 + 1e1 x_2", 2)
	require.NoError(t, err)
	require.Equal(t, []float64{-1, 10, 0, 2}, costs)
}

func TestInstanceFormatRoundTrip(t *testing.T) {
	first, err := perm.FromOneBased([]int{3, 1, 4, 2})
	require.NoError(t, err)
	second, err := perm.FromOneBased([]int{2, 4, 1, 3})
	require.NoError(t, err)
	inst := &perm.Instance{
		First:  first,
		Second: second,
		Costs:  []float64{1, -2, 0, 0.25, 0, 0, 3, -1},
	}

	back, err := perm.ParseInstance(inst.Format())
	require.NoError(t, err)
	require.Equal(t, inst, back)

	inst.Costs = make([]float64, 8)
	back, err = perm.ParseInstance(inst.Format())
	require.NoError(t, err)
	require.Equal(t, inst, back)
}

func TestInverse(t *testing.T) {
	p := perm.Permutation{2, 0, 1}
	q := p.Inverse()
	for v := range p {
		require.Equal(t, v, p[q[v]])
	}
}

func TestEncodeTwoElements(t *testing.T) {
	inst, err := perm.ParseInstance("1 2\n2 1\nx_1 + x_2 + y_1 + y_2\n")
	require.NoError(t, err)

	desc, err := perm.Encode(inst)
	require.NoError(t, err)
	require.NoError(t, desc.Validate())

	require.Equal(t, []string{"x1", "x2", "y1", "y2"}, desc.VariableNames)
	require.Equal(t, [][]float64{
		{-1, 0, 0, 0},
		{0, 0, 0, -1},
		{1, -1, 0, 0},
		{0, 0, -1, 1},
		{1, -1, -1, 1},
		{1, -1, -1, 1},
	}, desc.IneqMatrix)
	require.Equal(t, []float64{-1, -1, 0, 0, -1, -1}, desc.IneqRHS)
	require.Empty(t, desc.EqMatrix)
	for _, b := range desc.Bounds {
		require.Equal(t, 0.0, b.Low)
		require.True(t, math.IsInf(b.High, 1))
	}
}

func TestEncodeSpacingRows(t *testing.T) {
	// 2 is a local extremum of the second order among its neighbours in the first.
	inst, err := perm.ParseInstance("1 2 3\n2 1 3\n")
	require.NoError(t, err)

	desc, err := perm.Encode(inst)
	require.NoError(t, err)

	// 2 anchors + 2*2 monotonicity + 1 spacing (P1) + 1 spacing (P2) + 2*2 combined.
	require.Len(t, desc.IneqMatrix, 12)
	require.Equal(t, []float64{1, 0, -1, 0, 0, 0}, desc.IneqMatrix[6])
	require.Equal(t, -1.0, desc.IneqRHS[6])
	require.Equal(t, []float64{0, 0, 0, 0, 1, -1}, desc.IneqMatrix[7])
}

func TestEncodeRejectsInvalidInstance(t *testing.T) {
	_, err := perm.Encode(&perm.Instance{
		First:  perm.Permutation{0, 0},
		Second: perm.Permutation{0, 1},
		Costs:  make([]float64, 4),
	})
	require.ErrorIs(t, err, lp.ErrMalformedInput)

	_, err = perm.Encode(&perm.Instance{
		First:  perm.Permutation{0, 1},
		Second: perm.Permutation{0, 1},
		Costs:  make([]float64, 3),
	})
	require.ErrorIs(t, err, lp.ErrMalformedInput)
}

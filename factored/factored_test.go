// SPDX-License-Identifier: MIT
package factored_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/rvimdp/ambiguity"
	aratset "github.com/katalvlaran/rvimdp/ambiguity/rational"
	"github.com/katalvlaran/rvimdp/factored"
	"github.com/katalvlaran/rvimdp/model"
	"github.com/katalvlaran/rvimdp/model/depgraph"
	oratkernel "github.com/katalvlaran/rvimdp/omax/rational"
	"github.com/katalvlaran/rvimdp/rvtypes"
)

func buildTwoAxisModel(t *testing.T, lo0, up0, lo1, up1 []float64) *model.FactoredModel {
	t.Helper()
	set0, err := ambiguity.NewDense(mat.NewDense(2, 1, lo0), mat.NewDense(2, 1, up0))
	require.NoError(t, err)
	set1, err := ambiguity.NewDense(mat.NewDense(3, 1, lo1), mat.NewDense(3, 1, up1))
	require.NoError(t, err)

	g := depgraph.New(2, 0)
	require.NoError(t, g.AddMarginal(0, nil, nil))
	require.NoError(t, g.AddMarginal(1, nil, nil))

	fm, err := model.NewFIMDP([]int{2, 3}, nil, g, []model.Marginal{{Gamma: set0}, {Gamma: set1}})
	require.NoError(t, err)

	return fm
}

// TestContract_MatchesMaterializedKronecker reproduces spec.md scenario
// S6: a 2x3 two-axis factored model whose marginals are each a
// degenerate point distribution (lo=up). With no ambiguity to resolve,
// the joint expectation is a pure bilinear sum that is associative by
// construction, so the recursive per-axis contraction must equal the
// expectation computed against the Kronecker-materialized joint
// distribution exactly (up to float rounding) — this isolates the
// tensor/indexing machinery from the harder question of whether a
// sup over rectangular product measures matches a sup over the
// Kronecker-materialized *box* (it does not, in general: the box
// allows non-product joint measures, spec section 4.5's rectangularity
// assumption is strictly narrower).
func TestContract_MatchesMaterializedKronecker(t *testing.T) {
	p0 := []float64{0.4, 0.6}
	p1 := []float64{0.2, 0.3, 0.5}
	fm := buildTwoAxisModel(t, p0, p0, p1, p1)

	V := make([]float64, 6)
	jointP := make([]float64, 6)
	for s0 := 0; s0 < 2; s0++ {
		for s1 := 0; s1 < 3; s1++ {
			V[s0*3+s1] = float64(100*s0 + s1)
			jointP[s0*3+s1] = p0[s0] * p1[s1]
		}
	}

	want := 0.0
	for k, v := range V {
		want += jointP[k] * v
	}

	for _, dir := range []rvtypes.Direction{rvtypes.Lower, rvtypes.Upper} {
		sc := factored.NewScratch(fm)
		got, err := factored.Contract(fm, V, func(axis int) int { return 0 }, dir, sc)
		require.NoError(t, err)
		require.InDelta(t, want, got, 1e-8, "direction=%v", dir)
	}
}

// TestContract_UpperBoundsLower checks the genuine (non-degenerate)
// optimization path: with real ambiguity the Upper-direction contract
// must be at least the Lower-direction one, and both must lie within
// the trivial [min(V),max(V)] envelope.
func TestContract_UpperBoundsLower(t *testing.T) {
	fm := buildTwoAxisModel(t,
		[]float64{0.2, 0.3}, []float64{0.6, 0.7},
		[]float64{0.1, 0.2, 0.3}, []float64{0.3, 0.4, 0.5},
	)

	V := []float64{0, 1, 2, 100, 101, 102}

	scLower := factored.NewScratch(fm)
	lower, err := factored.Contract(fm, V, func(axis int) int { return 0 }, rvtypes.Lower, scLower)
	require.NoError(t, err)

	scUpper := factored.NewScratch(fm)
	upper, err := factored.Contract(fm, V, func(axis int) int { return 0 }, rvtypes.Upper, scUpper)
	require.NoError(t, err)

	require.LessOrEqual(t, lower, upper)
	require.GreaterOrEqual(t, lower, 0.0)
	require.LessOrEqual(t, upper, 102.0)
}

// TestContract_ExactRational mirrors the degenerate-point-distribution
// check using exact big.Rat arithmetic.
func TestContract_ExactRational(t *testing.T) {
	p0 := []*big.Rat{big.NewRat(2, 5), big.NewRat(3, 5)}
	p1 := []*big.Rat{big.NewRat(1, 5), big.NewRat(3, 10), big.NewRat(1, 2)}

	set0, err := aratset.New(2, []int{0, 2}, []int{0, 1}, p0, p0)
	require.NoError(t, err)
	set1, err := aratset.New(3, []int{0, 3}, []int{0, 1, 2}, p1, p1)
	require.NoError(t, err)

	V := make([]*big.Rat, 6)
	want := new(big.Rat)
	for s0 := 0; s0 < 2; s0++ {
		for s1 := 0; s1 < 3; s1++ {
			v := big.NewRat(int64(100*s0+s1), 1)
			V[s0*3+s1] = v
			term := new(big.Rat).Mul(p0[s0], p1[s1])
			term.Mul(term, v)
			want.Add(want, term)
		}
	}

	for _, dir := range []rvtypes.Direction{rvtypes.Lower, rvtypes.Upper} {
		out := make([]*big.Rat, 3)
		for s1 := 0; s1 < 3; s1++ {
			local := []*big.Rat{V[0*3+s1], V[1*3+s1]}
			out[s1] = oratkernel.Column(set0, 0, local, dir).Expectation
		}
		got := oratkernel.Column(set1, 0, out, dir).Expectation

		require.Equal(t, 0, want.Cmp(got), "direction=%v: want=%s got=%s", dir, want.RatString(), got.RatString())
	}
}

// SPDX-License-Identifier: MIT
package solve_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/rvimdp/ambiguity"
	"github.com/katalvlaran/rvimdp/model"
	"github.com/katalvlaran/rvimdp/model/depgraph"
	"github.com/katalvlaran/rvimdp/property"
	"github.com/katalvlaran/rvimdp/rverrors"
	"github.com/katalvlaran/rvimdp/rvtypes"
	"github.com/katalvlaran/rvimdp/solve"
	"github.com/katalvlaran/rvimdp/strategy"
)

// buildTwoAxisFactoredModel mirrors factored_test.go's scenario S6
// shape: a 2x3 joint state space over two independent marginals, with a
// single trivial (nil-shaped) joint action.
func buildTwoAxisFactoredModel(t *testing.T) *model.FactoredModel {
	t.Helper()
	lo0 := mat.NewDense(2, 1, []float64{0.2, 0.3})
	up0 := mat.NewDense(2, 1, []float64{0.6, 0.7})
	set0, err := ambiguity.NewDense(lo0, up0)
	require.NoError(t, err)

	lo1 := mat.NewDense(3, 1, []float64{0.1, 0.2, 0.3})
	up1 := mat.NewDense(3, 1, []float64{0.3, 0.4, 0.5})
	set1, err := ambiguity.NewDense(lo1, up1)
	require.NoError(t, err)

	g := depgraph.New(2, 0)
	require.NoError(t, g.AddMarginal(0, nil, nil))
	require.NoError(t, g.AddMarginal(1, nil, nil))

	fm, err := model.NewFIMDP([]int{2, 3}, nil, g, []model.Marginal{{Gamma: set0}, {Gamma: set1}})
	require.NoError(t, err)

	return fm
}

// TestRunFactored_FiniteHorizonReachability drives a two-axis joint
// model (6 joint states, a single trivial joint action) through a
// finite-horizon reachability property via the recursive contraction
// path, checking the value function stays in [0,1], the reach target
// is pinned to 1, and state 0's value history is non-decreasing.
func TestRunFactored_FiniteHorizonReachability(t *testing.T) {
	fm := buildTwoAxisFactoredModel(t)
	n := fm.NumJointStates()

	reach := make([]bool, n)
	reach[5] = true // joint state (s0=1, s1=2)

	var history []float64
	V, iterations, residual, _, err := solve.RunFactored(context.Background(), fm, solve.Options{
		Direction: rvtypes.Lower,
		Reduction: rvtypes.Maximize,
		Property:  property.NewReachability(property.FiniteHorizon{Horizon: 6}, n, reach),
		Callback: func(cur []float64, k int) error {
			history = append(history, cur[0])
			return nil
		},
	})
	require.NoError(t, err)
	require.Equal(t, 6, iterations)
	require.GreaterOrEqual(t, residual, 0.0)
	require.Equal(t, 1.0, V[5])
	for _, v := range V {
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0)
	}
	for i := 1; i < len(history); i++ {
		require.GreaterOrEqual(t, history[i], history[i-1]-1e-12)
	}
}

// TestRunFactored_GivenRestrictsToPrescribedAction confirms a
// strategy.Given cache drives RunFactored down the prescribed-action
// branch rather than silently falling back to full reduction over the
// joint action set.
func TestRunFactored_GivenRestrictsToPrescribedAction(t *testing.T) {
	fm := buildTwoAxisFactoredModel(t)
	n := fm.NumJointStates()

	reach := make([]bool, n)
	reach[5] = true

	given := strategy.NewGiven(make([]int, n)) // the only joint action is index 0
	V, _, _, _, err := solve.RunFactored(context.Background(), fm, solve.Options{
		Direction: rvtypes.Lower,
		Reduction: rvtypes.Maximize,
		Property:  property.NewReachability(property.FiniteHorizon{Horizon: 6}, n, reach),
		Strategy:  given,
	})
	require.NoError(t, err)
	require.Equal(t, 1.0, V[5])
}

func TestRunFactored_RejectsNilProperty(t *testing.T) {
	fm := buildTwoAxisFactoredModel(t)
	_, _, _, _, err := solve.RunFactored(context.Background(), fm, solve.Options{})
	require.ErrorIs(t, err, rverrors.ErrShapeMismatch)
}

func TestRunFactored_RejectsNilModel(t *testing.T) {
	_, _, _, _, err := solve.RunFactored(context.Background(), nil, solve.Options{
		Property: property.NewReachability(property.FiniteHorizon{Horizon: 1}, 1, []bool{true}),
	})
	require.ErrorIs(t, err, rverrors.ErrShapeMismatch)
}

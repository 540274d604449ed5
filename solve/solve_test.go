// SPDX-License-Identifier: MIT
package solve_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/rvimdp/ambiguity"
	"github.com/katalvlaran/rvimdp/model"
	"github.com/katalvlaran/rvimdp/property"
	"github.com/katalvlaran/rvimdp/rverrors"
	"github.com/katalvlaran/rvimdp/rvtypes"
	"github.com/katalvlaran/rvimdp/solve"
	"github.com/katalvlaran/rvimdp/strategy"
)

// buildS1 reproduces spec.md scenario S1's 3-state IMC, whose state 2
// (0-indexed) is the absorbing reachability target.
func buildS1(t *testing.T) *model.Model {
	t.Helper()
	lo := mat.NewDense(3, 3, []float64{
		0, .5, 0,
		.1, .3, 0,
		.2, .1, 1,
	})
	up := mat.NewDense(3, 3, []float64{
		.5, .7, 0,
		.6, .5, 0,
		.7, .3, 1,
	})
	set, err := ambiguity.NewDense(lo, up)
	require.NoError(t, err)

	m, err := model.NewIMC(set)
	require.NoError(t, err)

	return m
}

// TestRun_S1Reachability_MonotoneNonDecreasing reproduces spec.md
// scenario S1: finite-horizon reachability of {2} over 10 steps,
// pessimistic/maximize. V[2] is pinned to 1 at every step (the target
// state), and the sequence of V's is non-decreasing (testable property
// #6), since Lower direction with reachability masking can never
// reduce a state's prospects of eventually reaching the target.
func TestRun_S1Reachability_MonotoneNonDecreasing(t *testing.T) {
	m := buildS1(t)
	prop := property.NewReachability(property.FiniteHorizon{Horizon: 10}, 3, []bool{false, false, true})

	var history [][]float64
	opts := solve.Options{
		Workers:   2,
		Direction: rvtypes.Lower,
		Reduction: rvtypes.Maximize,
		Property:  prop,
		Callback: func(cur []float64, _ int) error {
			snap := make([]float64, len(cur))
			copy(snap, cur)
			history = append(history, snap)

			return nil
		},
	}

	V, k, residual, strat, err := solve.Run(context.Background(), m, opts)
	require.NoError(t, err)
	require.Equal(t, 10, k)
	require.GreaterOrEqual(t, residual, 0.0)
	require.NotNil(t, strat)
	require.InDelta(t, 1.0, V[2], 1e-12)

	require.Len(t, history, 10)
	for i := 1; i < len(history); i++ {
		for s := range V {
			require.GreaterOrEqual(t, history[i][s], history[i-1][s]-1e-12,
				"state %d regressed between step %d and %d", s, i-1, i)
		}
	}
}

// TestRun_StationaryStrategy_S4ActionSelection reproduces scenario S4's
// IMDP and runs Stationary strategy synthesis under infinite-horizon
// reachability; it checks that the run converges without error and
// returns the caller's cache, not which action each state selected.
func TestRun_StationaryStrategy_S4ActionSelection(t *testing.T) {
	loData := []float64{
		0, 0, .5, 0, 0, 0,
		.1, 0, .3, 0, 0, 0,
		.2, 0, .1, 0, 1, 0,
	}
	upData := []float64{
		.5, .9, .7, .4, 0, .3,
		.6, .9, .5, .4, 0, .3,
		.7, .05, .3, .9, 1, .9,
	}
	lo := mat.NewDense(3, 6, loData)
	up := mat.NewDense(3, 6, upData)
	set, err := ambiguity.NewDense(lo, up)
	require.NoError(t, err)

	m, err := model.NewIMDP(3, set, model.WithUniformActions(2))
	require.NoError(t, err)

	prop := property.NewReachability(property.InfiniteHorizon{Epsilon: 1e-6}, 3, []bool{false, false, true})
	cache := strategy.NewStationary(3)

	_, _, _, strat, err := solve.Run(context.Background(), m, solve.Options{
		Workers:       2,
		Direction:     rvtypes.Lower,
		Reduction:     rvtypes.Maximize,
		Property:      prop,
		Strategy:      cache,
		MaxIterations: 10_000,
		Epsilon:       1e-6,
	})
	require.NoError(t, err)
	require.Same(t, cache, strat)
}

// TestRun_MaxIterationsReturnsNotConverged checks that an epsilon
// smaller than float precision can ever resolve forces the
// MaxIterations cap to trigger, returning a *rverrors.NotConvergedError
// alongside the partial solution rather than looping forever.
func TestRun_MaxIterationsReturnsNotConverged(t *testing.T) {
	m := buildS1(t)
	prop := property.NewReachability(property.InfiniteHorizon{Epsilon: 0}, 3, []bool{false, false, true})

	V, k, residual, strat, err := solve.Run(context.Background(), m, solve.Options{
		Direction:     rvtypes.Lower,
		Reduction:     rvtypes.Maximize,
		Property:      prop,
		MaxIterations: 5,
		Epsilon:       0,
	})
	require.Error(t, err)
	require.True(t, rverrors.IsNotConverged(err))
	require.Equal(t, 5, k)
	require.NotNil(t, V)
	require.NotNil(t, strat)
	require.GreaterOrEqual(t, residual, 0.0)
}

// TestRun_CallbackErrorAbortsIteration checks that a callback error is
// wrapped with rverrors.ErrCallbackAborted and stops the loop early.
func TestRun_CallbackErrorAbortsIteration(t *testing.T) {
	m := buildS1(t)
	prop := property.NewReachability(property.FiniteHorizon{Horizon: 10}, 3, []bool{false, false, true})
	boom := errors.New("boom")

	_, k, _, _, err := solve.Run(context.Background(), m, solve.Options{
		Direction: rvtypes.Lower,
		Reduction: rvtypes.Maximize,
		Property:  prop,
		Callback: func(_ []float64, step int) error {
			if step == 2 {
				return boom
			}

			return nil
		},
	})
	require.Error(t, err)
	require.ErrorIs(t, err, rverrors.ErrCallbackAborted)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 2, k)
}

// TestRun_RejectsMissingProperty checks the eager ShapeMismatch guard.
func TestRun_RejectsMissingProperty(t *testing.T) {
	m := buildS1(t)
	_, _, _, _, err := solve.Run(context.Background(), m, solve.Options{})
	require.ErrorIs(t, err, rverrors.ErrShapeMismatch)
}

// SPDX-License-Identifier: MIT

// Package solve implements the iteration driver (spec section 4.9):
// the outer loop that repeatedly runs one Bellman step, applies a
// property's per-step masking, records a candidate strategy, and
// checks a termination predicate, until the predicate holds or an
// iteration cap is reached.
//
// Grounded on flow.FordFulkerson's augmenting-loop shape: a bare
// `for { ... if no more work: break }` that threads a running
// accumulator (there, residual capacities and totalFlow; here, the
// value-function pair and iteration count) through each pass, checks
// context cancellation once per pass, and an options struct supplying
// defaults rather than package-level globals.
package solve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/rvimdp/bellman"
	"github.com/katalvlaran/rvimdp/model"
	"github.com/katalvlaran/rvimdp/property"
	"github.com/katalvlaran/rvimdp/rverrors"
	"github.com/katalvlaran/rvimdp/rvtypes"
	"github.com/katalvlaran/rvimdp/strategy"
	"github.com/katalvlaran/rvimdp/valuefunc"
)

// Options configures one Run call. There is deliberately no
// package-level default: every field the driver needs is threaded
// through this struct so that two concurrent Run calls (even against
// the same model) never share mutable state.
type Options struct {
	// Workers bounds Bellman-step parallelism (0 or 1 disables it).
	Workers int

	// Direction selects the pessimistic (Lower) or optimistic (Upper)
	// O-maximization bound.
	Direction rvtypes.Direction

	// Reduction selects how per-state action expectations combine.
	Reduction rvtypes.Reduction

	// Property supplies the three iteration hooks (Initialize, Step,
	// Terminate); required.
	Property property.Property

	// Strategy receives one Record call per (state, iteration); nil
	// defaults to strategy.None{} (discard).
	Strategy strategy.Cache

	// MaxIterations caps the loop; 0 means no cap (rely entirely on
	// Property.Terminate). When the cap is hit before Terminate
	// returns true, Run returns a *rverrors.NotConvergedError
	// alongside the partial solution.
	MaxIterations int

	// Epsilon is recorded into NotConvergedError for diagnostics; it
	// plays no role in the loop itself (Property.Terminate owns the
	// actual convergence check).
	Epsilon float64

	// Callback, if non-nil, is invoked with (V.cur, k) after every
	// iteration; a returned error stops iteration and is wrapped with
	// rverrors.ErrCallbackAborted.
	Callback func(cur []float64, k int) error

	// Logger receives per-iteration residuals at Debug and the
	// termination reason at Info; nil defaults to slog.Default().
	// Algorithms below this driver (bellman, factored, omax) never log
	// — only the driver and CLI boundary do.
	Logger *slog.Logger
}

// Run executes the iteration driver against the non-factored model m.
// It returns the final value function, the number of iterations run,
// the infinity-norm residual at that point, and the strategy cache
// (already Finalize'd when the loop ends by Terminate or by the
// iteration cap; after a callback abort it is returned as recorded so
// far, without Finalize).
func Run(ctx context.Context, m *model.Model, opts Options) ([]float64, int, float64, strategy.Cache, error) {
	if m == nil {
		return nil, 0, 0, nil, fmt.Errorf("solve: Run: model is nil: %w", rverrors.ErrShapeMismatch)
	}
	if opts.Property == nil {
		return nil, 0, 0, nil, fmt.Errorf("solve: Run: Options.Property is nil: %w", rverrors.ErrShapeMismatch)
	}

	strat := opts.Strategy
	if strat == nil {
		strat = strategy.None{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	n := m.NumStates()
	vp := valuefunc.New(n)
	opts.Property.Initialize(vp.Cur())
	vp.CopyCurrentToPrevious()

	diff := make([]float64, n)
	k := 0

	for {
		results, err := bellman.Step(ctx, m, vp.Prev(), vp.Prev(), opts.Direction, opts.Reduction, opts.Workers, strat)
		if err != nil {
			return nil, k, 0, nil, fmt.Errorf("solve: Run: iteration %d: %w", k, err)
		}

		for s, r := range results {
			vp.Cur()[s] = r.Value
		}
		opts.Property.Step(vp.Cur())
		for s, r := range results {
			strat.Record(k, s, r.ActionIndex, r.Value, opts.Reduction)
		}

		valuefunc.LastDiff(diff, vp.Cur(), vp.Prev())
		residual := valuefunc.Residual(diff)
		k++
		logger.Debug("rvimdp: iteration complete", "k", k, "residual", residual)

		if opts.Callback != nil {
			if cbErr := opts.Callback(vp.Cur(), k); cbErr != nil {
				logger.Info("rvimdp: iteration aborted by callback", "k", k)

				return vp.Cur(), k, residual, strat, rverrors.WrapCallback(cbErr)
			}
		}

		if opts.Property.Terminate(k, residual) {
			strat.Finalize()
			logger.Info("rvimdp: converged", "k", k, "residual", residual)

			return vp.Cur(), k, residual, strat, nil
		}

		if opts.MaxIterations > 0 && k >= opts.MaxIterations {
			strat.Finalize()
			logger.Info("rvimdp: iteration cap reached without convergence", "k", k, "residual", residual)

			return vp.Cur(), k, residual, strat, &rverrors.NotConvergedError{
				Iterations: k,
				Residual:   residual,
				Epsilon:    opts.Epsilon,
			}
		}

		vp.Swap()
	}
}

// SPDX-License-Identifier: MIT

// Package bellman implements the (non-factored) robust Bellman operator
// (spec section 4.4): for each source state, run the O-maximization
// kernel over every available action's column, reduce the resulting
// expectations by max or min (with first-action-wins tie-breaking), and
// record the per-state improvement.
//
// Parallelism across source states is implemented with
// golang.org/x/sync/errgroup (grounded on its use in the example
// pack's websocket-client fan-out), one private order.Workspace and
// assigned-distribution buffer per worker so no state shares mutable
// scratch with another.
package bellman

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/rvimdp/model"
	"github.com/katalvlaran/rvimdp/omax"
	"github.com/katalvlaran/rvimdp/order"
	"github.com/katalvlaran/rvimdp/rverrors"
	"github.com/katalvlaran/rvimdp/rvtypes"
	"github.com/katalvlaran/rvimdp/strategy"
)

// StepResult is the outcome of one Bellman step for a single source
// state: the reduced value and the index (within [0, NumActions(s)))
// of the action that attained it.
type StepResult struct {
	Value         float64
	ActionIndex   int
	StrategyDelta float64 // Value minus the previous value at this state, for strategy-cache comparison
}

// Step runs the Bellman operator for every source state of m against
// value vector V (indexed by target state), in direction dir, reducing
// per-state action expectations via reduction. prevV supplies the
// state's previous value (used only to compute StrategyDelta; pass nil
// to leave StrategyDelta at 0 for every state). workers bounds the
// number of goroutines (1 disables parallelism entirely).
//
// strat, when it is a *strategy.Given, restricts every state to its
// prescribed action instead of reducing over the full action set (spec
// section 4.6: Given "skip[s] reduction by taking only the prescribed
// column", so a fixed strategy can be evaluated rather than re-optimized).
// Any other Cache (including nil) leaves Step's behavior unchanged: full
// argmax/argmin over every available action.
//
// Step returns rverrors.ErrShapeMismatch for any state with no available
// actions (spec section 8's "Empty action set"), and otherwise the first
// error any worker's O-maximization kernel call produces (per spec
// section 4.4, InvalidAmbiguitySet is fatal and cancels the remaining
// work) via errgroup's first-error-wins Wait.
func Step(ctx context.Context, m *model.Model, V []float64, prevV []float64, dir rvtypes.Direction, reduction rvtypes.Reduction, workers int, strat strategy.Cache) ([]StepResult, error) {
	n := m.NumStates()
	results := make([]StepResult, n)

	given, evaluateGiven := strat.(*strategy.Given)

	if workers < 1 {
		workers = 1
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for s := 0; s < n; s++ {
		s := s
		group.Go(func() error {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			default:
			}

			lo, hi := m.ActionRange(s)
			if hi == lo {
				return fmt.Errorf("bellman: Step: state %d has no available actions: %w", s, rverrors.ErrShapeMismatch)
			}

			ws := order.New(m.Gamma().NumTargets())
			buf := m.Gamma().NewBuffer()

			var best float64
			var bestAction int
			if evaluateGiven {
				bestAction = given.Action(s)
				if bestAction < 0 || bestAction >= hi-lo {
					return fmt.Errorf("bellman: Step: state %d prescribed action %d out of [0,%d): %w", s, bestAction, hi-lo, rverrors.ErrShapeMismatch)
				}
				res, err := omax.Column(m.Gamma(), lo+bestAction, V, dir, ws, buf, false)
				if err != nil {
					return err
				}
				best = res.Expectation
			} else {
				best = reduction.Worst()
				bestAction = -1
				for col := lo; col < hi; col++ {
					res, err := omax.Column(m.Gamma(), col, V, dir, ws, buf, false)
					if err != nil {
						return err
					}
					if bestAction < 0 || reduction.Better(res.Expectation, best) {
						best = res.Expectation
						bestAction = col - lo
					}
				}
			}

			delta := 0.0
			if prevV != nil {
				delta = best - prevV[s]
			}
			results[s] = StepResult{Value: best, ActionIndex: bestAction, StrategyDelta: delta}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

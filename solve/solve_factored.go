// SPDX-License-Identifier: MIT
package solve

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/rvimdp/factored"
	"github.com/katalvlaran/rvimdp/jointindex"
	"github.com/katalvlaran/rvimdp/model"
	"github.com/katalvlaran/rvimdp/rverrors"
	"github.com/katalvlaran/rvimdp/strategy"
	"github.com/katalvlaran/rvimdp/valuefunc"
)

// RunFactored is Run's counterpart for a factored (fIMDP/odIMDP) model:
// the same iteration driver loop (spec section 4.9), but each joint
// state's per-action expectation comes from the recursive axis-by-axis
// contraction (factored.Contract) over the product next-state space
// rather than bellman.Step's flat per-column O-maximization. Options,
// property.Property and strategy.Cache are unchanged and unaware which
// driver called them: both hooks only ever see a flat V/action-index
// view of whatever joint space the driver flattens here, via
// jointindex.Flatten/Unflatten.
//
// RunFactored returns ErrShapeMismatch if fm is nil, Options.Property is
// nil, or fm declares zero joint actions (spec section 8's "Empty action
// set", generalized to the product action space).
func RunFactored(ctx context.Context, fm *model.FactoredModel, opts Options) ([]float64, int, float64, strategy.Cache, error) {
	if fm == nil {
		return nil, 0, 0, nil, fmt.Errorf("solve: RunFactored: model is nil: %w", rverrors.ErrShapeMismatch)
	}
	if opts.Property == nil {
		return nil, 0, 0, nil, fmt.Errorf("solve: RunFactored: Options.Property is nil: %w", rverrors.ErrShapeMismatch)
	}

	numJointActions := fm.NumJointActions()
	if numJointActions == 0 {
		return nil, 0, 0, nil, fmt.Errorf("solve: RunFactored: model declares zero joint actions: %w", rverrors.ErrShapeMismatch)
	}

	strat := opts.Strategy
	if strat == nil {
		strat = strategy.None{}
	}
	given, evaluateGiven := strat.(*strategy.Given)

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	n := fm.NumJointStates()
	vp := valuefunc.New(n)
	opts.Property.Initialize(vp.Cur())
	vp.CopyCurrentToPrevious()

	diff := make([]float64, n)
	stateShapes := fm.StateShapes()
	actionShapes := fm.ActionShapes()
	k := 0

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	for {
		prev := vp.Prev()
		cur := vp.Cur()
		actionIndex := make([]int, n)

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

				sc := factored.NewScratch(fm)
				stateAssignment := jointindex.Unflatten(stateShapes, s)

				contractFor := func(a int) (float64, error) {
					actionAssignment := jointindex.Unflatten(actionShapes, a)
					return factored.Contract(fm, prev, func(axis int) int {
						return fm.MarginalColumn(axis, actionAssignment, stateAssignment)
					}, opts.Direction, sc)
				}

				var best float64
				var bestAction int
				if evaluateGiven {
					bestAction = given.Action(s)
					if bestAction < 0 || bestAction >= numJointActions {
						return fmt.Errorf("solve: RunFactored: joint state %d prescribed action %d out of [0,%d): %w", s, bestAction, numJointActions, rverrors.ErrShapeMismatch)
					}
					v, err := contractFor(bestAction)
					if err != nil {
						return err
					}
					best = v
				} else {
					best = opts.Reduction.Worst()
					bestAction = -1
					for a := 0; a < numJointActions; a++ {
						v, err := contractFor(a)
						if err != nil {
							return err
						}
						if bestAction < 0 || opts.Reduction.Better(v, best) {
							best = v
							bestAction = a
						}
					}
				}

				cur[s] = best
				actionIndex[s] = bestAction

				return nil
			})
		}

		if err := group.Wait(); err != nil {
			return nil, k, 0, nil, fmt.Errorf("solve: RunFactored: iteration %d: %w", k, err)
		}

		opts.Property.Step(cur)
		for s := 0; s < n; s++ {
			strat.Record(k, s, actionIndex[s], cur[s], opts.Reduction)
		}

		valuefunc.LastDiff(diff, cur, prev)
		residual := valuefunc.Residual(diff)
		k++
		logger.Debug("rvimdp: factored iteration complete", "k", k, "residual", residual)

		if opts.Callback != nil {
			if cbErr := opts.Callback(cur, k); cbErr != nil {
				logger.Info("rvimdp: factored iteration aborted by callback", "k", k)

				return cur, k, residual, strat, rverrors.WrapCallback(cbErr)
			}
		}

		if opts.Property.Terminate(k, residual) {
			strat.Finalize()
			logger.Info("rvimdp: factored converged", "k", k, "residual", residual)

			return cur, k, residual, strat, nil
		}

		if opts.MaxIterations > 0 && k >= opts.MaxIterations {
			strat.Finalize()
			logger.Info("rvimdp: factored iteration cap reached without convergence", "k", k, "residual", residual)

			return cur, k, residual, strat, &rverrors.NotConvergedError{
				Iterations: k,
				Residual:   residual,
				Epsilon:    opts.Epsilon,
			}
		}

		vp.Swap()
	}
}

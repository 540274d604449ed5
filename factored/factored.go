// SPDX-License-Identifier: MIT

// Package factored implements the recursive (axis-by-axis) robust
// Bellman backup over a product next-state space (spec section 4.5):
// given a value tensor V (flat, row-major, shape = the model's
// StateShapes) and a fixed (action, state) parent assignment, it
// computes sup/inf over the product ambiguity set
// Gamma_1 x ... x Gamma_n of Sum_{s'} Pi_i gamma_i(s'_i) V(s'), by
// contracting one axis at a time with the 1-D omax kernel.
//
// This nested contraction is valid because the ambiguity set is
// (s,a)-rectangular (a Cartesian product across the n next-state
// variables) and the objective is multilinear in the gamma_i: fixing
// every axis but the first (axis 0, the outermost of the row-major
// layout) and optimizing it collapses one dimension of V into a
// (n-1)-dimensional tensor, which is exactly the next recursive step's
// input. Axes are contracted in marginal order, axis 0 first.
//
// Grounded on gridgraph.go's index/Coordinate row-major flat-index
// arithmetic (generalized to n axes by package jointindex) for the
// tensor layout, and on omax.Column for each axis's 1-D optimization.
package factored

import (
	"github.com/katalvlaran/rvimdp/model"
	"github.com/katalvlaran/rvimdp/omax"
	"github.com/katalvlaran/rvimdp/order"
	"github.com/katalvlaran/rvimdp/rvtypes"
)

// Scratch is one worker's reusable contraction buffers: one value
// buffer per contraction stage (a copy of V, then each successively
// one axis smaller), and small per-axis local-value and omax buffers
// sized to the model's largest state-variable cardinality.
// Workers must not share a Scratch.
type Scratch struct {
	ws      *order.Workspace
	local   []float64   // length = max state-variable cardinality
	omaxBuf []float64   // length = max state-variable cardinality
	tensors [][]float64 // tensors[k] holds the result after contracting k axes; reused across calls
}

// NewScratch allocates a Scratch sized for fm.
func NewScratch(fm *model.FactoredModel) *Scratch {
	shapes := fm.StateShapes()
	maxCard := 1
	for _, d := range shapes {
		if d > maxCard {
			maxCard = d
		}
	}

	tensorSize := 1
	for _, d := range shapes {
		tensorSize *= d
	}

	tensors := make([][]float64, len(shapes)+1)
	size := tensorSize
	for k := 0; k <= len(shapes); k++ {
		tensors[k] = make([]float64, size)
		if k < len(shapes) {
			size /= shapes[k]
		}
	}

	return &Scratch{
		ws:      order.New(maxCard),
		local:   make([]float64, maxCard),
		omaxBuf: make([]float64, maxCard),
		tensors: tensors,
	}
}

// Contract runs the full n-axis recursive O-maximization: V must have
// length Product(fm.StateShapes()) in row-major order; parentColumn(i)
// must return the column index (within marginal i's own ambiguity set)
// corresponding to the fixed (action,state) assignment being
// evaluated, for each axis i. Contract returns the scalar expectation.
func Contract(fm *model.FactoredModel, V []float64, parentColumn func(axis int) int, dir rvtypes.Direction, sc *Scratch) (float64, error) {
	shapes := fm.StateShapes()
	n := len(shapes)

	copy(sc.tensors[0], V)
	cur := sc.tensors[0]
	remaining := len(cur)

	for axis := 0; axis < n; axis++ {
		d := shapes[axis]
		remaining /= d
		set := fm.Marginal(axis).Gamma
		col := parentColumn(axis)

		out := sc.tensors[axis+1][:remaining]
		for rest := 0; rest < remaining; rest++ {
			local := sc.local[:d]
			for s0 := 0; s0 < d; s0++ {
				local[s0] = cur[s0*remaining+rest]
			}

			res, err := omax.Column(set, col, local, dir, sc.ws, sc.omaxBuf[:d], false)
			if err != nil {
				return 0, err
			}
			out[rest] = res.Expectation
		}

		cur = out
	}

	return cur[0], nil
}

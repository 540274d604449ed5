// SPDX-License-Identifier: MIT

// Package omax implements the O-maximization kernel (C3): given one
// column of an ambiguity set, a value vector V and a direction, it
// computes the feasible distribution gamma that attains
// sup_gamma Sum(gamma*V) (Upper) or inf_gamma Sum(gamma*V) (Lower), in
// closed form, by greedily filling targets in V-sorted order up to their
// upper bound until the remaining free mass is exhausted.
//
// This is the design's novel core — no single teacher file implements
// it. Its code shape (validate -> allocate/reuse -> fixed-order loop ->
// return) is grounded on matrix/impl_linear_algebra.go's Add/Sub
// convention (validate inputs, single fixed loop order for determinism,
// no hidden allocation in the hot path).
package omax

import (
	"github.com/katalvlaran/rvimdp/ambiguity"
	"github.com/katalvlaran/rvimdp/order"
	"github.com/katalvlaran/rvimdp/rvtypes"
)

// Result is the outcome of one O-maximization: the expectation
// Sum(gamma*V) and, when the caller requested it, the assigned
// distribution gamma itself (aliasing the caller-supplied buffer).
type Result struct {
	Expectation float64
	Gamma       []float64 // nil unless the caller asked for it; length NNZ(col)
}

// Column runs the O-maximization kernel on column j of set, against
// value vector V (indexed by target-state row), in direction dir.
//
// buf must have length >= set.NNZ(j) (typically set.NewBuffer(), owned
// by the calling worker); it is always written into slot-by-slot even
// when the caller discards Result.Gamma, so the same buffer can be
// reused across many columns without reallocating.
//
// ws is the caller's (per-worker) order.Workspace; Column calls ws.Sort
// once.
//
// keepGamma controls whether Result.Gamma aliases buf (true) or is left
// nil (false, the common case inside a hot Bellman loop that only needs
// the expectation).
func Column(set ambiguity.Set, j int, V []float64, dir rvtypes.Direction, ws *order.Workspace, buf []float64, keepGamma bool) (Result, error) {
	nnz := set.NNZ(j)
	if nnz == 0 {
		// Empty column: vacuous distribution, expectation 0 regardless
		// of V (see the ambiguity.Set interface doc).
		return Result{Expectation: 0}, nil
	}
	if len(buf) < nnz {
		return Result{}, shapef("buffer length %d smaller than column %d NNZ %d", len(buf), j, nnz)
	}

	value := func(slot int) float64 { return V[set.RowAt(j, slot)] }
	rowIndex := func(slot int) int { return set.RowAt(j, slot) }
	perm := ws.Sort(nnz, value, rowIndex, dir)

	gamma := buf[:nnz]
	remaining := 1 - set.SumLower(j)
	if remaining < 0 {
		// Rounding can push a valid-at-construction column's computed
		// slo a hair above 1 in float64; clamp rather than raise, per
		// spec section 7 ("numerical underflow ... clamped to zero and
		// does not raise").
		remaining = 0
	}

	var expectation float64
	for k := 0; k < nnz; k++ {
		gamma[k] = set.LowerAt(j, k)
		expectation += gamma[k] * value(k)
	}

	var lastTouched = -1
	for _, slot := range perm {
		if remaining <= 0 {
			break
		}
		g := set.GapAt(j, slot)
		delta := g
		if delta > remaining {
			delta = remaining
		}
		if delta == 0 {
			continue
		}
		gamma[slot] += delta
		expectation += delta * value(slot)
		remaining -= delta
		lastTouched = slot
	}

	// Absorb float rounding against the simplex constraint: if a sliver
	// of remaining mass is left because of accumulated subtraction
	// error, push it onto the last target we actually touched (or, if
	// we never touched one because every gap was exactly 0, onto the
	// first slot in perm) rather than silently under-summing gamma.
	if remaining > 0 {
		target := lastTouched
		if target < 0 && nnz > 0 {
			target = perm[0]
		}
		if target >= 0 {
			gamma[target] += remaining
			expectation += remaining * value(target)
		}
	}

	result := Result{Expectation: expectation}
	if keepGamma {
		result.Gamma = gamma
	}

	return result, nil
}

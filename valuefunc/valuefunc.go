// SPDX-License-Identifier: MIT

// Package valuefunc implements the value-function pair (spec section
// 4.7): two flat buffers, V_prev and V_cur, rotated each iteration
// rather than reallocated, plus the infinity-norm residual the
// iteration driver checks for convergence.
//
// Grounded directly on dtw.go's two-row DP rotation
// (`prevRow, currRow = currRow, prevRow`), generalized from a
// fixed-size float64 row to a value function of any length. A Pair
// stores only flat buffers, no shape: a factored model's tensor-shaped
// value function is held in its row-major flattened form.
package valuefunc

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Pair holds the current and previous value function, both flat
// buffers of the same length (Product(shape) for a factored model,
// NumStates for a non-factored one).
type Pair struct {
	prev, cur []float64
}

// New allocates a Pair of length n, both buffers zero-initialized.
func New(n int) *Pair {
	return &Pair{prev: make([]float64, n), cur: make([]float64, n)}
}

// NewFrom allocates a Pair whose V_cur starts as a copy of init
// (V_prev starts zeroed); used to seed value iteration with a reward
// vector (spec section 9's "reward property initializes V0=r").
func NewFrom(init []float64) *Pair {
	p := &Pair{prev: make([]float64, len(init)), cur: make([]float64, len(init))}
	copy(p.cur, init)

	return p
}

// Cur returns the current value function (read/write: the driver
// writes this iteration's freshly computed values into it).
func (p *Pair) Cur() []float64 { return p.cur }

// Prev returns the previous iteration's value function (read-only
// from the driver's perspective once Swap has run).
func (p *Pair) Prev() []float64 { return p.prev }

// Swap rotates cur into prev and prev (now logically stale, about to
// be overwritten) into cur, without reallocating either buffer.
func (p *Pair) Swap() { p.prev, p.cur = p.cur, p.prev }

// CopyCurrentToPrevious copies Cur into Prev element-wise, without
// rotating the buffers — used when a caller needs Prev to reflect
// Cur's contents without discarding Cur's own backing array (e.g.
// before further in-place mutation of Cur within the same step).
func (p *Pair) CopyCurrentToPrevious() {
	copy(p.prev, p.cur)
}

// LastDiff computes V_cur - V_prev in place into dst (which must have
// the same length as Cur/Prev; the driver typically passes a scratch
// buffer it owns), by element-wise subtraction into dst, so it performs
// no hidden allocation.
func LastDiff(dst, cur, prev []float64) {
	for i := range dst {
		dst[i] = cur[i] - prev[i]
	}
}

// Residual returns the infinity norm (max absolute value) of diff, the
// convergence statistic the iteration driver compares against epsilon.
func Residual(diff []float64) float64 {
	return floats.Norm(diff, math.Inf(1))
}

// SPDX-License-Identifier: MIT
package ambiguity

import (
	"gonum.org/v1/gonum/mat"
)

// DenseSet is a column-major-iterated interval-ambiguity matrix backed by
// a pair of *mat.Dense (one per bound), row-indexed by target state and
// column-indexed by source-action pair. Using gonum's Dense here (rather
// than a hand-rolled flat slice, as the teacher's own Dense type does for
// its unrelated graph-adjacency domain) buys column views (ColView) that
// are O(1) regardless of the matrix's physical storage order, and keeps
// this package's numeric storage idiomatic with the rest of the example
// pack's gonum-based code.
//
// Grounded on matrix/dense.go's validated-construction-then-flat-storage
// shape, generalized from a single float64 matrix to the (lo, up, gap)
// triple this domain needs.
type DenseSet struct {
	n, m int
	lo   *mat.Dense // n x m
	up   *mat.Dense // n x m
	gap  *mat.Dense // n x m, gap = up - lo
	slo  []float64  // length m, Sum(lo) per column
}

// NewDense builds a DenseSet from lo and up, both n x m. It validates
// every column per spec section 3 before accepting the matrices;
// validation failure (including lo and up of different dimensions)
// returns a wrapped rverrors.ErrInvalidAmbiguitySet.
func NewDense(lo, up *mat.Dense) (*DenseSet, error) {
	if lo == nil || up == nil {
		return nil, invalidf("nil lo/up matrix")
	}
	rLo, cLo := lo.Dims()
	rUp, cUp := up.Dims()
	if rLo != rUp || cLo != cUp {
		return nil, invalidf("lo is %dx%d but up is %dx%d", rLo, cLo, rUp, cUp)
	}
	n, m := rLo, cLo

	gap := mat.NewDense(n, m, nil)
	slo := make([]float64, m)
	entries := make([]columnEntry, 0, n)
	for j := 0; j < m; j++ {
		entries = entries[:0]
		for i := 0; i < n; i++ {
			entries = append(entries, columnEntry{row: i, lo: lo.At(i, j), up: up.At(i, j)})
		}
		s, err := validateColumn(j, entries)
		if err != nil {
			return nil, err
		}
		slo[j] = s
		for i := 0; i < n; i++ {
			gap.Set(i, j, up.At(i, j)-lo.At(i, j))
		}
	}

	return &DenseSet{n: n, m: m, lo: lo, up: up, gap: gap, slo: slo}, nil
}

func (d *DenseSet) NumTargets() int { return d.n }
func (d *DenseSet) NumColumns() int { return d.m }

func (d *DenseSet) SumLower(j int) float64 { return d.slo[j] }

// NNZ is always n for a dense set: every row is an explicit slot, even
// ones where gap==0 (a degenerate point distribution at that target).
func (d *DenseSet) NNZ(int) int { return d.n }

func (d *DenseSet) RowAt(_, k int) int { return k }

func (d *DenseSet) LowerAt(j, k int) float64 { return d.lo.At(k, j) }

func (d *DenseSet) GapAt(j, k int) float64 { return d.gap.At(k, j) }

func (d *DenseSet) NewBuffer() []float64 { return make([]float64, d.n) }

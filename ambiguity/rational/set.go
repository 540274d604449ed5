// SPDX-License-Identifier: MIT

// Package rational is the exact-arithmetic sibling of package ambiguity
// (spec section 9's "polymorphism over scalar type"): the same CSC
// interval-ambiguity representation, but over *big.Rat instead of
// float64, so O-maximization needs no rounding clamp at all. It exists
// as a second concrete package rather than a generic ambiguity.Set[T],
// because *big.Rat has no usable operator set for Go generics — see
// DESIGN.md and SPEC_FULL.md section 9.
package rational

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/rvimdp/rverrors"
)

// Set is a CSC interval-ambiguity matrix over exact rationals.
type Set struct {
	n      int
	colptr []int
	rowval []int
	lo, up []*big.Rat
	slo    []*big.Rat
}

// New builds a Set, validating lo<=up per entry and 0<=Sum(lo)<=1<=Sum(up)
// per column exactly (no tolerance — rationals compare exactly).
func New(n int, colptr, rowval []int, lo, up []*big.Rat) (*Set, error) {
	if len(colptr) == 0 {
		return nil, fmt.Errorf("ambiguity/rational: colptr must have at least one entry: %w", rverrors.ErrShapeMismatch)
	}
	m := len(colptr) - 1
	nnz := colptr[m]
	if len(rowval) != nnz || len(lo) != nnz || len(up) != nnz {
		return nil, fmt.Errorf("ambiguity/rational: rowval/lo/up length mismatch with colptr[m]=%d: %w", nnz, rverrors.ErrInvalidAmbiguitySet)
	}

	one := big.NewRat(1, 1)
	zero := new(big.Rat)
	slo := make([]*big.Rat, m)
	for j := 0; j < m; j++ {
		start, end := colptr[j], colptr[j+1]
		sLo := new(big.Rat)
		sUp := new(big.Rat)
		last := -1
		for k := start; k < end; k++ {
			row := rowval[k]
			if row < 0 || row >= n {
				return nil, fmt.Errorf("ambiguity/rational: column %d row %d out of range: %w", j, row, rverrors.ErrShapeMismatch)
			}
			if row <= last {
				return nil, fmt.Errorf("ambiguity/rational: column %d rowval not ascending: %w", j, rverrors.ErrInvalidAmbiguitySet)
			}
			last = row
			if lo[k].Sign() < 0 || up[k].Cmp(one) > 0 || lo[k].Cmp(up[k]) > 0 {
				return nil, fmt.Errorf("ambiguity/rational: column %d row %d bound out of range: %w", j, row, rverrors.ErrInvalidAmbiguitySet)
			}
			sLo.Add(sLo, lo[k])
			sUp.Add(sUp, up[k])
		}
		if end > start {
			if sLo.Cmp(one) > 0 {
				return nil, fmt.Errorf("ambiguity/rational: column %d Sum(lo)>1: %w", j, rverrors.ErrInvalidAmbiguitySet)
			}
			if sUp.Cmp(one) < 0 {
				return nil, fmt.Errorf("ambiguity/rational: column %d Sum(up)<1: %w", j, rverrors.ErrInvalidAmbiguitySet)
			}
		}
		slo[j] = sLo
	}
	_ = zero

	return &Set{n: n, colptr: colptr, rowval: rowval, lo: lo, up: up, slo: slo}, nil
}

func (s *Set) NumTargets() int { return s.n }
func (s *Set) NumColumns() int { return len(s.colptr) - 1 }
func (s *Set) NNZ(j int) int   { return s.colptr[j+1] - s.colptr[j] }
func (s *Set) RowAt(j, k int) int       { return s.rowval[s.colptr[j]+k] }
func (s *Set) LowerAt(j, k int) *big.Rat { return s.lo[s.colptr[j]+k] }
func (s *Set) GapAt(j, k int) *big.Rat {
	g := new(big.Rat)
	return g.Sub(s.up[s.colptr[j]+k], s.lo[s.colptr[j]+k])
}
func (s *Set) SumLower(j int) *big.Rat { return s.slo[j] }

// SPDX-License-Identifier: MIT

// Package rational is the exact-arithmetic sibling of package omax: the
// identical greedy O-maximization algorithm, over *big.Rat, with no
// rounding clamp — exact arithmetic has nothing to clamp (spec section
// 4.3: "Rational-number implementations must carry exact arithmetic and
// no clamp is needed").
package rational

import (
	"math/big"
	"sort"

	aset "github.com/katalvlaran/rvimdp/ambiguity/rational"
	"github.com/katalvlaran/rvimdp/rvtypes"
)

// Result mirrors omax.Result over *big.Rat.
type Result struct {
	Expectation *big.Rat
	Gamma       []*big.Rat
}

// Column runs exact O-maximization on column j of set against value
// vector V (one *big.Rat per target state).
func Column(set *aset.Set, j int, V []*big.Rat, dir rvtypes.Direction) Result {
	nnz := set.NNZ(j)
	expectation := new(big.Rat)
	if nnz == 0 {
		return Result{Expectation: expectation}
	}

	perm := make([]int, nnz)
	for k := range perm {
		perm[k] = k
	}
	rowOf := make([]int, nnz)
	for k := range perm {
		rowOf[k] = set.RowAt(j, k)
	}
	sort.Slice(perm, func(a, b int) bool {
		sa, sb := perm[a], perm[b]
		c := V[rowOf[sa]].Cmp(V[rowOf[sb]])
		if c != 0 {
			if dir == rvtypes.Upper {
				return c > 0
			}
			return c < 0
		}
		return rowOf[sa] < rowOf[sb]
	})

	gamma := make([]*big.Rat, nnz)
	for k := 0; k < nnz; k++ {
		gamma[k] = new(big.Rat).Set(set.LowerAt(j, k))
		term := new(big.Rat).Mul(gamma[k], V[rowOf[k]])
		expectation.Add(expectation, term)
	}

	remaining := new(big.Rat).Sub(big.NewRat(1, 1), set.SumLower(j))
	for _, slot := range perm {
		if remaining.Sign() <= 0 {
			break
		}
		gap := set.GapAt(j, slot)
		delta := new(big.Rat).Set(gap)
		if delta.Cmp(remaining) > 0 {
			delta.Set(remaining)
		}
		if delta.Sign() == 0 {
			continue
		}
		gamma[slot].Add(gamma[slot], delta)
		term := new(big.Rat).Mul(delta, V[rowOf[slot]])
		expectation.Add(expectation, term)
		remaining.Sub(remaining, delta)
	}

	return Result{Expectation: expectation, Gamma: gamma}
}

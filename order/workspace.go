// SPDX-License-Identifier: MIT

// Package order implements the ordering workspace (C2): for a column of
// an ambiguity set and a value vector V, it produces a permutation of
// the column's explicit target slots sorted by V — ascending for
// rvtypes.Lower, descending for rvtypes.Upper — with ties broken by
// target row index so the permutation (and everything the O-maximization
// kernel derives from it) is deterministic across runs and worker counts.
//
// Grounded on the teacher's dijkstra package for doc/option conventions;
// the algorithm itself is a plain sort.Slice rather than dijkstra's
// incremental-extraction heap, because the kernel needs the whole order
// up front, not one minimum at a time (see DESIGN.md).
package order

import (
	"sort"

	"github.com/katalvlaran/rvimdp/rvtypes"
)

// Workspace holds a reusable permutation buffer, owned by exactly one
// worker (spec section 5: "private sort workspace ... avoiding all
// synchronization in the inner loop"). Re-sort it once per column per
// iteration via Sort.
type Workspace struct {
	perm []int
}

// New allocates a Workspace whose buffer can hold up to capacity slots.
func New(capacity int) *Workspace {
	return &Workspace{perm: make([]int, 0, capacity)}
}

// Sort fills w's internal buffer with a permutation of [0, nnz) — slot
// indices into a single ambiguity-set column, not target-state row
// indices — ordered by value(slot) according to dir, and returns it. The
// returned slice aliases w's internal buffer; it is invalidated by the
// next call to Sort on the same Workspace.
//
// value is called O(nnz log nnz) times (twice per sort comparison) and
// rowIndex is used only for the
// deterministic tie-break, so callers typically pass closures over an
// ambiguity.Set column and a value vector V (value(k) = V[set.RowAt(j,k)])
// rather than copying data into Workspace.
func (w *Workspace) Sort(nnz int, value func(slot int) float64, rowIndex func(slot int) int, dir rvtypes.Direction) []int {
	if cap(w.perm) < nnz {
		w.perm = make([]int, nnz)
	} else {
		w.perm = w.perm[:nnz]
	}
	for k := 0; k < nnz; k++ {
		w.perm[k] = k
	}

	less := func(a, b int) bool {
		sa, sb := w.perm[a], w.perm[b]
		va, vb := value(sa), value(sb)
		if va != vb {
			if dir == rvtypes.Upper {
				return va > vb // descending
			}
			return va < vb // ascending
		}
		// deterministic tie-break: ascending target row index regardless
		// of direction, so output is reproducible independent of dir.
		return rowIndex(sa) < rowIndex(sb)
	}
	sort.Slice(w.perm, less)

	return w.perm
}

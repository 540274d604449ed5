// SPDX-License-Identifier: MIT

// Package ambiguity: conversions between the Dense and Sparse backends.
//
// Grounded on the teacher's converterts package, whose role in lvlath is
// exactly this — adapting one concrete matrix/graph representation into
// another while preserving logical content. There, the package was a
// documentation-only placeholder; here it earns its keep.
package ambiguity

// ToSparse converts a DenseSet into an equivalent SparseSet, dropping
// exact-zero-gap-and-zero-lower rows (a target state a column assigns no
// probability to at all) from the explicit storage. Rows with lo>0 or
// gap>0 are kept explicit even if gap==0 exactly (a degenerate point
// mass still needs its lo recorded).
func ToSparse(d *DenseSet) (*SparseSet, error) {
	n, m := d.NumTargets(), d.NumColumns()
	colptr := make([]int, m+1)
	var rowval []int
	var lo, up []float64

	for j := 0; j < m; j++ {
		colptr[j] = len(rowval)
		for i := 0; i < n; i++ {
			l, g := d.LowerAt(j, i), d.GapAt(j, i)
			if l == 0 && g == 0 {
				continue
			}
			rowval = append(rowval, i)
			lo = append(lo, l)
			up = append(up, l+g)
		}
	}
	colptr[m] = len(rowval)

	return NewSparse(n, colptr, rowval, lo, up)
}

// ToDense materializes a SparseSet as a DenseSet, filling implicit rows
// with lo=up=0.
func ToDense(s *SparseSet) (*DenseSet, error) {
	n, m := s.NumTargets(), s.NumColumns()
	lo := newZeroDense(n, m)
	up := newZeroDense(n, m)
	for j := 0; j < m; j++ {
		for k := 0; k < s.NNZ(j); k++ {
			i := s.RowAt(j, k)
			lo.Set(i, j, s.LowerAt(j, k))
			up.Set(i, j, s.LowerAt(j, k)+s.GapAt(j, k))
		}
	}

	return NewDense(lo, up)
}

// SPDX-License-Identifier: MIT
package ambiguity

// SparseSet is a CSC (compressed sparse column) interval-ambiguity
// matrix: lo, up and the derived gap all share colptr/rowval, matching
// the invariant in spec section 3 ("For sparse matrices, lo and up
// (hence gap) share colptr and rowval"). Rows within a column are stored
// ascending by index, which both lets validation detect duplicates in
// one linear pass and gives the ordering workspace (package order) a
// stable base order before it re-sorts by V.
type SparseSet struct {
	n      int
	colptr []int // length m+1
	rowval []int // length nnz, ascending within each column
	lo     []float64
	up     []float64
	gap    []float64
	slo    []float64 // length m
	maxNNZ int
}

// NewSparse builds a SparseSet for a target-state space of size n from
// CSC arrays. colptr must have length m+1 and be non-decreasing; rowval,
// lo and up must all have length colptr[m] and rowval must be strictly
// ascending within each column's [colptr[j], colptr[j+1]) range.
func NewSparse(n int, colptr, rowval []int, lo, up []float64) (*SparseSet, error) {
	if n < 0 {
		return nil, shapef("negative target count %d", n)
	}
	if len(colptr) == 0 {
		return nil, shapef("colptr must have at least one entry")
	}
	m := len(colptr) - 1
	nnz := colptr[m]
	if len(rowval) != nnz || len(lo) != nnz || len(up) != nnz {
		return nil, invalidf("rowval/lo/up length %d/%d/%d must equal colptr[m]=%d", len(rowval), len(lo), len(up), nnz)
	}

	gap := make([]float64, nnz)
	slo := make([]float64, m)
	maxNNZ := 0
	for j := 0; j < m; j++ {
		start, end := colptr[j], colptr[j+1]
		if end < start {
			return nil, shapef("colptr not non-decreasing at column %d", j)
		}
		if end-start > maxNNZ {
			maxNNZ = end - start
		}

		entries := make([]columnEntry, 0, end-start)
		lastRow := -1
		for k := start; k < end; k++ {
			row := rowval[k]
			if row < 0 || row >= n {
				return nil, shapef("column %d entry %d: row %d out of [0,%d)", j, k, row, n)
			}
			if row <= lastRow {
				return nil, invalidf("column %d: rowval not strictly ascending at entry %d", j, k)
			}
			lastRow = row
			entries = append(entries, columnEntry{row: row, lo: lo[k], up: up[k]})
		}

		s, err := validateColumn(j, entries)
		if err != nil {
			return nil, err
		}
		slo[j] = s
		for k := start; k < end; k++ {
			gap[k] = up[k] - lo[k]
		}
	}

	return &SparseSet{
		n: n, colptr: colptr, rowval: rowval,
		lo: lo, up: up, gap: gap, slo: slo, maxNNZ: maxNNZ,
	}, nil
}

func (s *SparseSet) NumTargets() int { return s.n }
func (s *SparseSet) NumColumns() int { return len(s.colptr) - 1 }

func (s *SparseSet) SumLower(j int) float64 { return s.slo[j] }

func (s *SparseSet) NNZ(j int) int { return s.colptr[j+1] - s.colptr[j] }

func (s *SparseSet) RowAt(j, k int) int { return s.rowval[s.colptr[j]+k] }

func (s *SparseSet) LowerAt(j, k int) float64 { return s.lo[s.colptr[j]+k] }

func (s *SparseSet) GapAt(j, k int) float64 { return s.gap[s.colptr[j]+k] }

func (s *SparseSet) NewBuffer() []float64 { return make([]float64, s.maxNNZ) }

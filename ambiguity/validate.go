// SPDX-License-Identifier: MIT
package ambiguity

import "math"

// columnEntry is the validator's column-agnostic view of one explicit
// (lo, up) pair, used so the same checker serves both Dense and Sparse
// construction without either backend exposing its storage layout.
type columnEntry struct {
	row    int
	lo, up float64
}

// validateColumn enforces the invariants from spec section 3 on a single
// column: every entry's lo/up must be finite, in [0,1], and lo<=up; the
// column sums must satisfy Sum(lo) <= 1 <= Sum(up). An empty column
// (len(entries)==0) is always valid (see the Set interface doc).
func validateColumn(col int, entries []columnEntry) (slo float64, err error) {
	if len(entries) == 0 {
		return 0, nil
	}

	seen := make(map[int]struct{}, len(entries))
	var sup float64
	for _, e := range entries {
		if math.IsNaN(e.lo) || math.IsNaN(e.up) || math.IsInf(e.lo, 0) || math.IsInf(e.up, 0) {
			return 0, invalidf("column %d row %d: non-finite bound (lo=%v up=%v)", col, e.row, e.lo, e.up)
		}
		if e.lo < 0 || e.up > 1 {
			return 0, invalidf("column %d row %d: bound out of [0,1] (lo=%v up=%v)", col, e.row, e.lo, e.up)
		}
		if e.lo > e.up {
			return 0, invalidf("column %d row %d: lo=%v > up=%v", col, e.row, e.lo, e.up)
		}
		if _, dup := seen[e.row]; dup {
			return 0, invalidf("column %d row %d: duplicate explicit entry", col, e.row)
		}
		seen[e.row] = struct{}{}

		slo += e.lo
		sup += e.up
	}

	const tol = 1e-9
	if slo > 1+tol {
		return 0, invalidf("column %d: Sum(lo)=%v exceeds 1", col, slo)
	}
	if sup < 1-tol {
		return 0, invalidf("column %d: Sum(up)=%v is below 1", col, sup)
	}

	return slo, nil
}

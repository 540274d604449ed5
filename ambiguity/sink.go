// SPDX-License-Identifier: MIT
package ambiguity

// SinkSet wraps an explicit-only Set and adds one more target row, the
// sink, that is never stored: its bounds are derived per-column instead of
// occupying an explicit (lo,up) slot. The sink's lower bound is always 0
// and its upper bound is 1-SumLower(j), so it always carries exactly
// enough slack to absorb whatever probability mass the column's explicit
// rows' lower bounds don't already claim — spec section 4.5's "a row
// beyond the explicit count absorbs mass 1 - Sum(gamma(explicit))".
//
// Because SinkSet still answers RowAt/LowerAt/GapAt for the sink slot
// (it is simply the last slot, k == inner.NNZ(j)), the sink participates
// in order.Workspace's V-sorted fill exactly like any explicit target: the
// O-maximization kernel can place mass on it ahead of, or behind, any
// explicit row depending on the sink's own V, rather than always absorbing
// whatever is left over after explicit rows are filled. This is what lets
// the recursive axis-by-axis contraction (package factored) sort the sink
// correctly against a marginal's explicit targets.
//
// A sink costs O(1) extra state per SinkSet regardless of column count or
// inner NNZ, so it keeps the sparse backend's memory-saving property: the
// caller never has to materialize an explicit row for "everything else."
type SinkSet struct {
	inner   Set
	sinkRow int
}

// NewSinkSet wraps inner (whose NumTargets() must already exclude the
// sink) and appends a sink row at index inner.NumTargets(). The result's
// NumTargets() is inner.NumTargets()+1.
func NewSinkSet(inner Set) *SinkSet {
	return &SinkSet{inner: inner, sinkRow: inner.NumTargets()}
}

func (s *SinkSet) NumTargets() int { return s.sinkRow + 1 }
func (s *SinkSet) NumColumns() int { return s.inner.NumColumns() }

// SumLower is unchanged by the sink: its own lower bound is always 0.
func (s *SinkSet) SumLower(j int) float64 { return s.inner.SumLower(j) }

func (s *SinkSet) NNZ(j int) int { return s.inner.NNZ(j) + 1 }

func (s *SinkSet) RowAt(j, k int) int {
	if k == s.inner.NNZ(j) {
		return s.sinkRow
	}
	return s.inner.RowAt(j, k)
}

func (s *SinkSet) LowerAt(j, k int) float64 {
	if k == s.inner.NNZ(j) {
		return 0
	}
	return s.inner.LowerAt(j, k)
}

// GapAt returns the sink's derived gap (1-SumLower(j), clamped to
// [0,1]) for its own slot, and delegates to inner otherwise.
func (s *SinkSet) GapAt(j, k int) float64 {
	if k == s.inner.NNZ(j) {
		remaining := 1 - s.inner.SumLower(j)
		if remaining < 0 {
			remaining = 0
		}
		if remaining > 1 {
			remaining = 1
		}
		return remaining
	}
	return s.inner.GapAt(j, k)
}

func (s *SinkSet) NewBuffer() []float64 {
	return make([]float64, len(s.inner.NewBuffer())+1)
}

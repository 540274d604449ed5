// SPDX-License-Identifier: MIT
package ambiguity

// Set is the shared logical interface over dense and sparse
// interval-ambiguity matrices (spec section 9: "polymorphism over
// backends ... an interface exposing column iteration, lower-row-sum
// query, and gap/row access"). Columns index source-action pairs; for a
// given column, only the first NNZ(col) "slots" are meaningful — dense
// sets have one slot per target state, sparse sets have one slot per
// explicit (lo,up) entry.
//
// A zero-NNZ column is not an error: it represents a source-action pair
// whose distribution has no explicit support (e.g. an action never
// taken, or a structurally terminal self-loop folded away upstream);
// the O-maximization kernel returns an expectation of exactly 0 for it
// without inspecting V.
type Set interface {
	// NumTargets returns n, the size of the target-state space (the
	// logical row count, even for sparse sets that never materialize
	// all n rows).
	NumTargets() int

	// NumColumns returns the number of source-action columns.
	NumColumns() int

	// SumLower returns the precomputed Sum(lo) for column j.
	SumLower(j int) float64

	// NNZ returns the number of explicit (lo,up) entries in column j.
	NNZ(j int) int

	// RowAt returns the target-state index of the k-th explicit entry
	// in column j, for k in [0, NNZ(j)).
	RowAt(j, k int) int

	// LowerAt returns lo for the k-th explicit entry in column j.
	LowerAt(j, k int) float64

	// GapAt returns up-lo for the k-th explicit entry in column j.
	GapAt(j, k int) float64

	// NewBuffer allocates a reusable assigned-probability buffer large
	// enough for any column's NNZ. Callers (one per worker, per spec
	// section 5's "private sort workspace and private assigned-
	// distribution buffer" requirement) slice it to [:NNZ(j)] before use.
	NewBuffer() []float64
}

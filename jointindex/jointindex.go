// SPDX-License-Identifier: MIT

// Package jointindex flattens and unflattens joint state/action tuples
// against a fixed per-variable shape, in row-major (last axis fastest)
// order. It backs both the factored model's dependency-graph column
// layout (action parents first, then state parents, per spec section
// 4.5) and the factored Bellman operator's tensor indexing (section
// 4.10's "n-axis joint-index flattening").
//
// Grounded on builder/impl_grid.go's row-major "r,c" coordinate scheme,
// generalized from two axes to n.
package jointindex

import "fmt"

// Card returns the cardinality of the Cartesian product of shape, i.e.
// Product(shape). An empty shape has cardinality 1 (the unit tuple).
func Card(shape []int) int {
	card := 1
	for _, s := range shape {
		card *= s
	}
	return card
}

// Flatten maps a tuple idx (one coordinate per axis, idx[i] in
// [0,shape[i])) to its row-major flat index in [0, Card(shape)).
//
// Flatten panics if len(idx) != len(shape); this is a programmer error
// (mismatched axis count), not a data-dependent failure, so it is not
// reported as an error. Coordinates are not range-checked per axis.
func Flatten(shape, idx []int) int {
	if len(idx) != len(shape) {
		panic(fmt.Sprintf("jointindex: Flatten: len(idx)=%d != len(shape)=%d", len(idx), len(shape)))
	}
	flat := 0
	for i, s := range shape {
		flat = flat*s + idx[i]
	}
	return flat
}

// Unflatten is the inverse of Flatten: given a flat index in
// [0, Card(shape)), it returns the per-axis coordinate tuple.
func Unflatten(shape []int, flat int) []int {
	idx := make([]int, len(shape))
	for i := len(shape) - 1; i >= 0; i-- {
		s := shape[i]
		idx[i] = flat % s
		flat /= s
	}
	return idx
}

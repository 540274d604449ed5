// SPDX-License-Identifier: MIT

// Package rvtypes holds the handful of small enumerations shared across
// the engine (ambiguity, omax, order, bellman, factored, strategy,
// solve) so that no two packages need to import each other just to agree
// on what "pessimistic" means.
package rvtypes

import "math"

// Direction selects which side of the interval ambiguity set the
// O-maximization kernel optimizes toward.
type Direction int

const (
	// Lower computes inf_gamma Sum(gamma*V): the pessimistic (worst-case)
	// bound. Targets are visited ascending by V.
	Lower Direction = iota
	// Upper computes sup_gamma Sum(gamma*V): the optimistic (best-case)
	// bound. Targets are visited descending by V.
	Upper
)

// String renders the direction for logs and error messages.
func (d Direction) String() string {
	switch d {
	case Lower:
		return "Lower"
	case Upper:
		return "Upper"
	default:
		return "Direction(?)"
	}
}

// Reduction selects how the Bellman operator combines per-action
// expectations into a single value for a source state.
type Reduction int

const (
	// Maximize picks the action with the greatest expectation.
	Maximize Reduction = iota
	// Minimize picks the action with the least expectation.
	Minimize
)

// String renders the reduction for logs and error messages.
func (r Reduction) String() string {
	switch r {
	case Maximize:
		return "Maximize"
	case Minimize:
		return "Minimize"
	default:
		return "Reduction(?)"
	}
}

// Better reports whether candidate strictly improves on incumbent under r,
// using strict inequality so that, across a fixed action enumeration
// order, the first action to reach the optimum wins ties (spec section 9:
// tie-breaking is fixed for determinism).
func (r Reduction) Better(candidate, incumbent float64) bool {
	if r == Maximize {
		return candidate > incumbent
	}
	return candidate < incumbent
}

// Worst returns the initial accumulator a reduction should start from
// before scanning any action: -Inf for Maximize, +Inf for Minimize.
func (r Reduction) Worst() float64 {
	if r == Maximize {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

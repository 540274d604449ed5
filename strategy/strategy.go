// SPDX-License-Identifier: MIT

// Package strategy implements the four strategy-cache variants (spec
// section 4.6): None (discard), Given (a fixed, externally supplied
// policy used for evaluation rather than synthesis), Stationary (one
// action per state, the last one the driver believes improves on
// it), and TimeVarying (one action vector per horizon step).
//
// Stationary's update rule is grounded on prim_kruskal's Kruskal "accept
// a candidate edge only if it strictly improves the running structure"
// acceptance pattern, generalized from "improves MST weight" to
// "improves state value": a candidate action only overwrites the
// cached one when rvtypes.Reduction.Better reports a strict
// improvement over the value the cache last recorded for that state.
package strategy

import (
	"math"

	"github.com/katalvlaran/rvimdp/rvtypes"
)

// Cache is the shared contract all four variants satisfy, so the
// solve driver can hold one without branching on which kind it is.
type Cache interface {
	// Record offers a candidate action for state s at horizon step
	// step (the driver's 0-based iteration index; Stationary ignores it), with
	// the expectation value it attained under reduction. Variants that
	// don't synthesize a policy (None, Given) ignore the call.
	Record(step, s, action int, value float64, reduction rvtypes.Reduction)

	// Finalize is called once, after the iteration driver's loop ends.
	// Only TimeVarying does anything here (reversing its accumulated
	// per-step slices); the others no-op.
	Finalize()
}

// None discards every recorded action; used when the caller only
// wants the value function, not a policy.
type None struct{}

func (None) Record(int, int, int, float64, rvtypes.Reduction) {}
func (None) Finalize()                                        {}

// Given wraps a fixed, externally supplied policy (one action index
// per state) used to evaluate a known strategy rather than synthesize
// a new one. Record is a no-op: the policy never changes.
type Given struct {
	actions []int
}

// NewGiven copies actions (one action index per state) into a Given cache.
func NewGiven(actions []int) *Given {
	cp := make([]int, len(actions))
	copy(cp, actions)

	return &Given{actions: cp}
}

func (g *Given) Action(s int) int { return g.actions[s] }

func (g *Given) Record(int, int, int, float64, rvtypes.Reduction) {}
func (g *Given) Finalize()                                        {}

// Stationary caches one action and its attained value per state,
// overwriting only on strict improvement (spec section 4.6's
// "strict-inequality improvement"). Values start at NaN — the "zero-
// entry default fixup" — rather than 0, so the very first Record for a
// state is always accepted regardless of its sign.
type Stationary struct {
	actions []int
	values  []float64
}

// NewStationary allocates a Stationary cache for n states.
func NewStationary(n int) *Stationary {
	values := make([]float64, n)
	for i := range values {
		values[i] = math.NaN()
	}

	return &Stationary{actions: make([]int, n), values: values}
}

func (c *Stationary) Record(_ int, s, action int, value float64, reduction rvtypes.Reduction) {
	if math.IsNaN(c.values[s]) || reduction.Better(value, c.values[s]) {
		c.actions[s] = action
		c.values[s] = value
	}
}

func (c *Stationary) Action(s int) int { return c.actions[s] }

func (c *Stationary) Finalize() {}

// TimeVarying caches one action vector per horizon step. The driver
// computes finite-horizon value iteration from the last step backward
// to the first, so steps are appended in that (reverse-of-time)
// order; Finalize reverses the accumulated slice once, in place, so
// At(0) is step 0's policy after the loop completes (spec section
// 4.6's "front-to-back append then reverse").
type TimeVarying struct {
	numStates int
	perStep   [][]int
}

// NewTimeVarying allocates a TimeVarying cache for a model with
// numStates states.
func NewTimeVarying(numStates int) *TimeVarying {
	return &TimeVarying{numStates: numStates}
}

func (c *TimeVarying) Record(step int, s, action int, _ float64, _ rvtypes.Reduction) {
	for len(c.perStep) <= step {
		row := make([]int, c.numStates)
		for i := range row {
			row[i] = -1
		}
		c.perStep = append(c.perStep, row)
	}
	c.perStep[step][s] = action
}

func (c *TimeVarying) Finalize() {
	for i, j := 0, len(c.perStep)-1; i < j; i, j = i+1, j-1 {
		c.perStep[i], c.perStep[j] = c.perStep[j], c.perStep[i]
	}
}

// At returns the action vector recorded for step k, valid only after Finalize.
func (c *TimeVarying) At(k int) []int { return c.perStep[k] }

// Len returns the number of steps recorded.
func (c *TimeVarying) Len() int { return len(c.perStep) }

// SPDX-License-Identifier: MIT

// Package model holds the non-factored (IMC/IMDP) and factored
// (odIMDP/fIMDP) model representations (spec section 4.1's "M=(S,A,Γ)"
// and section 4.5's "M=(S,S0,A,G,Γ)"), plus their functional-option
// constructors.
//
// Option constructors validate and panic on meaningless inputs;
// algorithms built on top of Model/FactoredModel never panic —
// mirroring builder/options.go's "99-rules" convention.
package model

import "strconv"

// Option customizes a Model under construction.
type Option func(*config)

type config struct {
	actionCounts []int // one entry per state; nil means "use WithUniformActions"
	uniform      int   // used when actionCounts is nil; 0 means unset, and NewIMDP then rejects the config
}

// WithActionCounts gives the explicit number of actions available at
// each state (len(counts) must equal the model's state count; that is
// checked by the constructor, not here, since config does not know n
// yet). Panics if any count is <= 0.
func WithActionCounts(counts []int) Option {
	for i, c := range counts {
		if c <= 0 {
			panic("model: WithActionCounts: non-positive count at state index " + strconv.Itoa(i))
		}
	}
	cp := make([]int, len(counts))
	copy(cp, counts)

	return func(c *config) {
		c.actionCounts = cp
	}
}

// WithUniformActions gives every state the same number of actions.
// Panics if actionsPerState <= 0.
func WithUniformActions(actionsPerState int) Option {
	if actionsPerState <= 0 {
		panic("model: WithUniformActions: actionsPerState<=0")
	}

	return func(c *config) {
		c.uniform = actionsPerState
	}
}

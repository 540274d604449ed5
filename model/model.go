// SPDX-License-Identifier: MIT
package model

import (
	"fmt"

	"github.com/katalvlaran/rvimdp/ambiguity"
	"github.com/katalvlaran/rvimdp/rverrors"
)

// Model is the non-factored interval model (spec section 4.1): a
// source-state space of size NumStates, a (possibly per-state-varying)
// action set, and an interval-ambiguity set Gamma whose columns are
// ordered by source state, then by action within that state. An IMC is
// the special case where every state has exactly one action.
type Model struct {
	statePtr []int // length NumStates()+1; actions of state s occupy columns [statePtr[s], statePtr[s+1])
	gamma    ambiguity.Set
}

// NumStates returns the number of source states.
func (m *Model) NumStates() int { return len(m.statePtr) - 1 }

// NumActions returns the number of actions available at state s.
func (m *Model) NumActions(s int) int { return m.statePtr[s+1] - m.statePtr[s] }

// Column returns the Gamma column index for the a-th action at state s
// (a in [0, NumActions(s))).
func (m *Model) Column(s, a int) int { return m.statePtr[s] + a }

// ActionRange returns the [lo,hi) column range for state s, convenient
// for a Bellman fan-out loop over `for col := lo; col < hi; col++`.
func (m *Model) ActionRange(s int) (lo, hi int) { return m.statePtr[s], m.statePtr[s+1] }

// Gamma returns the model's interval-ambiguity set.
func (m *Model) Gamma() ambiguity.Set { return m.gamma }

func newModel(statePtr []int, gamma ambiguity.Set) (*Model, error) {
	n := len(statePtr) - 1
	if n < 1 {
		return nil, fmt.Errorf("model: statePtr must declare at least one state: %w", rverrors.ErrShapeMismatch)
	}
	for s := 0; s < n; s++ {
		if statePtr[s+1] < statePtr[s] {
			return nil, fmt.Errorf("model: statePtr not non-decreasing at state %d: %w", s, rverrors.ErrShapeMismatch)
		}
	}
	if statePtr[n] != gamma.NumColumns() {
		return nil, fmt.Errorf("model: statePtr[n]=%d does not match Gamma.NumColumns()=%d: %w", statePtr[n], gamma.NumColumns(), rverrors.ErrShapeMismatch)
	}
	if gamma.NumTargets() != n {
		return nil, fmt.Errorf("model: Gamma.NumTargets()=%d does not match state count %d: %w", gamma.NumTargets(), n, rverrors.ErrShapeMismatch)
	}

	return &Model{statePtr: statePtr, gamma: gamma}, nil
}

// NewIMC builds an Interval Markov Chain: every state has exactly one
// action, so Gamma.NumColumns() must equal Gamma.NumTargets() == the
// number of states.
func NewIMC(gamma ambiguity.Set) (*Model, error) {
	n := gamma.NumTargets()
	statePtr := make([]int, n+1)
	for s := 0; s <= n; s++ {
		statePtr[s] = s
	}

	return newModel(statePtr, gamma)
}

// NewIMDP builds an Interval Markov Decision Process over n states,
// with per-state action counts given by opts (WithActionCounts or
// WithUniformActions; exactly one of the two must be supplied).
func NewIMDP(n int, gamma ambiguity.Set, opts ...Option) (*Model, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	var counts []int
	switch {
	case cfg.actionCounts != nil:
		if len(cfg.actionCounts) != n {
			return nil, fmt.Errorf("model: WithActionCounts length %d does not match n=%d: %w", len(cfg.actionCounts), n, rverrors.ErrShapeMismatch)
		}
		counts = cfg.actionCounts
	case cfg.uniform > 0:
		counts = make([]int, n)
		for s := range counts {
			counts[s] = cfg.uniform
		}
	default:
		return nil, fmt.Errorf("model: NewIMDP requires WithActionCounts or WithUniformActions: %w", rverrors.ErrShapeMismatch)
	}

	statePtr := make([]int, n+1)
	for s := 0; s < n; s++ {
		statePtr[s+1] = statePtr[s] + counts[s]
	}

	return newModel(statePtr, gamma)
}

// SPDX-License-Identifier: MIT
package model

import (
	"fmt"

	"github.com/katalvlaran/rvimdp/ambiguity"
	"github.com/katalvlaran/rvimdp/jointindex"
	"github.com/katalvlaran/rvimdp/model/depgraph"
	"github.com/katalvlaran/rvimdp/rverrors"
)

// Marginal is one next-state variable's conditional ambiguity set
// (spec section 4.5's Gamma_i): columns are indexed by the flattened
// parent assignment in the order given by the model's dependency graph
// (action parents first, then state parents); rows are the variable's
// own next-value index, so Gamma.NumTargets() must equal the
// variable's declared cardinality.
//
// Implicit-sink row handling (spec section 4.5) is not the same thing
// as an unlisted sparse row: an unlisted SparseSet row is zero
// probability, but a sink row must absorb whatever mass 1-Sum(gamma)
// the column's explicit rows don't claim — the two are opposite
// defaults. A marginal that needs a sink builds its Gamma as an
// ambiguity.SinkSet wrapping an explicit-only inner Set; NumTargets()
// on the result already equals stateShapes[i] (inner's NumTargets()+1
// for the appended sink row), so NewFIMDP's shape check below accepts
// it with no special case here.
type Marginal struct {
	Gamma ambiguity.Set
}

// FactoredModel is the factored interval model (spec section 4.5):
// a product state space over StateShapes, a (possibly product) action
// space over ActionShapes, a dependency graph G naming each marginal's
// parents, and one Marginal per state variable.
//
// odIMDP is the special case where ActionShapes has one entry (a single,
// unfactored joint action) and every marginal depends on that action
// plus the full current joint state ("orthogonal decoupling": the
// per-variable ambiguity sets are independent given (s,a), but the
// state space itself is not split into independently-evolving axes for
// dependency purposes). fIMDP is the general case, where both the
// action space and each marginal's parent set may be a strict subset.
type FactoredModel struct {
	stateShapes  []int
	actionShapes []int
	g            *depgraph.Graph
	marginals    []Marginal
}

func (fm *FactoredModel) StateShapes() []int  { return fm.stateShapes }
func (fm *FactoredModel) ActionShapes() []int { return fm.actionShapes }
func (fm *FactoredModel) Graph() *depgraph.Graph { return fm.g }
func (fm *FactoredModel) Marginal(i int) Marginal { return fm.marginals[i] }
func (fm *FactoredModel) NumVars() int { return len(fm.stateShapes) }

// NumJointStates returns Product(StateShapes), the size of the
// flattened joint state space.
func (fm *FactoredModel) NumJointStates() int { return jointindex.Card(fm.stateShapes) }

// NumJointActions returns Product(ActionShapes), the size of the
// flattened joint action space.
func (fm *FactoredModel) NumJointActions() int { return jointindex.Card(fm.actionShapes) }

// ParentShape returns the per-axis cardinalities, in dependency order,
// of marginal i's parents — the shape jointindex.Flatten/Unflatten
// expects when indexing Marginal(i).Gamma's columns.
func (fm *FactoredModel) ParentShape(i int) []int {
	return depgraph.ParentShape(fm.g.Parents(i), fm.actionShapes, fm.stateShapes)
}

// MarginalColumn gathers marginal i's parent values out of a full
// joint action assignment and joint state assignment (one entry per
// action/state variable, in variable order) and flattens them into the
// column index of Marginal(i).Gamma, per the dependency graph's
// declared parent order (action parents first, then state parents).
func (fm *FactoredModel) MarginalColumn(i int, actionAssignment, stateAssignment []int) int {
	parents := fm.g.Parents(i)
	idx := make([]int, len(parents))
	shape := make([]int, len(parents))
	for k, p := range parents {
		if p.Kind == depgraph.ActionVar {
			idx[k] = actionAssignment[p.Index]
			shape[k] = fm.actionShapes[p.Index]
		} else {
			idx[k] = stateAssignment[p.Index]
			shape[k] = fm.stateShapes[p.Index]
		}
	}

	return jointindex.Flatten(shape, idx)
}

// NewFIMDP assembles a fully factored model: stateShapes and
// actionShapes give the per-variable cardinalities, g names each
// marginal's parents (already validated complete via g.Validate()),
// and marginals supplies one conditional ambiguity set per state
// variable, in variable order.
//
// NewFIMDP returns ErrShapeMismatch if len(marginals) != len(stateShapes),
// if g is not complete, or if any marginal's Gamma.NumColumns() does not
// match the cardinality of its declared parent shape.
func NewFIMDP(stateShapes, actionShapes []int, g *depgraph.Graph, marginals []Marginal) (*FactoredModel, error) {
	if len(marginals) != len(stateShapes) {
		return nil, fmt.Errorf("model: NewFIMDP: %d marginals for %d state variables: %w", len(marginals), len(stateShapes), rverrors.ErrShapeMismatch)
	}
	if g.StateCount() != len(stateShapes) || g.ActionCount() != len(actionShapes) {
		return nil, fmt.Errorf("model: NewFIMDP: dependency graph shape (%d,%d) does not match (%d,%d): %w", g.StateCount(), g.ActionCount(), len(stateShapes), len(actionShapes), rverrors.ErrShapeMismatch)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("model: NewFIMDP: %w", err)
	}

	for i, marg := range marginals {
		parentShape := depgraph.ParentShape(g.Parents(i), actionShapes, stateShapes)
		want := jointindex.Card(parentShape)
		if marg.Gamma.NumColumns() != want {
			return nil, fmt.Errorf("model: NewFIMDP: marginal %d Gamma.NumColumns()=%d does not match parent cardinality %d: %w", i, marg.Gamma.NumColumns(), want, rverrors.ErrShapeMismatch)
		}
		if marg.Gamma.NumTargets() != stateShapes[i] {
			return nil, fmt.Errorf("model: NewFIMDP: marginal %d Gamma.NumTargets()=%d does not match state variable cardinality %d: %w", i, marg.Gamma.NumTargets(), stateShapes[i], rverrors.ErrShapeMismatch)
		}
	}

	return &FactoredModel{
		stateShapes:  stateShapes,
		actionShapes: actionShapes,
		g:            g,
		marginals:    marginals,
	}, nil
}

// NewOdIMDP assembles an orthogonally-decoupled IMDP: a single joint
// action variable of size actionCount, and a dependency graph where
// every marginal depends on that action plus every state variable
// (full current-state visibility, independent per-variable ambiguity
// given (s,a)).
func NewOdIMDP(actionCount int, stateShapes []int, marginals []Marginal) (*FactoredModel, error) {
	if actionCount <= 0 {
		return nil, fmt.Errorf("model: NewOdIMDP: actionCount=%d must be positive: %w", actionCount, rverrors.ErrShapeMismatch)
	}

	n := len(stateShapes)
	allStateVars := make([]int, n)
	for i := range allStateVars {
		allStateVars[i] = i
	}

	g := depgraph.New(n, 1)
	for i := 0; i < n; i++ {
		if err := g.AddMarginal(i, []int{0}, allStateVars); err != nil {
			return nil, fmt.Errorf("model: NewOdIMDP: %w", err)
		}
	}

	return NewFIMDP(stateShapes, []int{actionCount}, g, marginals)
}

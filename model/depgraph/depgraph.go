// SPDX-License-Identifier: MIT

// Package depgraph represents and validates the bipartite dependency
// graph G of a factored model (spec section 4.5's "M=(S,S0,A,G,Γ)"):
// one next-state variable per marginal, each with an ordered list of
// parent variables drawn from the action variables and the (current)
// state variables. Column layout within a marginal's ambiguity set is
// fixed by this order: action parents first, then state parents (spec
// section 4.5).
//
// Grounded on core.Graph's thread-safe adjacency list (read/write
// mutex guarding map-backed storage) and algorithms/dfs.go's traversal
// shape (validate start, walk, report via Ctx/visited bookkeeping),
// generalized here to a fixed small bipartite DAG rather than a general
// mutable graph.
package depgraph

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/rvimdp/rverrors"
)

// VarKind distinguishes the two node families of the bipartite graph.
type VarKind int

const (
	// StateVar identifies a current-state variable S_i.
	StateVar VarKind = iota
	// ActionVar identifies an action variable A_i.
	ActionVar
)

// Parent names one parent variable of a marginal, by kind and index.
type Parent struct {
	Kind  VarKind
	Index int
}

// Graph is the bipartite dependency structure over a fixed number of
// state and action variables. It is built once (via New + AddMarginal)
// and then read concurrently by model construction and by the factored
// Bellman operator; mutations after Validate succeeds are not expected,
// but the same read/write lock discipline as core.Graph is used anyway
// so a caller building it from several goroutines is not undefined
// behavior.
type Graph struct {
	mu          sync.RWMutex
	stateCount  int
	actionCount int
	parents     map[int][]Parent // next-state-variable index -> ordered parents
}

// New creates an empty dependency graph over stateCount state variables
// and actionCount action variables.
func New(stateCount, actionCount int) *Graph {
	return &Graph{
		stateCount:  stateCount,
		actionCount: actionCount,
		parents:     make(map[int][]Parent, stateCount),
	}
}

// AddMarginal declares the parent set of next-state variable nextVar:
// actionParents (indices into the action variables) followed by
// stateParents (indices into the state variables), preserving exactly
// the order given — callers are responsible for passing them already
// sorted if a canonical column order is desired.
//
// AddMarginal returns ErrShapeMismatch if nextVar, or any parent index,
// is out of range, or if nextVar already has a declared marginal.
func (g *Graph) AddMarginal(nextVar int, actionParents, stateParents []int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if nextVar < 0 || nextVar >= g.stateCount {
		return fmt.Errorf("depgraph: next-state variable %d out of range [0,%d): %w", nextVar, g.stateCount, rverrors.ErrShapeMismatch)
	}
	if _, exists := g.parents[nextVar]; exists {
		return fmt.Errorf("depgraph: next-state variable %d already has a declared marginal: %w", nextVar, rverrors.ErrShapeMismatch)
	}

	parents := make([]Parent, 0, len(actionParents)+len(stateParents))
	for _, a := range actionParents {
		if a < 0 || a >= g.actionCount {
			return fmt.Errorf("depgraph: marginal %d: action parent %d out of range [0,%d): %w", nextVar, a, g.actionCount, rverrors.ErrShapeMismatch)
		}
		parents = append(parents, Parent{Kind: ActionVar, Index: a})
	}
	for _, s := range stateParents {
		if s < 0 || s >= g.stateCount {
			return fmt.Errorf("depgraph: marginal %d: state parent %d out of range [0,%d): %w", nextVar, s, g.stateCount, rverrors.ErrShapeMismatch)
		}
		parents = append(parents, Parent{Kind: StateVar, Index: s})
	}

	g.parents[nextVar] = parents

	return nil
}

// Parents returns the ordered parent list declared for next-state
// variable nextVar (nil if none was declared).
func (g *Graph) Parents(nextVar int) []Parent {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.parents[nextVar]
}

// StateCount and ActionCount return the variable counts fixed at New.
func (g *Graph) StateCount() int  { return g.stateCount }
func (g *Graph) ActionCount() int { return g.actionCount }

// Validate walks every declared next-state variable and confirms the
// graph is complete (every variable 0..stateCount-1 has a marginal)
// and well-formed. Unlike a general graph traversal this never needs
// cycle detection: a marginal's parents are drawn from the *current*
// state/action variables, never from next-state variables, so the
// dependency structure is acyclic by construction.
func (g *Graph) Validate() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for i := 0; i < g.stateCount; i++ {
		if _, ok := g.parents[i]; !ok {
			return fmt.Errorf("depgraph: next-state variable %d has no declared marginal: %w", i, rverrors.ErrShapeMismatch)
		}
	}

	return nil
}

// ParentShape returns, for the given parent list and the caller's full
// action/state shape vectors, the per-axis cardinalities in parent
// order — the shape jointindex.Flatten/Unflatten expects when indexing
// this marginal's ambiguity-set columns.
func ParentShape(parents []Parent, actionShapes, stateShapes []int) []int {
	shape := make([]int, len(parents))
	for i, p := range parents {
		if p.Kind == ActionVar {
			shape[i] = actionShapes[p.Index]
		} else {
			shape[i] = stateShapes[p.Index]
		}
	}

	return shape
}

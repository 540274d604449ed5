// SPDX-License-Identifier: MIT

// Package rverrors defines the four cross-cutting error kinds used across
// the robust value iteration engine (ambiguity, omax, bellman, factored,
// solve, ...). Every sentinel here is package-prefixed and meant to be
// matched with errors.Is; callers that need context should wrap with
// fmt.Errorf("...: %w", ...) at the boundary rather than constructing a
// new sentinel per call site.
package rverrors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmbiguitySet marks a constructed interval-ambiguity set (or
	// one of its columns) that violates the set-nonemptiness invariants:
	// lo <= up elementwise, sum(lo) <= 1 <= sum(up), matching shapes between
	// lo/up (and, for sparse matrices, shared colptr/rowval). Fatal at the
	// constructor; surfaced lazily from the Bellman operator when detected
	// mid-iteration.
	ErrInvalidAmbiguitySet = errors.New("rvimdp: invalid ambiguity set")

	// ErrShapeMismatch marks an inconsistency between a value function's
	// shape, a strategy's shape, a model's declared cardinalities, or a
	// parent-index product and the shape the caller actually supplied.
	// Fatal at the call site.
	ErrShapeMismatch = errors.New("rvimdp: shape mismatch")
)

// NotConvergedError is returned by the iteration driver when an
// infinite-horizon termination criterion never triggers within a
// caller-specified iteration cap. It carries the iteration count, the
// residual and the threshold, not the value function itself; the driver
// returns the partial V alongside it, so it is non-fatal by design and
// the caller can decide whether to use that V or retry with a larger cap.
type NotConvergedError struct {
	Iterations int     // iterations actually run before the cap was hit
	Residual   float64 // ||V_cur - V_prev||_inf at the cap
	Epsilon    float64 // the convergence threshold that was never reached
}

func (e *NotConvergedError) Error() string {
	return fmt.Sprintf("rvimdp: not converged after %d iterations (residual=%g, epsilon=%g)",
		e.Iterations, e.Residual, e.Epsilon)
}

// IsNotConverged reports whether err is (or wraps) a *NotConvergedError.
func IsNotConverged(err error) bool {
	var nc *NotConvergedError
	return errors.As(err, &nc)
}

// ErrCallbackAborted marks an iteration stopped because a user-supplied
// per-step callback returned an error. The driver wraps the callback's own
// error with this sentinel so callers can distinguish "my callback raised"
// from "the engine itself failed" via errors.Is, while errors.Unwrap still
// reaches the original cause.
var ErrCallbackAborted = errors.New("rvimdp: callback aborted iteration")

// WrapCallback wraps a user callback's error so errors.Is(err, ErrCallbackAborted)
// holds alongside the original cause.
func WrapCallback(cause error) error {
	return fmt.Errorf("%w: %w", ErrCallbackAborted, cause)
}

// SPDX-License-Identifier: MIT

// Package ambiguity stores interval-ambiguity sets (C1): the per-column
// lower/upper probability bounds an O-maximization kernel optimizes over,
// with their derived gap = up-lo and slo = Sum(lo) precomputed once at
// construction so later Bellman steps never recompute them.
//
// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "ambiguity: ..." for consistency and to
// allow easy grepping across logs. This package defines no sentinels of
// its own: invalidf and shapef %w-wrap the shared rverrors sentinels at
// the point of return, so callers use errors.Is against rverrors to match.
package ambiguity

import (
	"fmt"

	"github.com/katalvlaran/rvimdp/rverrors"
)

// invalidf wraps rverrors.ErrInvalidAmbiguitySet with a specific reason,
// keeping errors.Is(err, rverrors.ErrInvalidAmbiguitySet) true while still
// telling a human (or a test) which invariant failed.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("ambiguity: %s: %w", fmt.Sprintf(format, args...), rverrors.ErrInvalidAmbiguitySet)
}

// shapef wraps rverrors.ErrShapeMismatch with a specific reason.
func shapef(format string, args ...any) error {
	return fmt.Errorf("ambiguity: %s: %w", fmt.Sprintf(format, args...), rverrors.ErrShapeMismatch)
}

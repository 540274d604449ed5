// SPDX-License-Identifier: MIT

// Package ports declares the external-collaborator contracts named in
// spec section 6: a model-loader interface (consumed: an external
// PRISM/bmdp-tool/NetCDF parser would implement this) and a
// solution-reporter interface (produced: an external presentation
// layer would implement this). No decoder for any of those formats
// lives here — parsing external model files is an explicit non-goal;
// this package is the seam where such a decoder would plug in.
package ports

import "github.com/katalvlaran/rvimdp/model"

// ModelLoader is implemented by an external collaborator that parses a
// concrete file format (PRISM's .sta/.tra/.lab/.pctl quartet,
// bmdp-tool's single-file format, or a NetCDF-backed store) into the
// marginals, cardinalities, and optional initial/terminal state sets
// this module's model package needs to assemble an IMC/IMDP/fIMDP.
// Apart from cmd/rvimdp's in-process demo loader, this module does not
// implement ModelLoader itself.
type ModelLoader interface {
	// Load returns one Marginal per state variable (in variable
	// order), the per-variable state and action cardinalities, and
	// optionally non-empty initial and terminal joint-state index
	// sets (nil when the source format does not declare them).
	Load() (marginals []model.Marginal, stateShapes, actionShapes []int, initial, terminal []int, err error)
}

// Solution is the result payload a SolutionReporter consumes: the
// final value function, iteration count, infinity-norm residual, an
// optional synthesized strategy (one action index per state; nil if
// the caller only requested V), an optional dual value function (the
// opposing Direction's bound, when a caller computed both for a
// bounds-width report), and a free-form additional map for
// property-specific extras (e.g. the reward vector used).
type Solution struct {
	ValueFunction     []float64      `json:"value_function"`
	NumIterations     int            `json:"num_iterations"`
	Residual          float64        `json:"residual"`
	Strategy          []int          `json:"strategy,omitempty"`
	DualValueFunction []float64      `json:"dual_value_function,omitempty"`
	Additional        map[string]any `json:"additional,omitempty"`
}

// SolutionReporter is implemented by an external collaborator that
// presents a Solution (to a file, a terminal table, a PRISM-compatible
// result string, a plotting tool, ...). This module never implements
// SolutionReporter itself beyond the CLI's minimal JSON encoder, which
// exists only to give cmd/rvimdp a runnable end-to-end path.
type SolutionReporter interface {
	Report(Solution) error
}

// Spec mirrors the internal JSON property schema used to describe a
// run's property kind and its parameters, as a tagged-union DTO:
// fields irrelevant to Kind are left at their zero value and omitted
// on encode. An external format adapter (e.g. translating PRISM's
// `Pmin=?[F t target]` string syntax) would populate a Spec rather
// than this module parsing that syntax directly.
type Spec struct {
	Kind             string    `json:"kind"`                        // "reachability" | "reach_avoid" | "safety" | "reward" | "discounted" | "exit_time" | "exact_time"
	Horizon          int       `json:"horizon,omitempty"`           // finite-horizon step count, or exact-time's k=H bound
	Epsilon          float64   `json:"epsilon,omitempty"`           // infinite-horizon convergence threshold
	Reach            []int     `json:"reach,omitempty"`             // joint-state indices, reachability/reach_avoid
	Avoid            []int     `json:"avoid,omitempty"`             // joint-state indices, reach_avoid/safety
	Terminal         []int     `json:"terminal,omitempty"`          // joint-state indices, exit_time
	Reward           []float64 `json:"reward,omitempty"`            // per-state reward vector, reward/discounted
	Discount         float64   `json:"discount,omitempty"`          // gamma, discounted only
	SatisfactionMode string    `json:"satisfaction_mode,omitempty"` // "pessimistic" | "optimistic"
	StrategyMode     string    `json:"strategy_mode,omitempty"`     // "none" | "stationary" | "time_varying" | "given"
}

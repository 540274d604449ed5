// SPDX-License-Identifier: MIT

// Package property implements the iteration-driver's property adapters
// (spec section 4.8): the three hooks (Initialize, Step, Terminate)
// that turn a bare value-iteration loop into a specific probabilistic
// property (reachability, reach-avoid, safety, bounded/discounted
// reward, exit-time), plus an exact-time variant with no masking.
//
// Masking is a flat []bool bitmap over the row-major flattened joint
// state index, the same "mark and test" pattern bfs.go uses for its
// visited set, generalized from a map[string]bool keyed by vertex ID
// to a position-indexed slice keyed by joint-state index (the state
// space here is a dense integer range, not an arbitrary vertex ID
// space, so a slice is the direct analogue).
package property

// Property is the three-hook contract the solve driver calls: once to
// seed the value function, once per iteration after the Bellman step
// to apply masking/reward bookkeeping, and once per iteration to
// decide whether to stop.
type Property interface {
	// Initialize seeds cur (the value function) before the first
	// iteration.
	Initialize(cur []float64)

	// Step applies this property's per-iteration masking to cur,
	// immediately after the Bellman operator has written its raw
	// expectation into cur.
	Step(cur []float64)

	// Terminate reports whether the driver should stop after
	// iteration k, having observed the given infinity-norm residual
	// between this iteration's and the previous iteration's value
	// function.
	Terminate(k int, residual float64) bool
}

// Terminator is the termination half of Property, factored out so the
// five masking adapters can share one of two termination policies
// (FiniteHorizon, InfiniteHorizon) without duplicating the check.
type Terminator interface {
	Terminate(k int, residual float64) bool
}

// FiniteHorizon terminates after exactly Horizon iterations.
type FiniteHorizon struct {
	Horizon int
}

func (f FiniteHorizon) Terminate(k int, _ float64) bool { return k >= f.Horizon }

// InfiniteHorizon terminates once the infinity-norm residual between
// successive value functions falls to or below Epsilon.
type InfiniteHorizon struct {
	Epsilon float64
}

func (ih InfiniteHorizon) Terminate(_ int, residual float64) bool { return residual <= ih.Epsilon }

func zero(cur []float64) {
	for i := range cur {
		cur[i] = 0
	}
}

// applyReachAvoid forces cur[i]=1 for every reach index and cur[i]=0
// for every avoid index; shared by Reachability and ReachAvoid since
// the masking rule is identical, differing only in whether an avoid
// set is supplied.
func applyReachAvoid(cur []float64, reach, avoid []bool) {
	for i, hit := range avoid {
		if hit {
			cur[i] = 0
		}
	}
	for i, hit := range reach {
		if hit {
			cur[i] = 1
		}
	}
}

// Reachability computes, per state, the probability of ever reaching
// the Reach set within the bound its Terminator imposes. Initialize
// seeds V=0; Step forces V[reach]=1 after each Bellman pass.
type Reachability struct {
	Terminator
	Reach []bool
}

// NewReachability builds a Reachability adapter over a joint state
// space of size n, with term governing when the driver stops.
func NewReachability(term Terminator, n int, reach []bool) *Reachability {
	if len(reach) != n {
		panic("property: NewReachability: len(reach) must equal n")
	}

	return &Reachability{Terminator: term, Reach: reach}
}

func (p *Reachability) Initialize(cur []float64) { zero(cur) }
func (p *Reachability) Step(cur []float64)       { applyReachAvoid(cur, p.Reach, nil) }

// ReachAvoid computes, per state, the probability of reaching Reach
// before ever touching Avoid. Identical masking rule to Reachability,
// with a non-empty Avoid set forcing those states to 0 each step.
type ReachAvoid struct {
	Terminator
	Reach, Avoid []bool
}

// NewReachAvoid builds a ReachAvoid adapter over a joint state space
// of size n.
func NewReachAvoid(term Terminator, n int, reach, avoid []bool) *ReachAvoid {
	if len(reach) != n || len(avoid) != n {
		panic("property: NewReachAvoid: len(reach) and len(avoid) must equal n")
	}

	return &ReachAvoid{Terminator: term, Reach: reach, Avoid: avoid}
}

func (p *ReachAvoid) Initialize(cur []float64) { zero(cur) }
func (p *ReachAvoid) Step(cur []float64)       { applyReachAvoid(cur, p.Reach, p.Avoid) }

// Safety computes the probability of never touching Avoid. Initialize
// seeds V=0; Step forces V[avoid]=0 after each Bellman pass. The raw
// value this adapter converges to is the probability of *reaching*
// avoid under the chosen strategy; the safety probability proper is
// its complement (1 - V), a transform the driver's caller applies to
// the final reported value rather than this adapter itself, since it
// is a one-line post-processing step and not part of the per-iteration
// loop body.
type Safety struct {
	Terminator
	Avoid []bool
}

// NewSafety builds a Safety adapter over a joint state space of size n.
func NewSafety(term Terminator, n int, avoid []bool) *Safety {
	if len(avoid) != n {
		panic("property: NewSafety: len(avoid) must equal n")
	}

	return &Safety{Terminator: term, Avoid: avoid}
}

func (p *Safety) Initialize(cur []float64) { zero(cur) }
func (p *Safety) Step(cur []float64)       { applyReachAvoid(cur, nil, p.Avoid) }

// Reward computes expected total (or, with Gamma<1, discounted)
// reward: Initialize seeds V=R; Step recomputes V = R + Gamma*Bellman
// (Bellman's raw expectation having just been written into cur).
// Gamma=1 is the unchecked degenerate case of Discounted and is the
// zero-value-safe default only if a caller sets it explicitly via
// NewReward; there is no implicit default since a silently-unset 0
// would collapse every step back to the bare reward vector.
type Reward struct {
	Terminator
	R     []float64
	Gamma float64
}

// NewReward builds an undiscounted (Gamma=1) Reward adapter. Use
// NewDiscounted for Gamma<1.
func NewReward(term Terminator, r []float64) *Reward {
	cp := make([]float64, len(r))
	copy(cp, r)

	return &Reward{Terminator: term, R: cp, Gamma: 1.0}
}

func (p *Reward) Initialize(cur []float64) { copy(cur, p.R) }
func (p *Reward) Step(cur []float64) {
	for i := range cur {
		cur[i] = p.R[i] + p.Gamma*cur[i]
	}
}

// Discounted is Reward with Gamma<1: the "multiply pre-Bellman by the
// discount" rule is mathematically equivalent to multiplying Bellman's
// output by Gamma, because Bellman's per-column optimization is
// positively homogeneous in V for a fixed ambiguity column (scaling
// every target value by a positive constant scales the optimum by the
// same constant without changing which targets the greedy fill
// selects), so applying Gamma after Bellman in Step is exact, not an
// approximation of the pre-multiply formulation.
type Discounted struct {
	*Reward
}

// NewDiscounted builds a Discounted reward adapter with discount
// factor gamma, which must lie in (0, 1].
func NewDiscounted(term Terminator, r []float64, gamma float64) *Discounted {
	if gamma <= 0 || gamma > 1 {
		panic("property: NewDiscounted: gamma must be in (0, 1]")
	}

	rw := NewReward(term, r)
	rw.Gamma = gamma

	return &Discounted{Reward: rw}
}

// ExitTime computes expected time until absorption into Terminal:
// Initialize seeds V=0; Step adds 1 to every non-terminal state after
// each Bellman pass (terminal states stay pinned at their Bellman
// value, which is 0 since they have no outgoing transitions that
// matter once reached).
type ExitTime struct {
	Terminator
	Terminal []bool
}

// NewExitTime builds an ExitTime adapter over a joint state space of
// size n.
func NewExitTime(term Terminator, n int, terminal []bool) *ExitTime {
	if len(terminal) != n {
		panic("property: NewExitTime: len(terminal) must equal n")
	}

	return &ExitTime{Terminator: term, Terminal: terminal}
}

func (p *ExitTime) Initialize(cur []float64) { zero(cur) }
func (p *ExitTime) Step(cur []float64) {
	for i, terminal := range p.Terminal {
		if !terminal {
			cur[i]++
		}
	}
}

// ExactTime runs exactly Horizon steps of pure Bellman contraction
// with no per-step masking at all — the "k = H, no masking" variant
// mentioned alongside finite-horizon termination. It differs from
// FiniteHorizon-wrapped-Reachability/Reward only in that its Step is a
// no-op: it reports the raw H-step expectation, not a reach/avoid/
// reward overlay.
type ExactTime struct {
	Horizon int
	Init    []float64 // optional seed; nil means start from all zeros
}

// NewExactTime builds an ExactTime adapter that runs for horizon
// iterations. init may be nil (start from V=0) or a caller-supplied
// seed vector copied into V before the first iteration.
func NewExactTime(horizon int, init []float64) *ExactTime {
	var cp []float64
	if init != nil {
		cp = make([]float64, len(init))
		copy(cp, init)
	}

	return &ExactTime{Horizon: horizon, Init: cp}
}

func (p *ExactTime) Initialize(cur []float64) {
	if p.Init != nil {
		copy(cur, p.Init)
		return
	}
	zero(cur)
}

func (p *ExactTime) Step([]float64) {}

func (p *ExactTime) Terminate(k int, _ float64) bool { return k >= p.Horizon }

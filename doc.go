// Package rvimdp is a robust value-iteration engine for interval
// Markov decision processes (IMDPs) and their factored (fIMDP /
// odIMDP) variants: transition probabilities are given as closed
// intervals rather than point values, and value iteration computes
// the pessimistic or optimistic bound over every feasible probability
// assignment consistent with those intervals.
//
// Everything is organized under one subpackage per concern:
//
//	ambiguity/   — interval-constrained probability column storage (dense, sparse, exact-rational)
//	order/       — per-column value-sorted permutation workspace
//	omax/        — the O-maximization kernel (greedy interval-simplex fill)
//	model/       — IMC/IMDP/fIMDP/odIMDP builders and the factored dependency graph
//	bellman/     — the flat (non-factored) robust Bellman operator
//	factored/    — the recursive, axis-by-axis Bellman operator over Kronecker-structured ambiguity
//	strategy/    — policy-cache variants (none, given, stationary, time-varying)
//	valuefunc/   — the V_prev/V_cur rotating pair and its residual
//	property/    — reachability, reach-avoid, safety, reward, discounted, exit-time, exact-time adapters
//	solve/       — the iteration driver tying the above together
//	ports/       — external model-loader and solution-reporter contracts
//	cmd/rvimdp/  — a thin CLI wiring flags to solve.Options
//
// go get github.com/katalvlaran/rvimdp
package rvimdp

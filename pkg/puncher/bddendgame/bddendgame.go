// Package bddendgame implements the optional BDD endgame (spec §4.6, §9): a
// residual solver invoked when the total live-state count across all
// triplets falls below a tunable threshold, short-circuiting deep search
// tails.
//
// The spec describes the residual as "a Boolean decision diagram" answering
// satisfiability of the conjunction of remaining domains and compatibility
// constraints, with "a trivial brute-force residual when no BDD library is
// available." This package provides both: BruteForce enumerates directly,
// and Gini re-encodes the residual as CNF and hands it to
// github.com/go-air/gini, the real SAT engine present in the reference
// corpus (operator-framework/operator-lifecycle-manager's go.mod, where it
// already backs OLM's own resolver). Both satisfy the same Solver interface
// spec §9 asks for: "behind an interface that accepts the residual domains
// and compatibility edges and answers satisfiable/not."
package bddendgame

import (
	"github.com/mpuncher/matryoshka/pkg/puncher/bitset"
	"github.com/mpuncher/matryoshka/pkg/puncher/compat"
	"github.com/mpuncher/matryoshka/pkg/puncher/igraph"
)

// Solver answers satisfiability of a residual domain vector: is there a
// choice of one live state per triplet such that every pair chosen for a
// compatibility-table edge is mutually compatible? On success it also
// returns the satisfying per-triplet state choice.
type Solver interface {
	Solve(domains []*bitset.Set, tables []*compat.Table, g *igraph.Graph) (assignment []int, ok bool)
}

// TotalLive sums the live-state counts across all triplet domains — the
// quantity compared against the configurable threshold (reference value
// 400) to decide whether to hand off to a Solver.
func TotalLive(domains []*bitset.Set) int {
	total := 0
	for _, d := range domains {
		total += int(d.Count())
	}
	return total
}

package bddendgame

import (
	"github.com/mpuncher/matryoshka/pkg/puncher/bitset"
	"github.com/mpuncher/matryoshka/pkg/puncher/compat"
	"github.com/mpuncher/matryoshka/pkg/puncher/igraph"
)

// BruteForce exhaustively enumerates combinations of live states (one per
// triplet) checking pairwise compatibility along every interaction-graph
// edge. It is the "trivial... residual when no BDD library is available"
// spec §9 explicitly permits, selected with puncher.ResidualBruteForce
// (ResidualNone disables the endgame and uses no Solver at all).
type BruteForce struct{}

// Solve implements Solver.
func (BruteForce) Solve(domains []*bitset.Set, tables []*compat.Table, g *igraph.Graph) ([]int, bool) {
	choices := make([][]uint, len(domains))
	for i, d := range domains {
		choices[i] = d.ToSlice()
		if len(choices[i]) == 0 {
			return nil, false
		}
	}

	assignment := make([]int, len(domains))
	ok := enumerate(0, choices, assignment, tables, g)
	if !ok {
		return nil, false
	}
	return assignment, true
}

func enumerate(i int, choices [][]uint, assignment []int, tables []*compat.Table, g *igraph.Graph) bool {
	if i == len(choices) {
		return true
	}
	for _, s := range choices[i] {
		assignment[i] = int(s)
		if consistentSoFar(i, assignment, tables, g) {
			if enumerate(i+1, choices, assignment, tables, g) {
				return true
			}
		}
	}
	return false
}

// consistentSoFar checks triplet i's chosen state against every
// already-assigned neighbour (lower index only, since later ones aren't
// chosen yet).
func consistentSoFar(i int, assignment []int, tables []*compat.Table, g *igraph.Graph) bool {
	for _, e := range g.Adjacency[i] {
		j := e.Neighbor
		if j >= i {
			continue
		}
		mask, ok := tables[j].Mask(assignment[j], i)
		if !ok {
			continue
		}
		if !mask.Test(uint(assignment[i])) {
			return false
		}
	}
	return true
}

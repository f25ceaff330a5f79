package bddendgame

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/mpuncher/matryoshka/pkg/puncher/bitset"
	"github.com/mpuncher/matryoshka/pkg/puncher/compat"
	"github.com/mpuncher/matryoshka/pkg/puncher/igraph"
)

// Gini solves the residual by encoding it as CNF over one boolean variable
// per surviving (triplet, state) pair:
//
//   - an at-least-one clause per triplet over its live states, forcing a
//     choice;
//   - a binary clause forbidding every pair of states across a compatibility
//     edge that the table marks incompatible.
//
// and handing the result to github.com/go-air/gini for a direct
// satisfiability answer, rather than the brute-force enumeration.
type Gini struct{}

// Solve implements Solver.
func (Gini) Solve(domains []*bitset.Set, tables []*compat.Table, g *igraph.Graph) ([]int, bool) {
	if len(domains) == 0 {
		// No triplets: the empty choice is vacuously consistent.
		return []int{}, true
	}

	// varOf[i][s] is the Dimacs variable number for triplet i choosing
	// local state s. 1-based, sequentially assigned.
	varOf := make([]map[uint]int, len(domains))
	next := 1
	for i, d := range domains {
		varOf[i] = make(map[uint]int, d.Count())
		d.Each(func(s uint) {
			varOf[i][s] = next
			next++
		})
	}
	if next == 1 {
		return nil, false
	}

	solver := gini.New()

	// At-least-one clause per triplet.
	for i, d := range domains {
		if d.IsEmpty() {
			return nil, false
		}
		var lits []z.Lit
		d.Each(func(s uint) {
			lits = append(lits, z.Dimacs2Lit(varOf[i][s]))
		})
		for _, l := range lits {
			solver.Add(l)
		}
		solver.Add(z.LitNull)
	}

	// Forbid incompatible pairs along every edge, each direction checked
	// once (i < j) to avoid doubling clauses.
	for i := range domains {
		for _, e := range g.Adjacency[i] {
			j := e.Neighbor
			if j <= i {
				continue
			}
			tbl := tables[i]
			domains[i].Each(func(s uint) {
				mask, ok := tbl.Mask(int(s), j)
				if !ok {
					return
				}
				domains[j].Each(func(t uint) {
					if !mask.Test(t) {
						vi := varOf[i][s]
						vj := varOf[j][t]
						solver.Add(z.Dimacs2Lit(-vi))
						solver.Add(z.Dimacs2Lit(-vj))
						solver.Add(z.LitNull)
					}
				})
			})
		}
	}

	const satisfiable = 1
	if solver.Solve() != satisfiable {
		return nil, false
	}

	assignment := make([]int, len(domains))
	for i, d := range domains {
		chosen := -1
		d.Each(func(s uint) {
			if chosen != -1 {
				return
			}
			if solver.Value(z.Dimacs2Lit(varOf[i][s])) {
				chosen = int(s)
			}
		})
		if chosen == -1 {
			// Should not happen given the at-least-one clause; fall back to
			// the first live state rather than leave the triplet unassigned.
			chosen = int(d.ToSlice()[0])
		}
		assignment[i] = chosen
	}
	return assignment, true
}

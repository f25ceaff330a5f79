package search

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpuncher/matryoshka/pkg/puncher/bitset"
	"github.com/mpuncher/matryoshka/pkg/puncher/compat"
	"github.com/mpuncher/matryoshka/pkg/puncher/igraph"
	"github.com/mpuncher/matryoshka/pkg/puncher/triplet"
)

// buildChain mirrors ac3's helper of the same name: n triplets in a chain,
// triplet i ranging over {i+1, i+2} and sharing variable i+2 with triplet i+1.
func buildChain(n int) ([]*triplet.Triplet, [][]triplet.State, *igraph.Graph, []*compat.Table) {
	ts := make([]*triplet.Triplet, n)
	states := make([][]triplet.State, n)
	varsOf := make([][]int, n)

	for i := 0; i < n; i++ {
		vars := []int{i + 1}
		if i+1 < n {
			vars = append(vars, i+2)
		}
		ts[i] = &triplet.Triplet{Vars: vars}
		varsOf[i] = vars
		if len(vars) == 1 {
			states[i] = []triplet.State{{Values: []bool{false}}, {Values: []bool{true}}}
		} else {
			states[i] = []triplet.State{
				{Values: []bool{false, false}},
				{Values: []bool{false, true}},
				{Values: []bool{true, false}},
				{Values: []bool{true, true}},
			}
		}
	}

	g := igraph.Build(varsOf)
	tables := compat.Build(ts, states, g)
	return ts, states, g, tables
}

func fullDomains(states [][]triplet.State) []*bitset.Set {
	doms := make([]*bitset.Set, len(states))
	for i, s := range states {
		doms[i] = bitset.All(uint(len(s)))
	}
	return doms
}

// buildOddCycle constructs three triplets over {1,2}, {2,3} and {1,3}, each
// with two states that give its two variables opposite values. Every state
// has a compatible state in both neighbours, so full domains are already
// arc-consistent, yet no choice satisfies all three (three booleans cannot be
// pairwise different); only search can find that. With unrelated set, a
// triplet over variable 4 with two states and no neighbours comes first.
func buildOddCycle(unrelated bool) ([]*triplet.Triplet, [][]triplet.State, *igraph.Graph, []*compat.Table) {
	differ := []triplet.State{{Values: []bool{false, true}}, {Values: []bool{true, false}}}
	var ts []*triplet.Triplet
	var states [][]triplet.State
	if unrelated {
		ts = append(ts, &triplet.Triplet{Vars: []int{4}})
		states = append(states, []triplet.State{{Values: []bool{false}}, {Values: []bool{true}}})
	}
	for _, vars := range [][]int{{1, 2}, {2, 3}, {1, 3}} {
		ts = append(ts, &triplet.Triplet{Vars: vars})
		states = append(states, differ)
	}

	varsOf := make([][]int, len(ts))
	for i, tr := range ts {
		varsOf[i] = tr.Vars
	}
	g := igraph.Build(varsOf)
	return ts, states, g, compat.Build(ts, states, g)
}

func newTestEngine(ts []*triplet.Triplet, states [][]triplet.State, tables []*compat.Table, g *igraph.Graph, h Heuristic, backjump bool) *Engine {
	return NewEngine(ts, states, tables, g, h, NewValueOrderer(Ascending, 1), backjump, 0, nil, 1, logrus.StandardLogger())
}

func TestSearchPlainFindsConsistentSolution(t *testing.T) {
	ts, states, g, tables := buildChain(4)
	doms := fullDomains(states)
	e := newTestEngine(ts, states, tables, g, MaxRemaining, false)

	assignment, ok := e.Solve(doms)
	require.True(t, ok)

	solution, err := Extract(ts, states, assignment)
	require.NoError(t, err)
	assert.Len(t, solution, 4) // variables 1..4, each assigned once in the merged map
}

func TestSearchPlainUnsatReturnsFalse(t *testing.T) {
	ts, states, g, tables := buildOddCycle(false)
	doms := fullDomains(states)

	e := newTestEngine(ts, states, tables, g, PlainMRV, false)
	_, ok := e.Solve(doms)
	assert.False(t, ok)
}

func TestSearchAllHeuristicsAgreeOnSatisfiability(t *testing.T) {
	for _, h := range []Heuristic{MaxRemaining, MRVImpact, PlainMRV} {
		ts, states, g, tables := buildChain(5)
		doms := fullDomains(states)
		e := newTestEngine(ts, states, tables, g, h, false)
		_, ok := e.Solve(doms)
		assert.True(t, ok, "heuristic %v should find the chain satisfiable", h)
	}
}

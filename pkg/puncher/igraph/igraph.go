// Package igraph builds the Interaction Graph (spec §4.3): triplets are
// vertices, connected when they share at least one variable, with each edge
// carrying the shared-variable set and a weight equal to its size. Per-vertex
// impact weight is the sum of incident edge weights, used by the MRV+impact
// search heuristic.
//
// The adjacency-list shape below (a slice indexed by vertex index, each entry
// a slice of Edge sorted by neighbour) follows the same "vertex -> list of neighbour edges" convention
// lvlath's graph/core package uses for its undirected adjacency lists,
// adapted here to integer triplet indices instead of string vertex IDs.
package igraph

import (
	"sort"
)

// Edge describes one interaction-graph edge from the owning triplet's point
// of view: the neighbour index, the shared variable set, and the weight
// (len(Shared)).
type Edge struct {
	Neighbor int
	Shared   []int // sorted ascending
	Weight   int
}

// Graph is the Interaction Graph: adjacency lists indexed by triplet index,
// plus the precomputed impact weight of each triplet.
type Graph struct {
	Adjacency [][]Edge
	Impact    []int
}

// Build constructs the Interaction Graph over n triplets given each
// triplet's variable set (varsOf[i] must be sorted ascending, as
// triplet.Triplet.Vars already is).
func Build(varsOf [][]int) *Graph {
	n := len(varsOf)
	g := &Graph{
		Adjacency: make([][]Edge, n),
		Impact:    make([]int, n),
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			shared := intersectSorted(varsOf[i], varsOf[j])
			if len(shared) == 0 {
				continue
			}
			w := len(shared)
			g.Adjacency[i] = append(g.Adjacency[i], Edge{Neighbor: j, Shared: shared, Weight: w})
			g.Adjacency[j] = append(g.Adjacency[j], Edge{Neighbor: i, Shared: shared, Weight: w})
			g.Impact[i] += w
			g.Impact[j] += w
		}
	}

	for i := range g.Adjacency {
		sort.Slice(g.Adjacency[i], func(a, b int) bool {
			return g.Adjacency[i][a].Neighbor < g.Adjacency[i][b].Neighbor
		})
	}

	return g
}

// intersectSorted returns the sorted intersection of two sorted,
// deduplicated int slices.
func intersectSorted(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// EdgeTo returns the edge from u to v, if present.
func (g *Graph) EdgeTo(u, v int) (Edge, bool) {
	for _, e := range g.Adjacency[u] {
		if e.Neighbor == v {
			return e, true
		}
	}
	return Edge{}, false
}

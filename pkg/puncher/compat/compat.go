// Package compat precomputes the Compatibility Table (spec §4.4): for every
// interaction-graph edge (i,j) and every state s of i, the bitmask over j's
// states that agree with s on every shared variable.
//
// Storage follows the sparse, memory-lean option spec §4.4 allows: each
// triplet keeps a map keyed by neighbour index to a slice of bitset.Set, one
// per local state. Per SPEC_FULL.md Open Question (a), the self-edge (i,i)
// is never stored or queried.
package compat

import (
	"github.com/mpuncher/matryoshka/pkg/puncher/bitset"
	"github.com/mpuncher/matryoshka/pkg/puncher/igraph"
	"github.com/mpuncher/matryoshka/pkg/puncher/triplet"
)

// Table holds the compatibility masks for one triplet, keyed by neighbour
// index then by local state index.
type Table struct {
	// ByNeighbor[j][s] is the bitmask over j's states compatible with this
	// triplet's state s.
	ByNeighbor map[int][]*bitset.Set
}

// Build precomputes the compatibility table for every triplet in ts, using
// graph g for adjacency and states[i] for triplet i's enumerated states.
func Build(ts []*triplet.Triplet, states [][]triplet.State, g *igraph.Graph) []*Table {
	tables := make([]*Table, len(ts))
	for i := range ts {
		tables[i] = &Table{ByNeighbor: make(map[int][]*bitset.Set)}
	}

	for i, tr := range ts {
		for _, e := range g.Adjacency[i] {
			j := e.Neighbor
			neighborTriplet := ts[j]
			masks := make([]*bitset.Set, len(states[i]))
			for sIdx, s := range states[i] {
				mask := bitset.New(uint(len(states[j])))
				for tIdx, t := range states[j] {
					if agree(tr, s, neighborTriplet, t, e.Shared) {
						mask.SetBit(uint(tIdx))
					}
				}
				masks[sIdx] = mask
			}
			tables[i].ByNeighbor[j] = masks
		}
	}

	return tables
}

// agree reports whether state s of triplet ti and state t of triplet tj
// assign the same value to every variable in shared.
func agree(ti *triplet.Triplet, s triplet.State, tj *triplet.Triplet, t triplet.State, shared []int) bool {
	for _, v := range shared {
		if s.Value(ti, v) != t.Value(tj, v) {
			return false
		}
	}
	return true
}

// Mask returns the compatibility bitmask over neighbour j's states for local
// state s, and whether (i,j) is actually an edge (consumers must guard
// non-edges per spec §4.4).
func (tb *Table) Mask(s, j int) (*bitset.Set, bool) {
	masks, ok := tb.ByNeighbor[j]
	if !ok || s >= len(masks) {
		return nil, false
	}
	return masks[s], true
}

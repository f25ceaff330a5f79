// Package ac3 implements the AC-3 Propagator (spec §4.5): given a domain
// vector (one bitset.Set of live state indices per triplet) and an entry
// point, it filters domains to arc consistency or reports an empty-domain
// failure.
//
// Per spec §5, a Propagator reuses its arc queue and in-queue marker map
// across calls; these scratch structures are never observed outside this
// package.
package ac3

import (
	"github.com/mpuncher/matryoshka/pkg/puncher/bitset"
	"github.com/mpuncher/matryoshka/pkg/puncher/compat"
	"github.com/mpuncher/matryoshka/pkg/puncher/igraph"
)

// arc is a directed edge u -> v: "recheck v's domain against u's."
type arc struct{ u, v int }

// Propagator holds scratch state reused across Run calls for one puncher
// instance. Not safe for concurrent use — spec §5 mandates a single-threaded
// search, so a Propagator is only ever driven by one recursive search frame
// at a time.
type Propagator struct {
	queue   []arc
	inQueue map[arc]bool
}

// New returns a Propagator sized for n triplets.
func New(n int) *Propagator {
	return &Propagator{
		queue:   make([]arc, 0, n*4),
		inQueue: make(map[arc]bool, n*4),
	}
}

// Result is the outcome of one AC-3 invocation.
type Result struct {
	OK     bool
	Nogood []int // only populated when requested and OK is false
}

// RunAll seeds the queue with every directed arc in g and filters domains in
// place until arc-consistent or a domain collapses.
func (p *Propagator) RunAll(domains []*bitset.Set, tables []*compat.Table, g *igraph.Graph, wantNogood bool) Result {
	seed := make([]int, len(domains))
	for i := range seed {
		seed[i] = i
	}
	var initial []arc
	for i := range g.Adjacency {
		for _, e := range g.Adjacency[i] {
			initial = append(initial, arc{u: i, v: e.Neighbor})
		}
	}
	return p.run(initial, seed, domains, tables, g, wantNogood)
}

// RunFrom seeds the queue with arcs (u -> each neighbour of u) — the "seed
// with a single just-reduced triplet u" entry point used when search has
// just narrowed u to a singleton.
func (p *Propagator) RunFrom(u int, domains []*bitset.Set, tables []*compat.Table, g *igraph.Graph, wantNogood bool) Result {
	var initial []arc
	for _, e := range g.Adjacency[u] {
		initial = append(initial, arc{u: u, v: e.Neighbor})
	}
	return p.run(initial, []int{u}, domains, tables, g, wantNogood)
}

func (p *Propagator) run(initial []arc, seed []int, domains []*bitset.Set, tables []*compat.Table, g *igraph.Graph, wantNogood bool) Result {
	p.queue = p.queue[:0]
	for k := range p.inQueue {
		delete(p.inQueue, k)
	}

	var nogood map[int]bool
	if wantNogood {
		nogood = make(map[int]bool, len(seed))
		for _, s := range seed {
			nogood[s] = true
		}
	}

	for _, a := range initial {
		if !p.inQueue[a] {
			p.queue = append(p.queue, a)
			p.inQueue[a] = true
		}
	}

	for len(p.queue) > 0 {
		a := p.queue[0]
		p.queue = p.queue[1:]
		delete(p.inQueue, a)

		u, v := a.u, a.v

		allowed := unionAllowed(domains[u], tables[u], v)
		if !domains[v].SubsetOf(allowed) {
			domains[v].AndInPlace(allowed)
			if nogood != nil {
				nogood[u] = true
				nogood[v] = true
			}
			if domains[v].IsEmpty() {
				if nogood != nil {
					out := make([]int, 0, len(nogood))
					for k := range nogood {
						out = append(out, k)
					}
					return Result{OK: false, Nogood: out}
				}
				return Result{OK: false}
			}
			for _, e := range g.Adjacency[v] {
				if e.Neighbor == u {
					continue
				}
				na := arc{u: v, v: e.Neighbor}
				if !p.inQueue[na] {
					p.queue = append(p.queue, na)
					p.inQueue[na] = true
				}
			}
		}
	}

	return Result{OK: true}
}

// unionAllowed computes A = OR over s in du of C[u][s][v]. When du is a
// singleton the union collapses to a direct lookup with no loop (spec
// §4.5's required fast path).
func unionAllowed(du *bitset.Set, tu *compat.Table, v int) *bitset.Set {
	masks, ok := tu.ByNeighbor[v]
	if !ok {
		// No edge between u and v. run only visits arcs taken from
		// g.Adjacency, so this is not reached; the empty mask returned here
		// allows no state of v rather than leaving v unconstrained, and is
		// returned only to avoid a nil dereference.
		return bitset.New(0)
	}

	if lowest, ok := du.Lowest(); ok && du.IsSingleton() {
		return masks[lowest].Clone()
	}

	result := bitset.New(masks[0].Cap())
	du.Each(func(s uint) {
		result.OrInPlace(masks[s])
	})
	return result
}

package search

import (
	"sort"

	"github.com/mpuncher/matryoshka/pkg/puncher/bddendgame"
	"github.com/mpuncher/matryoshka/pkg/puncher/bitset"
)

// searchBackjump implements conflict-directed backjumping (spec §4.6,
// SPEC_FULL.md §0), grounded directly on original_source/puncher/
// rms_ultimate.py's backjump_search/ac3_filter pair: AC-3 is run with
// wantNogood so each failed branch reports which triplets participated in
// the contradiction. When a child search fails with a conflict set that does
// not contain the current target, this level returns that set upward at once
// instead of retrying its remaining sibling values.
//
// Returns the assignment and success flag like searchPlain, plus the
// conflict set accumulated at this level — the set of triplet indices whose
// past choices contributed to every failure seen so far. Callers above
// inspect whether they appear in it to decide whether to keep branching or
// unwind further.
func (e *Engine) searchBackjump(domains []*bitset.Set, path map[int]bool) ([]int, map[int]bool, bool) {
	if e.Residual != nil && e.ResidualThreshold > 0 && bddendgame.TotalLive(domains) < e.ResidualThreshold {
		assignment, ok := e.Residual.Solve(domains, e.Tables, e.Graph)
		if ok {
			return assignment, nil, true
		}
		// The residual gives no per-variable conflict information; blame
		// every triplet on the current path since any of them might be at
		// fault.
		return nil, clonePath(path), false
	}

	target := SelectTarget(e.Heuristic, domains, e.Graph.Impact)
	if target == -1 {
		return extractSingletons(domains), nil, true
	}

	childPath := clonePath(path)
	childPath[target] = true

	levelConflict := make(map[int]bool)
	candidates := e.Orderer.Candidates(domains[target])
	for _, s := range candidates {
		branch := cloneDomains(domains)
		branch[target] = bitset.Singleton(domains[target].Cap(), s)

		res := e.prop.RunFrom(target, branch, e.Tables, e.Graph, true)
		if !res.OK {
			mergeInto(levelConflict, res.Nogood)
			continue
		}

		assignment, childConflict, ok := e.searchBackjump(branch, childPath)
		if ok {
			return assignment, nil, true
		}

		if len(childConflict) == 0 {
			// Nothing implicated — can't happen for a well-formed failure,
			// but rather than unwind forever, blame a random past variable
			// per SPEC_FULL.md Open Question (b) and keep going.
			childConflict = map[int]bool{e.randomPastVar(childPath, target): true}
		}

		if !childConflict[target] {
			// This level played no part in the deeper failure: every
			// remaining sibling value would hit the same wall, so skip them
			// and hand the conflict set further up immediately.
			return nil, childConflict, false
		}

		mergeInto(levelConflict, childConflict)
	}

	// Every candidate at this level is exhausted; this level itself is
	// resolved and should not be blamed further up.
	delete(levelConflict, target)
	return nil, levelConflict, false
}

func mergeInto(dst map[int]bool, src []int) {
	for _, v := range src {
		dst[v] = true
	}
}

func clonePath(path map[int]bool) map[int]bool {
	out := make(map[int]bool, len(path))
	for k, v := range path {
		out[k] = v
	}
	return out
}

// randomPastVar picks a uniformly random triplet index from path, excluding
// target if any alternative exists, matching rms_ultimate.py's
// random.choice(...) fallback substitution.
func (e *Engine) randomPastVar(path map[int]bool, target int) int {
	candidates := make([]int, 0, len(path))
	for v := range path {
		if v != target {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return target
	}
	sort.Ints(candidates)
	return candidates[e.cbjRand.Intn(len(candidates))]
}

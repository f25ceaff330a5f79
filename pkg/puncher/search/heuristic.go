// Package search implements the Recursive Search (spec §4.6): variable
// (triplet) selection heuristics, value (state) ordering, the recursive
// branch-and-propagate loop, its conflict-directed backjumping variant, and
// the Solution Extractor (spec §4.7).
package search

import (
	"github.com/mpuncher/matryoshka/pkg/puncher/bitset"
)

// Heuristic selects the next branching triplet.
type Heuristic int

const (
	// MaxRemaining chooses the triplet with the largest live-state count
	// greater than one, aiming to prune the biggest domain first.
	MaxRemaining Heuristic = iota
	// MRVImpact chooses the triplet minimizing count/(impact+k) among
	// triplets with count > 1, favoring small, highly connected domains.
	MRVImpact
	// PlainMRV chooses the minimum live-state count greater than one, ties
	// broken by lowest index.
	PlainMRV
)

// ImpactSmoothing is the "small positive smoothing constant" spec §4.6
// documents for MRV+impact (k = 1 or 2); 1 matches the corpus's
// rms.py/rms_ultimate.py `score = count / (impact_weight + 1)`.
const ImpactSmoothing = 1

// SelectTarget picks the branching triplet index, or -1 if every triplet's
// domain is already a singleton (search should terminate successfully).
func SelectTarget(h Heuristic, domains []*bitset.Set, impact []int) int {
	switch h {
	case MaxRemaining:
		return selectMaxRemaining(domains)
	case MRVImpact:
		return selectMRVImpact(domains, impact)
	default:
		return selectPlainMRV(domains)
	}
}

func selectMaxRemaining(domains []*bitset.Set) int {
	best, bestCount := -1, uint(0)
	for i, d := range domains {
		c := d.Count()
		if c > 1 && c > bestCount {
			best, bestCount = i, c
		}
	}
	return best
}

func selectMRVImpact(domains []*bitset.Set, impact []int) int {
	best := -1
	bestScore := 0.0
	for i, d := range domains {
		c := d.Count()
		if c <= 1 {
			continue
		}
		score := float64(c) / float64(impact[i]+ImpactSmoothing)
		if best == -1 || score < bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func selectPlainMRV(domains []*bitset.Set) int {
	best, bestCount := -1, uint(0)
	for i, d := range domains {
		c := d.Count()
		if c <= 1 {
			continue
		}
		if best == -1 || c < bestCount {
			best, bestCount = i, c
		}
	}
	return best
}

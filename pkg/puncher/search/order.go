package search

import (
	"math/rand"

	"github.com/mpuncher/matryoshka/pkg/puncher/bitset"
)

// Order selects how candidate states of the branching triplet are tried.
type Order int

const (
	// Ascending tries states in ascending index order.
	Ascending Order = iota
	// RandomOrder shuffles the live state indices using a seeded,
	// deterministic pseudorandom source so runs stay reproducible.
	RandomOrder
)

// ValueOrderer produces the candidate order for a domain's live states.
// Matches the gitrdm-gokando RandomLabeling pattern: a single rand.Rand
// seeded once and reused, never reading OS entropy during search.
type ValueOrderer struct {
	order Order
	rng   *rand.Rand
}

// NewValueOrderer returns an orderer. seed is only consulted for RandomOrder.
func NewValueOrderer(order Order, seed int64) *ValueOrderer {
	vo := &ValueOrderer{order: order}
	if order == RandomOrder {
		vo.rng = rand.New(rand.NewSource(seed))
	}
	return vo
}

// Candidates returns the live state indices of domain in the orderer's
// chosen order.
func (vo *ValueOrderer) Candidates(domain *bitset.Set) []uint {
	idx := domain.ToSlice()
	if vo.order == RandomOrder {
		vo.rng.Shuffle(len(idx), func(i, j int) {
			idx[i], idx[j] = idx[j], idx[i]
		})
	}
	return idx
}

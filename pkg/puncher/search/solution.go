package search

import (
	"github.com/pkg/errors"

	"github.com/mpuncher/matryoshka/pkg/puncher/triplet"
)

// ErrDisagreement is returned by Extract when two triplets that share a
// variable assign it different values — an internal invariant violation
// (spec §4.7: "if extraction finds none [a consistent assignment], that is
// an internal invariant violation, not a normal solver outcome") since AC-3
// and search together are supposed to make that impossible by the time
// every domain is a singleton.
var ErrDisagreement = errors.New("search: triplets disagree on a shared variable")

// Extract implements the Solution Extractor (spec §4.7): given the final
// per-triplet state index chosen by search, it reads off each triplet's
// variable assignments and merges them into one global map, checking that
// every variable that appears in more than one triplet agrees across all of
// them.
func Extract(ts []*triplet.Triplet, states [][]triplet.State, assignment []int) (map[int]bool, error) {
	out := make(map[int]bool)
	for i, tr := range ts {
		chosenIdx := assignment[i]
		if chosenIdx < 0 || chosenIdx >= len(states[i]) {
			return nil, errors.Errorf("search: triplet %d chosen state index %d out of range", i, chosenIdx)
		}
		st := states[i][chosenIdx]
		for j, v := range tr.Vars {
			val := st.Values[j]
			if existing, seen := out[v]; seen && existing != val {
				return nil, errors.Wrapf(ErrDisagreement, "variable %d: triplet %d says %v, prior triplet said %v", v, i, val, existing)
			}
			out[v] = val
		}
	}
	return out, nil
}

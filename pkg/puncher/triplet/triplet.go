// Package triplet implements the Triplet Builder and State Enumerator
// (spec §4.1, §4.2): clauses are greedily grouped into macro-nodes of 1-3
// clauses that maximize intra-group variable overlap, and each group's
// satisfying assignments are enumerated in a canonical, stable order.
package triplet

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/mpuncher/matryoshka/pkg/puncher/dimacs"
)

// ErrTrivialUnsat is returned by Enumerate when a triplet has no satisfying
// state — spec §4.2's "if no k satisfies, the instance is UNSAT."
var ErrTrivialUnsat = errors.New("triplet: no satisfying assignment (trivial UNSAT)")

// Triplet is an ordered group of 1-3 clauses together with their sorted,
// deduplicated variable set.
type Triplet struct {
	Clauses []dimacs.Clause
	Vars    []int // sorted ascending, 1-based variable indices
}

// State is one satisfying assignment of a Triplet's variables, indexed by
// position in Triplet.Vars (Values[i] is the value of Vars[i]).
type State struct {
	Values []bool
}

// Value returns the assignment of variable v within this state, given the
// triplet it belongs to. Panics if v is not one of t.Vars (a caller bug).
func (s State) Value(t *Triplet, v int) bool {
	idx := sort.SearchInts(t.Vars, v)
	if idx >= len(t.Vars) || t.Vars[idx] != v {
		panic(errors.Errorf("triplet: variable %d not in triplet", v))
	}
	return s.Values[idx]
}

// varsOf returns the sorted, deduplicated set of variables appearing in cs.
func varsOf(cs []dimacs.Clause) []int {
	seen := make(map[int]struct{})
	for _, c := range cs {
		for _, lit := range c {
			v := lit
			if v < 0 {
				v = -v
			}
			seen[v] = struct{}{}
		}
	}
	vars := make([]int, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Ints(vars)
	return vars
}

// Build partitions clauses into triplets per spec §4.1: scan clauses in
// input order; for each unused clause seed a new triplet; twice in a row,
// greedily add the unused clause whose variable set maximizes overlap with
// the triplet built so far (ties broken by lowest clause index — the first
// maximal candidate found during the left-to-right scan, per SPEC_FULL.md
// Open Question (c)); close the triplet early if no unused clause remains.
func Build(clauses []dimacs.Clause) []*Triplet {
	used := make([]bool, len(clauses))
	var triplets []*Triplet

	for i := range clauses {
		if used[i] {
			continue
		}
		group := []dimacs.Clause{clauses[i]}
		used[i] = true

		for step := 0; step < 2; step++ {
			groupVars := varsSet(group)
			best, bestOverlap := -1, -1
			for j := range clauses {
				if used[j] {
					continue
				}
				overlap := overlapCount(groupVars, clauses[j])
				if overlap > bestOverlap {
					bestOverlap, best = overlap, j
				}
			}
			if best == -1 {
				break
			}
			group = append(group, clauses[best])
			used[best] = true
		}

		triplets = append(triplets, &Triplet{
			Clauses: group,
			Vars:    varsOf(group),
		})
	}

	return triplets
}

func varsSet(cs []dimacs.Clause) map[int]struct{} {
	m := make(map[int]struct{})
	for _, c := range cs {
		for _, lit := range c {
			v := lit
			if v < 0 {
				v = -v
			}
			m[v] = struct{}{}
		}
	}
	return m
}

func overlapCount(groupVars map[int]struct{}, c dimacs.Clause) int {
	seen := make(map[int]struct{}, len(c))
	n := 0
	for _, lit := range c {
		v := lit
		if v < 0 {
			v = -v
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if _, ok := groupVars[v]; ok {
			n++
		}
	}
	return n
}

// satisfied reports whether assignment vals (indexed as t.Vars) satisfies
// clause c.
func satisfied(t *Triplet, vals []bool, c dimacs.Clause) bool {
	for _, lit := range c {
		v := lit
		neg := v < 0
		if neg {
			v = -v
		}
		idx := sort.SearchInts(t.Vars, v)
		val := vals[idx]
		if (!neg && val) || (neg && !val) {
			return true
		}
	}
	return false
}

// Enumerate computes t's ordered state list per spec §4.2: variables are
// sorted ascending (already true of t.Vars); for k = 0..2^n-1, bit j of k is
// the value of the j-th variable in sorted order, and the assignment is kept
// iff every clause is satisfied. Enumeration order is the state's canonical
// index and must not be reordered afterward — compatibility indices in
// package compat depend on it.
func Enumerate(t *Triplet) ([]State, error) {
	n := uint(len(t.Vars))
	if n > 30 {
		// A triplet holds at most 3 clauses, so this bound is only reached
		// when those clauses together mention more than 30 distinct
		// variables (long clauses); such a triplet is rejected with an error.
		return nil, errors.Errorf("triplet: %d variables in one triplet exceeds enumeration bound", n)
	}

	var states []State
	vals := make([]bool, n)
	total := uint64(1) << n
	for k := uint64(0); k < total; k++ {
		for j := uint(0); j < n; j++ {
			vals[j] = (k>>j)&1 == 1
		}
		ok := true
		for _, c := range t.Clauses {
			if !satisfied(t, vals, c) {
				ok = false
				break
			}
		}
		if ok {
			cp := make([]bool, n)
			copy(cp, vals)
			states = append(states, State{Values: cp})
		}
	}

	if len(states) == 0 {
		return nil, ErrTrivialUnsat
	}
	return states, nil
}

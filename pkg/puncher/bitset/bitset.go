// Package bitset provides the variable-width bitset domain primitive used
// throughout the Puncher core: per-triplet live-state domains and per-edge
// compatibility masks share this type instead of a hand-rolled []uint64.
// (The AC-3 in-queue marker is a map inside ac3.Propagator, not a Set.)
//
// Set wraps github.com/bits-and-blooms/bitset so that state counts larger
// than a single machine word (a nine-variable triplet already has 2^9
// possible states) are represented uniformly, with popcount, AND, OR and
// set-bit iteration handled by the underlying library.
package bitset

import (
	bbs "github.com/bits-and-blooms/bitset"
)

// Set is a fixed-capacity bitset over state indices 0..n-1.
type Set struct {
	bs  *bbs.BitSet
	cap uint
}

// New returns an empty Set with room for n bits.
func New(n uint) *Set {
	return &Set{bs: bbs.New(n), cap: n}
}

// All returns a Set with all n bits set (the initial domain of a triplet:
// every enumerated state is alive until AC-3 or search says otherwise).
func All(n uint) *Set {
	s := New(n)
	for i := uint(0); i < n; i++ {
		s.bs.Set(i)
	}
	return s
}

// Singleton returns a Set of capacity n with only bit i set.
func Singleton(n, i uint) *Set {
	s := New(n)
	s.bs.Set(i)
	return s
}

// Cap returns the bitset's fixed capacity.
func (s *Set) Cap() uint { return s.cap }

// Test reports whether bit i is set.
func (s *Set) Test(i uint) bool { return s.bs.Test(i) }

// SetBit sets bit i.
func (s *Set) SetBit(i uint) { s.bs.Set(i) }

// ClearBit clears bit i.
func (s *Set) ClearBit(i uint) { s.bs.Clear(i) }

// Count returns the number of set bits (the live-state count of a domain).
func (s *Set) Count() uint { return s.bs.Count() }

// IsEmpty reports whether no bits are set.
func (s *Set) IsEmpty() bool { return s.bs.None() }

// IsSingleton reports whether exactly one bit is set.
func (s *Set) IsSingleton() bool { return s.bs.Count() == 1 }

// Lowest returns the index of the lowest set bit and true, or (0, false) if
// empty. This is the "constant-time lowest set bit primitive" spec.md §4.5
// requires for efficient per-bit iteration of a domain.
func (s *Set) Lowest() (uint, bool) {
	return s.bs.NextSet(0)
}

// Each calls f once for every set bit in ascending order. f must not mutate
// s; callers that need to shrink a Set while iterating should collect
// indices first.
func (s *Set) Each(f func(i uint)) {
	for i, ok := s.bs.NextSet(0); ok; i, ok = s.bs.NextSet(i + 1) {
		f(i)
	}
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	return &Set{bs: s.bs.Clone(), cap: s.cap}
}

// And returns a new Set that is the bitwise AND of s and other.
func (s *Set) And(other *Set) *Set {
	return &Set{bs: s.bs.Intersection(other.bs), cap: s.cap}
}

// AndInPlace intersects s with other in place, returning whether s changed.
func (s *Set) AndInPlace(other *Set) bool {
	before := s.bs.Count()
	s.bs.InPlaceIntersection(other.bs)
	return s.bs.Count() != before
}

// Or returns a new Set that is the bitwise OR of s and other.
func (s *Set) Or(other *Set) *Set {
	return &Set{bs: s.bs.Union(other.bs), cap: s.cap}
}

// OrInPlace unions other into s in place.
func (s *Set) OrInPlace(other *Set) {
	s.bs.InPlaceUnion(other.bs)
}

// SubsetOf reports whether every bit set in s is also set in other — the
// AC-3 "D[v] ⊈ A" check in spec.md §4.5 is the negation of this.
func (s *Set) SubsetOf(other *Set) bool {
	return s.bs.DifferenceCardinality(other.bs) == 0
}

// Equal reports whether s and other contain exactly the same bits.
func (s *Set) Equal(other *Set) bool {
	return s.bs.Equal(other.bs)
}

// Clear resets every bit to zero.
func (s *Set) Clear() {
	s.bs.ClearAll()
}

// ToSlice returns the set bit indices in ascending order. It allocates a new
// slice on every call; search uses it to list a branching triplet's
// candidate states.
func (s *Set) ToSlice() []uint {
	out := make([]uint, 0, s.bs.Count())
	s.Each(func(i uint) { out = append(out, i) })
	return out
}

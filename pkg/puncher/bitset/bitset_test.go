package bitset

import "testing"

func TestAllAndSingleton(t *testing.T) {
	s := All(5)
	if s.Count() != 5 {
		t.Fatalf("expected 5 bits set, got %d", s.Count())
	}
	singleton := Singleton(5, 2)
	if !singleton.IsSingleton() {
		t.Fatalf("expected singleton")
	}
	if !singleton.Test(2) {
		t.Fatalf("expected bit 2 set")
	}
}

func TestAndInPlaceShrinks(t *testing.T) {
	a := All(4)
	b := Singleton(4, 1)
	changed := a.AndInPlace(b)
	if !changed {
		t.Fatalf("expected a to change")
	}
	if a.Count() != 1 || !a.Test(1) {
		t.Fatalf("expected a == {1}, got %v", a.ToSlice())
	}
}

func TestSubsetOf(t *testing.T) {
	a := Singleton(8, 3)
	b := All(8)
	if !a.SubsetOf(b) {
		t.Fatalf("singleton should be subset of full domain")
	}
	if b.SubsetOf(a) {
		t.Fatalf("full domain should not be subset of singleton")
	}
}

func TestEachVisitsAscending(t *testing.T) {
	s := New(10)
	s.SetBit(7)
	s.SetBit(1)
	s.SetBit(4)
	var seen []uint
	s.Each(func(i uint) { seen = append(seen, i) })
	want := []uint{1, 4, 7}
	if len(seen) != len(want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("got %v, want %v", seen, want)
		}
	}
}

func TestLowest(t *testing.T) {
	s := New(10)
	if _, ok := s.Lowest(); ok {
		t.Fatalf("expected empty set to have no lowest bit")
	}
	s.SetBit(5)
	s.SetBit(2)
	i, ok := s.Lowest()
	if !ok || i != 2 {
		t.Fatalf("expected lowest bit 2, got %d ok=%v", i, ok)
	}
}

func TestCloneIndependence(t *testing.T) {
	a := Singleton(4, 0)
	b := a.Clone()
	b.SetBit(3)
	if a.Count() != 1 {
		t.Fatalf("mutating clone must not affect original")
	}
}

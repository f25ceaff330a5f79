package triplet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpuncher/matryoshka/pkg/puncher/dimacs"
)

func TestBuildPartitionsEveryClauseExactlyOnce(t *testing.T) {
	clauses := []dimacs.Clause{
		{1, 2}, {2, 3}, {3, 4}, {5, 6}, {1, 5}, {6, 7}, {8},
	}
	triplets := Build(clauses)

	total := 0
	for _, tr := range triplets {
		assert.LessOrEqual(t, len(tr.Clauses), 3)
		assert.GreaterOrEqual(t, len(tr.Clauses), 1)
		total += len(tr.Clauses)
	}
	assert.Equal(t, len(clauses), total)
}

func TestBuildMaximizesOverlap(t *testing.T) {
	// Clause 0 shares 2 vars with clause 1, only 1 with clause 2: the
	// builder must pick clause 1 first.
	clauses := []dimacs.Clause{
		{1, 2, 3},
		{1, 2, 4},
		{1, 5, 6},
	}
	triplets := Build(clauses)
	require.Len(t, triplets, 1)
	require.Len(t, triplets[0].Clauses, 3)
	assert.Equal(t, clauses[1], triplets[0].Clauses[1])
}

func TestEnumerateSatisfiesAllClauses(t *testing.T) {
	tr := &Triplet{
		Clauses: []dimacs.Clause{{1, 2}, {-1, 2}},
		Vars:    []int{1, 2},
	}
	states, err := Enumerate(tr)
	require.NoError(t, err)
	for _, s := range states {
		for _, c := range tr.Clauses {
			assert.True(t, satisfied(tr, s.Values, c))
		}
	}
}

func TestEnumerateTrivialUnsat(t *testing.T) {
	tr := &Triplet{
		Clauses: []dimacs.Clause{{1}, {-1}},
		Vars:    []int{1},
	}
	_, err := Enumerate(tr)
	assert.ErrorIs(t, err, ErrTrivialUnsat)
}

func TestStateValue(t *testing.T) {
	tr := &Triplet{Vars: []int{2, 5}}
	s := State{Values: []bool{true, false}}
	assert.True(t, s.Value(tr, 2))
	assert.False(t, s.Value(tr, 5))
}

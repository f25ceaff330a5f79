package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchBackjumpFindsConsistentSolution(t *testing.T) {
	ts, states, g, tables := buildChain(6)
	doms := fullDomains(states)
	e := newTestEngine(ts, states, tables, g, MRVImpact, true)

	assignment, ok := e.Solve(doms)
	require.True(t, ok)

	_, err := Extract(ts, states, assignment)
	require.NoError(t, err)
}

func TestSearchBackjumpDetectsUnsat(t *testing.T) {
	ts, states, g, tables := buildOddCycle(false)
	doms := fullDomains(states)

	e := newTestEngine(ts, states, tables, g, PlainMRV, true)
	_, ok := e.Solve(doms)
	assert.False(t, ok)
}

func TestSearchBackjumpSkipsUnrelatedLevel(t *testing.T) {
	// Triplet 0 (variable 4) is unconstrained relative to the odd cycle in
	// triplets 1-3. PlainMRV branches on it first; the cycle's conflict
	// found below does not implicate it, so backjumping should pass it by
	// instead of trying its other value. This is a smoke test that the
	// search still terminates and reports UNSAT rather than looping.
	ts, states, g, tables := buildOddCycle(true)
	doms := fullDomains(states)

	e := newTestEngine(ts, states, tables, g, PlainMRV, true)
	_, ok := e.Solve(doms)
	assert.False(t, ok)
}

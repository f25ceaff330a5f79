package puncher

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpuncher/matryoshka/pkg/puncher/dimacs"
)

func mustParse(t *testing.T, cnf string) *dimacs.Instance {
	t.Helper()
	inst, err := dimacs.Parse(strings.NewReader(cnf), logrus.StandardLogger())
	require.NoError(t, err)
	return inst
}

func TestSolveSatisfiableInstance(t *testing.T) {
	inst := mustParse(t, `
p cnf 3 3
1 2 0
-1 3 0
-2 -3 0
`)
	res, err := Solve(inst, DefaultOptions())
	require.NoError(t, err)
	require.True(t, res.Satisfiable)

	for _, c := range inst.Clauses {
		satisfied := false
		for _, lit := range c {
			v := lit
			neg := v < 0
			if neg {
				v = -v
			}
			if res.Assignment[v] != neg {
				satisfied = true
				break
			}
		}
		assert.True(t, satisfied, "clause %v not satisfied by %v", c, res.Assignment)
	}
}

func TestSolveUnsatInstance(t *testing.T) {
	inst := mustParse(t, `
p cnf 1 2
1 0
-1 0
`)
	res, err := Solve(inst, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, res.Satisfiable)
}

func TestSolveBackjumpAgreesWithPlain(t *testing.T) {
	inst := mustParse(t, `
p cnf 4 4
1 2 0
-2 3 0
-3 4 0
-4 -1 0
`)
	plainOpts := DefaultOptions()
	plainOpts.Residual = ResidualNone
	plain, err := Solve(inst, plainOpts)
	require.NoError(t, err)

	bjOpts := plainOpts
	bjOpts.Backjump = true
	bj, err := Solve(inst, bjOpts)
	require.NoError(t, err)

	assert.Equal(t, plain.Satisfiable, bj.Satisfiable)
}

func TestSolveBruteForceResidualAgreesWithGini(t *testing.T) {
	inst := mustParse(t, `
p cnf 3 3
1 2 0
-1 3 0
-2 -3 0
`)
	giniOpts := DefaultOptions()
	giniOpts.Residual = ResidualGini
	giniOpts.ResidualThreshold = 1000
	giniRes, err := Solve(inst, giniOpts)
	require.NoError(t, err)

	bfOpts := giniOpts
	bfOpts.Residual = ResidualBruteForce
	bfRes, err := Solve(inst, bfOpts)
	require.NoError(t, err)

	assert.Equal(t, giniRes.Satisfiable, bfRes.Satisfiable)
}

// TestSolvePigeonholeIsUnsat covers spec §8 scenario 4: 3 pigeons into 2
// holes, the classic small UNSAT instance where AC-3 alone should empty a
// domain without search needing to exhaust every branch. Variables are
// x_ij = "pigeon i takes hole j": x11=1, x12=2, x21=3, x22=4, x31=5, x32=6.
// Each pigeon needs at least one hole (3 clauses); each hole holds at most
// one pigeon, one clause per pair of pigeons per hole (6 clauses).
func TestSolvePigeonholeIsUnsat(t *testing.T) {
	inst := mustParse(t, `
p cnf 6 9
1 2 0
3 4 0
5 6 0
-1 -3 0
-1 -5 0
-3 -5 0
-2 -4 0
-2 -6 0
-4 -6 0
`)
	res, err := Solve(inst, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, res.Satisfiable)
}

// TestSolveRandomThresholdInstance covers spec §8 scenario 5: a 20-variable,
// 91-clause 3-SAT instance near the satisfiability threshold, known SAT by
// construction. Every clause is built from three pairwise-distinct variables
// (base, base+11, base+19 mod 20 are always pairwise distinct since their
// pairwise differences are never a multiple of 20) with the first literal of
// every clause forced positive, so the all-true assignment is a guaranteed
// model and the instance is SAT regardless of the other two literals' signs,
// which vary per clause to keep the mix of polarities representative of a
// random instance instead of every clause degenerating to a single variable.
func TestSolveRandomThresholdInstance(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("p cnf 20 91\n")
	for i := 0; i < 91; i++ {
		base := i % 20
		v1 := base + 1
		v2 := (base+11)%20 + 1
		v3 := (base+19)%20 + 1

		l2 := v2
		if (i/3)%2 == 1 {
			l2 = -v2
		}
		l3 := v3
		if (i/5)%2 == 1 {
			l3 = -v3
		}
		fmt.Fprintf(&sb, "%d %d %d 0\n", v1, l2, l3)
	}

	inst := mustParse(t, sb.String())
	res, err := Solve(inst, DefaultOptions())
	require.NoError(t, err)
	require.True(t, res.Satisfiable)

	for _, c := range inst.Clauses {
		satisfied := false
		for _, lit := range c {
			v := lit
			neg := v < 0
			if neg {
				v = -v
			}
			if res.Assignment[v] != neg {
				satisfied = true
				break
			}
		}
		assert.True(t, satisfied, "clause %v not satisfied by %v", c, res.Assignment)
	}
}

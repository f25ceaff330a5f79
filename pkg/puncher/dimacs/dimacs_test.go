package dimacs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, body string) *Instance {
	t.Helper()
	inst, err := Parse(strings.NewReader(body), nil)
	require.NoError(t, err)
	return inst
}

func TestParseBasicClauses(t *testing.T) {
	inst := mustParse(t, "p cnf 2 2\n1 2 0\n-1 -2 0\n")
	require.Len(t, inst.Clauses, 2)
	assert.Equal(t, Clause{1, 2}, inst.Clauses[0])
	assert.Equal(t, Clause{-1, -2}, inst.Clauses[1])
	assert.Equal(t, 2, inst.NumVars)
}

func TestParseIgnoresCommentsAndLoneZero(t *testing.T) {
	inst := mustParse(t, "c a comment\n% another\np cnf 1 1\n0\n1 0\n")
	require.Len(t, inst.Clauses, 1)
	assert.Equal(t, Clause{1}, inst.Clauses[0])
}

func TestParseInfersVarCountWithoutHeader(t *testing.T) {
	inst := mustParse(t, "1 2 0\n3 -4 0\n")
	assert.Equal(t, 4, inst.NumVars)
	assert.Equal(t, 0, inst.DeclaredVars)
}

func TestParseSkipsMalformedLineTolerantly(t *testing.T) {
	inst := mustParse(t, "1 2 0\nbogus line !!\n3 0\n")
	require.Len(t, inst.Clauses, 2)
	assert.Equal(t, Clause{1, 2}, inst.Clauses[0])
	assert.Equal(t, Clause{3}, inst.Clauses[1])
}

func TestParseDropsEmptyClauseAfterStrippingTerminator(t *testing.T) {
	inst := mustParse(t, "0\n1 0\n")
	require.Len(t, inst.Clauses, 1)
}

func TestSummarize(t *testing.T) {
	inst := mustParse(t, "p cnf 3 2\n1 2 0\n-2 3 -1 0\n")
	stats := Summarize(inst)
	assert.Equal(t, 3, stats.NumVars)
	assert.Equal(t, 2, stats.NumClauses)
	assert.Equal(t, 2, stats.MinLen)
	assert.Equal(t, 3, stats.MaxLen)
	assert.InDelta(t, 2.5, stats.MeanLen, 0.001)
}

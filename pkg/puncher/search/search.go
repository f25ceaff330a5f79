package search

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/mpuncher/matryoshka/pkg/puncher/ac3"
	"github.com/mpuncher/matryoshka/pkg/puncher/bddendgame"
	"github.com/mpuncher/matryoshka/pkg/puncher/bitset"
	"github.com/mpuncher/matryoshka/pkg/puncher/compat"
	"github.com/mpuncher/matryoshka/pkg/puncher/igraph"
	"github.com/mpuncher/matryoshka/pkg/puncher/triplet"
)

// Engine holds everything the Recursive Search (spec §4.6) needs across the
// life of one solve: the static triplet/state/compat/interaction-graph
// structures, the heuristic and ordering configuration, a reused AC-3
// propagator, and an optional residual endgame solver.
type Engine struct {
	Triplets []*triplet.Triplet
	States   [][]triplet.State
	Tables   []*compat.Table
	Graph    *igraph.Graph

	Heuristic Heuristic
	Orderer   *ValueOrderer
	Backjump  bool

	// ResidualThreshold is the total-live-state count (bddendgame.TotalLive)
	// below which the search hands the remaining problem to Residual instead
	// of continuing to branch. A threshold <= 0 disables the endgame.
	ResidualThreshold int
	Residual          bddendgame.Solver

	prop *ac3.Propagator
	log  *logrus.Logger

	// cbjRand backs the random safety substitution rms_ultimate.py falls
	// back to when conflict-directed backjumping computes an empty conflict
	// set (SPEC_FULL.md Open Question (b)) — used only by searchBackjump,
	// independent of Orderer's value-ordering randomness.
	cbjRand *rand.Rand
}

// NewEngine constructs an Engine. log may be nil, in which case
// logrus.StandardLogger() is used. seed drives the CBJ safety-substitution
// fallback only; value ordering randomness is controlled separately via
// orderer.
func NewEngine(
	ts []*triplet.Triplet,
	states [][]triplet.State,
	tables []*compat.Table,
	g *igraph.Graph,
	h Heuristic,
	orderer *ValueOrderer,
	backjump bool,
	residualThreshold int,
	residual bddendgame.Solver,
	seed int64,
	log *logrus.Logger,
) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{
		Triplets:          ts,
		States:            states,
		Tables:            tables,
		Graph:             g,
		Heuristic:         h,
		Orderer:           orderer,
		Backjump:          backjump,
		ResidualThreshold: residualThreshold,
		Residual:          residual,
		prop:              ac3.New(len(ts)),
		log:               log,
		cbjRand:           rand.New(rand.NewSource(seed)),
	}
}

// Solve runs the configured search over a pre-propagated domain vector
// (ac3.RunAll should already have been applied by the caller — search assumes
// its starting point is already arc-consistent, per spec §4.5's "feeds the
// initial domains" entry point). domains is consumed in place; callers that
// need the original afterward should clone first.
func (e *Engine) Solve(domains []*bitset.Set) ([]int, bool) {
	if e.Backjump {
		assignment, _, ok := e.searchBackjump(domains, make(map[int]bool))
		return assignment, ok
	}
	return e.searchPlain(domains)
}

// searchPlain implements the non-backjumping recursive branch-and-propagate
// loop (spec §4.6): pick a target triplet via the configured heuristic,
// branch over its live states in the configured order, propagate with AC-3
// seeded from the branched triplet, and recurse. Falls back to the residual
// endgame once the live-state total drops below the threshold.
func (e *Engine) searchPlain(domains []*bitset.Set) ([]int, bool) {
	if e.Residual != nil && e.ResidualThreshold > 0 && bddendgame.TotalLive(domains) < e.ResidualThreshold {
		e.log.WithField("liveStates", bddendgame.TotalLive(domains)).Debug("search: handing off to residual endgame")
		return e.Residual.Solve(domains, e.Tables, e.Graph)
	}

	target := SelectTarget(e.Heuristic, domains, e.Graph.Impact)
	if target == -1 {
		return extractSingletons(domains), true
	}

	candidates := e.Orderer.Candidates(domains[target])
	for _, s := range candidates {
		branch := cloneDomains(domains)
		branch[target] = bitset.Singleton(domains[target].Cap(), s)

		res := e.prop.RunFrom(target, branch, e.Tables, e.Graph, false)
		if !res.OK {
			continue
		}
		if assignment, ok := e.searchPlain(branch); ok {
			return assignment, true
		}
	}
	return nil, false
}

// cloneDomains returns an independent deep copy of a domain vector so a
// search branch can mutate freely without disturbing its parent's state.
func cloneDomains(domains []*bitset.Set) []*bitset.Set {
	out := make([]*bitset.Set, len(domains))
	for i, d := range domains {
		out[i] = d.Clone()
	}
	return out
}

// extractSingletons reads off the single live state of every (by
// construction, already-singleton) domain.
func extractSingletons(domains []*bitset.Set) []int {
	out := make([]int, len(domains))
	for i, d := range domains {
		lowest, _ := d.Lowest()
		out[i] = int(lowest)
	}
	return out
}

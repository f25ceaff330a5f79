// Package puncher wires the Triplet Builder, State Enumerator, Interaction
// Graph, Compatibility Table, AC-3 Propagator, Recursive Search and Solution
// Extractor together into the single entry point spec §2 describes: "read a
// CNF instance, decompose it into macro-nodes, propagate and search over
// compatible combinations, and report SAT/UNSAT with a witness."
package puncher

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mpuncher/matryoshka/pkg/puncher/ac3"
	"github.com/mpuncher/matryoshka/pkg/puncher/bddendgame"
	"github.com/mpuncher/matryoshka/pkg/puncher/bitset"
	"github.com/mpuncher/matryoshka/pkg/puncher/compat"
	"github.com/mpuncher/matryoshka/pkg/puncher/dimacs"
	"github.com/mpuncher/matryoshka/pkg/puncher/igraph"
	"github.com/mpuncher/matryoshka/pkg/puncher/search"
	"github.com/mpuncher/matryoshka/pkg/puncher/triplet"
)

// Sentinel errors naming the stages at which a solve can end, per
// SPEC_FULL.md §1.2. Solve reports the three UNSAT outcomes (ErrTrivialUnsat,
// ErrEmptyDomain, ErrSearchUnsat) as a Result with Satisfiable false and a
// nil error; of these sentinels it only returns ErrInternalInvariant, wrapped.
var (
	// ErrTrivialUnsat means a single triplet had no satisfying state during
	// decomposition — the instance is UNSAT before propagation or search
	// ever run.
	ErrTrivialUnsat = triplet.ErrTrivialUnsat
	// ErrEmptyDomain means the initial AC-3 pass (seeded over every arc,
	// before search begins) collapsed a domain to empty — the instance is
	// UNSAT by propagation alone.
	ErrEmptyDomain = errors.New("puncher: propagation collapsed a domain to empty (UNSAT)")
	// ErrSearchUnsat means propagation alone was inconclusive but the
	// recursive search exhausted every branch without finding a consistent
	// combination — the instance is UNSAT.
	ErrSearchUnsat = errors.New("puncher: search exhausted every branch (UNSAT)")
	// ErrInternalInvariant means a solve reached a state that the design
	// claims cannot happen (e.g. the Solution Extractor found disagreeing
	// triplets after search reported success). This indicates a solver bug,
	// not a property of the input instance.
	ErrInternalInvariant = errors.New("puncher: internal invariant violated")
)

// Heuristic re-exports search.Heuristic so callers need not import the
// search package directly.
type Heuristic = search.Heuristic

const (
	MaxRemaining = search.MaxRemaining
	MRVImpact    = search.MRVImpact
	PlainMRV     = search.PlainMRV
)

// Order re-exports search.Order.
type Order = search.Order

const (
	Ascending   = search.Ascending
	RandomOrder = search.RandomOrder
)

// ResidualKind selects which bddendgame.Solver backs the BDD endgame.
type ResidualKind int

const (
	// ResidualGini uses the real SAT-engine-backed solver.
	ResidualGini ResidualKind = iota
	// ResidualBruteForce uses direct enumeration.
	ResidualBruteForce
	// ResidualNone disables the endgame entirely; search always branches to
	// completion.
	ResidualNone
)

// Options configures one Solve call.
type Options struct {
	Heuristic         Heuristic
	Order             Order
	Seed              int64
	Backjump          bool
	ResidualThreshold int
	Residual          ResidualKind
	Log               *logrus.Logger
}

// DefaultOptions returns the reference configuration documented in
// SPEC_FULL.md §1.3: MRV+impact heuristic, ascending value order, no
// backjumping, residual threshold 400 backed by Gini.
func DefaultOptions() Options {
	return Options{
		Heuristic:         MRVImpact,
		Order:             Ascending,
		Seed:              1,
		Backjump:          false,
		ResidualThreshold: 400,
		Residual:          ResidualGini,
	}
}

// Result is the outcome of a Solve that returned no error. When Satisfiable
// is true, Assignment maps every variable that appears in some clause to its
// value; variables declared in the header but used by no clause are absent.
// When Satisfiable is false, Assignment is nil.
type Result struct {
	Satisfiable bool
	Assignment  map[int]bool
}

// Solve runs the full Puncher pipeline over inst and reports satisfiability.
// An UNSAT instance, whether detected at state enumeration, initial
// propagation or search, yields Satisfiable false and a nil error. A non-nil
// error is either ErrInternalInvariant (wrapped) or a failure to enumerate a
// triplet's states.
func Solve(inst *dimacs.Instance, opts Options) (Result, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	triplets := triplet.Build(inst.Clauses)
	log.WithField("triplets", len(triplets)).Debug("puncher: decomposed instance into triplets")

	states := make([][]triplet.State, len(triplets))
	varsOf := make([][]int, len(triplets))
	for i, tr := range triplets {
		s, err := triplet.Enumerate(tr)
		if err != nil {
			if errors.Is(err, triplet.ErrTrivialUnsat) {
				log.WithField("triplet", i).Info("puncher: triplet has no satisfying state, UNSAT")
				return Result{Satisfiable: false}, nil
			}
			return Result{}, errors.Wrap(err, "puncher: enumerating triplet states")
		}
		states[i] = s
		varsOf[i] = tr.Vars
	}

	g := igraph.Build(varsOf)
	tables := compat.Build(triplets, states, g)

	domains := make([]*bitset.Set, len(triplets))
	for i, s := range states {
		domains[i] = bitset.All(uint(len(s)))
	}

	prop := ac3.New(len(triplets))
	if res := prop.RunAll(domains, tables, g, false); !res.OK {
		log.Info("puncher: initial propagation found the instance UNSAT")
		return Result{Satisfiable: false}, nil
	}

	residual := resolveResidual(opts.Residual)
	orderer := search.NewValueOrderer(opts.Order, opts.Seed)
	threshold := opts.ResidualThreshold
	if opts.Residual == ResidualNone {
		threshold = 0
	}

	engine := search.NewEngine(
		triplets, states, tables, g,
		opts.Heuristic, orderer, opts.Backjump,
		threshold, residual, opts.Seed, log,
	)

	assignment, ok := engine.Solve(domains)
	if !ok {
		log.Info("puncher: search exhausted every branch, UNSAT")
		return Result{Satisfiable: false}, nil
	}

	solution, err := search.Extract(triplets, states, assignment)
	if err != nil {
		return Result{}, errors.Wrap(ErrInternalInvariant, err.Error())
	}

	return Result{Satisfiable: true, Assignment: solution}, nil
}

func resolveResidual(kind ResidualKind) bddendgame.Solver {
	switch kind {
	case ResidualGini:
		return bddendgame.Gini{}
	case ResidualBruteForce:
		return bddendgame.BruteForce{}
	default:
		return nil
	}
}

// Package dimacs provides a tolerant DIMACS CNF parser and benchmark
// directory loader.
//
// Parsing follows spec §6: lines starting with 'c', '%', or a lone '0' are
// ignored; a 'p cnf' line optionally declares the variable count (the clause
// count is ignored), and a header whose variable count is present but not an
// integer is an error; every other
// non-empty line is a whitespace-separated list of signed integers
// terminated by a trailing 0, which is stripped. Malformed integers abort
// that single line silently rather than the whole file (tolerant mode).
package dimacs

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Clause is an ordered sequence of signed, non-zero variable literals.
type Clause []int

// Instance is a parsed CNF: its clauses and the declared (or inferred)
// variable count.
type Instance struct {
	NumVars      int
	Clauses      []Clause
	DeclaredVars int // value from the "p cnf" header, 0 if absent
}

// Load reads and tolerantly parses a DIMACS CNF file at path.
func Load(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dimacs: open %s", path)
	}
	defer f.Close()
	return Parse(f, logrus.StandardLogger())
}

// Parse tolerantly parses a DIMACS CNF stream. log receives a warn-level
// entry for every malformed clause line it skips; comment, blank and
// lone-zero lines are skipped without one. log may be nil.
func Parse(r io.Reader, log *logrus.Logger) (*Instance, error) {
	inst := &Instance{}
	maxSeenVar := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "0" || strings.HasPrefix(line, "c") || strings.HasPrefix(line, "%") {
			continue
		}
		if strings.HasPrefix(line, "p") {
			fields := strings.Fields(line)
			if len(fields) >= 3 && fields[0] == "p" {
				n, err := strconv.Atoi(fields[2])
				if err != nil {
					return nil, errors.Errorf("dimacs: malformed header on line %d: %q", lineNo, line)
				}
				inst.DeclaredVars = n
			}
			continue
		}

		fields := strings.Fields(line)
		lits := make([]int, 0, len(fields))
		malformed := false
		for _, tok := range fields {
			v, err := strconv.Atoi(tok)
			if err != nil {
				malformed = true
				break
			}
			lits = append(lits, v)
		}
		if malformed {
			if log != nil {
				log.WithField("line", lineNo).Warn("dimacs: skipping malformed clause line")
			}
			continue
		}

		if n := len(lits); n > 0 && lits[n-1] == 0 {
			lits = lits[:n-1]
		}
		if len(lits) == 0 {
			continue
		}

		clause := make(Clause, len(lits))
		for i, v := range lits {
			clause[i] = v
			av := v
			if av < 0 {
				av = -av
			}
			if av > maxSeenVar {
				maxSeenVar = av
			}
		}
		inst.Clauses = append(inst.Clauses, clause)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "dimacs: read error")
	}

	inst.NumVars = inst.DeclaredVars
	if maxSeenVar > inst.NumVars {
		inst.NumVars = maxSeenVar
	}
	return inst, nil
}

// Stats summarizes an Instance for benchmark reporting, matching the
// original source's print_benchmark_info (variable/clause counts, density,
// and clause-length min/max/mean).
type Stats struct {
	NumVars     int
	NumClauses  int
	Density     float64
	MinLen      int
	MaxLen      int
	MeanLen     float64
}

// Summarize computes Stats for inst.
func Summarize(inst *Instance) Stats {
	s := Stats{NumVars: inst.NumVars, NumClauses: len(inst.Clauses)}
	if inst.NumVars > 0 {
		s.Density = float64(len(inst.Clauses)) / float64(inst.NumVars)
	}
	if len(inst.Clauses) == 0 {
		return s
	}
	total := 0
	s.MinLen = len(inst.Clauses[0])
	for _, c := range inst.Clauses {
		l := len(c)
		if l < s.MinLen {
			s.MinLen = l
		}
		if l > s.MaxLen {
			s.MaxLen = l
		}
		total += l
	}
	s.MeanLen = float64(total) / float64(len(inst.Clauses))
	return s
}

// BenchmarkFile pairs a loaded Instance with the path it came from, mirroring
// original_source/recursive_learning/dimacs_loader.py's
// load_benchmark_folder tuples of (filename, n, clauses).
type BenchmarkFile struct {
	Path     string
	Instance *Instance
}

// LoadBenchmarkDir loads every *.cnf file directly inside dir, sorted by
// filename for determinism. Files that fail to parse are skipped with a
// warning rather than aborting the whole directory load.
func LoadBenchmarkDir(dir string) ([]BenchmarkFile, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.cnf"))
	if err != nil {
		return nil, errors.Wrapf(err, "dimacs: glob %s", dir)
	}
	sort.Strings(matches)

	out := make([]BenchmarkFile, 0, len(matches))
	for _, path := range matches {
		inst, err := Load(path)
		if err != nil {
			logrus.WithError(err).WithField("file", path).Warn("dimacs: skipping unreadable benchmark file")
			continue
		}
		out = append(out, BenchmarkFile{Path: path, Instance: inst})
	}
	return out, nil
}

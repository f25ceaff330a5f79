package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mpuncher/matryoshka/pkg/puncher"
)

// exitError is the only non-zero exit code this CLI uses: spec.md's External
// Interfaces section requires exit code 0 on any successful run, whether the
// instance is reported SAT or UNSAT, reserving non-zero for an actual
// failure to produce an answer (bad input, internal invariant violation).
const exitError = 1

var (
	flagHeuristic         string
	flagOrder             string
	flagSeed              int64
	flagBackjump          bool
	flagResidualThreshold int
	flagResidual          string
	flagVerbose           bool
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matryoshka",
		Short: "Matryoshka Puncher: a triplet-decomposition SAT solver",
	}

	cmd.PersistentFlags().StringVar(&flagHeuristic, "heuristic", "mrv-impact", "branching heuristic: max-remaining, mrv-impact, mrv")
	cmd.PersistentFlags().StringVar(&flagOrder, "order", "ascending", "value order: ascending, random")
	cmd.PersistentFlags().Int64Var(&flagSeed, "seed", 1, "seed for random value order and CBJ safety substitution")
	cmd.PersistentFlags().BoolVar(&flagBackjump, "backjump", false, "enable conflict-directed backjumping")
	cmd.PersistentFlags().IntVar(&flagResidualThreshold, "residual-threshold", 400, "total live-state count below which the BDD endgame takes over")
	cmd.PersistentFlags().StringVar(&flagResidual, "residual", "gini", "residual endgame solver: gini, bruteforce, none")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(solveCmd())
	cmd.AddCommand(benchCmd())
	return cmd
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

func parseOptions(log *logrus.Logger) (puncher.Options, error) {
	opts := puncher.DefaultOptions()
	opts.Log = log
	opts.Seed = flagSeed
	opts.Backjump = flagBackjump
	opts.ResidualThreshold = flagResidualThreshold

	switch flagHeuristic {
	case "max-remaining":
		opts.Heuristic = puncher.MaxRemaining
	case "mrv-impact":
		opts.Heuristic = puncher.MRVImpact
	case "mrv":
		opts.Heuristic = puncher.PlainMRV
	default:
		return opts, fmt.Errorf("unknown --heuristic %q", flagHeuristic)
	}

	switch flagOrder {
	case "ascending":
		opts.Order = puncher.Ascending
	case "random":
		opts.Order = puncher.RandomOrder
	default:
		return opts, fmt.Errorf("unknown --order %q", flagOrder)
	}

	switch flagResidual {
	case "gini":
		opts.Residual = puncher.ResidualGini
	case "bruteforce":
		opts.Residual = puncher.ResidualBruteForce
	case "none":
		opts.Residual = puncher.ResidualNone
	default:
		return opts, fmt.Errorf("unknown --residual %q", flagResidual)
	}

	return opts, nil
}

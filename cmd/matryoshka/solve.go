package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpuncher/matryoshka/pkg/puncher"
	"github.com/mpuncher/matryoshka/pkg/puncher/dimacs"
)

func solveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve <file.cnf>",
		Short: "Solve a single DIMACS CNF instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			opts, err := parseOptions(log)
			if err != nil {
				return err
			}

			inst, err := dimacs.Load(args[0])
			if err != nil {
				return err
			}

			start := time.Now()
			res, err := puncher.Solve(inst, opts)
			elapsed := time.Since(start)
			if err != nil {
				return err
			}

			printResult(res, elapsed)
			return nil
		},
	}
}

// printResult writes the DIMACS-style answer line(s) spec §6 describes: a
// satisfiable instance prints one "v <lit> <lit> ... 0" line with every
// variable that appears in some clause, in ascending order (negated if
// assigned false), an
// unsatisfiable one prints "UNSAT". Both print elapsed solve time to stderr
// so scripted benchmark parsing of stdout stays unaffected.
func printResult(res puncher.Result, elapsed time.Duration) {
	fmt.Fprintf(os.Stderr, "solve time: %s\n", elapsed)

	if !res.Satisfiable {
		fmt.Println("UNSAT")
		return
	}

	vars := make([]int, 0, len(res.Assignment))
	for v := range res.Assignment {
		vars = append(vars, v)
	}
	sort.Ints(vars)

	fmt.Print("v")
	for _, v := range vars {
		lit := v
		if !res.Assignment[v] {
			lit = -v
		}
		fmt.Printf(" %d", lit)
	}
	fmt.Println(" 0")
}

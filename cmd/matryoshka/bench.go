package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mpuncher/matryoshka/internal/benchpool"
	"github.com/mpuncher/matryoshka/pkg/puncher/dimacs"
)

var flagWorkers int

func benchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench <dir>",
		Short: "Solve every *.cnf file in a directory and report aggregate statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			opts, err := parseOptions(log)
			if err != nil {
				return err
			}

			files, err := dimacs.LoadBenchmarkDir(args[0])
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println("no .cnf files found")
				return nil
			}

			for _, f := range files {
				stats := dimacs.Summarize(f.Instance)
				fmt.Printf("%s: vars=%d clauses=%d density=%.2f minLen=%d maxLen=%d meanLen=%.2f\n",
					f.Path, stats.NumVars, stats.NumClauses, stats.Density, stats.MinLen, stats.MaxLen, stats.MeanLen)
			}

			results, poolStats := benchpool.Run(context.Background(), files, opts, flagWorkers)

			sat, unsat, failed := 0, 0, 0
			for _, r := range results {
				switch {
				case r.Err != nil:
					failed++
					fmt.Printf("%s: error: %v\n", r.File.Path, r.Err)
				case r.Solve.Satisfiable:
					sat++
					fmt.Printf("%s: SAT in %s\n", r.File.Path, r.Duration)
				default:
					unsat++
					fmt.Printf("%s: UNSAT in %s\n", r.File.Path, r.Duration)
				}
			}

			fmt.Printf("\ntotal=%d sat=%d unsat=%d failed=%d\n", len(files), sat, unsat, failed)
			fmt.Printf("submitted=%d completed=%d failed=%d\n", poolStats.Submitted, poolStats.Completed, poolStats.Failed)
			return nil
		},
	}
	cmd.Flags().IntVar(&flagWorkers, "workers", runtime.NumCPU(), "number of files to solve concurrently")
	return cmd
}

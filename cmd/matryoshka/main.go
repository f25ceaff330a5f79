// Command matryoshka is the Puncher CLI (SPEC_FULL.md §1.3): `solve` reads a
// single DIMACS CNF file and reports SAT/UNSAT with a witness; `bench` runs
// every *.cnf file in a directory and prints aggregate statistics.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitError)
	}
}

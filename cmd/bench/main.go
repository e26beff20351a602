// Command bench replays benchmark datasets through the solver and
// checks every computed score against the known value. Datasets are
// plain, gzip, or zstd files of "moves score" lines.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fourscore/solver/internal/board"
	"github.com/fourscore/solver/internal/dataset"
	"github.com/fourscore/solver/internal/solver"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "dataset file (plain, .gz, or .zst)")
		inputDir   = flag.String("dir", "", "directory of dataset files")
		tableSlots = flag.Int("table-slots", 0, "transposition table slots (0 = default)")
		every      = flag.Int("progress", 1000, "print progress every N solved positions")
		warm       = flag.Bool("warm", false, "keep the table warm across positions")
	)
	flag.Parse()

	var (
		cases []dataset.Case
		err   error
	)
	switch {
	case *inputDir != "":
		cases, err = dataset.LoadDir(*inputDir)
	case *inputPath != "":
		cases, err = dataset.Load(*inputPath)
	default:
		fmt.Fprintln(os.Stderr, "need -input or -dir")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "load dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Benchmarking %d positions...\n", len(cases))

	s := solver.New(*tableSlots)
	var solved, failures int
	var totalNodes uint64
	start := time.Now()

	for i, c := range cases {
		pos, err := board.Parse(c.Moves)
		if err != nil {
			fmt.Fprintf(os.Stderr, "case %d: parse %q: %v\n", i+1, c.Moves, err)
			failures++
			continue
		}

		// A cold table per position keeps node counts comparable
		// between runs; -warm trades that for speed.
		if !*warm {
			s.ResetTable()
		}
		got := s.Solve(pos)
		totalNodes += s.NodeCount()

		if got != c.Score {
			fmt.Fprintf(os.Stderr, "case %d: %q solved to %d, want %d\n", i+1, c.Moves, got, c.Score)
			failures++
			continue
		}
		solved++

		if solved%*every == 0 {
			fmt.Printf("Solved %d/%d positions (%d nodes, %.0f knodes/s)\n",
				solved, len(cases), totalNodes,
				float64(totalNodes)/1000/time.Since(start).Seconds())
		}
	}

	elapsed := time.Since(start)
	var mean uint64
	if solved > 0 {
		mean = totalNodes / uint64(solved)
	}

	fmt.Printf("\nDone! Solved %d/%d positions (failures %d) in %s\n",
		solved, len(cases), failures, elapsed.Round(time.Millisecond))
	fmt.Printf("Nodes: %d total, %d mean, %.0f knodes/s\n",
		totalNodes, mean, float64(totalNodes)/1000/elapsed.Seconds())

	if failures > 0 {
		os.Exit(1)
	}
}

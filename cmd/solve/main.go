// Command solve is an interactive engine shell. It reads commands from
// stdin and writes protocol output to stdout, one command per line:
//
//	position [moves]  set up a position from a digit string
//	display           render the board
//	solve             score the position for the side to move
//	go                score every column and pick the best move
//	nodes             show nodes searched by the last command
//	reset             clear the board
//	quit              exit
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fourscore/solver/internal/board"
	"github.com/fourscore/solver/internal/solver"
)

func main() {
	fmt.Println("Connect-4 perfect-play solver")
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	// One solver for the whole session, so repeated searches reuse the
	// transposition table.
	s := solver.New(0)
	var pos board.Position
	var lastNodes uint64

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !in.Scan() {
			fmt.Println()
			return
		}
		cmd, args, _ := strings.Cut(strings.TrimSpace(in.Text()), " ")
		args = strings.TrimSpace(args)

		switch cmd {
		case "":
		case "quit", "exit":
			fmt.Println("Goodbye!")
			return
		case "help":
			printHelp()
		case "position":
			pos = handlePosition(pos, args)
		case "display", "d":
			fmt.Print(pos.String())
		case "solve":
			lastNodes = handleSolve(s, pos)
		case "go":
			lastNodes = handleGo(s, pos)
		case "nodes":
			fmt.Printf("Nodes analyzed: %d\n", lastNodes)
		case "reset":
			pos = board.Position{}
			fmt.Println("Position reset to empty board")
		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  position [moves]  - Set position (e.g., 'position 4433')")
	fmt.Println("  display           - Show the board")
	fmt.Println("  solve             - Score the position for the side to move")
	fmt.Println("  go                - Find best move")
	fmt.Println("  nodes             - Show nodes searched by the last command")
	fmt.Println("  reset             - Clear the board")
	fmt.Println("  quit              - Exit")
}

// handlePosition replays a digit string onto an empty board. A bad
// string leaves the current position untouched.
func handlePosition(pos board.Position, args string) board.Position {
	if args == "" {
		fmt.Println("Position reset to empty board")
		return board.Position{}
	}
	next, err := board.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return pos
	}
	fmt.Printf("Played %d moves\n", next.Plies())
	return next
}

func handleSolve(s *solver.Solver, pos board.Position) uint64 {
	score := s.Solve(pos)
	left := solver.MovesLeft(score, pos.Plies())
	switch solver.OutcomeOf(score) {
	case solver.Win:
		fmt.Printf("score %d (WIN), win in %d\n", score, left)
	case solver.Lose:
		fmt.Printf("score %d (LOSE), loss in %d\n", score, left)
	default:
		fmt.Printf("score %d (DRAW), draw in %d\n", score, left)
	}
	fmt.Printf("Nodes analyzed: %d\n", s.NodeCount())
	return s.NodeCount()
}

func handleGo(s *solver.Solver, pos board.Position) uint64 {
	// An immediate win needs no search.
	for col := 0; col < board.Width; col++ {
		if pos.CanDrop(col) && pos.WouldWin(col) {
			fmt.Printf("bestmove %d score WIN (immediate)\n", col+1)
			return 0
		}
	}
	if pos.IsFull() {
		fmt.Println("Game is a draw - no moves available")
		return 0
	}

	fmt.Println("Analyzing...")
	a := s.Analyze(pos)
	for col := 0; col < board.Width; col++ {
		if a.Legal[col] {
			fmt.Printf("  Column %d: score %d\n", col+1, a.Scores[col])
		}
	}
	fmt.Printf("bestmove %d score %d (%s)\n", a.Best+1, a.BestScore, solver.OutcomeOf(a.BestScore))
	fmt.Printf("Nodes analyzed: %d\n", a.Nodes)
	return a.Nodes
}

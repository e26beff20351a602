package board

import (
	"errors"
	"testing"
)

// drawFill is a 42-move sequence that fills the board without either
// player ever completing four in a row. Columns 2-7 are filled in
// pairs, column 1 last.
const drawFill = "232332322323454554544545676776766767111111"

func TestEmptyBoard(t *testing.T) {
	var p Position

	if p.Plies() != 0 {
		t.Errorf("Plies() = %d, want 0", p.Plies())
	}
	if p.IsFull() {
		t.Error("IsFull() = true on empty board")
	}
	if p.Key() == 0 {
		t.Error("Key() = 0, want nonzero")
	}
	for col := 0; col < Width; col++ {
		if !p.CanDrop(col) {
			t.Errorf("CanDrop(%d) = false, want true", col)
		}
		if p.WouldWin(col) {
			t.Errorf("WouldWin(%d) = true, want false", col)
		}
	}
}

func TestFullColumn(t *testing.T) {
	var p Position
	for i := 0; i < Height; i++ {
		if !p.CanDrop(0) {
			t.Fatalf("CanDrop(0) = false after %d drops", i)
		}
		p.Drop(0)
	}

	if p.CanDrop(0) {
		t.Error("CanDrop(0) = true after six drops, want false")
	}
	for col := 1; col < Width; col++ {
		if !p.CanDrop(col) {
			t.Errorf("CanDrop(%d) = false, want true", col)
		}
	}
	if p.Plies() != Height {
		t.Errorf("Plies() = %d, want %d", p.Plies(), Height)
	}
}

func TestWouldWin(t *testing.T) {
	tests := []struct {
		name  string
		moves string
		col   int
		want  bool
	}{
		{"vertical", "121212", 0, true},
		{"vertical wrong column", "121212", 2, false},
		{"vertical far column", "121212", 3, false},
		{"horizontal", "112233", 3, true},
		{"horizontal gap too wide", "112233", 5, false},
		{"diagonal up", "1223343447", 3, true},
		{"diagonal down", "4231312127", 0, true},
		{"no threat", "44", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.moves)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.moves, err)
			}
			if got := p.WouldWin(tt.col); got != tt.want {
				t.Errorf("WouldWin(%d) after %q = %v, want %v", tt.col, tt.moves, got, tt.want)
			}
		})
	}
}

func TestDropGravity(t *testing.T) {
	// Stones land on the lowest empty row of their column.
	p, err := Parse("4441")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	wantCells := []struct {
		col, row int
		want     int
	}{
		{3, 0, FirstPlayer},
		{3, 1, SecondPlayer},
		{3, 2, FirstPlayer},
		{3, 3, Empty},
		{0, 0, SecondPlayer},
		{0, 1, Empty},
		{6, 0, Empty},
	}
	for _, tc := range wantCells {
		if got := p.CellAt(tc.col, tc.row); got != tc.want {
			t.Errorf("CellAt(%d, %d) = %d, want %d", tc.col, tc.row, got, tc.want)
		}
	}
}

func TestPerspectiveSwitch(t *testing.T) {
	// After every move the position describes the next player to move,
	// and stone ownership stays consistent.
	var p Position
	moves := []int{3, 3, 2, 4, 0}
	for i, col := range moves {
		wantSide := FirstPlayer
		if i%2 == 1 {
			wantSide = SecondPlayer
		}
		if got := p.SideToMove(); got != wantSide {
			t.Fatalf("SideToMove() before move %d = %d, want %d", i, got, wantSide)
		}
		p.Drop(col)
	}

	// Stones played at even plies belong to the first player.
	if got := p.CellAt(3, 0); got != FirstPlayer {
		t.Errorf("CellAt(3, 0) = %d, want %d", got, FirstPlayer)
	}
	if got := p.CellAt(3, 1); got != SecondPlayer {
		t.Errorf("CellAt(3, 1) = %d, want %d", got, SecondPlayer)
	}
	if got := p.CellAt(0, 0); got != FirstPlayer {
		t.Errorf("CellAt(0, 0) = %d, want %d", got, FirstPlayer)
	}
}

func TestPlyOccupancyConsistency(t *testing.T) {
	var p Position
	for i := 0; i < len(drawFill); i++ {
		col := int(drawFill[i] - '1')
		if !p.CanDrop(col) {
			t.Fatalf("move %d: CanDrop(%d) = false", i, col)
		}
		if p.WouldWin(col) {
			t.Fatalf("move %d: unexpected winning move in draw fill", i)
		}
		p.Drop(col)
		if p.StoneCount() != p.Plies() {
			t.Fatalf("move %d: StoneCount() = %d, Plies() = %d", i, p.StoneCount(), p.Plies())
		}
	}
	if !p.IsFull() {
		t.Error("IsFull() = false after 42 moves")
	}
}

func TestKeyTranspositions(t *testing.T) {
	// Different move orders reaching the same position share a key.
	a, err := Parse("123")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	b, err := Parse("321")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if a.Key() != b.Key() {
		t.Errorf("transposed positions: keys %#x and %#x differ", a.Key(), b.Key())
	}

	// Same cells but swapped ownership must not collide.
	c, err := Parse("12")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	d, err := Parse("21")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if c.Key() == d.Key() {
		t.Errorf("ownership-swapped positions share key %#x", c.Key())
	}
}

func TestKeyUniqueAlongGame(t *testing.T) {
	seen := make(map[uint64]int)
	var p Position
	seen[p.Key()] = 0
	for i := 0; i < len(drawFill); i++ {
		p.Drop(int(drawFill[i] - '1'))
		if prev, dup := seen[p.Key()]; dup {
			t.Fatalf("key %#x repeats at plies %d and %d", p.Key(), prev, i+1)
		}
		seen[p.Key()] = i + 1
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		moves string
		want  error
	}{
		{"zero digit", "440", ErrInvalidColumn},
		{"eight digit", "8", ErrInvalidColumn},
		{"letter", "44x4", ErrInvalidColumn},
		{"seventh drop", "1111111", ErrColumnFull},
		{"vertical win played", "1212121", ErrGameOver},
		{"horizontal win played", "1122334", ErrGameOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.moves)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want %v", tt.moves, tt.want)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.moves, err, tt.want)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	p, err := Parse("")
	if err != nil {
		t.Fatalf("Parse(\"\") failed: %v", err)
	}
	if p.Plies() != 0 {
		t.Errorf("Plies() = %d, want 0", p.Plies())
	}
}

func TestString(t *testing.T) {
	p, err := Parse("4453")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := "" +
		". . . . . . .\n" +
		". . . . . . .\n" +
		". . . . . . .\n" +
		". . . . . . .\n" +
		". . . o . . .\n" +
		". . o x x . .\n" +
		"1 2 3 4 5 6 7\n"
	if got := p.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

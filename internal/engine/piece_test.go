package engine

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

func boardFromFEN(t *testing.T, fen string) *chess.Board {
	t.Helper()
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return &pos.Board
}

func TestIsPathClear(t *testing.T) {
	t.Parallel()
	board := boardFromFEN(t, "6k1/8/8/3p4/8/4K3/8/R6R w - - 0 1")

	tests := []struct {
		name     string
		from, to string
		want     bool
	}{
		{"rank open", "a1", "h1", true},
		{"adjacent", "a1", "b1", true},
		{"diagonal blocked", "a8", "g2", false},
		{"diagonal open", "a1", "c3", true},
		{"file blocked", "d8", "d1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isPathClear(board, chess.MustParseSquare(tt.from), chess.MustParseSquare(tt.to))
			if got != tt.want {
				t.Errorf("isPathClear(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestIsPseudoLegal(t *testing.T) {
	t.Parallel()
	// White: Ke1, Qd1, Ra1, Bc1, Nb1, pawns e2 and d5. Black pawn c6, rook e4.
	board := boardFromFEN(t, "4k3/8/2p5/3P4/4r3/8/4P3/RNBQK3 w - - 0 1")

	tests := []struct {
		name     string
		from, to string
		want     bool
	}{
		{"knight jump over pieces", "b1", "c3", true},
		{"knight not an L", "b1", "b3", false},
		{"bishop open to e3", "c1", "e3", true},
		{"bishop not diagonal", "c1", "c3", false},
		{"rook blocked by knight", "a1", "c1", false},
		{"rook up the file", "a1", "a7", true},
		{"queen diagonal", "d1", "h5", false},
		{"queen file", "d1", "d4", true},
		{"king one step", "e1", "f2", true},
		{"king two steps without castle", "e1", "e3", false},
		{"pawn single push", "e2", "e3", true},
		{"pawn double push blocked on landing", "e2", "e4", false},
		{"pawn capture", "d5", "c6", true},
		{"pawn diagonal onto empty", "d5", "e6", false},
		{"pawn backwards", "d5", "d4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isPseudoLegal(board, chess.MustParseSquare(tt.from), chess.MustParseSquare(tt.to), nil)
			if got != tt.want {
				t.Errorf("isPseudoLegal(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestIsSquareAttacked(t *testing.T) {
	t.Parallel()
	board := boardFromFEN(t, "4k3/8/8/8/8/8/3p4/4K3 w - - 0 1")

	if !isSquareAttacked(board, chess.MustParseSquare("e1"), chess.Black) {
		t.Error("pawn on d2 should attack e1")
	}
	if isSquareAttacked(board, chess.MustParseSquare("e8"), chess.White) {
		t.Error("e8 reported attacked by White")
	}
	if !IsInCheck(board, chess.White) {
		t.Error("White should be in check")
	}
	if IsInCheck(board, chess.Black) {
		t.Error("Black should not be in check")
	}
}

func TestIsInCheck_NoKing(t *testing.T) {
	t.Parallel()
	var board chess.Board
	board.Set(chess.MustParseSquare("a1"), chess.B(chess.Queen))
	if IsInCheck(&board, chess.White) {
		t.Error("board without a white king reported check")
	}
}

func TestTouchedSquares(t *testing.T) {
	t.Parallel()
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	move := applyMove(&pos, chess.MustParseSquare("e1"), chess.MustParseSquare("c1"))

	got := touchedSquares(move)
	want := []chess.Square{
		chess.MustParseSquare("e1"), chess.MustParseSquare("c1"),
		chess.MustParseSquare("a1"), chess.MustParseSquare("d1"),
	}
	if len(got) != len(want) {
		t.Fatalf("touchedSquares = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("touchedSquares[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

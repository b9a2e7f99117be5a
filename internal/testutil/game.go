package testutil

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// MustNewGame builds a game from a FEN string, or from the standard start
// position when fen is empty. It calls t.Fatal on a malformed FEN.
func MustNewGame(t *testing.T, fen string) *engine.Game {
	t.Helper()
	if fen == "" {
		return engine.NewGame()
	}
	g, err := engine.NewGameFromFEN(fen)
	if err != nil {
		t.Fatalf("NewGameFromFEN(%q): %v", fen, err)
	}
	return g
}

// MustPlay applies each long algebraic move in turn and calls t.Fatal on
// the first rejection.
func MustPlay(t *testing.T, g *engine.Game, moves ...string) {
	t.Helper()
	for i, m := range moves {
		if _, err := g.ApplyMoveText(m); err != nil {
			t.Fatalf("move %d (%s): %v\nposition: %s", i+1, m, err, g.FEN())
		}
	}
}

// Squares parses algebraic square names, calling t.Fatal on a bad name.
func Squares(t *testing.T, names ...string) []chess.Square {
	t.Helper()
	squares := make([]chess.Square, 0, len(names))
	for _, name := range names {
		sq, err := chess.ParseSquare(name)
		if err != nil {
			t.Fatalf("ParseSquare(%q): %v", name, err)
		}
		squares = append(squares, sq)
	}
	return squares
}

// Sq parses a single algebraic square name.
func Sq(t *testing.T, name string) chess.Square {
	t.Helper()
	return Squares(t, name)[0]
}

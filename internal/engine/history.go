package engine

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// historyEntry is one ply of history: the move record plus the full state
// before it was played, so undo restores castling rights and the en
// passant target exactly rather than inferring them.
type historyEntry struct {
	move     chess.Move
	before   Position
	status   chess.GameStatus
	lastMove []chess.Square
}

// History returns the moves played so far, oldest first.
func (g *Game) History() []chess.Move {
	moves := make([]chess.Move, len(g.history))
	for i, entry := range g.history {
		moves[i] = entry.move
	}
	return moves
}

// Ply returns the number of moves played since the start position.
func (g *Game) Ply() int {
	return len(g.history)
}

// Undo takes back the most recent move and returns its record. It is
// refused once the game has ended and when no move has been played.
func (g *Game) Undo() (chess.Move, error) {
	if g.status.IsTerminal() {
		return chess.Move{}, &errors.MoveError{Err: errors.ErrGameOver, Reason: g.status.String()}
	}
	if len(g.history) == 0 {
		return chess.Move{}, errors.ErrNoHistory
	}

	last := len(g.history) - 1
	entry := g.history[last]
	g.history = g.history[:last]

	g.pos = entry.before
	g.status = entry.status
	g.lastMove = entry.lastMove

	g.logger.Debug().
		Int("ply", last+1).
		Str("move", entry.move.String()).
		Msg("move undone")

	return entry.move, nil
}

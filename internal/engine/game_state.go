package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// Status derives the game status for the side to move in pos.
func Status(pos *Position) chess.GameStatus {
	inCheck := IsInCheck(&pos.Board, pos.ToMove)
	hasMoves := HasLegalMoves(pos)

	switch {
	case inCheck && !hasMoves:
		return chess.Checkmate
	case !hasMoves:
		return chess.Stalemate
	case inCheck:
		return chess.Check
	default:
		return chess.Playing
	}
}

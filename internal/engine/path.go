package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// isPathClear reports whether every square strictly between from and to is
// empty. from and to must share a row, a column or a diagonal.
func isPathClear(board *chess.Board, from, to chess.Square) bool {
	rowDir := sign(to.Row - from.Row)
	colDir := sign(to.Col - from.Col)

	sq := chess.Sq(from.Row+rowDir, from.Col+colDir)
	for sq != to {
		if !board.IsEmpty(sq) {
			return false
		}
		sq = chess.Sq(sq.Row+rowDir, sq.Col+colDir)
	}

	return true
}

package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// The predicates below accept or refuse a move by movement pattern and
// path blocking only. They do not look at the destination's occupant
// (except for pawns) and ignore whether the mover's king ends up in check.

// isValidRookMove checks a move along a row or column with a clear path.
func isValidRookMove(board *chess.Board, from, to chess.Square) bool {
	rowDiff := abs(to.Row - from.Row)
	colDiff := abs(to.Col - from.Col)
	if rowDiff != 0 && colDiff != 0 {
		return false
	}
	if rowDiff == 0 && colDiff == 0 {
		return false
	}
	return isPathClear(board, from, to)
}

// isValidBishopMove checks a diagonal move with a clear path.
func isValidBishopMove(board *chess.Board, from, to chess.Square) bool {
	rowDiff := abs(to.Row - from.Row)
	colDiff := abs(to.Col - from.Col)
	if rowDiff != colDiff || rowDiff == 0 {
		return false
	}
	return isPathClear(board, from, to)
}

// isValidQueenMove accepts anything a rook or a bishop could do.
func isValidQueenMove(board *chess.Board, from, to chess.Square) bool {
	return isValidRookMove(board, from, to) || isValidBishopMove(board, from, to)
}

// isValidKnightMove checks for an L-shape. Knights are never blocked.
func isValidKnightMove(from, to chess.Square) bool {
	rowDiff := abs(to.Row - from.Row)
	colDiff := abs(to.Col - from.Col)
	return (rowDiff == 2 && colDiff == 1) || (rowDiff == 1 && colDiff == 2)
}

// isValidKingMove checks for a one-square step. Castling is handled
// separately by CanCastle.
func isValidKingMove(from, to chess.Square) bool {
	rowDiff := abs(to.Row - from.Row)
	colDiff := abs(to.Col - from.Col)
	return rowDiff <= 1 && colDiff <= 1 && (rowDiff != 0 || colDiff != 0)
}

// isPseudoLegal dispatches to the predicate for the piece on from.
// ep is the live en passant target, if any.
func isPseudoLegal(board *chess.Board, from, to chess.Square, ep *chess.Square) bool {
	piece := board.Get(from)

	switch piece.Kind {
	case chess.Pawn:
		return isValidPawnMove(board, from, to, piece.Colour, ep)
	case chess.Rook:
		return isValidRookMove(board, from, to)
	case chess.Bishop:
		return isValidBishopMove(board, from, to)
	case chess.Queen:
		return isValidQueenMove(board, from, to)
	case chess.Knight:
		return isValidKnightMove(from, to)
	case chess.King:
		return isValidKingMove(from, to)
	}

	return false
}

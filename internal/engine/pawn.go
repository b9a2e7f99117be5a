package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// isValidPawnMove checks single and double pushes, diagonal captures and
// en passant captures onto ep.
func isValidPawnMove(board *chess.Board, from, to chess.Square, colour chess.Colour, ep *chess.Square) bool {
	dir := chess.PawnDirection(colour)
	rowDiff := to.Row - from.Row
	colDiff := abs(to.Col - from.Col)

	// Forward movement
	if colDiff == 0 {
		if rowDiff == dir && board.IsEmpty(to) {
			return true
		}
		// Double push from the starting row over two empty squares
		if from.Row == chess.PawnStartRow(colour) && rowDiff == 2*dir &&
			board.IsEmpty(chess.Sq(from.Row+dir, from.Col)) &&
			board.IsEmpty(to) {
			return true
		}
		return false
	}

	// Diagonal moves only as captures
	if colDiff == 1 && rowDiff == dir {
		if board.Get(to).BelongsTo(colour.Opposite()) {
			return true
		}
		if ep != nil && to == *ep && board.IsEmpty(to) {
			// The pawn being captured sits beside the mover.
			return board.Get(chess.Sq(from.Row, to.Col)).Is(chess.Pawn, colour.Opposite())
		}
	}

	return false
}

// isDoubleStep reports whether a pawn move from -> to is a two-square push.
func isDoubleStep(piece chess.Piece, from, to chess.Square) bool {
	return piece.Kind == chess.Pawn && from.Col == to.Col && abs(to.Row-from.Row) == 2
}

// isEnPassantCapture reports whether a pawn move onto ep is an en passant
// capture.
func isEnPassantCapture(board *chess.Board, piece chess.Piece, from, to chess.Square, ep *chess.Square) bool {
	return piece.Kind == chess.Pawn && ep != nil && to == *ep &&
		from.Col != to.Col && board.IsEmpty(to)
}

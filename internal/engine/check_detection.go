package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// IsInCheck returns true if the given colour's king is attacked.
// A board without a king of that colour is never in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	kingSq, ok := board.FindKing(colour)
	if !ok {
		return false
	}
	return isSquareAttacked(board, kingSq, colour.Opposite())
}

// isSquareAttacked returns true if any piece of byColour has a
// pseudo-legal move onto target. Pawns only attack diagonally, which
// requires target to be occupied; callers probe with the king in place.
func isSquareAttacked(board *chess.Board, target chess.Square, byColour chess.Colour) bool {
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			from := chess.Sq(row, col)
			if from == target || !board.Get(from).BelongsTo(byColour) {
				continue
			}
			if isPseudoLegal(board, from, target, nil) {
				return true
			}
		}
	}
	return false
}

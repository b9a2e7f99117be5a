package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

const (
	kingHomeCol      = 4
	kingsideRookCol  = 7
	queensideRookCol = 0
)

// castleGeometry returns the king's destination column and the rook's
// source and destination columns for a castle on side.
func castleGeometry(side chess.CastleSide) (kingTo, rookFrom, rookTo int) {
	if side == chess.Kingside {
		return 6, kingsideRookCol, 5
	}
	return 2, queensideRookCol, 3
}

// castleSideOf returns the wing a king move from -> to castles on, or
// NoCastle if the move is not shaped like a castle.
func castleSideOf(piece chess.Piece, from, to chess.Square) chess.CastleSide {
	if piece.Kind != chess.King || from.Row != to.Row || abs(to.Col-from.Col) != 2 {
		return chess.NoCastle
	}
	if to.Col > from.Col {
		return chess.Kingside
	}
	return chess.Queenside
}

// CanCastle returns true if colour may castle on side in pos.
func CanCastle(pos *Position, colour chess.Colour, side chess.CastleSide) bool {
	if side == chess.NoCastle || !pos.Castling.Has(colour, side) {
		return false
	}

	row := chess.BackRow(colour)
	kingSq := chess.Sq(row, kingHomeCol)
	kingTo, rookFrom, _ := castleGeometry(side)

	board := &pos.Board
	if !board.Get(kingSq).Is(chess.King, colour) {
		return false
	}
	if !board.Get(chess.Sq(row, rookFrom)).Is(chess.Rook, colour) {
		return false
	}

	if IsInCheck(board, colour) {
		return false
	}

	// Every square between king and rook must be empty.
	if !isPathClear(board, kingSq, chess.Sq(row, rookFrom)) {
		return false
	}

	// The king may not pass through or land on an attacked square.
	step := sign(kingTo - kingHomeCol)
	for col := kingHomeCol + step; ; col += step {
		probe := *board
		probe.Clear(kingSq)
		probe.Set(chess.Sq(row, col), chess.Piece{Kind: chess.King, Colour: colour})
		if IsInCheck(&probe, colour) {
			return false
		}
		if col == kingTo {
			break
		}
	}

	return true
}

// updateCastlingRights clears the rights lost by a move from -> to made by
// piece. A king move clears both flags; moving from or capturing on a
// rook's corner clears that corner's flag.
func updateCastlingRights(rights *chess.CastlingRights, piece chess.Piece, from, to chess.Square) {
	if piece.Kind == chess.King {
		rights.ClearAll(piece.Colour)
	}
	clearCornerRight(rights, from)
	clearCornerRight(rights, to)
}

// clearCornerRight clears the castling flag tied to a rook corner square.
func clearCornerRight(rights *chess.CastlingRights, sq chess.Square) {
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if sq.Row != chess.BackRow(colour) {
			continue
		}
		switch sq.Col {
		case kingsideRookCol:
			rights.Clear(colour, chess.Kingside)
		case queensideRookCol:
			rights.Clear(colour, chess.Queenside)
		}
	}
}

package engine

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

var (
	knightOffsets   = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets     = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs    = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs    = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	castleKingSteps = []int{2, -2}
)

// illegalReason returns why from -> to is not a legal move for the side to
// move in pos, or "" if it is legal. The check for king safety plays the
// move on a scratch copy of pos.
func illegalReason(pos *Position, from, to chess.Square) string {
	if !from.Valid() || !to.Valid() {
		return "square off the board"
	}

	piece := pos.Board.Get(from)
	if piece.IsEmpty() {
		return fmt.Sprintf("no piece on %s", from)
	}
	if piece.Colour != pos.ToMove {
		return fmt.Sprintf("%s is not to move", piece.Colour)
	}
	if pos.Board.Get(to).BelongsTo(piece.Colour) {
		return "destination holds own piece"
	}

	if side := castleSideOf(piece, from, to); side != chess.NoCastle {
		if !CanCastle(pos, piece.Colour, side) {
			return "castling not allowed"
		}
		return ""
	}

	if !isPseudoLegal(&pos.Board, from, to, pos.EnPassantTarget()) {
		return fmt.Sprintf("%s cannot move from %s to %s", piece.Kind, from, to)
	}

	scratch := *pos
	applyMove(&scratch, from, to)
	if IsInCheck(&scratch.Board, piece.Colour) {
		return "move leaves king in check"
	}

	return ""
}

// IsLegalMove returns true if from -> to is legal for the side to move.
func IsLegalMove(pos *Position, from, to chess.Square) bool {
	return illegalReason(pos, from, to) == ""
}

// LegalMoves returns every legal destination of the piece on from. The
// result is empty when from holds no piece of the side to move.
func LegalMoves(pos *Position, from chess.Square) []chess.Square {
	var moves []chess.Square
	for _, to := range candidateTargets(pos, from) {
		if IsLegalMove(pos, from, to) {
			moves = append(moves, to)
		}
	}
	return moves
}

// HasLegalMoves returns true if the side to move has at least one legal
// move, castling included.
func HasLegalMoves(pos *Position) bool {
	for _, from := range pos.Board.Squares(pos.ToMove) {
		for _, to := range candidateTargets(pos, from) {
			if IsLegalMove(pos, from, to) {
				return true
			}
		}
	}
	return false
}

// candidateTargets lists squares the piece on from might reach, by
// movement pattern only. Callers filter the list with IsLegalMove.
func candidateTargets(pos *Position, from chess.Square) []chess.Square {
	piece := pos.Board.Get(from)
	if !piece.BelongsTo(pos.ToMove) {
		return nil
	}

	var targets []chess.Square
	addOffsets := func(offsets [][2]int) {
		for _, o := range offsets {
			if to := chess.Sq(from.Row+o[0], from.Col+o[1]); to.Valid() {
				targets = append(targets, to)
			}
		}
	}
	addRays := func(dirs [][2]int) {
		for _, d := range dirs {
			to := chess.Sq(from.Row+d[0], from.Col+d[1])
			for to.Valid() {
				targets = append(targets, to)
				if !pos.Board.IsEmpty(to) {
					break // Blocked
				}
				to = chess.Sq(to.Row+d[0], to.Col+d[1])
			}
		}
	}

	switch piece.Kind {
	case chess.Pawn:
		dir := chess.PawnDirection(piece.Colour)
		addOffsets([][2]int{{dir, -1}, {dir, 0}, {dir, 1}, {2 * dir, 0}})
	case chess.Knight:
		addOffsets(knightOffsets)
	case chess.Bishop:
		addRays(diagonalDirs)
	case chess.Rook:
		addRays(straightDirs)
	case chess.Queen:
		addRays(diagonalDirs)
		addRays(straightDirs)
	case chess.King:
		addOffsets(kingOffsets)
		for _, step := range castleKingSteps {
			if to := chess.Sq(from.Row, from.Col+step); to.Valid() {
				targets = append(targets, to)
			}
		}
	}

	return targets
}

// Package engine provides chess move validation and game state management.
package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// Position is the complete rules state of a game at one point in time:
// the board plus everything needed to decide which moves are legal next.
// It is a value type; assigning it copies the board.
type Position struct {
	Board    chess.Board
	ToMove   chess.Colour
	Castling chess.CastlingRights

	// En passant target, valid only for the side to move.
	EnPassant    chess.Square
	HasEnPassant bool

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock int

	// The current move number, starting at 1 and incremented after
	// Black moves.
	MoveNumber int
}

// NewInitialPosition returns the standard starting position.
func NewInitialPosition() Position {
	pos := Position{
		ToMove:     chess.White,
		Castling:   chess.AllCastlingRights(),
		MoveNumber: 1,
	}
	pos.Board.SetupInitialPosition()
	return pos
}

// EnPassantTarget returns the live en passant target, or nil.
func (p *Position) EnPassantTarget() *chess.Square {
	if !p.HasEnPassant {
		return nil
	}
	ep := p.EnPassant
	return &ep
}

// applyMove mutates pos by playing from -> to and returns the move record.
// It performs no legality checks; callers validate first.
func applyMove(pos *Position, from, to chess.Square) chess.Move {
	board := &pos.Board
	piece := board.Get(from)
	ep := pos.EnPassantTarget()

	move := chess.Move{
		From:     from,
		To:       to,
		Piece:    piece,
		Captured: board.Get(to),
		Castle:   castleSideOf(piece, from, to),
	}

	if isEnPassantCapture(board, piece, from, to, ep) {
		move.IsEnPassant = true
		move.EnPassantCaptured = chess.Sq(from.Row, to.Col)
		move.Captured = board.Get(move.EnPassantCaptured)
	}

	// Relocate the piece
	board.Clear(from)
	board.Set(to, piece)

	// Promotion is always to a queen
	if piece.Kind == chess.Pawn && to.Row == chess.PromotionRow(piece.Colour) {
		board.Set(to, chess.Piece{Kind: chess.Queen, Colour: piece.Colour})
		move.Promoted = true
	}

	// The en passant target lives for exactly one move
	pos.HasEnPassant = false
	if isDoubleStep(piece, from, to) {
		pos.EnPassant = chess.Sq((from.Row+to.Row)/2, from.Col)
		pos.HasEnPassant = true
	}

	if move.IsEnPassant {
		board.Clear(move.EnPassantCaptured)
	}

	if move.Castle != chess.NoCastle {
		_, rookFrom, rookTo := castleGeometry(move.Castle)
		rook := board.Get(chess.Sq(from.Row, rookFrom))
		board.Clear(chess.Sq(from.Row, rookFrom))
		board.Set(chess.Sq(from.Row, rookTo), rook)
	}

	updateCastlingRights(&pos.Castling, piece, from, to)

	if piece.Kind == chess.Pawn || move.IsCapture() {
		pos.HalfmoveClock = 0
	} else {
		pos.HalfmoveClock++
	}
	if piece.Colour == chess.Black {
		pos.MoveNumber++
	}
	pos.ToMove = piece.Colour.Opposite()

	return move
}

// touchedSquares returns the squares a move changed, for last-move
// highlighting: from and to, plus the rook's squares for a castle.
func touchedSquares(move chess.Move) []chess.Square {
	squares := []chess.Square{move.From, move.To}
	if move.Castle != chess.NoCastle {
		_, rookFrom, rookTo := castleGeometry(move.Castle)
		squares = append(squares,
			chess.Sq(move.From.Row, rookFrom),
			chess.Sq(move.From.Row, rookTo))
	}
	return squares
}

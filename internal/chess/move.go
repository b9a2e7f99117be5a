package chess

// Move is the record of one applied move.
type Move struct {
	// Source and destination squares.
	From Square
	To   Square

	// The piece that moved, as it was before any promotion.
	Piece Piece

	// The piece captured (empty if no capture). For en passant this is
	// the pawn removed from EnPassantCaptured.
	Captured Piece

	// Whether this move was an en passant capture, and if so the square
	// the captured pawn was removed from.
	IsEnPassant       bool
	EnPassantCaptured Square

	// Which wing the king castled on, if this was a castle.
	Castle CastleSide

	// Whether a pawn was promoted to a queen by this move.
	Promoted bool
}

// IsCapture returns true if this move is a capture.
func (m Move) IsCapture() bool {
	return !m.Captured.IsEmpty()
}

// IsCastle returns true if this move is a castling move.
func (m Move) IsCastle() bool {
	return m.Castle != NoCastle
}

// Colour returns the colour of the side that made the move.
func (m Move) Colour() Colour {
	return m.Piece.Colour
}

// UCI returns the move in long algebraic form, e.g. "e2e4" or "e7e8q".
func (m Move) UCI() string {
	s := m.From.String() + m.To.String()
	if m.Promoted {
		s += "q"
	}
	return s
}

// String returns a readable long algebraic form such as "Ng1-f3",
// "e4xd5", "O-O" or "e7-e8=Q".
func (m Move) String() string {
	switch m.Castle {
	case Kingside:
		return "O-O"
	case Queenside:
		return "O-O-O"
	}

	var s string
	if m.Piece.Kind != Pawn {
		s = string(m.Piece.Kind.Letter())
	}
	s += m.From.String()
	if m.IsCapture() {
		s += "x"
	} else {
		s += "-"
	}
	s += m.To.String()
	if m.Promoted {
		s += "=Q"
	}
	if m.IsEnPassant {
		s += " e.p."
	}
	return s
}

// Package chess provides core chess types and operations.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	White Colour = iota
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// PawnDirection returns the row delta of a pawn step: -1 for White
// (toward row 0), +1 for Black (toward row 7).
func PawnDirection(colour Colour) int {
	if colour == White {
		return -1
	}
	return 1
}

// PawnStartRow returns the row pawns of the given colour start on.
func PawnStartRow(colour Colour) int {
	if colour == White {
		return 6
	}
	return 1
}

// PromotionRow returns the farthest row from a pawn's start.
func PromotionRow(colour Colour) int {
	if colour == White {
		return 0
	}
	return 7
}

// BackRow returns the row a colour's king and rooks start on.
func BackRow(colour Colour) int {
	if colour == White {
		return 7
	}
	return 0
}

// PieceKind represents a chess piece type.
type PieceKind int

const (
	NoPiece PieceKind = iota // Empty square
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceKinds
)

// String returns the string representation of a piece kind.
func (k PieceKind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece kind (uppercase).
func (k PieceKind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// Piece is a coloured piece. The zero value is an empty square.
type Piece struct {
	Kind   PieceKind
	Colour Colour
}

// W creates a white piece.
func W(kind PieceKind) Piece {
	return Piece{Kind: kind, Colour: White}
}

// B creates a black piece.
func B(kind PieceKind) Piece {
	return Piece{Kind: kind, Colour: Black}
}

// IsEmpty reports whether p represents an empty square.
func (p Piece) IsEmpty() bool {
	return p.Kind == NoPiece
}

// Is reports whether p is a piece of the given kind and colour.
func (p Piece) Is(kind PieceKind, colour Colour) bool {
	return p.Kind == kind && p.Colour == colour
}

// BelongsTo reports whether p is a piece of the given colour.
func (p Piece) BelongsTo(colour Colour) bool {
	return p.Kind != NoPiece && p.Colour == colour
}

// FENLetter returns the FEN letter of p: uppercase for White, lowercase
// for Black, '.' for an empty square.
func (p Piece) FENLetter() byte {
	if p.IsEmpty() {
		return '.'
	}
	letter := p.Kind.Letter()
	if p.Colour == Black {
		letter += 'a' - 'A'
	}
	return letter
}

// String returns a readable name such as "White Knight".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Colour.String() + " " + p.Kind.String()
}

// CastleSide identifies a castling wing.
type CastleSide int

const (
	NoCastle CastleSide = iota
	Kingside
	Queenside
)

// String returns the string representation of a castle side.
func (s CastleSide) String() string {
	switch s {
	case Kingside:
		return "Kingside"
	case Queenside:
		return "Queenside"
	default:
		return "None"
	}
}

// SideRights holds the two castling flags of one colour.
type SideRights struct {
	Kingside  bool
	Queenside bool
}

// CastlingRights holds castling availability for both colours.
// Flags only ever go from true to false during a game.
type CastlingRights [2]SideRights

// AllCastlingRights returns rights as at the start of a standard game.
func AllCastlingRights() CastlingRights {
	return CastlingRights{
		White: {Kingside: true, Queenside: true},
		Black: {Kingside: true, Queenside: true},
	}
}

// Has reports whether colour may still castle on side.
func (cr CastlingRights) Has(colour Colour, side CastleSide) bool {
	switch side {
	case Kingside:
		return cr[colour].Kingside
	case Queenside:
		return cr[colour].Queenside
	}
	return false
}

// Clear removes the right of colour to castle on side.
func (cr *CastlingRights) Clear(colour Colour, side CastleSide) {
	switch side {
	case Kingside:
		cr[colour].Kingside = false
	case Queenside:
		cr[colour].Queenside = false
	}
}

// ClearAll removes both castling rights of colour.
func (cr *CastlingRights) ClearAll(colour Colour) {
	cr[colour] = SideRights{}
}

// GameStatus is the derived state of a game for the side to move.
type GameStatus int

const (
	Playing GameStatus = iota
	Check
	Checkmate
	Stalemate
)

// String returns the string representation of a game status.
func (s GameStatus) String() string {
	switch s {
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "playing"
	}
}

// IsTerminal reports whether no further moves are accepted.
func (s GameStatus) IsTerminal() bool {
	return s == Checkmate || s == Stalemate
}

// BoardSize is the number of rows and columns on the board.
const BoardSize = 8

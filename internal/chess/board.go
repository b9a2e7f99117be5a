package chess

import "strings"

// Board is an 8x8 grid of squares indexed [row][col].
type Board [BoardSize][BoardSize]Piece

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{}
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	*b = Board{}

	backRank := []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < BoardSize; col++ {
		b[0][col] = B(backRank[col])
		b[1][col] = B(Pawn)
		b[6][col] = W(Pawn)
		b[7][col] = W(backRank[col])
	}
}

// Get returns the piece at the given square. Squares off the board read
// as empty.
func (b *Board) Get(s Square) Piece {
	if !s.Valid() {
		return Piece{}
	}
	return b[s.Row][s.Col]
}

// Set places a piece at the given square. Squares off the board are ignored.
func (b *Board) Set(s Square, piece Piece) {
	if s.Valid() {
		b[s.Row][s.Col] = piece
	}
}

// Clear empties the given square.
func (b *Board) Clear(s Square) {
	b.Set(s, Piece{})
}

// IsEmpty reports whether the square holds no piece.
func (b *Board) IsEmpty(s Square) bool {
	return b.Get(s).IsEmpty()
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := *b
	return &newBoard
}

// FindKing returns the square of the king of the given colour.
func (b *Board) FindKing(colour Colour) (Square, bool) {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b[row][col].Is(King, colour) {
				return Square{Row: row, Col: col}, true
			}
		}
	}
	return Square{}, false
}

// Squares returns every square holding a piece of the given colour, in
// row-major order.
func (b *Board) Squares(colour Colour) []Square {
	var squares []Square
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b[row][col].BelongsTo(colour) {
				squares = append(squares, Square{Row: row, Col: col})
			}
		}
	}
	return squares
}

// Rows returns the board as eight strings of FEN letters, row 0 first,
// with '.' for empty squares.
func (b *Board) Rows() []string {
	rows := make([]string, BoardSize)
	for row := 0; row < BoardSize; row++ {
		var sb strings.Builder
		for col := 0; col < BoardSize; col++ {
			sb.WriteByte(b[row][col].FENLetter())
		}
		rows[row] = sb.String()
	}
	return rows
}

// String renders the board as a text diagram with rank and file labels.
func (b *Board) String() string {
	var sb strings.Builder
	for row, line := range b.Rows() {
		sb.WriteByte(byte('8' - row))
		sb.WriteByte(' ')
		for i := 0; i < len(line); i++ {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(line[i])
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

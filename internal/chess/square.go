package chess

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Square is a board coordinate. Row 0 is Black's back rank (rank 8) and
// row 7 is White's back rank (rank 1); Col 0 is the a-file.
type Square struct {
	Row int
	Col int
}

// Sq creates a square from row and column indices.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// Valid reports whether both coordinates are in [0,7].
func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// File returns the file letter of the square ('a'-'h').
func (s Square) File() byte {
	return byte('a' + s.Col)
}

// Rank returns the rank digit of the square ('1'-'8').
func (s Square) Rank() byte {
	return byte('8' - s.Row)
}

// String returns the algebraic name of the square, e.g. "e4".
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return string([]byte{s.File(), s.Rank()})
}

// ParseSquare converts an algebraic name such as "e2" to a Square.
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return Square{}, fmt.Errorf("square %q: %w", name, errors.ErrInvalidSquare)
	}
	file, rank := name[0], name[1]
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Square{}, fmt.Errorf("square %q: %w", name, errors.ErrInvalidSquare)
	}
	return Square{Row: int('8' - rank), Col: int(file - 'a')}, nil
}

// MustParseSquare is like ParseSquare but panics on malformed input.
// Intended for constants and tests.
func MustParseSquare(name string) Square {
	s, err := ParseSquare(name)
	if err != nil {
		panic(err)
	}
	return s
}

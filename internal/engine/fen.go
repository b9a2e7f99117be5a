package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ConvertFENCharToPiece converts a FEN character to a piece kind.
func ConvertFENCharToPiece(c byte) chess.PieceKind {
	switch c {
	case 'K', 'k':
		return chess.King
	case 'Q', 'q':
		return chess.Queen
	case 'R', 'r':
		return chess.Rook
	case 'N', 'n':
		return chess.Knight
	case 'B', 'b':
		return chess.Bishop
	case 'P', 'p':
		return chess.Pawn
	default:
		return chess.NoPiece
	}
}

// ParseFEN creates a position from a FEN string. Missing trailing fields
// default to White to move, no castling, no en passant target, and clocks
// of 0 and 1.
func ParseFEN(fen string) (Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return Position{}, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	pos := Position{ToMove: chess.White, MoveNumber: 1}

	if err := parsePiecePositions(&pos.Board, parts[0]); err != nil {
		return Position{}, err
	}
	if err := parseSideToMove(&pos, parts); err != nil {
		return Position{}, err
	}
	if err := parseCastlingRights(&pos, parts); err != nil {
		return Position{}, err
	}
	if err := parseEnPassant(&pos, parts); err != nil {
		return Position{}, err
	}
	if err := parseClocks(&pos, parts); err != nil {
		return Position{}, err
	}
	if err := validateKings(&pos); err != nil {
		return Position{}, err
	}

	return pos, nil
}

// validateKings requires exactly one king per side and the side that just
// moved to be out of check.
func validateKings(pos *Position) error {
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		kings := 0
		for _, sq := range pos.Board.Squares(colour) {
			if pos.Board.Get(sq).Kind == chess.King {
				kings++
			}
		}
		if kings != 1 {
			return fmt.Errorf("%s has %d kings: %w", colour, kings, errors.ErrInvalidFEN)
		}
	}
	if IsInCheck(&pos.Board, pos.ToMove.Opposite()) {
		return fmt.Errorf("%s is in check but not to move: %w", pos.ToMove.Opposite(), errors.ErrInvalidFEN)
	}
	return nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
// The first FEN rank is row 0.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("expected 8 ranks, got %d: %w", len(ranks), errors.ErrInvalidFEN)
	}

	for row, rank := range ranks {
		col := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				col += int(c - '0')
			default:
				kind := ConvertFENCharToPiece(byte(c))
				if kind == chess.NoPiece {
					return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
				}
				if col >= chess.BoardSize {
					return fmt.Errorf("rank %d too long: %w", row+1, errors.ErrInvalidFEN)
				}

				colour := chess.White
				if unicode.IsLower(c) {
					colour = chess.Black
				}
				board.Set(chess.Sq(row, col), chess.Piece{Kind: kind, Colour: colour})
				col++
			}
		}
		if col != chess.BoardSize {
			return fmt.Errorf("rank %d has %d squares: %w", row+1, col, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(pos *Position, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		pos.ToMove = chess.White
	case "b":
		pos.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(pos *Position, parts []string) error {
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}

	for _, c := range parts[2] {
		switch c {
		case 'K':
			pos.Castling[chess.White].Kingside = true
		case 'Q':
			pos.Castling[chess.White].Queenside = true
		case 'k':
			pos.Castling[chess.Black].Kingside = true
		case 'q':
			pos.Castling[chess.Black].Queenside = true
		default:
			return fmt.Errorf("invalid castling character: %c: %w", c, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(pos *Position, parts []string) error {
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	sq, err := chess.ParseSquare(parts[3])
	if err != nil {
		return fmt.Errorf("en passant square %q: %w", parts[3], errors.ErrInvalidFEN)
	}
	pos.EnPassant = sq
	pos.HasEnPassant = true
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(pos *Position, parts []string) error {
	if len(parts) >= 5 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return fmt.Errorf("halfmove clock %q: %w", parts[4], errors.ErrInvalidFEN)
		}
		pos.HalfmoveClock = n
	}
	if len(parts) >= 6 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return fmt.Errorf("move number %q: %w", parts[5], errors.ErrInvalidFEN)
		}
		pos.MoveNumber = n
	}
	return nil
}

// FEN converts the position to a FEN string.
func (p *Position) FEN() string {
	var sb strings.Builder

	writePiecePositions(&sb, &p.Board)
	sb.WriteByte(' ')
	if p.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	writeCastlingRights(&sb, p.Castling)
	sb.WriteByte(' ')
	if p.HasEnPassant {
		sb.WriteString(p.EnPassant.String())
	} else {
		sb.WriteByte('-')
	}
	fmt.Fprintf(&sb, " %d %d", p.HalfmoveClock, p.MoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for row := 0; row < chess.BoardSize; row++ {
		emptyCount := 0
		for col := 0; col < chess.BoardSize; col++ {
			piece := board.Get(chess.Sq(row, col))
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.FENLetter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if row < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, rights chess.CastlingRights) {
	start := sb.Len()
	if rights[chess.White].Kingside {
		sb.WriteByte('K')
	}
	if rights[chess.White].Queenside {
		sb.WriteByte('Q')
	}
	if rights[chess.Black].Kingside {
		sb.WriteByte('k')
	}
	if rights[chess.Black].Queenside {
		sb.WriteByte('q')
	}
	if sb.Len() == start {
		sb.WriteByte('-')
	}
}

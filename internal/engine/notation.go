package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

var moveTextSeparators = strings.NewReplacer("-", "", "x", "", "=", "")

// ParseMoveText translates long algebraic notation into a pair of squares.
// Accepted forms are "e2e4", "e2-e4", "e4xd5", a leading piece letter as
// in "Ng1-f3", a trailing " e.p." and a promotion suffix of "q" or "=Q";
// other promotion pieces are refused because pawns always promote to a
// queen. Move.String output parses back, castling excepted.
func ParseMoveText(text string) (chess.Square, chess.Square, error) {
	from, to, _, err := parseMoveText(text)
	return from, to, err
}

// parseMoveText is ParseMoveText that also reports whether the text
// carried a promotion suffix.
func parseMoveText(text string) (from, to chess.Square, promote bool, err error) {
	s := strings.TrimSpace(text)
	s = strings.TrimSpace(strings.TrimSuffix(s, "e.p."))
	s = moveTextSeparators.Replace(s)

	if len(s) >= 5 && strings.IndexByte("KQRBN", s[0]) >= 0 && isFileLetter(s[1]) {
		s = s[1:]
	}
	if len(s) == 5 {
		if s[4] != 'q' && s[4] != 'Q' {
			return chess.Square{}, chess.Square{}, false, fmt.Errorf("%q: only queen promotion is supported: %w", text, errors.ErrInvalidMoveText)
		}
		s = s[:4]
		promote = true
	}
	if len(s) != 4 {
		return chess.Square{}, chess.Square{}, false, fmt.Errorf("%q: %w", text, errors.ErrInvalidMoveText)
	}

	from, err = chess.ParseSquare(s[:2])
	if err != nil {
		return chess.Square{}, chess.Square{}, false, fmt.Errorf("%q: %w", text, errors.ErrInvalidMoveText)
	}
	to, err = chess.ParseSquare(s[2:])
	if err != nil {
		return chess.Square{}, chess.Square{}, false, fmt.Errorf("%q: %w", text, errors.ErrInvalidMoveText)
	}
	return from, to, promote, nil
}

func isFileLetter(c byte) bool {
	return (c >= 'a' && c <= 'h') || (c >= 'A' && c <= 'H')
}

// isPromotion reports whether moving the piece on from to to would
// promote a pawn.
func isPromotion(board *chess.Board, from, to chess.Square) bool {
	piece := board.Get(from)
	return piece.Kind == chess.Pawn && to.Row == chess.PromotionRow(piece.Colour)
}

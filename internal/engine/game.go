package engine

import (
	"github.com/rs/zerolog"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Game owns the state of one chess game and is the only way to change it.
// A Game is not safe for concurrent use; callers serialise access, for
// example by giving each game its own session goroutine.
type Game struct {
	start    Position
	pos      Position
	status   chess.GameStatus
	lastMove []chess.Square
	history  []historyEntry
	logger   zerolog.Logger
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger used for move and undo events.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// NewGame creates a game at the standard starting position.
func NewGame(opts ...Option) *Game {
	return newGame(NewInitialPosition(), opts...)
}

// NewGameFromFEN creates a game starting from a FEN position.
func NewGameFromFEN(fen string, opts ...Option) (*Game, error) {
	pos, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return newGame(pos, opts...), nil
}

func newGame(start Position, opts ...Option) *Game {
	g := &Game{
		start:  start,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.Reset()
	return g
}

// Reset returns the game to its starting position and clears the history.
func (g *Game) Reset() {
	g.pos = g.start
	g.history = nil
	g.lastMove = nil
	g.status = Status(&g.pos)
	g.logger.Debug().Str("status", g.status.String()).Msg("game reset")
}

// ApplyMove plays from -> to for the side to move. On success the move
// record is returned and the status is recomputed for the next player.
// On failure the game is left untouched and the error wraps
// errors.ErrInvalidSquare, errors.ErrGameOver or errors.ErrIllegalMove.
func (g *Game) ApplyMove(from, to chess.Square) (chess.Move, error) {
	if !from.Valid() || !to.Valid() {
		return chess.Move{}, g.reject(from, to, errors.ErrInvalidSquare, "coordinates outside the board")
	}
	if g.status.IsTerminal() {
		return chess.Move{}, g.reject(from, to, errors.ErrGameOver, g.status.String())
	}
	if reason := illegalReason(&g.pos, from, to); reason != "" {
		return chess.Move{}, g.reject(from, to, errors.ErrIllegalMove, reason)
	}

	entry := historyEntry{
		before:   g.pos,
		status:   g.status,
		lastMove: g.lastMove,
	}

	move := applyMove(&g.pos, from, to)
	entry.move = move
	g.history = append(g.history, entry)
	g.lastMove = touchedSquares(move)
	g.status = Status(&g.pos)

	g.logger.Debug().
		Int("ply", len(g.history)).
		Str("move", move.String()).
		Str("status", g.status.String()).
		Msg("move applied")

	return move, nil
}

// ApplyMoveText parses long algebraic notation such as "e2e4" and plays it.
// A promotion suffix is refused unless the move promotes a pawn.
func (g *Game) ApplyMoveText(text string) (chess.Move, error) {
	from, to, promote, err := parseMoveText(text)
	if err != nil {
		return chess.Move{}, err
	}
	if promote && !isPromotion(&g.pos.Board, from, to) {
		return chess.Move{}, g.reject(from, to, errors.ErrInvalidMoveText, "promotion suffix on a move that does not promote")
	}
	return g.ApplyMove(from, to)
}

// reject logs a refused move and builds its error.
func (g *Game) reject(from, to chess.Square, err error, reason string) error {
	g.logger.Debug().
		Str("from", from.String()).
		Str("to", to.String()).
		Str("reason", reason).
		Err(err).
		Msg("move rejected")
	return &errors.MoveError{
		Err:    err,
		Ply:    len(g.history) + 1,
		From:   from.String(),
		To:     to.String(),
		Reason: reason,
	}
}

// LegalMovesFrom returns the legal destinations of the piece on from.
// The result is empty for an empty square, a piece of the side not to
// move, a square off the board, or a finished game.
func (g *Game) LegalMovesFrom(from chess.Square) []chess.Square {
	if !from.Valid() || g.status.IsTerminal() {
		return nil
	}
	return LegalMoves(&g.pos, from)
}

// IsInCheck reports whether colour's king is currently attacked.
func (g *Game) IsInCheck(colour chess.Colour) bool {
	return IsInCheck(&g.pos.Board, colour)
}

// CanCastle reports whether the side to move may castle on side now.
func (g *Game) CanCastle(side chess.CastleSide) bool {
	if g.status.IsTerminal() {
		return false
	}
	return CanCastle(&g.pos, g.pos.ToMove, side)
}

// Status returns the status for the side to move.
func (g *Game) Status() chess.GameStatus {
	return g.status
}

// SideToMove returns the colour whose turn it is.
func (g *Game) SideToMove() chess.Colour {
	return g.pos.ToMove
}

// Board returns a copy of the current board.
func (g *Game) Board() chess.Board {
	return g.pos.Board
}

// Position returns a copy of the current position.
func (g *Game) Position() Position {
	return g.pos
}

// CastlingRights returns the current castling rights.
func (g *Game) CastlingRights() chess.CastlingRights {
	return g.pos.Castling
}

// EnPassantTarget returns the live en passant target, if any.
func (g *Game) EnPassantTarget() (chess.Square, bool) {
	return g.pos.EnPassant, g.pos.HasEnPassant
}

// LastMove returns the squares touched by the most recent move: two, or
// four for a castle. It is empty before the first move.
func (g *Game) LastMove() []chess.Square {
	return append([]chess.Square(nil), g.lastMove...)
}

// FEN returns the current position in Forsyth-Edwards Notation.
func (g *Game) FEN() string {
	return g.pos.FEN()
}

// StartFEN returns the FEN of the position the game started from.
func (g *Game) StartFEN() string {
	return g.start.FEN()
}

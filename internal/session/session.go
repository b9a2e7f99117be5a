// Package session serialises access to engine games. Each Session owns one
// engine.Game and runs every request on its own goroutine, so callers on
// many goroutines can share a game without locking it themselves.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/output"
)

// request is one unit of work run on the session goroutine.
type request struct {
	fn       func(g *engine.Game)
	finished chan struct{}
}

// Session is a single game served by one goroutine.
type Session struct {
	id        uuid.UUID
	requests  chan request
	done      chan struct{}
	closeOnce sync.Once
	logger    zerolog.Logger
}

func newSession(id uuid.UUID, g *engine.Game, logger zerolog.Logger) *Session {
	s := &Session{
		id:       id,
		requests: make(chan request),
		done:     make(chan struct{}),
		logger:   logger,
	}
	go s.loop(g)
	return s
}

// loop runs requests until the session is closed.
func (s *Session) loop(g *engine.Game) {
	s.logger.Debug().Msg("session started")
	for {
		select {
		case req := <-s.requests:
			req.fn(g)
			close(req.finished)
		case <-s.done:
			s.logger.Debug().Msg("session stopped")
			return
		}
	}
}

// do runs fn on the session goroutine and waits for it. A request that
// has been accepted always runs to completion; ctx only bounds the wait.
func (s *Session) do(ctx context.Context, fn func(g *engine.Game)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := request{fn: fn, finished: make(chan struct{})}
	select {
	case s.requests <- req:
	case <-s.done:
		return errors.ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-req.finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ID returns the game ID.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Close stops the session goroutine. Later requests fail with
// errors.ErrSessionClosed.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// Move plays from -> to.
func (s *Session) Move(ctx context.Context, from, to chess.Square) (chess.Move, error) {
	var move chess.Move
	var moveErr error
	if err := s.do(ctx, func(g *engine.Game) {
		move, moveErr = g.ApplyMove(from, to)
	}); err != nil {
		return chess.Move{}, err
	}
	return move, moveErr
}

// MoveText plays a move in long algebraic notation such as "e2e4".
func (s *Session) MoveText(ctx context.Context, text string) (chess.Move, error) {
	var move chess.Move
	var moveErr error
	if err := s.do(ctx, func(g *engine.Game) {
		move, moveErr = g.ApplyMoveText(text)
	}); err != nil {
		return chess.Move{}, err
	}
	return move, moveErr
}

// LegalMoves returns the legal destinations of the piece on from.
func (s *Session) LegalMoves(ctx context.Context, from chess.Square) ([]chess.Square, error) {
	var moves []chess.Square
	err := s.do(ctx, func(g *engine.Game) {
		moves = g.LegalMovesFrom(from)
	})
	return moves, err
}

// Undo takes back the most recent move.
func (s *Session) Undo(ctx context.Context) (chess.Move, error) {
	var move chess.Move
	var undoErr error
	if err := s.do(ctx, func(g *engine.Game) {
		move, undoErr = g.Undo()
	}); err != nil {
		return chess.Move{}, err
	}
	return move, undoErr
}

// Reset returns the game to its start position.
func (s *Session) Reset(ctx context.Context) error {
	return s.do(ctx, func(g *engine.Game) {
		g.Reset()
	})
}

// Status returns the status for the side to move.
func (s *Session) Status(ctx context.Context) (chess.GameStatus, error) {
	var status chess.GameStatus
	err := s.do(ctx, func(g *engine.Game) {
		status = g.Status()
	})
	return status, err
}

// Snapshot captures the game for a client.
func (s *Session) Snapshot(ctx context.Context) (*output.Snapshot, error) {
	var snap *output.Snapshot
	err := s.do(ctx, func(g *engine.Game) {
		snap = output.NewSnapshot(g)
	})
	if err != nil {
		return nil, err
	}
	snap.GameID = s.id.String()
	return snap, nil
}

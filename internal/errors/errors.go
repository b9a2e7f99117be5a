// Package errors provides sentinel errors and error types for the chess
// rules engine. It defines the rejection taxonomy of the engine and
// structured error types that preserve context while allowing error
// inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrGameOver indicates a move or undo requested after checkmate or stalemate.
	ErrGameOver = errors.New("game is over")

	// ErrInvalidSquare indicates a coordinate outside the board.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrNoHistory indicates an undo requested with no moves played.
	ErrNoHistory = errors.New("no move to undo")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidMoveText indicates move notation that cannot be translated
	// into a pair of squares.
	ErrInvalidMoveText = errors.New("invalid move text")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSessionClosed indicates a request sent to a stopped game session.
	ErrSessionClosed = errors.New("session closed")

	// ErrUnknownGame indicates a game ID that no session is registered for.
	ErrUnknownGame = errors.New("unknown game")
)

// MoveError wraps a move rejection with the squares involved and the
// reason it was refused. It supports unwrapping via errors.Is() and
// errors.As().
type MoveError struct {
	Err    error  // The underlying error
	Ply    int    // 1-based ply the move would have been (0 if unknown)
	From   string // Source square in algebraic form
	To     string // Destination square in algebraic form
	Reason string // Short explanation, e.g. "path blocked"
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.From != "" || e.To != "" {
		parts = append(parts, fmt.Sprintf("move %s%s", e.From, e.To))
	}

	msg := strings.Join(parts, ", ")
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}
	if e.Reason != "" {
		if msg == "" {
			return e.Reason
		}
		msg = fmt.Sprintf("%s (%s)", msg, e.Reason)
	}
	return msg
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// GameError wraps errors with replay context, including game number,
// ply position, and move information. It implements the error interface
// and supports unwrapping via errors.Is() and errors.As().
type GameError struct {
	Err      error  // The underlying error
	GameNum  int    // 1-based game number in the input
	PlyNum   int    // Ply number where error occurred (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
	File     string // Source file name (if known)
	Line     int    // Line number in source file (if known)
}

// Error returns a formatted error message including all available context.
func (e *GameError) Error() string {
	var parts []string

	// Add file/line context if available
	if e.File != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.File, e.Line))
		} else {
			parts = append(parts, e.File)
		}
	}

	parts = append(parts, fmt.Sprintf("game %d", e.GameNum))

	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}

	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error.
func (e *GameError) Unwrap() error {
	return e.Err
}

// Is reports whether any error in err's chain matches target.
// It re-exports the standard library function so callers importing this
// package under the name errors keep access to it.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

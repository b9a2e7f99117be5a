package config

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// FilterConfig selects which replayed games are output.
type FilterConfig struct {
	// Status conditions on the final position
	MatchCheckmate bool
	MatchStalemate bool
	MatchCheck     bool

	// Ply bounds (0 = no bound)
	CheckPlyBounds bool
	LowerPlyBound  uint
	UpperPlyBound  uint

	// StopOnError ends the run at the first game with an illegal move
	StopOnError bool

	// KeepBrokenGames outputs games that stopped at an illegal move
	KeepBrokenGames bool
}

// NewFilterConfig creates a FilterConfig with default values.
// All filters are disabled by default.
func NewFilterConfig() *FilterConfig {
	return &FilterConfig{KeepBrokenGames: true}
}

// Validate checks that the filter configuration is valid.
func (f *FilterConfig) Validate() error {
	if f.CheckPlyBounds && f.LowerPlyBound > f.UpperPlyBound {
		return fmt.Errorf("lower ply bound (%d) > upper ply bound (%d): %w",
			f.LowerPlyBound, f.UpperPlyBound, errors.ErrInvalidConfig)
	}
	return nil
}

// HasStatusFilter reports whether any status condition is set.
func (f *FilterConfig) HasStatusFilter() bool {
	return f.MatchCheckmate || f.MatchStalemate || f.MatchCheck
}

package config

import "io"

// DuplicateConfig holds settings for detecting games that end in the same
// position.
type DuplicateConfig struct {
	// Suppress drops games whose final position was already output
	Suppress bool

	// MatchPlies also requires the same number of half-moves
	MatchPlies bool

	// DuplicateFile receives the line numbers of duplicate games
	DuplicateFile io.Writer
}

// NewDuplicateConfig creates a DuplicateConfig with default values.
func NewDuplicateConfig() *DuplicateConfig {
	return &DuplicateConfig{}
}

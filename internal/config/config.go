// Package config provides configuration for chess-replay.
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	// Verbosity controls logging: 0=errors only, 1=summary, 2=per-game, 3=per-move
	Verbosity int

	// Workers is the number of replay goroutines; 0 means one per CPU
	Workers int
	// BufferSize is the capacity of the work and result channels
	BufferSize int

	// StartFEN is the default start position for lines without a FEN prefix
	StartFEN string

	// PerftDepth requests a perft count instead of replaying games (0 = off)
	PerftDepth int

	// Sub-configurations
	Output     *OutputConfig
	Filter     *FilterConfig
	Duplicate  *DuplicateConfig
	Annotation *AnnotationConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		BufferSize: 64,
		Output:     NewOutputConfig(),
		Filter:     NewFilterConfig(),
		Duplicate:  NewDuplicateConfig(),
		Annotation: NewAnnotationConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the main output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLogFile sets the log writer.
func (c *Config) SetLogFile(w io.Writer) {
	c.LogFile = w
}

// NumWorkers returns the effective worker count.
func (c *Config) NumWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers (%d) must not be negative: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if c.BufferSize < 0 {
		return fmt.Errorf("buffer size (%d) must not be negative: %w", c.BufferSize, errors.ErrInvalidConfig)
	}
	if c.PerftDepth < 0 {
		return fmt.Errorf("perft depth (%d) must not be negative: %w", c.PerftDepth, errors.ErrInvalidConfig)
	}
	return c.Filter.Validate()
}

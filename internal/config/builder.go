package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithWorkers sets the number of replay workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithBufferSize sets the channel buffer size.
func (b *ConfigBuilder) WithBufferSize(n int) *ConfigBuilder {
	b.cfg.BufferSize = n
	return b
}

// WithStartFEN sets the default start position.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.StartFEN = fen
	return b
}

// WithPerftDepth requests a perft count.
func (b *ConfigBuilder) WithPerftDepth(depth int) *ConfigBuilder {
	b.cfg.PerftDepth = depth
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Output.JSONFormat = enabled
	return b
}

// WithMaxLineLength sets the maximum line length.
func (b *ConfigBuilder) WithMaxLineLength(length uint) *ConfigBuilder {
	b.cfg.Output.MaxLineLength = length
	return b
}

// WithDuplicateSuppression enables duplicate suppression.
func (b *ConfigBuilder) WithDuplicateSuppression(enabled, matchPlies bool) *ConfigBuilder {
	b.cfg.Duplicate.Suppress = enabled
	b.cfg.Duplicate.MatchPlies = matchPlies
	return b
}

// WithPlyBounds sets ply bounds for filtering.
func (b *ConfigBuilder) WithPlyBounds(lower, upper uint) *ConfigBuilder {
	b.cfg.Filter.CheckPlyBounds = true
	b.cfg.Filter.LowerPlyBound = lower
	b.cfg.Filter.UpperPlyBound = upper
	return b
}

// WithCheckmateFilter enables checkmate-only filtering.
func (b *ConfigBuilder) WithCheckmateFilter(enabled bool) *ConfigBuilder {
	b.cfg.Filter.MatchCheckmate = enabled
	return b
}

// WithStalemateFilter enables stalemate-only filtering.
func (b *ConfigBuilder) WithStalemateFilter(enabled bool) *ConfigBuilder {
	b.cfg.Filter.MatchStalemate = enabled
	return b
}

// WithStopOnError ends the run at the first broken game.
func (b *ConfigBuilder) WithStopOnError(enabled bool) *ConfigBuilder {
	b.cfg.Filter.StopOnError = enabled
	return b
}

// WithHash enables the position hash annotation.
func (b *ConfigBuilder) WithHash(enabled bool) *ConfigBuilder {
	b.cfg.Annotation.AddHash = enabled
	return b
}

// WithBoard controls the board diagram.
func (b *ConfigBuilder) WithBoard(enabled bool) *ConfigBuilder {
	b.cfg.Annotation.ShowBoard = enabled
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLogFile sets the log writer.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

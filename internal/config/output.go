package config

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// JSONFormat enables JSON snapshots instead of text
	JSONFormat bool

	// JSONArray batches all snapshots into one JSON document
	JSONArray bool

	// MaxLineLength is the maximum line length for move lists in text output
	MaxLineLength uint

	// KeepMoveNumbers controls whether move numbers are included
	KeepMoveNumbers bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		JSONArray:       true,
		MaxLineLength:   80,
		KeepMoveNumbers: true,
	}
}

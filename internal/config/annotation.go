package config

// AnnotationConfig holds settings for the extra detail added to each game.
type AnnotationConfig struct {
	ShowBoard   bool // Print the final board diagram
	AddFEN      bool // Print the final FEN
	AddHash     bool // Print the Zobrist key of the final position
	AddLastMove bool // Print the squares touched by the last move
	AddPlyCount bool // Print the number of half-moves played
	AddRepeats  bool // Print the highest repetition count of any position
	AddStartFEN bool // Print the start position when it is not the standard one
}

// NewAnnotationConfig creates an AnnotationConfig with default values.
func NewAnnotationConfig() *AnnotationConfig {
	return &AnnotationConfig{
		ShowBoard: true,
		AddFEN:    true,
	}
}

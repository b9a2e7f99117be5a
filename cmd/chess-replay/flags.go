// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chessrules-go/internal/config"
)

var (
	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	lineLength   = flag.Int("w", 80, "Maximum line length for move text")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format")
	jsonLines    = flag.Bool("jsonl", false, "With -J, write one JSON object per game instead of an array")

	// Annotations
	noBoard      = flag.Bool("noboard", false, "Don't print the final board")
	noFEN        = flag.Bool("nofen", false, "Don't print the final FEN")
	addHash      = flag.Bool("hash", false, "Print the Zobrist key of the final position")
	addLastMove  = flag.Bool("lastmove", false, "Print the squares touched by the last move")
	addPlyCount  = flag.Bool("plycount", false, "Print the number of half-moves played")
	addRepeats   = flag.Bool("repeats", false, "Print the highest repetition count of any position")
	showStartFEN = flag.Bool("startfen", false, "Print the start position of games not starting from the standard one")

	// Start position and perft
	startFEN   = flag.String("fen", "", "Start position for lines without a FEN prefix")
	perftDepth = flag.Int("perft", 0, "Print the perft node count to depth N for -fen and exit")

	// Filtering options
	checkmateFilter = flag.Bool("checkmate", false, "Only output games ending in checkmate")
	stalemateFilter = flag.Bool("stalemate", false, "Only output games ending in stalemate")
	checkFilter     = flag.Bool("check", false, "Only output games ending with the side to move in check")
	minPly          = flag.Int("minply", 0, "Minimum ply count")
	maxPly          = flag.Int("maxply", 0, "Maximum ply count (0 = no limit)")
	stopOnError     = flag.Bool("stoponerror", false, "Stop at the first game containing an illegal move")
	dropBroken      = flag.Bool("dropbroken", false, "Don't output games that stopped at an illegal move")

	// Duplicate detection
	suppressDuplicates = flag.Bool("D", false, "Suppress games ending in an already output position")
	duplicateFile      = flag.String("d", "", "Write duplicate games to this file")
	matchPlies         = flag.Bool("matchplies", false, "Duplicates must also have the same ply count")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	verbosity = flag.Int("v", 1, "Verbosity: 0=errors, 1=summary, 2=per game, 3=per move")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no game count)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")

	// Performance options
	workers    = flag.Int("workers", 0, "Number of worker goroutines (0 = auto-detect based on CPU cores)")
	bufferSize = flag.Int("buffer", 64, "Work queue size")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applyOutputFlags(cfg)
	applyAnnotationFlags(cfg)
	applyFilterFlags(cfg)
	applyDuplicateFlags(cfg)

	cfg.StartFEN = *startFEN
	cfg.PerftDepth = *perftDepth
	cfg.Workers = *workers
	cfg.BufferSize = *bufferSize
	cfg.Verbosity = *verbosity

	if *quiet {
		cfg.Verbosity = 0
	}
}

// applyOutputFlags configures the output format.
func applyOutputFlags(cfg *config.Config) {
	cfg.Output.JSONFormat = *jsonOutput
	cfg.Output.JSONArray = !*jsonLines
	if *lineLength > 0 {
		cfg.Output.MaxLineLength = uint(*lineLength)
	}
}

// applyAnnotationFlags configures the per-game detail lines.
func applyAnnotationFlags(cfg *config.Config) {
	cfg.Annotation.ShowBoard = !*noBoard
	cfg.Annotation.AddFEN = !*noFEN
	cfg.Annotation.AddHash = *addHash
	cfg.Annotation.AddLastMove = *addLastMove
	cfg.Annotation.AddPlyCount = *addPlyCount
	cfg.Annotation.AddRepeats = *addRepeats
	cfg.Annotation.AddStartFEN = *showStartFEN
}

// applyFilterFlags configures the game filters.
func applyFilterFlags(cfg *config.Config) {
	cfg.Filter.MatchCheckmate = *checkmateFilter
	cfg.Filter.MatchStalemate = *stalemateFilter
	cfg.Filter.MatchCheck = *checkFilter
	cfg.Filter.StopOnError = *stopOnError
	cfg.Filter.KeepBrokenGames = !*dropBroken

	if *minPly > 0 || *maxPly > 0 {
		cfg.Filter.CheckPlyBounds = true
		if *minPly > 0 {
			cfg.Filter.LowerPlyBound = uint(*minPly)
		}
		if *maxPly > 0 {
			cfg.Filter.UpperPlyBound = uint(*maxPly)
		} else {
			cfg.Filter.UpperPlyBound = ^uint(0)
		}
	}
}

// applyDuplicateFlags configures duplicate detection.
func applyDuplicateFlags(cfg *config.Config) {
	cfg.Duplicate.Suppress = *suppressDuplicates || *duplicateFile != ""
	cfg.Duplicate.MatchPlies = *matchPlies
}

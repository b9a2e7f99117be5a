// chess-replay replays chess games given as long algebraic move lists,
// checking every move against the rules, and prints the resulting
// positions as text or JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessrules-go/internal/config"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-replay version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)
	setupDuplicateFile(cfg)

	logger := newLogger(cfg.LogFile, cfg.Verbosity)

	if cfg.PerftDepth > 0 {
		if err := runPerft(cfg.OutputFile, cfg); err != nil {
			logger.Error().Err(err).Msg("perft failed")
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	inputs, closeInputs := openInputs(flag.Args(), logger)
	defer closeInputs()

	pc := NewProcessingContext(cfg, logger)
	stats, err := processAllInputs(ctx, inputs, pc)
	if closeErr := pc.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		logger.Error().Err(err).Msg("replay failed")
	}

	if cfg.Verbosity > 0 {
		reportStatistics(os.Stderr, stats, cfg.Duplicate.Suppress)
	}
	if err != nil || (stats.Errors > 0 && cfg.Filter.StopOnError) {
		os.Exit(1)
	}
}

// newLogger builds the program logger writing to w. Verbosity 0 logs errors
// only, 1 adds warnings and lifecycle events, 2 adds one event per game and
// 3 adds one per move.
func newLogger(w io.Writer, verbosity int) zerolog.Logger {
	level := zerolog.ErrorLevel
	switch {
	case verbosity >= 2:
		level = zerolog.DebugLevel
	case verbosity == 1:
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}

	var file *os.File
	var err error

	if *appendOutput {
		file, err = os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(*outputFile)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
}

// setupDuplicateFile configures the duplicate output file.
func setupDuplicateFile(cfg *config.Config) {
	if *duplicateFile == "" {
		return
	}

	file, err := os.Create(*duplicateFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating duplicate file %s: %v\n", *duplicateFile, err)
		os.Exit(1)
	}
	cfg.Duplicate.DuplicateFile = file
}

// openInputs opens the named files, or stdin when there are none. Files
// that cannot be opened are logged and skipped.
func openInputs(args []string, logger zerolog.Logger) ([]Input, func()) {
	if len(args) == 0 {
		return []Input{{Name: "stdin", Reader: os.Stdin}}, func() {}
	}

	var inputs []Input
	var files []*os.File
	for _, filename := range args {
		file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			logger.Error().Err(err).Str("file", filename).Msg("cannot open input")
			continue
		}
		files = append(files, file)
		inputs = append(inputs, Input{Name: filename, Reader: file})
	}

	return inputs, func() {
		for _, f := range files {
			f.Close() //nolint:errcheck,gosec // G104: cleanup on exit
		}
	}
}

// reportStatistics prints the final statistics.
func reportStatistics(w io.Writer, stats Stats, duplicates bool) {
	if duplicates {
		fmt.Fprintf(w, "%d game(s) output, %d duplicate(s) out of %d.\n", stats.Output, stats.Duplicates, stats.Total)
		fmt.Fprintf(w, "%d distinct final position(s).\n", stats.Unique)
	} else {
		fmt.Fprintf(w, "%d game(s) matched out of %d.\n", stats.Output, stats.Total)
	}
	if stats.Errors > 0 {
		fmt.Fprintf(w, "%d game(s) contained an illegal move.\n", stats.Errors)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-replay [options] [input-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Replays chess games and reports the resulting positions.\n\n")
	fmt.Fprintf(os.Stderr, "Input: one game per line, moves in long algebraic notation,\n")
	fmt.Fprintf(os.Stderr, "optionally preceded by a start position and '|':\n")
	fmt.Fprintf(os.Stderr, "  e2e4 e7e5 g1f3 b8c6\n")
	fmt.Fprintf(os.Stderr, "  4k3/8/8/8/8/8/8/4K2R w K - 0 1 | e1g1\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

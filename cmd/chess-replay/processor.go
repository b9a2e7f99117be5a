// processor.go - Game replay and output functions
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/hashing"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// ProcessingContext holds all processing state
type ProcessingContext struct {
	cfg       *config.Config
	logger    zerolog.Logger
	detector  *hashing.ThreadSafeDuplicateDetector
	writer    output.GameWriter
	dupWriter output.GameWriter
}

// NewProcessingContext builds the context for a run. Games go to
// cfg.OutputFile; duplicates go to cfg.Duplicate.DuplicateFile when set.
func NewProcessingContext(cfg *config.Config, logger zerolog.Logger) *ProcessingContext {
	ctx := &ProcessingContext{
		cfg:    cfg,
		logger: logger,
		writer: output.NewGameWriter(cfg.OutputFile, cfg),
	}
	if cfg.Duplicate.Suppress {
		ctx.detector = hashing.NewThreadSafeDuplicateDetector(cfg.Duplicate.MatchPlies)
	}
	if cfg.Duplicate.DuplicateFile != nil {
		ctx.dupWriter = output.NewGameWriter(cfg.Duplicate.DuplicateFile, cfg)
	}
	return ctx
}

// Close flushes and closes the output writers.
func (pc *ProcessingContext) Close() error {
	err := pc.writer.Close()
	if pc.dupWriter != nil {
		if dupErr := pc.dupWriter.Close(); err == nil {
			err = dupErr
		}
	}
	return err
}

// Input is one named source of game lines.
type Input struct {
	Name   string
	Reader io.Reader
}

// Stats counts what happened to the games of a run.
type Stats struct {
	Total      int
	Output     int
	Filtered   int
	Duplicates int
	Unique     int
	Errors     int
}

// splitLine separates an optional "FEN |" prefix from the moves of a game
// line. Blank lines and lines starting with '#' hold no game.
func splitLine(line string) (fen string, moves []string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", nil, false
	}
	if i := strings.IndexByte(line, '|'); i >= 0 {
		fen = strings.TrimSpace(line[:i])
		line = line[i+1:]
	}
	return fen, strings.Fields(line), true
}

// replayGame replays one input line on a fresh engine.
func replayGame(ctx context.Context, item worker.WorkItem, pc *ProcessingContext) worker.ProcessResult {
	result := worker.ProcessResult{
		Index:  item.Index,
		GameID: uuid.NewString(),
	}
	logger := pc.logger.With().
		Str("game", result.GameID).
		Str("source", item.Source).
		Int("line", item.LineNo).
		Logger()

	fen, moves, _ := splitLine(item.Line)
	if fen == "" {
		fen = pc.cfg.StartFEN
	}

	var opts []engine.Option
	if pc.cfg.Verbosity >= 3 {
		opts = append(opts, engine.WithLogger(logger))
	}
	g, err := newGame(fen, opts...)
	if err != nil {
		result.Error = &errors.GameError{Err: err, GameNum: item.Index + 1, File: item.Source, Line: item.LineNo}
		return result
	}

	for _, text := range moves {
		if ctx.Err() != nil {
			result.Error = ctx.Err()
			break
		}
		if _, err := g.ApplyMoveText(text); err != nil {
			result.Error = &errors.GameError{
				Err:      err,
				GameNum:  item.Index + 1,
				PlyNum:   g.Ply() + 1,
				MoveText: text,
				File:     item.Source,
				Line:     item.LineNo,
			}
			break
		}
	}

	snap := output.NewSnapshot(g)
	snap.GameID = result.GameID
	snap.Index = item.Index
	if result.Error != nil {
		snap.Error = result.Error.Error()
	}
	if counter, err := hashing.ReplayRepetitions(g); err == nil {
		snap.Repetitions = counter.MaxRepetitions()
	}

	result.Snapshot = snap
	result.Plies = g.Ply()
	result.Hash = hashing.HashGame(g)
	result.ShouldOutput = matchesFilters(g.Status(), g.Ply(), result.Error, pc.cfg.Filter)

	logger.Debug().
		Int("plies", result.Plies).
		Str("status", g.Status().String()).
		Bool("matched", result.ShouldOutput).
		Msg("game replayed")
	return result
}

func newGame(fen string, opts ...engine.Option) (*engine.Game, error) {
	if fen == "" {
		return engine.NewGame(opts...), nil
	}
	return engine.NewGameFromFEN(fen, opts...)
}

// matchesFilters reports whether a replayed game passes the filters.
func matchesFilters(status chess.GameStatus, plies int, replayErr error, f *config.FilterConfig) bool {
	if replayErr != nil && !f.KeepBrokenGames {
		return false
	}
	if f.CheckPlyBounds {
		if uint(plies) < f.LowerPlyBound || uint(plies) > f.UpperPlyBound {
			return false
		}
	}
	if !f.HasStatusFilter() {
		return true
	}
	switch status {
	case chess.Checkmate:
		return f.MatchCheckmate
	case chess.Stalemate:
		return f.MatchStalemate
	case chess.Check:
		return f.MatchCheck
	default:
		return false
	}
}

// processAllInputs replays every game of every input through the worker
// pool and writes the results in input order.
func processAllInputs(ctx context.Context, inputs []Input, pc *ProcessingContext) (Stats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := worker.NewPool(
		func(ctx context.Context, item worker.WorkItem) worker.ProcessResult {
			return replayGame(ctx, item, pc)
		},
		worker.WithWorkers(pc.cfg.NumWorkers()),
		worker.WithBufferSize(pc.cfg.BufferSize),
	)
	pool.Start(ctx)

	readErrs := make(chan error, 1)
	go func() {
		defer pool.Close()
		readErrs <- submitInputs(ctx, inputs, pool)
	}()

	var stats Stats
	var writeErr error
	stopped := false
	stop := func() {
		stopped = true
		pool.Stop()
		cancel()
	}
	for result := range worker.Ordered(pool.Results()) {
		if stopped {
			continue // Drain
		}
		stats.Total++

		if result.Error != nil {
			stats.Errors++
			pc.logger.Warn().Err(result.Error).Msg("replay stopped")
			if pc.cfg.Filter.StopOnError {
				stop()
			}
		}
		if result.Snapshot == nil || !result.ShouldOutput {
			stats.Filtered++
			continue
		}

		if pc.detector != nil {
			first, dup := pc.detector.CheckAndAdd(hashing.GameSignature{
				Hash:  result.Hash,
				Plies: result.Plies,
				Index: result.Index,
			})
			if dup {
				pc.logger.Debug().
					Str("game", result.GameID).
					Int("duplicate_of", first.Index+1).
					Msg("duplicate final position")
				if pc.dupWriter != nil {
					if err := pc.dupWriter.WriteGame(result.Snapshot); err != nil {
						writeErr = errors.Wrap(err, "writing duplicate")
						stop()
					}
				}
				continue
			}
		}

		if err := pc.writer.WriteGame(result.Snapshot); err != nil {
			writeErr = errors.Wrap(err, "writing game")
			stop()
			continue
		}
		stats.Output++
	}
	if pc.detector != nil {
		stats.Duplicates = pc.detector.DuplicateCount()
		stats.Unique = pc.detector.UniqueCount()
	}

	if writeErr != nil {
		<-readErrs
		return stats, writeErr
	}
	if err := <-readErrs; err != nil && !stopped {
		return stats, err
	}
	return stats, nil
}

// submitInputs feeds every game line of inputs to pool, numbering games
// across all inputs.
func submitInputs(ctx context.Context, inputs []Input, pool *worker.Pool) error {
	index := 0
	for _, in := range inputs {
		scanner := bufio.NewScanner(in.Reader)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		lineNo := 0
		for scanner.Scan() {
			if err := ctx.Err(); err != nil {
				return err
			}
			lineNo++
			line := scanner.Text()
			if _, _, ok := splitLine(line); !ok {
				continue
			}
			submitted, err := pool.Submit(ctx, worker.WorkItem{
				Index:  index,
				LineNo: lineNo,
				Source: in.Name,
				Line:   line,
			})
			if err != nil {
				return err
			}
			if !submitted {
				return nil
			}
			index++
		}
		if err := scanner.Err(); err != nil {
			return errors.Wrapf(err, "reading %s", in.Name)
		}
	}
	return nil
}

// runPerft prints the perft node count for every depth up to cfg.PerftDepth.
func runPerft(w io.Writer, cfg *config.Config) error {
	fen := cfg.StartFEN
	if fen == "" {
		fen = engine.InitialFEN
	}
	pos, err := engine.ParseFEN(fen)
	if err != nil {
		return err
	}
	for depth := 1; depth <= cfg.PerftDepth; depth++ {
		fmt.Fprintf(w, "perft(%d) = %d\n", depth, engine.Perft(pos, depth))
	}
	return nil
}

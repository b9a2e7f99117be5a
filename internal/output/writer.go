package output

import (
	"io"

	"github.com/lgbarn/chessrules-go/internal/config"
)

// GameWriter is the interface for writing replayed games.
// Different implementations handle different output formats (text, JSON).
type GameWriter interface {
	// WriteGame writes a single snapshot to the output.
	WriteGame(snap *Snapshot) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewGameWriter returns the writer selected by cfg.
func NewGameWriter(w io.Writer, cfg *config.Config) GameWriter {
	switch {
	case !cfg.Output.JSONFormat:
		return NewTextWriter(w, cfg)
	case cfg.Output.JSONArray:
		return NewJSONWriter(w)
	default:
		return NewJSONWriterSingle(w)
	}
}

// TextWriter writes games as plain text.
type TextWriter struct {
	w   io.Writer
	cfg *config.Config
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.Config) *TextWriter {
	return &TextWriter{
		w:   w,
		cfg: cfg,
	}
}

// WriteGame writes a game as text.
func (tw *TextWriter) WriteGame(snap *Snapshot) error {
	WriteText(tw.w, snap, tw.cfg)
	return nil
}

// Flush flushes the text writer (no-op as it writes immediately).
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	snaps  []*Snapshot
	single bool // If true, write each game immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches games and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:     w,
		snaps: make([]*Snapshot, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:      w,
		single: true,
	}
}

// WriteGame buffers a game for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteGame(snap *Snapshot) error {
	if jw.single {
		return WriteSnapshotJSON(jw.w, snap)
	}

	// Buffer for batch output
	jw.snaps = append(jw.snaps, snap)
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.snaps) == 0 {
		return nil
	}

	err := WriteBatchJSON(jw.w, jw.snaps)

	// Clear buffer after writing
	jw.snaps = jw.snaps[:0]

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}

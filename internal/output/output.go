// Package output renders replayed games as text or JSON snapshots.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/config"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		// Check if we need a new line
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// WriteText renders a snapshot as plain text: a header, the move list,
// the requested annotations and a trailing blank line.
func WriteText(w io.Writer, snap *Snapshot, cfg *config.Config) {
	fmt.Fprintf(w, "Game %d", snap.Index+1)
	if snap.GameID != "" {
		fmt.Fprintf(w, " [%s]", snap.GameID)
	}
	fmt.Fprintln(w)

	if cfg.Annotation.AddStartFEN && snap.InitialFEN != "" {
		fmt.Fprintf(w, "Start: %s\n", snap.InitialFEN)
	}

	outputMoves(w, snap, cfg)

	if snap.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", snap.Error)
	}
	fmt.Fprintf(w, "Status: %s, %s to move\n", snap.Status, snap.SideToMove)

	if cfg.Annotation.ShowBoard {
		writeBoard(w, snap.Board, snap.LastMove)
	}
	if cfg.Annotation.AddFEN {
		fmt.Fprintf(w, "FEN: %s\n", snap.FEN)
	}
	if cfg.Annotation.AddHash {
		fmt.Fprintf(w, "Hash: %s\n", snap.Hash)
	}
	if cfg.Annotation.AddLastMove && len(snap.LastMove) > 0 {
		fmt.Fprintf(w, "Last move: %s\n", strings.Join(snap.LastMove, " "))
	}
	if cfg.Annotation.AddPlyCount {
		fmt.Fprintf(w, "Plies: %d\n", snap.PlyCount)
	}
	if cfg.Annotation.AddRepeats && snap.Repetitions > 0 {
		fmt.Fprintf(w, "Repetitions: %d\n", snap.Repetitions)
	}

	// Blank line between games
	fmt.Fprintln(w)
}

// outputMoves writes the move list with move numbers, wrapped to the
// configured line length.
func outputMoves(w io.Writer, snap *Snapshot, cfg *config.Config) {
	if len(snap.Moves) == 0 {
		return
	}
	ow := NewOutputWriter(w, int(cfg.Output.MaxLineLength))

	for i, m := range snap.Moves {
		if cfg.Output.KeepMoveNumbers {
			switch {
			case m.MoveNumber > 0:
				ow.Write(strconv.Itoa(m.MoveNumber) + ".")
			case i == 0:
				// Game started with Black to move
				ow.Write(strconv.Itoa(blackStartNumber(snap)) + "...")
			}
		}
		ow.Write(m.Text)
	}
	ow.NewLine()
}

// blackStartNumber returns the move number of a game whose first move is
// Black's.
func blackStartNumber(snap *Snapshot) int {
	for _, m := range snap.Moves {
		if m.MoveNumber > 0 {
			return m.MoveNumber - 1
		}
	}
	fields := strings.Fields(snap.InitialFEN)
	if len(fields) == 6 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			return n
		}
	}
	return 1
}

// writeBoard draws the board rows with rank and file labels. Squares the
// last move touched are bracketed.
func writeBoard(w io.Writer, rows []string, lastMove []string) {
	marked := make(map[string]bool, len(lastMove))
	for _, sq := range lastMove {
		marked[sq] = true
	}

	var sb strings.Builder
	for row, line := range rows {
		rank := byte('8' - row)
		sb.WriteByte(rank)
		sb.WriteByte(' ')
		for col := 0; col < len(line); col++ {
			name := string([]byte{byte('a' + col), rank})
			if marked[name] {
				sb.WriteByte('[')
				sb.WriteByte(line[col])
				sb.WriteByte(']')
			} else {
				sb.WriteByte(' ')
				sb.WriteByte(line[col])
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\n")
	fmt.Fprint(w, sb.String())
}

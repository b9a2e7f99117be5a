package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/hashing"
)

// Snapshot is a serialisable view of one game: everything a client needs
// to draw the board and the move list.
type Snapshot struct {
	GameID      string         `json:"gameId,omitempty"`
	Index       int            `json:"index"`
	InitialFEN  string         `json:"initialFEN,omitempty"`
	Board       []string       `json:"board"`
	Moves       []SnapshotMove `json:"moves"`
	SideToMove  string         `json:"sideToMove"`
	Status      string         `json:"status"`
	FEN         string         `json:"fen"`
	Hash        string         `json:"hash"`
	LastMove    []string       `json:"lastMove,omitempty"`
	PlyCount    int            `json:"plyCount"`
	Repetitions int            `json:"repetitions,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// SnapshotMove is one entry of the move history.
type SnapshotMove struct {
	MoveNumber int    `json:"moveNumber,omitempty"`
	Color      string `json:"color"` // "white" or "black"
	UCI        string `json:"uci"`
	Text       string `json:"text"`
	From       string `json:"from"`
	To         string `json:"to"`
	Piece      string `json:"piece"`
	Captured   string `json:"captured,omitempty"`
	EnPassant  bool   `json:"enPassant,omitempty"`
	Castle     string `json:"castle,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
}

// SnapshotBatch holds multiple snapshots for array output.
type SnapshotBatch struct {
	Games []*Snapshot `json:"games"`
}

// NewSnapshot captures the current state of g.
func NewSnapshot(g *engine.Game) *Snapshot {
	pos := g.Position()
	snap := &Snapshot{
		Board:      pos.Board.Rows(),
		Moves:      convertMoves(g.History(), g.StartFEN()),
		SideToMove: colourName(pos.ToMove),
		Status:     g.Status().String(),
		FEN:        pos.FEN(),
		Hash:       FormatHash(hashing.Hash(&pos)),
		PlyCount:   g.Ply(),
	}
	if start := g.StartFEN(); start != engine.InitialFEN {
		snap.InitialFEN = start
	}
	for _, sq := range g.LastMove() {
		snap.LastMove = append(snap.LastMove, sq.String())
	}
	return snap
}

// FormatHash renders a Zobrist key as 16 hex digits.
func FormatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}

// convertMoves converts a move history to JSON form, numbering moves from
// the start position's move number.
func convertMoves(moves []chess.Move, startFEN string) []SnapshotMove {
	moveNum := 1
	if pos, err := engine.ParseFEN(startFEN); err == nil {
		moveNum = pos.MoveNumber
	}

	result := make([]SnapshotMove, 0, len(moves))
	for _, m := range moves {
		sm := SnapshotMove{
			Color:     colourName(m.Colour()),
			UCI:       m.UCI(),
			Text:      m.String(),
			From:      m.From.String(),
			To:        m.To.String(),
			Piece:     pieceName(m.Piece.Kind),
			EnPassant: m.IsEnPassant,
		}
		if m.Colour() == chess.White {
			sm.MoveNumber = moveNum
		}
		if m.IsCapture() {
			sm.Captured = pieceName(m.Captured.Kind)
		}
		if m.IsCastle() {
			sm.Castle = strings.ToLower(m.Castle.String())
		}
		if m.Promoted {
			sm.Promotion = pieceName(chess.Queen)
		}
		result = append(result, sm)

		if m.Colour() == chess.Black {
			moveNum++
		}
	}
	return result
}

// colourName returns "white" or "black".
func colourName(c chess.Colour) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}

// pieceName returns the lowercase name of a piece kind.
func pieceName(k chess.PieceKind) string {
	switch k {
	case chess.Pawn:
		return "pawn"
	case chess.Knight:
		return "knight"
	case chess.Bishop:
		return "bishop"
	case chess.Rook:
		return "rook"
	case chess.Queen:
		return "queen"
	case chess.King:
		return "king"
	default:
		return ""
	}
}

// WriteSnapshotJSON writes a single snapshot as indented JSON.
func WriteSnapshotJSON(w io.Writer, snap *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// WriteBatchJSON writes snapshots as a JSON object holding an array.
func WriteBatchJSON(w io.Writer, snaps []*Snapshot) error {
	if snaps == nil {
		snaps = []*Snapshot{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&SnapshotBatch{Games: snaps})
}

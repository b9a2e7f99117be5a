package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/hashing"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func TestNewSnapshot_Initial(t *testing.T) {
	t.Parallel()
	snap := NewSnapshot(engine.NewGame())

	testutil.AssertEqual(t, snap.Board[0], "rnbqkbnr")
	testutil.AssertEqual(t, snap.Board[4], "........")
	testutil.AssertEqual(t, snap.Board[7], "RNBQKBNR")
	testutil.AssertEqual(t, snap.SideToMove, "white")
	testutil.AssertEqual(t, snap.Status, "playing")
	testutil.AssertEqual(t, snap.FEN, engine.InitialFEN)
	testutil.AssertEqual(t, snap.InitialFEN, "")
	testutil.AssertEqual(t, len(snap.Moves), 0)
	testutil.AssertEqual(t, len(snap.LastMove), 0)

	start := engine.NewInitialPosition()
	testutil.AssertEqual(t, snap.Hash, FormatHash(hashing.Hash(&start)))
}

func TestNewSnapshot_Moves(t *testing.T) {
	t.Parallel()
	g := testutil.MustNewGame(t, "r3k2r/8/8/8/3p4/8/4P3/R3K2R w KQkq - 0 1")
	testutil.MustPlay(t, g, "e2e4", "d4e3", "e1g1")

	snap := NewSnapshot(g)
	want := []SnapshotMove{
		{MoveNumber: 1, Color: "white", UCI: "e2e4", Text: "e2-e4", From: "e2", To: "e4", Piece: "pawn"},
		{Color: "black", UCI: "d4e3", Text: "d4xe3 e.p.", From: "d4", To: "e3", Piece: "pawn", Captured: "pawn", EnPassant: true},
		{MoveNumber: 2, Color: "white", UCI: "e1g1", Text: "O-O", From: "e1", To: "g1", Piece: "king", Castle: "kingside"},
	}
	if diff := cmp.Diff(want, snap.Moves); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}
	testutil.AssertEqual(t, snap.LastMove, []string{"e1", "g1", "h1", "f1"})
	testutil.AssertEqual(t, snap.PlyCount, 3)
	testutil.AssertEqual(t, snap.InitialFEN, "r3k2r/8/8/8/3p4/8/4P3/R3K2R w KQkq - 0 1")
}

func TestNewSnapshot_Promotion(t *testing.T) {
	t.Parallel()
	g := testutil.MustNewGame(t, "1n2k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	testutil.MustPlay(t, g, "a7b8")

	snap := NewSnapshot(g)
	testutil.AssertEqual(t, snap.Moves[0].Promotion, "queen")
	testutil.AssertEqual(t, snap.Moves[0].Captured, "knight")
	testutil.AssertEqual(t, snap.Moves[0].UCI, "a7b8q")
	testutil.AssertEqual(t, snap.Board[0], ".Q..k...")
	testutil.AssertEqual(t, snap.Status, "check")
}

func TestWriteSnapshotJSON(t *testing.T) {
	t.Parallel()
	g := engine.NewGame()
	testutil.MustPlay(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	var buf bytes.Buffer
	testutil.AssertNoError(t, WriteSnapshotJSON(&buf, NewSnapshot(g)))

	var got map[string]interface{}
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &got))
	testutil.AssertEqual(t, got["status"], "checkmate")
	testutil.AssertEqual(t, got["sideToMove"], "white")
	testutil.AssertEqual(t, got["plyCount"], float64(4))
}

func TestWriteBatchJSON_Empty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	testutil.AssertNoError(t, WriteBatchJSON(&buf, nil))
	testutil.AssertEqual(t, buf.String(), "{\n  \"games\": []\n}\n")
}

package engine_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func TestNewGame_InitialState(t *testing.T) {
	t.Parallel()
	g := engine.NewGame()

	testutil.AssertEqual(t, g.SideToMove(), chess.White)
	testutil.AssertEqual(t, g.Status(), chess.Playing)
	testutil.AssertEqual(t, g.FEN(), engine.InitialFEN)
	testutil.AssertEqual(t, g.CastlingRights(), chess.AllCastlingRights())
	testutil.AssertEqual(t, g.Ply(), 0)
	testutil.AssertTrue(t, len(g.LastMove()) == 0, "no last move before first move")

	_, hasEP := g.EnPassantTarget()
	testutil.AssertFalse(t, hasEP)
}

func TestLegalMovesFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fen  string
		from chess.Square
		want []string
	}{
		{"pawn on start row", "", chess.MustParseSquare("e2"), []string{"e3", "e4"}},
		{"knight from g1", "", chess.MustParseSquare("g1"), []string{"f3", "h3"}},
		{"boxed in rook", "", chess.MustParseSquare("a1"), nil},
		{"opponent piece", "", chess.MustParseSquare("e7"), nil},
		{"empty square", "", chess.MustParseSquare("e4"), nil},
		{"off the board", "", chess.Sq(8, 0), nil},
		{"negative square", "", chess.Sq(-1, 3), nil},
		{
			"pinned bishop",
			"4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1",
			chess.MustParseSquare("e2"), nil,
		},
		{
			"king with both castles",
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			chess.MustParseSquare("e1"),
			[]string{"d1", "d2", "e2", "f2", "f1", "g1", "c1"},
		},
		{
			"king must leave check",
			"4k3/8/8/8/8/8/8/r3K3 w - - 0 1",
			chess.MustParseSquare("e1"),
			[]string{"d2", "e2", "f2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.MustNewGame(t, tt.fen)
			got := g.LegalMovesFrom(tt.from)
			testutil.AssertSameSquares(t, got, testutil.Squares(t, tt.want...))
		})
	}
}

func TestApplyMove_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		fen        string
		from, to   chess.Square
		wantErr    error
		wantReason string
	}{
		{"off the board", "", chess.Sq(6, 4), chess.Sq(6, 8), errors.ErrInvalidSquare, "coordinates outside the board"},
		{"empty source", "", chess.MustParseSquare("e4"), chess.MustParseSquare("e5"), errors.ErrIllegalMove, "no piece on e4"},
		{"wrong colour", "", chess.MustParseSquare("e7"), chess.MustParseSquare("e5"), errors.ErrIllegalMove, "Black is not to move"},
		{"own piece on target", "", chess.MustParseSquare("a1"), chess.MustParseSquare("a2"), errors.ErrIllegalMove, "destination holds own piece"},
		{"bad geometry", "", chess.MustParseSquare("e2"), chess.MustParseSquare("e5"), errors.ErrIllegalMove, "Pawn cannot move from e2 to e5"},
		{"slider through piece", "", chess.MustParseSquare("f1"), chess.MustParseSquare("c4"), errors.ErrIllegalMove, "Bishop cannot move from f1 to c4"},
		{
			"exposes king",
			"4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1",
			chess.MustParseSquare("e2"), chess.MustParseSquare("d3"),
			errors.ErrIllegalMove, "move leaves king in check",
		},
		{
			"castle without rights",
			"4k3/8/8/8/8/8/8/R3K2R w - - 0 1",
			chess.MustParseSquare("e1"), chess.MustParseSquare("g1"),
			errors.ErrIllegalMove, "castling not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.MustNewGame(t, tt.fen)
			before := g.Position()

			_, err := g.ApplyMove(tt.from, tt.to)
			testutil.AssertErrorIs(t, err, tt.wantErr)

			var moveErr *errors.MoveError
			if !errors.As(err, &moveErr) {
				t.Fatalf("error %v is not a *MoveError", err)
			}
			testutil.AssertEqual(t, moveErr.Reason, tt.wantReason)
			testutil.AssertEqual(t, moveErr.Ply, 1)

			// A rejected move leaves the game untouched.
			testutil.AssertEqual(t, g.Position(), before)
			testutil.AssertEqual(t, g.Ply(), 0)
		})
	}
}

func TestApplyMove_MoveRecord(t *testing.T) {
	t.Parallel()
	g := engine.NewGame()
	testutil.MustPlay(t, g, "e2e4", "d7d5")

	move, err := g.ApplyMoveText("e4d5")
	testutil.AssertNoError(t, err)

	want := chess.Move{
		From:     chess.MustParseSquare("e4"),
		To:       chess.MustParseSquare("d5"),
		Piece:    chess.W(chess.Pawn),
		Captured: chess.B(chess.Pawn),
	}
	testutil.AssertEqual(t, move, want)
	testutil.AssertEqual(t, g.LastMove(), testutil.Squares(t, "e4", "d5"))
	testutil.AssertEqual(t, g.History()[2], want)
	testutil.AssertEqual(t, g.Position().HalfmoveClock, 0)
	testutil.AssertEqual(t, g.Position().MoveNumber, 2)
}

func TestDoubleStepSetsEnPassantTarget(t *testing.T) {
	t.Parallel()
	g := engine.NewGame()
	testutil.MustPlay(t, g, "e2e4")

	ep, ok := g.EnPassantTarget()
	testutil.AssertTrue(t, ok, "target after double step")
	testutil.AssertEqual(t, ep, chess.Sq(5, 4))

	testutil.MustPlay(t, g, "g8f6")
	_, ok = g.EnPassantTarget()
	testutil.AssertFalse(t, ok, "target cleared after one ply")
}

func TestEnPassant(t *testing.T) {
	t.Parallel()
	const fen = "4k3/8/8/8/3p4/8/4P3/4K3 w - - 0 1"

	t.Run("capture on the next ply", func(t *testing.T) {
		g := testutil.MustNewGame(t, fen)
		testutil.MustPlay(t, g, "e2e4")

		testutil.AssertSameSquares(t, g.LegalMovesFrom(testutil.Sq(t, "d4")), testutil.Squares(t, "d3", "e3"))

		move, err := g.ApplyMoveText("d4e3")
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, move.IsEnPassant)
		testutil.AssertEqual(t, move.EnPassantCaptured, testutil.Sq(t, "e4"))
		testutil.AssertEqual(t, move.Captured, chess.W(chess.Pawn))

		board := g.Board()
		testutil.AssertTrue(t, board.IsEmpty(testutil.Sq(t, "e4")), "captured pawn removed")
		testutil.AssertEqual(t, board.Get(testutil.Sq(t, "e3")), chess.B(chess.Pawn))
		testutil.AssertEqual(t, move.String(), "d4xe3 e.p.")
	})

	t.Run("window closes after one ply", func(t *testing.T) {
		g := testutil.MustNewGame(t, fen)
		testutil.MustPlay(t, g, "e2e4", "e8d8", "e1d1")

		_, err := g.ApplyMoveText("d4e3")
		testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
	})

	t.Run("capture that exposes the king", func(t *testing.T) {
		g := testutil.MustNewGame(t, "8/8/8/KPp4r/8/8/8/7k w - c6 0 1")
		testutil.AssertSameSquares(t, g.LegalMovesFrom(testutil.Sq(t, "b5")), testutil.Squares(t, "b6"))

		_, err := g.ApplyMoveText("b5c6")
		testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
	})
}

func TestCastling(t *testing.T) {
	t.Parallel()
	const open = "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"

	t.Run("kingside moves the rook", func(t *testing.T) {
		g := testutil.MustNewGame(t, open)
		testutil.AssertTrue(t, g.CanCastle(chess.Kingside))

		move, err := g.ApplyMoveText("e1g1")
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, move.Castle, chess.Kingside)
		testutil.AssertEqual(t, move.String(), "O-O")

		board := g.Board()
		testutil.AssertEqual(t, board.Get(testutil.Sq(t, "g1")), chess.W(chess.King))
		testutil.AssertEqual(t, board.Get(testutil.Sq(t, "f1")), chess.W(chess.Rook))
		testutil.AssertTrue(t, board.IsEmpty(testutil.Sq(t, "h1")))
		testutil.AssertEqual(t, g.LastMove(), testutil.Squares(t, "e1", "g1", "h1", "f1"))

		rights := g.CastlingRights()
		testutil.AssertFalse(t, rights.Has(chess.White, chess.Kingside))
		testutil.AssertFalse(t, rights.Has(chess.White, chess.Queenside))
		testutil.AssertTrue(t, rights.Has(chess.Black, chess.Kingside))
	})

	t.Run("queenside moves the rook", func(t *testing.T) {
		g := testutil.MustNewGame(t, open)
		testutil.MustPlay(t, g, "e1c1")

		board := g.Board()
		testutil.AssertEqual(t, board.Get(testutil.Sq(t, "c1")), chess.W(chess.King))
		testutil.AssertEqual(t, board.Get(testutil.Sq(t, "d1")), chess.W(chess.Rook))
		testutil.AssertTrue(t, board.IsEmpty(testutil.Sq(t, "a1")))
	})

	t.Run("rights never come back", func(t *testing.T) {
		g := testutil.MustNewGame(t, open)
		testutil.MustPlay(t, g, "h1h2", "a8a7", "h2h1", "a7a8")

		testutil.AssertFalse(t, g.CanCastle(chess.Kingside))
		testutil.AssertTrue(t, g.CanCastle(chess.Queenside))

		_, err := g.ApplyMoveText("e1g1")
		testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)

		rights := g.CastlingRights()
		testutil.AssertFalse(t, rights.Has(chess.Black, chess.Queenside))
		testutil.AssertTrue(t, rights.Has(chess.Black, chess.Kingside))
	})

	t.Run("capturing a rook clears its right", func(t *testing.T) {
		g := testutil.MustNewGame(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		testutil.MustPlay(t, g, "a1a8")

		rights := g.CastlingRights()
		testutil.AssertFalse(t, rights.Has(chess.Black, chess.Queenside))
		testutil.AssertFalse(t, rights.Has(chess.White, chess.Queenside))
		testutil.AssertTrue(t, rights.Has(chess.White, chess.Kingside))
	})

	tests := []struct {
		name          string
		fen           string
		wantKingside  bool
		wantQueenside bool
	}{
		{"both open", open, true, true},
		{"king in check", "r3k2r/8/8/4r3/8/8/8/R3K2R w KQkq - 0 1", false, false},
		{"passes attacked square", "r3k2r/8/8/8/8/5r2/8/R3K2R w KQkq - 0 1", false, true},
		{"lands on attacked square", "r3k2r/8/8/8/8/6r1/8/R3K2R w KQkq - 0 1", false, true},
		{"rook path attacked only", "r3k2r/8/8/8/8/1r6/8/R3K2R w KQkq - 0 1", true, true},
		{"path blocked", "r3k2r/8/8/8/8/8/8/RN2K1NR w KQkq - 0 1", false, false},
		{"rook missing", "r3k2r/8/8/8/8/8/8/4K2R w KQkq - 0 1", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.MustNewGame(t, tt.fen)
			testutil.AssertEqual(t, g.CanCastle(chess.Kingside), tt.wantKingside, "kingside")
			testutil.AssertEqual(t, g.CanCastle(chess.Queenside), tt.wantQueenside, "queenside")

			_, err := g.ApplyMoveText("e1g1")
			testutil.AssertEqual(t, err == nil, tt.wantKingside, "e1g1 accepted")
		})
	}
}

func TestPromotion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		fen   string
		move  string
		to    string
		piece chess.Piece
	}{
		{"white on rank 8", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8", "a8", chess.W(chess.Queen)},
		{"black on rank 1", "4k3/8/8/8/8/8/p7/4K3 b - - 0 1", "a2a1", "a1", chess.B(chess.Queen)},
		{"promotion by capture", "1n2k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7b8", "b8", chess.W(chess.Queen)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.MustNewGame(t, tt.fen)
			move, err := g.ApplyMoveText(tt.move)
			testutil.AssertNoError(t, err)
			testutil.AssertTrue(t, move.Promoted)

			board := g.Board()
			testutil.AssertEqual(t, board.Get(testutil.Sq(t, tt.to)), tt.piece)
		})
	}

	g := testutil.MustNewGame(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	testutil.MustPlay(t, g, "a7a8q")
	testutil.AssertEqual(t, g.Status(), chess.Check)
}

func TestGameStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		fen   string
		moves []string
		want  chess.GameStatus
	}{
		{"start", "", nil, chess.Playing},
		{"fool's mate", "", []string{"f2f3", "e7e5", "g2g4", "d8h4"}, chess.Checkmate},
		{"scholar's mate", "", []string{"e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7"}, chess.Checkmate},
		{"check", "", []string{"e2e4", "f7f6", "d1h5"}, chess.Check},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", nil, chess.Stalemate},
		{"stalemate by move", "7k/8/6K1/8/8/8/8/5Q2 w - - 0 1", []string{"f1f7"}, chess.Stalemate},
		{"back rank mate", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", []string{"a1a8"}, chess.Checkmate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.MustNewGame(t, tt.fen)
			testutil.MustPlay(t, g, tt.moves...)
			testutil.AssertEqual(t, g.Status(), tt.want)
			testutil.AssertEqual(t, g.IsInCheck(g.SideToMove()), tt.want == chess.Check || tt.want == chess.Checkmate)
		})
	}
}

func TestTerminalGameRefusesChanges(t *testing.T) {
	t.Parallel()
	g := engine.NewGame()
	testutil.MustPlay(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	_, err := g.ApplyMoveText("e1f2")
	testutil.AssertErrorIs(t, err, errors.ErrGameOver)

	_, err = g.Undo()
	testutil.AssertErrorIs(t, err, errors.ErrGameOver)
	testutil.AssertEqual(t, g.Ply(), 4)

	testutil.AssertTrue(t, len(g.LegalMovesFrom(testutil.Sq(t, "e1"))) == 0)
	testutil.AssertFalse(t, g.CanCastle(chess.Kingside))

	g.Reset()
	testutil.AssertEqual(t, g.Status(), chess.Playing)
	testutil.AssertEqual(t, g.FEN(), engine.InitialFEN)
}

func TestUndo(t *testing.T) {
	t.Parallel()

	t.Run("empty history", func(t *testing.T) {
		g := engine.NewGame()
		_, err := g.Undo()
		testutil.AssertErrorIs(t, err, errors.ErrNoHistory)
	})

	t.Run("restores en passant target", func(t *testing.T) {
		g := engine.NewGame()
		testutil.MustPlay(t, g, "e2e4")
		before := g.Position()
		beforeLast := g.LastMove()

		testutil.MustPlay(t, g, "d7d5")
		move, err := g.Undo()
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, move.UCI(), "d7d5")
		testutil.AssertEqual(t, g.Position(), before)
		testutil.AssertEqual(t, g.LastMove(), beforeLast)
	})

	t.Run("restores castling rights", func(t *testing.T) {
		g := testutil.MustNewGame(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		before := g.Position()

		testutil.MustPlay(t, g, "e1g1")
		_, err := g.Undo()
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, g.Position(), before)
		testutil.AssertTrue(t, g.CanCastle(chess.Kingside))
	})

	t.Run("restores en passant capture", func(t *testing.T) {
		g := testutil.MustNewGame(t, "4k3/8/8/8/3p4/8/4P3/4K3 w - - 0 1")
		testutil.MustPlay(t, g, "e2e4")
		before := g.Position()

		testutil.MustPlay(t, g, "d4e3")
		_, err := g.Undo()
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, g.Position(), before)
	})

	t.Run("back to the start", func(t *testing.T) {
		g := engine.NewGame()
		testutil.MustPlay(t, g, "e2e4", "e7e5", "g1f3", "b8c6")
		for i := 0; i < 4; i++ {
			_, err := g.Undo()
			testutil.AssertNoError(t, err)
		}
		testutil.AssertEqual(t, g.FEN(), engine.InitialFEN)
		testutil.AssertEqual(t, g.Ply(), 0)

		_, err := g.Undo()
		testutil.AssertErrorIs(t, err, errors.ErrNoHistory)
	})
}

func TestDeterminism(t *testing.T) {
	t.Parallel()
	moves := []string{"e2e4", "c7c5", "g1f3", "d7d6", "d2d4", "c5d4", "f3d4", "g8f6", "b1c3", "a7a6"}

	a := engine.NewGame()
	b := engine.NewGame()
	testutil.MustPlay(t, a, moves...)
	testutil.MustPlay(t, b, moves...)

	if diff := cmp.Diff(a.Position(), b.Position()); diff != "" {
		t.Errorf("positions differ (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(a.History(), b.History()); diff != "" {
		t.Errorf("histories differ (-a +b):\n%s", diff)
	}
	testutil.AssertEqual(t, a.Status(), b.Status())
}

// An attempted move succeeds exactly when it is listed by LegalMovesFrom.
func TestLegalityClosure(t *testing.T) {
	t.Parallel()
	fens := []string{
		engine.InitialFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/8/8/KPp4r/8/8/8/7k w - c6 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			probe := testutil.MustNewGame(t, fen)
			for from := 0; from < 64; from++ {
				fromSq := chess.Sq(from/8, from%8)
				legal := make(map[chess.Square]bool)
				for _, to := range probe.LegalMovesFrom(fromSq) {
					legal[to] = true
				}
				for to := 0; to < 64; to++ {
					toSq := chess.Sq(to/8, to%8)
					g := testutil.MustNewGame(t, fen)
					_, err := g.ApplyMove(fromSq, toSq)
					if (err == nil) != legal[toSq] {
						t.Errorf("%s%s: ApplyMove err = %v, listed legal = %v", fromSq, toSq, err, legal[toSq])
					}
					if err == nil && g.IsInCheck(probe.SideToMove()) {
						t.Errorf("%s%s: mover left in check", fromSq, toSq)
					}
				}
			}
		})
	}
}

func TestWithLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	g := engine.NewGame(engine.WithLogger(logger))
	testutil.MustPlay(t, g, "e2e4")
	_, _ = g.ApplyMoveText("e7e4")

	out := buf.String()
	testutil.AssertTrue(t, strings.Contains(out, `"message":"move applied"`), out)
	testutil.AssertTrue(t, strings.Contains(out, `"message":"move rejected"`), out)
}

package hashing

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// Zobrist keys, generated from a fixed seed so hashes are stable across runs.
var (
	zobristPiece      [2][chess.NumPieceKinds][64]uint64
	zobristEnPassant  [8]uint64 // One per file
	zobristCastling   [16]uint64
	zobristSideToMove uint64 // XOR when Black is to move
)

func init() {
	initZobrist()
}

// prng is a xorshift64* generator.
type prng struct {
	state uint64
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := &prng{state: 0x98F107A2BEEF1234}

	for c := chess.White; c <= chess.Black; c++ {
		for kind := chess.Pawn; kind <= chess.King; kind++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][kind][sq] = rng.next()
			}
		}
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// castlingIndex packs the four castling flags into a 4-bit index.
func castlingIndex(rights chess.CastlingRights) int {
	idx := 0
	if rights.Has(chess.White, chess.Kingside) {
		idx |= 1
	}
	if rights.Has(chess.White, chess.Queenside) {
		idx |= 2
	}
	if rights.Has(chess.Black, chess.Kingside) {
		idx |= 4
	}
	if rights.Has(chess.Black, chess.Queenside) {
		idx |= 8
	}
	return idx
}

// Hash returns the Zobrist key of pos: the pieces, the side to move, the
// castling rights and the en passant file. Clocks are not hashed, so the
// same arrangement reached by different move orders hashes equal.
func Hash(pos *engine.Position) uint64 {
	var h uint64
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			piece := pos.Board.Get(chess.Sq(row, col))
			if piece.IsEmpty() {
				continue
			}
			h ^= zobristPiece[piece.Colour][piece.Kind][row*chess.BoardSize+col]
		}
	}
	h ^= zobristCastling[castlingIndex(pos.Castling)]
	if pos.HasEnPassant {
		h ^= zobristEnPassant[pos.EnPassant.Col]
	}
	if pos.ToMove == chess.Black {
		h ^= zobristSideToMove
	}
	return h
}

// HashGame returns the Zobrist key of the game's current position.
func HashGame(g *engine.Game) uint64 {
	pos := g.Position()
	return Hash(&pos)
}

package engine

// Perft counts the leaf nodes of the legal move tree of pos to the given
// depth. Promotions count once, since pawns only promote to a queen.
func Perft(pos Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	var nodes uint64
	for _, from := range pos.Board.Squares(pos.ToMove) {
		for _, to := range LegalMoves(&pos, from) {
			if depth == 1 {
				nodes++
				continue
			}
			child := pos
			applyMove(&child, from, to)
			nodes += Perft(child, depth-1)
		}
	}
	return nodes
}

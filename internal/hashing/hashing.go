// Package hashing provides Zobrist position keys, repetition counting and
// duplicate detection for replayed games.
package hashing

import (
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// RepetitionCounter counts how often each position occurs in one game.
// It is informational; the engine has no repetition draw.
type RepetitionCounter struct {
	seen map[uint64]int
	max  int
}

// NewRepetitionCounter creates an empty counter.
func NewRepetitionCounter() *RepetitionCounter {
	return &RepetitionCounter{seen: make(map[uint64]int)}
}

// Add records pos and returns how many times it has now occurred.
func (r *RepetitionCounter) Add(pos *engine.Position) int {
	h := Hash(pos)
	r.seen[h]++
	n := r.seen[h]
	if n > r.max {
		r.max = n
	}
	return n
}

// Count returns how many times pos has been recorded.
func (r *RepetitionCounter) Count(pos *engine.Position) int {
	return r.seen[Hash(pos)]
}

// MaxRepetitions returns the highest occurrence count of any position.
func (r *RepetitionCounter) MaxRepetitions() int {
	return r.max
}

// ReplayRepetitions replays g's history from its start and counts every
// position along the way, the start position included.
func ReplayRepetitions(g *engine.Game) (*RepetitionCounter, error) {
	counter := NewRepetitionCounter()
	replay, err := engine.NewGameFromFEN(g.StartFEN())
	if err != nil {
		return nil, err
	}

	pos := replay.Position()
	counter.Add(&pos)
	for _, move := range g.History() {
		if _, err := replay.ApplyMove(move.From, move.To); err != nil {
			return nil, err
		}
		pos = replay.Position()
		counter.Add(&pos)
	}
	return counter, nil
}

// GameSignature identifies the final position of a replayed game.
type GameSignature struct {
	// Hash is the Zobrist key of the final position
	Hash uint64
	// Plies is the number of half-moves played
	Plies int
	// Index is the input position of the game that first produced it
	Index int
}

// DuplicateDetector finds games that end in a position already seen.
type DuplicateDetector struct {
	// hashTable stores seen signatures by hash
	hashTable map[uint64][]GameSignature
	// matchPlies also requires the same number of half-moves
	matchPlies bool
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// NewDuplicateDetector creates a new duplicate detector.
func NewDuplicateDetector(matchPlies bool) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:  make(map[uint64][]GameSignature),
		matchPlies: matchPlies,
	}
}

// CheckAndAdd checks whether sig duplicates an earlier game and records it.
// On a duplicate it returns the first matching signature and true.
func (d *DuplicateDetector) CheckAndAdd(sig GameSignature) (GameSignature, bool) {
	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return existing, true
		}
	}

	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	return GameSignature{}, false
}

// signaturesMatch checks if two game signatures match.
func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash {
		return false
	}
	if d.matchPlies && a.Plies != b.Plies {
		return false
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of distinct final positions.
func (d *DuplicateDetector) UniqueCount() int {
	count := 0
	for _, sigs := range d.hashTable {
		count += len(sigs)
	}
	return count
}

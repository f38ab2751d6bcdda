// Package hashing provides position hashing and duplicate position detection.
package hashing

import "github.com/lgbarn/chessrules-go/internal/chess"

// DuplicateDetector tracks seen positions. It is not safe for concurrent use.
type DuplicateDetector struct {
	// hashTable stores seen signatures by Zobrist hash
	hashTable map[uint64][]PositionSignature
	// useExactMatch also requires the same ply count
	useExactMatch bool
	// maxCapacity bounds the stored signatures; 0 means unlimited
	maxCapacity int
	stored      int
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// PositionSignature identifies a position.
type PositionSignature struct {
	// Hash is the Zobrist hash of the position
	Hash uint64
	// Plies is the number of moves played to reach it
	Plies int
	// WeakHash is a fast checksum for confirmation
	WeakHash uint32
}

// NewDuplicateDetector creates a new duplicate detector. A maxCapacity of 0
// means unlimited.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]PositionSignature),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// Signature builds the signature of a position.
func Signature(board *chess.Board, turn chess.Colour, plies int) PositionSignature {
	return PositionSignature{
		Hash:     ZobristHash(board, turn),
		Plies:    plies,
		WeakHash: WeakHash(board),
	}
}

// CheckAndAdd reports whether the position has been seen before and records
// it if not. Once the detector is full new positions are checked but not
// stored.
func (d *DuplicateDetector) CheckAndAdd(board *chess.Board, turn chess.Colour, plies int) bool {
	if board == nil {
		return false
	}
	sig := Signature(board, turn, plies)

	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return true
		}
	}

	if d.IsFull() {
		return false
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	d.stored++
	return false
}

// signaturesMatch checks if two signatures match.
func (d *DuplicateDetector) signaturesMatch(a, b PositionSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	if d.useExactMatch && a.Plies != b.Plies {
		return false
	}
	return true
}

// IsFull reports whether the capacity limit has been reached.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.stored >= d.maxCapacity
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of positions stored.
func (d *DuplicateDetector) UniqueCount() int {
	return d.stored
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]PositionSignature)
	d.stored = 0
	d.duplicateCount = 0
}

package hashing

import (
	"math/rand"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Zobrist keys per colour, kind and square, plus the Black-to-move key.
var (
	zobristPiece [chess.NumColours][chess.King + 1][chess.NumSquares]uint64
	zobristSide  uint64
)

func init() {
	// Fixed seed so hashes are stable between runs.
	rnd := rand.New(rand.NewSource(0xC0DE))
	for c := range zobristPiece {
		for k := range zobristPiece[c] {
			for sq := range zobristPiece[c][k] {
				zobristPiece[c][k][sq] = rnd.Uint64()
			}
		}
	}
	zobristSide = rnd.Uint64()
}

// ZobristHash hashes the piece placement and side to move.
func ZobristHash(board *chess.Board, turn chess.Colour) uint64 {
	var key uint64
	for c := chess.Colour(0); c < chess.NumColours; c++ {
		for _, id := range board.Active(c) {
			p := board.Piece(id)
			key ^= zobristPiece[p.Colour][p.Kind][p.Square]
		}
	}
	if turn == chess.Black {
		key ^= zobristSide
	}
	return key
}

// WeakHash is a cheap placement checksum used to confirm a Zobrist match.
func WeakHash(board *chess.Board) uint32 {
	var sum uint32
	for c := chess.Colour(0); c < chess.NumColours; c++ {
		for _, id := range board.Active(c) {
			p := board.Piece(id)
			code := uint32(p.Kind) + uint32(p.Colour)*8
			sum += code * uint32(p.Square+1)
		}
	}
	return sum
}

package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Squares builds a square set from algebraic names. It panics on a bad name.
func Squares(names ...string) chess.SquareSet {
	var set chess.SquareSet
	for _, name := range names {
		set = set.Add(chess.MustSquare(name))
	}
	return set
}

// AssertSquares fails unless got holds exactly the named squares.
func AssertSquares(t *testing.T, got chess.SquareSet, want ...string) {
	t.Helper()
	if w := Squares(want...); got != w {
		t.Errorf("squares = %v, want %v", got, w)
	}
}

// AssertSameBoard fails if the two snapshots differ.
func AssertSameBoard(t *testing.T, got, want chess.Snapshot) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("board changed (-want +got):\n%s", diff)
	}
}

// PieceOn returns the piece on the named square, failing the test if the
// square is empty.
func PieceOn(t *testing.T, board *chess.Board, name string) chess.PieceID {
	t.Helper()
	id := board.PieceAt(chess.MustSquare(name))
	if id == chess.NoPiece {
		t.Fatalf("no piece on %s", name)
	}
	return id
}

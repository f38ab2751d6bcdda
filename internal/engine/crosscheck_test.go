package engine

import (
	"testing"

	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessrules-go/internal/reference"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// Positions where the kings are far apart and no castling, en passant,
// promotion or double step over a blocker is legal, so both move generators
// agree on the rules.
var crossCheckFENs = map[string]string{
	"initial":             InitialFEN,
	"open game":           "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b - - 1 2",
	"fool's mate":         foolsMateFEN,
	"scholar's mate":      scholarsMateFEN,
	"unprotected queen":   unprotectedQueenFEN,
	"file check":          fileCheckFEN,
	"double check":        doubleCheckFEN,
	"pinned bishop":       pinnedFEN,
	"back rank mate":      "3R2k1/5ppp/8/8/8/8/8/6K1 b - - 0 1",
	"back rank with luft": "3R2k1/5pp1/7p/8/8/8/8/6K1 b - - 0 1",
}

func TestCrossCheckWithReference(t *testing.T) {
	for name, fen := range crossCheckFENs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			g, err := NewGameFromFEN(fen)
			if err != nil {
				t.Fatalf("NewGameFromFEN() error: %v", err)
			}
			want, err := reference.Analyse(g.FEN())
			if err != nil {
				t.Fatalf("reference.Analyse() error: %v", err)
			}

			turn := g.CurrentTurn()
			testutil.AssertEqual(t, g.IsInCheck(turn), want.InCheck, "in check")
			testutil.AssertEqual(t, g.IsCheckmated(turn), want.Checkmated, "checkmated")

			for _, id := range g.Board().Active(turn) {
				from := g.Board().Piece(id).Square.String()
				var got []string
				for _, sq := range g.MovesFor(id).Squares() {
					got = append(got, sq.String())
				}
				slices.Sort(got)
				testutil.AssertEqual(t, got, want.Destinations(from), "moves from %s", from)
			}
		})
	}
}

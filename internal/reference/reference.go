// Package reference evaluates positions with the dragontoothmg bitboard move
// generator. It gives an independent verdict on check and mate that reports
// and tests compare the rules engine against.
package reference

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Verdict is the reference view of the side to move.
type Verdict struct {
	InCheck    bool     `json:"inCheck"`
	Checkmated bool     `json:"checkmated"`
	Stalemated bool     `json:"stalemated"`
	Moves      []string `json:"moves,omitempty"`
}

// Analyse parses a full six-field FEN and classifies the side to move.
// Moves are in coordinate notation and sorted.
func Analyse(fen string) (v Verdict, err error) {
	if len(strings.Fields(fen)) != 6 {
		return Verdict{}, fmt.Errorf("reference needs six FEN fields: %q: %w", fen, errors.ErrInvalidFEN)
	}
	// ParseFen panics on malformed input.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%q: %v: %w", fen, r, errors.ErrInvalidFEN)
		}
	}()

	board := dragontoothmg.ParseFen(fen)
	legal := board.GenerateLegalMoves()

	v.InCheck = board.OurKingInCheck()
	v.Checkmated = v.InCheck && len(legal) == 0
	v.Stalemated = !v.InCheck && len(legal) == 0
	for _, m := range legal {
		v.Moves = append(v.Moves, m.String())
	}
	slices.Sort(v.Moves)
	return v, nil
}

// Destinations returns the distinct destination squares of the moves that
// start on from. Promotions to different pieces collapse to one square.
func (v Verdict) Destinations(from string) []string {
	var dests []string
	for _, m := range v.Moves {
		if len(m) >= 4 && m[:2] == from {
			dests = append(dests, m[2:4])
		}
	}
	slices.Sort(dests)
	return slices.Compact(dests)
}

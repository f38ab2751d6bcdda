// Package output formats position reports as text boards or JSON.
package output

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/hashing"
	"github.com/lgbarn/chessrules-go/internal/reference"
)

// PositionReport describes the position a game has reached.
type PositionReport struct {
	Index      int    `json:"index"`
	FEN        string `json:"fen"`
	Turn       string `json:"turn"`
	InCheck    bool   `json:"inCheck"`
	Checkmated bool   `json:"checkmated"`
	Winner     string `json:"winner,omitempty"`

	// Hash is the Zobrist hash of the placement and side to move, in hex.
	Hash string `json:"hash"`

	// Duplicate marks a position already reported earlier in a batch.
	Duplicate bool `json:"duplicate,omitempty"`

	// History holds the moves played to reach the position.
	History []string `json:"history,omitempty"`

	// Allowable lists the cells that resolve a check. It is omitted when the
	// side to move is not in check, since every cell is then allowable.
	Allowable []string `json:"allowable,omitempty"`

	// Legal maps each piece's square to its fully legal destinations.
	Legal map[string][]string `json:"legal,omitempty"`

	Reference *ReferenceCheck `json:"reference,omitempty"`
	Error     string          `json:"error,omitempty"`

	board     *chess.Board
	turn      chess.Colour
	highlight chess.SquareSet
}

// ReferenceCheck is the reference verdict and whether it matches the report.
type ReferenceCheck struct {
	reference.Verdict
	Agrees bool `json:"agrees"`
}

// NewPositionReport builds a report for the side to move. With listMoves set
// every piece's legal destinations are included.
func NewPositionReport(g *engine.Game, listMoves bool) *PositionReport {
	turn := g.SideToMove()
	r := &PositionReport{
		FEN:        g.FEN(),
		Turn:       turn.String(),
		InCheck:    g.IsInCheck(turn),
		Checkmated: g.IsCheckmated(turn),
		Hash:       fmt.Sprintf("%016x", hashing.ZobristHash(g.Board(), turn)),
		board:      g.Board(),
		turn:       turn,
	}
	if outcome, over := g.Outcome(); over {
		r.Winner = outcome.Winner.String()
	}
	for _, m := range g.History() {
		r.History = append(r.History, m.String())
	}

	allowable := g.AllowableSquares()
	if r.InCheck {
		r.Allowable = squareNames(allowable)
		r.highlight = allowable
	}

	if listMoves {
		for _, id := range g.Board().Active(turn) {
			moves := g.MovesFor(id)
			if moves.Empty() {
				continue
			}
			if r.Legal == nil {
				r.Legal = make(map[string][]string)
			}
			r.Legal[g.Board().Piece(id).Square.String()] = squareNames(moves)
		}
	}
	return r
}

// ErrorReport builds a report for a position that could not be analysed.
func ErrorReport(index int, fen string, err error) *PositionReport {
	return &PositionReport{Index: index, FEN: fen, Error: err.Error()}
}

// CheckReference analyses the report's position with the reference move
// generator and records whether both agree on check and checkmate.
func (r *PositionReport) CheckReference() error {
	v, err := reference.Analyse(r.FEN)
	if err != nil {
		return err
	}
	r.Reference = &ReferenceCheck{
		Verdict: v,
		Agrees:  v.InCheck == r.InCheck && v.Checkmated == r.Checkmated,
	}
	return nil
}

// Board returns the board the report was built from, or nil for an error
// report.
func (r *PositionReport) Board() *chess.Board {
	return r.board
}

// SideToMove returns the colour to move in the reported position.
func (r *PositionReport) SideToMove() chess.Colour {
	return r.turn
}

// Plies returns the number of moves played to reach the position.
func (r *PositionReport) Plies() int {
	return len(r.History)
}

// Highlight returns the cells to mark on a diagram.
func (r *PositionReport) Highlight() chess.SquareSet {
	return r.highlight
}

func squareNames(set chess.SquareSet) []string {
	squares := set.Squares()
	names := make([]string, len(squares))
	for i, sq := range squares {
		names[i] = sq.String()
	}
	return names
}

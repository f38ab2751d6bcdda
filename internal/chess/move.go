package chess

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Move records a move that was applied to a board.
type Move struct {
	From Square
	To   Square

	// The piece moved and the piece captured (NoKind if not a capture).
	Piece    Kind
	Captured Kind

	Colour Colour
}

// String returns the move in coordinate notation, e.g. "e2e4".
func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// IsCapture reports whether the move took a piece.
func (m Move) IsCapture() bool {
	return m.Captured != NoKind
}

// ParseCoordinateMove splits coordinate notation ("e2e4" or "e2-e4") into
// its two squares.
func ParseCoordinateMove(text string) (from, to Square, err error) {
	if len(text) == 5 && text[2] == '-' {
		text = text[:2] + text[3:]
	}
	if len(text) != 4 {
		return NoSquare, NoSquare, fmt.Errorf("move %q: %w", text, errors.ErrInvalidSquare)
	}
	if from, err = ParseSquare(text[:2]); err != nil {
		return NoSquare, NoSquare, err
	}
	if to, err = ParseSquare(text[2:]); err != nil {
		return NoSquare, NoSquare, err
	}
	return from, to, nil
}

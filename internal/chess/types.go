// Package chess provides the board, cell and piece types the rules engine works on.
package chess

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// NumColours is the number of sides.
const NumColours = 2

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Forward returns +1 for White, -1 for Black (pawn direction in ranks).
func (c Colour) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// Kind is the closed set of piece kinds.
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter converts a piece letter of either case to a kind.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	}
	return NoKind
}

// Board dimensions.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize
)

// Square is a cell index: rank*8 + file, with a1 = 0 and h8 = 63.
type Square int8

// NoSquare marks a piece that is not on the board.
const NoSquare Square = -1

// NewSquare returns the square at file, rank (both 0-7).
// ok is false when either coordinate is off the board.
func NewSquare(file, rank int) (Square, bool) {
	if file < 0 || file >= BoardSize || rank < 0 || rank >= BoardSize {
		return NoSquare, false
	}
	return Square(rank*BoardSize + file), true
}

// MustSquare parses a square name and panics on failure. Intended for
// literals in setup code and tests.
func MustSquare(name string) Square {
	sq, err := ParseSquare(name)
	if err != nil {
		panic(err)
	}
	return sq
}

// ParseSquare parses algebraic square names such as "e4".
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return NoSquare, fmt.Errorf("%q: %w", name, errors.ErrInvalidSquare)
	}
	file := int(name[0]) - 'a'
	rank := int(name[1]) - '1'
	sq, ok := NewSquare(file, rank)
	if !ok {
		return NoSquare, fmt.Errorf("%q: %w", name, errors.ErrInvalidSquare)
	}
	return sq, nil
}

// File returns the file index (0 = a).
func (s Square) File() int { return int(s) % BoardSize }

// Rank returns the rank index (0 = first rank).
func (s Square) Rank() int { return int(s) / BoardSize }

// Valid reports whether s is on the board.
func (s Square) Valid() bool { return s >= 0 && s < NumSquares }

// Offset returns the square df files and dr ranks away.
// ok is false when the result is off the board.
func (s Square) Offset(df, dr int) (Square, bool) {
	if !s.Valid() {
		return NoSquare, false
	}
	return NewSquare(s.File()+df, s.Rank()+dr)
}

// Light reports the fixed parity colour of the square.
func (s Square) Light() bool {
	return (s.File()+s.Rank())%2 == 1
}

// String returns the algebraic name of the square.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// SquareSet is a set of squares stored as a bitmask.
type SquareSet uint64

// AllSquares contains every square on the board.
const AllSquares SquareSet = ^SquareSet(0)

// NewSquareSet builds a set from the given squares.
func NewSquareSet(squares ...Square) SquareSet {
	var s SquareSet
	for _, sq := range squares {
		s = s.Add(sq)
	}
	return s
}

// Add returns s with sq included. Invalid squares are ignored.
func (s SquareSet) Add(sq Square) SquareSet {
	if !sq.Valid() {
		return s
	}
	return s | 1<<uint(sq)
}

// Has reports whether sq is in the set.
func (s SquareSet) Has(sq Square) bool {
	return sq.Valid() && s&(1<<uint(sq)) != 0
}

// Len returns the number of squares in the set.
func (s SquareSet) Len() int { return bits.OnesCount64(uint64(s)) }

// Empty reports whether the set has no squares.
func (s SquareSet) Empty() bool { return s == 0 }

// Squares returns the members in ascending order.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	for b := uint64(s); b != 0; b &= b - 1 {
		out = append(out, Square(bits.TrailingZeros64(b)))
	}
	return out
}

// String lists the members, e.g. "{a3 c3}".
func (s SquareSet) String() string {
	names := make([]string, 0, s.Len())
	for _, sq := range s.Squares() {
		names = append(names, sq.String())
	}
	return "{" + strings.Join(names, " ") + "}"
}

package chess

import (
	"golang.org/x/exp/slices"
)

// PieceID addresses a piece in the board's arena.
type PieceID int

// NoPiece marks an empty cell.
const NoPiece PieceID = -1

// Piece is a single chess piece. Its Square is a back-reference to the cell
// that holds it; the board owns placement.
type Piece struct {
	Colour Colour
	Kind   Kind
	Square Square

	// Moved is set once the piece has been moved; it gates the pawn double step.
	Moved bool
}

// OnBoard reports whether the piece still has a position.
func (p Piece) OnBoard() bool { return p.Square.Valid() }

// Cell is one of the 64 board cells.
type Cell struct {
	Square   Square
	Light    bool
	Occupant PieceID
}

// Occupied reports whether the cell holds a piece.
func (c Cell) Occupied() bool { return c.Occupant != NoPiece }

// Board is the authoritative 8x8 grid. Cells and pieces live in fixed arenas
// and refer to each other by index: a piece stores its Square, a cell stores
// its Occupant.
//
// A Board is not safe for concurrent use.
type Board struct {
	cells  [NumSquares]Cell
	pieces []Piece

	// Pieces of each colour that are still on the board.
	active [NumColours][]PieceID

	kings [NumColours]PieceID
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	b := &Board{
		kings: [NumColours]PieceID{NoPiece, NoPiece},
	}
	for i := range b.cells {
		sq := Square(i)
		b.cells[i] = Cell{Square: sq, Light: sq.Light(), Occupant: NoPiece}
	}
	return b
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *Board {
	b := NewBoard()
	b.SetupInitialPosition()
	return b
}

// SetupInitialPosition clears the board and sets up the standard chess
// starting position.
func (b *Board) SetupInitialPosition() {
	*b = *NewBoard()

	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < BoardSize; file++ {
		b.AddPiece(White, backRank[file], Square(file))
		b.AddPiece(White, Pawn, Square(BoardSize+file))
		b.AddPiece(Black, Pawn, Square(6*BoardSize+file))
		b.AddPiece(Black, backRank[file], Square(7*BoardSize+file))
	}
}

// AddPiece creates a piece and places it on sq. Any piece already on sq is
// taken off the board. Returns the new piece's id.
func (b *Board) AddPiece(colour Colour, kind Kind, sq Square) PieceID {
	id := PieceID(len(b.pieces))
	b.pieces = append(b.pieces, Piece{Colour: colour, Kind: kind, Square: NoSquare})
	b.active[colour] = append(b.active[colour], id)
	if kind == King {
		b.kings[colour] = id
	}
	if occupant := b.cells[sq].Occupant; occupant != NoPiece {
		b.remove(occupant)
	}
	b.Place(id, sq)
	return id
}

// Place puts a piece on sq unconditionally, updating both the cell's occupant
// and the piece's position. The piece's previous cell is cleared.
func (b *Board) Place(id PieceID, sq Square) {
	p := &b.pieces[id]
	if p.Square.Valid() && b.cells[p.Square].Occupant == id {
		b.cells[p.Square].Occupant = NoPiece
	}
	b.cells[sq].Occupant = id
	p.Square = sq
}

// Move relocates a piece to dest. A destination held by the same colour
// blocks the move and false is returned; an opposing occupant is captured.
func (b *Board) Move(id PieceID, dest Square) bool {
	if !dest.Valid() || !b.pieces[id].OnBoard() {
		return false
	}
	if occupant := b.cells[dest].Occupant; occupant != NoPiece {
		if b.pieces[occupant].Colour == b.pieces[id].Colour {
			return false
		}
		b.Capture(dest, id)
	}
	b.Place(id, dest)
	b.pieces[id].Moved = true
	return true
}

// Capture removes the piece occupying dest from its colour's active pieces
// and installs incoming on the cell.
func (b *Board) Capture(dest Square, incoming PieceID) {
	if occupant := b.cells[dest].Occupant; occupant != NoPiece {
		b.remove(occupant)
	}
	b.Place(incoming, dest)
}

// remove takes a piece off the board.
func (b *Board) remove(id PieceID) {
	p := &b.pieces[id]
	if p.Square.Valid() && b.cells[p.Square].Occupant == id {
		b.cells[p.Square].Occupant = NoPiece
	}
	p.Square = NoSquare
	if i := slices.Index(b.active[p.Colour], id); i >= 0 {
		b.active[p.Colour] = slices.Delete(b.active[p.Colour], i, i+1)
	}
}

// SetMoved sets the piece's moved flag. Position loaders use it for pawns
// found off their starting rank.
func (b *Board) SetMoved(id PieceID, moved bool) {
	b.pieces[id].Moved = moved
}

// Cell returns the cell at sq.
func (b *Board) Cell(sq Square) Cell {
	return b.cells[sq]
}

// Piece returns the piece with the given id.
func (b *Board) Piece(id PieceID) Piece {
	return b.pieces[id]
}

// PieceAt returns the id of the piece on sq, or NoPiece.
func (b *Board) PieceAt(sq Square) PieceID {
	if !sq.Valid() {
		return NoPiece
	}
	return b.cells[sq].Occupant
}

// Occupied reports whether sq holds a piece.
func (b *Board) Occupied(sq Square) bool {
	return b.PieceAt(sq) != NoPiece
}

// Active returns the ids of the colour's pieces still on the board.
// The returned slice must not be modified.
func (b *Board) Active(colour Colour) []PieceID {
	return b.active[colour]
}

// King returns the id of the colour's king, or NoPiece if none was placed.
func (b *Board) King(colour Colour) PieceID {
	return b.kings[colour]
}

// NumPieces returns the size of the piece arena, captured pieces included.
func (b *Board) NumPieces() int {
	return len(b.pieces)
}

// Grid returns the cells as an 8x8 array indexed [rank][file].
func (b *Board) Grid() [BoardSize][BoardSize]Cell {
	var grid [BoardSize][BoardSize]Cell
	for i, c := range b.cells {
		grid[i/BoardSize][i%BoardSize] = c
	}
	return grid
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{
		cells:  b.cells,
		pieces: slices.Clone(b.pieces),
		kings:  b.kings,
	}
	for c := range b.active {
		newBoard.active[c] = slices.Clone(b.active[c])
	}
	return newBoard
}

// Snapshot is a comparable capture of the observable board state.
type Snapshot struct {
	Cells  [NumSquares]Cell
	Pieces []Piece
	Active [NumColours][]PieceID
}

// Snapshot captures the current board state.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Cells:  b.cells,
		Pieces: slices.Clone(b.pieces),
		Active: [NumColours][]PieceID{slices.Clone(b.active[Black]), slices.Clone(b.active[White])},
	}
}

// Consistent reports whether every cell/piece back-reference agrees and
// each colour has exactly one king on the board.
func (b *Board) Consistent() bool {
	for i, c := range b.cells {
		if c.Occupant == NoPiece {
			continue
		}
		if b.pieces[c.Occupant].Square != Square(i) {
			return false
		}
	}
	for id, p := range b.pieces {
		if p.Square.Valid() && b.cells[p.Square].Occupant != PieceID(id) {
			return false
		}
	}
	for c := range b.kings {
		k := b.kings[c]
		if k == NoPiece || !b.pieces[k].OnBoard() {
			return false
		}
	}
	return true
}

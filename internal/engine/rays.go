package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

var diagonalDirs = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// linearReach is the furthest index a slider can reach along its file and
// rank before the first occupant in each direction. The occupant's own cell is
// included when it belongs to the opposing colour.
type linearReach struct {
	up, down    int // rank indices
	left, right int // file indices
}

// reach scans outward from the piece in the four orthogonal directions.
func reach(board *chess.Board, piece chess.Piece) linearReach {
	file, rank := piece.Square.File(), piece.Square.Rank()
	r := linearReach{up: chess.BoardSize - 1, down: 0, left: 0, right: chess.BoardSize - 1}

	stop := func(f, rk int) (int, bool) {
		sq, _ := chess.NewSquare(f, rk)
		occupant := board.PieceAt(sq)
		if occupant == chess.NoPiece {
			return 0, false
		}
		if board.Piece(occupant).Colour != piece.Colour {
			return 0, true
		}
		return 1, true
	}

	for rk := rank + 1; rk < chess.BoardSize; rk++ {
		if back, hit := stop(file, rk); hit {
			r.up = rk - back
			break
		}
	}
	for rk := rank - 1; rk >= 0; rk-- {
		if back, hit := stop(file, rk); hit {
			r.down = rk + back
			break
		}
	}
	for f := file - 1; f >= 0; f-- {
		if back, hit := stop(f, rank); hit {
			r.left = f + back
			break
		}
	}
	for f := file + 1; f < chess.BoardSize; f++ {
		if back, hit := stop(f, rank); hit {
			r.right = f - back
			break
		}
	}
	return r
}

// linearDestinations returns every cell on the piece's file and rank within
// its reach, excluding its own cell.
func linearDestinations(board *chess.Board, piece chess.Piece) chess.SquareSet {
	var moves chess.SquareSet
	file, rank := piece.Square.File(), piece.Square.Rank()
	r := reach(board, piece)

	for rk := r.down; rk <= r.up; rk++ {
		if rk != rank {
			sq, _ := chess.NewSquare(file, rk)
			moves = moves.Add(sq)
		}
	}
	for f := r.left; f <= r.right; f++ {
		if f != file {
			sq, _ := chess.NewSquare(f, rank)
			moves = moves.Add(sq)
		}
	}
	return moves
}

// diagonalDestinations slides along the four diagonals until blocked. A
// blocking opponent is included; a blocking own piece is not.
func diagonalDestinations(board *chess.Board, piece chess.Piece) chess.SquareSet {
	var moves chess.SquareSet
	for _, dir := range diagonalDirs {
		sq, ok := piece.Square.Offset(dir[0], dir[1])
		for ok {
			if occupant := board.PieceAt(sq); occupant != chess.NoPiece {
				if board.Piece(occupant).Colour != piece.Colour {
					moves = moves.Add(sq)
				}
				break
			}
			moves = moves.Add(sq)
			sq, ok = sq.Offset(dir[0], dir[1])
		}
	}
	return moves
}

// squaresBetween returns the cells strictly between two squares that share a
// file, a rank or a diagonal, walking both coordinates in lock-step. It
// returns nil for unaligned or adjacent squares.
func squaresBetween(from, to chess.Square) []chess.Square {
	df := to.File() - from.File()
	dr := to.Rank() - from.Rank()
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return nil
	}

	fileDir, rankDir := sign(df), sign(dr)
	var between []chess.Square
	sq, ok := from.Offset(fileDir, rankDir)
	for ok && sq != to {
		between = append(between, sq)
		sq, ok = sq.Offset(fileDir, rankDir)
	}
	return between
}

// sameLine reports whether two squares share a file or a rank.
func sameLine(a, b chess.Square) bool {
	return a.File() == b.File() || a.Rank() == b.Rank()
}

// sameDiagonal reports whether two distinct squares share a diagonal.
func sameDiagonal(a, b chess.Square) bool {
	df := abs(b.File() - a.File())
	return df != 0 && df == abs(b.Rank()-a.Rank())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// Package engine provides pseudo-legal move generation, check and checkmate
// detection, and the game facade that applies moves.
package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

var knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}

var kingOffsets = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

// LegalDestinations returns the pseudo-legal destinations of a piece: moves
// permitted by its movement pattern, ignoring whether they leave its own king
// in check. A piece that is no longer on the board has none.
func LegalDestinations(board *chess.Board, id chess.PieceID) chess.SquareSet {
	piece := board.Piece(id)
	if !piece.OnBoard() {
		return 0
	}

	switch piece.Kind {
	case chess.Pawn:
		return pawnDestinations(board, piece)
	case chess.Knight:
		return knightDestinations(piece)
	case chess.Bishop:
		return diagonalDestinations(board, piece)
	case chess.Rook:
		return linearDestinations(board, piece)
	case chess.Queen:
		return linearDestinations(board, piece) | diagonalDestinations(board, piece)
	case chess.King:
		return kingDestinations(board, piece)
	}
	return 0
}

// pawnStartRank returns the rank index pawns of the colour start on.
func pawnStartRank(colour chess.Colour) int {
	if colour == chess.White {
		return 1
	}
	return 6
}

func pawnDestinations(board *chess.Board, pawn chess.Piece) chess.SquareSet {
	var moves chess.SquareSet
	dir := pawn.Colour.Forward()

	// Forward one if empty. From the starting rank the double step needs only
	// its destination empty; a piece on the cell between is jumped.
	if one, ok := pawn.Square.Offset(0, dir); ok && !board.Occupied(one) {
		moves = moves.Add(one)
	}
	if !pawn.Moved && pawn.Square.Rank() == pawnStartRank(pawn.Colour) {
		if two, ok := pawn.Square.Offset(0, 2*dir); ok && !board.Occupied(two) {
			moves = moves.Add(two)
		}
	}

	// Diagonal captures only onto an opposing piece.
	for _, df := range [2]int{-1, 1} {
		target, ok := pawn.Square.Offset(df, dir)
		if !ok {
			continue
		}
		if occupant := board.PieceAt(target); occupant != chess.NoPiece &&
			board.Piece(occupant).Colour != pawn.Colour {
			moves = moves.Add(target)
		}
	}
	return moves
}

// knightDestinations includes every in-bounds offset whatever occupies it;
// own-colour cells are not filtered here.
func knightDestinations(knight chess.Piece) chess.SquareSet {
	var moves chess.SquareSet
	for _, off := range knightOffsets {
		if sq, ok := knight.Square.Offset(off[0], off[1]); ok {
			moves = moves.Add(sq)
		}
	}
	return moves
}

// kingDestinations returns the adjacent cells not held by the king's own
// colour. Attacked cells are left for the detector to reject.
func kingDestinations(board *chess.Board, king chess.Piece) chess.SquareSet {
	var moves chess.SquareSet
	for _, off := range kingOffsets {
		sq, ok := king.Square.Offset(off[0], off[1])
		if !ok {
			continue
		}
		if occupant := board.PieceAt(sq); occupant != chess.NoPiece &&
			board.Piece(occupant).Colour == king.Colour {
			continue
		}
		moves = moves.Add(sq)
	}
	return moves
}

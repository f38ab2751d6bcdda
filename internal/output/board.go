package output

import (
	"io"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

const boardFrame = "  +-----------------+\n"

// BoardString draws the board with White at the bottom. Empty cells are '.',
// highlighted empty cells '*'.
func BoardString(board *chess.Board, highlight chess.SquareSet) string {
	var sb strings.Builder
	sb.WriteString(boardFrame)

	grid := board.Grid()
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteString(" |")
		for file, cell := range grid[rank] {
			sb.WriteByte(' ')
			switch {
			case cell.Occupied():
				sb.WriteByte(engine.PieceLetter(board.Piece(cell.Occupant)))
			case highlight.Has(chess.Square(rank*chess.BoardSize + file)):
				sb.WriteByte('*')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteString(" |\n")
	}

	sb.WriteString(boardFrame)
	sb.WriteString("    a b c d e f g h\n")
	return sb.String()
}

// WriteBoard writes BoardString to w.
func WriteBoard(w io.Writer, board *chess.Board, highlight chess.SquareSet) error {
	_, err := io.WriteString(w, BoardString(board, highlight))
	return err
}

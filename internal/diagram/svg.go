// Package diagram renders board positions as SVG and PNG images.
package diagram

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Board colours.
const (
	LightSquare = "#ddc07f"
	DarkSquare  = "#654321"
	Highlighted = "#4a90d9"
)

// Options control how a diagram is drawn.
type Options struct {
	// Size is the edge length of the board in pixels.
	Size int

	// Highlight is drawn as a translucent overlay.
	Highlight chess.SquareSet

	// Flip puts Black at the bottom.
	Flip bool
}

// cellOrigin returns the top-left pixel of a square's cell.
func (o Options) cellOrigin(sq chess.Square, cell int) (x, y int) {
	file, rank := sq.File(), sq.Rank()
	if o.Flip {
		file = chess.BoardSize - 1 - file
	} else {
		rank = chess.BoardSize - 1 - rank
	}
	return file * cell, rank * cell
}

// WriteSVG draws the board: the squares, the highlight overlay and a disc
// with its letter for each piece.
func WriteSVG(w io.Writer, board *chess.Board, opts Options) error {
	if opts.Size < chess.BoardSize {
		return fmt.Errorf("diagram size %d too small", opts.Size)
	}
	cell := opts.Size / chess.BoardSize
	size := cell * chess.BoardSize

	canvas := svg.New(w)
	canvas.Start(size, size, fmt.Sprintf(`viewBox="0 0 %d %d"`, size, size))

	canvas.Gid("squares")
	for i := 0; i < chess.NumSquares; i++ {
		sq := chess.Square(i)
		x, y := opts.cellOrigin(sq, cell)
		fill := DarkSquare
		if board.Cell(sq).Light {
			fill = LightSquare
		}
		canvas.Rect(x, y, cell, cell, "fill:"+fill)
	}
	canvas.Gend()

	if !opts.Highlight.Empty() {
		canvas.Gid("highlight")
		for _, sq := range opts.Highlight.Squares() {
			x, y := opts.cellOrigin(sq, cell)
			canvas.Rect(x, y, cell, cell, "fill:"+Highlighted+";fill-opacity:0.5")
		}
		canvas.Gend()
	}

	canvas.Gid("pieces")
	radius := cell * 3 / 8
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for _, id := range board.Active(colour) {
			drawPiece(canvas, board.Piece(id), opts, cell, radius)
		}
	}
	canvas.Gend()

	canvas.End()
	return nil
}

func drawPiece(canvas *svg.SVG, p chess.Piece, opts Options, cell, radius int) {
	fill, ink := "#ffffff", "#000000"
	if p.Colour == chess.Black {
		fill, ink = "#000000", "#ffffff"
	}

	x, y := opts.cellOrigin(p.Square, cell)
	cx, cy := x+cell/2, y+cell/2
	canvas.Circle(cx, cy, radius, fmt.Sprintf("fill:%s;stroke:#333333;stroke-width:%d", fill, max(1, cell/32)))
	canvas.Text(cx, cy+cell/8, string(p.Kind.Letter()),
		fmt.Sprintf("fill:%s;font-family:sans-serif;font-weight:bold;font-size:%dpx;text-anchor:middle", ink, cell*3/8))
}

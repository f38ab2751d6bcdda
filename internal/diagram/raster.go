package diagram

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// renderScale is the supersampling factor; the board is rasterized at this
// multiple of the requested size and scaled down.
const renderScale = 3

// Render rasterizes the board to an image of opts.Size pixels square.
// Piece letters are SVG text, which the rasterizer skips, so pieces appear
// as discs.
func Render(board *chess.Board, opts Options) (*image.RGBA, error) {
	large := opts
	large.Size = opts.Size * renderScale

	var buf bytes.Buffer
	if err := WriteSVG(&buf, board, large); err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(&buf, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse diagram: %w", err)
	}

	renderSize := large.Size / chess.BoardSize * chess.BoardSize
	icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

	rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
	scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(renderSize, renderSize, scanner)
	icon.Draw(raster, 1.0)

	out := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	draw.CatmullRom.Scale(out, out.Bounds(), rgba, rgba.Bounds(), draw.Src, nil)
	return out, nil
}

// WritePNG renders the board and encodes it as PNG.
func WritePNG(w io.Writer, board *chess.Board, opts Options) error {
	img, err := Render(board, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

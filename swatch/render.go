package swatch

import (
	"fmt"
	"image"

	"coltab/palette"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// maxIndexed is the largest palette the indexed encoders accept.
const maxIndexed = 256

// Render lays the table out as a grid of square cells, row by row. Cells past
// the last color repeat color 0. Tables of up to 256 colors come back as an
// *image.Paletted using the table's own palette.
func Render(t *palette.Table, cell, columns int) (image.Image, error) {
	n := t.Count()
	switch {
	case n == 0:
		return nil, fmt.Errorf("palette has no colors")
	case cell < 1:
		return nil, fmt.Errorf("invalid cell size: %d", cell)
	case columns < 1:
		return nil, fmt.Errorf("invalid number of columns: %d", columns)
	}

	cols := min(columns, n)
	rows := (n + cols - 1) / cols
	colours := t.Colours()

	canvas := imaging.New(cols*cell, rows*cell, colours[0])
	for i, c := range colours {
		x, y := (i%cols)*cell, (i/cols)*cell
		draw.Draw(canvas, image.Rect(x, y, x+cell, y+cell), image.NewUniform(c), image.Point{}, draw.Src)
	}

	if n > maxIndexed {
		return canvas, nil
	}

	bounds := canvas.Bounds()
	dest := image.NewPaletted(bounds, t.Palette())
	draw.Draw(dest, bounds, canvas, bounds.Min, draw.Src)
	return dest, nil
}

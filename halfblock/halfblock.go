// Package halfblock converts RGB24 pixel buffers into terminal Cell grids
// using the Unicode lower-half-block trick: each cell carries two
// vertically-stacked pixels, per spec §4.4.
package halfblock

import "github.com/romanslack/rsfx/format"

// PixelsToCells converts an RGB24 buffer (row-major, stride width*3) into a
// Cell grid of width * (height/2) cells. height must be even; the caller is
// responsible for ensuring that (the resizer always produces even heights
// since it targets rows*2).
func PixelsToCells(rgb []byte, width, height int) []format.Cell {
	cols := width
	rows := height / 2
	stride := cols * 3
	cells := make([]format.Cell, 0, cols*rows)

	for row := 0; row < rows; row++ {
		topY := row * 2
		botY := topY + 1

		for col := 0; col < cols; col++ {
			topOff := topY*stride + col*3
			botOff := botY*stride + col*3

			cells = append(cells, format.Cell{
				BgR: rgb[topOff], BgG: rgb[topOff+1], BgB: rgb[topOff+2],
				FgR: rgb[botOff], FgG: rgb[botOff+1], FgB: rgb[botOff+2],
			})
		}
	}

	return cells
}

package halfblock_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/romanslack/rsfx/format"
	"github.com/romanslack/rsfx/halfblock"
)

// TestPixelsToCells2x2 implements spec §8 scenario 4 verbatim.
func TestPixelsToCells2x2(t *testing.T) {
	rgb := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	cells := halfblock.PixelsToCells(rgb, 2, 2)

	require.Equal(t, []format.Cell{
		{BgR: 1, BgG: 2, BgB: 3, FgR: 7, FgG: 8, FgB: 9},
		{BgR: 4, BgG: 5, BgB: 6, FgR: 10, FgG: 11, FgB: 12},
	}, cells)
}

func TestPixelsToCellsReversibility(t *testing.T) {
	const width, height = 6, 8
	rgb := make([]byte, width*height*3)
	for i := range rgb {
		rgb[i] = byte(i)
	}

	cells := halfblock.PixelsToCells(rgb, width, height)
	require.Len(t, cells, width*(height/2))

	pixel := func(col, y int) (uint8, uint8, uint8) {
		off := y*width*3 + col*3
		return rgb[off], rgb[off+1], rgb[off+2]
	}

	for row := 0; row < height/2; row++ {
		for col := 0; col < width; col++ {
			c := cells[row*width+col]
			tr, tg, tb := pixel(col, row*2)
			br, bg, bb := pixel(col, row*2+1)
			require.Equal(t, tr, c.BgR)
			require.Equal(t, tg, c.BgG)
			require.Equal(t, tb, c.BgB)
			require.Equal(t, br, c.FgR)
			require.Equal(t, bg, c.FgG)
			require.Equal(t, bb, c.FgB)
		}
	}
}

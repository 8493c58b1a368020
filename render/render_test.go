package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/romanslack/rsfx/format"
	"github.com/romanslack/rsfx/render"
)

// TestKeyframeSuppression implements spec §8 scenario 5.
func TestKeyframeSuppression(t *testing.T) {
	cell := format.Cell{BgR: 10, BgG: 20, BgB: 30, FgR: 40, FgG: 50, FgB: 60}
	cells := []format.Cell{cell, cell}

	buf := render.Keyframe(cells, 2, 1, nil)

	require.Equal(t, 1, strings.Count(string(buf), "48;2;10;20;30"))
	require.Equal(t, 1, strings.Count(string(buf), "38;2;40;50;60"))
	require.Equal(t, 2, bytes.Count(buf, []byte(render.HalfBlock)))
}

func TestKeyframeIdempotenceOnFlatFrames(t *testing.T) {
	for _, size := range []struct{ cols, rows uint16 }{
		{1, 1}, {5, 5}, {120, 40},
	} {
		cell := format.Cell{BgR: 1, BgG: 2, BgB: 3, FgR: 4, FgG: 5, FgB: 6}
		total := int(size.cols) * int(size.rows)
		cells := make([]format.Cell, total)
		for i := range cells {
			cells[i] = cell
		}

		buf := render.Keyframe(cells, size.cols, size.rows, nil)
		require.Equal(t, 1, strings.Count(string(buf), "48;2;1;2;3"))
		require.Equal(t, 1, strings.Count(string(buf), "38;2;4;5;6"))
	}
}

func TestKeyframeRowSeparators(t *testing.T) {
	cells := make([]format.Cell, 4)
	buf := render.Keyframe(cells, 2, 2, nil)
	require.Equal(t, 1, strings.Count(string(buf), "\r\n"))
	require.True(t, strings.HasPrefix(string(buf), "\x1b[H"))
	require.True(t, strings.HasSuffix(string(buf), "\x1b[0m"))
}

func TestDeltaRenderPositionsAreOneIndexed(t *testing.T) {
	deltas := []format.DeltaCell{
		{X: 0, Y: 0, Cell: format.Cell{BgR: 1}},
		{X: 3, Y: 2, Cell: format.Cell{FgB: 9}},
	}
	buf := render.Delta(deltas, nil)
	s := string(buf)
	require.Contains(t, s, "\x1b[1;1H")
	require.Contains(t, s, "\x1b[3;4H")
}

func TestDeltaRenderNoSuppressionAcrossCells(t *testing.T) {
	same := format.Cell{BgR: 7, BgG: 7, BgB: 7, FgR: 8, FgG: 8, FgB: 8}
	deltas := []format.DeltaCell{
		{X: 0, Y: 0, Cell: same},
		{X: 1, Y: 0, Cell: same},
	}
	buf := render.Delta(deltas, nil)
	require.Equal(t, 2, strings.Count(string(buf), "48;2;7;7;7"))
	require.Equal(t, 2, strings.Count(string(buf), "38;2;8;8;8"))
}

func TestReusedBufferRequiresCallerReset(t *testing.T) {
	buf := make([]byte, 0, 64)
	buf = append(buf, "stale"...)
	buf = render.Delta([]format.DeltaCell{{X: 0, Y: 0, Cell: format.Cell{}}}, buf)
	require.True(t, strings.HasPrefix(string(buf), "stale"))
}

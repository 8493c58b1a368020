package delta_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/romanslack/rsfx/delta"
	"github.com/romanslack/rsfx/format"
)

func gridOf(n int, fill func(i int) format.Cell) []format.Cell {
	out := make([]format.Cell, n)
	for i := range out {
		out[i] = fill(i)
	}
	return out
}

func TestComputeForceKeyframe(t *testing.T) {
	prev := gridOf(4, func(i int) format.Cell { return format.Cell{BgR: uint8(i)} })
	cur := gridOf(4, func(i int) format.Cell { return format.Cell{BgR: uint8(i + 1)} })
	d := delta.Compute(prev, cur, 2, true)
	require.True(t, d.IsKeyframe)
	require.Equal(t, cur, d.Keyframe)
}

func TestComputeEmptyPrevIsKeyframe(t *testing.T) {
	cur := gridOf(4, func(i int) format.Cell { return format.Cell{BgR: uint8(i)} })
	d := delta.Compute(nil, cur, 2, false)
	require.True(t, d.IsKeyframe)
	require.Equal(t, cur, d.Keyframe)
}

func TestComputeEmptyDeltaWhenUnchanged(t *testing.T) {
	grid := gridOf(4, func(i int) format.Cell { return format.Cell{BgR: uint8(i)} })
	d := delta.Compute(grid, grid, 2, false)
	require.False(t, d.IsKeyframe)
	require.Empty(t, d.Deltas)
}

func TestComputeDeltaPositions(t *testing.T) {
	cols := uint16(4)
	prev := gridOf(8, func(i int) format.Cell { return format.Cell{} })
	cur := make([]format.Cell, 8)
	copy(cur, prev)
	cur[1] = format.Cell{BgR: 255, FgG: 255}
	cur[7] = format.Cell{BgB: 255, FgR: 128, FgG: 128, FgB: 128}

	d := delta.Compute(prev, cur, cols, false)
	require.False(t, d.IsKeyframe)
	require.Equal(t, []format.DeltaCell{
		{X: 1, Y: 0, Cell: cur[1]},
		{X: 3, Y: 1, Cell: cur[7]},
	}, d.Deltas)
}

// TestPromotion61Vs60 implements spec §8 scenario 2.
func TestPromotion61Vs60(t *testing.T) {
	const cols, rows = 10, 10
	const total = cols * rows

	prev := gridOf(total, func(i int) format.Cell { return format.Cell{} })

	mk := func(changed int) []format.Cell {
		cur := make([]format.Cell, total)
		copy(cur, prev)
		for i := 0; i < changed; i++ {
			cur[i] = format.Cell{BgR: uint8(i + 1)}
		}
		return cur
	}

	cur61 := mk(61)
	d61 := delta.Compute(prev, cur61, cols, false)
	require.True(t, d61.IsKeyframe)
	require.Equal(t, cur61, d61.Keyframe)

	cur60 := mk(60)
	d60 := delta.Compute(prev, cur60, cols, false)
	require.False(t, d60.IsKeyframe)
	require.Len(t, d60.Deltas, 60)
}

func TestPromotionThresholdInvariant(t *testing.T) {
	const cols, rows = 8, 8
	const total = cols * rows
	prev := gridOf(total, func(i int) format.Cell { return format.Cell{} })
	cur := gridOf(total, func(i int) format.Cell { return format.Cell{BgR: uint8(i + 1)} })

	d := delta.Compute(prev, cur, cols, false)
	if !d.IsKeyframe {
		require.LessOrEqual(t, len(d.Deltas), total*60/100)
	}
}

func TestDeltaCellsInBounds(t *testing.T) {
	const cols, rows = 5, 3
	const total = cols * rows
	prev := gridOf(total, func(i int) format.Cell { return format.Cell{} })
	// Change every other cell (8 of 15), staying under the 9-cell promotion
	// threshold so a delta spanning all three rows is produced.
	cur := gridOf(total, func(i int) format.Cell {
		if i%2 == 0 {
			return format.Cell{BgR: uint8(i + 1)}
		}
		return format.Cell{}
	})

	d := delta.Compute(prev, cur, cols, false)
	require.False(t, d.IsKeyframe)
	for _, dc := range d.Deltas {
		require.Less(t, dc.X, uint16(cols))
		require.Less(t, dc.Y, uint16(rows))
	}
}

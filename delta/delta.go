// Package delta implements the cell-grid diff and keyframe promotion
// policy described in spec §4.4.
package delta

import "github.com/romanslack/rsfx/format"

// Diff is the result of comparing two cell grids: either a full Keyframe or
// a sparse list of changed cells.
type Diff struct {
	IsKeyframe bool
	Keyframe   []format.Cell
	Deltas     []format.DeltaCell
}

// Compute diffs current against prev, producing either a Delta or a
// promoted Keyframe. cols is needed to recover x,y positions from the flat
// cell index. forceKeyframe bypasses diffing entirely (used by the
// conversion/live drivers' keyframe-interval cadence).
//
// Rules, in order, per spec §4.4:
//  1. forceKeyframe or an empty prev grid always yields a Keyframe.
//  2. Otherwise, cells are compared index-by-index and changed cells are
//     collected into DeltaCells.
//  3. If more than 60% of cells changed (strict >, integer arithmetic),
//     the deltas are discarded and a Keyframe is emitted instead — a delta
//     cell costs 10 bytes against a cell's 6, so 60% is the break-even
//     point past which a keyframe is never larger.
func Compute(prev, current []format.Cell, cols uint16, forceKeyframe bool) Diff {
	if forceKeyframe || len(prev) == 0 {
		return Diff{IsKeyframe: true, Keyframe: current}
	}

	total := len(current)
	var deltas []format.DeltaCell

	for i := 0; i < total; i++ {
		if current[i] != prev[i] {
			x := uint16(i % int(cols))
			y := uint16(i / int(cols))
			deltas = append(deltas, format.DeltaCell{X: x, Y: y, Cell: current[i]})
		}
	}

	if len(deltas) > total*60/100 {
		return Diff{IsKeyframe: true, Keyframe: current}
	}
	return Diff{Deltas: deltas}
}

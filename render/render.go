// Package render turns cell grids into the ANSI escape-sequence byte stream
// described in spec §4.5: cursor positioning plus truecolor SGR, with
// cross-cell color-state suppression on keyframes.
package render

import "github.com/romanslack/rsfx/format"

// HalfBlock is the glyph painted into every cell: U+2584 LOWER HALF BLOCK.
// Its background paints the top pixel, its foreground the bottom pixel.
const HalfBlock = "▄"

var halfBlockBytes = []byte(HalfBlock)

// Keyframe appends the escape sequences for a full cell grid to buf. It
// does not clear buf first — callers that reuse a buffer across frames
// should reset its length themselves; see playback.Scheduler.
//
// Byte budget: on flat regions (bg/fg unchanged between adjacent cells)
// this emits 3 bytes/cell (the glyph) instead of the ~40 bytes/cell a
// naive per-cell SGR emission would cost, per spec §4.5's performance
// contract. Integers are formatted by hand (appendUint8/appendUint16) so no
// general-purpose formatter runs in the hot path.
func Keyframe(cells []format.Cell, cols, rows uint16, buf []byte) []byte {
	buf = append(buf, "\x1b[H"...)

	var prevBg, prevFg [3]uint8
	first := true

	for row := 0; row < int(rows); row++ {
		if row > 0 {
			buf = append(buf, '\r', '\n')
		}
		for col := 0; col < int(cols); col++ {
			c := cells[row*int(cols)+col]
			bg := [3]uint8{c.BgR, c.BgG, c.BgB}
			fg := [3]uint8{c.FgR, c.FgG, c.FgB}

			if first || bg != prevBg {
				buf = appendBg(buf, bg[0], bg[1], bg[2])
				prevBg = bg
			}
			if first || fg != prevFg {
				buf = appendFg(buf, fg[0], fg[1], fg[2])
				prevFg = fg
			}
			first = false

			buf = append(buf, halfBlockBytes...)
		}
	}

	buf = append(buf, "\x1b[0m"...)
	return buf
}

// Delta appends the escape sequences for a sparse list of changed cells to
// buf. Positions are 1-indexed per ECMA-48. There is no color-state
// suppression across deltas because their positions aren't contiguous, so
// every delta cell pays the full bg+fg SGR cost.
func Delta(deltas []format.DeltaCell, buf []byte) []byte {
	for _, d := range deltas {
		buf = appendCursorPos(buf, d.Y+1, d.X+1)
		buf = appendBg(buf, d.Cell.BgR, d.Cell.BgG, d.Cell.BgB)
		buf = appendFg(buf, d.Cell.FgR, d.Cell.FgG, d.Cell.FgB)
		buf = append(buf, halfBlockBytes...)
	}
	return buf
}

func appendBg(buf []byte, r, g, b uint8) []byte {
	buf = append(buf, "\x1b[48;2;"...)
	buf = appendUint8(buf, r)
	buf = append(buf, ';')
	buf = appendUint8(buf, g)
	buf = append(buf, ';')
	buf = appendUint8(buf, b)
	buf = append(buf, 'm')
	return buf
}

func appendFg(buf []byte, r, g, b uint8) []byte {
	buf = append(buf, "\x1b[38;2;"...)
	buf = appendUint8(buf, r)
	buf = append(buf, ';')
	buf = appendUint8(buf, g)
	buf = append(buf, ';')
	buf = appendUint8(buf, b)
	buf = append(buf, 'm')
	return buf
}

func appendCursorPos(buf []byte, row, col uint16) []byte {
	buf = append(buf, "\x1b["...)
	buf = appendUint16(buf, row)
	buf = append(buf, ';')
	buf = appendUint16(buf, col)
	buf = append(buf, 'H')
	return buf
}

// appendUint8 formats v (0-255) without allocation.
func appendUint8(buf []byte, v uint8) []byte {
	switch {
	case v >= 100:
		return append(buf, '0'+v/100, '0'+(v/10)%10, '0'+v%10)
	case v >= 10:
		return append(buf, '0'+v/10, '0'+v%10)
	default:
		return append(buf, '0'+v)
	}
}

// appendUint16 formats v (0-65535) without allocation.
func appendUint16(buf []byte, v uint16) []byte {
	if v == 0 {
		return append(buf, '0')
	}
	var tmp [5]byte
	i := len(tmp)
	for v > 0 {
		i--
		tmp[i] = '0' + byte(v%10)
		v /= 10
	}
	return append(buf, tmp[i:]...)
}

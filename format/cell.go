// Package format defines the on-disk byte layout of the .rsfx container:
// the file header, the frame index, and the Cell/DeltaCell wire types.
package format

// CellSize is the encoded size of a Cell in bytes.
const CellSize = 6

// Cell is a single terminal cell: a background color (the top pixel of the
// half-block glyph) and a foreground color (the bottom pixel). Equality is
// componentwise.
type Cell struct {
	BgR, BgG, BgB uint8
	FgR, FgG, FgB uint8
}

// Bytes encodes the cell into its 6-byte wire form.
func (c Cell) Bytes() [CellSize]byte {
	return [CellSize]byte{c.BgR, c.BgG, c.BgB, c.FgR, c.FgG, c.FgB}
}

// CellFromBytes decodes a Cell from a 6-byte slice. The caller must ensure
// b has at least CellSize bytes.
func CellFromBytes(b []byte) Cell {
	return Cell{
		BgR: b[0], BgG: b[1], BgB: b[2],
		FgR: b[3], FgG: b[4], FgB: b[5],
	}
}

// DeltaCellSize is the encoded size of a DeltaCell in bytes.
const DeltaCellSize = 10

// DeltaCell is a single changed cell within a delta frame: its grid position
// plus the new Cell value. Valid iff X < cols and Y < rows for the frame's
// grid dimensions.
type DeltaCell struct {
	X, Y uint16
	Cell Cell
}

// Bytes encodes the delta cell into its 10-byte wire form: x (u16 LE), y
// (u16 LE), then the 6-byte cell.
func (d DeltaCell) Bytes() [DeltaCellSize]byte {
	var buf [DeltaCellSize]byte
	buf[0] = byte(d.X)
	buf[1] = byte(d.X >> 8)
	buf[2] = byte(d.Y)
	buf[3] = byte(d.Y >> 8)
	cb := d.Cell.Bytes()
	copy(buf[4:], cb[:])
	return buf
}

// DeltaCellFromBytes decodes a DeltaCell from a 10-byte slice. The caller
// must ensure b has at least DeltaCellSize bytes.
func DeltaCellFromBytes(b []byte) DeltaCell {
	x := uint16(b[0]) | uint16(b[1])<<8
	y := uint16(b[2]) | uint16(b[3])<<8
	return DeltaCell{X: x, Y: y, Cell: CellFromBytes(b[4:10])}
}

// FrameType tags a frame's encoding as stored in the frame index.
type FrameType uint8

const (
	// Keyframe frames carry the entire cell grid.
	Keyframe FrameType = 0
	// Delta frames carry only the changed cells.
	Delta FrameType = 1
)

// FrameTypeFromByte decodes a frame-type tag tolerantly: any non-zero byte
// decodes as Delta, matching the reference decoder (spec §4.1, D1 in
// DESIGN.md).
func FrameTypeFromByte(b byte) FrameType {
	if b == 0 {
		return Keyframe
	}
	return Delta
}

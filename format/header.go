package format

import (
	"encoding/binary"
	"fmt"
)

// Magic is the 4-byte file signature at offset 0.
var Magic = [4]byte{'R', 'S', 'F', 'X'}

// Version is the only container version this implementation understands.
const Version uint16 = 1

// HeaderSize is the fixed size of the header in bytes, per spec §3.
const HeaderSize = 64

// Header is the 64-byte file header. Field offsets and widths follow
// spec §3's table exactly; all multi-byte integers are little-endian.
type Header struct {
	Cols             uint16
	Rows             uint16
	FpsNum           uint16
	FpsDen           uint16
	FrameCount       uint32
	KeyframeInterval uint16
	AudioSampleRate  uint32
	AudioChannels    uint16
	AudioOffset      uint64
	AudioLength      uint64
	IndexOffset      uint64
}

// Fps returns the frame rate as fps_num/fps_den.
func (h Header) Fps() float64 {
	return float64(h.FpsNum) / float64(h.FpsDen)
}

// Bytes encodes the header into its fixed 64-byte wire form. Bytes 50..64
// are reserved and left zero.
func (h Header) Bytes() [HeaderSize]byte {
	var buf [HeaderSize]byte
	copy(buf[0:4], Magic[:])
	binary.LittleEndian.PutUint16(buf[4:6], Version)
	binary.LittleEndian.PutUint16(buf[6:8], h.Cols)
	binary.LittleEndian.PutUint16(buf[8:10], h.Rows)
	binary.LittleEndian.PutUint16(buf[10:12], h.FpsNum)
	binary.LittleEndian.PutUint16(buf[12:14], h.FpsDen)
	binary.LittleEndian.PutUint32(buf[14:18], h.FrameCount)
	binary.LittleEndian.PutUint16(buf[18:20], h.KeyframeInterval)
	binary.LittleEndian.PutUint32(buf[20:24], h.AudioSampleRate)
	binary.LittleEndian.PutUint16(buf[24:26], h.AudioChannels)
	binary.LittleEndian.PutUint64(buf[26:34], h.AudioOffset)
	binary.LittleEndian.PutUint64(buf[34:42], h.AudioLength)
	binary.LittleEndian.PutUint64(buf[42:50], h.IndexOffset)
	return buf
}

// HeaderFromBytes decodes and validates a 64-byte header. It returns
// ErrBadMagic or ErrUnsupportedVersion (wrapped with context) on mismatch.
func HeaderFromBytes(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("format: decoding header: %w", ErrTruncated)
	}
	if [4]byte(buf[0:4]) != Magic {
		return Header{}, fmt.Errorf("format: bad magic %q: %w", buf[0:4], ErrBadMagic)
	}
	version := binary.LittleEndian.Uint16(buf[4:6])
	if version != Version {
		return Header{}, fmt.Errorf("format: version %d: %w", version, ErrUnsupportedVersion)
	}
	return Header{
		Cols:             binary.LittleEndian.Uint16(buf[6:8]),
		Rows:             binary.LittleEndian.Uint16(buf[8:10]),
		FpsNum:           binary.LittleEndian.Uint16(buf[10:12]),
		FpsDen:           binary.LittleEndian.Uint16(buf[12:14]),
		FrameCount:       binary.LittleEndian.Uint32(buf[14:18]),
		KeyframeInterval: binary.LittleEndian.Uint16(buf[18:20]),
		AudioSampleRate:  binary.LittleEndian.Uint32(buf[20:24]),
		AudioChannels:    binary.LittleEndian.Uint16(buf[24:26]),
		AudioOffset:      binary.LittleEndian.Uint64(buf[26:34]),
		AudioLength:      binary.LittleEndian.Uint64(buf[34:42]),
		IndexOffset:      binary.LittleEndian.Uint64(buf[42:50]),
	}, nil
}

// FrameIndexEntrySize is the encoded size of a FrameIndexEntry in bytes.
const FrameIndexEntrySize = 16

// FrameIndexEntry is one entry of the trailing frame index: where a frame's
// compressed payload lives and what kind of frame it is.
type FrameIndexEntry struct {
	Offset         uint64
	CompressedSize uint32
	Type           FrameType
}

// Bytes encodes the entry into its 16-byte wire form. Bytes 13..16 are
// reserved and left zero.
func (e FrameIndexEntry) Bytes() [FrameIndexEntrySize]byte {
	var buf [FrameIndexEntrySize]byte
	binary.LittleEndian.PutUint64(buf[0:8], e.Offset)
	binary.LittleEndian.PutUint32(buf[8:12], e.CompressedSize)
	buf[12] = byte(e.Type)
	return buf
}

// FrameIndexEntryFromBytes decodes a FrameIndexEntry from a 16-byte slice.
func FrameIndexEntryFromBytes(b []byte) FrameIndexEntry {
	return FrameIndexEntry{
		Offset:         binary.LittleEndian.Uint64(b[0:8]),
		CompressedSize: binary.LittleEndian.Uint32(b[8:12]),
		Type:           FrameTypeFromByte(b[12]),
	}
}

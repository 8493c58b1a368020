// Package reader implements the seek-based, random-access .rsfx decoder
// described in spec §4.3.
package reader

import (
	"fmt"
	"io"

	"github.com/romanslack/rsfx/format"
)

// Source is what a Reader decodes from: a seekable byte source, typically
// an *os.File opened read-only.
type Source interface {
	io.Reader
	io.Seeker
}

// Reader decodes .rsfx files. The header and frame index are loaded once on
// Open and cached in memory (trivially small at realistic frame counts);
// individual frame and audio reads seek and read on demand.
type Reader struct {
	src    Source
	Header format.Header
	index  []format.FrameIndexEntry
}

// Open reads and validates the 64-byte header, then loads the frame index.
func Open(src Source) (*Reader, error) {
	hbuf := make([]byte, format.HeaderSize)
	if _, err := io.ReadFull(src, hbuf); err != nil {
		return nil, fmt.Errorf("reader: reading header: %w", format.ErrTruncated)
	}
	h, err := format.HeaderFromBytes(hbuf)
	if err != nil {
		return nil, err
	}

	if _, err := src.Seek(int64(h.IndexOffset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("reader: seeking to index: %w", err)
	}
	index := make([]format.FrameIndexEntry, h.FrameCount)
	ebuf := make([]byte, format.FrameIndexEntrySize)
	for i := range index {
		if _, err := io.ReadFull(src, ebuf); err != nil {
			return nil, fmt.Errorf("reader: reading index entry %d: %w", i, format.ErrTruncated)
		}
		index[i] = format.FrameIndexEntryFromBytes(ebuf)
	}

	return &Reader{src: src, Header: h, index: index}, nil
}

// Fps returns the frame rate as fps_num/fps_den.
func (r *Reader) Fps() float64 { return r.Header.Fps() }

// FrameCount returns the number of frames in the file.
func (r *Reader) FrameCount() int { return int(r.Header.FrameCount) }

// FrameType returns the stored frame type for frame i.
func (r *Reader) FrameType(i int) (format.FrameType, error) {
	if i < 0 || i >= len(r.index) {
		return 0, fmt.Errorf("reader: frame %d: %w", i, format.ErrIndexOutOfRange)
	}
	return r.index[i].Type, nil
}

func (r *Reader) readFrameRaw(i int) ([]byte, error) {
	if i < 0 || i >= len(r.index) {
		return nil, fmt.Errorf("reader: frame %d: %w", i, format.ErrIndexOutOfRange)
	}
	entry := r.index[i]
	if _, err := r.src.Seek(int64(entry.Offset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("reader: seeking to frame %d: %w", i, err)
	}
	compressed := make([]byte, entry.CompressedSize)
	if _, err := io.ReadFull(r.src, compressed); err != nil {
		return nil, fmt.Errorf("reader: reading frame %d: %w", i, format.ErrTruncated)
	}
	raw, err := format.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("reader: decompressing frame %d: %w", i, err)
	}
	return raw, nil
}

// ReadKeyframe decodes frame i as a full cell grid. The decompressed size
// must equal cols*rows*CellSize or ErrCorruptFrame is returned.
func (r *Reader) ReadKeyframe(i int) ([]format.Cell, error) {
	raw, err := r.readFrameRaw(i)
	if err != nil {
		return nil, err
	}
	want := int(r.Header.Cols) * int(r.Header.Rows) * format.CellSize
	if len(raw) != want {
		return nil, fmt.Errorf("reader: frame %d: keyframe size %d != %d: %w", i, len(raw), want, format.ErrCorruptFrame)
	}
	n := len(raw) / format.CellSize
	cells := make([]format.Cell, n)
	for j := 0; j < n; j++ {
		cells[j] = format.CellFromBytes(raw[j*format.CellSize : (j+1)*format.CellSize])
	}
	return cells, nil
}

// ReadDelta decodes frame i as a list of changed cells. The decompressed
// size must be a multiple of DeltaCellSize or ErrCorruptFrame is returned.
func (r *Reader) ReadDelta(i int) ([]format.DeltaCell, error) {
	raw, err := r.readFrameRaw(i)
	if err != nil {
		return nil, err
	}
	if len(raw)%format.DeltaCellSize != 0 {
		return nil, fmt.Errorf("reader: frame %d: delta size %d not a multiple of %d: %w", i, len(raw), format.DeltaCellSize, format.ErrCorruptFrame)
	}
	n := len(raw) / format.DeltaCellSize
	deltas := make([]format.DeltaCell, n)
	for j := 0; j < n; j++ {
		deltas[j] = format.DeltaCellFromBytes(raw[j*format.DeltaCellSize : (j+1)*format.DeltaCellSize])
	}
	return deltas, nil
}

// ReadAudio returns the stored PCM blob, or an empty slice if the file has
// no audio track.
func (r *Reader) ReadAudio() ([]byte, error) {
	if r.Header.AudioLength == 0 {
		return []byte{}, nil
	}
	if _, err := r.src.Seek(int64(r.Header.AudioOffset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("reader: seeking to audio: %w", err)
	}
	buf := make([]byte, r.Header.AudioLength)
	if _, err := io.ReadFull(r.src, buf); err != nil {
		return nil, fmt.Errorf("reader: reading audio: %w", format.ErrTruncated)
	}
	return buf, nil
}

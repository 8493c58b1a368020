// Package writer implements the streaming, append-only .rsfx encoder
// described in spec §4.2.
package writer

import (
	"fmt"
	"io"

	"github.com/romanslack/rsfx/format"
)

// Sink is what a Writer encodes onto. It must support positional writes
// (io.Writer is enough since the writer never seeks mid-stream except at
// Finish) and seeking back to the start to rewrite the header, matching
// spec §4.2's requirement that "the sink must support positional writes
// and seek-to-start; sequential streaming sinks are not supported."
type Sink interface {
	io.Writer
	io.Seeker
}

// Writer encodes frames and an optional audio blob into a Sink, following
// the protocol in spec §4.2: placeholder header on Open, per-frame
// compression and indexing, then index + header rewrite on Finish.
type Writer struct {
	sink   Sink
	header format.Header
	index  []format.FrameIndexEntry
	pos    int64

	audioWritten bool
	finished     bool
}

// Open writes a placeholder header and returns a Writer ready to accept
// frames. cols, rows, fps, and keyframeInterval are fixed for the lifetime
// of the file.
func Open(sink Sink, cols, rows, fps, keyframeInterval uint16) (*Writer, error) {
	h := format.Header{
		Cols:             cols,
		Rows:             rows,
		FpsNum:           fps,
		FpsDen:           1,
		KeyframeInterval: keyframeInterval,
	}
	buf := h.Bytes()
	n, err := sink.Write(buf[:])
	if err != nil {
		return nil, fmt.Errorf("writer: writing placeholder header: %w", err)
	}
	return &Writer{sink: sink, header: h, pos: int64(n)}, nil
}

func (w *Writer) writeFrame(raw []byte, ft format.FrameType) error {
	if w.finished {
		return fmt.Errorf("writer: write after finish")
	}
	compressed := format.Compress(raw)
	n, err := w.sink.Write(compressed)
	if err != nil {
		return fmt.Errorf("writer: writing frame payload: %w", err)
	}
	w.index = append(w.index, format.FrameIndexEntry{
		Offset:         uint64(w.pos),
		CompressedSize: uint32(len(compressed)),
		Type:           ft,
	})
	w.pos += int64(n)
	return nil
}

// WriteKeyframe appends a full cell grid as a keyframe. cells must have
// cols*rows elements, row-major.
func (w *Writer) WriteKeyframe(cells []format.Cell) error {
	raw := make([]byte, 0, len(cells)*format.CellSize)
	for _, c := range cells {
		b := c.Bytes()
		raw = append(raw, b[:]...)
	}
	return w.writeFrame(raw, format.Keyframe)
}

// WriteDelta appends a sparse list of changed cells as a delta frame.
func (w *Writer) WriteDelta(deltas []format.DeltaCell) error {
	raw := make([]byte, 0, len(deltas)*format.DeltaCellSize)
	for _, d := range deltas {
		b := d.Bytes()
		raw = append(raw, b[:]...)
	}
	return w.writeFrame(raw, format.Delta)
}

// WriteAudio streams a PCM s16le blob. It may be called at most once, and
// only after all frames have been written (spec §4.2).
func (w *Writer) WriteAudio(pcm []byte, sampleRate uint32, channels uint16) error {
	if w.audioWritten {
		return fmt.Errorf("writer: WriteAudio called more than once")
	}
	n, err := w.sink.Write(pcm)
	if err != nil {
		return fmt.Errorf("writer: writing audio blob: %w", err)
	}
	w.header.AudioOffset = uint64(w.pos)
	w.header.AudioLength = uint64(len(pcm))
	w.header.AudioSampleRate = sampleRate
	w.header.AudioChannels = channels
	w.pos += int64(n)
	w.audioWritten = true
	return nil
}

// Finish writes the trailing frame index, rewrites the header with final
// metadata, and returns the underlying sink. The Writer must not be used
// afterward.
func (w *Writer) Finish() (Sink, error) {
	if w.finished {
		return nil, fmt.Errorf("writer: Finish called more than once")
	}
	w.finished = true

	indexOffset := w.pos
	for _, e := range w.index {
		b := e.Bytes()
		n, err := w.sink.Write(b[:])
		if err != nil {
			return nil, fmt.Errorf("writer: writing frame index: %w", err)
		}
		w.pos += int64(n)
	}

	w.header.FrameCount = uint32(len(w.index))
	w.header.IndexOffset = uint64(indexOffset)

	if _, err := w.sink.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("writer: seeking to rewrite header: %w", err)
	}
	hb := w.header.Bytes()
	if _, err := w.sink.Write(hb[:]); err != nil {
		return nil, fmt.Errorf("writer: rewriting header: %w", err)
	}
	if _, err := w.sink.Seek(0, io.SeekEnd); err != nil {
		return nil, fmt.Errorf("writer: seeking to end: %w", err)
	}
	if f, ok := w.sink.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return nil, fmt.Errorf("writer: flushing: %w", err)
		}
	}
	return w.sink, nil
}

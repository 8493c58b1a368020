package format

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// Compress returns data compressed with LZ4, prefixed with the 4-byte
// little-endian uncompressed size (the same framing the reference
// implementation gets for free from lz4_flex's compress_prepend_size).
// Per-frame compression keeps random access intact: a frame's compressed
// bytes are self-contained and don't depend on any other frame.
func Compress(data []byte) []byte {
	bound := lz4.CompressBlockBound(len(data))
	out := make([]byte, 4+bound)
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(data)))

	var c lz4.Compressor
	n, err := c.CompressBlock(data, out[4:])
	if err != nil {
		// CompressBlockBound guarantees enough room; a Compressor only
		// errors on destination too small.
		panic(fmt.Sprintf("format: lz4 compress: %v", err))
	}
	if n == 0 && len(data) > 0 {
		// Incompressible input: CompressBlock declines to emit a block.
		// Fall back to storing the bytes verbatim after the size prefix;
		// Decompress recognizes this form because the payload length
		// equals the uncompressed size.
		return append(out[:4], data...)
	}
	return out[:4+n]
}

// Decompress reverses Compress. It returns ErrCorruptFrame if the buffer is
// too short or the LZ4 block is malformed.
func Decompress(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("format: decompressing frame: %w", ErrCorruptFrame)
	}
	uncompressedSize := binary.LittleEndian.Uint32(data[0:4])
	payload := data[4:]

	if uncompressedSize == 0 {
		return []byte{}, nil
	}
	if len(payload) == int(uncompressedSize) {
		// Verbatim fallback written by Compress for incompressible input.
		out := make([]byte, uncompressedSize)
		copy(out, payload)
		return out, nil
	}

	out := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(payload, out)
	if err != nil {
		return nil, fmt.Errorf("format: decompressing frame: %w: %v", ErrCorruptFrame, err)
	}
	if n != int(uncompressedSize) {
		return nil, fmt.Errorf("format: decompressing frame: size mismatch: %w", ErrCorruptFrame)
	}
	return out, nil
}

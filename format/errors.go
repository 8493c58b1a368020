package format

import "errors"

// Sentinel error kinds, checked with errors.Is. These mirror the error
// kinds enumerated in spec §7.
var (
	ErrBadMagic           = errors.New("bad magic")
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrTruncated          = errors.New("truncated read")
	ErrCorruptFrame       = errors.New("corrupt frame")
	ErrIndexOutOfRange    = errors.New("frame index out of range")
)

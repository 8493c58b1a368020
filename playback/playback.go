// Package playback implements the audio-mastered playback clock and
// per-frame scheduling loop described in spec §4.6.
package playback

import (
	"fmt"
	"io"
	"time"

	"github.com/romanslack/rsfx/format"
	"github.com/romanslack/rsfx/render"
)

// FrameSource is the subset of *reader.Reader the scheduler needs, kept
// narrow so it can be driven by a fake in tests.
type FrameSource interface {
	FrameCount() int
	FrameType(i int) (format.FrameType, error)
	ReadKeyframe(i int) ([]format.Cell, error)
	ReadDelta(i int) ([]format.DeltaCell, error)
}

// Clock reports the current master playback position in seconds. An audio
// player implements this via its own position; Scheduler falls back to
// wall-clock-since-start when no Clock is supplied (spec §4.6).
type Clock interface {
	PositionSecs() float64
}

// KeyPoller returns the next pending key and true, or (0, false) if none is
// pending. It must never block.
type KeyPoller interface {
	Poll() (byte, bool)
}

// Scheduler drives the per-frame playback loop of spec §4.6.
type Scheduler struct {
	Cols, Rows uint16
	Fps        float64
	Clock      Clock // nil means wall-clock master
	Keys       KeyPoller
}

// Run plays frames [0, src.FrameCount()) to out, writing the render buffer
// after every decoded frame and sleeping to hold fps. It returns nil on
// reaching the end of the file or on a quit keypress; any I/O or decode
// error is returned to the caller (spec §4.6 Termination).
func (s *Scheduler) Run(src FrameSource, out io.Writer, quit func(byte) bool) error {
	frameCount := src.FrameCount()
	frameDuration := 1.0 / s.Fps
	start := time.Now()

	currentCells := make([]format.Cell, int(s.Cols)*int(s.Rows))
	haveCells := false
	renderBuf := make([]byte, 0, 256*1024)

	for i := 0; i < frameCount; i++ {
		if s.Keys != nil {
			if b, ok := s.Keys.Poll(); ok && quit != nil && quit(b) {
				return nil
			}
		}

		targetTime := s.targetTime(start)
		frameTime := float64(i) * frameDuration

		if frameTime+frameDuration < targetTime && i+1 < frameCount {
			ft, err := src.FrameType(i)
			if err != nil {
				return fmt.Errorf("playback: frame %d: %w", i, err)
			}
			if ft == format.Keyframe {
				cells, err := src.ReadKeyframe(i)
				if err != nil {
					return fmt.Errorf("playback: frame %d: %w", i, err)
				}
				currentCells = cells
				haveCells = true
			}
			continue
		}

		ft, err := src.FrameType(i)
		if err != nil {
			return fmt.Errorf("playback: frame %d: %w", i, err)
		}

		renderBuf = renderBuf[:0]
		switch ft {
		case format.Keyframe:
			cells, err := src.ReadKeyframe(i)
			if err != nil {
				return fmt.Errorf("playback: frame %d: %w", i, err)
			}
			currentCells = cells
			haveCells = true
			renderBuf = render.Keyframe(currentCells, s.Cols, s.Rows, renderBuf)
		case format.Delta:
			deltas, err := src.ReadDelta(i)
			if err != nil {
				return fmt.Errorf("playback: frame %d: %w", i, err)
			}
			if haveCells {
				applyDeltas(currentCells, deltas, s.Cols)
			}
			renderBuf = render.Delta(deltas, renderBuf)
		}

		if _, err := out.Write(renderBuf); err != nil {
			return fmt.Errorf("playback: writing frame %d: %w", i, err)
		}
		if f, ok := out.(interface{ Flush() error }); ok {
			if err := f.Flush(); err != nil {
				return fmt.Errorf("playback: flushing frame %d: %w", i, err)
			}
		}

		nextFrameTime := time.Duration(float64(i+1) * frameDuration * float64(time.Second))
		if sleep := nextFrameTime - time.Since(start); sleep > 0 {
			time.Sleep(sleep)
		}
	}

	return nil
}

func (s *Scheduler) targetTime(start time.Time) float64 {
	if s.Clock != nil {
		return s.Clock.PositionSecs()
	}
	return time.Since(start).Seconds()
}

// applyDeltas writes each delta cell into grid, bounds-checked: an
// out-of-range write is silently ignored to tolerate format drift, per
// spec §4.6 step 3 and DESIGN.md decision D3.
func applyDeltas(grid []format.Cell, deltas []format.DeltaCell, cols uint16) {
	for _, d := range deltas {
		idx := int(d.Y)*int(cols) + int(d.X)
		if idx < len(grid) {
			grid[idx] = d.Cell
		}
	}
}

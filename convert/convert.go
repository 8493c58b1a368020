package convert

import (
	"fmt"

	"github.com/romanslack/rsfx/delta"
	"github.com/romanslack/rsfx/format"
	"github.com/romanslack/rsfx/halfblock"
	"github.com/romanslack/rsfx/resize"
	"github.com/romanslack/rsfx/writer"
)

// Options configures a Run, mirroring rsfx-convert's CLI flags
// (original_source/converter/src/main.rs's Cli struct).
type Options struct {
	Cols             uint16
	Rows             uint16
	Fps              uint16
	KeyframeInterval uint16

	// Progress, if non-nil, is called after every frame with the running
	// frame count, for the CLI's "Processed N frames..." progress line.
	Progress func(frameNum int)
}

// Run decodes inputPath frame by frame, resizes and diffs each against the
// last, and streams keyframes/deltas into w, finally appending the
// extracted audio track (if any). It does not call w.Finish; the caller
// finishes the container after Run returns. It is the
// shared body behind cmd/rsfx-convert, grounded on
// original_source/converter/src/main.rs's top-level loop.
func Run(inputPath string, w *writer.Writer, opts Options) error {
	decoder, err := NewVideoDecoder(inputPath)
	if err != nil {
		return err
	}

	resizer := resize.New(opts.Cols, opts.Rows)

	var prevCells []format.Cell
	frameNum := uint32(0)

	for {
		frame, err := decoder.Next()
		if err != nil {
			return err
		}
		if frame == nil {
			break
		}

		resized := resizer.Resize(frame.Data, frame.Width, frame.Height)
		cells := halfblock.PixelsToCells(resized, resizer.TargetWidth(), resizer.TargetHeight())

		forceKeyframe := opts.KeyframeInterval > 0 && frameNum%uint32(opts.KeyframeInterval) == 0
		diff := delta.Compute(prevCells, cells, opts.Cols, forceKeyframe)

		if diff.IsKeyframe {
			if err := w.WriteKeyframe(diff.Keyframe); err != nil {
				return err
			}
		} else {
			if err := w.WriteDelta(diff.Deltas); err != nil {
				return err
			}
		}

		prevCells = cells
		frameNum++
		if opts.Progress != nil {
			opts.Progress(int(frameNum))
		}
	}

	pcm, err := ExtractAudio(inputPath)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if pcm != nil {
		if err := w.WriteAudio(pcm, AudioSampleRate, AudioChannels); err != nil {
			return err
		}
	}

	return nil
}

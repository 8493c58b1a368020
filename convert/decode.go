// Package convert implements the offline MP4-to-.rsfx conversion pipeline:
// decode video frames to raw RGB24 via ffmpeg, extract the audio track, and
// drive them through the resize/halfblock/delta/writer stack via rsfx-convert.
// Grounded on original_source/converter/src/{decode,audio,main}.rs, with the
// ffmpeg piping idiom taken from goshadertoy's
// audio/ffmpegbase.go/renderer/offscreen.go (io.Pipe + ffmpeg.Input(...).
// Output("pipe:", ...).WithOutput(...).Compile()).
package convert

import (
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// VideoFrame is one decoded RGB24 frame read off the ffmpeg pipe.
type VideoFrame struct {
	Data   []byte
	Width  int
	Height int
}

// VideoDecoder streams decoded RGB24 frames from a video file by piping
// ffmpeg's rawvideo output. It probes the source resolution first via
// ffprobe so each frame's fixed byte length is known up front.
type VideoDecoder struct {
	width, height int
	cmd           *exec.Cmd
	pipeReader    io.ReadCloser
	frameSize     int
	errc          chan error
}

// probeResult mirrors the subset of ffprobe's JSON stream output this
// package needs.
type probeResult struct {
	Streams []struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"streams"`
}

// NewVideoDecoder probes inputPath for its pixel dimensions, then starts an
// ffmpeg rawvideo-over-pipe decode. The separate up-front probe differs
// from original_source/converter/src/decode.rs, which learns the
// dimensions in-band from its first frame event.
func NewVideoDecoder(inputPath string) (*VideoDecoder, error) {
	w, h, err := probeDimensions(inputPath)
	if err != nil {
		return nil, fmt.Errorf("convert: probing %s: %w", inputPath, err)
	}
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("convert: could not determine video dimensions for %s", inputPath)
	}

	pipeReader, pipeWriter := io.Pipe()

	cmd := ffmpeg.Input(inputPath).
		Output("pipe:", ffmpeg.KwArgs{
			"format":  "rawvideo",
			"pix_fmt": "rgb24",
		}).
		WithOutput(pipeWriter).
		ErrorToStdOut().
		Compile()

	errc := make(chan error, 1)
	go func() {
		err := cmd.Run()
		pipeWriter.Close()
		errc <- err
	}()

	return &VideoDecoder{
		width:      w,
		height:     h,
		cmd:        cmd,
		pipeReader: pipeReader,
		frameSize:  w * h * 3,
		errc:       errc,
	}, nil
}

// SourceWidth returns the probed source pixel width.
func (d *VideoDecoder) SourceWidth() int { return d.width }

// SourceHeight returns the probed source pixel height.
func (d *VideoDecoder) SourceHeight() int { return d.height }

// Next reads the next decoded frame, or returns (nil, nil) at end of
// stream. Partial trailing frames (a truncated final read) are treated as
// end of stream, not an error.
func (d *VideoDecoder) Next() (*VideoFrame, error) {
	buf := make([]byte, d.frameSize)
	if _, err := io.ReadFull(d.pipeReader, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			if runErr := <-d.errc; runErr != nil {
				return nil, fmt.Errorf("convert: ffmpeg decode: %w", runErr)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("convert: reading decoded frame: %w", err)
	}
	return &VideoFrame{Data: buf, Width: d.width, Height: d.height}, nil
}

func probeDimensions(inputPath string) (int, int, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "json",
		inputPath,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, 0, fmt.Errorf("running ffprobe: %w", err)
	}

	var res probeResult
	if err := json.Unmarshal(out, &res); err != nil {
		return 0, 0, fmt.Errorf("parsing ffprobe output: %w", err)
	}
	if len(res.Streams) == 0 {
		return 0, 0, fmt.Errorf("no video stream found")
	}
	return res.Streams[0].Width, res.Streams[0].Height, nil
}

// ResolveFPS implements rsfx-convert's "--fps 0 means auto-detect" flag
// semantics: it probes the source's frame rate via ffprobe and rounds to
// the nearest integer, falling back to 30 if detection fails. Any non-zero
// requested value passes through unchanged.
func ResolveFPS(inputPath string, requested uint16) uint16 {
	if requested != 0 {
		return requested
	}
	if rate := probeFrameRate(inputPath); rate > 0 {
		return uint16(rate + 0.5)
	}
	return 30
}

// probeFrameRate is used by rsfx-convert when --fps=0 is requested ("auto
// detect"), matching the reference CLI's documented (if unimplemented in
// the distillation) fallback. Returns 0 if the rate could not be parsed.
func probeFrameRate(inputPath string) float64 {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=r_frame_rate",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inputPath,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0
	}
	return parseRational(out)
}

func parseRational(out []byte) float64 {
	s := string(out)
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			num, err1 := strconv.ParseFloat(trimSpace(s[:i]), 64)
			den, err2 := strconv.ParseFloat(trimSpace(s[i+1:]), 64)
			if err1 != nil || err2 != nil || den == 0 {
				return 0
			}
			return num / den
		}
	}
	v, err := strconv.ParseFloat(trimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\n' || s[start] == '\t' || s[start] == '\r') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\n' || s[end-1] == '\t' || s[end-1] == '\r') {
		end--
	}
	return s[start:end]
}

package convert

import (
	"bytes"
	"fmt"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// AudioSampleRate and AudioChannels are the fixed PCM format rsfx-convert
// extracts audio in, per spec §4.2/§6.3: 44100Hz stereo s16le.
const (
	AudioSampleRate = 44100
	AudioChannels   = 2
)

// ExtractAudio extracts the audio track of inputPath as raw PCM s16le,
// 44100Hz, stereo. It returns (nil, nil) if the source has no audio track,
// mirroring original_source/converter/src/audio.rs's "empty stdout means no
// audio" convention.
func ExtractAudio(inputPath string) ([]byte, error) {
	var out bytes.Buffer

	err := ffmpeg.Input(inputPath).
		Output("pipe:", ffmpeg.KwArgs{
			"vn":     "",
			"acodec": "pcm_s16le",
			"ar":     AudioSampleRate,
			"ac":     AudioChannels,
			"f":      "s16le",
		}).
		WithOutput(&out).
		ErrorToStdOut().
		Run()
	if out.Len() == 0 {
		// A source without an audio stream makes ffmpeg exit non-zero with
		// no output; that is "no audio", not an error.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("convert: extracting audio: %w", err)
	}
	return out.Bytes(), nil
}

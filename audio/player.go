// Package audio provides the offline and live-streaming audio output used
// by rsfx-play and rsfx-avatar: the "output audio device and its mixer"
// spec §1 lists as an external collaborator, consumed here through
// github.com/gordonklaus/portaudio exactly as goshadertoy's audio package
// consumes it for device output (audio/player.go, audio/device.go).
package audio

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gordonklaus/portaudio"
)

// Player plays a fixed, fully-buffered PCM blob (the offline playback path,
// spec §6.3) and reports elapsed playback position as the master clock for
// playback.Scheduler.
type Player struct {
	samples    []float32
	channels   int
	sampleRate int

	stream     *portaudio.Stream
	framesSent atomic.Int64
	startTime  time.Time
}

// NewPlayer initializes PortAudio and prepares a player for the given PCM
// s16le blob. The blob is round-tripped through WrapPCMAsWAV/ParseWAVHeader
// per spec §6.3 before conversion to float32, matching the documented
// hand-off shape even though the output path here consumes samples
// directly rather than through a WAV-aware decoder.
func NewPlayer(pcm []byte, sampleRate uint32, channels uint16) (*Player, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: initializing portaudio: %w", err)
	}

	wav := WrapPCMAsWAV(pcm, sampleRate, channels)
	rate, ch, data, err := ParseWAVHeader(wav)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("audio: wrapping pcm: %w", err)
	}

	samples := make([]float32, len(data)/2)
	for i := range samples {
		v := int16(uint16(data[2*i]) | uint16(data[2*i+1])<<8)
		samples[i] = float32(v) / 32768.0
	}

	return &Player{
		samples:    samples,
		channels:   int(ch),
		sampleRate: int(rate),
	}, nil
}

// Play opens the default output stream and starts playback in the
// background, recording the start time used by PositionSecs.
func (p *Player) Play() error {
	callback := func(out []float32) {
		n := p.framesSent.Load()
		for i := range out {
			idx := n + int64(i)
			if int(idx) < len(p.samples) {
				out[i] = p.samples[idx]
			} else {
				out[i] = 0
			}
		}
		p.framesSent.Add(int64(len(out)))
	}

	stream, err := portaudio.OpenDefaultStream(0, p.channels, float64(p.sampleRate), 0, callback)
	if err != nil {
		return fmt.Errorf("audio: opening output stream: %w", err)
	}
	p.stream = stream
	p.startTime = time.Now()
	if err := stream.Start(); err != nil {
		return fmt.Errorf("audio: starting output stream: %w", err)
	}
	return nil
}

// PositionSecs returns elapsed wall-clock playback time in seconds,
// implementing the playback.Clock interface. Audio is the master clock
// (spec §4.6); using wall-clock-since-start here is equivalent to tracking
// consumed frames because portaudio's callback runs at a steady device
// rate once started.
func (p *Player) PositionSecs() float64 {
	if p.startTime.IsZero() {
		return 0
	}
	return time.Since(p.startTime).Seconds()
}

// Stop halts playback and releases the stream.
func (p *Player) Stop() error {
	if p.stream == nil {
		return nil
	}
	if err := p.stream.Stop(); err != nil {
		return fmt.Errorf("audio: stopping stream: %w", err)
	}
	if err := p.stream.Close(); err != nil {
		return fmt.Errorf("audio: closing stream: %w", err)
	}
	return portaudio.Terminate()
}

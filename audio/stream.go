package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// StreamDevice plays audio pushed live into a Ring, the live-renderer
// counterpart of Player. Grounded on the reference's StreamingSource
// (original_source/rsfx-avatar/renderer/src/audio.rs): an rodio::Source
// there, a portaudio output-stream callback here, both reading from a
// thread-safe buffer that yields silence on underrun.
type StreamDevice struct {
	ring       *Ring
	channels   int
	sampleRate int
	stream     *portaudio.Stream
}

// NewStreamDevice prepares a live audio output device backed by ring, at
// the fixed rate spec §6.3 specifies for live audio: 16000 Hz mono. It
// opens nothing; Start opens and starts the output stream.
func NewStreamDevice(ring *Ring) *StreamDevice {
	return &StreamDevice{ring: ring, channels: 1, sampleRate: 16000}
}

// Start initializes PortAudio and begins pulling samples from the ring.
func (d *StreamDevice) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio: initializing portaudio: %w", err)
	}

	callback := func(out []float32) {
		samples := d.ring.Pop(len(out))
		copy(out, samples)
	}

	stream, err := portaudio.OpenDefaultStream(0, d.channels, float64(d.sampleRate), 0, callback)
	if err != nil {
		_ = portaudio.Terminate()
		return fmt.Errorf("audio: opening output stream: %w", err)
	}
	d.stream = stream
	return stream.Start()
}

// Push feeds raw PCM s16le bytes into the ring for eventual playback.
func (d *StreamDevice) Push(pcm []byte) {
	d.ring.Push(pcm)
}

// Stop halts playback and releases PortAudio resources.
func (d *StreamDevice) Stop() error {
	if d.stream == nil {
		return nil
	}
	if err := d.stream.Stop(); err != nil {
		return fmt.Errorf("audio: stopping stream: %w", err)
	}
	if err := d.stream.Close(); err != nil {
		return fmt.Errorf("audio: closing stream: %w", err)
	}
	return portaudio.Terminate()
}

package audio

import "sync"

// Ring is an unbounded FIFO of float32 samples behind a mutex, shared
// between a producer (the live-protocol receiver, pushing converted
// samples) and a consumer (the portaudio output callback, popping them),
// per spec §5. On underrun Pop returns silence rather than blocking, so the
// output device's stream stays alive — grounded on the reference's
// StreamingSource (original_source/rsfx-avatar/renderer/src/audio.rs) and
// on goshadertoy's SharedAudioBuffer (audio/sharedbuffer.go), adapted from
// a fixed-capacity overwrite ring to an unbounded push/pop queue since the
// spec calls for a FIFO, not a latest-N window.
type Ring struct {
	mu   sync.Mutex
	buf  []float32
	head int
}

// NewRing creates an empty streaming audio ring.
func NewRing() *Ring {
	return &Ring{}
}

// Push converts raw s16le bytes to float32 samples in [-1.0, 1.0) by
// dividing by 32768, and appends them to the ring, per spec §6.3.
func (r *Ring) Push(pcm []byte) {
	samples := make([]float32, len(pcm)/2)
	for i := range samples {
		v := int16(uint16(pcm[2*i]) | uint16(pcm[2*i+1])<<8)
		samples[i] = float32(v) / 32768.0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf = append(r.buf, samples...)
}

// Pop removes and returns up to n samples. Missing samples (underrun) are
// filled with silence (0.0) so the caller always gets exactly n samples
// without blocking.
func (r *Ring) Pop(n int) []float32 {
	out := make([]float32, n)

	r.mu.Lock()
	defer r.mu.Unlock()

	avail := len(r.buf) - r.head
	take := n
	if take > avail {
		take = avail
	}
	if take > 0 {
		copy(out, r.buf[r.head:r.head+take])
		r.head += take
	}

	// Compact occasionally so the backing array doesn't grow without bound
	// under sustained production.
	if r.head > 0 && r.head == len(r.buf) {
		r.buf = r.buf[:0]
		r.head = 0
	} else if r.head > 1<<16 {
		r.buf = append(r.buf[:0], r.buf[r.head:]...)
		r.head = 0
	}

	return out
}

// Len reports the number of samples currently queued (not yet popped).
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buf) - r.head
}

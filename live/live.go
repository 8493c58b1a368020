// Package live implements the two-thread live renderer of spec §5: a
// receiver goroutine reading framed messages off a socket into a channel,
// and a main loop that drains the channel, runs the delta engine, and
// writes to the terminal. Grounded on
// original_source/rsfx-avatar/renderer/src/main.rs.
package live

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/romanslack/rsfx/delta"
	"github.com/romanslack/rsfx/format"
	"github.com/romanslack/rsfx/halfblock"
	"github.com/romanslack/rsfx/protocol"
	"github.com/romanslack/rsfx/render"
)

// pollInterval bounds how long Loop can block waiting for the next message
// before re-checking the keyboard, per spec §5's "<=1ms" keyboard-poll
// cadence.
const pollInterval = time.Millisecond

// AudioSink receives raw PCM bytes pushed by the receiver loop.
type AudioSink interface {
	Push(pcm []byte)
}

// KeyPoller returns the next pending key and true, or (0, false) if none is
// pending. It must never block.
type KeyPoller interface {
	Poll() (byte, bool)
}

// Receiver runs on its own goroutine: it blocks reading framed messages
// from conn and forwards each to ch. EOF or a read error terminates the
// goroutine and closes ch, matching spec §5's receiver-thread contract.
func Receiver(conn io.Reader, ch chan<- *protocol.Message) {
	defer close(ch)
	r := protocol.NewReceiver(conn)
	for {
		msg, err := r.Recv()
		if err != nil {
			log.Printf("live: receiver stopped: %v", err)
			return
		}
		if msg == nil {
			return
		}
		ch <- msg
	}
}

// WaitForReady discards any Frame/Audio message received before a
// Control(Ready) is seen, per spec §6.2's "earlier Frame/Audio messages
// received before Ready are discarded" rule. It reads directly (not via
// the channel) since this happens before the receiver goroutine is
// spawned.
func WaitForReady(conn io.Reader) error {
	r := protocol.NewReceiver(conn)
	for {
		msg, err := r.Recv()
		if err != nil {
			return fmt.Errorf("live: waiting for ready: %w", err)
		}
		if msg == nil {
			return fmt.Errorf("live: connection closed before ready")
		}
		if msg.Kind == protocol.KindControl && msg.Control == protocol.Ready {
			return nil
		}
	}
}

// loopState carries the per-frame decode state across ticks of Loop.
type loopState struct {
	prevCells  []format.Cell
	prevCols   uint16
	renderBuf  []byte
	frameCount int
	audioOut   AudioSink
	out        io.Writer
}

// handle decodes and renders a single message, returning (true, nil) when
// the message means the loop should stop (a Control(Stop) command).
func (s *loopState) handle(msg *protocol.Message) (quit bool, err error) {
	switch msg.Kind {
	case protocol.KindFrame:
		cellRows := msg.Height / 2
		cells := halfblock.PixelsToCells(msg.RGB, int(msg.Width), int(msg.Height))

		forceKeyframe := s.frameCount == 0 || s.prevCols != msg.Width
		diff := delta.Compute(s.prevCells, cells, msg.Width, forceKeyframe)

		s.renderBuf = s.renderBuf[:0]
		if diff.IsKeyframe {
			s.renderBuf = render.Keyframe(diff.Keyframe, msg.Width, cellRows, s.renderBuf)
		} else {
			s.renderBuf = render.Delta(diff.Deltas, s.renderBuf)
		}

		if _, err := s.out.Write(s.renderBuf); err != nil {
			return false, fmt.Errorf("live: writing frame: %w", err)
		}
		if f, ok := s.out.(interface{ Flush() error }); ok {
			if err := f.Flush(); err != nil {
				return false, fmt.Errorf("live: flushing frame: %w", err)
			}
		}

		s.prevCells = cells
		s.prevCols = msg.Width
		s.frameCount++

	case protocol.KindAudio:
		if s.audioOut != nil {
			s.audioOut.Push(msg.PCM)
		}

	case protocol.KindControl:
		if msg.Control == protocol.Stop {
			return true, nil
		}
	}
	return false, nil
}

// Loop is the main render loop: it polls the keyboard non-blockingly and
// drains all pending messages from ch each tick, decoding frames through
// the delta engine and writing renders to out. When ch has nothing
// pending, the tick still returns at least every pollInterval so the
// keyboard poll keeps running even if the producer stalls. It returns nil
// on a quit keypress, a Control(Stop) message, or channel closure (peer
// disconnect); any write error is returned to the caller.
func Loop(ch <-chan *protocol.Message, keys KeyPoller, audioOut AudioSink, out io.Writer) error {
	s := &loopState{
		renderBuf: make([]byte, 0, 256*1024),
		audioOut:  audioOut,
		out:       out,
	}

	for {
		if keys != nil {
			if b, ok := keys.Poll(); ok && (b == 'q' || b == 0x1b || b == 0x03) {
				return nil
			}
		}

		select {
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if quit, err := s.handle(msg); err != nil {
				return err
			} else if quit {
				return nil
			}

		drain:
			for {
				select {
				case msg, ok := <-ch:
					if !ok {
						return nil
					}
					if quit, err := s.handle(msg); err != nil {
						return err
					} else if quit {
						return nil
					}
				default:
					break drain
				}
			}

		case <-time.After(pollInterval):
		}
	}
}

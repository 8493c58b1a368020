package live_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/romanslack/rsfx/live"
	"github.com/romanslack/rsfx/protocol"
)

type fakePoller struct {
	keys []byte
	i    int
}

func (p *fakePoller) Poll() (byte, bool) {
	if p.i >= len(p.keys) {
		return 0, false
	}
	b := p.keys[p.i]
	p.i++
	return b, true
}

type fakeAudioSink struct {
	pushed [][]byte
}

func (s *fakeAudioSink) Push(pcm []byte) {
	s.pushed = append(s.pushed, pcm)
}

func frameMsg(w, h uint16) *protocol.Message {
	return &protocol.Message{Kind: protocol.KindFrame, Width: w, Height: h, RGB: make([]byte, int(w)*int(h)*3)}
}

func TestLoopRendersFramesUntilChannelCloses(t *testing.T) {
	ch := make(chan *protocol.Message, 4)
	ch <- frameMsg(2, 2)
	ch <- frameMsg(2, 2)
	close(ch)

	var out bytes.Buffer
	err := live.Loop(ch, &fakePoller{}, nil, &out)
	require.NoError(t, err)
	require.NotEmpty(t, out.Bytes())
}

func TestLoopStopsOnQuitKey(t *testing.T) {
	ch := make(chan *protocol.Message, 4)
	ch <- frameMsg(2, 2)

	var out bytes.Buffer
	err := live.Loop(ch, &fakePoller{keys: []byte{'q'}}, nil, &out)
	require.NoError(t, err)
}

func TestLoopStopsOnControlStop(t *testing.T) {
	ch := make(chan *protocol.Message, 4)
	ch <- &protocol.Message{Kind: protocol.KindControl, Control: protocol.Stop}

	var out bytes.Buffer
	err := live.Loop(ch, &fakePoller{}, nil, &out)
	require.NoError(t, err)
	require.Empty(t, out.Bytes())
}

func TestLoopForwardsAudioToSink(t *testing.T) {
	ch := make(chan *protocol.Message, 4)
	ch <- &protocol.Message{Kind: protocol.KindAudio, PCM: []byte{1, 2, 3, 4}}
	ch <- &protocol.Message{Kind: protocol.KindControl, Control: protocol.Stop}

	sink := &fakeAudioSink{}
	var out bytes.Buffer
	err := live.Loop(ch, &fakePoller{}, sink, &out)
	require.NoError(t, err)
	require.Len(t, sink.pushed, 1)
	require.Equal(t, []byte{1, 2, 3, 4}, sink.pushed[0])
}

// countingPoller reports no key for the first n-1 polls, then reports b.
// Used to simulate a keypress arriving only after the channel has gone
// idle, with no message ever delivered.
type countingPoller struct {
	n int
	b byte
}

func (p *countingPoller) Poll() (byte, bool) {
	p.n--
	if p.n > 0 {
		return 0, false
	}
	return p.b, true
}

func TestLoopQuitsOnStalledChannelWithoutAnyMessage(t *testing.T) {
	ch := make(chan *protocol.Message) // never sent to, never closed

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- live.Loop(ch, &countingPoller{n: 3, b: 'q'}, nil, &out)
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Loop did not return after a quit keypress on a stalled channel")
	}
}

func TestWaitForReadySkipsPriorMessages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, protocol.WriteFrame(&buf, 1, 1, 0, []byte{0, 0, 0}))
	require.NoError(t, protocol.WriteControl(&buf, protocol.Ready))

	require.NoError(t, live.WaitForReady(&buf))
}

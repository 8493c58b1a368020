package protocol_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/romanslack/rsfx/protocol"
)

// TestDecodeSequence implements spec §8 scenario 6 verbatim.
func TestDecodeSequence(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{'R', 'C', 2}) // Control(Ready)
	buf.Write([]byte{'R', 'F', 2, 0, 2, 0})
	buf.Write(make([]byte, 8)) // timestamp_us
	buf.Write(make([]byte, 12))
	buf.Write([]byte{'R', 'C', 0}) // Control(Stop)

	r := protocol.NewReceiver(&buf)

	m1, err := r.Recv()
	require.NoError(t, err)
	require.Equal(t, protocol.KindControl, m1.Kind)
	require.Equal(t, protocol.Ready, m1.Control)

	m2, err := r.Recv()
	require.NoError(t, err)
	require.Equal(t, protocol.KindFrame, m2.Kind)
	require.EqualValues(t, 2, m2.Width)
	require.EqualValues(t, 2, m2.Height)
	require.Len(t, m2.RGB, 12)

	m3, err := r.Recv()
	require.NoError(t, err)
	require.Equal(t, protocol.KindControl, m3.Kind)
	require.Equal(t, protocol.Stop, m3.Control)

	m4, err := r.Recv()
	require.NoError(t, err)
	require.Nil(t, m4)
}

func TestUnknownTagIsProtocolError(t *testing.T) {
	buf := bytes.NewBufferString("ZZ")
	r := protocol.NewReceiver(buf)
	_, err := r.Recv()
	require.ErrorIs(t, err, protocol.ErrProtocol)
}

func TestUnknownControlCommandIsProtocolError(t *testing.T) {
	buf := bytes.NewBuffer([]byte{'R', 'C', 99})
	r := protocol.NewReceiver(buf)
	_, err := r.Recv()
	require.ErrorIs(t, err, protocol.ErrProtocol)
}

func TestWriteReadRoundtrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, protocol.WriteControl(&buf, protocol.Ready))
	require.NoError(t, protocol.WriteFrame(&buf, 1, 2, 42, []byte{1, 2, 3, 4, 5, 6}))
	require.NoError(t, protocol.WriteAudio(&buf, []byte{9, 9}))

	r := protocol.NewReceiver(&buf)

	m1, err := r.Recv()
	require.NoError(t, err)
	require.Equal(t, protocol.Ready, m1.Control)

	m2, err := r.Recv()
	require.NoError(t, err)
	require.EqualValues(t, 1, m2.Width)
	require.EqualValues(t, 2, m2.Height)
	require.EqualValues(t, 42, m2.TimestampUs)
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6}, m2.RGB)

	m3, err := r.Recv()
	require.NoError(t, err)
	require.Equal(t, []byte{9, 9}, m3.PCM)
}

package audio_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/romanslack/rsfx/audio"
)

func TestRingPushConvertsS16LEToFloat32(t *testing.T) {
	r := audio.NewRing()
	// two samples: 0 and 32767 (max positive s16)
	r.Push([]byte{0, 0, 0xff, 0x7f})
	got := r.Pop(2)
	require.InDelta(t, 0.0, got[0], 1e-6)
	require.InDelta(t, 32767.0/32768.0, got[1], 1e-6)
}

func TestRingUnderrunReturnsSilence(t *testing.T) {
	r := audio.NewRing()
	r.Push([]byte{0, 0})
	got := r.Pop(5)
	require.Len(t, got, 5)
	require.Equal(t, float32(0), got[0])
	for _, s := range got[1:] {
		require.Equal(t, float32(0), s)
	}
}

func TestRingFIFOOrder(t *testing.T) {
	r := audio.NewRing()
	r.Push([]byte{0, 0, 1, 0, 2, 0})
	first := r.Pop(1)
	second := r.Pop(2)
	require.InDelta(t, 0.0, first[0], 1e-6)
	require.Len(t, second, 2)
}

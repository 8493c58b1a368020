package resize_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/romanslack/rsfx/resize"
)

func TestResizeNoOpAtTargetSize(t *testing.T) {
	r := resize.New(4, 2) // target 4x4 pixels
	src := make([]byte, 4*4*3)
	for i := range src {
		src[i] = byte(i)
	}

	out := r.Resize(src, 4, 4)
	require.Equal(t, src, out)
}

func TestResizeProducesTargetDimensions(t *testing.T) {
	r := resize.New(8, 4) // target 8x8 pixels
	src := make([]byte, 16*16*3)
	for i := range src {
		src[i] = byte(200)
	}

	out := r.Resize(src, 16, 16)
	require.Len(t, out, 8*8*3)
}

func TestResizeUniformColorStaysUniform(t *testing.T) {
	r := resize.New(4, 2)
	src := make([]byte, 16*16*3)
	for i := 0; i < len(src); i += 3 {
		src[i] = 10
		src[i+1] = 20
		src[i+2] = 30
	}

	out := r.Resize(src, 16, 16)
	require.Len(t, out, 4*4*3)
	for i := 0; i < len(out); i += 3 {
		require.InDelta(t, 10, out[i], 2)
		require.InDelta(t, 20, out[i+1], 2)
		require.InDelta(t, 30, out[i+2], 2)
	}
}

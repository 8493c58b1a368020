package termio_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/romanslack/rsfx/termio"
)

func TestIsQuitRecognizesQAndEsc(t *testing.T) {
	require.True(t, termio.IsQuit('q'))
	require.True(t, termio.IsQuit(0x1b))
	require.False(t, termio.IsQuit('x'))
}

func TestIsCtrlC(t *testing.T) {
	require.True(t, termio.IsCtrlC(0x03))
	require.False(t, termio.IsCtrlC('c'))
}

func TestKeyReaderPollDrainsWrittenBytes(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	kr := termio.StartKeyReader(r)

	_, err = w.Write([]byte{'q'})
	require.NoError(t, err)
	w.Close()

	require.Eventually(t, func() bool {
		b, ok := kr.Poll()
		return ok && b == 'q'
	}, time.Second, time.Millisecond)
}

package termio

import "os"

// KeyReader delivers raw stdin bytes over a channel so callers can poll it
// non-blockingly alongside a render loop, matching the "poll the keyboard
// with <=1ms timeout" pattern of spec §5. Call StartKeyReader once after
// the terminal is in raw mode.
type KeyReader struct {
	ch chan byte
}

// StartKeyReader spawns a goroutine that blocks on reads from in and
// forwards each byte to a buffered channel. The goroutine exits on read
// error or EOF (e.g. when the terminal is restored and closed).
func StartKeyReader(in *os.File) *KeyReader {
	kr := &KeyReader{ch: make(chan byte, 16)}
	go func() {
		defer close(kr.ch)
		buf := make([]byte, 1)
		for {
			n, err := in.Read(buf)
			if n > 0 {
				kr.ch <- buf[0]
			}
			if err != nil {
				return
			}
		}
	}()
	return kr
}

// Poll returns the next pending key byte and true, or (0, false) if none is
// available right now. Non-blocking.
func (kr *KeyReader) Poll() (byte, bool) {
	select {
	case b, ok := <-kr.ch:
		return b, ok
	default:
		return 0, false
	}
}

// IsQuit reports whether b is 'q' or ESC (0x1b), the quit keys spec §6.4
// specifies for the player and live renderer.
func IsQuit(b byte) bool {
	return b == 'q' || b == 0x1b
}

// IsCtrlC reports whether b is Ctrl-C (0x03).
func IsCtrlC(b byte) bool {
	return b == 0x03
}

// Package termio wraps raw-mode / alternate-screen terminal control, the
// "terminal raw-mode / alt-screen control and keyboard polling" collaborator
// spec §1 lists as external, consumed here via golang.org/x/term.
package termio

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Terminal owns the raw-mode state for stdout/stdin and the escape
// sequences needed to enter/leave the alternate screen.
type Terminal struct {
	fd       int
	oldState *term.State
	out      *os.File
}

// Open enables raw mode on stdin and enters the alternate screen on out,
// hiding the cursor. Call Restore (directly, via defer, or via a recover
// handler) to undo both before the process exits.
func Open(out *os.File) (*Terminal, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("termio: enabling raw mode: %w", err)
	}
	t := &Terminal{fd: fd, oldState: oldState, out: out}
	if _, err := out.WriteString("\x1b[?1049h\x1b[?25l"); err != nil {
		_ = t.Restore()
		return nil, fmt.Errorf("termio: entering alternate screen: %w", err)
	}
	return t, nil
}

// Restore resets SGR state, shows the cursor, leaves the alternate screen,
// and disables raw mode. It is safe to call more than once.
func (t *Terminal) Restore() error {
	if t == nil {
		return nil
	}
	_, _ = t.out.WriteString("\x1b[0m\x1b[?25h\x1b[?1049l")
	if t.oldState != nil {
		err := term.Restore(t.fd, t.oldState)
		t.oldState = nil
		return err
	}
	return nil
}

// Size returns the terminal's current dimensions in columns and rows.
func Size(out *os.File) (cols, rows int, err error) {
	return term.GetSize(int(out.Fd()))
}

// WarnIfTooSmall writes a non-fatal warning to stderr if the terminal is
// smaller than wantCols x wantRows, matching spec §7's TerminalSizeWarning:
// non-fatal, playback proceeds with clipping.
func WarnIfTooSmall(out *os.File, wantCols, wantRows int) {
	cols, rows, err := Size(out)
	if err != nil {
		return
	}
	if cols < wantCols || rows < wantRows {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d but video needs %dx%d. Resize your terminal for best results.\n",
			cols, rows, wantCols, wantRows)
	}
}

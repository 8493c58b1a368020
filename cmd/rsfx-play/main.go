// Command rsfx-play plays a .rsfx file in the terminal, using the audio
// track (when present) as the master playback clock. Grounded on
// original_source/player/src/main.rs.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/romanslack/rsfx/audio"
	"github.com/romanslack/rsfx/playback"
	"github.com/romanslack/rsfx/reader"
	"github.com/romanslack/rsfx/termio"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rsfx-play <input.rsfx>")
		os.Exit(2)
	}
	input := flag.Arg(0)

	f, err := os.Open(input)
	if err != nil {
		log.Fatalf("opening %s: %v", input, err)
	}
	defer f.Close()

	r, err := reader.Open(f)
	if err != nil {
		log.Fatalf("reading %s: %v", input, err)
	}

	cols := r.Header.Cols
	rows := r.Header.Rows
	termio.WarnIfTooSmall(os.Stdout, int(cols), int(rows))

	var player *audio.Player
	if r.Header.AudioLength > 0 {
		pcm, err := r.ReadAudio()
		if err != nil {
			log.Printf("Warning: could not read audio: %v", err)
		} else {
			p, err := audio.NewPlayer(pcm, r.Header.AudioSampleRate, r.Header.AudioChannels)
			if err != nil {
				log.Printf("Warning: could not initialize audio: %v", err)
			} else {
				player = p
			}
		}
	}

	term, err := termio.Open(os.Stdout)
	if err != nil {
		log.Fatalf("opening terminal: %v", err)
	}
	defer func() {
		if player != nil {
			_ = player.Stop()
		}
		_ = term.Restore()
	}()
	defer func() {
		if rec := recover(); rec != nil {
			_ = term.Restore()
			panic(rec)
		}
	}()

	out := bufio.NewWriterSize(os.Stdout, 256*1024)

	termCols, termRows, err := termio.Size(os.Stdout)
	if err != nil {
		termCols, termRows = int(cols), int(rows)
	}
	showSplash(out, termCols, termRows)

	keys := termio.StartKeyReader(os.Stdin)

	if player != nil {
		if err := player.Play(); err != nil {
			log.Printf("Warning: could not start audio: %v", err)
			player = nil
		}
	}

	sched := &playback.Scheduler{
		Cols: cols,
		Rows: rows,
		Fps:  r.Fps(),
		Keys: keys,
	}
	if player != nil {
		sched.Clock = player
	}

	err = sched.Run(r, out, func(b byte) bool {
		return termio.IsQuit(b) || termio.IsCtrlC(b)
	})

	_ = out.Flush()
	if err != nil {
		log.Fatalf("playback: %v", err)
	}
}

var splashLogo = []string{
	" ######   ######  ########  ##     ##",
	" ##   ## ##       ##         ##   ## ",
	" ##   ##  ##      ##          ## ##  ",
	" ######    ####   ######       ###   ",
	" ##   ##      ##  ##          ## ##  ",
	" ##    ## ##   ## ##         ##   ## ",
	" ##     ##  ####  ##        ##     ##",
}

var splashBlues = [][3]uint8{
	{30, 90, 220}, {50, 120, 235}, {70, 150, 245}, {100, 180, 255},
	{70, 150, 245}, {50, 120, 235}, {30, 90, 220},
}

// showSplash draws a brief logo screen before playback starts, matching
// original_source/player/src/main.rs's show_splash. Unlike the original's
// animated, keypress-interruptible spinner, the hold here is a fixed
// 600ms sleep with no input handling — the key reader isn't started until
// after this returns, and the splash's only role is cosmetic.
func showSplash(out *bufio.Writer, termCols, termRows int) {
	fmt.Fprint(out, "\x1b[48;2;8;8;16m\x1b[2J")

	logoWidth := 0
	for _, l := range splashLogo {
		if len(l) > logoWidth {
			logoWidth = len(l)
		}
	}
	logoHeight := len(splashLogo)
	startRow := saturatingHalf(termRows, logoHeight+4)
	startCol := saturatingHalf(termCols, logoWidth)

	for i, line := range splashLogo {
		c := splashBlues[i%len(splashBlues)]
		fmt.Fprintf(out, "\x1b[%d;%dH\x1b[38;2;%d;%d;%dm%s", startRow+i, startCol, c[0], c[1], c[2], line)
	}

	subtitle := "terminal video engine"
	subCol := saturatingHalf(termCols, len(subtitle))
	fmt.Fprintf(out, "\x1b[%d;%dH\x1b[38;2;60;70;110m%s", startRow+logoHeight+2, subCol, subtitle)
	fmt.Fprint(out, "\x1b[0m")
	out.Flush()

	time.Sleep(600 * time.Millisecond)

	fmt.Fprint(out, "\x1b[48;2;0;0;0m\x1b[2J")
	out.Flush()
}

func saturatingHalf(total, used int) int {
	d := total - used
	if d < 0 {
		d = 0
	}
	return d / 2
}

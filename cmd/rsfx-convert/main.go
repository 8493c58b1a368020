// Command rsfx-convert converts an MP4 (or any ffmpeg-readable) video into
// the .rsfx container format. Grounded on
// original_source/converter/src/main.rs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/romanslack/rsfx/convert"
	"github.com/romanslack/rsfx/writer"
)

func main() {
	output := flag.String("output", "", "Output .rsfx file path (default: input with .rsfx extension)")
	cols := flag.Uint("cols", 120, "Terminal columns")
	rows := flag.Uint("rows", 40, "Terminal rows")
	fps := flag.Uint("fps", 30, "Frames per second (0 = auto-detect from source)")
	keyframeInterval := flag.Uint("keyframe-interval", 30, "Frames between full keyframes")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rsfx-convert [flags] <input>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	resolvedFps := convert.ResolveFPS(input, uint16(*fps))

	outputPath := *output
	if outputPath == "" {
		ext := filepath.Ext(input)
		outputPath = strings.TrimSuffix(input, ext) + ".rsfx"
	}

	log.Printf("Decoding video: %s", input)

	f, err := os.Create(outputPath)
	if err != nil {
		log.Fatalf("creating %s: %v", outputPath, err)
	}
	defer f.Close()

	w, err := writer.Open(f, uint16(*cols), uint16(*rows), resolvedFps, uint16(*keyframeInterval))
	if err != nil {
		log.Fatalf("opening writer: %v", err)
	}

	log.Printf("Target: %dx%d cells (%dx%d pixels)", *cols, *rows, *cols, *rows*2)

	opts := convert.Options{
		Cols:             uint16(*cols),
		Rows:             uint16(*rows),
		Fps:              resolvedFps,
		KeyframeInterval: uint16(*keyframeInterval),
		Progress: func(frameNum int) {
			if frameNum%100 == 0 {
				fmt.Fprintf(os.Stderr, "\rProcessed %d frames...", frameNum)
			}
		},
	}

	if err := convert.Run(input, w, opts); err != nil {
		log.Fatalf("converting: %v", err)
	}
	fmt.Fprintln(os.Stderr)

	if _, err := w.Finish(); err != nil {
		log.Fatalf("finishing %s: %v", outputPath, err)
	}
	log.Printf("Wrote %s", outputPath)
}

// Command rsfx-avatar renders a live RGB24 stream delivered over a Unix
// domain socket directly to the terminal. Grounded on
// original_source/rsfx-avatar/renderer/src/main.rs.
package main

import (
	"bufio"
	"flag"
	"log"
	"os"

	"github.com/romanslack/rsfx/audio"
	"github.com/romanslack/rsfx/live"
	"github.com/romanslack/rsfx/protocol"
	"github.com/romanslack/rsfx/termio"
)

func main() {
	defaultSocket := "/tmp/rsfx-avatar.sock"
	if env := os.Getenv("RSFX_SOCKET"); env != "" {
		defaultSocket = env
	}
	socketPath := flag.String("socket", defaultSocket, "Unix socket path (default from $RSFX_SOCKET if set)")
	flag.Uint("cols", 120, "Display width in terminal columns (informational; frames carry their own dimensions)")
	flag.Uint("rows", 40, "Display height in terminal rows (informational; frames carry their own dimensions)")
	flag.Parse()

	listener, err := protocol.BindListener(*socketPath)
	if err != nil {
		log.Fatalf("binding socket: %v", err)
	}
	defer func() { _ = protocol.RemoveSocket(*socketPath) }()

	log.Printf("rsfx-avatar: waiting for connection on %s ...", *socketPath)
	conn, err := listener.Accept()
	if err != nil {
		log.Fatalf("accepting connection: %v", err)
	}
	defer conn.Close()
	log.Println("rsfx-avatar: connected")

	if err := live.WaitForReady(conn); err != nil {
		log.Fatalf("waiting for ready: %v", err)
	}
	log.Println("rsfx-avatar: received ready, entering render mode")

	ring := audio.NewRing()
	stream := audio.NewStreamDevice(ring)
	if err := stream.Start(); err != nil {
		log.Printf("Warning: could not start audio: %v", err)
		stream = nil
	}

	term, err := termio.Open(os.Stdout)
	if err != nil {
		log.Fatalf("opening terminal: %v", err)
	}
	defer func() {
		if stream != nil {
			_ = stream.Stop()
		}
		_ = term.Restore()
	}()
	defer func() {
		if rec := recover(); rec != nil {
			_ = term.Restore()
			panic(rec)
		}
	}()

	keys := termio.StartKeyReader(os.Stdin)
	ch := make(chan *protocol.Message, 64)
	go live.Receiver(conn, ch)

	out := bufio.NewWriterSize(os.Stdout, 256*1024)

	var sink live.AudioSink
	if stream != nil {
		sink = stream
	}

	err = live.Loop(ch, keys, sink, out)
	_ = out.Flush()
	if err != nil {
		log.Fatalf("render loop: %v", err)
	}
}

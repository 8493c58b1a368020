// Package protocol implements the live wire protocol of spec §6.2: a
// framed byte stream over a local Unix domain socket carrying video frames,
// audio chunks, and control commands.
package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ControlCmd is the single control-message payload byte.
type ControlCmd uint8

const (
	Stop  ControlCmd = 0
	Start ControlCmd = 1
	Ready ControlCmd = 2
)

// MessageKind discriminates the decoded Message union.
type MessageKind int

const (
	KindFrame MessageKind = iota
	KindAudio
	KindControl
)

// Message is one decoded wire message. Only the fields matching Kind are
// populated.
type Message struct {
	Kind MessageKind

	// KindFrame
	Width, Height uint16
	TimestampUs   uint64
	RGB           []byte

	// KindAudio
	PCM []byte

	// KindControl
	Control ControlCmd
}

// ErrProtocol is wrapped by the error Recv returns for an unknown tag or an
// unknown control command. A short read mid-message is not wrapped in it;
// that error wraps the underlying read error (e.g. io.ErrUnexpectedEOF).
// Per spec §7, a ProtocolError closes the connection.
var ErrProtocol = fmt.Errorf("protocol error")

// Receiver reads framed Messages from a connected byte stream.
type Receiver struct {
	r io.Reader
}

// NewReceiver wraps r (typically a net.Conn) for message-at-a-time reads.
func NewReceiver(r io.Reader) *Receiver {
	return &Receiver{r: r}
}

// Recv reads the next message. It returns (nil, nil) on a clean EOF before
// any bytes of a new message are read, a wrapped ErrProtocol on an unknown
// tag or unknown control command, and the wrapped read error on a short
// read.
func (rc *Receiver) Recv() (*Message, error) {
	var tag [2]byte
	if _, err := io.ReadFull(rc.r, tag[:]); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("protocol: reading message tag: %w", err)
	}

	switch string(tag[:]) {
	case "RF":
		return rc.readFrame()
	case "RA":
		return rc.readAudio()
	case "RC":
		return rc.readControl()
	default:
		return nil, fmt.Errorf("protocol: unknown tag %q: %w", tag, ErrProtocol)
	}
}

func (rc *Receiver) readFrame() (*Message, error) {
	var hdr [12]byte // width:2 + height:2 + timestamp_us:8
	if _, err := io.ReadFull(rc.r, hdr[:]); err != nil {
		return nil, fmt.Errorf("protocol: reading frame header: %w", err)
	}
	width := binary.LittleEndian.Uint16(hdr[0:2])
	height := binary.LittleEndian.Uint16(hdr[2:4])
	ts := binary.LittleEndian.Uint64(hdr[4:12])

	dataLen := int(width) * int(height) * 3
	rgb := make([]byte, dataLen)
	if _, err := io.ReadFull(rc.r, rgb); err != nil {
		return nil, fmt.Errorf("protocol: reading frame rgb data: %w", err)
	}

	return &Message{Kind: KindFrame, Width: width, Height: height, TimestampUs: ts, RGB: rgb}, nil
}

func (rc *Receiver) readAudio() (*Message, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(rc.r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("protocol: reading audio length: %w", err)
	}
	length := binary.LittleEndian.Uint32(lenBuf[:])

	pcm := make([]byte, length)
	if _, err := io.ReadFull(rc.r, pcm); err != nil {
		return nil, fmt.Errorf("protocol: reading audio pcm data: %w", err)
	}

	return &Message{Kind: KindAudio, PCM: pcm}, nil
}

func (rc *Receiver) readControl() (*Message, error) {
	var cmd [1]byte
	if _, err := io.ReadFull(rc.r, cmd[:]); err != nil {
		return nil, fmt.Errorf("protocol: reading control command: %w", err)
	}
	switch ControlCmd(cmd[0]) {
	case Stop, Start, Ready:
		return &Message{Kind: KindControl, Control: ControlCmd(cmd[0])}, nil
	default:
		return nil, fmt.Errorf("protocol: unknown control command %d: %w", cmd[0], ErrProtocol)
	}
}

// WriteFrame encodes and writes an RF message.
func WriteFrame(w io.Writer, width, height uint16, timestampUs uint64, rgb []byte) error {
	buf := make([]byte, 0, 2+12+len(rgb))
	buf = append(buf, 'R', 'F')
	buf = binary.LittleEndian.AppendUint16(buf, width)
	buf = binary.LittleEndian.AppendUint16(buf, height)
	buf = binary.LittleEndian.AppendUint64(buf, timestampUs)
	buf = append(buf, rgb...)
	_, err := w.Write(buf)
	return err
}

// WriteAudio encodes and writes an RA message.
func WriteAudio(w io.Writer, pcm []byte) error {
	buf := make([]byte, 0, 2+4+len(pcm))
	buf = append(buf, 'R', 'A')
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(pcm)))
	buf = append(buf, pcm...)
	_, err := w.Write(buf)
	return err
}

// WriteControl encodes and writes an RC message.
func WriteControl(w io.Writer, cmd ControlCmd) error {
	_, err := w.Write([]byte{'R', 'C', byte(cmd)})
	return err
}

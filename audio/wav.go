package audio

import (
	"encoding/binary"
	"fmt"
)

// WrapPCMAsWAV wraps raw PCM s16le data in a minimal 44-byte RIFF/WAVE
// header in memory, matching spec §6.3 and the reference's
// wrap_pcm_as_wav. This is the documented hand-off shape for an external
// WAV-consuming audio library; NewPlayer round-trips through it via
// ParseWAVHeader before converting samples for portaudio.
func WrapPCMAsWAV(pcm []byte, sampleRate uint32, channels uint16) []byte {
	const bitsPerSample = 16
	dataLen := uint32(len(pcm))
	byteRate := sampleRate * uint32(channels) * (bitsPerSample / 8)
	blockAlign := channels * (bitsPerSample / 8)
	fileSize := 36 + dataLen

	wav := make([]byte, 0, 44+len(pcm))
	wav = append(wav, "RIFF"...)
	wav = binary.LittleEndian.AppendUint32(wav, fileSize)
	wav = append(wav, "WAVE"...)
	wav = append(wav, "fmt "...)
	wav = binary.LittleEndian.AppendUint32(wav, 16)
	wav = binary.LittleEndian.AppendUint16(wav, 1) // PCM format
	wav = binary.LittleEndian.AppendUint16(wav, channels)
	wav = binary.LittleEndian.AppendUint32(wav, sampleRate)
	wav = binary.LittleEndian.AppendUint32(wav, byteRate)
	wav = binary.LittleEndian.AppendUint16(wav, blockAlign)
	wav = binary.LittleEndian.AppendUint16(wav, bitsPerSample)
	wav = append(wav, "data"...)
	wav = binary.LittleEndian.AppendUint32(wav, dataLen)
	wav = append(wav, pcm...)
	return wav
}

// ParseWAVHeader parses the 44-byte header produced by WrapPCMAsWAV and
// returns the sample rate, channel count, and the raw data chunk.
func ParseWAVHeader(wav []byte) (sampleRate uint32, channels uint16, data []byte, err error) {
	if len(wav) < 44 {
		return 0, 0, nil, fmt.Errorf("audio: wav header truncated")
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return 0, 0, nil, fmt.Errorf("audio: not a RIFF/WAVE buffer")
	}
	channels = binary.LittleEndian.Uint16(wav[22:24])
	sampleRate = binary.LittleEndian.Uint32(wav[24:28])
	dataLen := binary.LittleEndian.Uint32(wav[40:44])
	if int(44+dataLen) > len(wav) {
		return 0, 0, nil, fmt.Errorf("audio: wav data chunk truncated")
	}
	data = wav[44 : 44+dataLen]
	return sampleRate, channels, data, nil
}

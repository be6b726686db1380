package stream

import (
	"encoding/binary"

	"github.com/cwbudde/algo-stream/audio"
)

// wavHeaderSize is the canonical WAV header length the network source
// expects at the start of a stream body.
const wavHeaderSize = 44

// decodePCM converts raw little-endian signed PCM bytes into normalized
// floats in [-1, 1]. Trailing bytes short of a whole sample are ignored.
// Returns the number of samples written to dst; dst must hold at least
// len(src)/bytesPerSample values.
func decodePCM(dst []float64, src []byte, bitDepth uint16) int {
	switch bitDepth {
	case 24:
		n := len(src) / 3
		for i := 0; i < n; i++ {
			b := src[3*i:]
			// Sign extension: place the three bytes in the top of an
			// int32 and shift back down arithmetically.
			v := int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8
			dst[i] = float64(v) / 8388608
		}
		return n
	case 32:
		n := len(src) / 4
		for i := 0; i < n; i++ {
			v := int32(binary.LittleEndian.Uint32(src[4*i:]))
			dst[i] = float64(v) / 2147483648
		}
		return n
	default:
		n := len(src) / 2
		for i := 0; i < n; i++ {
			v := int16(binary.LittleEndian.Uint16(src[2*i:]))
			dst[i] = float64(v) / 32768
		}
		return n
	}
}

// parseWAVHeader extracts channel count and sample rate from a canonical
// 44-byte WAV header. Missing or invalid RIFF/WAVE/fmt markers degrade to
// the hint rather than failing; out-of-range fields are clamped. The
// payload behind the header is always 16-bit PCM.
func parseWAVHeader(hdr []byte, hint audio.Format) audio.Format {
	if len(hdr) < wavHeaderSize ||
		string(hdr[0:4]) != "RIFF" ||
		string(hdr[8:12]) != "WAVE" ||
		string(hdr[12:16]) != "fmt " {
		return hint.Sanitize()
	}

	f := audio.Format{
		SampleRate: binary.LittleEndian.Uint32(hdr[24:]),
		BitDepth:   16,
		Channels:   binary.LittleEndian.Uint16(hdr[22:]),
	}
	return f.Sanitize()
}

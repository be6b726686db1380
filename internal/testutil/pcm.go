package testutil

import (
	"encoding/binary"
	"math"
)

// PCM16LE encodes normalized samples as 16-bit signed little-endian PCM.
func PCM16LE(samples []float64) []byte {
	out := make([]byte, 2*len(samples))
	for i, v := range samples {
		s := int16(clampUnit(v) * 32767)
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

// PCM24LE encodes normalized samples as 24-bit signed little-endian PCM.
func PCM24LE(samples []float64) []byte {
	out := make([]byte, 3*len(samples))
	for i, v := range samples {
		s := int32(clampUnit(v) * 8388607)
		out[3*i] = byte(s)
		out[3*i+1] = byte(s >> 8)
		out[3*i+2] = byte(s >> 16)
	}
	return out
}

// PCM32LE encodes normalized samples as 32-bit signed little-endian PCM.
func PCM32LE(samples []float64) []byte {
	out := make([]byte, 4*len(samples))
	for i, v := range samples {
		s := int32(clampUnit(v) * 2147483647)
		binary.LittleEndian.PutUint32(out[4*i:], uint32(s))
	}
	return out
}

// PCM24LERaw encodes one raw 24-bit integer sample little-endian,
// for exercising decoder boundary values directly.
func PCM24LERaw(v int32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16)}
}

// WAVHeader builds the 44-byte canonical WAV header for 16-bit PCM.
// Data length is left zero; streaming readers never consult it.
func WAVHeader(sampleRate uint32, channels uint16) []byte {
	h := make([]byte, 44)
	copy(h[0:4], "RIFF")
	copy(h[8:12], "WAVE")
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(h[20:], 1)  // PCM
	binary.LittleEndian.PutUint16(h[22:], channels)
	binary.LittleEndian.PutUint32(h[24:], sampleRate)
	byteRate := sampleRate * uint32(channels) * 2
	binary.LittleEndian.PutUint32(h[28:], byteRate)
	binary.LittleEndian.PutUint16(h[32:], channels*2)
	binary.LittleEndian.PutUint16(h[34:], 16)
	copy(h[36:40], "data")
	return h
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

package testutil

import (
	"encoding/binary"
	"testing"
)

func TestPCM16LERoundValues(t *testing.T) {
	b := PCM16LE([]float64{0, 1, -1})
	if len(b) != 6 {
		t.Fatalf("len = %d, want 6", len(b))
	}
	if v := int16(binary.LittleEndian.Uint16(b[0:])); v != 0 {
		t.Fatalf("sample 0 = %d, want 0", v)
	}
	if v := int16(binary.LittleEndian.Uint16(b[2:])); v != 32767 {
		t.Fatalf("sample 1 = %d, want 32767", v)
	}
	if v := int16(binary.LittleEndian.Uint16(b[4:])); v != -32767 {
		t.Fatalf("sample 2 = %d, want -32767", v)
	}
}

func TestPCM24LERawByteOrder(t *testing.T) {
	b := PCM24LERaw(0x123456)
	want := []byte{0x56, 0x34, 0x12}
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("byte %d = %#x, want %#x", i, b[i], want[i])
		}
	}

	neg := PCM24LERaw(-1)
	for i, v := range neg {
		if v != 0xff {
			t.Fatalf("byte %d of -1 = %#x, want 0xff", i, v)
		}
	}
}

func TestWAVHeaderLayout(t *testing.T) {
	h := WAVHeader(48000, 2)
	if len(h) != 44 {
		t.Fatalf("len = %d, want 44", len(h))
	}
	if string(h[0:4]) != "RIFF" || string(h[8:12]) != "WAVE" || string(h[12:16]) != "fmt " {
		t.Fatal("markers missing")
	}
	if ch := binary.LittleEndian.Uint16(h[22:]); ch != 2 {
		t.Fatalf("channels = %d, want 2", ch)
	}
	if sr := binary.LittleEndian.Uint32(h[24:]); sr != 48000 {
		t.Fatalf("rate = %d, want 48000", sr)
	}
}

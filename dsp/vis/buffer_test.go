package vis

import "testing"

func TestBufferPushDrainOrder(t *testing.T) {
	b := NewBuffer(8)
	b.Push([]float64{1, 2, 3})

	dst := make([]float64, 2)
	if n := b.Drain(dst); n != 2 {
		t.Fatalf("Drain = %d, want 2", n)
	}
	if dst[0] != 1 || dst[1] != 2 {
		t.Fatalf("drained %v, want [1 2]", dst)
	}
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
}

func TestBufferDropsOldestOnOverflow(t *testing.T) {
	b := NewBuffer(4)
	b.Push([]float64{1, 2, 3, 4})
	b.Push([]float64{5, 6})

	if b.Len() != 4 {
		t.Fatalf("Len = %d, want bound 4", b.Len())
	}
	dst := make([]float64, 4)
	b.Drain(dst)
	want := []float64{3, 4, 5, 6}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("drained %v, want %v", dst, want)
		}
	}
}

func TestBufferOversizedChunkKeepsNewest(t *testing.T) {
	b := NewBuffer(3)
	b.Push([]float64{1, 2, 3, 4, 5, 6, 7})

	dst := make([]float64, 3)
	if n := b.Drain(dst); n != 3 {
		t.Fatalf("Drain = %d, want 3", n)
	}
	want := []float64{5, 6, 7}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("drained %v, want %v", dst, want)
		}
	}
}

func TestBufferDrainEmpty(t *testing.T) {
	b := NewBuffer(4)
	dst := make([]float64, 4)
	if n := b.Drain(dst); n != 0 {
		t.Fatalf("Drain on empty = %d, want 0", n)
	}
}

func TestBufferDefaultSize(t *testing.T) {
	if got := NewBuffer(0).Cap(); got != DefaultBufferSize {
		t.Fatalf("Cap = %d, want %d", got, DefaultBufferSize)
	}
}

func TestBufferWrapAround(t *testing.T) {
	b := NewBuffer(4)
	dst := make([]float64, 4)

	for round := 0; round < 5; round++ {
		b.Push([]float64{float64(round), float64(round) + 0.5})
		n := b.Drain(dst[:2])
		if n != 2 {
			t.Fatalf("round %d: Drain = %d, want 2", round, n)
		}
		if dst[0] != float64(round) || dst[1] != float64(round)+0.5 {
			t.Fatalf("round %d: drained %v", round, dst[:2])
		}
	}
}

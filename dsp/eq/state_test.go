package eq

import (
	"sync"
	"testing"
)

func TestStateClampsOnWrite(t *testing.T) {
	s := NewState()

	s.SetBandGain(0, 99)
	if got := s.BandGain(0); got != MaxGainDB {
		t.Fatalf("gain = %v, want clamp to %v", got, MaxGainDB)
	}
	s.SetBandGain(0, -99)
	if got := s.BandGain(0); got != MinGainDB {
		t.Fatalf("gain = %v, want clamp to %v", got, MinGainDB)
	}

	s.SetPreamp(100)
	if got := s.Preamp(); got != MaxGainDB {
		t.Fatalf("preamp = %v, want %v", got, MaxGainDB)
	}

	s.SetBalance(2)
	if got := s.Balance(); got != 1 {
		t.Fatalf("balance = %v, want 1", got)
	}
	s.SetBalance(-2)
	if got := s.Balance(); got != -1 {
		t.Fatalf("balance = %v, want -1", got)
	}
}

func TestStateInvalidBandIgnored(t *testing.T) {
	s := NewState()
	s.SetBandGain(-1, 6)
	s.SetBandGain(NumBands, 6)
	for i := 0; i < NumBands; i++ {
		if g := s.BandGain(i); g != 0 {
			t.Fatalf("band %d = %v after invalid writes, want 0", i, g)
		}
	}
	if g := s.BandGain(-1); g != 0 {
		t.Fatalf("BandGain(-1) = %v, want 0", g)
	}
}

func TestStateSetGainsAndReset(t *testing.T) {
	s := NewState()
	in := [NumBands]float64{1, 2, 3, 4, 5, 6, 7, 8, 20, -20}
	s.SetGains(in)

	got := s.Gains()
	for i := 0; i < 8; i++ {
		if got[i] != in[i] {
			t.Fatalf("band %d = %v, want %v", i, got[i], in[i])
		}
	}
	if got[8] != MaxGainDB || got[9] != MinGainDB {
		t.Fatalf("out-of-range members not clamped: %v", got)
	}

	s.ResetBands()
	if s.Gains() != ([NumBands]float64{}) {
		t.Fatalf("ResetBands left %v", s.Gains())
	}
}

func TestStateDefaults(t *testing.T) {
	s := NewState()
	if s.Enabled() {
		t.Fatal("new state should be disabled")
	}
	if s.Preamp() != 0 || s.Balance() != 0 {
		t.Fatalf("preamp=%v balance=%v, want zeros", s.Preamp(), s.Balance())
	}
}

func TestStateConcurrentAccess(t *testing.T) {
	// One writer per field domain plus a reader; the race detector is the
	// real assertion here.
	s := NewState()
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.SetBandGain(i%NumBands, float64(i%24)-12)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.SetBalance(float64(i%200)/100 - 1)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.SetEnabled(i%2 == 0)
			s.SetPreamp(float64(i % 12))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			g := s.Gains()
			for _, v := range g {
				if v < MinGainDB || v > MaxGainDB {
					t.Errorf("torn read: %v", g)
					return
				}
			}
			_ = s.Balance()
			_ = s.Preamp()
			_ = s.Enabled()
		}
	}()

	wg.Wait()
}

func TestLoadPreset(t *testing.T) {
	s := NewState()
	if !s.LoadPreset("rock") {
		t.Fatal("rock preset not found")
	}
	if g := s.Gains(); g[0] != 5 || g[9] != 5 {
		t.Fatalf("rock gains = %v", g)
	}

	if s.LoadPreset("nosuch") {
		t.Fatal("unknown preset accepted")
	}
	if g := s.Gains(); g[0] != 5 {
		t.Fatal("unknown preset mutated state")
	}

	for _, name := range PresetNames() {
		if _, ok := PresetGains(name); !ok {
			t.Fatalf("preset %q listed but missing", name)
		}
	}
}

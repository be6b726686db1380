package eq

import (
	"math"
	"sync"
	"sync/atomic"
)

// NumBands is the number of equalizer bands.
const NumBands = 10

// CenterFrequencies are the fixed band centers in Hz.
var CenterFrequencies = [NumBands]float64{
	32, 64, 125, 250, 500, 1000, 2000, 4000, 8000, 16000,
}

// Gain-like control ranges. Writes are clamped to these, reads never are.
const (
	MinGainDB  = -12.0
	MaxGainDB  = 12.0
	MinBalance = -1.0
	MaxBalance = 1.0
)

// atomicFloat64 stores a float64 through its IEEE-754 bits.
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}

func (a *atomicFloat64) Store(v float64) {
	a.bits.Store(math.Float64bits(v))
}

// State is the equalizer control surface, shared between a UI writer and
// the DSP reader. The gain vector is guarded by its own lock so that a
// reader always observes a coherent array; the scalar fields are lock-free
// atomics. Slightly stale reads are fine, torn writes are not.
type State struct {
	gainMu sync.RWMutex
	gains  [NumBands]float64

	enabled atomic.Bool
	preamp  atomicFloat64
	balance atomicFloat64
}

// NewState returns a flat, disabled control surface: all gains 0 dB,
// preamp 0 dB, balance centered.
func NewState() *State {
	return &State{}
}

func clampGain(dB float64) float64 {
	return math.Max(MinGainDB, math.Min(MaxGainDB, dB))
}

// SetBandGain sets one band's gain in dB, clamped to [-12, +12].
// Out-of-range band indices are ignored.
func (s *State) SetBandGain(band int, dB float64) {
	if band < 0 || band >= NumBands {
		return
	}
	s.gainMu.Lock()
	s.gains[band] = clampGain(dB)
	s.gainMu.Unlock()
}

// BandGain returns one band's gain in dB, or 0 for an invalid index.
func (s *State) BandGain(band int) float64 {
	if band < 0 || band >= NumBands {
		return 0
	}
	s.gainMu.RLock()
	defer s.gainMu.RUnlock()
	return s.gains[band]
}

// SetGains replaces all ten band gains at once, each clamped.
func (s *State) SetGains(gains [NumBands]float64) {
	s.gainMu.Lock()
	for i, g := range gains {
		s.gains[i] = clampGain(g)
	}
	s.gainMu.Unlock()
}

// Gains returns a coherent copy of all ten band gains.
func (s *State) Gains() [NumBands]float64 {
	s.gainMu.RLock()
	defer s.gainMu.RUnlock()
	return s.gains
}

// ResetBands returns every band to 0 dB.
func (s *State) ResetBands() {
	s.gainMu.Lock()
	s.gains = [NumBands]float64{}
	s.gainMu.Unlock()
}

// SetEnabled switches the equalizer on or off. The processing side
// crossfades to the new state rather than switching instantly.
func (s *State) SetEnabled(enabled bool) {
	s.enabled.Store(enabled)
}

// Enabled reports whether the equalizer is switched on.
func (s *State) Enabled() bool {
	return s.enabled.Load()
}

// SetPreamp sets the user preamp in dB, clamped to [-12, +12].
func (s *State) SetPreamp(dB float64) {
	s.preamp.Store(clampGain(dB))
}

// Preamp returns the user preamp in dB.
func (s *State) Preamp() float64 {
	return s.preamp.Load()
}

// SetBalance sets the stereo balance, clamped to [-1, +1]. Positive
// values attenuate the left channel, negative the right; magnitude 1
// fully mutes the opposite channel.
func (s *State) SetBalance(balance float64) {
	s.balance.Store(math.Max(MinBalance, math.Min(MaxBalance, balance)))
}

// Balance returns the stereo balance.
func (s *State) Balance() float64 {
	return s.balance.Load()
}

package eq

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"
)

// BandQ is the fixed quality factor of every peaking band, roughly one
// octave wide at ten log-spaced bands. A product-tuning constant.
const BandQ = 1.41

// gainEpsilon is the smallest band-gain change (dB) that triggers a
// coefficient recompute.
const gainEpsilon = 0.01

// crossfadeSeconds is the enable/disable ramp length.
const crossfadeSeconds = 0.010

// Equalizer owns a per-channel bank of ten peaking biquads plus the
// preamp, limiter and crossfade logic. It is driven by exactly one
// goroutine; all cross-thread coordination happens through the State.
type Equalizer struct {
	state      *State
	sampleRate float64
	channels   int

	sections [][NumBands]biquad.Section
	applied  [NumBands]float64 // last gains coefficients were computed for
	headroom float64           // automatic duck by the loudest boost, linear

	mix     float64 // crossfade position, 0 = dry, 1 = wet
	mixStep float64 // per-sample ramp increment
}

// New returns an Equalizer reading its settings from state, built for the
// given sample rate and interleaved channel count. All filters start at
// the state's current gains (0 dB on a fresh State) with zeroed history.
// The crossfade starts settled at the state's current enable position.
func New(state *State, sampleRate float64, channels int) *Equalizer {
	e := &Equalizer{state: state}
	e.Rebuild(sampleRate, channels)
	if state.Enabled() {
		e.mix = 1
	}
	return e
}

// Rebuild reconstructs the filter bank for a new sample rate or channel
// count, as required after a mid-stream format change. Crossfade position
// survives so a format swap does not retrigger the enable ramp.
func (e *Equalizer) Rebuild(sampleRate float64, channels int) {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	if channels < 1 {
		channels = 1
	}

	e.sampleRate = sampleRate
	e.channels = channels
	// The ramp advances once per interleaved sample; scale by the
	// channel count so it spans ~10 ms of wall-clock signal.
	e.mixStep = 1 / (crossfadeSeconds * sampleRate * float64(channels))
	e.sections = make([][NumBands]biquad.Section, channels)

	e.updateCoefficients(e.state.Gains())
}

// ResetFilters clears every filter's delay line while keeping its
// last-computed coefficients. Call after a stream discontinuity (pipe
// reopen, format change) so stale transient energy is not carried into
// the fresh signal.
func (e *Equalizer) ResetFilters() {
	for ch := range e.sections {
		for b := range e.sections[ch] {
			e.sections[ch][b].Reset()
		}
	}
}

// SampleRate returns the rate the filter bank is currently built for.
func (e *Equalizer) SampleRate() float64 { return e.sampleRate }

// Channels returns the interleaved channel count the bank is built for.
func (e *Equalizer) Channels() int { return e.channels }

// updateCoefficients redesigns all ten bands at the given gains and
// refreshes the automatic headroom duck. O(bands), not O(samples).
func (e *Equalizer) updateCoefficients(gains [NumBands]float64) {
	maxBoost := 0.0
	for b, g := range gains {
		c := design.Peak(CenterFrequencies[b], g, BandQ, e.sampleRate)
		for ch := range e.sections {
			e.sections[ch][b].Coefficients = c
		}
		if g > maxBoost {
			maxBoost = g
		}
	}
	e.applied = gains
	e.headroom = math.Pow(10, -maxBoost/20)
}

func gainsChanged(a, b [NumBands]float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > gainEpsilon {
			return true
		}
	}
	return false
}

// Process transforms one interleaved float buffer in place, reflecting
// the latest control-surface values. len(buf) should be a multiple of the
// channel count; trailing samples of a ragged buffer are still processed,
// assigned to channels in interleave order.
func (e *Equalizer) Process(buf []float64) {
	target := 0.0
	if e.state.Enabled() {
		target = 1
	}

	// Fully faded out and staying out: skip the filter math entirely.
	// Filter state is deliberately not advanced while bypassed.
	if e.mix == 0 && target == 0 {
		return
	}

	if gains := e.state.Gains(); gainsChanged(gains, e.applied) {
		e.updateCoefficients(gains)
	}

	preamp := math.Pow(10, e.state.Preamp()/20)
	balance := e.state.Balance()
	leftGain, rightGain := 1.0, 1.0
	if balance > 0 {
		leftGain = 1 - balance
	} else if balance < 0 {
		rightGain = 1 + balance
	}

	for i := range buf {
		ch := i % e.channels
		dry := buf[i]

		wet := dry * e.headroom
		secs := &e.sections[ch]
		for b := range secs {
			wet = secs[b].ProcessSample(wet)
		}
		wet = Limit(wet)
		wet *= preamp
		if e.channels >= 2 {
			if ch%2 == 0 {
				wet *= leftGain
			} else {
				wet *= rightGain
			}
		}

		if e.mix < target {
			e.mix = math.Min(e.mix+e.mixStep, 1)
		} else if e.mix > target {
			e.mix = math.Max(e.mix-e.mixStep, 0)
		}

		buf[i] = dry + (wet-dry)*e.mix
	}
}

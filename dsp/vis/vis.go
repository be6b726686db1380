package vis

import (
	"math"
	"math/cmplx"
	"time"

	"github.com/cwbudde/algo-dsp/dsp/window"
	algofft "github.com/cwbudde/algo-fft"
)

// FFTSize is the analysis window length in samples. The analyzer needs
// one full window of history before it produces non-zero bars.
const FFTSize = 4096

// historySize is the mono sample history the analyzer keeps.
const historySize = 8192

// Bar mapping and animation tuning.
const (
	minBarFreq = 40.0
	maxBarFreq = 12000.0

	pinkBoostMax = 3.0 // high-band correction factor at the last bar

	agcDecay = 0.995
	agcFloor = 0.1

	shapeExponent   = 0.85
	monstercatDecay = 0.80
	silenceGate     = 0.005

	riseRate     = 15.0 // 1/s exponential easing toward a higher target
	gravity      = 3.0  // units/s^2 fall acceleration
	maxFrameTime = 100 * time.Millisecond
)

// Analyzer turns a rolling mono sample history into smoothed bar heights
// in [0, 1]. It carries display and velocity state across calls so the
// animation is frame-rate independent; Bars is deterministic given the
// sample history, the elapsed wall-clock time and that carried state,
// but deliberately not pure across calls.
type Analyzer struct {
	src        *Buffer
	sampleRate float64

	history  [historySize]float64
	histPos  int
	histFill int

	win    []float64
	plan   *algofft.Plan[complex128]
	fftIn  []complex128
	fftOut []complex128
	mags   []float64
	drain  []float64

	freqs   []float64 // bar center frequencies
	targets []float64
	bars    []float64 // displayed values
	vels    []float64 // fall velocities

	rollMax  float64
	lastCall time.Time
	now      func() time.Time
}

// New returns an Analyzer reading mono samples from src at the given
// sample rate. Bar state lives as long as the Analyzer; it is reset only
// by constructing a new one, never by format changes.
func New(src *Buffer, sampleRate float64) (*Analyzer, error) {
	plan, err := algofft.NewPlan64(FFTSize)
	if err != nil {
		return nil, err
	}

	if sampleRate <= 0 {
		sampleRate = 44100
	}

	return &Analyzer{
		src:        src,
		sampleRate: sampleRate,
		win:        window.Generate(window.TypeHann, FFTSize, window.WithPeriodic()),
		plan:       plan,
		fftIn:      make([]complex128, FFTSize),
		fftOut:     make([]complex128, FFTSize),
		mags:       make([]float64, FFTSize/2+1),
		drain:      make([]float64, 2048),
		rollMax:    agcFloor,
		now:        time.Now,
	}, nil
}

// SetSampleRate updates the rate used for the bin-to-frequency mapping
// after an upstream format change. Bar animation state is kept.
func (a *Analyzer) SetSampleRate(sampleRate float64) {
	if sampleRate > 0 {
		a.sampleRate = sampleRate
	}
}

// Bars drains newly played samples and returns count bar heights in
// [0, 1]. With less than one FFT window of history it returns zeros.
func (a *Analyzer) Bars(count int) []float64 {
	if count < 1 {
		return nil
	}

	a.ingest()
	dt := a.frameDelta()
	a.resize(count)

	out := make([]float64, count)

	if a.histFill < FFTSize {
		copy(out, a.bars)
		return out
	}

	a.analyze()
	a.mapBars()
	a.animate(dt)

	copy(out, a.bars)
	return out
}

// ingest moves queued samples from the handoff buffer into the history ring.
func (a *Analyzer) ingest() {
	if a.src == nil {
		return
	}
	for {
		n := a.src.Drain(a.drain)
		if n == 0 {
			return
		}
		for _, v := range a.drain[:n] {
			a.history[a.histPos] = v
			a.histPos++
			if a.histPos == historySize {
				a.histPos = 0
			}
		}
		if a.histFill < historySize {
			a.histFill += n
			if a.histFill > historySize {
				a.histFill = historySize
			}
		}
	}
}

// frameDelta returns the elapsed wall-clock seconds since the previous
// call, clamped so a pause never causes a catch-up jump.
func (a *Analyzer) frameDelta() float64 {
	t := a.now()
	if a.lastCall.IsZero() {
		a.lastCall = t
		return maxFrameTime.Seconds()
	}
	dt := t.Sub(a.lastCall)
	a.lastCall = t
	if dt < 0 {
		dt = 0
	}
	if dt > maxFrameTime {
		dt = maxFrameTime
	}
	return dt.Seconds()
}

// resize lays out bar centers for a new bar count. Changing the count
// reconstructs the bar state; the same count keeps it.
func (a *Analyzer) resize(count int) {
	if count == len(a.bars) {
		return
	}

	a.freqs = make([]float64, count)
	a.targets = make([]float64, count)
	a.bars = make([]float64, count)
	a.vels = make([]float64, count)

	if count == 1 {
		a.freqs[0] = math.Sqrt(minBarFreq * maxBarFreq)
		return
	}
	ratio := maxBarFreq / minBarFreq
	for i := range a.freqs {
		a.freqs[i] = minBarFreq * math.Pow(ratio, float64(i)/float64(count-1))
	}
}

// analyze windows the most recent FFT block in chronological order and
// fills the magnitude spectrum, scaled by 1/sqrt(N).
func (a *Analyzer) analyze() {
	read := a.histPos - FFTSize
	if read < 0 {
		read += historySize
	}
	for i := 0; i < FFTSize; i++ {
		a.fftIn[i] = complex(a.history[read]*a.win[i], 0)
		read++
		if read == historySize {
			read = 0
		}
	}

	if err := a.plan.Forward(a.fftOut, a.fftIn); err != nil {
		return
	}

	scale := 1 / math.Sqrt(FFTSize)
	for k := range a.mags {
		a.mags[k] = cmplx.Abs(a.fftOut[k]) * scale
	}
}

// mapBars gathers Gaussian-weighted bin energy per bar and applies the
// pink-noise correction, AGC and perceptual shaping into a.targets.
func (a *Analyzer) mapBars() {
	binHz := a.sampleRate / FFTSize
	count := len(a.targets)

	// AGC rolling maximum decays every frame, floored so silence does
	// not blow up the scale.
	a.rollMax *= agcDecay
	if a.rollMax < agcFloor {
		a.rollMax = agcFloor
	}

	for i := range a.targets {
		fc := a.freqs[i]

		// Gather window: the larger of the spacing to the previous bar
		// (next bar for the first) or one FFT bin. Gaussian weighting
		// with the three-sigma cutoff on the window edge avoids hard
		// bin boundaries where bars are denser than bins.
		var spacing float64
		if i > 0 {
			spacing = fc - a.freqs[i-1]
		} else if count > 1 {
			spacing = a.freqs[1] - fc
		} else {
			spacing = binHz
		}
		width := math.Max(spacing, binHz)
		sigma := width / 3

		lo := int((fc - width) / binHz)
		hi := int(math.Ceil((fc + width) / binHz))
		if lo < 1 {
			lo = 1
		}
		if hi > len(a.mags)-1 {
			hi = len(a.mags) - 1
		}

		var sum, wsum float64
		for k := lo; k <= hi; k++ {
			d := (float64(k)*binHz - fc) / sigma
			w := math.Exp(-0.5 * d * d)
			sum += a.mags[k] * w
			wsum += w
		}
		v := 0.0
		if wsum > 0 {
			v = sum / wsum
		}

		// Pink-noise correction: music rolls off toward high
		// frequencies; boost linearly with bar index up to 3x.
		if count > 1 {
			v *= 1 + (pinkBoostMax-1)*float64(i)/float64(count-1)
		}

		if v > a.rollMax {
			a.rollMax = v
		}
		a.targets[i] = v
	}

	for i, v := range a.targets {
		norm := v / a.rollMax
		if norm > 1 {
			norm = 1
		}
		a.targets[i] = math.Pow(norm, shapeExponent)
	}

	// Lateral smoothing: every bar holds at least the decayed value of
	// its neighbors in both directions, turning isolated spikes into
	// sloped peaks.
	for i := 1; i < count; i++ {
		if floor := a.targets[i-1] * monstercatDecay; a.targets[i] < floor {
			a.targets[i] = floor
		}
	}
	for i := count - 2; i >= 0; i-- {
		if floor := a.targets[i+1] * monstercatDecay; a.targets[i] < floor {
			a.targets[i] = floor
		}
	}

	// Silence gate against idle jitter.
	for i, v := range a.targets {
		if v < silenceGate {
			a.targets[i] = 0
		}
	}
}

// animate eases rising bars toward their targets and drops falling bars
// under gravity with accumulated velocity.
func (a *Analyzer) animate(dt float64) {
	rise := 1 - math.Exp(-riseRate*dt)
	for i := range a.bars {
		target := a.targets[i]
		switch {
		case target >= a.bars[i]:
			a.bars[i] += (target - a.bars[i]) * rise
			a.vels[i] = 0
		default:
			a.vels[i] += gravity * dt
			a.bars[i] -= a.vels[i] * dt
			if a.bars[i] <= target {
				a.bars[i] = target
				a.vels[i] = 0
			}
			if a.bars[i] < 0 {
				a.bars[i] = 0
			}
		}
		if a.bars[i] > 1 {
			a.bars[i] = 1
		}
	}
}

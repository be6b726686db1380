// Package vis derives a perceptually tuned bar-spectrum visualization
// from the signal the output device is playing.
//
// [Buffer] is the handoff queue: the output callback pushes downmixed
// mono samples into it at audio cadence, the analyzer drains it at UI
// frame cadence. [Analyzer] windows the most recent FFT block, maps the
// magnitude spectrum onto logarithmically spaced bars with Gaussian bin
// weighting, applies pink-noise correction and automatic gain control,
// and animates the bars with rise easing and gravity fall.
package vis

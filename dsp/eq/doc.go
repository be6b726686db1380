// Package eq implements a live-adjustable 10-band parametric equalizer.
//
// [State] is the control surface: a concurrently shared set of band gains,
// enable flag, preamp and stereo balance. Each logical field has its own
// synchronization domain so a UI thread writing balance never blocks the
// DSP thread reading gains. All gain-like inputs are clamped on write.
//
// [Equalizer] owns the per-channel biquad filter bank and consumes a State.
// It transforms interleaved float buffers in place: automatic headroom
// ducking, a serial cascade of ten peaking filters, a soft-knee limiter,
// user preamp and balance, blended with the dry signal through a ~10 ms
// crossfade so enabling, disabling or re-tuning the EQ never pops.
package eq

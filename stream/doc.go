// Package stream runs the real-time ingestion pipeline: a source reader
// pulls PCM from a network stream or a named pipe, decodes and equalizes
// it, and hands it through a bounded ring buffer to the hardware output
// callback, which applies fade and volume and feeds the visualizer tap.
//
// A [Pipeline] owns one reader goroutine, the shared running flag, the
// ring buffer and the equalizer. Stopping is cooperative: every blocking
// point in the reader re-checks the running flag, so Stop returns within
// one backoff interval.
package stream

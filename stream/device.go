package stream

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/cwbudde/algo-stream/audio"
)

// framesPerBuffer is the output block size requested from the driver.
const framesPerBuffer = 1024

// Device abstracts the hardware output stream so the pipeline can be
// exercised without an audio backend. Open prepares an output stream for
// the format; the driver then pulls interleaved float32 blocks through
// fill at its own cadence between Start and Stop. Open on an already-open
// device replaces the stream, as required after a format change.
type Device interface {
	Open(format audio.Format, fill func(out []float32)) error
	Start() error
	Stop() error
	Close() error
}

// PortAudioDevice plays through the default PortAudio output device.
// The zero value is ready to use; methods are not safe for concurrent
// use, matching the pipeline's single-owner access pattern.
type PortAudioDevice struct {
	stream *portaudio.Stream
	inited bool
}

func (d *PortAudioDevice) Open(format audio.Format, fill func(out []float32)) error {
	if !d.inited {
		if err := portaudio.Initialize(); err != nil {
			return fmt.Errorf("initialize portaudio: %w", err)
		}
		d.inited = true
	}
	if d.stream != nil {
		d.stream.Close()
		d.stream = nil
	}

	s, err := portaudio.OpenDefaultStream(
		0, int(format.Channels), float64(format.SampleRate), framesPerBuffer, fill)
	if err != nil {
		return fmt.Errorf("open output stream %v: %w", format, err)
	}
	d.stream = s
	return nil
}

func (d *PortAudioDevice) Start() error {
	if d.stream == nil {
		return ErrDeviceClosed
	}
	return d.stream.Start()
}

func (d *PortAudioDevice) Stop() error {
	if d.stream == nil {
		return nil
	}
	return d.stream.Stop()
}

func (d *PortAudioDevice) Close() error {
	var first error
	if d.stream != nil {
		first = d.stream.Close()
		d.stream = nil
	}
	if d.inited {
		if err := portaudio.Terminate(); err != nil && first == nil {
			first = err
		}
		d.inited = false
	}
	return first
}

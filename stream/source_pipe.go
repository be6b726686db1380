package stream

import (
	"errors"
	"io"
	"os"
	"syscall"
	"time"
)

// runPipe is the named-pipe source reader. The pipe carries raw PCM with
// no in-band framing, so the authoritative format comes from the prober.
// A vanished pipe is retried with fixed backoff; after any stream end the
// filter history is cleared so the next open starts transient-free.
func (p *Pipeline) runPipe() {
	for p.running.Load() {
		f, err := os.OpenFile(p.source.Path, os.O_RDONLY|syscall.O_NONBLOCK, 0)
		if err != nil {
			p.log.Debug().Err(err).Str("path", p.source.Path).Msg("pipe open failed")
			time.Sleep(reconnectDelay)
			continue
		}
		p.streamPipe(f)
		f.Close()
		p.equalizer.ResetFilters()
		if p.running.Load() {
			time.Sleep(reconnectDelay)
		}
	}
}

// streamPipe decodes the pipe payload per the current format, polling the
// prober at a fixed interval for format changes. Non-blocking opens make
// reads pollable, so a read deadline keeps the loop responsive to stop
// requests; EOF means the writer went away and triggers a reopen.
func (p *Pipeline) streamPipe(f *os.File) {
	chunk := make([]byte, readChunkBytes)
	floats := make([]float64, readChunkBytes/2)
	rem := 0
	var lastProbe time.Time

	for p.running.Load() {
		if p.prober != nil && time.Since(lastProbe) >= probeInterval {
			lastProbe = time.Now()
			if nf, ok := p.prober.Probe(); ok && nf.Sanitize() != p.Format() {
				// Any partial frame predates the format switch; its
				// layout no longer applies.
				rem = 0
				p.applyFormat(nf)
			}
		}

		f.SetReadDeadline(time.Now().Add(readTimeout))
		n, err := f.Read(chunk[rem:])
		if n > 0 {
			rem = p.decodeChunk(chunk, rem+n, floats)
		}
		if err != nil {
			switch {
			case errors.Is(err, os.ErrDeadlineExceeded):
				continue
			case errors.Is(err, syscall.EAGAIN):
				time.Sleep(10 * time.Millisecond)
				continue
			case errors.Is(err, io.EOF):
				return
			default:
				p.log.Debug().Err(err).Msg("pipe read failed")
				return
			}
		}
	}
}

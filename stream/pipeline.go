package stream

import (
	"fmt"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-stream/audio"
	"github.com/cwbudde/algo-stream/dsp/eq"
	"github.com/cwbudde/algo-stream/dsp/vis"
)

// Timing constants for the reader loop.
const (
	readChunkBytes    = 4096
	dialTimeout       = 5 * time.Second
	readTimeout       = 500 * time.Millisecond
	reconnectDelay    = 500 * time.Millisecond
	backpressureDelay = 5 * time.Millisecond
	probeInterval     = 2 * time.Second
)

// Config assembles a Pipeline. The zero value of every field has a
// usable default.
type Config struct {
	// Source selects the transport. The zero value is the default
	// network stream.
	Source audio.Source

	// Format is the initial format hint used until the transport
	// reveals the real one. Zero value means CD-quality stereo.
	Format audio.Format

	// EQ is the shared control surface. Nil allocates a fresh one with
	// the equalizer disabled and all gains flat.
	EQ *eq.State

	// Device is the hardware output. Nil selects PortAudio.
	Device Device

	// Prober supplies the authoritative format for the pipe source,
	// which carries no in-band framing. Nil selects a TCPProber at the
	// default status endpoint. Ignored for the network source.
	Prober FormatProber

	// Logger receives reader lifecycle events. The zero value discards.
	Logger zerolog.Logger
}

// Pipeline owns one source-reader goroutine, the ring buffer, the
// equalizer and the output device. Start, Stop and the setters are for
// the control thread; the reader goroutine and the driver callback never
// call them.
type Pipeline struct {
	log     zerolog.Logger
	source  audio.Source
	ring    *Ring
	eqState *eq.State
	device  Device
	prober  FormatProber

	running atomic.Bool
	volume  atomic.Int64
	visTap  atomic.Pointer[vis.Buffer]

	formatMu sync.Mutex
	format   audio.Format

	// Reader-goroutine state, untouched while stopped.
	equalizer *eq.Equalizer
	done      chan struct{}

	// Callback-thread state.
	fade     float64
	popBuf   []float64
	monoBuf  []float64
	channels int
}

// New returns a stopped Pipeline for the given configuration.
func New(cfg Config) *Pipeline {
	capacity := NetworkRingCapacity
	if cfg.Source.Kind == audio.SourcePipe {
		capacity = PipeHiResRingCapacity
	}

	state := cfg.EQ
	if state == nil {
		state = &eq.State{}
	}
	device := cfg.Device
	if device == nil {
		device = &PortAudioDevice{}
	}
	prober := cfg.Prober
	if prober == nil && cfg.Source.Kind == audio.SourcePipe {
		prober = NewTCPProber("")
	}

	source := cfg.Source
	if source.Kind == audio.SourcePipe {
		source = audio.PipeSource(source.Path)
	} else {
		source = audio.HTTPSource(source.Host, source.Port)
	}

	p := &Pipeline{
		log:     cfg.Logger,
		source:  source,
		ring:    NewRing(capacity),
		eqState: state,
		device:  device,
		prober:  prober,
		format:  cfg.Format.Sanitize(),
	}
	p.volume.Store(100)
	return p
}

// Start opens the output device for the current format and launches the
// reader goroutine. Device failure is the only fatal start error;
// transport failures are retried inside the reader.
func (p *Pipeline) Start() error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	f := p.Format()
	p.equalizer = eq.New(p.eqState, float64(f.SampleRate), int(f.Channels))
	p.channels = int(f.Channels)
	p.fade = 0

	if err := p.device.Open(f, p.fill); err != nil {
		p.running.Store(false)
		return fmt.Errorf("open output device: %w", err)
	}
	if err := p.device.Start(); err != nil {
		p.device.Close()
		p.running.Store(false)
		return fmt.Errorf("start output device: %w", err)
	}

	p.done = make(chan struct{})
	go p.run()

	p.log.Info().Stringer("format", f).Msg("pipeline started")
	return nil
}

// Stop clears the running flag, joins the reader goroutine and releases
// the device. The reader observes the flag within one backoff interval;
// Stop blocks until it has returned. Stopping a stopped pipeline is a
// no-op.
func (p *Pipeline) Stop() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	<-p.done

	if err := p.device.Stop(); err != nil {
		p.log.Debug().Err(err).Msg("device stop failed")
	}
	if err := p.device.Close(); err != nil {
		p.log.Debug().Err(err).Msg("device close failed")
	}
	p.log.Info().Msg("pipeline stopped")
}

// Running reports whether the reader goroutine is live.
func (p *Pipeline) Running() bool { return p.running.Load() }

// SetVolume sets the output volume, clamped to 0-100. The callback maps
// it through a cubic taper, so the scale is perceptual, not linear.
func (p *Pipeline) SetVolume(percent int) {
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}
	p.volume.Store(int64(percent))
}

// Volume returns the current 0-100 volume.
func (p *Pipeline) Volume() int { return int(p.volume.Load()) }

// AttachVisualizer routes a downmixed copy of the output signal into buf.
// Passing nil detaches. Safe to call while running.
func (p *Pipeline) AttachVisualizer(buf *vis.Buffer) {
	p.visTap.Store(buf)
}

// EQ returns the shared control surface.
func (p *Pipeline) EQ() *eq.State { return p.eqState }

// Ring exposes the sample ring for inspection of its counters.
func (p *Pipeline) Ring() *Ring { return p.ring }

// Format returns a snapshot of the current stream format.
func (p *Pipeline) Format() audio.Format {
	p.formatMu.Lock()
	defer p.formatMu.Unlock()
	return p.format
}

func (p *Pipeline) setFormat(f audio.Format) {
	p.formatMu.Lock()
	p.format = f
	p.formatMu.Unlock()
}

func (p *Pipeline) run() {
	defer close(p.done)
	switch p.source.Kind {
	case audio.SourcePipe:
		p.runPipe()
	default:
		p.runHTTP()
	}
}

// process equalizes one decoded chunk in place and pushes it into the
// ring, waiting out backpressure. The running flag is re-checked every
// wait so a stop request is never outlived by a full ring.
func (p *Pipeline) process(samples []float64) {
	if len(samples) == 0 {
		return
	}
	p.equalizer.Process(samples)
	for p.running.Load() {
		if p.ring.TryPush(samples) {
			return
		}
		time.Sleep(backpressureDelay)
	}
}

// applyFormat installs a new stream format: it rebuilds the filter bank,
// clears filter history and, when the device-facing layout changed,
// reopens the output stream. Called only from the reader goroutine.
func (p *Pipeline) applyFormat(f audio.Format) {
	f = f.Sanitize()
	old := p.Format()
	if f == old {
		return
	}
	p.setFormat(f)
	p.log.Info().Stringer("from", old).Stringer("to", f).Msg("stream format changed")

	p.equalizer.Rebuild(float64(f.SampleRate), int(f.Channels))
	p.equalizer.ResetFilters()

	if f.SampleRate == old.SampleRate && f.Channels == old.Channels {
		return
	}
	if err := p.device.Stop(); err != nil {
		p.log.Debug().Err(err).Msg("device stop before reopen failed")
	}
	p.channels = int(f.Channels)
	if err := p.device.Open(f, p.fill); err != nil {
		p.log.Error().Err(err).Msg("device reopen failed")
		return
	}
	if err := p.device.Start(); err != nil {
		p.log.Error().Err(err).Msg("device restart failed")
	}
}

func (p *Pipeline) httpAddr() string {
	return net.JoinHostPort(p.source.Host, strconv.Itoa(p.source.Port))
}

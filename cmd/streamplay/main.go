// Command streamplay plays a PCM stream through the default output
// device with the live equalizer and a terminal spectrum display.
//
// Usage:
//
//	streamplay [flags]
//
// Examples:
//
//	streamplay
//	streamplay -host 192.168.1.10 -port 8000 -volume 80
//	streamplay -pipe /tmp/mpd.fifo -status 127.0.0.1:6600
//	streamplay -preset rock -bars 32
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-stream/audio"
	"github.com/cwbudde/algo-stream/dsp/eq"
	"github.com/cwbudde/algo-stream/dsp/vis"
	"github.com/cwbudde/algo-stream/stream"
)

func main() {
	host := flag.String("host", audio.DefaultHTTPHost, "stream host")
	port := flag.Int("port", audio.DefaultHTTPPort, "stream port")
	pipe := flag.String("pipe", "", "read raw PCM from this named pipe instead of the network")
	status := flag.String("status", audio.DefaultProberAddr, "format status endpoint (pipe source)")
	volume := flag.Int("volume", 100, "output volume 0-100")
	preset := flag.String("preset", "", "enable the equalizer with this preset (see -list-presets)")
	bars := flag.Int("bars", 24, "spectrum bar count, 0 disables the display")
	verbose := flag.Bool("v", false, "verbose logging")
	listPresets := flag.Bool("list-presets", false, "list equalizer presets and exit")
	flag.Parse()

	if *listPresets {
		fmt.Println(strings.Join(eq.PresetNames(), "\n"))
		return
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	source := audio.HTTPSource(*host, *port)
	if *pipe != "" {
		source = audio.PipeSource(*pipe)
	}

	state := &eq.State{}
	if *preset != "" {
		if !state.LoadPreset(*preset) {
			fmt.Fprintf(os.Stderr, "unknown preset %q, try -list-presets\n", *preset)
			os.Exit(1)
		}
		state.SetEnabled(true)
	}

	p := stream.New(stream.Config{
		Source: source,
		EQ:     state,
		Prober: stream.NewTCPProber(*status),
		Logger: log,
	})
	p.SetVolume(*volume)

	var analyzer *vis.Analyzer
	if *bars > 0 {
		tap := vis.NewBuffer(0)
		a, err := vis.New(tap, float64(p.Format().SampleRate))
		if err != nil {
			log.Fatal().Err(err).Msg("spectrum analyzer setup failed")
		}
		analyzer = a
		p.AttachVisualizer(tap)
	}

	if err := p.Start(); err != nil {
		log.Fatal().Err(err).Msg("pipeline start failed")
	}
	defer p.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-sig:
			return
		case <-ticker.C:
			if analyzer == nil {
				continue
			}
			analyzer.SetSampleRate(float64(p.Format().SampleRate))
			drawBars(analyzer.Bars(*bars))
		}
	}
}

// drawBars renders one spectrum frame as a single carriage-returned line.
func drawBars(bars []float64) {
	glyphs := []rune(" ▁▂▃▄▅▆▇█")
	var b strings.Builder
	b.WriteByte('\r')
	for _, v := range bars {
		idx := int(v * float64(len(glyphs)-1))
		if idx >= len(glyphs) {
			idx = len(glyphs) - 1
		}
		b.WriteRune(glyphs[idx])
	}
	os.Stdout.WriteString(b.String())
}

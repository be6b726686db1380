// Package audio defines the stream format model shared by the source
// readers, the equalizer and the output device.
//
// A [Format] is an immutable snapshot of the upstream PCM layout. When the
// upstream changes mid-stream a new snapshot replaces the old one wholesale;
// a Format value is never mutated in place.
package audio

import (
	"fmt"
	"strings"
)

// Environment defaults for the two transports and the format status endpoint.
const (
	DefaultHTTPHost   = "127.0.0.1"
	DefaultHTTPPort   = 8000
	DefaultPipePath   = "/tmp/mpd.fifo"
	DefaultProberAddr = "127.0.0.1:6600"
)

// Sanity bounds applied to externally supplied format fields.
const (
	MinSampleRate = 8000
	MaxSampleRate = 192000
	MinChannels   = 1
	MaxChannels   = 8
)

// Format describes the PCM layout of a stream.
type Format struct {
	SampleRate uint32
	BitDepth   uint16 // 16, 24 or 32
	Channels   uint16
}

// DefaultFormat returns CD-quality stereo, the fallback whenever the
// upstream format is unknown or malformed.
func DefaultFormat() Format {
	return Format{SampleRate: 44100, BitDepth: 16, Channels: 2}
}

// IsHiRes reports whether the format exceeds 44.1 kHz / 16-bit.
func (f Format) IsHiRes() bool {
	return f.SampleRate > 44100 || f.BitDepth > 16
}

// BytesPerSample returns the width of one sample in bytes.
func (f Format) BytesPerSample() int {
	return int(f.BitDepth) / 8
}

// FrameBytes returns the size of one interleaved frame in bytes.
func (f Format) FrameBytes() int {
	return int(f.Channels) * f.BytesPerSample()
}

// Sanitize clamps all fields to their sane ranges, substituting defaults
// for values outside them. Malformed input degrades, it never errors.
func (f Format) Sanitize() Format {
	if f.SampleRate < MinSampleRate || f.SampleRate > MaxSampleRate {
		f.SampleRate = 44100
	}
	if f.Channels < MinChannels || f.Channels > MaxChannels {
		f.Channels = 2
	}
	switch f.BitDepth {
	case 16, 24, 32:
	default:
		f.BitDepth = 16
	}
	return f
}

// String formats as "rate:bits:channels", the same shape the status
// protocol uses on the wire.
func (f Format) String() string {
	return fmt.Sprintf("%d:%d:%d", f.SampleRate, f.BitDepth, f.Channels)
}

// ParseStatusLine extracts a Format from a status-protocol line of the
// shape "audio: <rate>:<bits>:<channels>". The second return value is
// false when the line is not an audio line or any field fails to parse;
// absence of the line means "format unknown, keep current".
func ParseStatusLine(line string) (Format, bool) {
	const prefix = "audio:"

	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, prefix) {
		return Format{}, false
	}

	fields := strings.Split(strings.TrimSpace(line[len(prefix):]), ":")
	if len(fields) != 3 {
		return Format{}, false
	}

	var rate, bits, channels uint32
	if _, err := fmt.Sscanf(fields[0], "%d", &rate); err != nil {
		return Format{}, false
	}
	if _, err := fmt.Sscanf(fields[1], "%d", &bits); err != nil {
		return Format{}, false
	}
	if _, err := fmt.Sscanf(fields[2], "%d", &channels); err != nil {
		return Format{}, false
	}

	f := Format{
		SampleRate: rate,
		BitDepth:   uint16(bits),
		Channels:   uint16(channels),
	}.Sanitize()

	return f, true
}

// SourceKind selects the ingestion transport.
type SourceKind int

const (
	// SourceHTTP streams a WAV-framed body from a network socket.
	SourceHTTP SourceKind = iota
	// SourcePipe streams raw PCM from a named pipe.
	SourcePipe
)

// Source is the transport configuration, chosen once at pipeline
// construction and read-only afterwards.
type Source struct {
	Kind SourceKind
	Host string // SourceHTTP
	Port int    // SourceHTTP
	Path string // SourcePipe
}

// HTTPSource returns a network source configuration. Empty host or
// non-positive port fall back to the environment defaults.
func HTTPSource(host string, port int) Source {
	if host == "" {
		host = DefaultHTTPHost
	}
	if port <= 0 {
		port = DefaultHTTPPort
	}
	return Source{Kind: SourceHTTP, Host: host, Port: port}
}

// PipeSource returns a named-pipe source configuration. An empty path
// falls back to the environment default.
func PipeSource(path string) Source {
	if path == "" {
		path = DefaultPipePath
	}
	return Source{Kind: SourcePipe, Path: path}
}

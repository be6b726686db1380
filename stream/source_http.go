package stream

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"time"
)

// runHTTP is the network source reader: connect, stream, reconnect with
// fixed backoff until stopped. Connection failures are never fatal; the
// pipeline keeps running and plays silence.
func (p *Pipeline) runHTTP() {
	addr := p.httpAddr()
	for p.running.Load() {
		conn, err := net.DialTimeout("tcp", addr, dialTimeout)
		if err != nil {
			p.log.Debug().Err(err).Str("addr", addr).Msg("stream connect failed")
			time.Sleep(reconnectDelay)
			continue
		}
		p.streamHTTP(conn)
		conn.Close()
		if p.running.Load() {
			time.Sleep(reconnectDelay)
		}
	}
}

// streamHTTP issues a minimal GET, discards the response headers, sniffs
// the WAV header at the start of the body and then decodes the 16-bit
// payload until the connection dies or the pipeline stops. Every return
// path leads back to runHTTP's reconnect loop.
func (p *Pipeline) streamHTTP(conn net.Conn) {
	fmt.Fprintf(conn, "GET / HTTP/1.1\r\nHost: %s\r\nConnection: close\r\n\r\n",
		p.source.Host)

	br := bufio.NewReader(conn)
	for {
		if !p.running.Load() {
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		line, err := br.ReadString('\n')
		if err != nil {
			if isTimeout(err) {
				continue
			}
			return
		}
		if line == "\r\n" || line == "\n" {
			break
		}
	}

	hdr := make([]byte, wavHeaderSize)
	conn.SetReadDeadline(time.Now().Add(dialTimeout))
	if _, err := io.ReadFull(br, hdr); err != nil {
		return
	}
	p.applyFormat(parseWAVHeader(hdr, p.Format()))

	chunk := make([]byte, readChunkBytes)
	floats := make([]float64, readChunkBytes/2)
	rem := 0
	for p.running.Load() {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		n, err := br.Read(chunk[rem:])
		if n > 0 {
			rem = p.decodeChunk(chunk, rem+n, floats)
		}
		if err != nil {
			if isTimeout(err) {
				continue
			}
			if err != io.EOF {
				p.log.Debug().Err(err).Msg("stream read failed")
			}
			return
		}
	}
}

// decodeChunk decodes the whole frames of chunk[:total] through the
// equalizer into the ring and moves the trailing partial frame to the
// front. Returns the new remainder length.
func (p *Pipeline) decodeChunk(chunk []byte, total int, floats []float64) int {
	fb := p.Format().FrameBytes()
	whole := total - total%fb
	ns := decodePCM(floats, chunk[:whole], p.Format().BitDepth)
	p.process(floats[:ns])
	copy(chunk, chunk[whole:total])
	return total - whole
}

func isTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}

package stream

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/cwbudde/algo-stream/audio"
)

// FormatProber queries the upstream transport for its authoritative
// stream format. ok=false means the information is unavailable and the
// caller should keep its current format; probing never errors.
type FormatProber interface {
	Probe() (f audio.Format, ok bool)
}

// TCPProber asks an MPD-style status endpoint for the current format. It
// sends a "status" command and scans the reply for the
// "audio: <rate>:<bits>:<channels>" line.
type TCPProber struct {
	Addr    string
	Timeout time.Duration
}

// NewTCPProber returns a prober for addr, falling back to the default
// status endpoint when addr is empty.
func NewTCPProber(addr string) *TCPProber {
	if addr == "" {
		addr = audio.DefaultProberAddr
	}
	return &TCPProber{Addr: addr, Timeout: 2 * time.Second}
}

// Probe dials the endpoint and parses one status reply. Any transport or
// protocol failure yields ok=false; the stream keeps playing on the
// previous format.
func (p *TCPProber) Probe() (audio.Format, bool) {
	conn, err := net.DialTimeout("tcp", p.Addr, p.Timeout)
	if err != nil {
		return audio.Format{}, false
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(p.Timeout))

	sc := bufio.NewScanner(conn)
	if !sc.Scan() || !strings.HasPrefix(sc.Text(), "OK") {
		return audio.Format{}, false
	}
	if _, err := fmt.Fprint(conn, "status\n"); err != nil {
		return audio.Format{}, false
	}

	for sc.Scan() {
		line := sc.Text()
		if line == "OK" || strings.HasPrefix(line, "ACK") {
			break
		}
		if f, ok := audio.ParseStatusLine(line); ok {
			return f, true
		}
	}
	return audio.Format{}, false
}

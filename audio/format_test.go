package audio

import "testing"

func TestIsHiRes(t *testing.T) {
	cases := []struct {
		f    Format
		want bool
	}{
		{Format{44100, 16, 2}, false},
		{Format{44100, 24, 2}, true},
		{Format{48000, 16, 2}, true},
		{Format{96000, 24, 2}, true},
		{Format{8000, 16, 1}, false},
	}
	for _, c := range cases {
		if got := c.f.IsHiRes(); got != c.want {
			t.Errorf("IsHiRes(%v) = %v, want %v", c.f, got, c.want)
		}
	}
}

func TestFrameBytes(t *testing.T) {
	f := Format{SampleRate: 96000, BitDepth: 24, Channels: 2}
	if got := f.FrameBytes(); got != 6 {
		t.Fatalf("FrameBytes = %d, want 6", got)
	}
	if got := f.BytesPerSample(); got != 3 {
		t.Fatalf("BytesPerSample = %d, want 3", got)
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		in, want Format
	}{
		{Format{44100, 16, 2}, Format{44100, 16, 2}},
		{Format{0, 16, 2}, Format{44100, 16, 2}},
		{Format{500000, 16, 2}, Format{44100, 16, 2}},
		{Format{48000, 16, 0}, Format{48000, 16, 2}},
		{Format{48000, 16, 99}, Format{48000, 16, 2}},
		{Format{48000, 12, 2}, Format{48000, 16, 2}},
		{Format{192000, 32, 8}, Format{192000, 32, 8}},
	}
	for _, c := range cases {
		if got := c.in.Sanitize(); got != c.want {
			t.Errorf("Sanitize(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseStatusLine(t *testing.T) {
	cases := []struct {
		line string
		want Format
		ok   bool
	}{
		{"audio: 44100:16:2", Format{44100, 16, 2}, true},
		{"audio: 96000:24:2", Format{96000, 24, 2}, true},
		{"audio:192000:32:2", Format{192000, 32, 2}, true},
		{"  audio: 44100:16:2  ", Format{44100, 16, 2}, true},
		{"volume: 80", Format{}, false},
		{"audio: 44100:16", Format{}, false},
		{"audio: x:y:z", Format{}, false},
		{"", Format{}, false},
	}
	for _, c := range cases {
		got, ok := ParseStatusLine(c.line)
		if ok != c.ok {
			t.Errorf("ParseStatusLine(%q) ok = %v, want %v", c.line, ok, c.ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("ParseStatusLine(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}

func TestParseStatusLineSanitizes(t *testing.T) {
	// Out-of-range fields degrade to defaults instead of failing.
	got, ok := ParseStatusLine("audio: 1000000:12:99")
	if !ok {
		t.Fatal("expected ok")
	}
	want := Format{44100, 16, 2}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSourceDefaults(t *testing.T) {
	s := HTTPSource("", 0)
	if s.Host != DefaultHTTPHost || s.Port != DefaultHTTPPort {
		t.Fatalf("HTTPSource defaults = %v", s)
	}
	if s.Kind != SourceHTTP {
		t.Fatalf("kind = %v, want SourceHTTP", s.Kind)
	}

	p := PipeSource("")
	if p.Path != DefaultPipePath || p.Kind != SourcePipe {
		t.Fatalf("PipeSource defaults = %v", p)
	}
}

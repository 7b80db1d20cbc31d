package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		d    Diagnostic
		want string
	}{
		{Diagnostic{Kind: KindMalformedInput}, "malformed_input"},
		{Diagnostic{Kind: KindUnknownMapType, MapType: "atlantis"}, "unknown_map_type [atlantis]"},
		{
			Diagnostic{Kind: KindLoadFailed, MapType: "europe", Detail: "europe.svg", Err: errors.New("boom")},
			"load_failed [europe]: europe.svg: boom",
		},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{W: &buf}

	w.Diagnose(Diagnostic{Kind: KindMalformedInput, Detail: "not an array"})
	w.Painted(PaintPass{MapType: "europe", Marked: 2})

	out := buf.String()
	if !strings.Contains(out, "warning: malformed_input: not an array") {
		t.Errorf("missing warning line: %q", out)
	}
	if strings.Contains(out, "painted") {
		t.Errorf("paint pass printed without Verbose: %q", out)
	}

	buf.Reset()
	w.Verbose = true
	w.Painted(PaintPass{MapType: "europe", Marked: 2})
	if !strings.Contains(buf.String(), "painted europe: 2 marked") {
		t.Errorf("verbose output = %q", buf.String())
	}
}

func TestMultiAndCollector(t *testing.T) {
	a, b := &Collector{}, &Collector{}
	r := Multi(a, b, Discard)

	r.Diagnose(Diagnostic{Kind: KindMissingElement})
	r.Painted(PaintPass{MapType: "europe", Marked: 1})
	r.Painted(PaintPass{MapType: "europe", Marked: 3})

	for _, c := range []*Collector{a, b} {
		if c.Count(KindMissingElement) != 1 {
			t.Errorf("expected 1 missing_element diagnostic, got %d", c.Count(KindMissingElement))
		}
		last, ok := c.LastPass("europe")
		if !ok || last.Marked != 3 {
			t.Errorf("LastPass = %+v, %v", last, ok)
		}
		if _, ok := c.LastPass("americus"); ok {
			t.Error("unexpected pass for americus")
		}
	}
}

package trace

import (
	"bytes"
	"strings"
	"testing"
)

type stringerResult string

func (s stringerResult) String() string { return string(s) }

func TestFrameEnterAndReturnLogged(t *testing.T) {
	var buf bytes.Buffer
	Init(true, nil, &buf)

	FrameEnter("<module>")
	FrameReturn("<module>", stringerResult("None"))

	out := buf.String()
	if !strings.Contains(out, "enter <module>") {
		t.Fatalf("missing enter line: %q", out)
	}
	if !strings.Contains(out, "return <module> = None") {
		t.Fatalf("missing return line: %q", out)
	}
}

func TestDisabledTracerWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	Init(false, nil, &buf)

	FrameEnter("<module>")
	Exception("<module>", "TypeError", "boom")

	if buf.Len() != 0 {
		t.Fatalf("expected no output while disabled, got %q", buf.String())
	}
}

func TestFilterRestrictsToMatchingNames(t *testing.T) {
	var buf bytes.Buffer
	Init(true, []string{"mod.*"}, &buf)

	FrameEnter("other")
	if buf.Len() != 0 {
		t.Fatalf("expected no output for non-matching name, got %q", buf.String())
	}

	FrameEnter("mod.foo")
	if !strings.Contains(buf.String(), "enter mod.foo") {
		t.Fatalf("expected matching name to be logged, got %q", buf.String())
	}
}

func TestExceptionLineIncludesKindAndMessage(t *testing.T) {
	var buf bytes.Buffer
	Init(true, nil, &buf)

	Exception("<module>", "ValueError", "bad thing")
	out := buf.String()
	if !strings.Contains(out, "ValueError") || !strings.Contains(out, "bad thing") {
		t.Fatalf("missing exception details: %q", out)
	}
}

package vmerr

import "testing"

func TestCompileErrorFormat(t *testing.T) {
	err := NewCompileError("SyntaxError", "unexpected token", "  File \"<f>\", line 1\n    1 +\n")
	want := "  File \"<f>\", line 1\n    1 +\nSyntaxError: unexpected token"
	if got := err.Error(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRuntimeErrorTracebackOrder(t *testing.T) {
	err := NewRuntimeError(NameError, "name 'x' is not defined")
	err.AddSnapshot("  File \"<f>\", line 3\n    bar()\n")
	err.AddSnapshot("  File \"<f>\", line 7\n    foo()\n")
	err.AddSnapshot("  File \"<f>\", line 10\n    x\n")

	got := err.Error()
	want := "Traceback (most recent call last):\n" +
		"  File \"<f>\", line 10\n    x\n" +
		"  File \"<f>\", line 7\n    foo()\n" +
		"  File \"<f>\", line 3\n    bar()\n" +
		"NameError: name 'x' is not defined"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRuntimeErrorDepthCap(t *testing.T) {
	err := NewRuntimeError(Generic, "boom")
	for i := 0; i < 20; i++ {
		err.AddSnapshot("frame\n")
	}
	if len(err.Snapshots) != defaultMaxTracebackDepth {
		t.Fatalf("accumulated %d snapshots, want cap of %d", len(err.Snapshots), defaultMaxTracebackDepth)
	}
}

func TestMatchKind(t *testing.T) {
	err := NewRuntimeError(ValueError, "bad value")
	if !err.MatchKind(ValueError) {
		t.Fatal("expected exact kind to match")
	}
	if !err.MatchKind("") {
		t.Fatal("expected empty kind (catch-all) to match")
	}
	if err.MatchKind(TypeError) {
		t.Fatal("expected different kind not to match")
	}
}

func TestFatalPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if _, ok := r.(Fatal); !ok {
			t.Fatalf("expected Fatal panic, got %T", r)
		}
	}()
	Raise("stack underflow")
}

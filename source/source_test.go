package source

import (
	"strings"
	"testing"
)

func TestGetLine(t *testing.T) {
	s := New("def f():\n    print(x)\n", "<test>", ExecMode)

	if got := s.GetLine(1); got != "def f():" {
		t.Fatalf("line 1 = %q", got)
	}
	if got := s.GetLine(2); got != "    print(x)" {
		t.Fatalf("line 2 = %q", got)
	}
	if got := s.GetLine(-1); got != "" {
		t.Fatalf("line -1 = %q, want empty", got)
	}
}

func TestGetLineZeroPanics(t *testing.T) {
	s := New("x = 1\n", "<test>", ExecMode)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for line 0")
		}
	}()
	s.GetLine(0)
}

func TestGetLineOutOfRangePanics(t *testing.T) {
	s := New("x = 1\n", "<test>", ExecMode)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range line")
		}
	}()
	s.GetLine(99)
}

func TestStripsBOM(t *testing.T) {
	s := New("\xEF\xBB\xBFx = 1\n", "<test>", ExecMode)
	if got := s.GetLine(1); got != "x = 1" {
		t.Fatalf("GetLine(1) = %q, want %q (BOM not stripped)", got, "x = 1")
	}
}

// Snapshot rendering with a caret under the cursor, accounting for
// stripped leading whitespace.
func TestSnapshotWithCaret(t *testing.T) {
	text := "def f():\n    print(x)\n"
	s := New(text, "<f>", ExecMode)

	cursor := strings.Index(text, "x)")
	got := s.Snapshot(2, cursor)
	want := "  File \"<f>\", line 2\n    print(x)\n          ^\n"
	if got != want {
		t.Fatalf("snapshot mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestSnapshotNoCursor(t *testing.T) {
	s := New("x = 1\n", "<f>", ExecMode)
	got := s.Snapshot(1, NoCursor)
	want := "  File \"<f>\", line 1\n    x = 1\n"
	if got != want {
		t.Fatalf("snapshot mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestSnapshotUnknownLine(t *testing.T) {
	s := New("x = 1\n", "<f>", ExecMode)
	got := s.Snapshot(50, NoCursor)
	want := "  File \"<f>\", line 50\n    <?>\n"
	if got != want {
		t.Fatalf("snapshot mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

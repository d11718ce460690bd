// Package source owns the immutable source text behind a compiled
// CodeObject and renders the human-readable location snapshots used by
// compile errors and runtime tracebacks.
package source

import (
	"strconv"
	"strings"
)

// Mode tags how a Source was meant to be compiled.
type Mode int

const (
	ExecMode Mode = iota
	EvalMode
	SingleMode
	JSONMode
)

func (m Mode) String() string {
	switch m {
	case ExecMode:
		return "exec"
	case EvalMode:
		return "eval"
	case SingleMode:
		return "single"
	case JSONMode:
		return "json"
	default:
		return "unknown"
	}
}

// NoCursor marks snapshot calls that want no caret line.
const NoCursor = -1

// Source is immutable once built: the text, a filename for diagnostics,
// the compile mode, and the byte offset of every line's first character.
type Source struct {
	text       string
	filename   string
	mode       Mode
	lineStarts []int
}

// New strips a leading UTF-8 BOM (if present) and indexes line starts.
func New(text, filename string, mode Mode) *Source {
	text = strings.TrimPrefix(text, "\xEF\xBB\xBF")
	s := &Source{text: text, filename: filename, mode: mode}
	s.lineStarts = append(s.lineStarts, 0)
	for i, c := range text {
		if c == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

func (s *Source) Text() string    { return s.text }
func (s *Source) Filename() string { return s.filename }
func (s *Source) Mode() Mode       { return s.mode }

// GetLine returns the substring of the n-th 1-based line, excluding the
// terminating newline. n == -1 yields an empty span; n out of the valid
// range is an implementation error, per the Source contract.
func (s *Source) GetLine(n int) string {
	if n == -1 {
		return ""
	}
	idx := n - 1
	if idx < 0 || idx >= len(s.lineStarts) {
		panic("source: line number out of range")
	}
	start := s.lineStarts[idx]
	end := len(s.text)
	if idx+1 < len(s.lineStarts) {
		end = s.lineStarts[idx+1] - 1 // drop the newline
	}
	if end < start {
		end = start
	}
	return s.text[start:end]
}

// Snapshot renders a three-line diagnostic: a location header, the
// left-trimmed source line (or "<?>" if it cannot be located or holds
// only whitespace), and a
// caret line when cursor falls within the line. Pass NoCursor when no
// caret is wanted.
func (s *Source) Snapshot(line int, cursor int) string {
	var b strings.Builder
	b.WriteString("  File \"")
	b.WriteString(s.filename)
	b.WriteString("\", line ")
	b.WriteString(strconv.Itoa(line))
	b.WriteByte('\n')

	raw, ok := s.lineSpan(line)
	text := "<?>"
	removed := 0
	if ok {
		trimmed := strings.TrimLeft(raw, " \t")
		removed = len(raw) - len(trimmed)
		if trimmed != "" {
			text = trimmed
		}
	}
	b.WriteString("    ")
	b.WriteString(text)
	b.WriteByte('\n')

	if cursor != NoCursor && text != "<?>" {
		start, end := s.lineBounds(line)
		if cursor >= start && cursor <= end {
			column := cursor - start - removed
			if column >= 0 {
				b.WriteString("    ")
				b.WriteString(strings.Repeat(" ", column))
				b.WriteString("^\n")
			}
		}
	}
	return b.String()
}

func (s *Source) lineBounds(line int) (start, end int) {
	idx := line - 1
	if idx < 0 || idx >= len(s.lineStarts) {
		return 0, -1
	}
	start = s.lineStarts[idx]
	end = len(s.text)
	if idx+1 < len(s.lineStarts) {
		end = s.lineStarts[idx+1] - 1
	}
	return start, end
}

func (s *Source) lineSpan(line int) (string, bool) {
	start, end := s.lineBounds(line)
	if end < start {
		return "", false
	}
	return s.text[start:end], true
}

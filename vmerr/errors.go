// Package vmerr defines the tagged error values and control signals
// surfaced to an embedder: compile errors carrying a source snapshot,
// runtime exceptions accumulating a traceback as they unwind frames,
// and the REPL's "need more lines" control signal. Invariant
// violations that denote a bug in the core or its compiler (stack
// underflow, a cross-block jump with no common ancestor, a negative
// block index, a duplicate label) are reported as panics of type Fatal
// rather than as values of these types — they are not user-recoverable.
package vmerr

import "strings"

// Kind distinguishes RuntimeError specializations so user code (and
// TRY_EXCEPT handlers) can match on them by name.
type Kind string

const (
	NameError         Kind = "NameError"
	AttributeError    Kind = "AttributeError"
	ValueError        Kind = "ValueError"
	IndexError        Kind = "IndexError"
	TypeError         Kind = "TypeError"
	ZeroDivisionError Kind = "ZeroDivisionError"
	Generic           Kind = "RuntimeError"
)

// defaultMaxTracebackDepth bounds how many frame snapshots a RuntimeError
// accumulates while unwinding.
const defaultMaxTracebackDepth = 8

// CompileError is not recoverable within compilation; it carries the
// rendered source snapshot at the point of failure.
type CompileError struct {
	Kind     string
	Message  string
	Snapshot string
}

func NewCompileError(kind, message, snapshot string) *CompileError {
	return &CompileError{Kind: kind, Message: message, Snapshot: snapshot}
}

// Error formats as "<snapshot><type>: <message>".
func (e *CompileError) Error() string {
	return e.Snapshot + e.Kind + ": " + e.Message
}

// RuntimeError is raised by opcodes, reference operations and builtins.
// It is caught by TRY_EXCEPT blocks via Frame.JumpToNextExceptionHandler;
// otherwise it unwinds the frame stack, accumulating one snapshot per
// frame up to MaxTracebackDepth.
type RuntimeError struct {
	RuntimeKind       Kind
	Message           string
	Snapshots         []string // insertion order; rendered most-recent-first
	MaxTracebackDepth int
}

func NewRuntimeError(kind Kind, message string) *RuntimeError {
	return &RuntimeError{RuntimeKind: kind, Message: message, MaxTracebackDepth: defaultMaxTracebackDepth}
}

// Error formats the full traceback: the banner, snapshots in reverse
// insertion order (innermost-last becomes outermost-first when
// reversed — see Frame.ErrorSnapshot callers), then "<type>: <message>".
func (e *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString("Traceback (most recent call last):\n")
	for i := len(e.Snapshots) - 1; i >= 0; i-- {
		b.WriteString(e.Snapshots[i])
	}
	b.WriteString(string(e.RuntimeKind))
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// AddSnapshot appends a frame snapshot while unwinding, subject to the
// depth cap. Snapshots beyond the cap are silently dropped: the
// traceback is best-effort, not exhaustive.
func (e *RuntimeError) AddSnapshot(snapshot string) {
	max := e.MaxTracebackDepth
	if max <= 0 {
		max = defaultMaxTracebackDepth
	}
	if len(e.Snapshots) >= max {
		return
	}
	e.Snapshots = append(e.Snapshots, snapshot)
}

// MatchKind reports whether a TRY_EXCEPT handler declared to catch kind
// also catches this error. An empty kind means "catch anything".
func (e *RuntimeError) MatchKind(kind Kind) bool {
	return kind == "" || kind == e.RuntimeKind
}

// NeedMoreLines is a control signal, not an error: the REPL lexer/parser
// raises it in SINGLE_MODE when the input is incomplete. IsClassDef
// distinguishes a bare incomplete statement from an incomplete class
// body, which needs an indented continuation before dispatch.
type NeedMoreLines struct {
	IsClassDef bool
}

func (n *NeedMoreLines) Error() string { return "need more lines" }

// RaiseSignal is an internal marker that a `raise` opcode fired, as
// opposed to a RuntimeError surfacing from some other opcode or a
// builtin. It carries no data of its own; an interpreter loop (out of
// scope here) uses it to decide whether to re-enter the raise
// machinery versus treat an error as freshly discovered.
type RaiseSignal struct{}

func (RaiseSignal) Error() string { return "raise" }

// Fatal denotes a core or compiler invariant violation: stack
// underflow, an invalid cross-block jump, a negative current-block
// index, a duplicate label. These are always panicked, never returned,
// because no amount of user-level recovery can make sense of them.
type Fatal struct {
	Message string
}

func (f Fatal) Error() string { return f.Message }

// Raise panics with a Fatal built from message. Centralized so every
// invariant-violation call site reads the same way.
func Raise(message string) {
	panic(Fatal{Message: message})
}

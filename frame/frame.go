// Package frame implements the per-invocation execution state: the
// operand stack, instruction pointer, local environment, and the
// safe-jump machinery that reconciles instruction jumps with the
// owning CodeObject's block tree.
package frame

import (
	"fmt"

	"github.com/barnvm/corevm/code"
	"github.com/barnvm/corevm/source"
	"github.com/barnvm/corevm/value"
	"github.com/barnvm/corevm/vmerr"
)

// Frame is constructed on function/module entry and destroyed on
// normal return, re-raise past the top handler, or explicit unwind. It
// is single-owner: not shared across threads.
type Frame struct {
	Code   *code.CodeObject
	Module *value.Module
	Locals map[string]value.Value

	stack  []value.Value
	ip     int // -1: no instruction fetched yet
	nextIP int
}

// New constructs a frame ready to execute from the start of code.
func New(c *code.CodeObject, module *value.Module, locals map[string]value.Value) *Frame {
	if locals == nil {
		locals = make(map[string]value.Value)
	}
	return &Frame{Code: c, Module: module, Locals: locals, ip: -1, nextIP: 0}
}

// IP is the index of the instruction most recently fetched by
// NextBytecode; -1 before the first fetch.
func (f *Frame) IP() int { return f.ip }

// Push places a value on top of the operand stack.
func (f *Frame) Push(v value.Value) { f.stack = append(f.stack, v) }

// Pop removes and returns the top of the operand stack. Popping an
// empty stack is a fatal runtime assertion, not a user-visible error.
func (f *Frame) Pop() value.Value {
	if len(f.stack) == 0 {
		vmerr.Raise("frame: pop on empty operand stack")
	}
	v := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return v
}

// Top returns the operand stack's top value without removing it.
func (f *Frame) Top() value.Value {
	if len(f.stack) == 0 {
		vmerr.Raise("frame: top on empty operand stack")
	}
	return f.stack[len(f.stack)-1]
}

// TopOffset returns the value n slots from the top (n is typically
// negative: -1 is the top itself, -2 the one below it, ...). An
// out-of-range offset is a fatal runtime assertion.
func (f *Frame) TopOffset(n int) value.Value {
	i := len(f.stack) + n
	if i < 0 || i >= len(f.stack) {
		vmerr.Raise("frame: top_offset out of range")
	}
	return f.stack[i]
}

// PopN pops n values and returns them in the order they were pushed
// (bottom of the popped window first).
func (f *Frame) PopN(n int) []value.Value {
	if n == 0 {
		return nil
	}
	if n < 0 || n > len(f.stack) {
		vmerr.Raise("frame: pop_n underflow")
	}
	out := make([]value.Value, n)
	copy(out, f.stack[len(f.stack)-n:])
	f.stack = f.stack[:len(f.stack)-n]
	return out
}

// StackSize reports the current operand stack depth.
func (f *Frame) StackSize() int { return len(f.stack) }

// NextBytecode advances ip to the previously-queued nextIP, advances
// nextIP past it, and returns the instruction at the new ip. The ip /
// nextIP split lets opcode handlers redirect nextIP (jumps) without
// losing the currently-executing instruction's metadata.
func (f *Frame) NextBytecode() code.Bytecode {
	f.ip = f.nextIP
	f.nextIP = f.ip + 1
	return f.Code.Code[f.ip]
}

// IsBytecodeEnded reports whether ip has run off the end of the code.
func (f *Frame) IsBytecodeEnded() bool {
	return f.ip >= len(f.Code.Code)
}

// JumpAbs sets the next fetch target unconditionally, with no block
// bookkeeping. Used by opcode handlers that already know they're
// staying within the same block.
func (f *Frame) JumpAbs(target int) { f.nextIP = target }

// JumpRel sets the next fetch target relative to the currently
// executing instruction.
func (f *Frame) JumpRel(delta int) { f.nextIP = f.ip + delta }

// JumpAbsoluteSafe is the block-aware jump used for break, continue,
// function-level return, and handler entry. It pops one
// operand for every FOR_LOOP ancestor block being exited — the loop's
// latent iterator — and leaves blocks the jump remains nested within
// untouched. An invalid cross-block jump (no common ancestor found) is
// a fatal interpreter error naming both block descriptors.
func (f *Frame) JumpAbsoluteSafe(target int) {
	prev := f.Code.Code[f.ip]
	i := int(prev.Block)
	f.ip = target
	// next_ip tracks ip here so that the following NextBytecode() call
	// resumes from target rather than from whatever next_ip held
	// before the jump — the deferred-vs-immediate distinction that
	// separates this from JumpAbs only matters for the block-cleanup
	// walk below, not for where execution resumes.
	f.nextIP = target

	if f.IsBytecodeEnded() {
		for i >= 0 {
			if f.Code.Blocks[i].Type == code.ForLoop {
				f.Pop()
			}
			i = f.Code.Blocks[i].Parent
		}
		return
	}

	next := f.Code.Code[target]
	for i >= 0 && i != int(next.Block) {
		if f.Code.Blocks[i].Type == code.ForLoop {
			f.Pop()
		}
		i = f.Code.Blocks[i].Parent
	}
	if i != int(next.Block) {
		vmerr.Raise(fmt.Sprintf("frame: invalid jump from %s to %s",
			f.Code.Blocks[prev.Block].String(), f.Code.Blocks[next.Block].String()))
	}
}

// JumpToNextExceptionHandler walks the block chain from the currently
// executing instruction's block toward the root, looking for a
// TRY_EXCEPT block, and jumps to its except dispatch (placed at the
// block's end by convention). Returns false if no enclosing TRY_EXCEPT
// exists in this frame — the caller must then unwind to the previous
// frame.
func (f *Frame) JumpToNextExceptionHandler() bool {
	curr := f.Code.Code[f.ip]
	i := int(curr.Block)
	for i >= 0 {
		if f.Code.Blocks[i].Type == code.TryExcept {
			f.JumpAbsoluteSafe(f.Code.Blocks[i].End)
			return true
		}
		i = f.Code.Blocks[i].Parent
	}
	return false
}

// ErrorSnapshot renders the source location of the currently executing
// instruction, for use when building a RuntimeError's traceback. Before
// the first NextBytecode fetch there is no current instruction, so the
// snapshot falls back to an unlocated line.
func (f *Frame) ErrorSnapshot() string {
	if f.ip < 0 {
		return f.Code.Src.Snapshot(0, source.NoCursor)
	}
	line := f.Code.Code[f.ip].Line
	return f.Code.Src.Snapshot(int(line), source.NoCursor)
}

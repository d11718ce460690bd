// Package code implements the CodeObject and its block tree: the
// bytecode stream, constants pool, name table and label table a
// compiler builds and an interpreter queries, plus the lexical block
// tree that governs loop/exception control flow.
package code

import (
	"fmt"

	"github.com/barnvm/corevm/source"
	"github.com/barnvm/corevm/value"
	"github.com/barnvm/corevm/vmerr"
)

// Scope tags how a name was resolved at compile time.
type Scope int

const (
	LocalScope Scope = iota
	GlobalScope
	AttrScope
)

func (s Scope) String() string {
	switch s {
	case LocalScope:
		return "LOCAL"
	case GlobalScope:
		return "GLOBAL"
	case AttrScope:
		return "ATTR"
	default:
		return "UNKNOWN_SCOPE"
	}
}

// NameEntry is one row of CodeObject.Names: an identifier plus the
// scope it was resolved to at compile time.
type NameEntry struct {
	Name  string
	Scope Scope
}

// Bytecode is one executable record: an opcode, an integer argument,
// the source line for tracebacks (-1 when not applicable), and the
// index into the owning CodeObject's Blocks of the innermost enclosing
// block at this instruction's static position.
type Bytecode struct {
	Op    int32
	Arg   int32
	Line  int32
	Block uint16
}

// CodeObject owns one compiled unit's bytecode, constants, names and
// block tree.
type CodeObject struct {
	Src  *source.Source
	Name string

	Code []Bytecode
	Consts []value.Value
	Names  []NameEntry

	GlobalNames map[string]bool
	Blocks      []Block
	Labels      map[string]int

	current int // index of the innermost open block
}

// New creates a CodeObject whose block tree starts with the implicit
// root (block 0: NoBlock, empty id, parent -1, covering everything).
func New(src *source.Source, name string) *CodeObject {
	return &CodeObject{
		Src:         src,
		Name:        name,
		GlobalNames: make(map[string]bool),
		Blocks:      []Block{{Type: NoBlock, ID: nil, Parent: -1, Start: 0, End: 0}},
		Labels:      make(map[string]int),
		current:     0,
	}
}

// Mode is a convenience accessor for Src.Mode().
func (c *CodeObject) Mode() source.Mode { return c.Src.Mode() }

// CurrentBlock returns the index of the innermost open block.
func (c *CodeObject) CurrentBlock() int { return c.current }

// Enter opens a new block of the given type nested under the current
// one. The new block's id extends the parent's id by the
// smallest non-negative suffix not already used by a sibling.
func (c *CodeObject) Enter(t BlockType) int {
	parent := c.current
	parentID := c.Blocks[parent].ID

	suffix := 0
	for {
		candidate := append(append([]int{}, parentID...), suffix)
		if !c.siblingExists(parent, candidate) {
			break
		}
		suffix++
	}
	id := append(append([]int{}, parentID...), suffix)

	c.Blocks = append(c.Blocks, Block{
		Type:   t,
		ID:     id,
		Parent: parent,
		Start:  len(c.Code),
		End:    -1,
	})
	c.current = len(c.Blocks) - 1
	return c.current
}

func (c *CodeObject) siblingExists(parent int, id []int) bool {
	for _, b := range c.Blocks {
		if b.Parent == parent && b.idEquals(id) {
			return true
		}
	}
	return false
}

// Exit closes the current block, recording its end as the current
// bytecode length, and restores current to its parent. It is a fatal
// invariant violation to exit past the root.
func (c *CodeObject) Exit() {
	c.Blocks[c.current].End = len(c.Code)
	c.current = c.Blocks[c.current].Parent
	if c.current < 0 {
		vmerr.Raise("code: exit() underflowed the block stack")
	}
}

// Emit appends a bytecode, tagging it with the current block, and
// returns its index.
func (c *CodeObject) Emit(op, arg int32, line int32) int {
	c.Code = append(c.Code, Bytecode{Op: op, Arg: arg, Line: line, Block: uint16(c.current)})
	c.Blocks[0].End = len(c.Code) // the root always spans every instruction
	return len(c.Code) - 1
}

// AddName dedupes by (name, resolved scope) and returns its index.
// A LOCAL name already declared global is promoted to GLOBAL before
// the lookup, so both addName(x, LOCAL) and addName(x, GLOBAL) return
// the same index once x is in GlobalNames.
func (c *CodeObject) AddName(name string, scope Scope) int {
	if scope == LocalScope && c.GlobalNames[name] {
		scope = GlobalScope
	}
	for i, n := range c.Names {
		if n.Name == name && n.Scope == scope {
			return i
		}
	}
	c.Names = append(c.Names, NameEntry{Name: name, Scope: scope})
	return len(c.Names) - 1
}

// AddConst appends a value handle to the constants pool, unconditionally
// (no deduplication), and returns its index.
func (c *CodeObject) AddConst(v value.Value) int {
	c.Consts = append(c.Consts, v)
	return len(c.Consts) - 1
}

// AddLabel records the current bytecode length as label's jump target.
// Registering the same label twice is a fatal compile-time error.
func (c *CodeObject) AddLabel(label string) {
	if _, exists := c.Labels[label]; exists {
		vmerr.Raise(fmt.Sprintf("code: label %q already exists", label))
	}
	c.Labels[label] = len(c.Code)
}

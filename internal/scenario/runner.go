package scenario

import (
	"fmt"
	"strings"

	"github.com/barnvm/corevm/code"
	"github.com/barnvm/corevm/frame"
	"github.com/barnvm/corevm/source"
	"github.com/barnvm/corevm/value"
)

var blockTypes = map[string]code.BlockType{
	"FOR_LOOP":        code.ForLoop,
	"WHILE_LOOP":      code.WhileLoop,
	"CONTEXT_MANAGER": code.ContextManager,
	"TRY_EXCEPT":      code.TryExcept,
}

var scopes = map[string]code.Scope{
	"LOCAL":  code.LocalScope,
	"GLOBAL": code.GlobalScope,
	"ATTR":   code.AttrScope,
}

// Build constructs the CodeObject and Frame a case's setup describes.
func Build(c Case) (*code.CodeObject, *frame.Frame) {
	src := source.New(c.Setup.Source, "<scenario>", source.ExecMode)
	co := code.New(src, "<module>")

	for _, n := range c.Setup.GlobalNames {
		co.GlobalNames[n] = true
	}

	for _, b := range c.Setup.Blocks {
		switch {
		case b.Enter != "":
			t, ok := blockTypes[b.Enter]
			if !ok {
				panic(fmt.Sprintf("scenario: unknown block type %q", b.Enter))
			}
			co.Enter(t)
		case b.Exit:
			co.Exit()
		case b.Emit != nil:
			co.Emit(b.Emit.Op, b.Emit.Arg, b.Emit.Line)
		}
	}

	f := frame.New(co, value.NewModule("<module>"), nil)
	for _, v := range c.Setup.PushStack {
		f.Push(value.Int(v))
	}
	for i := 0; i < c.Setup.AdvanceTo; i++ {
		f.NextBytecode()
	}
	return co, f
}

// Run executes a case's action against a freshly built frame and
// reports whether its expectation held, along with a human-readable
// explanation on failure.
func Run(c Case) (ok bool, explain string) {
	defer func() {
		r := recover()
		if c.Expect.Panics {
			if r == nil {
				ok, explain = false, "expected a panic, none occurred"
				return
			}
			msg := fmt.Sprint(r)
			if c.Expect.PanicContains != "" && !strings.Contains(msg, c.Expect.PanicContains) {
				ok, explain = false, fmt.Sprintf("panic message %q does not contain %q", msg, c.Expect.PanicContains)
				return
			}
			ok, explain = true, ""
			return
		}
		if r != nil {
			ok, explain = false, fmt.Sprintf("unexpected panic: %v", r)
		}
	}()

	co, f := Build(c)
	before := f.StackSize()

	switch c.Action.Kind {
	case "add_name":
		scope, ok := scopes[c.Action.Scope]
		if !ok {
			panic(fmt.Sprintf("scenario: unknown scope %q", c.Action.Scope))
		}
		idx := co.AddName(c.Action.Name, scope)
		got := co.Names[idx].Scope.String()
		if c.Expect.ResolvedScope != "" && got != c.Expect.ResolvedScope {
			return false, fmt.Sprintf("resolved scope = %s, want %s", got, c.Expect.ResolvedScope)
		}
		return true, ""

	case "jump_absolute_safe":
		f.JumpAbsoluteSafe(c.Action.Target)
		popped := before - f.StackSize()
		if popped != c.Expect.StackDeltaPopped {
			return false, fmt.Sprintf("popped %d operands, want %d", popped, c.Expect.StackDeltaPopped)
		}
		return true, ""

	case "jump_to_next_exception_handler":
		found := f.JumpToNextExceptionHandler()
		if c.Expect.HandlerFound != nil && found != *c.Expect.HandlerFound {
			return false, fmt.Sprintf("handler_found = %v, want %v", found, *c.Expect.HandlerFound)
		}
		return true, ""

	default:
		return false, fmt.Sprintf("unknown action kind %q", c.Action.Kind)
	}
}

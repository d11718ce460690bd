// Package scenario loads YAML-encoded behavior scenarios and runs them
// against a CodeObject/Frame pair. Each scenario pre-builds a small
// piece of bytecode, performs one operation (a safe jump, an
// exception-handler lookup, or an AddName call) and asserts on the observable frame/code state
// afterward, since this core has no expression evaluator of its own to
// assert a language-level result against.
package scenario

// Suite is a named group of cases sharing a setup recipe.
type Suite struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Cases       []Case `yaml:"cases"`
}

// Case is one scenario: a setup recipe, an action to perform, and the
// expectation to check afterward.
type Case struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Skip        string      `yaml:"skip,omitempty"`
	Setup       Setup       `yaml:"setup"`
	Action      Action      `yaml:"action"`
	Expect      Expectation `yaml:"expect"`
}

// Setup describes the CodeObject to build before the action runs:
// a flat list of blocks to enter/exit and instructions to emit, in
// source order.
type Setup struct {
	Source string `yaml:"source,omitempty"`
	Blocks []BlockSpec `yaml:"blocks,omitempty"`
	// PushStack seeds the operand stack before the action runs, one
	// entry per value, bottom first.
	PushStack []int64 `yaml:"push_stack,omitempty"`
	// AdvanceTo is the number of NextBytecode fetches made before the
	// action runs, so ip ends at AdvanceTo-1 (0 leaves ip at -1).
	AdvanceTo int `yaml:"advance_to"`
	// GlobalNames pre-declares names as global before any add_name
	// action runs, so a LOCAL lookup can be observed promoting to
	// GLOBAL.
	GlobalNames []string `yaml:"global_names,omitempty"`
}

// BlockSpec is one entry in a setup recipe: either "enter <TYPE>",
// "exit", or "emit <op> <arg> <line>".
type BlockSpec struct {
	Enter string `yaml:"enter,omitempty"`
	Exit  bool   `yaml:"exit,omitempty"`
	Emit  *EmitSpec `yaml:"emit,omitempty"`
}

// EmitSpec is one bytecode instruction to append.
type EmitSpec struct {
	Op   int32 `yaml:"op"`
	Arg  int32 `yaml:"arg"`
	Line int32 `yaml:"line"`
}

// Action names the single operation the scenario exercises and its
// target index, where applicable.
type Action struct {
	Kind   string `yaml:"kind"` // jump_absolute_safe | jump_to_next_exception_handler | add_name
	Target int    `yaml:"target,omitempty"`
	Name   string `yaml:"name,omitempty"`
	Scope  string `yaml:"scope,omitempty"`
}

// Expectation is checked after the action runs. NextIP is parsed from
// fixtures but Run does not check it.
type Expectation struct {
	StackDeltaPopped int    `yaml:"stack_delta_popped,omitempty"`
	NextIP           *int   `yaml:"next_ip,omitempty"`
	HandlerFound     *bool  `yaml:"handler_found,omitempty"`
	Panics           bool   `yaml:"panics,omitempty"`
	PanicContains    string `yaml:"panic_contains,omitempty"`
	ResolvedScope    string `yaml:"resolved_scope,omitempty"`
}

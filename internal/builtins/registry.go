// Package builtins provides the VM-provided builtins table consulted
// as the last step of NameRef resolution: a name-keyed
// registry of Go-implemented functions, the one explicit boundary
// through which this core touches anything beyond its own opaque
// values.
package builtins

import (
	"fmt"

	"github.com/barnvm/corevm/value"
)

// Registry is a name-keyed table of builtin functions.
type Registry struct {
	funcs map[string]*value.Builtin
}

// NewRegistry builds the default registry: type/length introspection
// plus the crypt/hash crypto family.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]*value.Builtin)}
	r.Register("len", builtinLen)
	r.Register("str", builtinStr)
	r.Register("type", builtinType)
	r.Register("hash", builtinHash)
	r.Register("crypt", builtinCrypt)
	return r
}

// Register adds a named builtin to the table.
func (r *Registry) Register(name string, fn func(args []value.Value) (value.Value, error)) {
	r.funcs[name] = &value.Builtin{Name: name, Fn: fn}
}

// Lookup satisfies ref.Builtins: the final fallback in NameRef
// resolution.
func (r *Registry) Lookup(name string) (value.Value, bool) {
	b, ok := r.funcs[name]
	if !ok {
		return nil, false
	}
	return b, true
}

func builtinLen(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("len() takes exactly one argument")
	}
	switch v := args[0].(type) {
	case value.Str:
		return value.Int(len(v)), nil
	case *value.List:
		return value.Int(len(v.Items)), nil
	default:
		return nil, fmt.Errorf("object of type '%v' has no len()", v.Type())
	}
}

func builtinStr(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("str() takes exactly one argument")
	}
	return value.Str(args[0].String()), nil
}

func builtinType(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type() takes exactly one argument")
	}
	names := map[value.Kind]string{
		value.KindNone:    "NoneType",
		value.KindBool:    "bool",
		value.KindInt:     "int",
		value.KindFloat:   "float",
		value.KindStr:     "str",
		value.KindList:    "list",
		value.KindBuiltin: "builtin_function",
		value.KindModule:  "module",
		value.KindObject:  "object",
	}
	return value.Str(names[args[0].Type()]), nil
}

// Package value provides the minimal concrete value system the rest of
// this module operates on. The real object system (attribute lookup
// with descriptors, arithmetic dispatch, garbage collection) lives
// outside this core — this package exists only to give References
// (package ref), Frames (package frame) and builtins (package
// internal/builtins) something concrete to read, write and delete
// during tests and the demo driver in cmd/corevm.
package value

import (
	"fmt"
	"strconv"
)

// Kind identifies the dynamic type of a Value.
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindFloat
	KindStr
	KindList
	KindBuiltin
	KindModule
	KindObject
)

var kindNames = [...]string{
	KindNone: "NoneType", KindBool: "bool", KindInt: "int", KindFloat: "float", KindStr: "str",
	KindList: "list", KindBuiltin: "builtin_function", KindModule: "module", KindObject: "object",
}

// String returns the language-level type name of k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Value is the opaque handle the core passes around. Concrete kinds
// below are cheap to clone (Go values / slice headers), satisfying a
// simple value-handle contract.
type Value interface {
	Type() Kind
	Truthy() bool
	String() string
	Equal(Value) bool
}

// Attributable is implemented by values whose attributes can be read,
// written and deleted through an AttrRef.
type Attributable interface {
	GetAttr(name string) (Value, bool)
	SetAttr(name string, v Value)
	DelAttr(name string) bool
}

// Indexable is implemented by values that support IndexRef's
// get/set/del via __getitem__/__setitem__/__delitem__.
type Indexable interface {
	GetItem(index Value) (Value, error)
	SetItem(index Value, v Value) error
	DelItem(index Value) error
}

// Iterable is implemented by values that can appear on the right-hand
// side of a tuple-reference assignment.
type Iterable interface {
	Iterate() ([]Value, error)
}

// None is the single "no value" value.
type None struct{}

func (None) Type() Kind        { return KindNone }
func (None) Truthy() bool      { return false }
func (None) String() string    { return "None" }
func (None) Equal(o Value) bool {
	_, ok := o.(None)
	return ok
}

// Bool wraps a boolean.
type Bool bool

func (b Bool) Type() Kind     { return KindBool }
func (b Bool) Truthy() bool   { return bool(b) }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (b Bool) Equal(o Value) bool {
	ob, ok := o.(Bool)
	return ok && ob == b
}

// Int wraps a 64-bit integer.
type Int int64

func (i Int) Type() Kind     { return KindInt }
func (i Int) Truthy() bool   { return i != 0 }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }
func (i Int) Equal(o Value) bool {
	switch ov := o.(type) {
	case Int:
		return ov == i
	case Float:
		return float64(ov) == float64(i)
	default:
		return false
	}
}

// Float wraps a 64-bit float.
type Float float64

func (f Float) Type() Kind     { return KindFloat }
func (f Float) Truthy() bool   { return f != 0 }
func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (f Float) Equal(o Value) bool {
	switch ov := o.(type) {
	case Float:
		return ov == f
	case Int:
		return float64(ov) == float64(f)
	default:
		return false
	}
}

// Str wraps a string.
type Str string

func (s Str) Type() Kind     { return KindStr }
func (s Str) Truthy() bool   { return len(s) > 0 }
func (s Str) String() string { return string(s) }
func (s Str) Equal(o Value) bool {
	os, ok := o.(Str)
	return ok && os == s
}

// List is a mutable, indexable, iterable sequence of values. It is the
// one container concrete enough to exercise IndexRef and the tuple
// reference's right-hand-side iteration.
type List struct {
	Items []Value
}

func NewList(items ...Value) *List { return &List{Items: items} }

func (l *List) Type() Kind   { return KindList }
func (l *List) Truthy() bool { return len(l.Items) > 0 }
func (l *List) String() string {
	s := "["
	for i, it := range l.Items {
		if i > 0 {
			s += ", "
		}
		s += it.String()
	}
	return s + "]"
}
func (l *List) Equal(o Value) bool {
	ol, ok := o.(*List)
	if !ok || len(ol.Items) != len(l.Items) {
		return false
	}
	for i := range l.Items {
		if !l.Items[i].Equal(ol.Items[i]) {
			return false
		}
	}
	return true
}

func (l *List) Iterate() ([]Value, error) {
	out := make([]Value, len(l.Items))
	copy(out, l.Items)
	return out, nil
}

func (l *List) index(idx Value) (int, error) {
	i, ok := idx.(Int)
	if !ok {
		return 0, fmt.Errorf("list indices must be integers")
	}
	n := int(i)
	if n < 0 {
		n += len(l.Items)
	}
	if n < 0 || n >= len(l.Items) {
		return 0, fmt.Errorf("list index out of range")
	}
	return n, nil
}

func (l *List) GetItem(idx Value) (Value, error) {
	n, err := l.index(idx)
	if err != nil {
		return nil, err
	}
	return l.Items[n], nil
}

func (l *List) SetItem(idx Value, v Value) error {
	n, err := l.index(idx)
	if err != nil {
		return err
	}
	l.Items[n] = v
	return nil
}

func (l *List) DelItem(idx Value) error {
	n, err := l.index(idx)
	if err != nil {
		return err
	}
	l.Items = append(l.Items[:n], l.Items[n+1:]...)
	return nil
}

// Builtin wraps a Go function as a callable Value, reachable from a
// NameRef lookup that falls through to the VM-provided builtins table.
type Builtin struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (b *Builtin) Type() Kind     { return KindBuiltin }
func (b *Builtin) Truthy() bool   { return true }
func (b *Builtin) String() string { return "<builtin " + b.Name + ">" }
func (b *Builtin) Equal(o Value) bool {
	ob, ok := o.(*Builtin)
	return ok && ob == b
}

func (b *Builtin) Call(args []Value) (Value, error) { return b.Fn(args) }

// Attrs is a map-backed attribute container, used both as the
// module-level (global) environment a Frame's Module exposes and as the
// general-purpose Attributable for AttrRef targets in tests.
type Attrs struct {
	m map[string]Value
}

func NewAttrs() *Attrs { return &Attrs{m: make(map[string]Value)} }

func (a *Attrs) Get(name string) (Value, bool) {
	v, ok := a.m[name]
	return v, ok
}

func (a *Attrs) Set(name string, v Value) { a.m[name] = v }

func (a *Attrs) Delete(name string) bool {
	if _, ok := a.m[name]; !ok {
		return false
	}
	delete(a.m, name)
	return true
}

// Module is the value handle a Frame carries as its module-level
// environment: its attribute dictionary is globals.
type Module struct {
	Name  string
	Attrs *Attrs
}

func NewModule(name string) *Module { return &Module{Name: name, Attrs: NewAttrs()} }

func (m *Module) Type() Kind     { return KindModule }
func (m *Module) Truthy() bool   { return true }
func (m *Module) String() string { return "<module " + m.Name + ">" }
func (m *Module) Equal(o Value) bool {
	om, ok := o.(*Module)
	return ok && om == m
}

func (m *Module) GetAttr(name string) (Value, bool) { return m.Attrs.Get(name) }
func (m *Module) SetAttr(name string, v Value)      { m.Attrs.Set(name, v) }
func (m *Module) DelAttr(name string) bool           { return m.Attrs.Delete(name) }

// Object is a generic attribute-bearing value, standing in for
// whatever the external object system's instances look like: any
// value AttrRef can target besides Module.
type Object struct {
	ClassName string
	Attrs     *Attrs
}

func NewObject(className string) *Object { return &Object{ClassName: className, Attrs: NewAttrs()} }

func (o *Object) Type() Kind     { return KindObject }
func (o *Object) Truthy() bool   { return true }
func (o *Object) String() string { return "<" + o.ClassName + " object>" }
func (o *Object) Equal(other Value) bool {
	oo, ok := other.(*Object)
	return ok && oo == o
}

func (o *Object) GetAttr(name string) (Value, bool) { return o.Attrs.Get(name) }
func (o *Object) SetAttr(name string, v Value)      { o.Attrs.Set(name, v) }
func (o *Object) DelAttr(name string) bool           { return o.Attrs.Delete(name) }

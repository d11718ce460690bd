// Package ref implements the four-variant reference abstraction: a
// polymorphic "place" — name, attribute, indexed slot, or tuple of
// places — supporting Get/Set/Del with a single uniform shape, so
// LOAD_*/STORE_*/DELETE_* opcodes don't each need their own resolution
// logic.
package ref

import (
	"fmt"

	"github.com/barnvm/corevm/code"
	"github.com/barnvm/corevm/frame"
	"github.com/barnvm/corevm/value"
	"github.com/barnvm/corevm/vmerr"
)

// Builtins is the VM-provided table consulted as the last resolution
// step for LOCAL and GLOBAL name lookups. Kept as a narrow interface
// here so this package doesn't need to import the concrete registry.
type Builtins interface {
	Lookup(name string) (value.Value, bool)
}

// Ref is the common interface every reference variant satisfies.
type Ref interface {
	Get(b Builtins, f *frame.Frame) (value.Value, error)
	Set(b Builtins, f *frame.Frame, v value.Value) error
	Del(b Builtins, f *frame.Frame) error
}

// NameRef resolves an identifier against LOCAL or GLOBAL scope. A
// NameRef tagged AttrScope is only ever embedded inside an AttrRef,
// which performs the actual attribute-table lookup itself; calling
// Get/Set/Del directly on an AttrScope NameRef is a programming error
// in this package's own callers, not a user error.
type NameRef struct {
	Name  string
	Scope code.Scope
}

func (r NameRef) Get(b Builtins, f *frame.Frame) (value.Value, error) {
	switch r.Scope {
	case code.LocalScope:
		if v, ok := f.Locals[r.Name]; ok {
			return v, nil
		}
		if v, ok := f.Module.GetAttr(r.Name); ok {
			return v, nil
		}
		if v, ok := b.Lookup(r.Name); ok {
			return v, nil
		}
		return nil, vmerr.NewRuntimeError(vmerr.NameError, fmt.Sprintf("name '%s' is not defined", r.Name))
	case code.GlobalScope:
		if v, ok := f.Module.GetAttr(r.Name); ok {
			return v, nil
		}
		if v, ok := b.Lookup(r.Name); ok {
			return v, nil
		}
		return nil, vmerr.NewRuntimeError(vmerr.NameError, fmt.Sprintf("name '%s' is not defined", r.Name))
	default:
		vmerr.Raise("ref: NameRef with ATTR scope used outside of an AttrRef")
		return nil, nil
	}
}

func (r NameRef) Set(b Builtins, f *frame.Frame, v value.Value) error {
	switch r.Scope {
	case code.LocalScope:
		f.Locals[r.Name] = v
		return nil
	case code.GlobalScope:
		f.Module.SetAttr(r.Name, v)
		return nil
	default:
		vmerr.Raise("ref: NameRef with ATTR scope used outside of an AttrRef")
		return nil
	}
}

func (r NameRef) Del(b Builtins, f *frame.Frame) error {
	switch r.Scope {
	case code.LocalScope:
		if _, ok := f.Locals[r.Name]; !ok {
			return vmerr.NewRuntimeError(vmerr.NameError, fmt.Sprintf("name '%s' is not defined", r.Name))
		}
		delete(f.Locals, r.Name)
		return nil
	case code.GlobalScope:
		if !f.Module.DelAttr(r.Name) {
			return vmerr.NewRuntimeError(vmerr.NameError, fmt.Sprintf("name '%s' is not defined", r.Name))
		}
		return nil
	default:
		vmerr.Raise("ref: NameRef with ATTR scope used outside of an AttrRef")
		return nil
	}
}

// AttrRef targets an attribute of an owning base value, resolved
// through the base's attribute mapping.
type AttrRef struct {
	Base value.Value
	Attr NameRef // Scope is always AttrScope; only Name is used
}

func (r AttrRef) Get(b Builtins, f *frame.Frame) (value.Value, error) {
	obj, ok := r.Base.(value.Attributable)
	if !ok {
		return nil, vmerr.NewRuntimeError(vmerr.AttributeError, fmt.Sprintf("'%s' object has no attributes", r.Base.Type()))
	}
	v, ok := obj.GetAttr(r.Attr.Name)
	if !ok {
		return nil, vmerr.NewRuntimeError(vmerr.AttributeError, fmt.Sprintf("no attribute '%s'", r.Attr.Name))
	}
	return v, nil
}

func (r AttrRef) Set(b Builtins, f *frame.Frame, v value.Value) error {
	obj, ok := r.Base.(value.Attributable)
	if !ok {
		return vmerr.NewRuntimeError(vmerr.AttributeError, fmt.Sprintf("'%s' object has no attributes", r.Base.Type()))
	}
	obj.SetAttr(r.Attr.Name, v)
	return nil
}

func (r AttrRef) Del(b Builtins, f *frame.Frame) error {
	obj, ok := r.Base.(value.Attributable)
	if !ok {
		return vmerr.NewRuntimeError(vmerr.AttributeError, fmt.Sprintf("'%s' object has no attributes", r.Base.Type()))
	}
	if !obj.DelAttr(r.Attr.Name) {
		return vmerr.NewRuntimeError(vmerr.AttributeError, fmt.Sprintf("no attribute '%s'", r.Attr.Name))
	}
	return nil
}

// IndexRef targets a container slot, dispatched through the
// container's __getitem__/__setitem__/__delitem__. Errors from the
// container propagate unchanged.
type IndexRef struct {
	Base  value.Value
	Index value.Value
}

func (r IndexRef) Get(b Builtins, f *frame.Frame) (value.Value, error) {
	container, ok := r.Base.(value.Indexable)
	if !ok {
		return nil, vmerr.NewRuntimeError(vmerr.TypeError, fmt.Sprintf("'%s' object is not subscriptable", r.Base.Type()))
	}
	return container.GetItem(r.Index)
}

func (r IndexRef) Set(b Builtins, f *frame.Frame, v value.Value) error {
	container, ok := r.Base.(value.Indexable)
	if !ok {
		return vmerr.NewRuntimeError(vmerr.TypeError, fmt.Sprintf("'%s' object does not support item assignment", r.Base.Type()))
	}
	return container.SetItem(r.Index, v)
}

func (r IndexRef) Del(b Builtins, f *frame.Frame) error {
	container, ok := r.Base.(value.Indexable)
	if !ok {
		return vmerr.NewRuntimeError(vmerr.TypeError, fmt.Sprintf("'%s' object does not support item deletion", r.Base.Type()))
	}
	return container.DelItem(r.Index)
}

// TupleRef destructures an ordered sequence of sub-references. Set
// requires the right-hand side to be Iterable of exactly matching
// length; on a length mismatch no element is mutated.
type TupleRef struct {
	Refs []Ref
}

func (r TupleRef) Get(b Builtins, f *frame.Frame) (value.Value, error) {
	items := make([]value.Value, len(r.Refs))
	for i, sub := range r.Refs {
		v, err := sub.Get(b, f)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return value.NewList(items...), nil
}

func (r TupleRef) Set(b Builtins, f *frame.Frame, rhs value.Value) error {
	iterable, ok := rhs.(value.Iterable)
	if !ok {
		return vmerr.NewRuntimeError(vmerr.TypeError, "cannot unpack non-iterable value")
	}
	items, err := iterable.Iterate()
	if err != nil {
		return err
	}
	if len(items) != len(r.Refs) {
		return vmerr.NewRuntimeError(vmerr.ValueError,
			fmt.Sprintf("expected %d values to unpack, got %d", len(r.Refs), len(items)))
	}
	for i, sub := range r.Refs {
		if err := sub.Set(b, f, items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r TupleRef) Del(b Builtins, f *frame.Frame) error {
	for _, sub := range r.Refs {
		if err := sub.Del(b, f); err != nil {
			return err
		}
	}
	return nil
}

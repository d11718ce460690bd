package ref

import (
	"testing"

	"github.com/barnvm/corevm/code"
	"github.com/barnvm/corevm/frame"
	"github.com/barnvm/corevm/source"
	"github.com/barnvm/corevm/value"
)

type noBuiltins struct{}

func (noBuiltins) Lookup(name string) (value.Value, bool) { return nil, false }

type mapBuiltins map[string]value.Value

func (m mapBuiltins) Lookup(name string) (value.Value, bool) { v, ok := m[name]; return v, ok }

func newTestFrame() *frame.Frame {
	src := source.New("x = 1\n", "<test>", source.ExecMode)
	c := code.New(src, "<module>")
	return frame.New(c, value.NewModule("<module>"), nil)
}

func TestNameRefLocalRoundTrip(t *testing.T) {
	f := newTestFrame()
	r := NameRef{Name: "x", Scope: code.LocalScope}
	if err := r.Set(noBuiltins{}, f, value.Int(42)); err != nil {
		t.Fatal(err)
	}
	got, err := r.Get(noBuiltins{}, f)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(value.Int(42)) {
		t.Fatalf("got %v, want 42", got)
	}
}

func TestNameRefLocalFallsThroughToGlobalsThenBuiltins(t *testing.T) {
	f := newTestFrame()
	f.Module.SetAttr("g", value.Str("global"))
	r := NameRef{Name: "g", Scope: code.LocalScope}
	got, err := r.Get(noBuiltins{}, f)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(value.Str("global")) {
		t.Fatalf("got %v, want global", got)
	}

	r2 := NameRef{Name: "len", Scope: code.LocalScope}
	builtins := mapBuiltins{"len": value.Int(7)}
	got2, err := r2.Get(builtins, f)
	if err != nil {
		t.Fatal(err)
	}
	if !got2.Equal(value.Int(7)) {
		t.Fatalf("got %v, want 7", got2)
	}
}

func TestNameRefUndefinedRaisesNameError(t *testing.T) {
	f := newTestFrame()
	r := NameRef{Name: "nope", Scope: code.LocalScope}
	_, err := r.Get(noBuiltins{}, f)
	if err == nil {
		t.Fatal("expected NameError")
	}
}

func TestNameRefGlobalWritesModule(t *testing.T) {
	f := newTestFrame()
	r := NameRef{Name: "g", Scope: code.GlobalScope}
	if err := r.Set(noBuiltins{}, f, value.Int(1)); err != nil {
		t.Fatal(err)
	}
	if v, ok := f.Module.GetAttr("g"); !ok || !v.Equal(value.Int(1)) {
		t.Fatalf("module attr g = %v, %v", v, ok)
	}
}

func TestAttrRefRoundTrip(t *testing.T) {
	f := newTestFrame()
	obj := value.NewObject("Point")
	r := AttrRef{Base: obj, Attr: NameRef{Name: "x", Scope: code.AttrScope}}
	if err := r.Set(noBuiltins{}, f, value.Int(3)); err != nil {
		t.Fatal(err)
	}
	got, err := r.Get(noBuiltins{}, f)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(value.Int(3)) {
		t.Fatalf("got %v, want 3", got)
	}
	if err := r.Del(noBuiltins{}, f); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get(noBuiltins{}, f); err == nil {
		t.Fatal("expected AttributeError after delete")
	}
}

func TestIndexRefRoundTrip(t *testing.T) {
	f := newTestFrame()
	list := value.NewList(value.Int(1), value.Int(2))
	r := IndexRef{Base: list, Index: value.Int(0)}
	if err := r.Set(noBuiltins{}, f, value.Str("z")); err != nil {
		t.Fatal(err)
	}
	got, err := r.Get(noBuiltins{}, f)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(value.Str("z")) {
		t.Fatalf("got %v, want z", got)
	}
}

// Tuple-ref length law: set succeeds iff the rhs yields
// exactly k items, and no element is mutated on a length mismatch.
func TestTupleRefSetLengthMismatch(t *testing.T) {
	f := newTestFrame()
	a := NameRef{Name: "a", Scope: code.LocalScope}
	b := NameRef{Name: "b", Scope: code.LocalScope}
	tuple := TupleRef{Refs: []Ref{a, b}}

	// Pre-seed so we can detect whether Set mutated anything.
	f.Locals["a"] = value.Int(-1)
	f.Locals["b"] = value.Int(-1)

	err := tuple.Set(noBuiltins{}, f, value.NewList(value.Int(1), value.Int(2), value.Int(3)))
	if err == nil {
		t.Fatal("expected ValueError for length mismatch")
	}
	if !f.Locals["a"].Equal(value.Int(-1)) || !f.Locals["b"].Equal(value.Int(-1)) {
		t.Fatal("tuple set must not mutate any element on length mismatch")
	}
}

func TestTupleRefSetAndGet(t *testing.T) {
	f := newTestFrame()
	a := NameRef{Name: "a", Scope: code.LocalScope}
	b := NameRef{Name: "b", Scope: code.LocalScope}
	tuple := TupleRef{Refs: []Ref{a, b}}

	if err := tuple.Set(noBuiltins{}, f, value.NewList(value.Int(1), value.Str("two"))); err != nil {
		t.Fatal(err)
	}
	got, err := tuple.Get(noBuiltins{}, f)
	if err != nil {
		t.Fatal(err)
	}
	want := value.NewList(value.Int(1), value.Str("two"))
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTupleRefDel(t *testing.T) {
	f := newTestFrame()
	f.Locals["a"] = value.Int(1)
	f.Locals["b"] = value.Int(2)
	tuple := TupleRef{Refs: []Ref{
		NameRef{Name: "a", Scope: code.LocalScope},
		NameRef{Name: "b", Scope: code.LocalScope},
	}}
	if err := tuple.Del(noBuiltins{}, f); err != nil {
		t.Fatal(err)
	}
	if _, ok := f.Locals["a"]; ok {
		t.Fatal("a should be deleted")
	}
	if _, ok := f.Locals["b"]; ok {
		t.Fatal("b should be deleted")
	}
}

package value

import "testing"

func TestListIndexRoundTrip(t *testing.T) {
	l := NewList(Int(1), Int(2), Int(3))
	if err := l.SetItem(Int(1), Str("x")); err != nil {
		t.Fatal(err)
	}
	got, err := l.GetItem(Int(1))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(Str("x")) {
		t.Fatalf("got %v, want x", got)
	}
}

func TestListNegativeIndex(t *testing.T) {
	l := NewList(Int(1), Int(2), Int(3))
	got, err := l.GetItem(Int(-1))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(Int(3)) {
		t.Fatalf("got %v, want 3", got)
	}
}

func TestListDelItem(t *testing.T) {
	l := NewList(Int(1), Int(2), Int(3))
	if err := l.DelItem(Int(1)); err != nil {
		t.Fatal(err)
	}
	if len(l.Items) != 2 || !l.Items[1].Equal(Int(3)) {
		t.Fatalf("unexpected list after delete: %v", l.Items)
	}
}

func TestListOutOfRange(t *testing.T) {
	l := NewList(Int(1))
	if _, err := l.GetItem(Int(5)); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestAttrsRoundTrip(t *testing.T) {
	a := NewAttrs()
	a.Set("x", Int(42))
	v, ok := a.Get("x")
	if !ok || !v.Equal(Int(42)) {
		t.Fatalf("got %v, %v", v, ok)
	}
	if !a.Delete("x") {
		t.Fatal("expected delete to report success")
	}
	if _, ok := a.Get("x"); ok {
		t.Fatal("expected x to be gone")
	}
}

func TestModuleIsAttributable(t *testing.T) {
	var _ Attributable = NewModule("m")
}

func TestBuiltinCall(t *testing.T) {
	b := &Builtin{Name: "double", Fn: func(args []Value) (Value, error) {
		return Int(args[0].(Int) * 2), nil
	}}
	got, err := b.Call([]Value{Int(21)})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(Int(42)) {
		t.Fatalf("got %v", got)
	}
}

package stdlib

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Architecture-Mechanism/bellronos/internal/interp"
)

func dict(t *testing.T, l *Library, name string) *interp.DictValue {
	t.Helper()
	m, ok := l.Module(name)
	if !ok {
		t.Fatalf("module %q not found", name)
	}
	d, ok := m.(*interp.DictValue)
	if !ok {
		t.Fatalf("module %q is %T, want *interp.DictValue", name, m)
	}
	return d
}

func fn(t *testing.T, d *interp.DictValue, name string) *interp.NativeFunctionValue {
	t.Helper()
	v, ok := d.Get(name)
	if !ok {
		t.Fatalf("%s not found", name)
	}
	f, ok := v.(*interp.NativeFunctionValue)
	if !ok {
		t.Fatalf("%s is %T, want *interp.NativeFunctionValue", name, v)
	}
	return f
}

func TestMathConstants(t *testing.T) {
	math := dict(t, New(), "math")
	pi, ok := math.Get("pi")
	if !ok {
		t.Fatal("math.pi not found")
	}
	f, ok := pi.(*interp.FloatValue)
	if !ok || f.Value < 3.14 || f.Value > 3.15 {
		t.Fatalf("got %#v, want pi", pi)
	}
}

func TestMathSqrt(t *testing.T) {
	math := dict(t, New(), "math")
	sqrt := fn(t, math, "sqrt")
	v, err := sqrt.Fn([]interp.Value{&interp.FloatValue{Value: 9}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, ok := v.(*interp.FloatValue)
	if !ok || f.Value != 3 {
		t.Fatalf("got %#v, want Float(3)", v)
	}
}

func TestMathSqrtNegativeIsError(t *testing.T) {
	math := dict(t, New(), "math")
	sqrt := fn(t, math, "sqrt")
	if _, err := sqrt.Fn([]interp.Value{&interp.FloatValue{Value: -4}}); err == nil {
		t.Fatal("expected an error for sqrt of a negative number")
	}
}

func TestIOPrintWritesSpaceJoinedInspectForms(t *testing.T) {
	var out bytes.Buffer
	io := dict(t, New(WithOutput(&out)), "io")
	print := fn(t, io, "print")
	_, err := print.Fn([]interp.Value{&interp.StringValue{Value: "hi"}, &interp.IntValue{Value: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); got != "hi 2\n" {
		t.Fatalf("got %q, want %q", got, "hi 2\n")
	}
}

func TestIOInputReadsOneLineAndWritesPrompt(t *testing.T) {
	var out bytes.Buffer
	l := New(WithInput(strings.NewReader("answer\n")), WithOutput(&out))
	io := dict(t, l, "io")
	input := fn(t, io, "input")
	v, err := input.Fn([]interp.Value{&interp.StringValue{Value: "? "}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := v.(*interp.StringValue)
	if !ok || s.Value != "answer" {
		t.Fatalf("got %#v, want String(answer)", v)
	}
	if out.String() != "? " {
		t.Fatalf("got prompt %q", out.String())
	}
}

func TestStringModule(t *testing.T) {
	str := dict(t, New(), "string")

	length := fn(t, str, "length")
	v, err := length.Fn([]interp.Value{&interp.StringValue{Value: "hello"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, ok := v.(*interp.IntValue); !ok || n.Value != 5 {
		t.Fatalf("got %#v, want Int(5)", v)
	}

	upper := fn(t, str, "to_upper")
	v, err = upper.Fn([]interp.Value{&interp.StringValue{Value: "hello"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, ok := v.(*interp.StringValue); !ok || s.Value != "HELLO" {
		t.Fatalf("got %#v, want String(HELLO)", v)
	}

	lower := fn(t, str, "to_lower")
	v, err = lower.Fn([]interp.Value{&interp.StringValue{Value: "HELLO"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, ok := v.(*interp.StringValue); !ok || s.Value != "hello" {
		t.Fatalf("got %#v, want String(hello)", v)
	}
}

func TestStringLengthWrongTypeIsError(t *testing.T) {
	str := dict(t, New(), "string")
	length := fn(t, str, "length")
	if _, err := length.Fn([]interp.Value{&interp.IntValue{Value: 1}}); err == nil {
		t.Fatal("expected an error for a non-String argument")
	}
}

package interp

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, src string) (Value, error) {
	t.Helper()
	var out bytes.Buffer
	interp := New(WithOutput(&out))
	return interp.Run(src, "test.bel")
}

func TestRunAssignAndArithmetic(t *testing.T) {
	val, err := run(t, "set x to 2\nset y to 3\nset z to x + y\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, ok := val.(*FloatValue)
	if !ok || f.Value != 5 {
		t.Fatalf("got %#v, want Float(5)", val)
	}
}

func TestRunFunctionDefThenCallProducesInt(t *testing.T) {
	src := "define add(a: int, b: int) -> int:\nreturn a + b\nadd(1, 2)\n"
	val, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := val.(*IntValue)
	if !ok || n.Value != 3 {
		t.Fatalf("got %#v, want Int(3)", val)
	}
}

func TestRunDivisionAlwaysProducesFloat(t *testing.T) {
	src := "define div(a: int, b: int) -> int:\nreturn a / b\ndiv(4, 2)\n"
	val, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, ok := val.(*FloatValue)
	if !ok || f.Value != 2 {
		t.Fatalf("got %#v, want Float(2)", val)
	}
}

func TestRunIfElse(t *testing.T) {
	src := "if 1 < 2:\nset r to \"yes\"\nelse:\nset r to \"no\"\nr\n"
	val, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := val.(*StringValue)
	if !ok || s.Value != "yes" {
		t.Fatalf("got %#v", val)
	}
}

func TestRunWhileLoop(t *testing.T) {
	src := "set i to 0\nset total to 0\nwhile i < 5:\nset total to total + i\nset i to i + 1\ntotal\n"
	val, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, ok := val.(*FloatValue)
	if !ok || f.Value != 10 {
		t.Fatalf("got %#v, want Float(10)", val)
	}
}

func TestRunForLoopOverList(t *testing.T) {
	src := "set total to 0\nfor n in [1, 2, 3]:\nset total to total + n\ntotal\n"
	val, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, ok := val.(*FloatValue)
	if !ok || f.Value != 6 {
		t.Fatalf("got %#v, want Float(6)", val)
	}
}

func TestRunClassDefThenInstantiation(t *testing.T) {
	src := "class Point:\ndefine hello(self: Point) -> string:\nreturn \"hi\"\nset p to Point()\n"
	val, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inst, ok := val.(*InstanceValue)
	if !ok || inst.ClassName != "Point" {
		t.Fatalf("got %#v, want Instance(Point)", val)
	}
}

func TestRunAttributeResolvesMethodValue(t *testing.T) {
	src := "class Point:\ndefine hello(self: Point) -> string:\nreturn \"hi\"\nset p to Point()\np.hello\n"
	val, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn, ok := val.(*FunctionValue)
	if !ok || fn.Name != "hello" {
		t.Fatalf("got %#v, want the hello FunctionValue", val)
	}
}

func TestRunMethodInvokeBindsReceiver(t *testing.T) {
	src := "class Point:\ndefine hello(self: Point) -> string:\nreturn \"hi\"\nset p to Point()\np.hello()\n"
	val, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := val.(*StringValue)
	if !ok || s.Value != "hi" {
		t.Fatalf("got %#v, want String(hi)", val)
	}
}

func TestRunClosureCall(t *testing.T) {
	src := "set f to closure(x: int): x + 1\nf(4)\n"
	val, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// x is coerced to Int, but the literal 1 is a Float, so x + 1 is Float.
	f, ok := val.(*FloatValue)
	if !ok || f.Value != 5 {
		t.Fatalf("got %#v, want Float(5)", val)
	}
}

// Assignment writes through to the nearest enclosing scope that already
// binds the name, so a function body's `set x` mutates the module-level
// x it closes over.
func TestRunAssignInFunctionWritesThroughToOuterBinding(t *testing.T) {
	src := "set x to 1\ndefine bump() -> int:\nset x to 99\nreturn x\nbump()\nx\n"
	val, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, ok := val.(*FloatValue)
	if !ok || f.Value != 99 {
		t.Fatalf("got %#v, want the outer x rebound to Float(99)", val)
	}
}

// A name first assigned inside a function stays local to the call frame.
func TestRunAssignOfFreshNameStaysLocalToCall(t *testing.T) {
	src := "define make() -> int:\nset tmp to 7\nreturn tmp\nmake()\ntmp\n"
	_, err := run(t, src)
	if err == nil {
		t.Fatal("expected a runtime error: tmp must not leak to module scope")
	}
}

func TestRunStringConcatenation(t *testing.T) {
	val, err := run(t, "set s to \"foo\" + \"bar\"\ns\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := val.(*StringValue)
	if !ok || s.Value != "foobar" {
		t.Fatalf("got %#v", val)
	}
}

func TestRunUndefinedNameIsRuntimeError(t *testing.T) {
	_, err := run(t, "set x to y + 1\n")
	if err == nil {
		t.Fatal("expected a runtime error for undefined name")
	}
	if !strings.Contains(err.Error(), "Runtime error") {
		t.Fatalf("expected a Runtime error, got %v", err)
	}
}

func TestRunDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := run(t, "set x to 1 / 0\n")
	if err == nil {
		t.Fatal("expected a runtime error for division by zero")
	}
}

func TestRunParseErrorSurfacesAsParseKind(t *testing.T) {
	_, err := run(t, "set x to \n")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(err.Error(), "Parse error") {
		t.Fatalf("expected a Parse error, got %v", err)
	}
}

func TestRunYieldOutsideGeneratorIsRuntimeError(t *testing.T) {
	_, err := run(t, "yield 1\n")
	if err == nil {
		t.Fatal("expected a runtime error for yield outside a generator")
	}
}

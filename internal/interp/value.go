// Package interp is the tree-walking evaluator: it drives a mutable
// value environment against the AST the parser produces.
package interp

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Architecture-Mechanism/bellronos/internal/ast"
)

// Value is a runtime value in the Bellronos evaluator. Every concrete
// value type implements it; this interface, not a closed sum type, is how
// the tagged-variant data model in the language's own design is expressed
// in Go.
type Value interface {
	Type() string
	Inspect() string
}

// IntValue is a value tagged as Int: reachable through a declared
// annotation or a native intrinsic such as string.length, since the lexer
// has no integer literal syntax of its own.
type IntValue struct{ Value int64 }

func (v *IntValue) Type() string    { return "Int" }
func (v *IntValue) Inspect() string { return strconv.FormatInt(v.Value, 10) }

// FloatValue is a value tagged as Float; every numeric literal produces one.
type FloatValue struct{ Value float64 }

func (v *FloatValue) Type() string    { return "Float" }
func (v *FloatValue) Inspect() string { return strconv.FormatFloat(v.Value, 'g', -1, 64) }

type StringValue struct{ Value string }

func (v *StringValue) Type() string    { return "String" }
func (v *StringValue) Inspect() string { return v.Value }

type BoolValue struct{ Value bool }

func (v *BoolValue) Type() string    { return "Bool" }
func (v *BoolValue) Inspect() string { return strconv.FormatBool(v.Value) }

// NoneValue is the single None value.
type NoneValue struct{}

func (v *NoneValue) Type() string    { return "None" }
func (v *NoneValue) Inspect() string { return "none" }

var None = &NoneValue{}

type ListValue struct{ Elements []Value }

func (v *ListValue) Type() string { return "List" }
func (v *ListValue) Inspect() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = e.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DictValue maps String keys to values. Keys returns them in insertion
// order; Inspect lists the entries sorted by key.
type DictValue struct {
	keys   []string
	values map[string]Value
}

func NewDict() *DictValue {
	return &DictValue{values: make(map[string]Value)}
}

func (d *DictValue) Type() string { return "Dict" }

func (d *DictValue) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

func (d *DictValue) Set(key string, val Value) {
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = val
}

func (d *DictValue) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

func (d *DictValue) Inspect() string {
	keys := append([]string(nil), d.keys...)
	sort.Strings(keys)
	var parts []string
	for _, k := range keys {
		parts = append(parts, strconv.Quote(k)+": "+d.values[k].Inspect())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FunctionValue is a user-defined function: its parameter list, body, and
// the environment captured at the point of definition.
type FunctionValue struct {
	Name     string
	Params   []ast.Param
	Body     []ast.Statement
	Env      *Environment
}

func (v *FunctionValue) Type() string    { return "Function" }
func (v *FunctionValue) Inspect() string { return "<function " + v.Name + ">" }

// NativeFunctionValue wraps a Go closure as a callable value, used by the
// standard library's native intrinsics.
type NativeFunctionValue struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (v *NativeFunctionValue) Type() string    { return "Function" }
func (v *NativeFunctionValue) Inspect() string { return "<native function " + v.Name + ">" }

// ClassValue is a class's method table.
type ClassValue struct {
	Name    string
	Methods map[string]*FunctionValue
}

func (v *ClassValue) Type() string    { return "Class" }
func (v *ClassValue) Inspect() string { return "<class " + v.Name + ">" }

// InstanceValue references its class by name and carries its own
// attribute map; constructing one never runs user code (see doc.go).
type InstanceValue struct {
	ClassName  string
	Class      *ClassValue
	Attributes map[string]Value
}

func (v *InstanceValue) Type() string    { return "Instance" }
func (v *InstanceValue) Inspect() string { return "<instance of " + v.ClassName + ">" }

// ClosureValue is an anonymous single-expression function.
type ClosureValue struct {
	Params []ast.Param
	Body   ast.Expression
	Env    *Environment
}

func (v *ClosureValue) Type() string    { return "Function" }
func (v *ClosureValue) Inspect() string { return "<closure>" }

// GeneratorValue captures a body without ever advancing it, per the
// language's degenerate generator semantics (see doc.go).
type GeneratorValue struct {
	Body   []ast.Statement
	Env    *Environment
	Cursor int
}

func (v *GeneratorValue) Type() string    { return "Generator" }
func (v *GeneratorValue) Inspect() string { return "<generator>" }

// Identity returns a stable identity for callables and instances, used by
// `==`/`!=` when structural comparison does not apply.
func Identity(v Value) any {
	switch val := v.(type) {
	case *FunctionValue:
		return val
	case *NativeFunctionValue:
		return val
	case *ClassValue:
		return val
	case *InstanceValue:
		return val
	case *ClosureValue:
		return val
	case *GeneratorValue:
		return val
	default:
		return nil
	}
}

// Equals implements the value-equality rule from the data model:
// structural equality for primitives and collections, identity for
// callables and instances.
func Equals(a, b Value) bool {
	switch av := a.(type) {
	case *IntValue:
		switch bv := b.(type) {
		case *IntValue:
			return av.Value == bv.Value
		case *FloatValue:
			return float64(av.Value) == bv.Value
		}
		return false
	case *FloatValue:
		switch bv := b.(type) {
		case *IntValue:
			return av.Value == float64(bv.Value)
		case *FloatValue:
			return av.Value == bv.Value
		}
		return false
	case *StringValue:
		bv, ok := b.(*StringValue)
		return ok && av.Value == bv.Value
	case *BoolValue:
		bv, ok := b.(*BoolValue)
		return ok && av.Value == bv.Value
	case *NoneValue:
		_, ok := b.(*NoneValue)
		return ok
	case *ListValue:
		bv, ok := b.(*ListValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equals(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *DictValue:
		bv, ok := b.(*DictValue)
		if !ok || len(av.keys) != len(bv.keys) {
			return false
		}
		for k, v := range av.values {
			other, ok := bv.values[k]
			if !ok || !Equals(v, other) {
				return false
			}
		}
		return true
	default:
		ia, ib := Identity(a), Identity(b)
		return ia != nil && ia == ib
	}
}

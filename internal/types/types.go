// Package types models Bellronos's static type system: a small tagged
// union plus the assignability relation the type checker enforces.
package types

import "fmt"

// Kind tags a Type's shape.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindBool
	KindList
	KindDict
	KindFunction
	KindClass
	KindInstance
	KindNone
	KindAny
	KindCustom
	KindInterop
)

// InteropKind enumerates the small set of foreign type tags an interop
// call's inferred type may carry.
type InteropKind int

const (
	InteropUnknown InteropKind = iota
	InteropInt
	InteropFloat
	InteropString
	InteropBool
	InteropArray
	InteropObject
)

func (k InteropKind) String() string {
	switch k {
	case InteropInt:
		return "int"
	case InteropFloat:
		return "float"
	case InteropString:
		return "string"
	case InteropBool:
		return "bool"
	case InteropArray:
		return "array"
	case InteropObject:
		return "object"
	default:
		return "unknown"
	}
}

// Type is a tagged variant covering every static type Bellronos's checker
// assigns: the primitives, parametric List/Dict, Function signatures,
// Class/Instance by name, None, Any, a free-form Custom name, and Interop.
type Type struct {
	Kind Kind

	// List: Elem is the element type.
	Elem *Type

	// Dict: Key and Elem are the key/value types.
	Key *Type

	// Function: Params and Return describe the signature.
	Params []*Type
	Return *Type

	// Class / Instance / Custom: Name identifies the declared type.
	Name string

	// Interop: Foreign carries the inferred foreign type tag.
	Foreign InteropKind
}

func Int() *Type    { return &Type{Kind: KindInt} }
func Float() *Type  { return &Type{Kind: KindFloat} }
func String() *Type { return &Type{Kind: KindString} }
func Bool() *Type   { return &Type{Kind: KindBool} }
func None() *Type   { return &Type{Kind: KindNone} }
func Any() *Type    { return &Type{Kind: KindAny} }

func List(elem *Type) *Type      { return &Type{Kind: KindList, Elem: elem} }
func Dict(key, elem *Type) *Type { return &Type{Kind: KindDict, Key: key, Elem: elem} }

func Function(params []*Type, ret *Type) *Type {
	return &Type{Kind: KindFunction, Params: params, Return: ret}
}

func Class(name string) *Type    { return &Type{Kind: KindClass, Name: name} }
func Instance(name string) *Type { return &Type{Kind: KindInstance, Name: name} }
func Custom(name string) *Type   { return &Type{Kind: KindCustom, Name: name} }

func Interop(foreign InteropKind) *Type {
	return &Type{Kind: KindInterop, Foreign: foreign}
}

// IsNumeric reports whether t is Int or Float.
func (t *Type) IsNumeric() bool {
	return t != nil && (t.Kind == KindInt || t.Kind == KindFloat)
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindList:
		return fmt.Sprintf("list[%s]", t.Elem)
	case KindDict:
		return fmt.Sprintf("dict{%s:%s}", t.Key, t.Elem)
	case KindFunction:
		return fmt.Sprintf("function(%v) -> %s", t.Params, t.Return)
	case KindClass:
		return fmt.Sprintf("class %s", t.Name)
	case KindInstance:
		return t.Name
	case KindNone:
		return "none"
	case KindAny:
		return "any"
	case KindCustom:
		return t.Name
	case KindInterop:
		return fmt.Sprintf("interop(%s)", t.Foreign)
	default:
		return "?"
	}
}

// Compatible decides whether a value of type from may stand in for a
// value of type to. It is reflexive, symmetric on Any, permissive between
// Int and Float (numeric widening), componentwise for parametric types,
// and strict for Interop: Interop(t) is compatible only with Interop(t).
func Compatible(from, to *Type) bool {
	if from == nil || to == nil {
		return false
	}
	if from.Kind == KindAny || to.Kind == KindAny {
		return true
	}
	if from.IsNumeric() && to.IsNumeric() {
		return true
	}
	if from.Kind != to.Kind {
		return false
	}
	switch from.Kind {
	case KindList:
		return Compatible(from.Elem, to.Elem)
	case KindDict:
		return Compatible(from.Key, to.Key) && Compatible(from.Elem, to.Elem)
	case KindFunction:
		if len(from.Params) != len(to.Params) {
			return false
		}
		for i := range from.Params {
			if !Compatible(from.Params[i], to.Params[i]) {
				return false
			}
		}
		return Compatible(from.Return, to.Return)
	case KindClass, KindInstance, KindCustom:
		return from.Name == to.Name
	case KindInterop:
		return from.Foreign == to.Foreign
	default:
		return true
	}
}

package interp

import (
	"fmt"

	"github.com/Architecture-Mechanism/bellronos/internal/ast"
	"github.com/Architecture-Mechanism/bellronos/internal/lexer"
	"github.com/Architecture-Mechanism/bellronos/internal/types"
)

func (interp *Interpreter) eval(expr ast.Expression, env *Environment) (Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return &FloatValue{Value: e.Value}, nil
	case *ast.StringLiteral:
		return &StringValue{Value: e.Value}, nil
	case *ast.BoolLiteral:
		return &BoolValue{Value: e.Value}, nil
	case *ast.Identifier:
		val, ok := env.Get(e.Value)
		if !ok {
			return nil, runtimeErrf(e.Pos(), "undefined name: %s", e.Value)
		}
		return val, nil
	case *ast.Grouped:
		return interp.eval(e.Inner, env)
	case *ast.UnaryOp:
		return interp.evalUnary(e, env)
	case *ast.BinOp:
		return interp.evalBinOp(e, env)
	case *ast.Call:
		return interp.evalCall(e, env)
	case *ast.Invoke:
		return interp.evalInvoke(e, env)
	case *ast.ListLiteral:
		return interp.evalListLiteral(e, env)
	case *ast.DictLiteral:
		return interp.evalDictLiteral(e, env)
	case *ast.Attribute:
		return interp.evalAttribute(e, env)
	case *ast.ClosureExpr:
		return &ClosureValue{Params: e.Params, Body: e.Body, Env: env}, nil
	case *ast.InteropCall:
		return interp.evalInteropCall(e, env)
	case *ast.Await:
		// Await evaluates its operand strictly: there is no suspension
		// model to return control to.
		return interp.eval(e.Operand, env)
	default:
		return nil, fmt.Errorf("interp: unhandled expression type %T", expr)
	}
}

// evalUnary desugars `-x` to `0 - x`; the zero is a Float, so a negated
// value is always a Float regardless of the operand's own tag.
func (interp *Interpreter) evalUnary(e *ast.UnaryOp, env *Environment) (Value, error) {
	operand, err := interp.eval(e.Operand, env)
	if err != nil {
		return nil, err
	}
	return applyBinOp(e.Pos(), &FloatValue{Value: 0}, "-", operand)
}

func (interp *Interpreter) evalBinOp(e *ast.BinOp, env *Environment) (Value, error) {
	left, err := interp.eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := interp.eval(e.Right, env)
	if err != nil {
		return nil, err
	}
	return applyBinOp(e.Pos(), left, e.Op, right)
}

func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case *IntValue:
		return float64(n.Value), true
	case *FloatValue:
		return n.Value, true
	default:
		return 0, false
	}
}

func bothInt(a, b Value) bool {
	_, aok := a.(*IntValue)
	_, bok := b.(*IntValue)
	return aok && bok
}

// applyBinOp dispatches a binary operator on already-evaluated operands,
// matching the type checker's own table: `+ - * /` are numeric (`+` also
// concatenates strings), comparisons require numeric operands and yield
// Bool, `== !=` accept any operand pair and yield Bool. Arithmetic
// preserves Int-vs-Float of its operands, except `/`, which always
// produces Float.
func applyBinOp(pos lexer.Position, left Value, op string, right Value) (Value, error) {
	switch op {
	case "==":
		return &BoolValue{Value: Equals(left, right)}, nil
	case "!=":
		return &BoolValue{Value: !Equals(left, right)}, nil
	}

	if op == "+" {
		ls, lok := left.(*StringValue)
		rs, rok := right.(*StringValue)
		if lok && rok {
			return &StringValue{Value: ls.Value + rs.Value}, nil
		}
	}

	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, runtimeErrf(pos, "operator %q requires numeric operands, got %s and %s", op, left.Type(), right.Type())
	}

	switch op {
	case "+", "-", "*":
		var result float64
		switch op {
		case "+":
			result = lf + rf
		case "-":
			result = lf - rf
		case "*":
			result = lf * rf
		}
		if bothInt(left, right) {
			return &IntValue{Value: int64(result)}, nil
		}
		return &FloatValue{Value: result}, nil
	case "/":
		if rf == 0 {
			return nil, runtimeErrf(pos, "division by zero")
		}
		return &FloatValue{Value: lf / rf}, nil
	case "<":
		return &BoolValue{Value: lf < rf}, nil
	case ">":
		return &BoolValue{Value: lf > rf}, nil
	case "<=":
		return &BoolValue{Value: lf <= rf}, nil
	case ">=":
		return &BoolValue{Value: lf >= rf}, nil
	default:
		return nil, runtimeErrf(pos, "unknown operator %q", op)
	}
}

func (interp *Interpreter) evalListLiteral(e *ast.ListLiteral, env *Environment) (Value, error) {
	elems := make([]Value, len(e.Elements))
	for i, el := range e.Elements {
		v, err := interp.eval(el, env)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return &ListValue{Elements: elems}, nil
}

func (interp *Interpreter) evalDictLiteral(e *ast.DictLiteral, env *Environment) (Value, error) {
	dict := NewDict()
	for _, entry := range e.Entries {
		k, err := interp.eval(entry.Key, env)
		if err != nil {
			return nil, err
		}
		ks, ok := k.(*StringValue)
		if !ok {
			return nil, runtimeErrf(entry.Key.Pos(), "dict keys must be String, got %s", k.Type())
		}
		v, err := interp.eval(entry.Value, env)
		if err != nil {
			return nil, err
		}
		dict.Set(ks.Value, v)
	}
	return dict, nil
}

func (interp *Interpreter) evalAttribute(e *ast.Attribute, env *Environment) (Value, error) {
	obj, err := interp.eval(e.Object, env)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case *InstanceValue:
		if v, ok := o.Attributes[e.Name]; ok {
			return v, nil
		}
		if o.Class != nil {
			if m, ok := o.Class.Methods[e.Name]; ok {
				return m, nil
			}
		}
		return nil, runtimeErrf(e.Pos(), "instance of %s has no attribute %q", o.ClassName, e.Name)
	case *DictValue:
		if v, ok := o.Get(e.Name); ok {
			return v, nil
		}
		return nil, runtimeErrf(e.Pos(), "dict has no key %q", e.Name)
	default:
		return nil, runtimeErrf(e.Pos(), "attribute access requires an instance, got %s", obj.Type())
	}
}

func (interp *Interpreter) evalInteropCall(e *ast.InteropCall, env *Environment) (Value, error) {
	if interp.Interop == nil {
		return nil, runtimeErrf(e.Pos(), "interop is not configured")
	}
	out, err := interp.Interop.Execute(e.Language, e.Source)
	if err != nil {
		return nil, runtimeErrf(e.Pos(), "interop call to %s failed: %s", e.Language, err.Error())
	}
	return &StringValue{Value: out}, nil
}

// coerceToParamType narrows a call argument's value to match its
// parameter's declared type, implementing the numeric-widening direction
// the type checker already permits: binding a Float literal to a
// declared-Int parameter produces an Int value (and vice versa), so
// arithmetic inside the callee preserves the parameter's own declared tag
// rather than whatever the caller happened to pass.
func coerceToParamType(v Value, declared *types.Type) Value {
	if declared == nil {
		return v
	}
	switch declared.Kind {
	case types.KindInt:
		if f, ok := v.(*FloatValue); ok {
			return &IntValue{Value: int64(f.Value)}
		}
	case types.KindFloat:
		if n, ok := v.(*IntValue); ok {
			return &FloatValue{Value: float64(n.Value)}
		}
	}
	return v
}

func (interp *Interpreter) evalCall(e *ast.Call, env *Environment) (Value, error) {
	callee, ok := env.Get(e.Callee)
	if !ok {
		return nil, runtimeErrf(e.Pos(), "undefined name: %s", e.Callee)
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := interp.eval(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	return interp.apply(e.Pos(), e.Callee, callee, args)
}

// evalInvoke calls the value an arbitrary callee expression evaluates
// to. An attribute on an instance that resolves through the class's
// method table carries the instance itself as the implicit receiver
// argument; an attribute found in the instance's own attribute map, or
// on a Dict, is called as-is.
func (interp *Interpreter) evalInvoke(e *ast.Invoke, env *Environment) (Value, error) {
	var target Value
	var receiver Value

	if attr, ok := e.Target.(*ast.Attribute); ok {
		obj, err := interp.eval(attr.Object, env)
		if err != nil {
			return nil, err
		}
		switch o := obj.(type) {
		case *InstanceValue:
			if v, ok := o.Attributes[attr.Name]; ok {
				target = v
			} else if o.Class != nil {
				if m, ok := o.Class.Methods[attr.Name]; ok {
					target = m
					receiver = o
				}
			}
			if target == nil {
				return nil, runtimeErrf(attr.Pos(), "instance of %s has no attribute %q", o.ClassName, attr.Name)
			}
		case *DictValue:
			v, ok := o.Get(attr.Name)
			if !ok {
				return nil, runtimeErrf(attr.Pos(), "dict has no key %q", attr.Name)
			}
			target = v
		default:
			return nil, runtimeErrf(attr.Pos(), "attribute access requires an instance, got %s", obj.Type())
		}
	} else {
		v, err := interp.eval(e.Target, env)
		if err != nil {
			return nil, err
		}
		target = v
	}

	args := make([]Value, 0, len(e.Args)+1)
	if receiver != nil {
		args = append(args, receiver)
	}
	for _, a := range e.Args {
		v, err := interp.eval(a, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return interp.apply(e.Pos(), e.Target.String(), target, args)
}

// apply dispatches an already-evaluated callee on already-evaluated
// arguments; label names the callee in error messages.
func (interp *Interpreter) apply(pos lexer.Position, label string, callee Value, args []Value) (Value, error) {
	switch fn := callee.(type) {
	case *FunctionValue:
		return interp.callFunction(pos, fn, args)
	case *ClosureValue:
		return interp.callClosure(pos, fn, args)
	case *NativeFunctionValue:
		return fn.Fn(args)
	case *ClassValue:
		// Arguments are evaluated but otherwise ignored: calling a class
		// produces an empty-attribute instance. See doc.go.
		return &InstanceValue{ClassName: fn.Name, Class: fn, Attributes: make(map[string]Value)}, nil
	default:
		return nil, runtimeErrf(pos, "%s is not callable", label)
	}
}

func (interp *Interpreter) callFunction(pos lexer.Position, fn *FunctionValue, args []Value) (Value, error) {
	if len(args) != len(fn.Params) {
		return nil, runtimeErrf(pos, "%s expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}
	callEnv := NewEnclosedEnvironment(fn.Env)
	for i, p := range fn.Params {
		callEnv.Define(p.Name, coerceToParamType(args[i], p.Type))
	}
	val, err := interp.evalBlock(fn.Body, callEnv)
	if err != nil {
		if rs, ok := err.(*returnSignal); ok {
			return rs.Value, nil
		}
		return nil, err
	}
	return val, nil
}

func (interp *Interpreter) callClosure(pos lexer.Position, cl *ClosureValue, args []Value) (Value, error) {
	if len(args) != len(cl.Params) {
		return nil, runtimeErrf(pos, "closure expects %d argument(s), got %d", len(cl.Params), len(args))
	}
	callEnv := NewEnclosedEnvironment(cl.Env)
	for i, p := range cl.Params {
		callEnv.Define(p.Name, coerceToParamType(args[i], p.Type))
	}
	return interp.eval(cl.Body, callEnv)
}

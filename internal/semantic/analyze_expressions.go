package semantic

import (
	"github.com/Architecture-Mechanism/bellronos/internal/ast"
	"github.com/Architecture-Mechanism/bellronos/internal/types"
)

// checkExpr dispatches on the expression's concrete type, assigns the
// resolved type onto the node itself (via the typed embedding every
// ast.Expression carries), and returns it.
func (a *Analyzer) checkExpr(expr ast.Expression, env *TypeEnv) (*types.Type, error) {
	t, err := a.checkExprKind(expr, env)
	if err != nil {
		return nil, err
	}
	expr.SetType(t)
	return t, nil
}

func (a *Analyzer) checkExprKind(expr ast.Expression, env *TypeEnv) (*types.Type, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return types.Float(), nil
	case *ast.StringLiteral:
		return types.String(), nil
	case *ast.BoolLiteral:
		return types.Bool(), nil
	case *ast.Identifier:
		t, ok := env.Get(e.Value)
		if !ok {
			return nil, typeErrf(e.Pos(), "undefined name: %s", e.Value)
		}
		return t, nil
	case *ast.Grouped:
		return a.checkExpr(e.Inner, env)
	case *ast.UnaryOp:
		return a.checkUnary(e, env)
	case *ast.BinOp:
		return a.checkBinOp(e, env)
	case *ast.Call:
		return a.checkCall(e, env)
	case *ast.Invoke:
		return a.checkInvoke(e, env)
	case *ast.ListLiteral:
		return a.checkListLiteral(e, env)
	case *ast.DictLiteral:
		return a.checkDictLiteral(e, env)
	case *ast.Attribute:
		return a.checkAttribute(e, env)
	case *ast.ClosureExpr:
		return a.checkClosureExpr(e, env)
	case *ast.InteropCall:
		return a.checkInteropCall(e, env)
	case *ast.Await:
		// Await is a pass-through, matching the evaluator's strict
		// (non-suspending) treatment of the operand.
		return a.checkExpr(e.Operand, env)
	default:
		return nil, typeErrf(expr.Pos(), "unhandled expression type %T", expr)
	}
}

// checkUnary requires a numeric operand; the result is always Float,
// matching applyBinOp(0.0, "-", operand) in the evaluator, which always
// feeds a FloatValue as its left operand and so never reaches the
// both-Int branch.
func (a *Analyzer) checkUnary(e *ast.UnaryOp, env *TypeEnv) (*types.Type, error) {
	operand, err := a.checkExpr(e.Operand, env)
	if err != nil {
		return nil, err
	}
	if !operand.IsNumeric() && operand.Kind != types.KindAny {
		return nil, typeErrf(e.Pos(), "unary %q requires a numeric operand, got %s", e.Op, operand)
	}
	return types.Float(), nil
}

// checkBinOp mirrors applyBinOp's operator table at the type level:
// `==`/`!=` accept any operand pair and yield Bool; `+` also concatenates
// two Strings; the remaining arithmetic and comparison operators require
// numeric operands, with `/` always producing Float and `+ - *`
// preserving Int when both operands are Int.
func (a *Analyzer) checkBinOp(e *ast.BinOp, env *TypeEnv) (*types.Type, error) {
	left, err := a.checkExpr(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := a.checkExpr(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case "==", "!=":
		return types.Bool(), nil
	}

	if e.Op == "+" && left.Kind == types.KindString && right.Kind == types.KindString {
		return types.String(), nil
	}

	leftNumeric := left.IsNumeric() || left.Kind == types.KindAny
	rightNumeric := right.IsNumeric() || right.Kind == types.KindAny
	if !leftNumeric || !rightNumeric {
		return nil, typeErrf(e.Pos(), "operator %q requires numeric operands, got %s and %s", e.Op, left, right)
	}

	switch e.Op {
	case "+", "-", "*":
		if left.Kind == types.KindInt && right.Kind == types.KindInt {
			return types.Int(), nil
		}
		return types.Float(), nil
	case "/":
		return types.Float(), nil
	case "<", ">", "<=", ">=":
		return types.Bool(), nil
	default:
		return nil, typeErrf(e.Pos(), "unknown operator %q", e.Op)
	}
}

func (a *Analyzer) checkListLiteral(e *ast.ListLiteral, env *TypeEnv) (*types.Type, error) {
	if len(e.Elements) == 0 {
		return types.List(types.Any()), nil
	}
	elemType, err := a.checkExpr(e.Elements[0], env)
	if err != nil {
		return nil, err
	}
	for _, el := range e.Elements[1:] {
		t, err := a.checkExpr(el, env)
		if err != nil {
			return nil, err
		}
		if !types.Compatible(t, elemType) {
			return nil, typeErrf(el.Pos(), "list element type mismatch: expected %s, got %s", elemType, t)
		}
	}
	return types.List(elemType), nil
}

func (a *Analyzer) checkDictLiteral(e *ast.DictLiteral, env *TypeEnv) (*types.Type, error) {
	if len(e.Entries) == 0 {
		return types.Dict(types.String(), types.Any()), nil
	}
	valType, err := a.checkExpr(e.Entries[0].Value, env)
	if err != nil {
		return nil, err
	}
	if _, err := a.checkExpr(e.Entries[0].Key, env); err != nil {
		return nil, err
	}
	for _, entry := range e.Entries[1:] {
		if _, err := a.checkExpr(entry.Key, env); err != nil {
			return nil, err
		}
		t, err := a.checkExpr(entry.Value, env)
		if err != nil {
			return nil, err
		}
		if !types.Compatible(t, valType) {
			return nil, typeErrf(entry.Value.Pos(), "dict value type mismatch: expected %s, got %s", valType, t)
		}
	}
	return types.Dict(types.String(), valType), nil
}

// checkAttribute handles the two receivers the evaluator supports: an
// Instance (method lookup, via the class's method table) and a Dict
// (key lookup, typed as the dict's declared element type). Anything else
// is a type error.
func (a *Analyzer) checkAttribute(e *ast.Attribute, env *TypeEnv) (*types.Type, error) {
	objType, err := a.checkExpr(e.Object, env)
	if err != nil {
		return nil, err
	}
	switch objType.Kind {
	case types.KindInstance:
		methods, ok := a.classes[objType.Name]
		if !ok {
			return nil, typeErrf(e.Pos(), "unknown class %s", objType.Name)
		}
		m, ok := methods[e.Name]
		if !ok {
			return nil, typeErrf(e.Pos(), "instance of %s has no attribute %q", objType.Name, e.Name)
		}
		return m, nil
	case types.KindDict:
		return objType.Elem, nil
	case types.KindAny:
		return types.Any(), nil
	default:
		return nil, typeErrf(e.Pos(), "attribute access requires an instance, got %s", objType)
	}
}

// checkCall resolves the callee by name: a Function type is checked for
// arity and per-argument compatibility; a Class type always succeeds and
// yields an Instance of that class, matching the evaluator's quirk of
// ignoring constructor arguments entirely.
func (a *Analyzer) checkCall(e *ast.Call, env *TypeEnv) (*types.Type, error) {
	calleeType, ok := env.Get(e.Callee)
	if !ok {
		return nil, typeErrf(e.Pos(), "undefined name: %s", e.Callee)
	}

	argTypes := make([]*types.Type, len(e.Args))
	for i, arg := range e.Args {
		t, err := a.checkExpr(arg, env)
		if err != nil {
			return nil, err
		}
		argTypes[i] = t
	}

	switch calleeType.Kind {
	case types.KindClass:
		return types.Instance(calleeType.Name), nil
	case types.KindFunction:
		if len(argTypes) != len(calleeType.Params) {
			return nil, typeErrf(e.Pos(), "%s expects %d argument(s), got %d", e.Callee, len(calleeType.Params), len(argTypes))
		}
		for i, param := range calleeType.Params {
			if !types.Compatible(argTypes[i], param) {
				return nil, typeErrf(e.Args[i].Pos(), "argument %d to %s: expected %s, got %s", i+1, e.Callee, param, argTypes[i])
			}
		}
		return calleeType.Return, nil
	case types.KindAny:
		return types.Any(), nil
	default:
		return nil, typeErrf(e.Pos(), "%s is not callable", e.Callee)
	}
}

// checkInvoke checks a call through an arbitrary callee expression. A
// method reached through an instance attribute consumes its receiver
// parameter implicitly, so the caller's argument list is checked against
// the signature minus its leading receiver slot.
func (a *Analyzer) checkInvoke(e *ast.Invoke, env *TypeEnv) (*types.Type, error) {
	targetType, err := a.checkExpr(e.Target, env)
	if err != nil {
		return nil, err
	}

	argTypes := make([]*types.Type, len(e.Args))
	for i, arg := range e.Args {
		t, err := a.checkExpr(arg, env)
		if err != nil {
			return nil, err
		}
		argTypes[i] = t
	}

	switch targetType.Kind {
	case types.KindAny:
		return types.Any(), nil
	case types.KindClass:
		return types.Instance(targetType.Name), nil
	case types.KindFunction:
		params := targetType.Params
		if attr, ok := e.Target.(*ast.Attribute); ok && len(params) > 0 {
			if objType := attr.Object.GetType(); objType != nil && objType.Kind == types.KindInstance {
				params = params[1:]
			}
		}
		if len(argTypes) != len(params) {
			return nil, typeErrf(e.Pos(), "callee expects %d argument(s), got %d", len(params), len(argTypes))
		}
		for i, param := range params {
			if !types.Compatible(argTypes[i], param) {
				return nil, typeErrf(e.Args[i].Pos(), "argument %d: expected %s, got %s", i+1, param, argTypes[i])
			}
		}
		return targetType.Return, nil
	default:
		return nil, typeErrf(e.Pos(), "expression of type %s is not callable", targetType)
	}
}

// checkClosureExpr infers the return type from the body expression in a
// scope with its declared parameters bound, since a closure has no
// declared return type of its own.
func (a *Analyzer) checkClosureExpr(e *ast.ClosureExpr, env *TypeEnv) (*types.Type, error) {
	child := NewEnclosedTypeEnv(env)
	for _, p := range e.Params {
		t := p.Type
		if t == nil {
			t = types.Any()
		}
		child.Define(p.Name, t)
	}
	bodyType, err := a.checkExpr(e.Body, child)
	if err != nil {
		return nil, err
	}
	return types.Function(paramTypes(e.Params), bodyType), nil
}

package semantic

import (
	"github.com/Architecture-Mechanism/bellronos/internal/ast"
	"github.com/Architecture-Mechanism/bellronos/internal/types"
)

// checkStatement dispatches on the statement's concrete type, the same
// switch shape evalStatement uses to walk the same AST.
func (a *Analyzer) checkStatement(stmt ast.Statement, env *TypeEnv) (*types.Type, error) {
	switch s := stmt.(type) {
	case *ast.Import:
		return a.checkImport(s, env)
	case *ast.FunctionDef:
		return a.checkFunctionDef(s, env)
	case *ast.ClassDef:
		return a.checkClassDef(s, env)
	case *ast.Assign:
		return a.checkAssign(s, env)
	case *ast.ExprStatement:
		return a.checkExpr(s.Value, env)
	case *ast.If:
		return a.checkIf(s, env)
	case *ast.While:
		return a.checkWhile(s, env)
	case *ast.For:
		return a.checkFor(s, env)
	case *ast.Return:
		return a.checkReturn(s, env)
	case *ast.AsyncDef:
		// Async type-checks its wrapped function exactly as if it weren't
		// marked async, matching the evaluator's strict treatment.
		return a.checkFunctionDef(s.Function, env)
	case *ast.Yield:
		if s.Value == nil {
			return types.None(), nil
		}
		return a.checkExpr(s.Value, env)
	case *ast.GeneratorDef:
		return a.checkGeneratorDef(s, env)
	default:
		return nil, typeErrf(stmt.Pos(), "unhandled statement type %T", stmt)
	}
}

// checkImport binds every imported name as Any: the checker has no
// visibility into a standard-library module's or package's real exported
// types, so it defers entirely to the evaluator at that point.
func (a *Analyzer) checkImport(s *ast.Import, env *TypeEnv) (*types.Type, error) {
	for _, name := range s.Names {
		env.Define(name, types.Any())
	}
	return types.None(), nil
}

// paramTypes extracts the declared type of each parameter, defaulting an
// undeclared one to Any.
func paramTypes(params []ast.Param) []*types.Type {
	out := make([]*types.Type, len(params))
	for i, p := range params {
		if p.Type == nil {
			out[i] = types.Any()
			continue
		}
		out[i] = p.Type
	}
	return out
}

// checkFunctionDef builds the function's signature, binds it in env under
// its own name, then checks the body in a child scope with parameters
// bound, verifying every Return statement's value is compatible with the
// declared return type (defaulting to Any when undeclared).
func (a *Analyzer) checkFunctionDef(f *ast.FunctionDef, env *TypeEnv) (*types.Type, error) {
	retType := f.ReturnType
	if retType == nil {
		retType = types.Any()
	}
	fnType := types.Function(paramTypes(f.Params), retType)
	env.Define(f.Name, fnType)

	if err := a.checkFunctionBody(f.Params, f.Body, retType, env); err != nil {
		return nil, err
	}
	return fnType, nil
}

// checkFunctionBody runs stmts in a fresh scope enclosed by outer, with
// params bound and currentReturn set to expectedReturn for the duration,
// so a nested Return statement can validate against it.
func (a *Analyzer) checkFunctionBody(params []ast.Param, stmts []ast.Statement, expectedReturn *types.Type, outer *TypeEnv) error {
	child := NewEnclosedTypeEnv(outer)
	for _, p := range params {
		t := p.Type
		if t == nil {
			t = types.Any()
		}
		child.Define(p.Name, t)
	}

	savedReturn := a.currentReturn
	a.currentReturn = expectedReturn
	_, err := a.checkBlock(stmts, child)
	a.currentReturn = savedReturn
	return err
}

// checkClassDef builds a Function signature per method, recorded both in
// the class's own method table (for Attribute lookups) and checked as a
// standalone body; the class name itself is bound as a Class type. A
// method's own name is never bound into the enclosing scope; methods
// are reachable only through an instance's Attribute.
func (a *Analyzer) checkClassDef(c *ast.ClassDef, env *TypeEnv) (*types.Type, error) {
	methods := make(map[string]*types.Type, len(c.Methods))
	for _, m := range c.Methods {
		retType := m.ReturnType
		if retType == nil {
			retType = types.Any()
		}
		fnType := types.Function(paramTypes(m.Params), retType)
		if err := a.checkFunctionBody(m.Params, m.Body, retType, env); err != nil {
			return nil, err
		}
		methods[m.Name] = fnType
	}
	a.classes[c.Name] = methods
	env.Define(c.Name, types.Class(c.Name))
	return types.Class(c.Name), nil
}

// checkAssign infers the value's type and rebinds the target, requiring
// no prior declaration; the write lands in the nearest scope already
// binding the name, the same place the evaluator's assignment does.
func (a *Analyzer) checkAssign(s *ast.Assign, env *TypeEnv) (*types.Type, error) {
	valType, err := a.checkExpr(s.Value, env)
	if err != nil {
		return nil, err
	}
	env.Set(s.Target, valType)
	return valType, nil
}

func (a *Analyzer) checkIf(s *ast.If, env *TypeEnv) (*types.Type, error) {
	condType, err := a.checkExpr(s.Condition, env)
	if err != nil {
		return nil, err
	}
	if err := requireBool(condType, s.Pos(), "if condition"); err != nil {
		return nil, err
	}
	// If/While/For bodies run in the very env passed in, not a child scope:
	// the evaluator's evalIf/evalWhile/evalFor all thread the same
	// *Environment* through to evalBlock, so a `set` inside one of these
	// bodies is visible to whatever follows the statement, not discarded
	// at the closing of the block. Matching that here means a name a
	// branch defines type-checks when read afterward, the same as it
	// would run.
	thenType, err := a.checkBlock(s.Then, env)
	if err != nil {
		return nil, err
	}
	if s.Else != nil {
		if _, err := a.checkBlock(s.Else, env); err != nil {
			return nil, err
		}
	}
	return thenType, nil
}

func (a *Analyzer) checkWhile(s *ast.While, env *TypeEnv) (*types.Type, error) {
	condType, err := a.checkExpr(s.Condition, env)
	if err != nil {
		return nil, err
	}
	if err := requireBool(condType, s.Pos(), "while condition"); err != nil {
		return nil, err
	}
	return a.checkBlock(s.Body, env)
}

// checkFor binds the loop variable to the list's element type. A
// non-list iterable is not rejected here: the iterable-must-be-a-list
// rule belongs to the evaluator (evalFor raises it as a runtime error),
// so the target is bound as Any and the body checked as-is.
func (a *Analyzer) checkFor(s *ast.For, env *TypeEnv) (*types.Type, error) {
	iterType, err := a.checkExpr(s.Iterable, env)
	if err != nil {
		return nil, err
	}
	elem := types.Any()
	if iterType.Kind == types.KindList {
		elem = iterType.Elem
	}
	env.Define(s.Target, elem)
	return a.checkBlock(s.Body, env)
}

func (a *Analyzer) checkReturn(s *ast.Return, env *TypeEnv) (*types.Type, error) {
	valType := types.None()
	if s.Value != nil {
		t, err := a.checkExpr(s.Value, env)
		if err != nil {
			return nil, err
		}
		valType = t
	}
	if a.currentReturn != nil && !types.Compatible(valType, a.currentReturn) {
		return nil, typeErrf(s.Pos(), "return type mismatch: declared %s, got %s", a.currentReturn, valType)
	}
	return valType, nil
}

// checkGeneratorDef checks the generator body for well-formedness in its
// own scope but never ties its result to the enclosing scope: nothing
// actually runs a generator's body (see the evaluator's doc.go), so there
// is no return type to enforce here. The generator name is bound as a
// free-form Custom type, since the data model has no dedicated Generator
// Kind.
func (a *Analyzer) checkGeneratorDef(g *ast.GeneratorDef, env *TypeEnv) (*types.Type, error) {
	child := NewEnclosedTypeEnv(env)
	for _, p := range g.Params {
		t := p.Type
		if t == nil {
			t = types.Any()
		}
		child.Define(p.Name, t)
	}
	if _, err := a.checkBlock(g.Body, child); err != nil {
		return nil, err
	}
	genType := types.Custom("Generator")
	env.Define(g.Name, genType)
	return genType, nil
}

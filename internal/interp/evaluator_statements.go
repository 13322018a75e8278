package interp

import (
	"fmt"

	"github.com/Architecture-Mechanism/bellronos/internal/ast"
)

func (interp *Interpreter) evalStatement(stmt ast.Statement, env *Environment) (Value, error) {
	switch s := stmt.(type) {
	case *ast.Import:
		return interp.evalImport(s, env)
	case *ast.FunctionDef:
		fn := &FunctionValue{Name: s.Name, Params: s.Params, Body: s.Body, Env: env}
		env.Define(s.Name, fn)
		return fn, nil
	case *ast.ClassDef:
		class := &ClassValue{Name: s.Name, Methods: make(map[string]*FunctionValue)}
		for _, m := range s.Methods {
			class.Methods[m.Name] = &FunctionValue{Name: m.Name, Params: m.Params, Body: m.Body, Env: env}
		}
		env.Define(s.Name, class)
		return class, nil
	case *ast.Assign:
		val, err := interp.eval(s.Value, env)
		if err != nil {
			return nil, err
		}
		env.Set(s.Target, val)
		return val, nil
	case *ast.ExprStatement:
		return interp.eval(s.Value, env)
	case *ast.If:
		return interp.evalIf(s, env)
	case *ast.While:
		return interp.evalWhile(s, env)
	case *ast.For:
		return interp.evalFor(s, env)
	case *ast.Return:
		var val Value = None
		if s.Value != nil {
			v, err := interp.eval(s.Value, env)
			if err != nil {
				return nil, err
			}
			val = v
		}
		return nil, &returnSignal{Value: val}
	case *ast.AsyncDef:
		// Async evaluates its body strictly: defining the wrapped
		// function has the same effect whether or not it's marked async.
		return interp.evalStatement(s.Function, env)
	case *ast.Yield:
		return nil, runtimeErrf(s.Pos(), "yield outside of generator")
	case *ast.GeneratorDef:
		gen := &GeneratorValue{Body: s.Body, Env: env}
		env.Define(s.Name, gen)
		return gen, nil
	default:
		return nil, fmt.Errorf("interp: unhandled statement type %T", stmt)
	}
}

func (interp *Interpreter) evalImport(s *ast.Import, env *Environment) (Value, error) {
	for _, name := range s.Names {
		if interp.Modules != nil {
			if mod, ok := interp.Modules.Module(name); ok {
				env.Define(name, mod)
				continue
			}
		}
		if interp.Packages == nil {
			return nil, runtimeErrf(s.Pos(), "no standard-library module or package named %q", name)
		}
		source, err := interp.Packages.Load(name)
		if err != nil {
			return nil, err
		}
		if _, err := interp.Run(source, name); err != nil {
			return nil, err
		}
	}
	return None, nil
}

func (interp *Interpreter) evalIf(s *ast.If, env *Environment) (Value, error) {
	cond, err := interp.eval(s.Condition, env)
	if err != nil {
		return nil, err
	}
	b, ok := cond.(*BoolValue)
	if !ok {
		return nil, runtimeErrf(s.Pos(), "if condition must be Bool, got %s", cond.Type())
	}
	if b.Value {
		return interp.evalBlock(s.Then, env)
	}
	if s.Else != nil {
		return interp.evalBlock(s.Else, env)
	}
	return None, nil
}

func (interp *Interpreter) evalWhile(s *ast.While, env *Environment) (Value, error) {
	var result Value = None
	for {
		cond, err := interp.eval(s.Condition, env)
		if err != nil {
			return nil, err
		}
		b, ok := cond.(*BoolValue)
		if !ok {
			return nil, runtimeErrf(s.Pos(), "while condition must be Bool, got %s", cond.Type())
		}
		if !b.Value {
			break
		}
		result, err = interp.evalBlock(s.Body, env)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (interp *Interpreter) evalFor(s *ast.For, env *Environment) (Value, error) {
	iter, err := interp.eval(s.Iterable, env)
	if err != nil {
		return nil, err
	}
	list, ok := iter.(*ListValue)
	if !ok {
		return nil, runtimeErrf(s.Pos(), "iterable must be a list, got %s", iter.Type())
	}
	var result Value = None
	for _, elem := range list.Elements {
		env.Define(s.Target, elem)
		result, err = interp.evalBlock(s.Body, env)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

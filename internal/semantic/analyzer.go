// Package semantic is Bellronos's static type checker: it walks the
// parser's AST and assigns every expression a types.Type, rejecting
// programs the data model's compatibility rule forbids before the
// evaluator ever sees them. It is a separate, optional pass over the
// interpreter; nothing in package interp imports it.
package semantic

import (
	"github.com/Architecture-Mechanism/bellronos/internal/ast"
	"github.com/Architecture-Mechanism/bellronos/internal/bellerrors"
	"github.com/Architecture-Mechanism/bellronos/internal/lexer"
	"github.com/Architecture-Mechanism/bellronos/internal/types"
)

// TypeEnv is a parent-pointer chain from name to declared/inferred type,
// mirroring interp.Environment's shape but holding static types instead
// of runtime values: a function body gets its own child scope, lookup
// walks outward, and `set` rebinds the nearest scope already binding
// the name.
type TypeEnv struct {
	store map[string]*types.Type
	outer *TypeEnv
}

// NewTypeEnv creates a root scope with no outer environment.
func NewTypeEnv() *TypeEnv {
	return &TypeEnv{store: make(map[string]*types.Type)}
}

// NewEnclosedTypeEnv creates a scope nested inside outer.
func NewEnclosedTypeEnv(outer *TypeEnv) *TypeEnv {
	return &TypeEnv{store: make(map[string]*types.Type), outer: outer}
}

// Get searches this scope, then each outer scope in turn.
func (e *TypeEnv) Get(name string) (*types.Type, bool) {
	if t, ok := e.store[name]; ok {
		return t, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

// Define binds name in the current scope unconditionally.
func (e *TypeEnv) Define(name string, t *types.Type) {
	e.store[name] = t
}

// Set mirrors the evaluator's assignment discipline: rebind the nearest
// enclosing scope that already binds name, otherwise bind in the
// current scope.
func (e *TypeEnv) Set(name string, t *types.Type) {
	if e.trySet(name, t) {
		return
	}
	e.store[name] = t
}

func (e *TypeEnv) trySet(name string, t *types.Type) bool {
	if _, ok := e.store[name]; ok {
		e.store[name] = t
		return true
	}
	if e.outer != nil {
		return e.outer.trySet(name, t)
	}
	return false
}

// Analyzer holds the class method tables that accumulate while checking a
// module, plus the declared return type of the function body being
// checked; Check creates the root type environment itself. One Analyzer
// checks exactly one module; construct a new one per call to Check.
type Analyzer struct {
	classes       map[string]map[string]*types.Type
	currentReturn *types.Type
}

// New constructs an Analyzer ready to check a module.
func New() *Analyzer {
	return &Analyzer{classes: make(map[string]map[string]*types.Type)}
}

// Check type-checks every top-level statement in order against a fresh
// root scope, returning the last statement's type (types.None() for an
// empty module) or the first type error encountered. Checking fails
// fast: one incompatibility aborts the pass, matching the fail-fast
// style already established by the parser and the evaluator's runtime
// errors.
func (a *Analyzer) Check(mod *ast.Module) (*types.Type, error) {
	return a.checkBlock(mod.Body, NewTypeEnv())
}

// checkBlock checks statements in order, returning the last one's type.
func (a *Analyzer) checkBlock(stmts []ast.Statement, env *TypeEnv) (*types.Type, error) {
	result := types.None()
	for _, stmt := range stmts {
		t, err := a.checkStatement(stmt, env)
		if err != nil {
			return nil, err
		}
		result = t
	}
	return result, nil
}

func typeErrf(pos lexer.Position, format string, args ...any) error {
	return bellerrors.NewAt(bellerrors.Type, pos, format, args...)
}

// requireBool rejects any type but Bool (or Any, which stands in for
// anything) where the grammar requires a condition.
func requireBool(t *types.Type, pos lexer.Position, context string) error {
	if t.Kind == types.KindBool || t.Kind == types.KindAny {
		return nil
	}
	return typeErrf(pos, "%s must be Bool, got %s", context, t)
}

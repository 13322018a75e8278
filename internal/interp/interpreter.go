package interp

import (
	"io"
	"os"

	"github.com/Architecture-Mechanism/bellronos/internal/ast"
	"github.com/Architecture-Mechanism/bellronos/internal/bellerrors"
	"github.com/Architecture-Mechanism/bellronos/internal/lexer"
	"github.com/Architecture-Mechanism/bellronos/internal/parser"
)

// ModuleProvider supplies standard-library modules, installed as a Dict
// value when an Import statement names one.
type ModuleProvider interface {
	Module(name string) (Value, bool)
}

// PackageLoader loads external package source text by name, for an
// Import not satisfied by the standard library.
type PackageLoader interface {
	Load(name string) (string, error)
}

// InteropExecutor runs a foreign-language source fragment and returns the
// captured standard output, or an error carrying the toolchain's stderr.
type InteropExecutor interface {
	Execute(language, source string) (string, error)
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

func WithOutput(w io.Writer) Option { return func(i *Interpreter) { i.Out = w } }

func WithModules(m ModuleProvider) Option { return func(i *Interpreter) { i.Modules = m } }

func WithPackages(p PackageLoader) Option { return func(i *Interpreter) { i.Packages = p } }

func WithInterop(x InteropExecutor) Option { return func(i *Interpreter) { i.Interop = x } }

// Interpreter is the tree-walking evaluator's public entry point.
type Interpreter struct {
	Global   *Environment
	Out      io.Writer
	Modules  ModuleProvider
	Packages PackageLoader
	Interop  InteropExecutor
}

// New constructs an Interpreter with a fresh global environment.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		Global: NewEnvironment(),
		Out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// returnSignal is threaded up through evalStatement/evalBlock as an error
// so that a `return` deep inside nested if/while/for bodies unwinds
// directly to the enclosing function call, without every intermediate
// level needing to special-case it.
type returnSignal struct{ Value Value }

func (r *returnSignal) Error() string { return "return" }

// Run lexes, parses, and evaluates text against the interpreter's global
// environment, the public entry point the component design calls
// `run(text, filename)`.
func (interp *Interpreter) Run(text, filename string) (Value, error) {
	p := parser.New(text)
	mod, err := p.ParseModule()
	if err != nil {
		if pe, ok := err.(*parser.ParseError); ok {
			return nil, bellerrors.NewAt(bellerrors.Parse, pe.Pos, "%s", pe.Message)
		}
		return nil, bellerrors.New(bellerrors.Parse, "%s", err.Error())
	}

	val, err := interp.evalBlock(mod.Body, interp.Global)
	if err != nil {
		if rs, ok := err.(*returnSignal); ok {
			return rs.Value, nil
		}
		return nil, err
	}
	return val, nil
}

// evalBlock evaluates statements in order against env, returning the last
// statement's value. Non-nil errors (including a *returnSignal) propagate
// unchanged to the caller; only the function-call evaluator and Run (for a
// top-level return) convert a *returnSignal back into an ordinary value.
func (interp *Interpreter) evalBlock(stmts []ast.Statement, env *Environment) (Value, error) {
	var result Value = None
	for _, stmt := range stmts {
		val, err := interp.evalStatement(stmt, env)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

func runtimeErrf(pos lexer.Position, format string, args ...any) error {
	return bellerrors.NewAt(bellerrors.Runtime, pos, format, args...)
}

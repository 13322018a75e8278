// Package bellronos is the public façade over the lexer, parser, type
// checker, and evaluator: the only entry point external callers use.
package bellronos

import (
	"io"
	"os"

	"github.com/Architecture-Mechanism/bellronos/internal/bellerrors"
	"github.com/Architecture-Mechanism/bellronos/internal/interop"
	"github.com/Architecture-Mechanism/bellronos/internal/interp"
	"github.com/Architecture-Mechanism/bellronos/internal/packagemgr"
	"github.com/Architecture-Mechanism/bellronos/internal/parser"
	"github.com/Architecture-Mechanism/bellronos/internal/semantic"
	"github.com/Architecture-Mechanism/bellronos/internal/stdlib"
)

// Engine wires the pipeline's collaborators together and runs Bellronos
// source text end to end. Zero value is not usable; construct with New.
type Engine struct {
	out       io.Writer
	typeCheck bool
	modules   interp.ModuleProvider
	packages  interp.PackageLoader
	interop   interp.InteropExecutor
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOutput overrides where a running program's io.print output goes.
func WithOutput(w io.Writer) Option { return func(e *Engine) { e.out = w } }

// WithTypeCheck toggles running the static type checker before
// evaluation. Enabled by default.
func WithTypeCheck(enabled bool) Option { return func(e *Engine) { e.typeCheck = enabled } }

// WithPackageManager wires a package directory-backed loader, satisfying
// an Import statement the standard library doesn't resolve.
func WithPackageManager(m *packagemgr.Manager) Option {
	return func(e *Engine) { e.packages = m }
}

// WithInterop overrides the foreign-language interop collaborator.
// Defaults to interop.New() (a real os/exec-backed Runner) when omitted.
func WithInterop(x interp.InteropExecutor) Option {
	return func(e *Engine) { e.interop = x }
}

// New constructs an Engine with the standard library installed and type
// checking enabled.
func New(opts ...Option) *Engine {
	e := &Engine{
		out:       os.Stdout,
		typeCheck: true,
		interop:   interop.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.modules == nil {
		e.modules = stdlib.New(stdlib.WithOutput(e.out))
	}
	return e
}

// Run lexes, parses, optionally type-checks, and evaluates source text,
// returning the value of its last top-level statement. filename is
// carried only for diagnostics.
func (e *Engine) Run(source, filename string) (interp.Value, error) {
	if e.typeCheck {
		p := parser.New(source)
		mod, err := p.ParseModule()
		if err != nil {
			if pe, ok := err.(*parser.ParseError); ok {
				return nil, bellerrors.NewAt(bellerrors.Parse, pe.Pos, "%s", pe.Message)
			}
			return nil, bellerrors.New(bellerrors.Parse, "%s", err.Error())
		}
		if _, err := semantic.New().Check(mod); err != nil {
			return nil, err
		}
	}

	i := interp.New(
		interp.WithOutput(e.out),
		interp.WithModules(e.modules),
		interp.WithPackages(e.packages),
		interp.WithInterop(e.interop),
	)
	return i.Run(source, filename)
}

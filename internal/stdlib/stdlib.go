// Package stdlib is Bellronos's standard library: the math, io, and
// string modules an Import statement resolves before ever falling back
// to the package manager. Every module is a plain DictValue, matching
// how the evaluator already exposes a namespace (Attribute access on a
// DictValue looks a key up by name), with each entry either a constant
// or a NativeFunctionValue wrapping a real Go body.
package stdlib

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/Architecture-Mechanism/bellronos/internal/bellerrors"
	"github.com/Architecture-Mechanism/bellronos/internal/interp"
)

// Library is a ModuleProvider exposing math/io/string. Each intrinsic
// carries a real native Go body rather than a placeholder; nothing in
// the language requires an intrinsic to be written in Bellronos source.
type Library struct {
	modules map[string]*interp.DictValue

	// In and Out back io.input/io.print; defaulting to os.Stdin/os.Stdout
	// happens in New, but both are overridable (the façade's WithOutput
	// plumbs through here too) so tests never touch the real console.
	in  *bufio.Reader
	out io.Writer
}

// Option configures a Library at construction time.
type Option func(*Library)

// WithInput overrides the reader io.input reads a line from.
func WithInput(r io.Reader) Option { return func(l *Library) { l.in = bufio.NewReader(r) } }

// WithOutput overrides the writer io.print writes to.
func WithOutput(w io.Writer) Option { return func(l *Library) { l.out = w } }

// New builds the standard library with all three modules installed.
func New(opts ...Option) *Library {
	l := &Library{
		modules: make(map[string]*interp.DictValue),
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.initMath()
	l.initIO()
	l.initString()
	return l
}

// Module implements interp.ModuleProvider.
func (l *Library) Module(name string) (interp.Value, bool) {
	m, ok := l.modules[name]
	return m, ok
}

func native(name string, fn func([]interp.Value) (interp.Value, error)) *interp.NativeFunctionValue {
	return &interp.NativeFunctionValue{Name: name, Fn: fn}
}

func argCountErr(name string, want, got int) error {
	return bellerrors.New(bellerrors.Runtime, "%s expects %d argument(s), got %d", name, want, got)
}

func asFloat(name string, v interp.Value) (float64, error) {
	switch n := v.(type) {
	case *interp.FloatValue:
		return n.Value, nil
	case *interp.IntValue:
		return float64(n.Value), nil
	default:
		return 0, bellerrors.New(bellerrors.Runtime, "%s requires a numeric argument, got %s", name, v.Type())
	}
}

func asString(name string, v interp.Value) (string, error) {
	s, ok := v.(*interp.StringValue)
	if !ok {
		return "", bellerrors.New(bellerrors.Runtime, "%s requires a String argument, got %s", name, v.Type())
	}
	return s.Value, nil
}

// initMath installs pi, e, and sqrt.
func (l *Library) initMath() {
	mod := interp.NewDict()
	mod.Set("pi", &interp.FloatValue{Value: math.Pi})
	mod.Set("e", &interp.FloatValue{Value: math.E})
	mod.Set("sqrt", native("math.sqrt", func(args []interp.Value) (interp.Value, error) {
		if len(args) != 1 {
			return nil, argCountErr("math.sqrt", 1, len(args))
		}
		x, err := asFloat("math.sqrt", args[0])
		if err != nil {
			return nil, err
		}
		if x < 0 {
			return nil, bellerrors.New(bellerrors.Runtime, "math.sqrt requires a non-negative argument, got %g", x)
		}
		return &interp.FloatValue{Value: math.Sqrt(x)}, nil
	}))
	l.modules["math"] = mod
}

// initIO installs print and input. print accepts any number of
// arguments and writes their Inspect() forms space-joined with a
// trailing newline; input reads a single line from the library's
// configured reader, trimming its trailing newline, after writing its
// (optional) prompt argument.
func (l *Library) initIO() {
	mod := interp.NewDict()
	mod.Set("print", native("io.print", func(args []interp.Value) (interp.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.Inspect()
		}
		fmt.Fprintln(l.out, strings.Join(parts, " "))
		return interp.None, nil
	}))
	mod.Set("input", native("io.input", func(args []interp.Value) (interp.Value, error) {
		if len(args) > 1 {
			return nil, argCountErr("io.input", 1, len(args))
		}
		if len(args) == 1 {
			prompt, err := asString("io.input", args[0])
			if err != nil {
				return nil, err
			}
			fmt.Fprint(l.out, prompt)
		}
		line, err := l.in.ReadString('\n')
		if err != nil && line == "" {
			return nil, bellerrors.New(bellerrors.IO, "io.input: %s", err.Error())
		}
		return &interp.StringValue{Value: strings.TrimRight(line, "\r\n")}, nil
	}))
	l.modules["io"] = mod
}

// initString installs length, to_upper, and to_lower.
func (l *Library) initString() {
	mod := interp.NewDict()
	mod.Set("length", native("string.length", func(args []interp.Value) (interp.Value, error) {
		if len(args) != 1 {
			return nil, argCountErr("string.length", 1, len(args))
		}
		s, err := asString("string.length", args[0])
		if err != nil {
			return nil, err
		}
		return &interp.IntValue{Value: int64(len(s))}, nil
	}))
	mod.Set("to_upper", native("string.to_upper", func(args []interp.Value) (interp.Value, error) {
		if len(args) != 1 {
			return nil, argCountErr("string.to_upper", 1, len(args))
		}
		s, err := asString("string.to_upper", args[0])
		if err != nil {
			return nil, err
		}
		return &interp.StringValue{Value: strings.ToUpper(s)}, nil
	}))
	mod.Set("to_lower", native("string.to_lower", func(args []interp.Value) (interp.Value, error) {
		if len(args) != 1 {
			return nil, argCountErr("string.to_lower", 1, len(args))
		}
		s, err := asString("string.to_lower", args[0])
		if err != nil {
			return nil, err
		}
		return &interp.StringValue{Value: strings.ToLower(s)}, nil
	}))
	l.modules["string"] = mod
}

package ast

import (
	"strings"

	"github.com/Architecture-Mechanism/bellronos/internal/lexer"
	"github.com/Architecture-Mechanism/bellronos/internal/types"
)

// Import binds one or more standard-library modules, or triggers a
// package-manager load, by name.
type Import struct {
	Token lexer.Token
	Names []string
}

func (i *Import) statementNode()       {}
func (i *Import) TokenLiteral() string { return i.Token.Literal }
func (i *Import) Pos() lexer.Position  { return i.Token.Pos }
func (i *Import) String() string       { return "import " + strings.Join(i.Names, ", ") }

// FunctionDef declares a named function with typed parameters and an
// optional declared return type.
type FunctionDef struct {
	Token      lexer.Token
	Name       string
	Params     []Param
	ReturnType *types.Type // nil if undeclared
	Body       []Statement
}

func (f *FunctionDef) statementNode()       {}
func (f *FunctionDef) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDef) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionDef) String() string {
	var params []string
	for _, p := range f.Params {
		params = append(params, p.Name+": "+p.Type.String())
	}
	ret := ""
	if f.ReturnType != nil {
		ret = " -> " + f.ReturnType.String()
	}
	return "define " + f.Name + "(" + strings.Join(params, ", ") + ")" + ret + ":\n" + indentBlock(f.Body)
}

// ClassDef declares a class and its methods.
type ClassDef struct {
	Token   lexer.Token
	Name    string
	Methods []*FunctionDef
}

func (c *ClassDef) statementNode()       {}
func (c *ClassDef) TokenLiteral() string { return c.Token.Literal }
func (c *ClassDef) Pos() lexer.Position  { return c.Token.Pos }
func (c *ClassDef) String() string {
	var body []Statement
	for _, m := range c.Methods {
		body = append(body, m)
	}
	return "class " + c.Name + ":\n" + indentBlock(body)
}

// Assign is `set <target> to <value>`.
type Assign struct {
	Token  lexer.Token
	Target string
	Value  Expression
}

func (a *Assign) statementNode()       {}
func (a *Assign) TokenLiteral() string { return a.Token.Literal }
func (a *Assign) Pos() lexer.Position  { return a.Token.Pos }
func (a *Assign) String() string       { return "set " + a.Target + " to " + a.Value.String() }

// ExprStatement wraps a bare expression evaluated for its value and effects.
type ExprStatement struct {
	Token lexer.Token
	Value Expression
}

func (e *ExprStatement) statementNode()       {}
func (e *ExprStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExprStatement) Pos() lexer.Position  { return e.Token.Pos }
func (e *ExprStatement) String() string       { return e.Value.String() }

// If is `if <cond>: <then> [else: <else>]`. Per the grammar's block
// termination rule, each branch's block runs to end-of-stream or an
// `else` token; there is no indentation or closing keyword.
type If struct {
	Token     lexer.Token
	Condition Expression
	Then      []Statement
	Else      []Statement // nil if no else branch
}

func (i *If) statementNode()       {}
func (i *If) TokenLiteral() string { return i.Token.Literal }
func (i *If) Pos() lexer.Position  { return i.Token.Pos }
func (i *If) String() string {
	s := "if " + i.Condition.String() + ":\n" + indentBlock(i.Then)
	if i.Else != nil {
		s += "else:\n" + indentBlock(i.Else)
	}
	return s
}

// While is `while <cond>: <body>`.
type While struct {
	Token     lexer.Token
	Condition Expression
	Body      []Statement
}

func (w *While) statementNode()       {}
func (w *While) TokenLiteral() string { return w.Token.Literal }
func (w *While) Pos() lexer.Position  { return w.Token.Pos }
func (w *While) String() string {
	return "while " + w.Condition.String() + ":\n" + indentBlock(w.Body)
}

// For is `for <target> in <iterable>: <body>`.
type For struct {
	Token    lexer.Token
	Target   string
	Iterable Expression
	Body     []Statement
}

func (f *For) statementNode()       {}
func (f *For) TokenLiteral() string { return f.Token.Literal }
func (f *For) Pos() lexer.Position  { return f.Token.Pos }
func (f *For) String() string {
	return "for " + f.Target + " in " + f.Iterable.String() + ":\n" + indentBlock(f.Body)
}

// Return is `return [value]`.
type Return struct {
	Token lexer.Token
	Value Expression // nil if bare `return`
}

func (r *Return) statementNode()       {}
func (r *Return) TokenLiteral() string { return r.Token.Literal }
func (r *Return) Pos() lexer.Position  { return r.Token.Pos }
func (r *Return) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}

// AsyncDef is `async` applied to a function-def; per the design notes,
// async evaluates its body strictly rather than suspending.
type AsyncDef struct {
	Token    lexer.Token
	Function *FunctionDef
}

func (a *AsyncDef) statementNode()       {}
func (a *AsyncDef) TokenLiteral() string { return a.Token.Literal }
func (a *AsyncDef) Pos() lexer.Position  { return a.Token.Pos }
func (a *AsyncDef) String() string       { return "async " + a.Function.String() }

// Yield is `yield <value>`. Outside a generator body it is a runtime
// error; generators never advance past it (the generator model is a
// placeholder, not a real coroutine).
type Yield struct {
	Token lexer.Token
	Value Expression
}

func (y *Yield) statementNode()       {}
func (y *Yield) TokenLiteral() string { return y.Token.Literal }
func (y *Yield) Pos() lexer.Position  { return y.Token.Pos }
func (y *Yield) String() string       { return "yield " + y.Value.String() }

// GeneratorDef declares a named generator. Its body is captured but never
// run, matching the degenerate generator semantics the language defines.
type GeneratorDef struct {
	Token  lexer.Token
	Name   string
	Params []Param
	Body   []Statement
}

func (g *GeneratorDef) statementNode()       {}
func (g *GeneratorDef) TokenLiteral() string { return g.Token.Literal }
func (g *GeneratorDef) Pos() lexer.Position  { return g.Token.Pos }
func (g *GeneratorDef) String() string {
	var params []string
	for _, p := range g.Params {
		params = append(params, p.Name+": "+p.Type.String())
	}
	return "generator " + g.Name + "(" + strings.Join(params, ", ") + "):\n" + indentBlock(g.Body)
}

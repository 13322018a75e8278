package ast

import (
	"bytes"
	"strings"

	"github.com/Architecture-Mechanism/bellronos/internal/lexer"
)

// Identifier is a bare name reference (Name(id) in the design-level grammar).
type Identifier struct {
	typed
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Value }

// NumberLiteral is a numeric literal. Per the language's lexer, every
// numeric literal is an untyped 64-bit float; Int typing is reachable only
// through declared annotations.
type NumberLiteral struct {
	typed
	Token lexer.Token
	Value float64
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) Pos() lexer.Position  { return n.Token.Pos }
func (n *NumberLiteral) String() string       { return n.Token.Literal }

// StringLiteral carries its unescaped body.
type StringLiteral struct {
	typed
	Token lexer.Token
	Value string
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) Pos() lexer.Position  { return s.Token.Pos }
func (s *StringLiteral) String() string       { return `"` + s.Value + `"` }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	typed
	Token lexer.Token
	Value bool
}

func (b *BoolLiteral) expressionNode()      {}
func (b *BoolLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BoolLiteral) Pos() lexer.Position  { return b.Token.Pos }
func (b *BoolLiteral) String() string       { return b.Token.Literal }

// BinOp is a binary operator expression.
type BinOp struct {
	typed
	Token lexer.Token // the operator token
	Left  Expression
	Op    string
	Right Expression
}

func (b *BinOp) expressionNode()      {}
func (b *BinOp) TokenLiteral() string { return b.Token.Literal }
func (b *BinOp) Pos() lexer.Position  { return b.Token.Pos }
func (b *BinOp) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// UnaryOp is a prefix unary expression; Bellronos's only unary operator is
// `-`, which desugars at evaluation time to `0 - operand`.
type UnaryOp struct {
	typed
	Token   lexer.Token
	Op      string
	Operand Expression
}

func (u *UnaryOp) expressionNode()      {}
func (u *UnaryOp) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryOp) Pos() lexer.Position  { return u.Token.Pos }
func (u *UnaryOp) String() string       { return "(" + u.Op + u.Operand.String() + ")" }

// Grouped is a parenthesized expression, kept as its own node so printing
// round-trips the source parentheses.
type Grouped struct {
	typed
	Token lexer.Token
	Inner Expression
}

func (g *Grouped) expressionNode()      {}
func (g *Grouped) TokenLiteral() string { return g.Token.Literal }
func (g *Grouped) Pos() lexer.Position  { return g.Token.Pos }
func (g *Grouped) String() string       { return "(" + g.Inner.String() + ")" }

// Call invokes a named callee (a function or a class) with positional
// argument expressions.
type Call struct {
	typed
	Token  lexer.Token
	Callee string
	Args   []Expression
}

func (c *Call) expressionNode()      {}
func (c *Call) TokenLiteral() string { return c.Token.Literal }
func (c *Call) Pos() lexer.Position  { return c.Token.Pos }
func (c *Call) String() string {
	var args []string
	for _, a := range c.Args {
		args = append(args, a.String())
	}
	return c.Callee + "(" + strings.Join(args, ", ") + ")"
}

// Invoke calls the value an arbitrary callee expression evaluates to:
// `io.print("hi")`, `p.hello()`, or calling a call's own result. Call
// covers the named-callee form; Invoke covers everything else.
type Invoke struct {
	typed
	Token  lexer.Token
	Target Expression
	Args   []Expression
}

func (i *Invoke) expressionNode()      {}
func (i *Invoke) TokenLiteral() string { return i.Token.Literal }
func (i *Invoke) Pos() lexer.Position  { return i.Token.Pos }
func (i *Invoke) String() string {
	var args []string
	for _, a := range i.Args {
		args = append(args, a.String())
	}
	return i.Target.String() + "(" + strings.Join(args, ", ") + ")"
}

// ListLiteral is `[e1, e2, ...]`.
type ListLiteral struct {
	typed
	Token    lexer.Token
	Elements []Expression
}

func (l *ListLiteral) expressionNode()      {}
func (l *ListLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *ListLiteral) Pos() lexer.Position  { return l.Token.Pos }
func (l *ListLiteral) String() string {
	var elems []string
	for _, e := range l.Elements {
		elems = append(elems, e.String())
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// DictEntry is one key/value pair of a DictLiteral.
type DictEntry struct {
	Key   Expression
	Value Expression
}

// DictLiteral is `{k1: v1, k2: v2, ...}`.
type DictLiteral struct {
	typed
	Token   lexer.Token
	Entries []DictEntry
}

func (d *DictLiteral) expressionNode()      {}
func (d *DictLiteral) TokenLiteral() string { return d.Token.Literal }
func (d *DictLiteral) Pos() lexer.Position  { return d.Token.Pos }
func (d *DictLiteral) String() string {
	var entries []string
	for _, e := range d.Entries {
		entries = append(entries, e.Key.String()+": "+e.Value.String())
	}
	return "{" + strings.Join(entries, ", ") + "}"
}

// Attribute is `object.name`: a method or field lookup on an instance.
type Attribute struct {
	typed
	Token  lexer.Token
	Object Expression
	Name   string
}

func (a *Attribute) expressionNode()      {}
func (a *Attribute) TokenLiteral() string { return a.Token.Literal }
func (a *Attribute) Pos() lexer.Position  { return a.Token.Pos }
func (a *Attribute) String() string       { return a.Object.String() + "." + a.Name }

// ClosureExpr is `closure(params): body-expression`, a single-expression
// anonymous function. Unlike other statement forms, it is parsed without a
// trailing newline.
type ClosureExpr struct {
	typed
	Token  lexer.Token
	Params []Param
	Body   Expression
}

func (c *ClosureExpr) expressionNode()      {}
func (c *ClosureExpr) TokenLiteral() string { return c.Token.Literal }
func (c *ClosureExpr) Pos() lexer.Position  { return c.Token.Pos }
func (c *ClosureExpr) String() string {
	var params []string
	for _, p := range c.Params {
		params = append(params, p.Name+": "+p.Type.String())
	}
	return "closure(" + strings.Join(params, ", ") + "): " + c.Body.String()
}

// Await is `await <expr>`. Per the design notes, await evaluates its
// operand strictly: there is no suspension model to return to.
type Await struct {
	typed
	Token   lexer.Token
	Operand Expression
}

func (a *Await) expressionNode()      {}
func (a *Await) TokenLiteral() string { return a.Token.Literal }
func (a *Await) Pos() lexer.Position  { return a.Token.Pos }
func (a *Await) String() string       { return "await " + a.Operand.String() }

// InteropCall is the foreign-language escape hatch, parsed from a call
// `interop("lang", "source")` whose two arguments are string literals.
// String renders it as `interop "lang" {source}`.
type InteropCall struct {
	typed
	Token    lexer.Token
	Language string
	Source   string
}

func (i *InteropCall) expressionNode()      {}
func (i *InteropCall) TokenLiteral() string { return i.Token.Literal }
func (i *InteropCall) Pos() lexer.Position  { return i.Token.Pos }
func (i *InteropCall) String() string {
	var sb bytes.Buffer
	sb.WriteString("interop \"")
	sb.WriteString(i.Language)
	sb.WriteString("\" {")
	sb.WriteString(i.Source)
	sb.WriteString("}")
	return sb.String()
}

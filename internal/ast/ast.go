// Package ast defines the Bellronos abstract syntax tree: a Node
// interface implemented by concrete expression and statement structs,
// following the same shape as a tagged tree without a closed sum type.
package ast

import (
	"bytes"
	"strings"

	"github.com/Architecture-Mechanism/bellronos/internal/lexer"
	"github.com/Architecture-Mechanism/bellronos/internal/types"
)

// Node is implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
	GetType() *types.Type
	SetType(*types.Type)
}

// Statement is a Node executed for effect (and, for the last statement in
// a block, a value).
type Statement interface {
	Node
	statementNode()
}

// typed is embedded by every Expression to carry the type the checker
// assigns it.
type typed struct {
	ResolvedType *types.Type
}

func (t *typed) GetType() *types.Type   { return t.ResolvedType }
func (t *typed) SetType(ty *types.Type) { t.ResolvedType = ty }

// Module is the root node: a sequence of top-level statements.
type Module struct {
	Body []Statement
}

func (m *Module) TokenLiteral() string { return "" }
func (m *Module) Pos() lexer.Position {
	if len(m.Body) > 0 {
		return m.Body[0].Pos()
	}
	return lexer.Position{}
}
func (m *Module) String() string {
	var sb bytes.Buffer
	for _, s := range m.Body {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Param is a declared parameter: a name plus its declared type.
type Param struct {
	Name string
	Type *types.Type
}

func indentBlock(body []Statement) string {
	var sb bytes.Buffer
	for _, s := range body {
		line := s.String()
		line = strings.ReplaceAll(line, "\n", "\n\t")
		sb.WriteString("\t")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

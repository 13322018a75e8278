// Package parser turns a Bellronos token stream into an *ast.Module.
package parser

import (
	"fmt"
	"strconv"

	"github.com/Architecture-Mechanism/bellronos/internal/ast"
	"github.com/Architecture-Mechanism/bellronos/internal/lexer"
	"github.com/Architecture-Mechanism/bellronos/internal/types"
)

// Precedence levels, lowest to highest. The grammar's design-level
// description parses every binary operator left-associatively at a
// single precedence level; this parser instead adopts the conventional
// precedence the grammar's own note recommends (`* /` > `+ -` >
// comparisons > equality), while still accepting every program the flat
// grammar does.
const (
	_ int = iota
	LOWEST
	EQUALITY   // == !=
	COMPARISON // < > <= >=
	SUM        // + -
	PRODUCT    // * /
	PREFIX     // -x
	CALLPREC   // f(x), x.y
)

var precedences = map[lexer.TokenType]int{
	lexer.EQ:     EQUALITY,
	lexer.NOT_EQ: EQUALITY,
	lexer.LT:     COMPARISON,
	lexer.GT:     COMPARISON,
	lexer.LT_EQ:  COMPARISON,
	lexer.GT_EQ:  COMPARISON,
	lexer.PLUS:   SUM,
	lexer.MINUS:  SUM,
	lexer.STAR:   PRODUCT,
	lexer.SLASH:  PRODUCT,
	lexer.DOT:    CALLPREC,
	lexer.LPAREN: CALLPREC,
}

// ParseError is one parser failure; the parser fails fast (unlike the
// lexer) since a malformed statement usually invalidates everything after it.
type ParseError struct {
	Message string
	Pos     lexer.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

type (
	prefixParseFn func() (ast.Expression, error)
	infixParseFn  func(ast.Expression) (ast.Expression, error)
)

// Parser is a recursive-descent / Pratt-style parser over a token stream
// produced by internal/lexer.
type Parser struct {
	l *lexer.Lexer

	cur  lexer.Token
	peek lexer.Token

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New constructs a Parser over source.
func New(source string) *Parser {
	p := &Parser{l: lexer.New(source)}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:    p.parseIdentifierOrCall,
		lexer.NUMBER:   p.parseNumberLiteral,
		lexer.STRING:   p.parseStringLiteral,
		lexer.TRUE:     p.parseBoolLiteral,
		lexer.FALSE:    p.parseBoolLiteral,
		lexer.MINUS:    p.parseUnary,
		lexer.LPAREN:   p.parseGrouped,
		lexer.LBRACKET: p.parseListLiteral,
		lexer.LBRACE:   p.parseDictLiteral,
		lexer.CLOSURE:  p.parseClosureExpr,
	}
	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:   p.parseBinOp,
		lexer.MINUS:  p.parseBinOp,
		lexer.STAR:   p.parseBinOp,
		lexer.SLASH:  p.parseBinOp,
		lexer.EQ:     p.parseBinOp,
		lexer.NOT_EQ: p.parseBinOp,
		lexer.LT:     p.parseBinOp,
		lexer.GT:     p.parseBinOp,
		lexer.LT_EQ:  p.parseBinOp,
		lexer.GT_EQ:  p.parseBinOp,
		lexer.DOT:    p.parseAttribute,
		lexer.LPAREN: p.parseInvoke,
	}

	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek.Type == t }

func (p *Parser) expect(t lexer.TokenType) (lexer.Token, error) {
	if !p.curIs(t) {
		return lexer.Token{}, &ParseError{
			Message: fmt.Sprintf("expected %s, got %s(%q)", t, p.cur.Type, p.cur.Literal),
			Pos:     p.cur.Pos,
		}
	}
	tok := p.cur
	p.next()
	return tok, nil
}

func (p *Parser) skipNewlines() {
	for p.curIs(lexer.NEWLINE) {
		p.next()
	}
}

// ParseModule parses the full token stream into a Module.
func (p *Parser) ParseModule() (*ast.Module, error) {
	mod := &ast.Module{}
	p.skipNewlines()
	for !p.curIs(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		mod.Body = append(mod.Body, stmt)
		p.skipNewlines()
	}
	return mod, nil
}

// parseBlock parses the run of statements up to end-of-stream or an
// `else` token, per the grammar's block-termination rule: nested blocks
// are not delimited by indentation or braces.
func (p *Parser) parseBlock() ([]ast.Statement, error) {
	var body []ast.Statement
	p.skipNewlines()
	for !p.curIs(lexer.EOF) && !p.curIs(lexer.ELSE) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		p.skipNewlines()
		// A bare return unconditionally exits whatever is executing it;
		// treating it as the block's last statement keeps a function or
		// class's body from swallowing the top-level statements that
		// follow it, since the grammar has no indentation to bound a
		// block otherwise. See doc.go.
		if _, ok := stmt.(*ast.Return); ok {
			break
		}
	}
	return body, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur.Type {
	case lexer.IMPORT:
		return p.parseImport()
	case lexer.DEFINE:
		return p.parseFunctionDef()
	case lexer.CLASS:
		return p.parseClassDef()
	case lexer.SET:
		return p.parseAssign()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.ASYNC:
		return p.parseAsyncDef()
	case lexer.YIELD:
		return p.parseYield()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseImport() (ast.Statement, error) {
	tok := p.cur
	p.next() // consume 'import'
	var names []string
	ident, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	names = append(names, ident.Literal)
	for p.curIs(lexer.COMMA) {
		p.next()
		ident, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		names = append(names, ident.Literal)
	}
	return &ast.Import{Token: tok, Names: names}, nil
}

func (p *Parser) parseType() (*types.Type, error) {
	switch p.cur.Type {
	case lexer.IDENT:
		name := p.cur.Literal
		p.next()
		switch name {
		case "int":
			return types.Int(), nil
		case "float":
			return types.Float(), nil
		case "string":
			return types.String(), nil
		case "bool":
			return types.Bool(), nil
		case "list":
			if _, err := p.expect(lexer.LBRACKET); err != nil {
				return nil, err
			}
			elem, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBRACKET); err != nil {
				return nil, err
			}
			return types.List(elem), nil
		case "dict":
			if _, err := p.expect(lexer.LBRACE); err != nil {
				return nil, err
			}
			key, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.COLON); err != nil {
				return nil, err
			}
			val, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBRACE); err != nil {
				return nil, err
			}
			return types.Dict(key, val), nil
		default:
			return types.Custom(name), nil
		}
	default:
		return nil, &ParseError{Message: "malformed type annotation", Pos: p.cur.Pos}
	}
}

func (p *Parser) parseParams() ([]ast.Param, error) {
	var params []ast.Param
	if p.curIs(lexer.RPAREN) {
		return params, nil
	}
	for {
		name, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: name.Literal, Type: ty})
		if p.curIs(lexer.COMMA) {
			p.next()
			continue
		}
		break
	}
	return params, nil
}

func (p *Parser) parseFunctionDef() (*ast.FunctionDef, error) {
	tok := p.cur
	p.next() // consume 'define'
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	var retType *types.Type
	if p.curIs(lexer.ARROW) {
		p.next()
		retType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	p.skipNewlines()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDef{Token: tok, Name: name.Literal, Params: params, ReturnType: retType, Body: body}, nil
}

func (p *Parser) parseClassDef() (ast.Statement, error) {
	tok := p.cur
	p.next() // consume 'class'
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	p.skipNewlines()
	var methods []*ast.FunctionDef
	for !p.curIs(lexer.EOF) && !p.curIs(lexer.ELSE) {
		if !p.curIs(lexer.DEFINE) {
			break
		}
		m, err := p.parseFunctionDef()
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
		p.skipNewlines()
	}
	return &ast.ClassDef{Token: tok, Name: name.Literal, Methods: methods}, nil
}

func (p *Parser) parseAssign() (ast.Statement, error) {
	tok := p.cur
	p.next() // consume 'set'
	target, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TO); err != nil {
		return nil, err
	}
	val, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Token: tok, Target: target.Literal, Value: val}, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	tok := p.cur
	p.next() // consume 'if'
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	thenBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBody []ast.Statement
	if p.curIs(lexer.ELSE) {
		p.next()
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		elseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &ast.If{Token: tok, Condition: cond, Then: thenBody, Else: elseBody}, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	tok := p.cur
	p.next() // consume 'while'
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Token: tok, Condition: cond, Body: body}, nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	tok := p.cur
	p.next() // consume 'for'
	target, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.IN); err != nil {
		return nil, err
	}
	iter, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.For{Token: tok, Target: target.Literal, Iterable: iter, Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	tok := p.cur
	p.next() // consume 'return'
	if p.curIs(lexer.NEWLINE) || p.curIs(lexer.EOF) || p.curIs(lexer.ELSE) {
		return &ast.Return{Token: tok}, nil
	}
	val, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	return &ast.Return{Token: tok, Value: val}, nil
}

func (p *Parser) parseAsyncDef() (ast.Statement, error) {
	tok := p.cur
	p.next() // consume 'async'
	if !p.curIs(lexer.DEFINE) {
		return nil, &ParseError{Message: "expected function definition after 'async'", Pos: p.cur.Pos}
	}
	fn, err := p.parseFunctionDef()
	if err != nil {
		return nil, err
	}
	return &ast.AsyncDef{Token: tok, Function: fn}, nil
}

func (p *Parser) parseYield() (ast.Statement, error) {
	tok := p.cur
	p.next() // consume 'yield'
	val, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	return &ast.Yield{Token: tok, Value: val}, nil
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	tok := p.cur
	val, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	return &ast.ExprStatement{Token: tok, Value: val}, nil
}

func (p *Parser) parseExpression(precedence int) (ast.Expression, error) {
	prefix, ok := p.prefixParseFns[p.cur.Type]
	if !ok {
		return nil, &ParseError{
			Message: fmt.Sprintf("unexpected token %s(%q)", p.cur.Type, p.cur.Literal),
			Pos:     p.cur.Pos,
		}
	}
	left, err := prefix()
	if err != nil {
		return nil, err
	}

	for !p.curIs(lexer.NEWLINE) && !p.curIs(lexer.EOF) && precedence < p.peekPrecedenceCur() {
		infix, ok := p.infixParseFns[p.cur.Type]
		if !ok {
			return left, nil
		}
		left, err = infix(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// peekPrecedenceCur returns the precedence of the current token, which at
// this point in the loop is the operator about to be consumed as infix.
func (p *Parser) peekPrecedenceCur() int {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) parseIdentifierOrCall() (ast.Expression, error) {
	tok := p.cur
	name := p.cur.Literal
	p.next()
	if !p.curIs(lexer.LPAREN) {
		return &ast.Identifier{Token: tok, Value: name}, nil
	}
	p.next() // consume '('
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if name == "interop" && len(args) == 2 {
		lang, langOK := args[0].(*ast.StringLiteral)
		src, srcOK := args[1].(*ast.StringLiteral)
		if langOK && srcOK {
			return &ast.InteropCall{Token: tok, Language: lang.Value, Source: src.Value}, nil
		}
	}
	return &ast.Call{Token: tok, Callee: name, Args: args}, nil
}

func (p *Parser) parseArgs() ([]ast.Expression, error) {
	var args []ast.Expression
	if p.curIs(lexer.RPAREN) {
		return args, nil
	}
	for {
		arg, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.curIs(lexer.COMMA) {
			p.next()
			continue
		}
		break
	}
	return args, nil
}

func (p *Parser) parseNumberLiteral() (ast.Expression, error) {
	tok := p.cur
	val, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("invalid numeric literal %q", tok.Literal), Pos: tok.Pos}
	}
	p.next()
	return &ast.NumberLiteral{Token: tok, Value: val}, nil
}

func (p *Parser) parseStringLiteral() (ast.Expression, error) {
	tok := p.cur
	p.next()
	return &ast.StringLiteral{Token: tok, Value: tok.Literal}, nil
}

func (p *Parser) parseBoolLiteral() (ast.Expression, error) {
	tok := p.cur
	p.next()
	return &ast.BoolLiteral{Token: tok, Value: tok.Type == lexer.TRUE}, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	tok := p.cur
	p.next() // consume '-'
	operand, err := p.parseExpression(PREFIX)
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOp{Token: tok, Op: "-", Operand: operand}, nil
}

func (p *Parser) parseGrouped() (ast.Expression, error) {
	tok := p.cur
	p.next() // consume '('
	inner, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return &ast.Grouped{Token: tok, Inner: inner}, nil
}

func (p *Parser) parseListLiteral() (ast.Expression, error) {
	tok := p.cur
	p.next() // consume '['
	var elems []ast.Expression
	if !p.curIs(lexer.RBRACKET) {
		for {
			e, err := p.parseExpression(LOWEST)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if p.curIs(lexer.COMMA) {
				p.next()
				continue
			}
			break
		}
	}
	if _, err := p.expect(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.ListLiteral{Token: tok, Elements: elems}, nil
}

func (p *Parser) parseDictLiteral() (ast.Expression, error) {
	tok := p.cur
	p.next() // consume '{'
	var entries []ast.DictEntry
	if !p.curIs(lexer.RBRACE) {
		for {
			key, err := p.parseExpression(LOWEST)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.COLON); err != nil {
				return nil, err
			}
			val, err := p.parseExpression(LOWEST)
			if err != nil {
				return nil, err
			}
			entries = append(entries, ast.DictEntry{Key: key, Value: val})
			if p.curIs(lexer.COMMA) {
				p.next()
				continue
			}
			break
		}
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.DictLiteral{Token: tok, Entries: entries}, nil
}

func (p *Parser) parseClosureExpr() (ast.Expression, error) {
	tok := p.cur
	p.next() // consume 'closure'
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	// Unlike other statement forms, a closure body is a bare expression
	// with no trailing newline.
	body, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	return &ast.ClosureExpr{Token: tok, Params: params, Body: body}, nil
}

func (p *Parser) parseBinOp(left ast.Expression) (ast.Expression, error) {
	tok := p.cur
	op := tok.Literal
	precedence := p.peekPrecedenceCur()
	p.next()
	right, err := p.parseExpression(precedence)
	if err != nil {
		return nil, err
	}
	return &ast.BinOp{Token: tok, Left: left, Op: op, Right: right}, nil
}

// parseInvoke is the `(` infix form: calling whatever expression is to
// the left of the parenthesis. A plain `name(...)` never reaches here
// (parseIdentifierOrCall consumes it as a Call); this covers attribute
// callees like `io.print("hi")` and `p.hello()`, and chained calls.
func (p *Parser) parseInvoke(left ast.Expression) (ast.Expression, error) {
	tok := p.cur
	p.next() // consume '('
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return &ast.Invoke{Token: tok, Target: left, Args: args}, nil
}

func (p *Parser) parseAttribute(left ast.Expression) (ast.Expression, error) {
	tok := p.cur
	p.next() // consume '.'
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	return &ast.Attribute{Token: tok, Object: left, Name: name.Literal}, nil
}

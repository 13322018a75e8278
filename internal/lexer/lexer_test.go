package lexer

import "testing"

func TestNextTokenPunctuationAndOperators(t *testing.T) {
	input := `set x to 1 + 2 * (3 - 4) / 5
if x == 2:
	return x
`
	expected := []TokenType{
		SET, IDENT, TO, NUMBER, PLUS, NUMBER, STAR, LPAREN, NUMBER, MINUS, NUMBER, RPAREN, SLASH, NUMBER, NEWLINE,
		IF, IDENT, EQ, NUMBER, COLON, NEWLINE,
		RETURN, IDENT, NEWLINE,
		EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: got %s, want %s (literal %q)", i, tok.Type, want, tok.Literal)
		}
	}
}

func TestNextTokenTwoCharOperators(t *testing.T) {
	cases := []struct {
		input string
		want  TokenType
	}{
		{"==", EQ},
		{"!=", NOT_EQ},
		{"<=", LT_EQ},
		{">=", GT_EQ},
		{"->", ARROW},
		{"=", ASSIGN},
		{"<", LT},
		{">", GT},
	}
	for _, c := range cases {
		l := New(c.input)
		tok := l.NextToken()
		if tok.Type != c.want {
			t.Errorf("%q: got %s, want %s", c.input, tok.Type, c.want)
		}
		if tok.Literal != c.input {
			t.Errorf("%q: literal = %q, want %q", c.input, tok.Literal, c.input)
		}
	}
}

func TestNextTokenString(t *testing.T) {
	l := New(`"hello world"`)
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("got %s, want STRING", tok.Type)
	}
	if tok.Literal != "hello world" {
		t.Fatalf("literal = %q", tok.Literal)
	}
}

func TestNextTokenUnterminatedString(t *testing.T) {
	l := New(`"hello`)
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("got %s, want ILLEGAL", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("errors = %d, want 1", len(l.Errors()))
	}
}

func TestNextTokenNumber(t *testing.T) {
	l := New("123.45")
	tok := l.NextToken()
	if tok.Type != NUMBER || tok.Literal != "123.45" {
		t.Fatalf("got %s %q", tok.Type, tok.Literal)
	}
}

func TestNextTokenComment(t *testing.T) {
	l := New("set x to 1 # a comment\nset y to 2\n")
	var types []TokenType
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == EOF {
			break
		}
	}
	want := []TokenType{SET, IDENT, TO, NUMBER, NEWLINE, SET, IDENT, TO, NUMBER, NEWLINE, EOF}
	if len(types) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(types), len(want), types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, types[i], want[i])
		}
	}
}

func TestNextTokenKeywordsAndIdentifiers(t *testing.T) {
	l := New("define class true false myVar _underscored")
	want := []TokenType{DEFINE, CLASS, TRUE, FALSE, IDENT, IDENT, EOF}
	for _, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("got %s, want %s", tok.Type, w)
		}
	}
}

func TestTokenizeAccumulatesLineColumn(t *testing.T) {
	tokens, err := Tokenize("set x to 1\nset y to 2\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Pos.Line != 1 || tokens[0].Pos.Column != 1 {
		t.Fatalf("first token pos = %v", tokens[0].Pos)
	}
	// "set" on the second line starts at line 2.
	var secondLineSet Token
	for _, tok := range tokens {
		if tok.Type == SET && tok.Pos.Line == 2 {
			secondLineSet = tok
			break
		}
	}
	if secondLineSet.Type != SET {
		t.Fatalf("did not find SET on line 2: %v", tokens)
	}
}

func TestRoundTripNonStructuralTokens(t *testing.T) {
	input := "set x to 1 + 2\n"
	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var rebuilt string
	for _, tok := range tokens {
		switch tok.Type {
		case EOF, NEWLINE:
			continue
		case STRING:
			rebuilt += `"` + tok.Literal + `"` + " "
		default:
			rebuilt += tok.Literal + " "
		}
	}
	retokenized, err := Tokenize(rebuilt)
	if err != nil {
		t.Fatalf("unexpected error re-lexing: %v", err)
	}
	orig, _ := Tokenize(input)
	i, j := 0, 0
	for i < len(orig) && j < len(retokenized) {
		if orig[i].Type == NEWLINE {
			i++
			continue
		}
		if retokenized[j].Type == NEWLINE {
			j++
			continue
		}
		if orig[i].Type != retokenized[j].Type {
			t.Fatalf("mismatch at %d/%d: %s vs %s", i, j, orig[i].Type, retokenized[j].Type)
		}
		i++
		j++
	}
}

package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/jsparse/token"
)

type tok struct {
	typ token.Kind
	val string
}

func assertTokens(t *testing.T, src string, expected ...tok) {
	t.Helper()
	toks, err := Tokenize(src)
	require.NoError(t, err, src)
	require.Len(t, toks, len(expected)+1, "%s: %v", src, toks)
	for i, exp := range expected {
		assert.Equal(t, exp.typ, toks[i].Type, "token %d of %q", i, src)
		assert.Equal(t, exp.val, toks[i].Value, "token %d of %q", i, src)
	}
	assert.Equal(t, token.EOF, toks[len(toks)-1].Type)
}

func assertLexError(t *testing.T, src string) *Error {
	t.Helper()
	toks, err := Tokenize(src)
	require.Error(t, err, "%q lexed as %v", src, toks)
	require.IsType(t, &Error{}, err)
	assert.Nil(t, toks)
	return err.(*Error)
}

func TestKeywordsAndPunctuators(t *testing.T) {
	assertTokens(t, "while; delete;",
		tok{token.Keyword, "while"},
		tok{token.Punctuator, ";"},
		tok{token.Keyword, "delete"},
		tok{token.Punctuator, ";"},
	)
}

func TestIdentifiers(t *testing.T) {
	for _, src := range []string{"$", "_", "aB0$_", "Zzz"} {
		assertTokens(t, src, tok{token.Identifier, src})
	}
}

func TestReservedWords(t *testing.T) {
	assertTokens(t, "true false null this whilst",
		tok{token.BooleanLiteral, "true"},
		tok{token.BooleanLiteral, "false"},
		tok{token.NullLiteral, "null"},
		tok{token.Keyword, "this"},
		tok{token.Identifier, "whilst"},
	)
}

func TestNumbers(t *testing.T) {
	valid := []string{
		"0111", "077", "0", "0x1", "0xDEADC0DE", "12345",
		"2.", "3e5", "3e-5", "3e+5", "4.5E-6", ".7", "0.5", "0Xab",
	}
	for _, src := range valid {
		assertTokens(t, src, tok{token.NumericLiteral, src})
	}
}

func TestInvalidNumbers(t *testing.T) {
	invalid := []string{
		"08", "0xG00D", "0x;", "2e;", "2eE;", "1.1.1;", "2e+;", "2.e;",
		"0nono", "3in", "1'a'", "078", "0x1g",
	}
	for _, src := range invalid {
		err := assertLexError(t, src)
		assert.Equal(t, "invalid number", err.Msg, src)
		assert.Equal(t, 0, err.From, src)
	}
}

func TestNumberErrorText(t *testing.T) {
	err := assertLexError(t, "x = 2e;")
	assert.Equal(t, "2e;", err.Text)
	assert.Equal(t, 4, err.From)
	assert.Equal(t, 7, err.To)
	assert.Equal(t, `lex error at 4: invalid number: "2e;"`, err.Error())
}

func TestPunctuatorLongestMatch(t *testing.T) {
	assertTokens(t, "++[x];",
		tok{token.Punctuator, "++"},
		tok{token.Punctuator, "["},
		tok{token.Identifier, "x"},
		tok{token.Punctuator, "]"},
		tok{token.Punctuator, ";"},
	)
	assertTokens(t, "a>>>=b",
		tok{token.Identifier, "a"},
		tok{token.Punctuator, ">>>="},
		tok{token.Identifier, "b"},
	)
	assertTokens(t, "!==",
		tok{token.Punctuator, "!="},
		tok{token.Punctuator, "="},
	)
	assertTokens(t, "=>",
		tok{token.Punctuator, "="},
		tok{token.Punctuator, ">"},
	)
	assertTokens(t, "![x]",
		tok{token.Punctuator, "!"},
		tok{token.Punctuator, "["},
		tok{token.Identifier, "x"},
		tok{token.Punctuator, "]"},
	)
}

func TestStrings(t *testing.T) {
	src := `"a b'cd...\a\"fdsa\'fda"`
	assertTokens(t, src, tok{token.StringLiteral, src})

	assertTokens(t, `'it\'s' "x"`,
		tok{token.StringLiteral, `'it\'s'`},
		tok{token.StringLiteral, `"x"`},
	)

	continued := "'line\\\nnext'"
	assertTokens(t, continued, tok{token.StringLiteral, continued})

	crlf := "'line\\\r\nnext'"
	assertTokens(t, crlf, tok{token.StringLiteral, crlf})

	assertTokens(t, `"\\"`, tok{token.StringLiteral, `"\\"`})
}

func TestUnterminatedStrings(t *testing.T) {
	for _, src := range []string{`"abc`, "'abc\ndef'", "'abc\rdef'", `"abc\`, `'abc"`} {
		err := assertLexError(t, src)
		assert.Equal(t, "unterminated string", err.Msg, src)
	}
}

func TestIdentifierFollowedByQuote(t *testing.T) {
	err := assertLexError(t, `abc"x"`)
	assert.Equal(t, "identifier followed by a quote", err.Msg)
	assert.Equal(t, `abc"`, err.Text)
}

func TestComments(t *testing.T) {
	assertTokens(t, "a // line comment\nb /* block\ncomment */ c /**/",
		tok{token.Identifier, "a"},
		tok{token.Identifier, "b"},
		tok{token.Identifier, "c"},
	)
	assertTokens(t, "x=/*c*/1",
		tok{token.Identifier, "x"},
		tok{token.Punctuator, "="},
		tok{token.NumericLiteral, "1"},
	)
	assertTokens(t, "// only a comment")
}

func TestUnterminatedComment(t *testing.T) {
	err := assertLexError(t, "a /* never closed")
	assert.Equal(t, "unterminated comment", err.Msg)
	assert.Equal(t, 2, err.From)
	assert.Equal(t, "/* never closed", err.Text)
}

func TestUnexpectedCharacter(t *testing.T) {
	err := assertLexError(t, "a # b")
	assert.Equal(t, "unexpected character", err.Msg)
	assert.Equal(t, "#", err.Text)
	assert.Equal(t, 2, err.From)

	err = assertLexError(t, "x = é;")
	assert.Equal(t, "é", err.Text)
}

func TestWhitespace(t *testing.T) {
	assertTokens(t, "\t\v\f a \r\n b\r",
		tok{token.Identifier, "a"},
		tok{token.Identifier, "b"},
	)
	assertTokens(t, "")
}

func TestOffsets(t *testing.T) {
	toks, err := Tokenize("var  x = 'y';")
	require.NoError(t, err)
	expected := []token.Token{
		{Type: token.Keyword, Value: "var", From: 0, To: 3},
		{Type: token.Identifier, Value: "x", From: 5, To: 6},
		{Type: token.Punctuator, Value: "=", From: 7, To: 8},
		{Type: token.StringLiteral, Value: "'y'", From: 9, To: 12},
		{Type: token.Punctuator, Value: ";", From: 12, To: 13},
		{Type: token.EOF, From: 13, To: 13},
	}
	assert.Equal(t, expected, toks)
}

// Every byte of the input is either inside a token or in a gap made only of
// whitespace and comments.
func TestOffsetsReconstructSource(t *testing.T) {
	sources := []string{
		"function f(a, b) { return a+b; } // trailing",
		"for (var i = 0; i < 10; i++) { /* body */ x[i] = 'v\\'q'; }",
		"\ta >>>= .5e+3 ;\r\n\n  new Foo().bar(1,2)",
	}
	for _, src := range sources {
		toks, err := Tokenize(src)
		require.NoError(t, err, src)

		var rebuilt strings.Builder
		prev := 0
		for _, tk := range toks {
			require.True(t, tk.From >= prev, "%q: overlapping token %v", src, tk)
			gap := src[prev:tk.From]
			assertSkippable(t, gap)
			rebuilt.WriteString(gap)
			rebuilt.WriteString(src[tk.From:tk.To])
			if tk.Type != token.EOF {
				assert.Equal(t, tk.Value, src[tk.From:tk.To])
				assert.True(t, tk.To > tk.From)
			}
			prev = tk.To
		}
		assert.Equal(t, src, rebuilt.String())
	}
}

func assertSkippable(t *testing.T, gap string) {
	t.Helper()
	for len(gap) > 0 {
		switch {
		case strings.HasPrefix(gap, "//"):
			end := strings.IndexAny(gap, "\r\n")
			if end < 0 {
				end = len(gap)
			}
			gap = gap[end:]
		case strings.HasPrefix(gap, "/*"):
			end := strings.Index(gap, "*/")
			require.True(t, end >= 0, "unclosed comment in gap %q", gap)
			gap = gap[end+2:]
		default:
			require.Contains(t, " \t\v\f\r\n", gap[:1], "non-skippable byte in gap")
			gap = gap[1:]
		}
	}
}

func TestNextReturnsEOFForever(t *testing.T) {
	l, err := New("a")
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, token.Token{Type: token.Identifier, Value: "a", From: 0, To: 1}, l.Next())
	for i := 0; i < 3; i++ {
		assert.Equal(t, token.Token{Type: token.EOF, From: 1, To: 1}, l.Next())
	}
}

func TestNewFailsWithoutPartialStream(t *testing.T) {
	l, err := New("a b c 08")
	assert.Nil(t, l)
	require.Error(t, err)
}

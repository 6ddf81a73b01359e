package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/example/jsparse/ast"
	"github.com/example/jsparse/lexer"
	"github.com/example/jsparse/token"
)

// Options configures a Parser.
type Options struct {
	// Trace prints every production entered and every token consumed.
	Trace bool
	// TraceWriter receives trace output; os.Stdout when nil.
	TraceWriter io.Writer
	// Logger receives debug events; a no-op logger when nil.
	Logger *zap.Logger
	// MaxDepth bounds the nesting of the recursive productions:
	// statements, assignment and unary expressions, and new/call/member
	// chains. A parenthesized expression costs three levels and a nested
	// block one. Zero selects the default and a negative value disables
	// the check.
	MaxDepth int
}

// DefaultOptions are the options used by Parse.
var DefaultOptions = Options{
	MaxDepth: 1000,
}

// SyntaxError reports the token at which parsing failed.
type SyntaxError struct {
	Msg      string
	Expected string // what the parser was looking for, if known
	Got      token.Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", e.Got.From, e.Msg)
}

// bailout aborts a parse once p.err is set.
type bailout struct{}

// Parser is a recursive descent parser with one token of lookahead. A
// Parser parses a single program and is not safe for concurrent use.
type Parser struct {
	source string
	lex    *lexer.Lexer
	opts   Options
	log    *zap.Logger

	tok    token.Token // lookahead, valid when peeked is set
	peeked bool
	prev   token.Token // last consumed token

	depth   int // trace indentation
	nesting int // recursive productions entered, checked against MaxDepth
	err     *SyntaxError
}

// Parse parses source as a program.
func Parse(source string) (*ast.Program, error) {
	return ParseWithOptions(source, DefaultOptions)
}

// ParseWithOptions parses source as a program using opts. A lexical error
// is returned as a *lexer.Error and a grammar error as a *SyntaxError.
func ParseWithOptions(source string, opts Options) (*ast.Program, error) {
	p, err := New(source, opts)
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

// New scans source and returns a Parser for it. The only error New
// returns is the *lexer.Error from scanning.
func New(source string, opts Options) (*Parser, error) {
	if opts.TraceWriter == nil {
		opts.TraceWriter = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultOptions.MaxDepth
	}

	lex, err := lexer.New(source)
	if err != nil {
		opts.Logger.Debug("lexing failed", zap.Error(err))
		return nil, err
	}
	opts.Logger.Debug("lexed source",
		zap.Int("bytes", len(source)),
		zap.Int("tokens", lex.Len()))

	return &Parser{
		source: source,
		lex:    lex,
		opts:   opts,
		log:    opts.Logger,
	}, nil
}

// ParseProgram parses the whole token stream. On failure it returns a nil
// program and a *SyntaxError.
func (p *Parser) ParseProgram() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			prog, err = nil, p.err
			p.log.Debug("parsing failed", zap.Error(err))
		}
	}()

	prog = p.parseProgram()
	p.log.Debug("parsed program", zap.Int("statements", len(prog.Body)))
	return prog, nil
}

// -- tracing

func (p *Parser) printTrace(a ...interface{}) {
	p.printTraceSymbol("  ", a...)
}

func (p *Parser) printTraceSymbol(symbol string, a ...interface{}) {
	const dots = ". . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . "
	pos := p.prev.To
	if p.peeked {
		pos = p.tok.From
	}
	fmt.Fprintf(p.opts.TraceWriter, "%s%9d: ", symbol, pos)
	i := 2 * p.depth
	for i > len(dots) {
		fmt.Fprint(p.opts.TraceWriter, dots)
		i -= len(dots)
	}
	fmt.Fprint(p.opts.TraceWriter, dots[:i])
	fmt.Fprintln(p.opts.TraceWriter, a...)
}

func trace(p *Parser, msg string) *Parser {
	if p.opts.Trace {
		p.printTrace(msg, "(")
	}
	p.depth++
	return p
}

// Usage pattern: defer un(trace(p, "..."))
func un(p *Parser) {
	p.depth--
	if p.opts.Trace {
		p.printTrace(")")
	}
}

// nest guards a production that can recurse without bound.
//
// Usage pattern: defer p.unnest(p.nest())
func (p *Parser) nest() *Parser {
	p.nesting++
	if p.opts.MaxDepth > 0 && p.nesting > p.opts.MaxDepth {
		p.fail(p.peek(), "", "maximum nesting depth exceeded")
	}
	return p
}

func (p *Parser) unnest(*Parser) {
	p.nesting--
}

// -- lookahead

// peek returns the next token without consuming it.
func (p *Parser) peek() token.Token {
	if !p.peeked {
		p.tok = p.lex.Next()
		p.peeked = true
	}
	return p.tok
}

// consume returns the next token and removes it from the stream.
func (p *Parser) consume() token.Token {
	tok := p.peek()
	p.peeked = false
	p.prev = tok
	if p.opts.Trace {
		p.printTraceSymbol(" -", tok)
	}
	return tok
}

// lineTerminatorBefore reports whether a line terminator separates the
// last consumed token from tok. Comments in the gap count.
func (p *Parser) lineTerminatorBefore(tok token.Token) bool {
	return strings.ContainsAny(p.source[p.prev.To:tok.From], "\r\n")
}

// -- errors

func (p *Parser) fail(got token.Token, expected, msg string) {
	p.err = &SyntaxError{Msg: msg, Expected: expected, Got: got}
	if p.opts.Trace {
		p.printTraceSymbol("**", "ERROR:", msg)
	}
	panic(bailout{})
}

// errorExpected fails at the lookahead token.
func (p *Parser) errorExpected(expected string) {
	got := p.peek()
	p.fail(got, expected, fmt.Sprintf("expected %s, got %s", expected, got))
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, " or ")
}

// -- match and expect

func (p *Parser) matchKeyword(words ...string) bool {
	tok := p.peek()
	return tok.Type == token.Keyword && contains(words, tok.Value)
}

func (p *Parser) matchPunctuator(ops ...string) bool {
	tok := p.peek()
	return tok.Type == token.Punctuator && contains(ops, tok.Value)
}

func (p *Parser) matchIdentifier() bool {
	return p.peek().Type == token.Identifier
}

func (p *Parser) matchLiteral() bool {
	switch p.peek().Type {
	case token.StringLiteral, token.NumericLiteral, token.BooleanLiteral, token.NullLiteral:
		return true
	}
	return false
}

func (p *Parser) expectKeyword(words ...string) token.Token {
	if !p.matchKeyword(words...) {
		p.errorExpected(quoteAll(words))
	}
	return p.consume()
}

func (p *Parser) expectPunctuator(ops ...string) token.Token {
	if !p.matchPunctuator(ops...) {
		p.errorExpected(quoteAll(ops))
	}
	return p.consume()
}

func (p *Parser) expectIdentifier() *ast.Identifier {
	if !p.matchIdentifier() {
		p.errorExpected("identifier")
	}
	return &ast.Identifier{Value: p.consume().Value}
}

func (p *Parser) expectLiteral() *ast.Literal {
	if !p.matchLiteral() {
		p.errorExpected("literal")
	}
	return &ast.Literal{Value: p.consume().Value}
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

var (
	statementKeywords = []string{"if", "var", "with", "while", "for", "continue", "break", "return"}
	unaryKeywords     = []string{"delete", "void", "typeof"}
	unaryPunctuators  = []string{"++", "--", "+", "-", "~", "!"}
)

func (p *Parser) matchStatement() bool {
	return p.matchPunctuator("{", ";") ||
		p.matchKeyword(statementKeywords...) ||
		p.matchAssignmentExpression()
}

func (p *Parser) matchPrimaryExpression() bool {
	return p.matchKeyword("this") ||
		p.matchLiteral() ||
		p.matchIdentifier() ||
		p.matchPunctuator("(")
}

func (p *Parser) matchUnaryExpression() bool {
	return p.matchKeyword(unaryKeywords...) || p.matchPunctuator(unaryPunctuators...)
}

func (p *Parser) matchAssignmentExpression() bool {
	return p.matchUnaryExpression() || p.matchLeftHandSideExpression()
}

func (p *Parser) matchLeftHandSideExpression() bool {
	return p.matchPrimaryExpression() || p.matchKeyword("new")
}

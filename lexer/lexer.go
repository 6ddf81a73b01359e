package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/example/jsparse/token"
)

const eof = -1

type state int

const (
	stateText state = iota
	stateSingleLineComment
	stateMultiLineComment
	stateString
	stateNumber
	stateIdentifier
	statePunctuator
	stateDone
)

// Error is a lexical error. Text holds the offending source text and
// From/To its byte range.
type Error struct {
	Msg  string
	Text string
	From int
	To   int
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error at %d: %s: %q", e.From, e.Msg, e.Text)
}

// Lexer serves the tokens of a source text. The whole input is scanned
// when the Lexer is constructed, so Next never fails.
type Lexer struct {
	source string
	start  int // start of the pending token
	pos    int // next byte to read
	quote  byte

	tokens []token.Token
	index  int
}

// New scans source and returns a Lexer positioned at its first token.
func New(source string) (*Lexer, error) {
	l := &Lexer{source: source}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l, nil
}

// Tokenize returns every token of source, ending with the EOF token.
func Tokenize(source string) ([]token.Token, error) {
	l, err := New(source)
	if err != nil {
		return nil, err
	}
	toks := make([]token.Token, 0, len(l.tokens)+1)
	toks = append(toks, l.tokens...)
	return append(toks, l.eofToken()), nil
}

// Next returns the next token. Once the input is exhausted it returns the
// EOF token on every call.
func (l *Lexer) Next() token.Token {
	if l.index >= len(l.tokens) {
		return l.eofToken()
	}
	tok := l.tokens[l.index]
	l.index++
	return tok
}

// Len returns the number of tokens scanned, not counting EOF.
func (l *Lexer) Len() int {
	return len(l.tokens)
}

func (l *Lexer) eofToken() token.Token {
	return token.Token{Type: token.EOF, From: len(l.source), To: len(l.source)}
}

func (l *Lexer) run() error {
	st := stateText
	for st != stateDone {
		var err error
		switch st {
		case stateText:
			st, err = l.lexText()
		case stateSingleLineComment:
			st, err = l.lexSingleLineComment()
		case stateMultiLineComment:
			st, err = l.lexMultiLineComment()
		case stateString:
			st, err = l.lexString()
		case stateNumber:
			st, err = l.lexNumber()
		case stateIdentifier:
			st, err = l.lexIdentifier()
		case statePunctuator:
			st, err = l.lexPunctuator()
		default:
			return fmt.Errorf("lexer: unknown state %d", st)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// -- scanning primitives

func (l *Lexer) peek() int {
	if l.pos >= len(l.source) {
		return eof
	}
	return int(l.source[l.pos])
}

func (l *Lexer) next() int {
	c := l.peek()
	if c != eof {
		l.pos++
	}
	return c
}

func (l *Lexer) backup() {
	l.pos--
}

// ignore drops the pending input.
func (l *Lexer) ignore() {
	l.start = l.pos
}

func (l *Lexer) accept(valid func(int) bool) bool {
	if c := l.peek(); c != eof && valid(c) {
		l.pos++
		return true
	}
	return false
}

func (l *Lexer) acceptRun(valid func(int) bool) {
	for l.accept(valid) {
	}
}

func (l *Lexer) emit(kind token.Kind) {
	l.tokens = append(l.tokens, token.Token{
		Type:  kind,
		Value: l.source[l.start:l.pos],
		From:  l.start,
		To:    l.pos,
	})
	l.ignore()
}

// errorf reports an error covering the pending input plus the next byte,
// which is usually the one that made the input invalid.
func (l *Lexer) errorf(format string, args ...interface{}) error {
	to := l.pos + 1
	if to > len(l.source) {
		to = len(l.source)
	}
	return l.errorAt(to, format, args...)
}

func (l *Lexer) errorAt(to int, format string, args ...interface{}) error {
	return &Error{
		Msg:  fmt.Sprintf(format, args...),
		Text: l.source[l.start:to],
		From: l.start,
		To:   to,
	}
}

// -- states

func (l *Lexer) lexText() (state, error) {
	for {
		rest := l.source[l.pos:]
		switch {
		case strings.HasPrefix(rest, "//"):
			l.pos += 2
			return stateSingleLineComment, nil
		case strings.HasPrefix(rest, "/*"):
			l.pos += 2
			return stateMultiLineComment, nil
		}

		c := l.next()
		switch {
		case c == eof:
			return stateDone, nil
		case isQuote(c):
			l.quote = byte(c)
			return stateString, nil
		case isDecimalDigit(c) || (c == '.' && isDecimalDigit(l.peek())):
			l.backup()
			return stateNumber, nil
		case isWhitespace(c):
			l.ignore()
		case isIdentifierChar(c):
			l.backup()
			return stateIdentifier, nil
		case token.IsPunctuatorChar(byte(c)):
			l.backup()
			return statePunctuator, nil
		case isLineTerminator(c):
			l.ignore()
		default:
			_, size := utf8.DecodeRuneInString(l.source[l.start:])
			return stateDone, l.errorAt(l.start+size, "unexpected character")
		}
	}
}

func (l *Lexer) lexSingleLineComment() (state, error) {
	l.acceptRun(not(isLineTerminator))
	l.ignore()
	return stateText, nil
}

func (l *Lexer) lexMultiLineComment() (state, error) {
	for {
		if strings.HasPrefix(l.source[l.pos:], "*/") {
			l.pos += 2
			l.ignore()
			return stateText, nil
		}
		if l.next() == eof {
			return stateDone, l.errorAt(l.pos, "unterminated comment")
		}
	}
}

func (l *Lexer) lexString() (state, error) {
	q := int(l.quote)
	for {
		l.acceptRun(func(c int) bool {
			return c != q && c != '\\' && !isLineTerminator(c)
		})
		switch c := l.next(); {
		case c == eof || isLineTerminator(c):
			return stateDone, l.errorAt(l.pos, "unterminated string")
		case c == q:
			l.emit(token.StringLiteral)
			return stateText, nil
		default:
			// c is a backslash; the escaped byte is kept verbatim.
			escaped := l.next()
			if escaped == eof {
				return stateDone, l.errorAt(l.pos, "unterminated string")
			}
			if escaped == '\r' && l.peek() == '\n' {
				l.next()
			}
		}
	}
}

func (l *Lexer) lexNumber() (state, error) {
	valid, decimal := isDecimalDigit, true

	if l.accept(oneOf("0")) {
		switch {
		case l.accept(oneOf("xX")):
			valid, decimal = isHexDigit, false
			if !l.accept(valid) {
				return stateDone, l.errorf("invalid number")
			}
		case l.accept(isOctalDigit):
			valid, decimal = isOctalDigit, false
		case l.accept(isDecimalDigit):
			return stateDone, l.errorAt(l.pos, "invalid number")
		}
	}

	l.acceptRun(valid)

	if decimal {
		if l.accept(oneOf(".")) {
			l.acceptRun(isDecimalDigit)
		}
		if l.accept(oneOf("eE")) {
			l.accept(oneOf("+-"))
			if !l.accept(isDecimalDigit) {
				return stateDone, l.errorf("invalid number")
			}
			l.acceptRun(isDecimalDigit)
		}
	}

	if c := l.peek(); isIdentifierChar(c) || isQuote(c) || oneOf(".eE")(c) {
		return stateDone, l.errorf("invalid number")
	}

	l.emit(token.NumericLiteral)
	return stateText, nil
}

func (l *Lexer) lexIdentifier() (state, error) {
	first := l.peek()
	l.acceptRun(isIdentifierChar)

	if isDecimalDigit(first) {
		return stateDone, l.errorAt(l.pos, "identifier starts with a digit")
	}
	if isQuote(l.peek()) {
		return stateDone, l.errorf("identifier followed by a quote")
	}

	l.emit(token.LookupIdentifier(l.source[l.start:l.pos]))
	return stateText, nil
}

// lexPunctuator takes the longest run of punctuator bytes that is still a
// punctuator, so "++[" yields "++" and leaves "[" for the next token.
func (l *Lexer) lexPunctuator() (state, error) {
	for l.accept(isPunctuatorChar) {
		if !token.IsPunctuator(l.source[l.start:l.pos]) {
			l.backup()
			l.emit(token.Punctuator)
			return stateText, nil
		}
	}

	if !token.IsPunctuator(l.source[l.start:l.pos]) {
		return stateDone, l.errorAt(l.pos, "invalid punctuator")
	}
	l.emit(token.Punctuator)
	return stateText, nil
}

// -- character classes

func isWhitespace(c int) bool {
	return c == '\t' || c == '\v' || c == '\f' || c == ' '
}

func isLineTerminator(c int) bool {
	return c == '\n' || c == '\r'
}

func isQuote(c int) bool {
	return c == '"' || c == '\''
}

func isAlpha(c int) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDecimalDigit(c int) bool {
	return c >= '0' && c <= '9'
}

func isOctalDigit(c int) bool {
	return c >= '0' && c <= '7'
}

func isHexDigit(c int) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentifierChar(c int) bool {
	return isAlpha(c) || c == '$' || c == '_' || isDecimalDigit(c)
}

func isPunctuatorChar(c int) bool {
	return c != eof && token.IsPunctuatorChar(byte(c))
}

func not(valid func(int) bool) func(int) bool {
	return func(c int) bool { return !valid(c) }
}

func oneOf(chars string) func(int) bool {
	return func(c int) bool {
		return c != eof && strings.IndexByte(chars, byte(c)) >= 0
	}
}

package token

import (
	"encoding/json"
	"fmt"
)

// Kind classifies a Token.
type Kind int

const (
	Comment Kind = iota
	StringLiteral
	NumericLiteral
	BooleanLiteral
	NullLiteral
	Punctuator
	Keyword
	Identifier
	EOF
)

var kindNames = [...]string{
	Comment:        "comment",
	StringLiteral:  "stringLiteral",
	NumericLiteral: "numericLiteral",
	BooleanLiteral: "booleanLiteral",
	NullLiteral:    "nullLiteral",
	Punctuator:     "punctuator",
	Keyword:        "keyword",
	Identifier:     "identifier",
	EOF:            "eof",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalJSON encodes the kind by name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Token is a single lexeme. Value is the exact source text of the token,
// so string literals keep their quotes. From and To are byte offsets into
// the source with To exclusive.
type Token struct {
	Type  Kind
	Value string
	From  int
	To    int
}

func (t Token) String() string {
	if t.Type == EOF {
		return "eof"
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Value)
}

// Is reports whether t has the given kind and value.
func (t Token) Is(kind Kind, value string) bool {
	return t.Type == kind && t.Value == value
}

type tokenJSON struct {
	Type  Kind    `json:"type"`
	Value *string `json:"value"`
	From  int     `json:"from"`
	To    int     `json:"to"`
}

// MarshalJSON encodes the token as {"type","value","from","to"}; the EOF
// token has a null value.
func (t Token) MarshalJSON() ([]byte, error) {
	out := tokenJSON{Type: t.Type, From: t.From, To: t.To}
	if t.Type != EOF {
		v := t.Value
		out.Value = &v
	}
	return json.Marshal(out)
}

var keywords = map[string]bool{
	"if": true, "in": true, "do": true, "for": true, "new": true,
	"var": true, "try": true, "else": true, "this": true, "void": true,
	"with": true, "case": true, "enum": true, "break": true, "while": true,
	"catch": true, "class": true, "const": true, "super": true, "throw": true,
	"delete": true, "return": true, "typeof": true, "import": true, "switch": true,
	"export": true, "default": true, "extends": true, "finally": true,
	"continue": true, "function": true, "debugger": true,
}

// IsKeyword reports whether word is a reserved keyword.
func IsKeyword(word string) bool {
	return keywords[word]
}

// LookupIdentifier classifies a scanned word.
func LookupIdentifier(word string) Kind {
	switch {
	case word == "true" || word == "false":
		return BooleanLiteral
	case word == "null":
		return NullLiteral
	case keywords[word]:
		return Keyword
	}
	return Identifier
}

var punctuators = map[string]bool{
	"=": true, ".": true, "-": true, "%": true, "}": true, ">": true,
	",": true, "*": true, "[": true, "<": true, "!": true, "/": true,
	"]": true, "~": true, "&": true, "(": true, ";": true, "?": true,
	"|": true, ")": true, ":": true, "+": true, "^": true, "{": true,

	"!=": true, "*=": true, "&&": true, "<<": true, "/=": true, "||": true,
	">>": true, "&=": true, "==": true, "++": true, "|=": true, "<=": true,
	"--": true, "+=": true, "^=": true, ">=": true, "-=": true, "%=": true,

	">>=": true, ">>>": true, "<<=": true,

	">>>=": true,
}

// IsPunctuator reports whether s is a complete punctuator.
func IsPunctuator(s string) bool {
	return punctuators[s]
}

// IsPunctuatorChar reports whether c can start or continue a punctuator.
func IsPunctuatorChar(c byte) bool {
	return punctuators[string(c)]
}

var precedence = map[string]int{
	"||": 0,
	"&&": 1,
	"|":  2,
	"^":  3,
	"&":  4,
	"==": 5, "!=": 5,
	"<": 6, ">": 6, "<=": 6, "=>": 6,
	"<<": 7, ">>": 7, ">>>": 7,
	"+": 8, "-": 8,
	"*": 9, "/": 9, "%": 9,
}

// Precedence returns the binding power of a binary operator. Higher binds
// tighter. ok is false when op is not a binary operator.
//
// The relational row lists "=>" rather than ">=". This reproduces the
// operator table of the reference grammar on purpose and is not a typo:
// ">=" never continues a binary expression, so "a >= b;" is a syntax
// error, and "=>" is never looked up because it does not lex as one
// punctuator.
func Precedence(op string) (prec int, ok bool) {
	prec, ok = precedence[op]
	return
}

var assignmentOperators = map[string]bool{
	"=": true, "*=": true, "/=": true, "%=": true, "+=": true, "-=": true,
	"<<=": true, ">>=": true, ">>>=": true, "&=": true, "^=": true, "|=": true,
}

// IsAssignmentOperator reports whether op is one of the assignment punctuators.
func IsAssignmentOperator(op string) bool {
	return assignmentOperators[op]
}

// Position converts a byte offset into a 1-based line and column. "\r\n",
// "\n" and a lone "\r" each end a line.
func Position(source string, offset int) (line, col int) {
	if offset > len(source) {
		offset = len(source)
	}
	line, col = 1, 1
	for i := 0; i < offset; i++ {
		switch source[i] {
		case '\n':
			line++
			col = 1
		case '\r':
			if i+1 < len(source) && source[i+1] == '\n' {
				continue
			}
			line++
			col = 1
		default:
			col++
		}
	}
	return line, col
}

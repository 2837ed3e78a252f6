// Package token defines the token types produced by the lexer.
package token

import (
	"fmt"
	"grsbpl/internal/span"
)

// Kind represents the type of a token.
type Kind int

const (
	// Special tokens
	EOF Kind = iota

	// Literals
	IDENT  // identifiers: x, counter, loop_1
	INT    // integer literals: 123, 0xff, 0b101, 0o17
	FLOAT  // float literals: 3.14, 1e9
	CHAR   // character literals: 'a'
	STRING // string literals: "hello"

	// Operators
	PLUS  // +
	MINUS // -
	STAR  // *
	SLASH // /
	BANG  // !
	LT    // <
	LTE   // <=
	GT    // >
	GTE   // >=
	EQ    // ==
	NEQ   // !=
	STORE // &
	LOAD  // @
	LABEL // :

	// Delimiters
	LPAREN   // (
	RPAREN   // )
	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]
	COMMA    // ,

	// Keywords
	KW_IF
	KW_ELSE
	KW_WHILE
	KW_GOTO
	KW_DUP
	KW_DROP
	KW_SWAP
	KW_OVER
	KW_ROT
	KW_MOD
	KW_OUT
	KW_NOUT
	KW_IN
	KW_EXIT
	KW_TRUE
	KW_FALSE
)

var kindNames = map[Kind]string{
	EOF: "EOF",

	IDENT:  "IDENT",
	INT:    "INT",
	FLOAT:  "FLOAT",
	CHAR:   "CHAR",
	STRING: "STRING",

	PLUS:  "+",
	MINUS: "-",
	STAR:  "*",
	SLASH: "/",
	BANG:  "!",
	LT:    "<",
	LTE:   "<=",
	GT:    ">",
	GTE:   ">=",
	EQ:    "==",
	NEQ:   "!=",
	STORE: "&",
	LOAD:  "@",
	LABEL: ":",

	LPAREN:   "(",
	RPAREN:   ")",
	LBRACE:   "{",
	RBRACE:   "}",
	LBRACKET: "[",
	RBRACKET: "]",
	COMMA:    ",",

	KW_IF:    "if",
	KW_ELSE:  "else",
	KW_WHILE: "while",
	KW_GOTO:  "goto",
	KW_DUP:   "dup",
	KW_DROP:  "drop",
	KW_SWAP:  "swap",
	KW_OVER:  "over",
	KW_ROT:   "rot",
	KW_MOD:   "mod",
	KW_OUT:   "out",
	KW_NOUT:  "nout",
	KW_IN:    "in",
	KW_EXIT:  "exit",
	KW_TRUE:  "true",
	KW_FALSE: "false",
}

// String returns the human-readable name for a token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword returns true if the kind is a keyword.
func (k Kind) IsKeyword() bool {
	return k >= KW_IF && k <= KW_FALSE
}

// IsLiteral returns true if the kind is a literal (ident/int/float/char/string).
func (k Kind) IsLiteral() bool {
	return k >= IDENT && k <= STRING
}

// IsOperator returns true for operator and delimiter kinds.
func (k Kind) IsOperator() bool {
	return k >= PLUS && k <= COMMA
}

var keywords = map[string]Kind{
	"if":    KW_IF,
	"else":  KW_ELSE,
	"while": KW_WHILE,
	"goto":  KW_GOTO,
	"dup":   KW_DUP,
	"drop":  KW_DROP,
	"swap":  KW_SWAP,
	"over":  KW_OVER,
	"rot":   KW_ROT,
	"mod":   KW_MOD,
	"out":   KW_OUT,
	"nout":  KW_NOUT,
	"in":    KW_IN,
	"exit":  KW_EXIT,
	"true":  KW_TRUE,
	"false": KW_FALSE,
}

// LookupIdent returns the keyword Kind for ident, or IDENT if it is not a keyword.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IDENT
}

// Keywords returns the spelling of every keyword.
func Keywords() []string {
	names := make([]string, 0, len(keywords))
	for k := KW_IF; k <= KW_FALSE; k++ {
		names = append(names, kindNames[k])
	}
	return names
}

// Token represents a lexical token with its kind, text, and source location.
// Lexeme is the raw source text; Value holds the decoded contents of
// CHAR and STRING literals.
type Token struct {
	Kind   Kind      `json:"kind"`
	Lexeme string    `json:"lexeme"`
	Value  string    `json:"value,omitempty"`
	Span   span.Span `json:"span"`
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s %q %s", t.Kind, t.Lexeme, t.Span.Start)
}

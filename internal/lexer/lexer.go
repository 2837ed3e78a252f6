// Package lexer implements the lexical analysis (tokenization) for grsbpl.
//
// Scanning is fail-fast: the first malformed sequence stops the lexer with
// an *Error that pins the failure to a line, a 0-based column and the full
// length of that line.
package lexer

import (
	"fmt"
	"grsbpl/internal/span"
	"grsbpl/internal/token"
	"iter"
	"strings"
	"unicode"
)

// Lexer tokenizes source code into a sequence of tokens. It is single-pass
// and not safe for concurrent use.
type Lexer struct {
	cur  cursor
	err  error
	done bool
}

// New creates a new Lexer for the given source text.
func New(source string) *Lexer {
	return &Lexer{cur: newCursor(source)}
}

// Tokenize scans the entire source. On success the returned tokens end with
// EOF; on failure they hold every token scanned before the error.
func Tokenize(source string) ([]token.Token, error) {
	l := New(source)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

// Next returns the next token. At end of input it returns an EOF token, and
// keeps doing so on every later call. A failure is returned as an *Error and
// is sticky: every later call returns the same error.
func (l *Lexer) Next() (token.Token, error) {
	if l.err != nil {
		return token.Token{}, l.err
	}
	tok, err := l.scan()
	if err != nil {
		l.err = err
		return token.Token{}, err
	}
	return tok, nil
}

// All returns the remaining tokens as a lazy sequence. EOF is not yielded;
// a failure is yielded once as the final element. Once the sequence has
// been exhausted, ranging over it again yields nothing.
func (l *Lexer) All() iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		for !l.done {
			tok, err := l.Next()
			if err != nil {
				l.done = true
				yield(token.Token{}, err)
				return
			}
			if tok.Kind == token.EOF {
				l.done = true
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// ---- internal helpers ----

// emit builds a token of kind spanning from start to the cursor.
func (l *Lexer) emit(kind token.Kind, start mark) token.Token {
	end := l.cur.pos()
	return token.Token{
		Kind:   kind,
		Lexeme: l.cur.src[start.pos.Offset:end.Offset],
		Span:   span.Span{Start: start.pos, End: end},
	}
}

// errorAt builds the failure for the character at m.
func (l *Lexer) errorAt(m mark, kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{
		Kind:       kind,
		Message:    fmt.Sprintf(format, args...),
		Pos:        m.pos,
		LineLength: l.cur.locate(m),
	}
}

// skipTrivia skips whitespace, line comments and block comments.
func (l *Lexer) skipTrivia() error {
	for {
		ch := l.cur.peek()
		switch {
		case isSpace(ch):
			l.cur.advance()
		case ch == '#':
			for ch := l.cur.peek(); ch != eof && ch != '\n'; ch = l.cur.peek() {
				l.cur.advance()
			}
		case ch == '/' && l.cur.peekNext() == '*':
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// skipBlockComment skips a /* ... */ comment. Comments do not nest.
func (l *Lexer) skipBlockComment() error {
	start := l.cur.mark()
	l.cur.advance() // skip /
	l.cur.advance() // skip *
	for !l.cur.atEOF() {
		if l.cur.peek() == '*' && l.cur.peekNext() == '/' {
			l.cur.advance()
			l.cur.advance()
			return nil
		}
		l.cur.advance()
	}
	err := l.errorAt(start, UnterminatedComment, "unterminated block comment")
	err.Hint = "close the comment with */"
	return err
}

// ---- token reading ----

func (l *Lexer) scan() (token.Token, error) {
	if err := l.skipTrivia(); err != nil {
		return token.Token{}, err
	}

	start := l.cur.mark()
	ch := l.cur.peek()

	switch {
	case ch == eof:
		return l.emit(token.EOF, start), nil
	case ch == '"':
		return l.readString(start)
	case ch == '\'':
		return l.readChar(start)
	case isDigit(ch):
		return l.readNumber(start)
	case isIdentStart(ch):
		return l.readIdentifier(start), nil
	}
	return l.readOperator(start)
}

// readString reads a string literal (double-quoted). A newline or the end
// of input before the closing quote is an error at the opening quote.
func (l *Lexer) readString(start mark) (token.Token, error) {
	l.cur.advance() // skip opening "
	var value strings.Builder

	for {
		switch ch := l.cur.peek(); ch {
		case '"':
			l.cur.advance() // skip closing "
			tok := l.emit(token.STRING, start)
			tok.Value = value.String()
			return tok, nil
		case eof, '\n':
			return token.Token{}, l.errorAt(start, UnterminatedString, "unterminated string literal")
		case '\\':
			r, err := l.readEscape(start, UnterminatedString)
			if err != nil {
				return token.Token{}, err
			}
			value.WriteRune(r)
		default:
			value.WriteRune(l.cur.advance())
		}
	}
}

// readChar reads a character literal holding exactly one character.
func (l *Lexer) readChar(start mark) (token.Token, error) {
	l.cur.advance() // skip opening '

	var value rune
	switch ch := l.cur.peek(); ch {
	case '\'':
		return token.Token{}, l.errorAt(start, MalformedChar, "empty character literal")
	case eof, '\n':
		return token.Token{}, l.errorAt(start, UnterminatedChar, "unterminated character literal")
	case '\\':
		r, err := l.readEscape(start, UnterminatedChar)
		if err != nil {
			return token.Token{}, err
		}
		value = r
	default:
		value = l.cur.advance()
	}

	if l.cur.peek() == '\'' {
		l.cur.advance() // skip closing '
		tok := l.emit(token.CHAR, start)
		tok.Value = string(value)
		return tok, nil
	}
	if strings.ContainsRune(l.cur.restOfLine(), '\'') {
		err := l.errorAt(start, MalformedChar, "character literal must contain exactly one character")
		err.Hint = "use double quotes for strings"
		return token.Token{}, err
	}
	return token.Token{}, l.errorAt(start, UnterminatedChar, "unterminated character literal")
}

var escapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
}

// readEscape reads a backslash escape inside a literal that began at start.
// Running into a newline or the end of input leaves the literal unterminated.
func (l *Lexer) readEscape(start mark, unterminated ErrorKind) (rune, error) {
	l.cur.advance() // skip \
	at := l.cur.mark()
	ch := l.cur.peek()
	if r, ok := escapes[ch]; ok {
		l.cur.advance()
		return r, nil
	}
	if ch == eof || ch == '\n' || (ch == '\r' && l.cur.peekNext() == '\n') {
		return 0, l.errorAt(start, unterminated, "%s", unterminated)
	}
	err := l.errorAt(at, InvalidEscape, "unknown escape sequence: '\\' followed by %s", printable(ch))
	err.Hint = `valid escapes are \n \t \r \0 \\ \' \"`
	return 0, err
}

// readNumber reads an integer or float literal. Prefixed literals (0x, 0b,
// 0o) are always integers.
func (l *Lexer) readNumber(start mark) (token.Token, error) {
	if l.cur.peek() == '0' {
		if base, name := radix(l.cur.peekNext()); base != 0 {
			l.cur.advance() // 0
			l.cur.advance() // prefix letter
			n, err := l.readDigits(base)
			if err != nil {
				return token.Token{}, err
			}
			if n == 0 {
				return token.Token{}, l.errorAt(l.cur.mark(), MalformedNumber, "%s literal has no digits", name)
			}
			if ch := l.cur.peek(); isIdentPart(ch) {
				return token.Token{}, l.errorAt(l.cur.mark(), MalformedNumber, "invalid digit %s in %s literal", printable(ch), name)
			}
			return l.emit(token.INT, start), nil
		}
	}

	kind := token.INT
	if _, err := l.readDigits(10); err != nil {
		return token.Token{}, err
	}

	// Fraction
	if l.cur.peek() == '.' {
		kind = token.FLOAT
		l.cur.advance()
		if !isDigit(l.cur.peek()) {
			return token.Token{}, l.errorAt(l.cur.mark(), MalformedNumber, "expected digit after decimal point")
		}
		if _, err := l.readDigits(10); err != nil {
			return token.Token{}, err
		}
	}

	// Exponent
	if ch := l.cur.peek(); ch == 'e' || ch == 'E' {
		kind = token.FLOAT
		l.cur.advance()
		if ch := l.cur.peek(); ch == '+' || ch == '-' {
			l.cur.advance()
		}
		n, err := l.readDigits(10)
		if err != nil {
			return token.Token{}, err
		}
		if n == 0 {
			return token.Token{}, l.errorAt(l.cur.mark(), MalformedNumber, "exponent has no digits")
		}
	}

	if ch := l.cur.peek(); isIdentPart(ch) {
		return token.Token{}, l.errorAt(l.cur.mark(), MalformedNumber, "invalid character %s in number literal", printable(ch))
	}
	return l.emit(kind, start), nil
}

// readDigits consumes digits of base, allowing a single '_' between two
// digits, and returns how many digits it read.
func (l *Lexer) readDigits(base int) (int, error) {
	n := 0
	for {
		ch := l.cur.peek()
		if ch == '_' {
			if n == 0 || !isDigitIn(l.cur.peekNext(), base) {
				return n, l.errorAt(l.cur.mark(), MalformedNumber, "'_' must separate successive digits")
			}
			l.cur.advance()
			continue
		}
		if !isDigitIn(ch, base) {
			return n, nil
		}
		l.cur.advance()
		n++
	}
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier(start mark) token.Token {
	for isIdentPart(l.cur.peek()) {
		l.cur.advance()
	}
	tok := l.emit(token.IDENT, start)
	tok.Kind = token.LookupIdent(tok.Lexeme)
	return tok
}

// readOperator reads an operator or delimiter token.
func (l *Lexer) readOperator(start mark) (token.Token, error) {
	ch := l.cur.advance()

	switch ch {
	case '(':
		return l.emit(token.LPAREN, start), nil
	case ')':
		return l.emit(token.RPAREN, start), nil
	case '{':
		return l.emit(token.LBRACE, start), nil
	case '}':
		return l.emit(token.RBRACE, start), nil
	case '[':
		return l.emit(token.LBRACKET, start), nil
	case ']':
		return l.emit(token.RBRACKET, start), nil
	case ',':
		return l.emit(token.COMMA, start), nil
	case '+':
		return l.emit(token.PLUS, start), nil
	case '-':
		return l.emit(token.MINUS, start), nil
	case '*':
		return l.emit(token.STAR, start), nil
	case '/':
		return l.emit(token.SLASH, start), nil
	case '&':
		return l.emit(token.STORE, start), nil
	case '@':
		return l.emit(token.LOAD, start), nil
	case ':':
		return l.emit(token.LABEL, start), nil
	case '!':
		return l.emitIf('=', token.NEQ, token.BANG, start), nil
	case '<':
		return l.emitIf('=', token.LTE, token.LT, start), nil
	case '>':
		return l.emitIf('=', token.GTE, token.GT, start), nil
	case '=':
		if l.cur.peek() == '=' {
			l.cur.advance()
			return l.emit(token.EQ, start), nil
		}
		err := l.errorAt(start, InvalidCharacter, "unexpected character: '='")
		err.Hint = "did you mean '=='?"
		return token.Token{}, err
	case '%':
		err := l.errorAt(start, InvalidCharacter, "unexpected character: '%%'")
		err.Hint = "use the 'mod' keyword for remainders"
		return token.Token{}, err
	default:
		return token.Token{}, l.errorAt(start, InvalidCharacter, "unexpected character: %s", printable(ch))
	}
}

// emitIf emits long when the next character is next, short otherwise.
func (l *Lexer) emitIf(next rune, long, short token.Kind, start mark) token.Token {
	if l.cur.peek() == next {
		l.cur.advance()
		return l.emit(long, start)
	}
	return l.emit(short, start)
}

// ---- character classification ----

func isSpace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isDigitIn(ch rune, base int) bool {
	switch base {
	case 2:
		return ch == '0' || ch == '1'
	case 8:
		return ch >= '0' && ch <= '7'
	case 16:
		return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
	default:
		return isDigit(ch)
	}
}

// radix maps the letter after a leading 0 to its base.
func radix(ch rune) (int, string) {
	switch ch {
	case 'x', 'X':
		return 16, "hexadecimal"
	case 'b', 'B':
		return 2, "binary"
	case 'o', 'O':
		return 8, "octal"
	}
	return 0, ""
}

func isIdentStart(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
		(ch >= 0x80 && unicode.IsLetter(ch))
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch) || (ch >= 0x80 && unicode.IsDigit(ch))
}

// printable quotes ch for use in a message.
func printable(ch rune) string {
	switch {
	case ch == unicode.ReplacementChar:
		return "(invalid UTF-8)"
	case unicode.IsPrint(ch):
		return fmt.Sprintf("'%c'", ch)
	default:
		return fmt.Sprintf("%U", ch)
	}
}

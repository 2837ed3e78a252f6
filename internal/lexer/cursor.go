package lexer

import (
	"fmt"
	"grsbpl/internal/span"
	"strings"
	"unicode/utf8"
)

const eof rune = -1

// cursor tracks the scan position. Only advance moves it.
type cursor struct {
	src string

	index     int // byte offset of the next unread character
	line      int // current line (1-based)
	column    int // current column (0-based, in characters)
	lineStart int // byte offset where the current line begins

	lengths map[int]int // line length cache keyed by line start
}

// mark is a snapshot of the cursor taken before scanning a token or
// at the point a failure is detected.
type mark struct {
	pos       span.Position
	lineStart int
}

func newCursor(src string) cursor {
	return cursor{src: src, line: 1, lengths: make(map[int]int)}
}

// peek returns the current character without advancing, or eof.
func (c *cursor) peek() rune {
	if c.index >= len(c.src) {
		return eof
	}
	if b := c.src[c.index]; b < utf8.RuneSelf {
		return rune(b)
	}
	r, _ := utf8.DecodeRuneInString(c.src[c.index:])
	return r
}

// peekNext returns the character after the current one, or eof.
func (c *cursor) peekNext() rune {
	if c.index >= len(c.src) {
		return eof
	}
	_, size := utf8.DecodeRuneInString(c.src[c.index:])
	if c.index+size >= len(c.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(c.src[c.index+size:])
	return r
}

// advance consumes the current character and returns it.
func (c *cursor) advance() rune {
	if c.index >= len(c.src) {
		return eof
	}
	r, size := utf8.DecodeRuneInString(c.src[c.index:])
	c.index += size
	if r == '\n' {
		c.line++
		c.column = 0
		c.lineStart = c.index
	} else {
		c.column++
	}
	return r
}

func (c *cursor) atEOF() bool {
	return c.index >= len(c.src)
}

func (c *cursor) pos() span.Position {
	return span.Position{Offset: c.index, Line: c.line, Column: c.column}
}

func (c *cursor) mark() mark {
	return mark{pos: c.pos(), lineStart: c.lineStart}
}

// restOfLine returns the unread text up to, not including, the next newline.
func (c *cursor) restOfLine() string {
	rest := c.src[c.index:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		return rest[:nl]
	}
	return rest
}

// lineLength returns the character count of the line beginning at
// lineStart, excluding the line terminator (\n or \r\n).
func (c *cursor) lineLength(lineStart int) int {
	if n, ok := c.lengths[lineStart]; ok {
		return n
	}
	line := c.src[lineStart:]
	if nl := strings.IndexByte(line, '\n'); nl >= 0 {
		line = strings.TrimSuffix(line[:nl], "\r")
	}
	n := utf8.RuneCountInString(line)
	c.lengths[lineStart] = n
	return n
}

// locate resolves m into its line length, enforcing 0 <= column <= length.
func (c *cursor) locate(m mark) int {
	n := c.lineLength(m.lineStart)
	if m.pos.Column < 0 || m.pos.Column > n {
		panic(fmt.Sprintf("lexer: column %d outside line %d of length %d", m.pos.Column, m.pos.Line, n))
	}
	return n
}

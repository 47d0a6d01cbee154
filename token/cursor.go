// Package token provides the cursor, position tracking, and low-level
// number/string scanning shared by the json and ron tokenizers. Neither
// format engine depends on the other; both depend on token.
package token

import "fmt"

// MaxDepth bounds recursive-descent nesting so adversarial input cannot
// exhaust the goroutine stack. It is not a hard protocol limit, just a
// sane default (spec §4.7).
const MaxDepth = 1024

// Pos is a byte offset into a Cursor's input, resolved to a 1-based
// line/column lazily (only when an error actually needs to report it).
type Pos int

// Cursor is a read-only view over an input buffer plus a mutable byte
// offset. Only Snippet allocates; LineCol is the only method that walks
// the buffer, and only on demand for error reporting.
type Cursor struct {
	Buf []byte
	Off int
}

func NewCursor(buf []byte) *Cursor {
	return &Cursor{Buf: buf}
}

// Peek returns the byte at the cursor without consuming it, or 0, false
// at end of input.
func (c *Cursor) Peek() (byte, bool) {
	if c.Off >= len(c.Buf) {
		return 0, false
	}
	return c.Buf[c.Off], true
}

// PeekAt looks ahead n bytes past the current offset.
func (c *Cursor) PeekAt(n int) (byte, bool) {
	i := c.Off + n
	if i >= len(c.Buf) || i < 0 {
		return 0, false
	}
	return c.Buf[i], true
}

func (c *Cursor) Next() (byte, bool) {
	b, ok := c.Peek()
	if ok {
		c.Off++
	}
	return b, ok
}

func (c *Cursor) Eof() bool {
	return c.Off >= len(c.Buf)
}

// Expect consumes b if it is next, reporting ok=false without advancing
// otherwise.
func (c *Cursor) Expect(b byte) bool {
	got, ok := c.Peek()
	if !ok || got != b {
		return false
	}
	c.Off++
	return true
}

// SkipWhile advances past every byte for which pred returns true.
func (c *Cursor) SkipWhile(pred func(byte) bool) {
	for c.Off < len(c.Buf) && pred(c.Buf[c.Off]) {
		c.Off++
	}
}

func IsJSONSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

// Pos returns the current byte offset as a Pos for error reporting.
func (c *Cursor) Pos() Pos {
	return Pos(c.Off)
}

// LineCol resolves a Pos to a 1-based (line, column) pair by scanning the
// buffer up to that offset. Only called when constructing an error.
func (c *Cursor) LineCol(p Pos) (line, col int) {
	line, col = 1, 1
	limit := int(p)
	if limit > len(c.Buf) {
		limit = len(c.Buf)
	}
	for i := 0; i < limit; i++ {
		if c.Buf[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// Snippet returns a short excerpt of the buffer around p: up to radius
// bytes on each side, clipped to the buffer.
func (c *Cursor) Snippet(p Pos, radius int) string {
	start := int(p) - radius
	if start < 0 {
		start = 0
	}
	end := int(p) + radius
	if end > len(c.Buf) {
		end = len(c.Buf)
	}
	return string(c.Buf[start:end])
}

func (p Pos) String() string {
	return fmt.Sprintf("offset %d", int(p))
}

package json

import (
	"fmt"

	"github.com/nserde/nserde-go/derive"
	"github.com/nserde/nserde-go/token"
)

// rawKind discriminates an untyped parsed JSON value, before it is bound
// against a destination Go type.
type rawKind int

const (
	rawString rawKind = iota
	rawNumber
	rawBool
	rawNull
	rawArray
	rawObject
)

func (k rawKind) String() string {
	switch k {
	case rawString:
		return "string"
	case rawNumber:
		return "number"
	case rawBool:
		return "bool"
	case rawNull:
		return "null"
	case rawArray:
		return "array"
	case rawObject:
		return "object"
	default:
		return "unknown"
	}
}

// rawField is one key/value pair of a parsed object, kept in source
// order so a later duplicate key can simply overwrite an earlier one
// when bound (spec: duplicate keys, last one wins).
type rawField struct {
	key string
	val rawValue
}

type rawValue struct {
	kind rawKind
	s    string // string content, or number literal text
	b    bool
	arr  []rawValue
	obj  []rawField
}

type parser struct {
	c     *token.Cursor
	depth int
}

// parseDocument parses one JSON value starting at the beginning of buf,
// returning the value and the byte offset immediately past it — the
// offset UnmarshalPrefixed needs to report how much of buf it consumed.
func parseDocument(buf []byte) (rawValue, int, error) {
	p := &parser{c: token.NewCursor(buf)}
	p.skipSpace()
	v, err := p.parseValue()
	if err != nil {
		return rawValue{}, 0, err
	}
	return v, int(p.c.Pos()), nil
}

func (p *parser) skipSpace() {
	p.c.SkipWhile(token.IsJSONSpace)
}

func (p *parser) errf(format string, args ...any) error {
	pos := p.c.Pos()
	line, col := p.c.LineCol(pos)
	return &derive.SyntaxError{
		Format: "json",
		Pos:    pos,
		Line:   line,
		Col:    col,
		Source: p.c.Buf,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (p *parser) parseValue() (rawValue, error) {
	p.depth++
	if p.depth > token.MaxDepth {
		return rawValue{}, &derive.DepthExceededError{Limit: token.MaxDepth}
	}
	defer func() { p.depth-- }()

	b, ok := p.c.Peek()
	if !ok {
		return rawValue{}, p.errf("unexpected end of input")
	}
	switch {
	case b == '"':
		s, err := p.parseString()
		if err != nil {
			return rawValue{}, err
		}
		return rawValue{kind: rawString, s: s}, nil
	case b == '{':
		return p.parseObject()
	case b == '[':
		return p.parseArray()
	case b == 't':
		return p.parseLiteral("true", rawValue{kind: rawBool, b: true})
	case b == 'f':
		return p.parseLiteral("false", rawValue{kind: rawBool, b: false})
	case b == 'n':
		return p.parseLiteral("null", rawValue{kind: rawNull})
	case b == '-' || (b >= '0' && b <= '9'):
		return p.parseNumber()
	default:
		return rawValue{}, p.errf("unexpected character %q", b)
	}
}

func (p *parser) parseLiteral(lit string, val rawValue) (rawValue, error) {
	for i := 0; i < len(lit); i++ {
		b, ok := p.c.PeekAt(i)
		if !ok || b != lit[i] {
			return rawValue{}, p.errf("invalid literal, expected %q", lit)
		}
	}
	for i := 0; i < len(lit); i++ {
		p.c.Next()
	}
	return val, nil
}

func (p *parser) parseString() (string, error) {
	start := int(p.c.Pos())
	n, err := token.ScanQuoted(p.c.Buf[start:], '"')
	if err != nil {
		return "", p.errf("%s", err)
	}
	body := p.c.Buf[start+1 : start+n-1]
	for i := 0; i < n; i++ {
		p.c.Next()
	}
	return token.UnescapeJSON(body, false)
}

func (p *parser) parseNumber() (rawValue, error) {
	start := int(p.c.Pos())
	n, _, err := token.ScanNumber(p.c.Buf[start:])
	if err != nil {
		return rawValue{}, p.errf("%s", err)
	}
	text := string(p.c.Buf[start : start+n])
	for i := 0; i < n; i++ {
		p.c.Next()
	}
	return rawValue{kind: rawNumber, s: text}, nil
}

func (p *parser) parseArray() (rawValue, error) {
	p.c.Next()
	p.skipSpace()
	var elems []rawValue
	if b, ok := p.c.Peek(); ok && b == ']' {
		p.c.Next()
		return rawValue{kind: rawArray, arr: elems}, nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return rawValue{}, err
		}
		elems = append(elems, v)
		p.skipSpace()
		b, ok := p.c.Peek()
		if !ok {
			return rawValue{}, p.errf("unexpected end of input in array")
		}
		if b == ',' {
			p.c.Next()
			p.skipSpace()
			continue
		}
		if b == ']' {
			p.c.Next()
			break
		}
		return rawValue{}, p.errf("expected ',' or ']', got %q", b)
	}
	return rawValue{kind: rawArray, arr: elems}, nil
}

func (p *parser) parseObject() (rawValue, error) {
	p.c.Next()
	p.skipSpace()
	var fields []rawField
	if b, ok := p.c.Peek(); ok && b == '}' {
		p.c.Next()
		return rawValue{kind: rawObject, obj: fields}, nil
	}
	for {
		b, ok := p.c.Peek()
		if !ok || b != '"' {
			return rawValue{}, p.errf("expected string key")
		}
		key, err := p.parseString()
		if err != nil {
			return rawValue{}, err
		}
		p.skipSpace()
		if !p.c.Expect(':') {
			return rawValue{}, p.errf("expected ':' after object key")
		}
		p.skipSpace()
		v, err := p.parseValue()
		if err != nil {
			return rawValue{}, err
		}
		fields = append(fields, rawField{key: key, val: v})
		p.skipSpace()
		b2, ok2 := p.c.Peek()
		if !ok2 {
			return rawValue{}, p.errf("unexpected end of input in object")
		}
		if b2 == ',' {
			p.c.Next()
			p.skipSpace()
			continue
		}
		if b2 == '}' {
			p.c.Next()
			break
		}
		return rawValue{}, p.errf("expected ',' or '}', got %q", b2)
	}
	return rawValue{kind: rawObject, obj: fields}, nil
}

package ron

import (
	"fmt"

	"github.com/nserde/nserde-go/derive"
	"github.com/nserde/nserde-go/token"
)

type rawKind int

const (
	rawString rawKind = iota
	rawNumber
	rawBool
	rawSeq
	rawMap
	rawNamedCall      // Ident( field: value, ... ), or anonymous ( field: value, ... )
	rawPositionalCall // Ident( value, ... ), or anonymous tuple ( value, ... )
	rawBareIdent      // Ident with no trailing parens: a unit variant or unit struct
	rawOption         // Some(value) or None
)

type rawField struct {
	key string
	val rawValue
}

type rawMapEntry struct {
	key rawValue
	val rawValue
}

type rawValue struct {
	kind rawKind

	ident string // rawNamedCall/rawPositionalCall/rawBareIdent: the name before '(' (empty if anonymous)
	s     string // rawString content, or rawNumber literal text
	b     bool

	some *rawValue // rawOption

	elems       []rawValue    // rawSeq, rawPositionalCall
	namedFields []rawField    // rawNamedCall
	mapEntries  []rawMapEntry // rawMap
}

type parser struct {
	c     *token.Cursor
	depth int
}

// parseDocument parses one RON value from the start of buf, returning it
// plus the byte offset immediately past it (and any trailing comment or
// whitespace), for UnmarshalPrefixed.
func parseDocument(buf []byte) (rawValue, int, error) {
	p := &parser{c: token.NewCursor(buf)}
	v, err := p.parseValue()
	if err != nil {
		return rawValue{}, 0, err
	}
	p.skipSpace()
	return v, int(p.c.Pos()), nil
}

func (p *parser) errf(format string, args ...any) error {
	pos := p.c.Pos()
	line, col := p.c.LineCol(pos)
	return &derive.SyntaxError{
		Format: "ron",
		Pos:    pos,
		Line:   line,
		Col:    col,
		Source: p.c.Buf,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (p *parser) skipSpace() {
	for {
		p.c.SkipWhile(token.IsJSONSpace)
		b, ok := p.c.Peek()
		if !ok {
			return
		}
		if b != '/' {
			return
		}
		b2, ok2 := p.c.PeekAt(1)
		if !ok2 {
			return
		}
		switch b2 {
		case '/':
			p.c.SkipWhile(func(c byte) bool { return c != '\n' })
		case '*':
			p.c.Next()
			p.c.Next()
			for {
				bb, ok3 := p.c.Peek()
				if !ok3 {
					return
				}
				if bb == '*' {
					if b4, ok4 := p.c.PeekAt(1); ok4 && b4 == '/' {
						p.c.Next()
						p.c.Next()
						break
					}
				}
				p.c.Next()
			}
		default:
			return
		}
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func (p *parser) parseIdent() (string, error) {
	start := p.c.Pos()
	b, ok := p.c.Peek()
	if !ok || !isIdentStart(b) {
		return "", p.errf("expected identifier")
	}
	p.c.Next()
	p.c.SkipWhile(isIdentCont)
	return string(p.c.Buf[start:p.c.Pos()]), nil
}

func (p *parser) parseValue() (rawValue, error) {
	p.depth++
	if p.depth > token.MaxDepth {
		return rawValue{}, &derive.DepthExceededError{Limit: token.MaxDepth}
	}
	defer func() { p.depth-- }()
	p.skipSpace()

	b, ok := p.c.Peek()
	if !ok {
		return rawValue{}, p.errf("unexpected end of input")
	}
	switch {
	case b == '"' || b == '\'':
		s, err := p.parseString()
		if err != nil {
			return rawValue{}, err
		}
		return rawValue{kind: rawString, s: s}, nil
	case b == '(':
		return p.parseParenForm("")
	case b == '[':
		return p.parseSeq()
	case b == '{':
		return p.parseMap()
	case b == '-' || (b >= '0' && b <= '9'):
		return p.parseNumber()
	case isIdentStart(b):
		return p.parseIdentOrCall()
	default:
		return rawValue{}, p.errf("unexpected character %q", b)
	}
}

func (p *parser) parseString() (string, error) {
	quote, _ := p.c.Peek()
	start := int(p.c.Pos())
	n, err := token.ScanQuoted(p.c.Buf[start:], quote)
	if err != nil {
		return "", p.errf("%s", err)
	}
	body := p.c.Buf[start+1 : start+n-1]
	for i := 0; i < n; i++ {
		p.c.Next()
	}
	return token.UnescapeJSON(body, quote == '\'')
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

func (p *parser) parseIdentOrCall() (rawValue, error) {
	ident, err := p.parseIdent()
	if err != nil {
		return rawValue{}, err
	}
	switch ident {
	case "true":
		return rawValue{kind: rawBool, b: true}, nil
	case "false":
		return rawValue{kind: rawBool, b: false}, nil
	case "None":
		return rawValue{kind: rawOption}, nil
	case "Some":
		p.skipSpace()
		if !p.c.Expect('(') {
			return rawValue{}, p.errf("expected '(' after Some")
		}
		p.skipSpace()
		inner, err := p.parseValue()
		if err != nil {
			return rawValue{}, err
		}
		p.skipSpace()
		if !p.c.Expect(')') {
			return rawValue{}, p.errf("expected ')' to close Some(...)")
		}
		return rawValue{kind: rawOption, some: &inner}, nil
	}
	p.skipSpace()
	if b, ok := p.c.Peek(); ok && b == '(' {
		return p.parseParenForm(ident)
	}
	return rawValue{kind: rawBareIdent, ident: ident}, nil
}

// looksLikeFieldName peeks past the current position (without
// consuming) to see whether it starts with `identifier :`, the marker
// that distinguishes a named struct call from a positional tuple call.
func (p *parser) looksLikeFieldName() bool {
	save := p.c.Off
	defer func() { p.c.Off = save }()
	b, ok := p.c.Peek()
	if !ok || !isIdentStart(b) {
		return false
	}
	p.c.Next()
	p.c.SkipWhile(isIdentCont)
	p.skipSpace()
	b2, ok2 := p.c.Peek()
	return ok2 && b2 == ':'
}

func (p *parser) parseParenForm(ident string) (rawValue, error) {
	p.c.Next()
	p.skipSpace()
	if b, ok := p.c.Peek(); ok && b == ')' {
		p.c.Next()
		return rawValue{kind: rawPositionalCall, ident: ident}, nil
	}
	if p.looksLikeFieldName() {
		fields, err := p.parseNamedFields()
		if err != nil {
			return rawValue{}, err
		}
		return rawValue{kind: rawNamedCall, ident: ident, namedFields: fields}, nil
	}
	elems, err := p.parsePositionalArgs()
	if err != nil {
		return rawValue{}, err
	}
	return rawValue{kind: rawPositionalCall, ident: ident, elems: elems}, nil
}

func (p *parser) parseNamedFields() ([]rawField, error) {
	var fields []rawField
	for {
		key, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.c.Expect(':') {
			return nil, p.errf("expected ':' after field name %q", key)
		}
		p.skipSpace()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		fields = append(fields, rawField{key: key, val: v})
		p.skipSpace()
		b, ok := p.c.Peek()
		if !ok {
			return nil, p.errf("unexpected end of input in field list")
		}
		if b == ',' {
			p.c.Next()
			p.skipSpace()
			if b2, ok2 := p.c.Peek(); ok2 && b2 == ')' {
				p.c.Next()
				break
			}
			continue
		}
		if b == ')' {
			p.c.Next()
			break
		}
		return nil, p.errf("expected ',' or ')', got %q", b)
	}
	return fields, nil
}

func (p *parser) parsePositionalArgs() ([]rawValue, error) {
	var elems []rawValue
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
		p.skipSpace()
		b, ok := p.c.Peek()
		if !ok {
			return nil, p.errf("unexpected end of input in tuple")
		}
		if b == ',' {
			p.c.Next()
			p.skipSpace()
			if b2, ok2 := p.c.Peek(); ok2 && b2 == ')' {
				p.c.Next()
				break
			}
			continue
		}
		if b == ')' {
			p.c.Next()
			break
		}
		return nil, p.errf("expected ',' or ')', got %q", b)
	}
	return elems, nil
}

func (p *parser) parseSeq() (rawValue, error) {
	p.c.Next()
	p.skipSpace()
	var elems []rawValue
	if b, ok := p.c.Peek(); ok && b == ']' {
		p.c.Next()
		return rawValue{kind: rawSeq}, nil
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
			return rawValue{}, p.errf("unexpected end of input in sequence")
		}
		if b == ',' {
			p.c.Next()
			p.skipSpace()
			if b2, ok2 := p.c.Peek(); ok2 && b2 == ']' {
				p.c.Next()
				break
			}
			continue
		}
		if b == ']' {
			p.c.Next()
			break
		}
		return rawValue{}, p.errf("expected ',' or ']', got %q", b)
	}
	return rawValue{kind: rawSeq, elems: elems}, nil
}

func (p *parser) parseMap() (rawValue, error) {
	p.c.Next()
	p.skipSpace()
	var entries []rawMapEntry
	if b, ok := p.c.Peek(); ok && b == '}' {
		p.c.Next()
		return rawValue{kind: rawMap}, nil
	}
	for {
		k, err := p.parseValue()
		if err != nil {
			return rawValue{}, err
		}
		p.skipSpace()
		if !p.c.Expect(':') {
			return rawValue{}, p.errf("expected ':' after map key")
		}
		p.skipSpace()
		v, err := p.parseValue()
		if err != nil {
			return rawValue{}, err
		}
		entries = append(entries, rawMapEntry{key: k, val: v})
		p.skipSpace()
		b, ok := p.c.Peek()
		if !ok {
			return rawValue{}, p.errf("unexpected end of input in map")
		}
		if b == ',' {
			p.c.Next()
			p.skipSpace()
			if b2, ok2 := p.c.Peek(); ok2 && b2 == '}' {
				p.c.Next()
				break
			}
			continue
		}
		if b == '}' {
			p.c.Next()
			break
		}
		return rawValue{}, p.errf("expected ',' or '}', got %q", b)
	}
	return rawValue{kind: rawMap, mapEntries: entries}, nil
}

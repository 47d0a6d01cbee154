package ron

import (
	"math"
	"strconv"
	"strings"

	"github.com/nserde/nserde-go/derive"
	"github.com/nserde/nserde-go/ir"
	"github.com/nserde/nserde-go/token"
)

// encoder renders an ir.Value tree to RON text, mirroring json's encoder
// but with RON's call-form syntax in place of JSON's object/array pair.
type encoder struct {
	b      strings.Builder
	indent string
	depth  int
}

func encode(v ir.Value, indent string) (string, error) {
	e := &encoder{indent: indent}
	if err := e.value(v); err != nil {
		return "", err
	}
	return e.b.String(), nil
}

func (e *encoder) value(v ir.Value) error {
	switch v.Kind {
	case ir.Option:
		if v.Some == nil {
			e.b.WriteString("None")
			return nil
		}
		e.b.WriteString("Some(")
		if err := e.value(*v.Some); err != nil {
			return err
		}
		e.b.WriteByte(')')
		return nil
	case ir.Bool:
		if v.B {
			e.b.WriteString("true")
		} else {
			e.b.WriteString("false")
		}
		return nil
	case ir.String:
		e.string(v.S)
		return nil
	case ir.Number:
		return e.number(v)
	case ir.Seq:
		return e.seq(v.Elems)
	case ir.Map:
		return e.mapValue(v.Entries)
	case ir.Record:
		return e.record(v)
	case ir.Variant:
		return e.variant(v)
	default:
		return &derive.UnsupportedTypeError{TypeName: v.Kind.String(), Reason: "cannot encode as ron"}
	}
}

func (e *encoder) string(s string) {
	e.b.WriteByte('"')
	token.EscapeJSONInto(&e.b, s)
	e.b.WriteByte('"')
}

func (e *encoder) number(v ir.Value) error {
	if v.NumKind.Float() {
		if math.IsNaN(v.F) || math.IsInf(v.F, 0) {
			return &derive.UnsupportedTypeError{TypeName: "float", Reason: "RON cannot represent NaN or Infinity"}
		}
		e.b.WriteString(strconv.FormatFloat(v.F, 'g', -1, 64))
		return nil
	}
	if v.NumKind.Signed() {
		e.b.WriteString(strconv.FormatInt(v.I, 10))
		return nil
	}
	e.b.WriteString(strconv.FormatUint(v.U, 10))
	return nil
}

func (e *encoder) newline() {
	if e.indent == "" {
		return
	}
	e.b.WriteByte('\n')
	for i := 0; i < e.depth; i++ {
		e.b.WriteString(e.indent)
	}
}

func (e *encoder) seq(elems []ir.Value) error {
	e.b.WriteByte('[')
	e.depth++
	for i, v := range elems {
		if i > 0 {
			e.b.WriteByte(',')
		}
		e.newline()
		if err := e.value(v); err != nil {
			return err
		}
	}
	e.depth--
	if len(elems) > 0 {
		e.newline()
	}
	e.b.WriteByte(']')
	return nil
}

func (e *encoder) mapValue(entries []ir.Entry) error {
	e.b.WriteByte('{')
	e.depth++
	for i, en := range entries {
		if i > 0 {
			e.b.WriteByte(',')
		}
		e.newline()
		if err := e.value(en.Key); err != nil {
			return err
		}
		e.b.WriteByte(':')
		if e.indent != "" {
			e.b.WriteByte(' ')
		}
		if err := e.value(en.Val); err != nil {
			return err
		}
	}
	e.depth--
	if len(entries) > 0 {
		e.newline()
	}
	e.b.WriteByte('}')
	return nil
}

// record renders a Record as `Name(field: value, ...)` or, for a tuple
// container, `Name(value, value)`. An anonymous (unregistered-name)
// record omits the leading identifier, matching RON's bare tuple/struct
// literal forms.
func (e *encoder) record(v ir.Value) error {
	if v.Tuple {
		return e.call(v.Name, func() error { return e.positionalFields(v.Fields) })
	}
	return e.call(v.Name, func() error { return e.namedFields(v.Fields) })
}

func (e *encoder) call(name string, body func() error) error {
	e.b.WriteString(name)
	e.b.WriteByte('(')
	e.depth++
	if err := body(); err != nil {
		return err
	}
	e.depth--
	e.b.WriteByte(')')
	return nil
}

func (e *encoder) namedFields(fields []ir.Field) error {
	for i, f := range fields {
		if i > 0 {
			e.b.WriteByte(',')
		}
		e.newline()
		e.b.WriteString(f.Name)
		e.b.WriteByte(':')
		if e.indent != "" {
			e.b.WriteByte(' ')
		}
		if err := e.value(f.Val); err != nil {
			return err
		}
	}
	if len(fields) > 0 {
		e.newline()
	}
	return nil
}

func (e *encoder) positionalFields(fields []ir.Field) error {
	for i, f := range fields {
		if i > 0 {
			e.b.WriteByte(',')
		}
		e.newline()
		if err := e.value(f.Val); err != nil {
			return err
		}
	}
	if len(fields) > 0 {
		e.newline()
	}
	return nil
}

// variant renders a tagged union value: a unit variant is its bare wire
// name, any other variant is Name(...) with the payload's fields (spec
// §4.4).
func (e *encoder) variant(v ir.Value) error {
	if len(v.Fields) == 0 {
		e.b.WriteString(v.Name)
		return nil
	}
	payload := v
	payload.Kind = ir.Record
	return e.record(payload)
}

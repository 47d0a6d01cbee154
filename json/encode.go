package json

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nserde/nserde-go/derive"
	"github.com/nserde/nserde-go/ir"
	"github.com/nserde/nserde-go/token"
)

// encoder renders an ir.Value tree to JSON text. indent == "" produces
// the compact form Marshal returns; a non-empty indent drives
// MarshalIndent's pretty-printed form.
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
			e.b.WriteString("null")
			return nil
		}
		return e.value(*v.Some)
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
		return fmt.Errorf("nserde/json: cannot encode value of kind %s", v.Kind)
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

func (e *encoder) string(s string) {
	e.b.WriteByte('"')
	token.EscapeJSONInto(&e.b, s)
	e.b.WriteByte('"')
}

func (e *encoder) number(v ir.Value) error {
	if v.NumKind.Float() {
		if math.IsNaN(v.F) || math.IsInf(v.F, 0) {
			return &derive.UnsupportedTypeError{TypeName: "float", Reason: "JSON cannot represent NaN or Infinity"}
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

func (e *encoder) colon() {
	e.b.WriteByte(':')
	if e.indent != "" {
		e.b.WriteByte(' ')
	}
}

func (e *encoder) mapValue(entries []ir.Entry) error {
	e.b.WriteByte('{')
	e.depth++
	for i, en := range entries {
		if i > 0 {
			e.b.WriteByte(',')
		}
		e.newline()
		if en.Key.Kind != ir.String {
			return &derive.UnsupportedTypeError{TypeName: "map", Reason: "JSON map keys must be strings"}
		}
		e.string(en.Key.S)
		e.colon()
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

func (e *encoder) record(v ir.Value) error {
	if v.Tuple {
		return e.positionalFields(v.Fields)
	}
	return e.namedFields(v.Fields)
}

func (e *encoder) namedFields(fields []ir.Field) error {
	e.b.WriteByte('{')
	e.depth++
	for i, f := range fields {
		if i > 0 {
			e.b.WriteByte(',')
		}
		e.newline()
		e.string(f.Name)
		e.colon()
		if err := e.value(f.Val); err != nil {
			return err
		}
	}
	e.depth--
	if len(fields) > 0 {
		e.newline()
	}
	e.b.WriteByte('}')
	return nil
}

func (e *encoder) positionalFields(fields []ir.Field) error {
	e.b.WriteByte('[')
	e.depth++
	for i, f := range fields {
		if i > 0 {
			e.b.WriteByte(',')
		}
		e.newline()
		if err := e.value(f.Val); err != nil {
			return err
		}
	}
	e.depth--
	if len(fields) > 0 {
		e.newline()
	}
	e.b.WriteByte(']')
	return nil
}

// variant renders a tagged union value as a single-key object whose key
// is the tag and whose value is the payload: null for a unit variant, an
// array for a tuple variant, an object for a named variant.
func (e *encoder) variant(v ir.Value) error {
	e.b.WriteByte('{')
	e.depth++
	e.newline()
	e.string(v.Name)
	e.colon()
	if len(v.Fields) == 0 {
		e.b.WriteString("null")
	} else {
		payload := v
		payload.Kind = ir.Record
		if err := e.record(payload); err != nil {
			return err
		}
	}
	e.depth--
	e.newline()
	e.b.WriteByte('}')
	return nil
}

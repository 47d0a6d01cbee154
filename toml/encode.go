package toml

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nserde/nserde-go/ir"
	"github.com/nserde/nserde-go/token"
)

type encoder struct {
	b strings.Builder
}

func encode(v ir.Value) (string, error) {
	e := &encoder{}
	fields, err := topFields(v)
	if err != nil {
		return "", err
	}
	if err := e.table(nil, fields); err != nil {
		return "", err
	}
	return e.b.String(), nil
}

// topFields normalizes v into the field list of the record or variant
// payload it must be: TOML keys come from field names, so a tuple
// container (positional, nameless fields) has no TOML representation.
func topFields(v ir.Value) ([]ir.Field, error) {
	switch v.Kind {
	case ir.Record, ir.Variant:
		if v.Tuple {
			return nil, &UnrepresentableError{Reason: "a tuple-shaped container has no field names to use as TOML keys"}
		}
		return v.Fields, nil
	default:
		return nil, &UnrepresentableError{Reason: fmt.Sprintf("a TOML table must come from a record, got %s", v.Kind)}
	}
}

// effective unwraps an Option down to its payload, reporting ok=false
// for an absent (None) value: TOML has no representation for null, so an
// absent optional field is simply omitted rather than written as
// anything (spec §4.6 only promises scalars, sub-tables and arrays of
// tables, never a null literal).
func effective(v ir.Value) (ir.Value, bool) {
	if v.Kind == ir.Option {
		if v.Some == nil {
			return ir.Value{}, false
		}
		return effective(*v.Some)
	}
	return v, true
}

type shape int

const (
	shapeAbsent shape = iota
	shapeInline
	shapeTable
	shapeArrayTable
)

func classify(v ir.Value) shape {
	ev, ok := effective(v)
	if !ok {
		return shapeAbsent
	}
	switch ev.Kind {
	case ir.Record, ir.Variant:
		return shapeTable
	case ir.Seq:
		if len(ev.Elems) > 0 && allTables(ev.Elems) {
			return shapeArrayTable
		}
		return shapeInline
	default:
		return shapeInline
	}
}

func allTables(elems []ir.Value) bool {
	for _, e := range elems {
		ev, ok := effective(e)
		if !ok || (ev.Kind != ir.Record && ev.Kind != ir.Variant) {
			return false
		}
	}
	return true
}

// table renders one table body at path: every scalar/inline-valued field
// first as `key = value`, then every nested-table field as [path.key],
// then every array-of-tables field as [[path.key]]. TOML requires a
// table's own keys to precede any of its sub-tables on the wire, so the
// three passes run in that fixed order regardless of the Go struct's
// field order.
func (e *encoder) table(path []string, fields []ir.Field) error {
	var subTables, arrayTables []ir.Field
	for _, f := range fields {
		switch classify(f.Val) {
		case shapeAbsent:
			continue
		case shapeInline:
			e.b.WriteString(f.Name)
			e.b.WriteString(" = ")
			if err := e.inline(f.Val); err != nil {
				return err
			}
			e.b.WriteByte('\n')
		case shapeTable:
			subTables = append(subTables, f)
		case shapeArrayTable:
			arrayTables = append(arrayTables, f)
		}
	}
	for _, f := range subTables {
		ev, _ := effective(f.Val)
		inner, err := topFields(ev)
		if err != nil {
			return err
		}
		sub := childPath(path, f.Name)
		e.b.WriteByte('\n')
		e.header(sub, false)
		if err := e.table(sub, inner); err != nil {
			return err
		}
	}
	for _, f := range arrayTables {
		ev, _ := effective(f.Val)
		sub := childPath(path, f.Name)
		for _, el := range ev.Elems {
			elv, _ := effective(el)
			inner, err := topFields(elv)
			if err != nil {
				return err
			}
			e.b.WriteByte('\n')
			e.header(sub, true)
			if err := e.table(sub, inner); err != nil {
				return err
			}
		}
	}
	return nil
}

func childPath(path []string, name string) []string {
	sub := make([]string, len(path)+1)
	copy(sub, path)
	sub[len(path)] = name
	return sub
}

func (e *encoder) header(path []string, array bool) {
	open, close := "[", "]"
	if array {
		open, close = "[[", "]]"
	}
	e.b.WriteString(open)
	e.b.WriteString(strings.Join(path, "."))
	e.b.WriteString(close)
	e.b.WriteByte('\n')
}

func (e *encoder) inline(v ir.Value) error {
	ev, ok := effective(v)
	if !ok {
		return &UnrepresentableError{Reason: "TOML has no null literal for an absent optional"}
	}
	switch ev.Kind {
	case ir.Bool:
		if ev.B {
			e.b.WriteString("true")
		} else {
			e.b.WriteString("false")
		}
		return nil
	case ir.String:
		e.string(ev.S)
		return nil
	case ir.Number:
		return e.number(ev)
	case ir.Seq:
		return e.inlineSeq(ev.Elems)
	case ir.Map:
		return e.inlineMap(ev.Entries)
	default:
		return &UnrepresentableError{Reason: fmt.Sprintf("cannot render %s as an inline TOML value", ev.Kind)}
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
			return &UnrepresentableError{Reason: "TOML cannot represent NaN or Infinity"}
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

func (e *encoder) inlineSeq(elems []ir.Value) error {
	e.b.WriteByte('[')
	for i, el := range elems {
		if i > 0 {
			e.b.WriteString(", ")
		}
		if err := e.inline(el); err != nil {
			return err
		}
	}
	e.b.WriteByte(']')
	return nil
}

// inlineMap renders a map as a TOML inline table. Key text always comes
// from the wire representation of the ir key value (quoted), since TOML
// table keys are strings or bare identifiers and a non-string Go map key
// (RON and binary allow arbitrary key types) has no other TOML spelling.
func (e *encoder) inlineMap(entries []ir.Entry) error {
	e.b.WriteString("{ ")
	for i, en := range entries {
		if i > 0 {
			e.b.WriteString(", ")
		}
		e.string(mapKeyText(en.Key))
		e.b.WriteString(" = ")
		if err := e.inline(en.Val); err != nil {
			return err
		}
	}
	e.b.WriteString(" }")
	return nil
}

func mapKeyText(k ir.Value) string {
	switch k.Kind {
	case ir.String:
		return k.S
	case ir.Bool:
		if k.B {
			return "true"
		}
		return "false"
	case ir.Number:
		if k.NumKind.Float() {
			return strconv.FormatFloat(k.F, 'g', -1, 64)
		}
		if k.NumKind.Signed() {
			return strconv.FormatInt(k.I, 10)
		}
		return strconv.FormatUint(k.U, 10)
	default:
		return fmt.Sprint(k.Kind)
	}
}

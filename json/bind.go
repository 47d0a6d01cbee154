package json

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/nserde/nserde-go/derive"
	"github.com/nserde/nserde-go/ir"
)

// bind resolves a raw untyped JSON value into the shared wire tree,
// guided by the Go type it will ultimately be applied to via
// derive.FromIR. JSON's own grammar cannot tell a record from a map from
// a tagged union — all three are `{...}` — so that decision is made
// here, against t, rather than by the parser.
func bind(raw rawValue, t reflect.Type) (ir.Value, error) {
	if t.Kind() == reflect.Ptr {
		if raw.kind == rawNull {
			return ir.None(), nil
		}
		inner, err := bind(raw, t.Elem())
		if err != nil {
			return ir.Value{}, err
		}
		return ir.Some(inner), nil
	}
	if t.Kind() == reflect.Interface {
		return bindUnion(raw, t)
	}
	switch t.Kind() {
	case reflect.Struct:
		return bindStruct(raw, t)
	case reflect.Slice, reflect.Array:
		return bindSeq(raw, t)
	case reflect.Map:
		return bindMap(raw, t)
	default:
		return bindScalar(raw, t)
	}
}

func bindScalar(raw rawValue, t reflect.Type) (ir.Value, error) {
	switch raw.kind {
	case rawString:
		return ir.Str(raw.s), nil
	case rawBool:
		return ir.Boolean(raw.b), nil
	case rawNull:
		return ir.None(), nil
	case rawNumber:
		return parseNumberLiteral(raw.s)
	default:
		return ir.Value{}, &derive.TypeMismatchError{Type: t.String(), Want: "scalar", Got: raw.kind.String()}
	}
}

// parseNumberLiteral renders JSON number text into the natural wire
// Number representation; derive.FromIR performs the actual narrowing and
// overflow check once the destination field's exact Go type is known
// (spec §9: a number that does not fit its target field is a
// TypeMismatchError, not silent truncation).
func parseNumberLiteral(text string) (ir.Value, error) {
	if !strings.ContainsAny(text, ".eE") {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return ir.Int(i), nil
		}
		if u, err := strconv.ParseUint(text, 10, 64); err == nil {
			return ir.Uint(u), nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return ir.Value{}, &derive.TypeMismatchError{Want: "number", Got: fmt.Sprintf("unparsable literal %q", text)}
	}
	return ir.Float64(f), nil
}

func bindStruct(raw rawValue, t reflect.Type) (ir.Value, error) {
	plan, err := derive.PlanOf(t)
	if err != nil {
		return ir.Value{}, err
	}
	if plan.Container.Transparent {
		return bind(raw, plan.Fields[0].Type)
	}
	if plan.Container.Proxy != "" {
		conv, ok := derive.LookupProxy(plan.Container.Proxy)
		if !ok {
			return ir.Value{}, &derive.UnsupportedTypeError{TypeName: t.String(), Reason: fmt.Sprintf("proxy %q is not registered", plan.Container.Proxy)}
		}
		return bind(raw, conv.ProxyType)
	}
	if plan.Container.Tuple {
		return bindTupleFields(raw, plan.Fields, t)
	}
	return bindNamedFields(raw, plan.Fields, t, plan.Name)
}

func bindNamedFields(raw rawValue, fields []derive.Field, t reflect.Type, name string) (ir.Value, error) {
	if raw.kind != rawObject {
		return ir.Value{}, &derive.TypeMismatchError{Type: t.String(), Want: "object", Got: raw.kind.String()}
	}
	byKey := make(map[string]rawValue, len(raw.obj))
	for _, f := range raw.obj {
		byKey[f.key] = f.val // later duplicates overwrite earlier ones
	}
	out := ir.Value{Kind: ir.Record, Name: name}
	for _, f := range fields {
		rv, ok := byKey[f.WireName]
		if !ok {
			continue
		}
		fieldType := f.Type
		if f.Attrs.Proxy != "" {
			conv, ok2 := derive.LookupProxy(f.Attrs.Proxy)
			if !ok2 {
				return ir.Value{}, &derive.UnsupportedTypeError{TypeName: fieldType.String(), Reason: fmt.Sprintf("proxy %q is not registered", f.Attrs.Proxy)}
			}
			fieldType = conv.ProxyType
		}
		node, err := bind(rv, fieldType)
		if err != nil {
			return ir.Value{}, err
		}
		out.Fields = append(out.Fields, ir.Field{Name: f.WireName, Val: node})
	}
	return out, nil
}

func bindTupleFields(raw rawValue, fields []derive.Field, t reflect.Type) (ir.Value, error) {
	if raw.kind != rawArray {
		return ir.Value{}, &derive.TypeMismatchError{Type: t.String(), Want: "array (tuple)", Got: raw.kind.String()}
	}
	if len(raw.arr) > len(fields) {
		return ir.Value{}, &derive.TypeMismatchError{Type: t.String(), Want: fmt.Sprintf("%d positional fields", len(fields)), Got: fmt.Sprintf("%d", len(raw.arr))}
	}
	out := ir.Value{Kind: ir.Record, Tuple: true}
	for i, rv := range raw.arr {
		node, err := bind(rv, fields[i].Type)
		if err != nil {
			return ir.Value{}, err
		}
		out.Fields = append(out.Fields, ir.Field{Val: node})
	}
	return out, nil
}

func bindSeq(raw rawValue, t reflect.Type) (ir.Value, error) {
	if raw.kind != rawArray {
		return ir.Value{}, &derive.TypeMismatchError{Type: t.String(), Want: "array", Got: raw.kind.String()}
	}
	elemType := t.Elem()
	elems := make([]ir.Value, len(raw.arr))
	for i, rv := range raw.arr {
		v, err := bind(rv, elemType)
		if err != nil {
			return ir.Value{}, err
		}
		elems[i] = v
	}
	return ir.Sequence(elems), nil
}

func bindMap(raw rawValue, t reflect.Type) (ir.Value, error) {
	if t.Key().Kind() != reflect.String {
		return ir.Value{}, &derive.UnsupportedTypeError{TypeName: t.String(), Reason: "JSON object keys bind only to string-keyed maps"}
	}
	if raw.kind != rawObject {
		return ir.Value{}, &derive.TypeMismatchError{Type: t.String(), Want: "object", Got: raw.kind.String()}
	}
	valType := t.Elem()
	index := make(map[string]int, len(raw.obj))
	var entries []ir.Entry
	for _, f := range raw.obj {
		v, err := bind(f.val, valType)
		if err != nil {
			return ir.Value{}, err
		}
		entry := ir.Entry{Key: ir.Str(f.key), Val: v}
		if i, ok := index[f.key]; ok {
			entries[i] = entry
			continue
		}
		index[f.key] = len(entries)
		entries = append(entries, entry)
	}
	return ir.Value{Kind: ir.Map, Entries: entries}, nil
}

func bindUnion(raw rawValue, t reflect.Type) (ir.Value, error) {
	plan, err := derive.PlanOf(t)
	if err != nil {
		return ir.Value{}, err
	}
	if raw.kind == rawString {
		vp, ok := plan.VariantByWireName(raw.s)
		if !ok {
			return ir.Value{}, &derive.UnknownVariantError{Union: t.String(), Tag: raw.s}
		}
		if !vp.Unit {
			return ir.Value{}, &derive.TypeMismatchError{Type: t.String(), Want: "object payload", Got: "bare string"}
		}
		return ir.Value{Kind: ir.Variant, Name: vp.WireName}, nil
	}
	if raw.kind != rawObject || len(raw.obj) != 1 {
		return ir.Value{}, &derive.TypeMismatchError{Type: t.String(), Want: `single-key object {"Variant": payload}`, Got: raw.kind.String()}
	}
	key := raw.obj[0].key
	vp, ok := plan.VariantByWireName(key)
	if !ok {
		return ir.Value{}, &derive.UnknownVariantError{Union: t.String(), Tag: key}
	}
	if vp.Unit {
		return ir.Value{Kind: ir.Variant, Name: vp.WireName}, nil
	}
	var payload ir.Value
	if vp.Tuple {
		payload, err = bindTupleFields(raw.obj[0].val, vp.Fields, vp.Type)
	} else {
		payload, err = bindNamedFields(raw.obj[0].val, vp.Fields, vp.Type, vp.WireName)
	}
	if err != nil {
		return ir.Value{}, err
	}
	payload.Kind = ir.Variant
	payload.Name = vp.WireName
	return payload, nil
}

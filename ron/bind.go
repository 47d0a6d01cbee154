package ron

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/nserde/nserde-go/derive"
	"github.com/nserde/nserde-go/ir"
)

// bind resolves a raw untyped RON value into the shared wire tree, guided
// by the Go type it will ultimately be applied to via derive.FromIR —
// mirrors json's bind, adapted to RON's call-form and bare-identifier
// shapes instead of JSON's object/array/string triad.
func bind(raw rawValue, t reflect.Type) (ir.Value, error) {
	if t.Kind() == reflect.Ptr {
		if raw.kind == rawOption && raw.some == nil {
			return ir.None(), nil
		}
		if raw.kind == rawOption {
			inner, err := bind(*raw.some, t.Elem())
			if err != nil {
				return ir.Value{}, err
			}
			return ir.Some(inner), nil
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

func rawKindName(k rawKind) string {
	switch k {
	case rawString:
		return "string"
	case rawNumber:
		return "number"
	case rawBool:
		return "bool"
	case rawSeq:
		return "sequence"
	case rawMap:
		return "map"
	case rawNamedCall:
		return "named call"
	case rawPositionalCall:
		return "positional call"
	case rawBareIdent:
		return "identifier"
	case rawOption:
		return "option"
	default:
		return "value"
	}
}

func bindScalar(raw rawValue, t reflect.Type) (ir.Value, error) {
	switch raw.kind {
	case rawString:
		return ir.Str(raw.s), nil
	case rawBool:
		return ir.Boolean(raw.b), nil
	case rawNumber:
		return parseNumberLiteral(raw.s)
	default:
		return ir.Value{}, &derive.TypeMismatchError{Type: t.String(), Want: "scalar", Got: rawKindName(raw.kind)}
	}
}

// parseNumberLiteral renders RON number text into the natural wire Number
// representation; derive.FromIR performs the actual narrowing/overflow
// check once the destination field's exact Go type is known.
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
	if raw.kind == rawBareIdent && len(fields) == 0 {
		return ir.Value{Kind: ir.Record, Name: name}, nil
	}
	if raw.kind != rawNamedCall {
		return ir.Value{}, &derive.TypeMismatchError{Type: t.String(), Want: "named call", Got: rawKindName(raw.kind)}
	}
	byKey := make(map[string]rawValue, len(raw.namedFields))
	for _, f := range raw.namedFields {
		byKey[f.key] = f.val
	}
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.WireName] = true
	}
	for _, f := range raw.namedFields {
		if !known[f.key] {
			return ir.Value{}, &derive.UnknownFieldError{Type: t.String(), Field: f.key}
		}
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
	if raw.kind == rawBareIdent && len(fields) == 0 {
		return ir.Value{Kind: ir.Record, Tuple: true}, nil
	}
	if raw.kind != rawPositionalCall {
		return ir.Value{}, &derive.TypeMismatchError{Type: t.String(), Want: "positional call (tuple)", Got: rawKindName(raw.kind)}
	}
	if len(raw.elems) > len(fields) {
		return ir.Value{}, &derive.TypeMismatchError{Type: t.String(), Want: fmt.Sprintf("%d positional fields", len(fields)), Got: fmt.Sprintf("%d", len(raw.elems))}
	}
	out := ir.Value{Kind: ir.Record, Tuple: true}
	for i, rv := range raw.elems {
		node, err := bind(rv, fields[i].Type)
		if err != nil {
			return ir.Value{}, err
		}
		out.Fields = append(out.Fields, ir.Field{Val: node})
	}
	return out, nil
}

func bindSeq(raw rawValue, t reflect.Type) (ir.Value, error) {
	if raw.kind != rawSeq {
		return ir.Value{}, &derive.TypeMismatchError{Type: t.String(), Want: "sequence", Got: rawKindName(raw.kind)}
	}
	elemType := t.Elem()
	elems := make([]ir.Value, len(raw.elems))
	for i, rv := range raw.elems {
		v, err := bind(rv, elemType)
		if err != nil {
			return ir.Value{}, err
		}
		elems[i] = v
	}
	return ir.Sequence(elems), nil
}

func bindMap(raw rawValue, t reflect.Type) (ir.Value, error) {
	if raw.kind != rawMap {
		return ir.Value{}, &derive.TypeMismatchError{Type: t.String(), Want: "map", Got: rawKindName(raw.kind)}
	}
	keyType, valType := t.Key(), t.Elem()
	entries := make([]ir.Entry, len(raw.mapEntries))
	for i, e := range raw.mapEntries {
		k, err := bind(e.key, keyType)
		if err != nil {
			return ir.Value{}, err
		}
		v, err := bind(e.val, valType)
		if err != nil {
			return ir.Value{}, err
		}
		entries[i] = ir.Entry{Key: k, Val: v}
	}
	return ir.Value{Kind: ir.Map, Entries: entries}, nil
}

func bindUnion(raw rawValue, t reflect.Type) (ir.Value, error) {
	plan, err := derive.PlanOf(t)
	if err != nil {
		return ir.Value{}, err
	}
	var name string
	switch raw.kind {
	case rawBareIdent:
		name = raw.ident
	case rawNamedCall, rawPositionalCall:
		name = raw.ident
	default:
		return ir.Value{}, &derive.TypeMismatchError{Type: t.String(), Want: "variant identifier or call", Got: rawKindName(raw.kind)}
	}
	vp, ok := plan.VariantByWireName(name)
	if !ok {
		return ir.Value{}, &derive.UnknownVariantError{Union: t.String(), Tag: name}
	}
	if vp.Unit {
		if raw.kind != rawBareIdent {
			return ir.Value{}, &derive.TypeMismatchError{Type: t.String(), Want: "bare identifier", Got: rawKindName(raw.kind)}
		}
		return ir.Value{Kind: ir.Variant, Name: vp.WireName, VariantIndex: vp.Index}, nil
	}
	var payload ir.Value
	if vp.Tuple {
		payload, err = bindTupleFields(raw, vp.Fields, vp.Type)
	} else {
		payload, err = bindNamedFields(raw, vp.Fields, vp.Type, vp.WireName)
	}
	if err != nil {
		return ir.Value{}, err
	}
	payload.Kind = ir.Variant
	payload.Name = vp.WireName
	payload.VariantIndex = vp.Index
	return payload, nil
}

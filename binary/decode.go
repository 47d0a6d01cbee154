package binary

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"unicode/utf8"

	"github.com/nserde/nserde-go/derive"
	"github.com/nserde/nserde-go/ir"
)

// reader is a bounds-checked cursor over a decode buffer; every read
// past the end reports UnexpectedEOFError instead of panicking.
type reader struct {
	buf []byte
	off int
}

func (r *reader) take(n int) ([]byte, error) {
	if r.off+n > len(r.buf) || n < 0 {
		return nil, &UnexpectedEOFError{Want: n, Have: len(r.buf) - r.off}
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) readByte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) u32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) u64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// decodeValue reads one wire value guided by t: the binary format has no
// self-describing shape, so every decode call needs the destination
// type up front, unlike json/ron's parse-then-bind split.
func decodeValue(r *reader, t reflect.Type) (ir.Value, error) {
	if t.Kind() == reflect.Ptr {
		tag, err := r.readByte()
		if err != nil {
			return ir.Value{}, err
		}
		switch tag {
		case 0:
			return ir.None(), nil
		case 1:
			inner, err := decodeValue(r, t.Elem())
			if err != nil {
				return ir.Value{}, err
			}
			return ir.Some(inner), nil
		default:
			return ir.Value{}, &InvalidTagError{Tag: uint32(tag)}
		}
	}
	if t.Kind() == reflect.Interface {
		return decodeUnion(r, t)
	}

	switch t.Kind() {
	case reflect.Bool:
		b, err := r.readByte()
		if err != nil {
			return ir.Value{}, err
		}
		return ir.Boolean(b != 0), nil

	case reflect.String:
		return decodeString(r)

	case reflect.Int8:
		b, err := r.readByte()
		if err != nil {
			return ir.Value{}, err
		}
		return ir.Value{Kind: ir.Number, NumKind: ir.Int8, I: int64(int8(b))}, nil
	case reflect.Int16:
		u, err := r.u16()
		if err != nil {
			return ir.Value{}, err
		}
		return ir.Value{Kind: ir.Number, NumKind: ir.Int16, I: int64(int16(u))}, nil
	case reflect.Int32:
		u, err := r.u32()
		if err != nil {
			return ir.Value{}, err
		}
		return ir.Value{Kind: ir.Number, NumKind: ir.Int32, I: int64(int32(u))}, nil
	case reflect.Int, reflect.Int64:
		u, err := r.u64()
		if err != nil {
			return ir.Value{}, err
		}
		return ir.Value{Kind: ir.Number, NumKind: ir.Int64, I: int64(u)}, nil

	case reflect.Uint8:
		b, err := r.readByte()
		if err != nil {
			return ir.Value{}, err
		}
		return ir.Value{Kind: ir.Number, NumKind: ir.Uint8, U: uint64(b)}, nil
	case reflect.Uint16:
		u, err := r.u16()
		if err != nil {
			return ir.Value{}, err
		}
		return ir.Value{Kind: ir.Number, NumKind: ir.Uint16, U: uint64(u)}, nil
	case reflect.Uint32:
		u, err := r.u32()
		if err != nil {
			return ir.Value{}, err
		}
		return ir.Value{Kind: ir.Number, NumKind: ir.Uint32, U: uint64(u)}, nil
	case reflect.Uint, reflect.Uint64:
		u, err := r.u64()
		if err != nil {
			return ir.Value{}, err
		}
		return ir.Value{Kind: ir.Number, NumKind: ir.Uint64, U: u}, nil

	case reflect.Float32:
		u, err := r.u32()
		if err != nil {
			return ir.Value{}, err
		}
		return ir.Float32(math.Float32frombits(u)), nil
	case reflect.Float64:
		u, err := r.u64()
		if err != nil {
			return ir.Value{}, err
		}
		return ir.Float64(math.Float64frombits(u)), nil

	case reflect.Slice:
		return decodeSeq(r, t)
	case reflect.Array:
		return decodeArray(r, t)
	case reflect.Map:
		return decodeMap(r, t)
	case reflect.Struct:
		return decodeStruct(r, t)

	default:
		return ir.Value{}, &derive.UnsupportedTypeError{TypeName: t.String(), Reason: "no binary wire representation"}
	}
}

func decodeString(r *reader) (ir.Value, error) {
	n, err := r.u64()
	if err != nil {
		return ir.Value{}, err
	}
	b, err := r.take(int(n))
	if err != nil {
		return ir.Value{}, err
	}
	if !utf8.Valid(b) {
		return ir.Value{}, &InvalidUTF8Error{}
	}
	return ir.Str(string(b)), nil
}

func decodeSeq(r *reader, t reflect.Type) (ir.Value, error) {
	n, err := r.u64()
	if err != nil {
		return ir.Value{}, err
	}
	elemType := t.Elem()
	elems := make([]ir.Value, n)
	for i := range elems {
		v, err := decodeValue(r, elemType)
		if err != nil {
			return ir.Value{}, err
		}
		elems[i] = v
	}
	return ir.Sequence(elems), nil
}

func decodeArray(r *reader, t reflect.Type) (ir.Value, error) {
	n, err := r.u64()
	if err != nil {
		return ir.Value{}, err
	}
	if int(n) != t.Len() {
		return ir.Value{}, &derive.TypeMismatchError{Type: t.String(), Want: fmt.Sprintf("array of length %d", t.Len()), Got: fmt.Sprintf("%d elements", n)}
	}
	elemType := t.Elem()
	elems := make([]ir.Value, n)
	for i := range elems {
		v, err := decodeValue(r, elemType)
		if err != nil {
			return ir.Value{}, err
		}
		elems[i] = v
	}
	return ir.Sequence(elems), nil
}

func decodeMap(r *reader, t reflect.Type) (ir.Value, error) {
	n, err := r.u64()
	if err != nil {
		return ir.Value{}, err
	}
	kt, vt := t.Key(), t.Elem()
	entries := make([]ir.Entry, n)
	for i := range entries {
		k, err := decodeValue(r, kt)
		if err != nil {
			return ir.Value{}, err
		}
		v, err := decodeValue(r, vt)
		if err != nil {
			return ir.Value{}, err
		}
		entries[i] = ir.Entry{Key: k, Val: v}
	}
	return ir.Value{Kind: ir.Map, Entries: entries}, nil
}

func decodeStruct(r *reader, t reflect.Type) (ir.Value, error) {
	plan, err := derive.PlanOf(t)
	if err != nil {
		return ir.Value{}, err
	}
	if plan.Container.Transparent {
		return decodeValue(r, plan.Fields[0].Type)
	}
	if plan.Container.Proxy != "" {
		conv, ok := derive.LookupProxy(plan.Container.Proxy)
		if !ok {
			return ir.Value{}, &derive.UnsupportedTypeError{TypeName: t.String(), Reason: fmt.Sprintf("proxy %q is not registered", plan.Container.Proxy)}
		}
		return decodeValue(r, conv.ProxyType)
	}
	fields, err := decodeFields(r, plan.Fields)
	if err != nil {
		return ir.Value{}, err
	}
	return ir.Value{Kind: ir.Record, Name: plan.Name, Tuple: plan.Container.Tuple, Fields: fields}, nil
}

func decodeFields(r *reader, fields []derive.Field) ([]ir.Field, error) {
	out := make([]ir.Field, 0, len(fields))
	for _, f := range fields {
		fieldType := f.Type
		if f.Attrs.Proxy != "" {
			conv, ok := derive.LookupProxy(f.Attrs.Proxy)
			if !ok {
				return nil, &derive.UnsupportedTypeError{TypeName: fieldType.String(), Reason: fmt.Sprintf("proxy %q is not registered", f.Attrs.Proxy)}
			}
			fieldType = conv.ProxyType
		}
		node, err := decodeValue(r, fieldType)
		if err != nil {
			return nil, err
		}
		out = append(out, ir.Field{Name: f.WireName, Val: node})
	}
	return out, nil
}

func decodeUnion(r *reader, t reflect.Type) (ir.Value, error) {
	plan, err := derive.PlanOf(t)
	if err != nil {
		return ir.Value{}, err
	}
	idx, err := r.u32()
	if err != nil {
		return ir.Value{}, err
	}
	if int(idx) >= len(plan.Variants) {
		return ir.Value{}, &InvalidTagError{Tag: idx}
	}
	vp := &plan.Variants[idx]
	if vp.Unit {
		return ir.Value{Kind: ir.Variant, Name: vp.WireName, VariantIndex: vp.Index}, nil
	}
	fields, err := decodeFields(r, vp.Fields)
	if err != nil {
		return ir.Value{}, err
	}
	return ir.Value{Kind: ir.Variant, Name: vp.WireName, Tuple: vp.Tuple, Fields: fields, VariantIndex: vp.Index}, nil
}

package derive

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/nserde/nserde-go/ir"
)

// ToIROptions controls optional-field omission so every format back-end
// can reuse the same reflection walk without re-deriving it: JSON, RON
// and TOML drop an absent optional field from the tree unless
// serialize_none_as_null is set (TOML's encoder then omits it anyway, as
// TOML has no null), while the binary engine's fixed positional layout
// can never omit a field.
type ToIROptions struct {
	OmitAbsentOptionals bool
}

// ToIR converts a reflected Go value into the shared wire tree that
// every format engine encodes from.
func ToIR(rv reflect.Value, opts ToIROptions) (ir.Value, error) {
	if !rv.IsValid() {
		return ir.None(), nil
	}

	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return ir.None(), nil
		}
		return unionToIR(rv.Type(), rv.Elem(), opts)
	}

	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return ir.None(), nil
		}
		inner, err := ToIR(rv.Elem(), opts)
		if err != nil {
			return ir.Value{}, err
		}
		return ir.Some(inner), nil

	case reflect.Bool:
		return ir.Boolean(rv.Bool()), nil

	case reflect.String:
		return ir.Str(rv.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.Value{Kind: ir.Number, NumKind: intNumKind(rv.Kind()), I: rv.Int()}, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ir.Value{Kind: ir.Number, NumKind: uintNumKind(rv.Kind()), U: rv.Uint()}, nil

	case reflect.Float32:
		return ir.Float32(float32(rv.Float())), nil

	case reflect.Float64:
		return ir.Float64(rv.Float()), nil

	case reflect.Slice:
		if rv.IsNil() {
			return ir.Sequence(nil), nil
		}
		return seqToIR(rv, opts)

	case reflect.Array:
		return seqToIR(rv, opts)

	case reflect.Map:
		return mapToIR(rv, opts)

	case reflect.Struct:
		return structToIR(rv, opts)

	default:
		return ir.Value{}, &UnsupportedTypeError{TypeName: rv.Type().String(), Reason: "no wire representation"}
	}
}

func intNumKind(k reflect.Kind) ir.NumKind {
	switch k {
	case reflect.Int8:
		return ir.Int8
	case reflect.Int16:
		return ir.Int16
	case reflect.Int32:
		return ir.Int32
	default:
		return ir.Int64
	}
}

func uintNumKind(k reflect.Kind) ir.NumKind {
	switch k {
	case reflect.Uint8:
		return ir.Uint8
	case reflect.Uint16:
		return ir.Uint16
	case reflect.Uint32:
		return ir.Uint32
	default:
		return ir.Uint64
	}
}

func seqToIR(rv reflect.Value, opts ToIROptions) (ir.Value, error) {
	elems := make([]ir.Value, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		v, err := ToIR(rv.Index(i), opts)
		if err != nil {
			return ir.Value{}, err
		}
		elems[i] = v
	}
	return ir.Sequence(elems), nil
}

// mapToIR sorts entries by their key's string form before emitting, the
// same determinism the teacher's ir.FromMap gets from
// slices.Sorted(maps.Keys(yMap)) — map iteration order is otherwise
// unspecified in Go and would make repeated Marshal calls diverge.
func mapToIR(rv reflect.Value, opts ToIROptions) (ir.Value, error) {
	keys := rv.MapKeys()
	type ordered struct {
		sortKey string
		key     reflect.Value
	}
	sorted := make([]ordered, len(keys))
	for i, k := range keys {
		sorted[i] = ordered{sortKey: fmt.Sprint(k.Interface()), key: k}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].sortKey < sorted[j].sortKey })

	entries := make([]ir.Entry, len(sorted))
	for i, e := range sorted {
		kNode, err := ToIR(e.key, opts)
		if err != nil {
			return ir.Value{}, err
		}
		vNode, err := ToIR(rv.MapIndex(e.key), opts)
		if err != nil {
			return ir.Value{}, err
		}
		entries[i] = ir.Entry{Key: kNode, Val: vNode}
	}
	return ir.Value{Kind: ir.Map, Entries: entries}, nil
}

func structToIR(rv reflect.Value, opts ToIROptions) (ir.Value, error) {
	plan, err := PlanOf(rv.Type())
	if err != nil {
		return ir.Value{}, err
	}
	if plan.Container.Transparent {
		return ToIR(rv.Field(plan.Fields[0].GoIndex), opts)
	}
	if plan.Container.Proxy != "" {
		conv, ok := lookupProxy(plan.Container.Proxy)
		if !ok {
			return ir.Value{}, &UnsupportedTypeError{TypeName: rv.Type().String(), Reason: fmt.Sprintf("proxy %q is not registered", plan.Container.Proxy)}
		}
		return ToIR(conv.ToProxy(rv), opts)
	}
	fields, err := fieldsToIR(rv, plan.Fields, plan.Container.Tuple, opts)
	if err != nil {
		return ir.Value{}, err
	}
	return ir.Value{Kind: ir.Record, Name: plan.Name, Tuple: plan.Container.Tuple, Fields: fields}, nil
}

func fieldsToIR(rv reflect.Value, fields []Field, tuple bool, opts ToIROptions) ([]ir.Field, error) {
	out := make([]ir.Field, 0, len(fields))
	for _, f := range fields {
		fv := rv.Field(f.GoIndex)
		if f.Attrs.Proxy != "" {
			conv, ok := lookupProxy(f.Attrs.Proxy)
			if !ok {
				return nil, &UnsupportedTypeError{TypeName: f.Type.String(), Reason: fmt.Sprintf("proxy %q is not registered", f.Attrs.Proxy)}
			}
			fv = conv.ToProxy(fv)
		}
		if opts.OmitAbsentOptionals && !f.Attrs.SerializeNoneAsNull && isAbsentOptional(fv) {
			continue
		}
		node, err := ToIR(fv, opts)
		if err != nil {
			return nil, err
		}
		name := f.WireName
		if tuple {
			name = ""
		}
		out = append(out, ir.Field{Name: name, Val: node})
	}
	return out, nil
}

func isAbsentOptional(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

func unionToIR(ifaceType reflect.Type, concrete reflect.Value, opts ToIROptions) (ir.Value, error) {
	plan, err := PlanOf(ifaceType)
	if err != nil {
		return ir.Value{}, err
	}
	vp, ok := plan.VariantByType(concrete.Type())
	if !ok {
		return ir.Value{}, &UnknownVariantError{Union: ifaceType.String(), Tag: concrete.Type().String()}
	}
	target := concrete
	for target.Kind() == reflect.Ptr {
		if target.IsNil() {
			return ir.Value{}, &UnsupportedTypeError{TypeName: concrete.Type().String(), Reason: "nil variant pointer"}
		}
		target = target.Elem()
	}
	if vp.Unit {
		return ir.Value{Kind: ir.Variant, Name: vp.WireName, VariantIndex: vp.Index}, nil
	}
	fields, err := fieldsToIR(target, vp.Fields, vp.Tuple, opts)
	if err != nil {
		return ir.Value{}, err
	}
	return ir.Value{Kind: ir.Variant, Name: vp.WireName, Tuple: vp.Tuple, Fields: fields, VariantIndex: vp.Index}, nil
}

// FromIR applies a wire value tree onto dst, which must be settable
// (typically obtained via reflect.New(t).Elem() or a struct field).
func FromIR(node ir.Value, dst reflect.Value) error {
	if dst.Kind() == reflect.Interface {
		return unionFromIR(node, dst)
	}

	switch node.Kind {
	case ir.Option:
		return optionFromIR(node, dst)
	case ir.Number:
		return numberFromIR(node, dst)
	case ir.Bool:
		if dst.Kind() != reflect.Bool {
			return &TypeMismatchError{Type: dst.Type().String(), Want: "bool", Got: node.Kind.String()}
		}
		dst.SetBool(node.B)
		return nil
	case ir.String:
		if dst.Kind() != reflect.String {
			return &TypeMismatchError{Type: dst.Type().String(), Want: "string", Got: node.Kind.String()}
		}
		dst.SetString(node.S)
		return nil
	case ir.Seq:
		return seqFromIR(node, dst)
	case ir.Map:
		return mapFromIR(node, dst)
	case ir.Record:
		return recordFromIR(node, dst)
	case ir.Variant:
		return unionFromIR(node, dst)
	default:
		return &TypeMismatchError{Type: dst.Type().String(), Want: "known wire value", Got: "invalid"}
	}
}

func optionFromIR(node ir.Value, dst reflect.Value) error {
	if dst.Kind() != reflect.Ptr {
		return &TypeMismatchError{Type: dst.Type().String(), Want: "pointer field for an option", Got: "option"}
	}
	if node.Some == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	elem := reflect.New(dst.Type().Elem())
	if err := FromIR(*node.Some, elem.Elem()); err != nil {
		return err
	}
	dst.Set(elem)
	return nil
}

func numberFromIR(node ir.Value, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		iv, ok := node.AsInt()
		if !ok || dst.OverflowInt(iv) {
			return &TypeMismatchError{Type: dst.Type().String(), Want: dst.Kind().String(), Got: "out-of-range or non-integral number"}
		}
		dst.SetInt(iv)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		uv, ok := node.AsUint()
		if !ok || dst.OverflowUint(uv) {
			return &TypeMismatchError{Type: dst.Type().String(), Want: dst.Kind().String(), Got: "out-of-range or non-integral number"}
		}
		dst.SetUint(uv)
		return nil
	case reflect.Float32, reflect.Float64:
		fv, ok := node.AsFloat()
		if !ok {
			return &TypeMismatchError{Type: dst.Type().String(), Want: dst.Kind().String(), Got: "number"}
		}
		dst.SetFloat(fv)
		return nil
	default:
		return &TypeMismatchError{Type: dst.Type().String(), Want: "numeric field", Got: "number"}
	}
}

func seqFromIR(node ir.Value, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(dst.Type(), len(node.Elems), len(node.Elems))
		for i, e := range node.Elems {
			if err := FromIR(e, out.Index(i)); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	case reflect.Array:
		if len(node.Elems) != dst.Len() {
			return &TypeMismatchError{Type: dst.Type().String(), Want: fmt.Sprintf("array of length %d", dst.Len()), Got: fmt.Sprintf("%d elements", len(node.Elems))}
		}
		for i, e := range node.Elems {
			if err := FromIR(e, dst.Index(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return &TypeMismatchError{Type: dst.Type().String(), Want: "sequence field", Got: node.Kind.String()}
	}
}

func mapFromIR(node ir.Value, dst reflect.Value) error {
	if dst.Kind() != reflect.Map {
		return &TypeMismatchError{Type: dst.Type().String(), Want: "map field", Got: node.Kind.String()}
	}
	out := reflect.MakeMapWithSize(dst.Type(), len(node.Entries))
	kt := dst.Type().Key()
	vt := dst.Type().Elem()
	for _, e := range node.Entries {
		k := reflect.New(kt).Elem()
		if err := FromIR(e.Key, k); err != nil {
			return err
		}
		v := reflect.New(vt).Elem()
		if err := FromIR(e.Val, v); err != nil {
			return err
		}
		out.SetMapIndex(k, v)
	}
	dst.Set(out)
	return nil
}

func recordFromIR(node ir.Value, dst reflect.Value) error {
	if dst.Kind() != reflect.Struct {
		return &TypeMismatchError{Type: dst.Type().String(), Want: "record field", Got: node.Kind.String()}
	}
	plan, err := PlanOf(dst.Type())
	if err != nil {
		return err
	}
	if plan.Container.Transparent {
		return FromIR(node, dst.Field(plan.Fields[0].GoIndex))
	}
	if plan.Container.Proxy != "" {
		conv, ok := lookupProxy(plan.Container.Proxy)
		if !ok {
			return &UnsupportedTypeError{TypeName: dst.Type().String(), Reason: fmt.Sprintf("proxy %q is not registered", plan.Container.Proxy)}
		}
		proxyVal := reflect.New(conv.ProxyType).Elem()
		if err := FromIR(node, proxyVal); err != nil {
			return err
		}
		dst.Set(conv.FromProxy(proxyVal))
		return nil
	}
	seed, err := ResolveContainerDefault(dst.Type(), plan.Container)
	if err != nil {
		return err
	}
	if seed.IsValid() {
		dst.Set(seed)
	}
	return applyFieldsFromIR(node, dst, plan.Fields, plan.Container.Tuple)
}

func applyFieldsFromIR(node ir.Value, dst reflect.Value, fields []Field, tuple bool) error {
	if tuple {
		if len(node.Fields) > len(fields) {
			return &TypeMismatchError{Type: dst.Type().String(), Want: fmt.Sprintf("%d positional fields", len(fields)), Got: fmt.Sprintf("%d", len(node.Fields))}
		}
		for i, f := range fields {
			if i >= len(node.Fields) {
				if err := applyFieldDefault(dst, f); err != nil {
					return err
				}
				continue
			}
			if err := applyFieldValue(node.Fields[i].Val, dst.Field(f.GoIndex), f); err != nil {
				return err
			}
		}
		return nil
	}
	for _, f := range fields {
		val, ok := node.Field(f.WireName)
		if !ok {
			if err := applyFieldDefault(dst, f); err != nil {
				return err
			}
			continue
		}
		if err := applyFieldValue(val, dst.Field(f.GoIndex), f); err != nil {
			return err
		}
	}
	return nil
}

func applyFieldDefault(dst reflect.Value, f Field) error {
	if f.Attrs.Skip || f.Attrs.Default {
		return nil
	}
	if f.Type.Kind() == reflect.Ptr {
		return nil
	}
	return &MissingFieldError{Type: dst.Type().String(), Field: f.WireName}
}

func applyFieldValue(val ir.Value, fv reflect.Value, f Field) error {
	if f.Attrs.Proxy != "" {
		conv, ok := lookupProxy(f.Attrs.Proxy)
		if !ok {
			return &UnsupportedTypeError{TypeName: f.Type.String(), Reason: fmt.Sprintf("proxy %q is not registered", f.Attrs.Proxy)}
		}
		proxyVal := reflect.New(conv.ProxyType).Elem()
		if err := FromIR(val, proxyVal); err != nil {
			return err
		}
		fv.Set(conv.FromProxy(proxyVal))
		return nil
	}
	return FromIR(val, fv)
}

func unionFromIR(node ir.Value, dst reflect.Value) error {
	if node.Kind != ir.Variant {
		return &TypeMismatchError{Type: dst.Type().String(), Want: "variant", Got: node.Kind.String()}
	}
	ifaceType := dst.Type()
	if ifaceType.Kind() != reflect.Interface {
		return &UnsupportedTypeError{TypeName: ifaceType.String(), Reason: "union target must be an interface"}
	}
	plan, err := PlanOf(ifaceType)
	if err != nil {
		return err
	}
	vp, ok := plan.VariantByWireName(node.Name)
	if !ok {
		return &UnknownVariantError{Union: ifaceType.String(), Tag: node.Name}
	}
	isPtr := vp.Type.Kind() == reflect.Ptr
	storageType := vp.Type
	if isPtr {
		storageType = vp.Type.Elem()
	}
	instance := reflect.New(storageType)
	if !vp.Unit {
		if err := applyFieldsFromIR(node, instance.Elem(), vp.Fields, vp.Tuple); err != nil {
			return err
		}
	}
	if isPtr {
		dst.Set(instance)
	} else {
		dst.Set(instance.Elem())
	}
	return nil
}

// Package derive is the front-end of spec §4.1: given a Go reflect.Type,
// it builds a normalized Plan (field list, resolved attribute sets,
// variant table) once and caches it, standing in for the compile-time
// "synthesized glue" a macro-based derive facility would produce (see
// SPEC_FULL §1). The per-format back-ends (json, ron, binary, toml) all
// consult the same Plan; none of them re-walks reflection themselves.
//
// Grounded on the teacher's gomap package: gomap/tags.go's
// ParseStructTag is the model for attr.Parse's tag scanner, and the
// resolve-once-and-cache shape mirrors gomap/resolve.go and
// gomap/mapper.go, generalized here into a single sync.Map keyed by
// reflect.Type instead of the teacher's schema-registry lookup.
package derive

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/nserde/nserde-go/attr"
)

// containerSentinelField is the name of the zero-sized field that carries
// a struct's container-level nserde tag (see SPEC_FULL §3: Go has no
// language-level container annotation, so the sentinel field is the
// carrier).
const containerSentinelField = "NserdeContainer"

// Field is one resolved field of a struct Plan.
type Field struct {
	GoIndex  int
	GoName   string
	WireName string
	Type     reflect.Type
	Attrs    attr.Set
}

// Plan is the normalized, cached intermediate the derive front-end
// produces for one reflect.Type (spec §4.1's "normalized intermediate").
type Plan struct {
	Type      reflect.Type
	Name      string
	Container attr.Set
	Fields    []Field // nil for a union interface Plan

	// Union support: non-nil when Type is a registered union interface.
	Variants []VariantPlan
}

// VariantPlan is one resolved variant of a tagged union (spec §3).
type VariantPlan struct {
	Type     reflect.Type
	WireName string
	Unit     bool // no payload
	Fields   []Field
	Tuple    bool // positional payload
	Index    int  // declaration order; the binary engine's wire index
}

var planCache sync.Map // reflect.Type -> *Plan or error sentinel wrapped in *planEntry

type planEntry struct {
	plan *Plan
	err  error
}

// PlanOf returns the cached Plan for t, building it on first use.
func PlanOf(t reflect.Type) (*Plan, error) {
	if v, ok := planCache.Load(t); ok {
		e := v.(*planEntry)
		return e.plan, e.err
	}
	p, err := buildPlan(t)
	planCache.Store(t, &planEntry{plan: p, err: err})
	return p, err
}

func buildPlan(t reflect.Type) (*Plan, error) {
	if variants, ok := unionRegistry[t]; ok {
		return buildUnionPlan(t, variants)
	}
	if t.Kind() != reflect.Struct {
		return nil, &UnsupportedTypeError{TypeName: t.String(), Reason: "not a struct and not a registered union interface"}
	}
	return buildStructPlan(t)
}

func buildStructPlan(t reflect.Type) (*Plan, error) {
	container, err := containerAttrs(t)
	if err != nil {
		return nil, err
	}
	fields, err := structFields(t)
	if err != nil {
		return nil, err
	}
	if container.Transparent && len(fields) != 1 {
		return nil, &attr.InvalidScopeError{Name: "transparent", Reason: fmt.Sprintf("%s has %d fields, transparent requires exactly one", t.String(), len(fields))}
	}
	return &Plan{Type: t, Name: t.Name(), Container: container, Fields: fields}, nil
}

func containerAttrs(t reflect.Type) (attr.Set, error) {
	sf, ok := t.FieldByName(containerSentinelField)
	if !ok {
		return attr.Set{}, nil
	}
	tag, ok := sf.Tag.Lookup("nserde")
	if !ok {
		return attr.Set{}, nil
	}
	return attr.Parse(tag, attr.ContainerScope)
}

func structFields(t reflect.Type) ([]Field, error) {
	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Name == containerSentinelField {
			continue
		}
		if !sf.IsExported() {
			continue
		}
		tag, _ := sf.Tag.Lookup("nserde")
		a, err := attr.Parse(tag, attr.FieldScope)
		if err != nil {
			return nil, err
		}
		if a.Skip {
			continue
		}
		wireName := sf.Name
		if a.Rename != "" {
			wireName = a.Rename
		}
		fields = append(fields, Field{
			GoIndex:  i,
			GoName:   sf.Name,
			WireName: wireName,
			Type:     sf.Type,
			Attrs:    a,
		})
	}
	return fields, nil
}

func buildUnionPlan(ifaceType reflect.Type, variantTypes []reflect.Type) (*Plan, error) {
	variants := make([]VariantPlan, 0, len(variantTypes))
	for _, vt := range variantTypes {
		st := vt
		for st.Kind() == reflect.Ptr {
			st = st.Elem()
		}
		if st.Kind() != reflect.Struct {
			return nil, &UnsupportedTypeError{TypeName: vt.String(), Reason: "union variants must be structs"}
		}
		container, err := containerAttrs(st)
		if err != nil {
			return nil, err
		}
		fields, err := structFields(st)
		if err != nil {
			return nil, err
		}
		wireName := st.Name()
		if container.Rename != "" {
			wireName = container.Rename
		}
		variants = append(variants, VariantPlan{
			Type:     vt,
			WireName: wireName,
			Unit:     len(fields) == 0,
			Fields:   fields,
			Tuple:    container.Tuple,
			Index:    len(variants),
		})
	}
	return &Plan{Type: ifaceType, Name: ifaceType.Name(), Variants: variants}, nil
}

// VariantByWireName finds the variant whose wire tag equals name.
func (p *Plan) VariantByWireName(name string) (*VariantPlan, bool) {
	for i := range p.Variants {
		if p.Variants[i].WireName == name {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

// VariantByType finds the variant plan matching a concrete Go type
// (used when serializing a union value, whose dynamic type we have).
func (p *Plan) VariantByType(t reflect.Type) (*VariantPlan, bool) {
	for i := range p.Variants {
		vt := p.Variants[i].Type
		for vt.Kind() == reflect.Ptr {
			vt = vt.Elem()
		}
		tt := t
		for tt.Kind() == reflect.Ptr {
			tt = tt.Elem()
		}
		if vt == tt {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

// IsUnion reports whether p describes a tagged union rather than a record.
func (p *Plan) IsUnion() bool {
	return p.Variants != nil
}

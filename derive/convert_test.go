package derive

import (
	"reflect"
	"testing"

	"github.com/nserde/nserde-go/ir"
)

type point struct {
	X int32 `nserde:"rename=x"`
	Y int32 `nserde:"rename=y"`
}

type withOptional struct {
	Name string
	Tag  *string
}

func TestToIRRecordRename(t *testing.T) {
	node, err := ToIR(reflect.ValueOf(point{X: 1, Y: 2}), ToIROptions{OmitAbsentOptionals: true})
	if err != nil {
		t.Fatalf("ToIR: %v", err)
	}
	if node.Kind != ir.Record {
		t.Fatalf("kind = %v, want Record", node.Kind)
	}
	if _, ok := node.Field("x"); !ok {
		t.Fatalf("expected renamed field %q, got %+v", "x", node.Fields)
	}
}

func TestToIROmitsAbsentOptional(t *testing.T) {
	node, err := ToIR(reflect.ValueOf(withOptional{Name: "a"}), ToIROptions{OmitAbsentOptionals: true})
	if err != nil {
		t.Fatalf("ToIR: %v", err)
	}
	if _, ok := node.Field("Tag"); ok {
		t.Fatalf("Tag should have been omitted, got %+v", node.Fields)
	}
}

func TestToIRKeepsAbsentOptionalWhenRequested(t *testing.T) {
	node, err := ToIR(reflect.ValueOf(withOptional{Name: "a"}), ToIROptions{OmitAbsentOptionals: false})
	if err != nil {
		t.Fatalf("ToIR: %v", err)
	}
	v, ok := node.Field("Tag")
	if !ok {
		t.Fatalf("Tag should be present, got %+v", node.Fields)
	}
	if v.Kind != ir.Option || v.Some != nil {
		t.Fatalf("Tag = %+v, want absent option", v)
	}
}

func TestRoundTripRecord(t *testing.T) {
	src := point{X: 3, Y: 4}
	node, err := ToIR(reflect.ValueOf(src), ToIROptions{OmitAbsentOptionals: true})
	if err != nil {
		t.Fatalf("ToIR: %v", err)
	}
	var dst point
	if err := FromIR(node, reflect.ValueOf(&dst).Elem()); err != nil {
		t.Fatalf("FromIR: %v", err)
	}
	if dst != src {
		t.Fatalf("round trip = %+v, want %+v", dst, src)
	}
}

func TestFromIRMissingRequiredField(t *testing.T) {
	node := ir.Value{Kind: ir.Record, Fields: []ir.Field{{Name: "x", Val: ir.Int(1)}}}
	var dst point
	err := FromIR(node, reflect.ValueOf(&dst).Elem())
	if err == nil {
		t.Fatal("expected MissingFieldError for absent y")
	}
	if _, ok := err.(*MissingFieldError); !ok {
		t.Fatalf("err = %T, want *MissingFieldError", err)
	}
}

func TestFromIRNumberOverflow(t *testing.T) {
	type narrow struct {
		V int8
	}
	node := ir.Value{Kind: ir.Record, Fields: []ir.Field{{Name: "V", Val: ir.Int(1000)}}}
	var dst narrow
	err := FromIR(node, reflect.ValueOf(&dst).Elem())
	if _, ok := err.(*TypeMismatchError); !ok {
		t.Fatalf("err = %v (%T), want *TypeMismatchError", err, err)
	}
}

func TestSeqRoundTrip(t *testing.T) {
	src := []int64{7, -1, 42}
	node, err := ToIR(reflect.ValueOf(src), ToIROptions{})
	if err != nil {
		t.Fatalf("ToIR: %v", err)
	}
	var dst []int64
	if err := FromIR(node, reflect.ValueOf(&dst).Elem()); err != nil {
		t.Fatalf("FromIR: %v", err)
	}
	if len(dst) != len(src) {
		t.Fatalf("dst = %v, want %v", dst, src)
	}
	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("dst[%d] = %d, want %d", i, dst[i], src[i])
		}
	}
}

func TestMapToIRSortsKeys(t *testing.T) {
	src := map[string]int64{"b": 2, "a": 1, "c": 3}
	node, err := ToIR(reflect.ValueOf(src), ToIROptions{})
	if err != nil {
		t.Fatalf("ToIR: %v", err)
	}
	if len(node.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(node.Entries))
	}
	if node.Entries[0].Key.S != "a" || node.Entries[1].Key.S != "b" || node.Entries[2].Key.S != "c" {
		t.Fatalf("keys not sorted: %+v", node.Entries)
	}
}

package derive

import (
	"reflect"
	"testing"

	"github.com/nserde/nserde-go/ir"
)

type testEvent interface{ isTestEvent() }

type testStarted struct {
	ID int32
}

func (testStarted) isTestEvent() {}

type testStopped struct{}

func (testStopped) isTestEvent() {}

func TestUnionRoundTrip(t *testing.T) {
	RegisterUnion[testEvent](testStarted{}, testStopped{})

	var ev testEvent = testStarted{ID: 9}
	node, err := ToIR(reflect.ValueOf(&ev).Elem(), ToIROptions{OmitAbsentOptionals: true})
	if err != nil {
		t.Fatalf("ToIR: %v", err)
	}
	if node.Kind != ir.Variant || node.Name != "testStarted" {
		t.Fatalf("node = %+v, want Variant testStarted", node)
	}

	var dst testEvent
	if err := FromIR(node, reflect.ValueOf(&dst).Elem()); err != nil {
		t.Fatalf("FromIR: %v", err)
	}
	started, ok := dst.(testStarted)
	if !ok || started.ID != 9 {
		t.Fatalf("dst = %#v, want testStarted{ID:9}", dst)
	}
}

func TestUnionUnitVariant(t *testing.T) {
	RegisterUnion[testEvent](testStarted{}, testStopped{})

	node := ir.Value{Kind: ir.Variant, Name: "testStopped"}
	var dst testEvent
	if err := FromIR(node, reflect.ValueOf(&dst).Elem()); err != nil {
		t.Fatalf("FromIR: %v", err)
	}
	if _, ok := dst.(testStopped); !ok {
		t.Fatalf("dst = %#v, want testStopped{}", dst)
	}
}

func TestUnionUnknownVariant(t *testing.T) {
	RegisterUnion[testEvent](testStarted{}, testStopped{})

	node := ir.Value{Kind: ir.Variant, Name: "nope"}
	var dst testEvent
	err := FromIR(node, reflect.ValueOf(&dst).Elem())
	if _, ok := err.(*UnknownVariantError); !ok {
		t.Fatalf("err = %v (%T), want *UnknownVariantError", err, err)
	}
}

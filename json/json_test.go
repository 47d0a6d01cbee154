package json

import (
	"strings"
	"testing"

	"github.com/nserde/nserde-go/derive"
)

type coordinate struct {
	X int32 `nserde:"rename=x"`
	Y int32 `nserde:"rename=y"`
}

type profile struct {
	Name     string
	Nickname *string
	Tags     []string
	Scores   map[string]int32
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	src := profile{Name: "ada", Tags: []string{"math", "engineering"}, Scores: map[string]int32{"b": 2, "a": 1}}
	out, err := Marshal(src)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var dst profile
	if err := Unmarshal(out, &dst); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if dst.Name != src.Name || len(dst.Tags) != 2 || dst.Scores["a"] != 1 || dst.Scores["b"] != 2 {
		t.Fatalf("round trip mismatch: %+v", dst)
	}
	if dst.Nickname != nil {
		t.Fatalf("expected nil Nickname, got %v", *dst.Nickname)
	}
}

func TestMarshalOmitsAbsentOptional(t *testing.T) {
	out, err := Marshal(profile{Name: "ada"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(out), "Nickname") {
		t.Fatalf("expected Nickname omitted, got %s", out)
	}
}

func TestRenamedFieldOnWire(t *testing.T) {
	out, err := Marshal(coordinate{X: 1, Y: 2})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), `"x"`) || !strings.Contains(string(out), `"y"`) {
		t.Fatalf("expected renamed keys x/y, got %s", out)
	}
}

func TestMarshalIndentPretty(t *testing.T) {
	out, err := MarshalIndent(coordinate{X: 1, Y: 2}, "  ")
	if err != nil {
		t.Fatalf("MarshalIndent: %v", err)
	}
	if !strings.Contains(string(out), "\n") {
		t.Fatalf("expected newlines in pretty output, got %s", out)
	}
}

func TestUnmarshalPrefixedStream(t *testing.T) {
	data := []byte(`{"x":1,"y":2}{"x":3,"y":4}`)
	var a, b coordinate
	rest, err := UnmarshalPrefixed(data, &a)
	if err != nil {
		t.Fatalf("first UnmarshalPrefixed: %v", err)
	}
	if _, err := UnmarshalPrefixed(rest, &b); err != nil {
		t.Fatalf("second UnmarshalPrefixed: %v", err)
	}
	if a.X != 1 || a.Y != 2 || b.X != 3 || b.Y != 4 {
		t.Fatalf("got a=%+v b=%+v", a, b)
	}
}

func TestUnmarshalMissingFieldNoDefaultErrors(t *testing.T) {
	var c coordinate
	err := Unmarshal([]byte(`{"x":1}`), &c)
	if _, ok := err.(*derive.MissingFieldError); !ok {
		t.Fatalf("err = %v (%T), want *derive.MissingFieldError", err, err)
	}
}

func TestUnmarshalDuplicateKeyLastWins(t *testing.T) {
	var c coordinate
	if err := Unmarshal([]byte(`{"x":1,"y":2,"x":9}`), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if c.X != 9 {
		t.Fatalf("X = %d, want 9 (last duplicate wins)", c.X)
	}
}

type greeting struct {
	NserdeContainer struct{} `nserde:"tuple"`
	Lang            string
	Text            string
}

func TestTupleContainerIsPositionalArray(t *testing.T) {
	out, err := Marshal(greeting{Lang: "en", Text: "hi"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.HasPrefix(string(out), "[") {
		t.Fatalf("expected array for tuple container, got %s", out)
	}
	var dst greeting
	if err := Unmarshal(out, &dst); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if dst.Lang != "en" || dst.Text != "hi" {
		t.Fatalf("round trip = %+v", dst)
	}
}

type statusEvent interface{ isStatusEvent() }

type statusOK struct{ Code int32 }

func (statusOK) isStatusEvent() {}

type statusDown struct{}

func (statusDown) isStatusEvent() {}

func TestUnionWireShape(t *testing.T) {
	derive.RegisterUnion[statusEvent](statusOK{}, statusDown{})

	type wrapper struct {
		Event statusEvent
	}
	out, err := Marshal(wrapper{Event: statusOK{Code: 7}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), `"statusOK"`) {
		t.Fatalf("expected variant tag in output, got %s", out)
	}

	var dst wrapper
	if err := Unmarshal(out, &dst); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	ok, isOK := dst.Event.(statusOK)
	if !isOK || ok.Code != 7 {
		t.Fatalf("dst.Event = %#v, want statusOK{Code:7}", dst.Event)
	}
}

func TestUnitVariantHasNullPayload(t *testing.T) {
	derive.RegisterUnion[statusEvent](statusOK{}, statusDown{})
	type wrapper struct {
		Event statusEvent
	}
	out, err := Marshal(wrapper{Event: statusDown{}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), `{"statusDown":null}`) {
		t.Fatalf("expected tag with null payload, got %s", out)
	}
}

package ron

import (
	"strings"
	"testing"

	"github.com/nserde/nserde-go/derive"
)

type point struct {
	X int32 `nserde:"rename=x"`
	Y int32 `nserde:"rename=y"`
}

type profile struct {
	Name     string
	Nickname *string
	Tags     []string
	Scores   map[int32]string
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	src := profile{Name: "ada", Tags: []string{"math", "engineering"}, Scores: map[int32]string{1: "a", 2: "b"}}
	out, err := Marshal(src)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var dst profile
	if err := Unmarshal(out, &dst); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if dst.Name != src.Name || len(dst.Tags) != 2 || dst.Scores[1] != "a" || dst.Scores[2] != "b" {
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

func TestNamedCallWithRenamedFields(t *testing.T) {
	out, err := Marshal(point{X: 1, Y: 2})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(out)
	if !strings.HasPrefix(s, "point(") || !strings.Contains(s, "x:") || !strings.Contains(s, "y:") {
		t.Fatalf("expected point(x: 1, y: 2)-shaped output, got %s", s)
	}
}

func TestMarshalIndentPretty(t *testing.T) {
	out, err := MarshalIndent(point{X: 1, Y: 2}, "  ")
	if err != nil {
		t.Fatalf("MarshalIndent: %v", err)
	}
	if !strings.Contains(string(out), "\n") {
		t.Fatalf("expected newlines in pretty output, got %s", out)
	}
}

func TestUnmarshalTrailingCommentAndComma(t *testing.T) {
	data := []byte(`point( x: 1, y: 2, /*trail*/ )`)
	var p point
	if err := Unmarshal(data, &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p.X != 1 || p.Y != 2 {
		t.Fatalf("p = %+v, want {1 2}", p)
	}
}

func TestUnmarshalLineComment(t *testing.T) {
	data := []byte("point(x: 1, // the x coordinate\ny: 2)")
	var p point
	if err := Unmarshal(data, &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p.X != 1 || p.Y != 2 {
		t.Fatalf("p = %+v, want {1 2}", p)
	}
}

func TestUnmarshalPrefixedStream(t *testing.T) {
	data := []byte(`point(x: 1, y: 2) point(x: 3, y: 4)`)
	var a, b point
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
	var p point
	err := Unmarshal([]byte(`point(x: 1)`), &p)
	if _, ok := err.(*derive.MissingFieldError); !ok {
		t.Fatalf("err = %v (%T), want *derive.MissingFieldError", err, err)
	}
}

type greeting struct {
	NserdeContainer struct{} `nserde:"tuple"`
	Lang            string
	Text            string
}

func TestTupleContainerIsPositionalCall(t *testing.T) {
	out, err := Marshal(greeting{Lang: "en", Text: "hi"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.HasPrefix(string(out), "greeting(") {
		t.Fatalf("expected positional call for tuple container, got %s", out)
	}
	var dst greeting
	if err := Unmarshal(out, &dst); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if dst.Lang != "en" || dst.Text != "hi" {
		t.Fatalf("round trip = %+v", dst)
	}
}

func TestOptionSomeNone(t *testing.T) {
	type withTag struct {
		Tag *string
	}
	s := "v1"
	out, err := Marshal(withTag{Tag: &s})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), "Some(") {
		t.Fatalf("expected Some(...) in output, got %s", out)
	}
	var dst withTag
	if err := Unmarshal(out, &dst); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if dst.Tag == nil || *dst.Tag != "v1" {
		t.Fatalf("dst.Tag = %v, want v1", dst.Tag)
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
	if !strings.Contains(string(out), "statusOK(") {
		t.Fatalf("expected variant call in output, got %s", out)
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

func TestUnitVariantIsBareIdentifier(t *testing.T) {
	derive.RegisterUnion[statusEvent](statusOK{}, statusDown{})
	type wrapper struct {
		Event statusEvent
	}
	out, err := Marshal(wrapper{Event: statusDown{}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), "statusDown") || strings.Contains(string(out), "statusDown(") {
		t.Fatalf("expected bare identifier tag, got %s", out)
	}

	var dst wrapper
	if err := Unmarshal(out, &dst); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := dst.Event.(statusDown); !ok {
		t.Fatalf("dst.Event = %#v, want statusDown{}", dst.Event)
	}
}

package binary

import (
	"testing"

	"github.com/nserde/nserde-go/derive"
)

func TestSequenceOfInt64RoundTrip(t *testing.T) {
	src := []int64{7, -1, 42}
	out, err := Marshal(src)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(out) != 8+3*8 {
		t.Fatalf("len(out) = %d, want %d", len(out), 8+3*8)
	}
	var dst []int64
	if err := Unmarshal(out, &dst); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(dst) != 3 || dst[0] != 7 || dst[1] != -1 || dst[2] != 42 {
		t.Fatalf("dst = %v, want [7 -1 42]", dst)
	}
}

type packet struct {
	Kind    uint8
	Payload string
}

func TestRecordFieldsAreConcatenatedPositionally(t *testing.T) {
	src := packet{Kind: 3, Payload: "hi"}
	out, err := Marshal(src)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	// 1 byte Kind + 8 byte length prefix + 2 payload bytes, no framing.
	if len(out) != 1+8+2 {
		t.Fatalf("len(out) = %d, want %d", len(out), 1+8+2)
	}
	var dst packet
	if err := Unmarshal(out, &dst); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if dst != src {
		t.Fatalf("dst = %+v, want %+v", dst, src)
	}
}

type wireEvent interface{ isWireEvent() }

type wireTick struct{ N int32 }

func (wireTick) isWireEvent() {}

type wireReset struct{}

func (wireReset) isWireEvent() {}

func TestUnionVariantIndexOnWire(t *testing.T) {
	derive.RegisterUnion[wireEvent](wireTick{}, wireReset{})

	type wrapper struct {
		Event wireEvent
	}
	out, err := Marshal(wrapper{Event: wireReset{}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("len(out) = %d, want 4 (u32 variant index only, unit payload)", len(out))
	}
	if out[0] != 1 || out[1] != 0 || out[2] != 0 || out[3] != 0 {
		t.Fatalf("out = %v, want little-endian index 1", out)
	}

	var dst wrapper
	if err := Unmarshal(out, &dst); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := dst.Event.(wireReset); !ok {
		t.Fatalf("dst.Event = %#v, want wireReset{}", dst.Event)
	}
}

func TestOptionTag(t *testing.T) {
	type withOpt struct {
		V *int32
	}
	n := int32(5)
	out, err := Marshal(withOpt{V: &n})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(out) != 1+4 || out[0] != 1 {
		t.Fatalf("out = %v, want [1 <4 bytes>]", out)
	}

	var dst withOpt
	if err := Unmarshal(out, &dst); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if dst.V == nil || *dst.V != 5 {
		t.Fatalf("dst.V = %v, want 5", dst.V)
	}
}

package binary

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/nserde/nserde-go/derive"
)

// toIROptions: binary's layout is fixed and positional, so an optional
// field is never omitted — there is nowhere for its absence to be
// signaled except the option tag byte itself (spec §4.5).
var toIROptions = derive.ToIROptions{OmitAbsentOptionals: false}

// Marshal renders v as the fixed-layout binary wire format.
func Marshal(v any) ([]byte, error) {
	node, err := derive.ToIR(reflect.ValueOf(v), toIROptions)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encodeValue(&buf, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes data into v, which must be a non-nil pointer.
func Unmarshal(data []byte, v any) error {
	_, err := UnmarshalPrefixed(data, v)
	return err
}

// UnmarshalPrefixed decodes one value from the start of data into v and
// returns the unconsumed remainder, for reading back-to-back binary
// records out of a single buffer or stream chunk.
func UnmarshalPrefixed(data []byte, v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return nil, &derive.UnsupportedTypeError{TypeName: fmt.Sprintf("%T", v), Reason: "Unmarshal target must be a non-nil pointer"}
	}
	r := &reader{buf: data}
	node, err := decodeValue(r, rv.Elem().Type())
	if err != nil {
		return nil, err
	}
	if err := derive.FromIR(node, rv.Elem()); err != nil {
		return nil, err
	}
	return data[r.off:], nil
}

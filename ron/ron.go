package ron

import (
	"fmt"
	"reflect"

	"github.com/nserde/nserde-go/derive"
)

// toIROptions is shared by every entry point: like JSON, RON omits an
// absent optional field unless serialize_none_as_null is set (spec §4.4).
var toIROptions = derive.ToIROptions{OmitAbsentOptionals: true}

// Marshal renders v as compact RON.
func Marshal(v any) ([]byte, error) {
	return marshal(v, "")
}

// MarshalIndent renders v as RON pretty-printed with the given indent
// string repeated once per nesting level.
func MarshalIndent(v any, indent string) ([]byte, error) {
	return marshal(v, indent)
}

func marshal(v any, indent string) ([]byte, error) {
	node, err := derive.ToIR(reflect.ValueOf(v), toIROptions)
	if err != nil {
		return nil, err
	}
	s, err := encode(node, indent)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Unmarshal parses data as RON into v, which must be a non-nil pointer.
func Unmarshal(data []byte, v any) error {
	_, err := UnmarshalPrefixed(data, v)
	return err
}

// UnmarshalPrefixed parses one RON value from the start of data into v
// and returns the unconsumed remainder, letting callers decode a stream
// of back-to-back RON documents without a surrounding array.
func UnmarshalPrefixed(data []byte, v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return nil, &derive.UnsupportedTypeError{TypeName: fmt.Sprintf("%T", v), Reason: "Unmarshal target must be a non-nil pointer"}
	}
	raw, n, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	node, err := bind(raw, rv.Elem().Type())
	if err != nil {
		return nil, err
	}
	if err := derive.FromIR(node, rv.Elem()); err != nil {
		return nil, err
	}
	return data[n:], nil
}

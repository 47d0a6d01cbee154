package toml

import (
	"reflect"

	"github.com/nserde/nserde-go/derive"
)

// toIROptions: an absent optional field has no TOML spelling (there is
// no null literal), so it is always omitted regardless of
// serialize_none_as_null — see effective() in encode.go.
var toIROptions = derive.ToIROptions{OmitAbsentOptionals: true}

// Marshal renders v as restricted TOML: top-level scalars, [name]
// sub-tables for nested records, [[name]] arrays of tables for
// sequences of records (spec §4.6).
func Marshal(v any) ([]byte, error) {
	node, err := derive.ToIR(reflect.ValueOf(v), toIROptions)
	if err != nil {
		return nil, err
	}
	s, err := encode(node)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Unmarshal always fails: TOML deserialization is out of scope (spec
// §4.6, §7).
func Unmarshal(data []byte, v any) error {
	return ErrUnsupported
}

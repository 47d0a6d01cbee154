// Package json implements the JSON wire format of spec SPEC_FULL §4.3:
// Marshal/MarshalIndent/Unmarshal/UnmarshalPrefixed built on the shared
// token scanner and the derive front-end's ir.Value tree. Parsing is
// two-phase — first into an untyped raw document (object/array/string/
// number/bool/null), then bound against the destination Go type so an
// object can resolve to a Map, a Record or a tagged union Variant
// depending on what the caller asked to decode into.
package json

// Package toml implements the restricted TOML emitter of spec SPEC_FULL
// §4.6: top-level key/value pairs for scalar fields, sub-tables [name]
// for nested records, and arrays of tables [[name]] for sequences of
// records. Only serialization is supported; Unmarshal always returns
// ErrUnsupported so callers get a typed error rather than a missing
// symbol (SPEC_FULL's Open Question resolution #2).
package toml

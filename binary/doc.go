// Package binary implements the fixed-layout binary wire format of spec
// SPEC_FULL §4.5 on top of encoding/binary and bytes.Buffer: every field
// of a record is written in declaration order with no framing or keys,
// so decoding always needs the destination Go type up front — there is
// no self-describing shape to parse independently of it, unlike json or
// ron. Multi-byte integers and floats are little-endian; strings and
// sequences are length-prefixed with a u64 count.
package binary

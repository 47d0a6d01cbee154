// Package ron implements the RON (Rusty Object Notation) wire format of
// spec SPEC_FULL §4.4: named struct calls (Point(x: 1, y: 2)), tuple
// calls, sequences, maps, Some(...)/None options and bare-identifier
// unit variants, with // and /* */ comments and trailing commas
// tolerated throughout. Like json, parsing is two-phase: an untyped raw
// document first, then a type-guided bind into the shared ir.Value tree.
package ron

package derive

import "reflect"

// unionRegistry maps an interface type to its variant concrete types, in
// the order they were registered — that order is the tagged union's
// declaration order (spec §3), and is what the binary engine's variant
// index (spec §4.5) counts against.
var unionRegistry = map[reflect.Type][]reflect.Type{}

// RegisterUnion declares the closed set of variants implementing union
// interface U, in declaration order. Go interfaces have no compile-time
// enumerable implementor set (unlike a Rust enum), so this registration
// is the Go-native stand-in for spec §3's "tagged union: ordered sequence
// of variants" — callers register once, typically from an init() func,
// before calling Marshal/Unmarshal on any value of type U.
//
// Grounded on the registration-table pattern used throughout the example
// pack for Go sum-type emulation (e.g. a string-keyed map of prototype
// values consulted at marshal/unmarshal time); see DESIGN.md.
func RegisterUnion[U any](variants ...U) {
	ift := reflect.TypeOf((*U)(nil)).Elem()
	ts := make([]reflect.Type, len(variants))
	for i, v := range variants {
		ts[i] = reflect.TypeOf(v)
	}
	unionRegistry[ift] = ts
	planCache.Delete(ift)
}

package derive

import "reflect"

// ProxyConverter bridges a field or container's real Go type to the
// `proxy=<Name>` type named in its nserde tag (spec §3: "convert to/from
// the named proxy type before (de)serialization"). Go has no generic
// "convert via registered function" built in (unlike Rust's From/Into),
// so — mirroring the string-keyed conversion-table pattern the example
// pack uses for interface (de)serialization — proxies are registered by
// the proxy type's bare name.
type ProxyConverter struct {
	ProxyType reflect.Type
	ToProxy   func(src reflect.Value) reflect.Value
	FromProxy func(proxy reflect.Value) reflect.Value
}

var proxyRegistry = map[string]ProxyConverter{}

// RegisterProxy declares a bidirectional conversion between T and proxy
// type P. The tag value `proxy=Name` is matched against P's type name.
func RegisterProxy[T any, P any](toProxy func(T) P, fromProxy func(P) T) {
	var zero P
	name := reflect.TypeOf(zero).Name()
	proxyRegistry[name] = ProxyConverter{
		ProxyType: reflect.TypeOf(zero),
		ToProxy: func(src reflect.Value) reflect.Value {
			return reflect.ValueOf(toProxy(src.Interface().(T)))
		},
		FromProxy: func(proxy reflect.Value) reflect.Value {
			return reflect.ValueOf(fromProxy(proxy.Interface().(P)))
		},
	}
}

// LookupProxy finds the converter registered for a `proxy=<name>` tag
// value, for use by format packages that must determine a proxy type's
// wire shape before a Go value exists to read it from (e.g. when
// parsing JSON into a container or field that has a proxy attribute).
func LookupProxy(name string) (ProxyConverter, bool) {
	c, ok := proxyRegistry[name]
	return c, ok
}

func lookupProxy(name string) (ProxyConverter, bool) {
	return LookupProxy(name)
}

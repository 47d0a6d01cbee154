package toml

import "errors"

// ErrUnsupported is returned by Unmarshal: TOML is a serializer-only
// format in this module (spec §4.6).
var ErrUnsupported = errors.New("nserde/toml: deserialization is not supported")

// UnrepresentableError reports a value shape TOML's restricted emitter
// cannot render at the position it occurs — e.g. a bare scalar at the
// document root, a tuple-shaped container, or a record inside an inline
// array or map (a sequence renders as an array of tables only when every
// element is a record; otherwise it is an inline array).
type UnrepresentableError struct {
	Reason string
}

func (e *UnrepresentableError) Error() string {
	return "nserde/toml: " + e.Reason
}

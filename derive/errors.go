package derive

import "fmt"

// UnsupportedTypeError reports a Go type the front-end cannot derive
// glue for (e.g. an unregistered interface, a channel, a function).
type UnsupportedTypeError struct {
	TypeName string
	Reason   string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("nserde: cannot derive %s: %s", e.TypeName, e.Reason)
}

// UnknownVariantError reports a tagged-union tag/name not found among the
// variants registered for a union interface (spec §7).
type UnknownVariantError struct {
	Union string
	Tag   string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("nserde: %q is not a registered variant of %s", e.Tag, e.Union)
}

// UnknownFieldError reports a wire field name not declared on the
// destination type. JSON silently skips an unrecognized object key
// (spec §7), but RON rejects one — this error is RON's, not JSON's.
type UnknownFieldError struct {
	Type  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("nserde: %q is not a field of %s", e.Field, e.Type)
}

// MissingFieldError reports a required field absent on input with no
// default (spec §7).
type MissingFieldError struct {
	Type  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("nserde: missing required field %q of %s", e.Field, e.Type)
}

// TypeMismatchError reports a wire value present but of the wrong shape
// for the target Go field (spec §7).
type TypeMismatchError struct {
	Type  string
	Field string
	Want  string
	Got   string
}

func (e *TypeMismatchError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("nserde: field %q of %s: expected %s, got %s", e.Field, e.Type, e.Want, e.Got)
	}
	return fmt.Sprintf("nserde: %s: expected %s, got %s", e.Type, e.Want, e.Got)
}

// DepthExceededError reports recursion past token.MaxDepth (spec §4.7).
type DepthExceededError struct {
	Limit int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("nserde: nesting exceeds maximum depth %d", e.Limit)
}

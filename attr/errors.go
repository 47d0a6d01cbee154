package attr

import "fmt"

// ParseError reports malformed nserde tag syntax (spec §4.1).
type ParseError struct {
	Tag    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("nserde: parse error in tag %q: %s", e.Tag, e.Reason)
}

// UnknownAttributeError reports an attribute name the scanner does not
// recognize (spec §4.1).
type UnknownAttributeError struct {
	Name string
	Tag  string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("nserde: unknown attribute %q in tag %q", e.Name, e.Tag)
}

// InvalidScopeError reports an attribute used where spec §4.2 does not
// allow it, e.g. `transparent` on a field, or `transparent` on a
// container with more than one field.
type InvalidScopeError struct {
	Name   string
	Reason string
}

func (e *InvalidScopeError) Error() string {
	return fmt.Sprintf("nserde: attribute %q used in an invalid scope: %s", e.Name, e.Reason)
}

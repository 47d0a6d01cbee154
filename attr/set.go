package attr

// Scope says whether a Set is being resolved for a field or for a
// container (struct/variant), since some attributes are only legal in
// one of the two (spec §4.2).
type Scope int

const (
	FieldScope Scope = iota
	ContainerScope
)

// Set is the resolved attribute set for one field or one container
// (spec §4.2). Zero value is "no attributes".
type Set struct {
	Default         bool   // field: substitute zero value if missing
	DefaultExpr     string // container: `default=<expr>`
	DefaultWith     string // container: `default_with=<path>`
	Skip            bool   // field: implies Default, never read or written
	Rename          string // field/container: wire name override
	Proxy           string // field/container: proxy type name
	Transparent     bool   // container only
	SerializeNoneAsNull bool // field/container
	Tuple           bool   // container only: positional record
}

var fieldAttrs = map[string]bool{
	"default": true, "skip": true, "rename": true, "proxy": true,
	"serialize_none_as_null": true,
}

var containerAttrs = map[string]bool{
	"default": true, "default_with": true, "rename": true, "proxy": true,
	"transparent": true, "serialize_none_as_null": true, "tuple": true,
}

// Parse resolves the content of one `nserde:"..."` struct tag for the
// given scope, reporting ParseError, UnknownAttributeError or
// InvalidScopeError per spec §4.1.
//
// `default` (no value) is field-scoped and `default=<expr>` is container-
// scoped, so a bare `default` on a container and a valued `default=...`
// on a field are both rejected with a ParseError.
func Parse(tag string, scope Scope) (Set, error) {
	var s Set
	allowed := fieldAttrs
	if scope == ContainerScope {
		allowed = containerAttrs
	}
	for _, opt := range splitTag(tag) {
		if opt.Key == "" {
			return Set{}, &ParseError{Tag: tag, Reason: "empty attribute name"}
		}
		if !allowed[opt.Key] {
			if fieldAttrs[opt.Key] || containerAttrs[opt.Key] {
				return Set{}, &InvalidScopeError{Name: opt.Key, Reason: scopeMismatchReason(opt.Key, scope)}
			}
			return Set{}, &UnknownAttributeError{Name: opt.Key, Tag: tag}
		}
		if err := applyOption(&s, opt, scope); err != nil {
			return Set{}, err
		}
	}
	if s.Transparent && scope != ContainerScope {
		return Set{}, &InvalidScopeError{Name: "transparent", Reason: "only legal on a container"}
	}
	return s, nil
}

func scopeMismatchReason(name string, scope Scope) string {
	if scope == FieldScope {
		return name + " is a container-level attribute, not valid on a field"
	}
	return name + " is a field-level attribute, not valid on a container"
}

func applyOption(s *Set, opt rawOption, scope Scope) error {
	switch opt.Key {
	case "default":
		if scope == ContainerScope {
			if !opt.HasValue {
				return &ParseError{Reason: "container `default` requires `=<expr>`"}
			}
			s.DefaultExpr = opt.Value
			return nil
		}
		if opt.HasValue {
			return &ParseError{Reason: "field `default` takes no value"}
		}
		s.Default = true
	case "default_with":
		if !opt.HasValue {
			return &ParseError{Reason: "`default_with` requires `=<path>`"}
		}
		s.DefaultWith = opt.Value
	case "skip":
		s.Skip = true
		s.Default = true
	case "rename":
		if !opt.HasValue {
			return &ParseError{Reason: "`rename` requires `=<name>`"}
		}
		s.Rename = opt.Value
	case "proxy":
		if !opt.HasValue {
			return &ParseError{Reason: "`proxy` requires `=<type>`"}
		}
		s.Proxy = opt.Value
	case "transparent":
		if opt.HasValue {
			return &ParseError{Reason: "`transparent` takes no value"}
		}
		s.Transparent = true
	case "serialize_none_as_null":
		if opt.HasValue {
			return &ParseError{Reason: "`serialize_none_as_null` takes no value"}
		}
		s.SerializeNoneAsNull = true
	case "tuple":
		if opt.HasValue {
			return &ParseError{Reason: "`tuple` takes no value"}
		}
		s.Tuple = true
	}
	return nil
}

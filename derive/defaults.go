package derive

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nserde/nserde-go/attr"
)

// exprCache memoizes compiled container `default=<expr>` programs, one
// compile per distinct expression string for the life of the process —
// the same "compile once, cache, run many" shape the teacher uses for its
// own expression evaluation in eval/expand_env.go and eval/script.go.
var exprCache sync.Map

type exprEntry struct {
	prog *vm.Program
	err  error
}

func compileExpr(src string) (*vm.Program, error) {
	if v, ok := exprCache.Load(src); ok {
		e := v.(*exprEntry)
		return e.prog, e.err
	}
	prog, err := expr.Compile(src)
	exprCache.Store(src, &exprEntry{prog: prog, err: err})
	return prog, err
}

// EvalDefaultExpr evaluates a container `default=<expr>` expression
// (spec §3) and converts the result to reflect type t. The expression
// runs with an empty environment: it is meant for self-contained literal
// or arithmetic defaults ("0", "-1", `"pending"`, "1+2"), not references
// into the value being constructed.
func EvalDefaultExpr(src string, t reflect.Type) (reflect.Value, error) {
	prog, err := compileExpr(src)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("nserde: compiling default expression %q: %w", src, err)
	}
	out, err := expr.Run(prog, map[string]any{})
	if err != nil {
		return reflect.Value{}, fmt.Errorf("nserde: evaluating default expression %q: %w", src, err)
	}
	rv := reflect.ValueOf(out)
	if !rv.IsValid() {
		return reflect.Zero(t), nil
	}
	if rv.Type() == t {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("nserde: default expression %q produced %s, want %s", src, rv.Type(), t)
}

// defaultConstructors holds the functions `default_with=<path>` names
// refer to (spec §3: "seed by calling the named constructor").
var defaultConstructors = map[string]func() any{}

// RegisterDefaultConstructor associates a zero-argument constructor with
// the name used in a container's `default_with=<name>` tag.
func RegisterDefaultConstructor(name string, fn func() any) {
	defaultConstructors[name] = fn
}

// CallDefaultConstructor invokes the constructor registered under path
// and checks its result is of type t.
func CallDefaultConstructor(path string, t reflect.Type) (reflect.Value, error) {
	fn, ok := defaultConstructors[path]
	if !ok {
		return reflect.Value{}, fmt.Errorf("nserde: default_with constructor %q is not registered", path)
	}
	rv := reflect.ValueOf(fn())
	if !rv.IsValid() {
		return reflect.Value{}, fmt.Errorf("nserde: default_with constructor %q returned nil, want %s", path, t)
	}
	if rv.Type() != t {
		return reflect.Value{}, fmt.Errorf("nserde: default_with constructor %q returned %s, want %s", path, rv.Type(), t)
	}
	return rv, nil
}

// ResolveContainerDefault resolves the starting value a deserializer
// builds a struct on top of, before wire data is applied over it:
// default_with takes precedence over default, and when neither attribute
// is set it returns the invalid reflect.Value, meaning "no seed" (the
// caller then leaves the destination as it is). default_with wins when both
// are present because it can construct values default=<expr> cannot —
// anything needing more than a literal or simple arithmetic expression.
func ResolveContainerDefault(t reflect.Type, c attr.Set) (reflect.Value, error) {
	switch {
	case c.DefaultWith != "":
		return CallDefaultConstructor(c.DefaultWith, t)
	case c.DefaultExpr != "":
		return EvalDefaultExpr(c.DefaultExpr, t)
	case c.Default:
		return reflect.Zero(t), nil
	default:
		return reflect.Value{}, nil
	}
}
